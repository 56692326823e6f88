package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yoBruxo/PTbotKND/internal/api/response"
)

func newPartyCmd() *cobra.Command {
	partyCmd := &cobra.Command{
		Use:   "party",
		Short: "Party operations",
	}

	partyCmd.AddCommand(newPartyCreateCmd())
	partyCmd.AddCommand(newPartyListCmd())
	partyCmd.AddCommand(newPartyGetCmd())
	partyCmd.AddCommand(newPartyJoinCmd())
	partyCmd.AddCommand(newPartyLeaveCmd())
	partyCmd.AddCommand(newPartyCloseCmd())

	return partyCmd
}

func newPartyCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <creator-id>",
		Short: "Create a new party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Party
			body := map[string]string{"creator_id": args[0]}
			if err := client.Post("/api/v1/parties", body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPartyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all parties in creation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.PartyList
			if err := client.Get("/api/v1/parties", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPartyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <party-id>",
		Short: "Show a party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Party
			if err := client.Get(fmt.Sprintf("/api/v1/parties/%s", args[0]), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPartyJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <party-id> <user-id> <role>",
		Short: "Join a role (leader, healer, member)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.OutcomeResponse
			body := map[string]string{"actor_id": args[1], "role": args[2]}
			if err := client.Post(fmt.Sprintf("/api/v1/parties/%s/join", args[0]), body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPartyLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <party-id> <user-id> <role>",
		Short: "Leave a role",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.OutcomeResponse
			body := map[string]string{"actor_id": args[1], "role": args[2]}
			if err := client.Post(fmt.Sprintf("/api/v1/parties/%s/leave", args[0]), body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPartyCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <party-id> <user-id>",
		Short: "Close a party (creator, or operator with --token)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.OutcomeResponse
			body := map[string]string{"actor_id": args[1]}
			if err := client.Post(fmt.Sprintf("/api/v1/parties/%s/close", args[0]), body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
