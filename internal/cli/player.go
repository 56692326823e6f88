package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yoBruxo/PTbotKND/internal/api/response"
)

func newPlayerCmd() *cobra.Command {
	playerCmd := &cobra.Command{
		Use:   "player",
		Short: "Player administration",
	}

	playerCmd.AddCommand(newPlayerRemoveCmd())

	return playerCmd
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <party-id> <user-id>",
		Short: "Remove a player from a party (operator token required)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.OutcomeResponse
			path := fmt.Sprintf("/api/v1/parties/%s/members/%s", args[0], args[1])
			if err := client.Delete(path, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
