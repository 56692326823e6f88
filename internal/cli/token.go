package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yoBruxo/PTbotKND/internal/services/auth"
)

func newTokenCmd() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Operator token utilities",
	}

	tokenCmd.AddCommand(&cobra.Command{
		Use:   "hash <token>",
		Short: "Produce the bcrypt hash to place in server configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashToken(args[0])
			if err != nil {
				return err
			}
			fmt.Println(hash)
			return nil
		},
	})

	return tokenCmd
}
