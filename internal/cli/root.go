package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// Config holds CLI configuration resolved from flags and environment
type Config struct {
	ServerURL string
	Token     string
	Output    string
}

// DefaultConfig resolves defaults from the environment
func DefaultConfig() *Config {
	serverURL := os.Getenv("PTBOT_SERVER")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}
	return &Config{
		ServerURL: serverURL,
		Token:     os.Getenv("PTBOT_OPERATOR_TOKEN"),
		Output:    "text",
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "ptctl",
		Short: "CLI tool for the party coordination API",
		Long: `ptctl is a CLI tool for interacting with the party coordination JSON API.

It supports party lifecycle operations (create, join, leave, close),
administrative player removal, and service status checks.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			client = NewClient(cfg.ServerURL, cfg.Token)
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PTBOT_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Operator token (env: PTBOT_OPERATOR_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newPartyCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newTokenCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
