package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var err error
	cfg, err = LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cfg = &Config{ServerURL: "http://localhost:8080", Output: "text", TokenFile: defaultTokenFile()}
	}

	rootCmd := &cobra.Command{
		Use:   "buzzctl",
		Short: "CLI tool for the quiz buzzer API",
		Long: `buzzctl is a CLI tool for interacting with the quiz buzzer JSON API.

Contestants can join and press the buzzer; moderators can reset the round
and adjust scores. Standings and the live event stream are available to
everyone with a session.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load token from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Token)
			if cfg.Verbose {
				client.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BUZZCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: BUZZCTL_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: BUZZCTL_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: BUZZCTL_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Trace API requests to stderr (env: BUZZCTL_VERBOSE)")

	// Session
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())

	// Contestant and moderator actions
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newBuzzCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newRoundCmd())
	rootCmd.AddCommand(newAwardCmd())
	rootCmd.AddCommand(newSetScoreCmd())
	rootCmd.AddCommand(newPresetsCmd())
	rootCmd.AddCommand(newStandingsCmd())

	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
