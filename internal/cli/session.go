package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/request"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
)

func newLoginCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Start a session",
		Long: `Start a session. Any secret signs in a contestant; the moderator
secret signs in the moderator.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.LoginRequest{
				Username: args[0],
				Secret:   secret,
			}
			var result response.AuthResponse

			if err := client.Post("/api/v1/session/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "Login secret (required)")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token != "" {
				if err := client.Post("/api/v1/session/logout", nil, nil); err != nil {
					return err
				}
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Identity

			if err := client.Get("/api/v1/session/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
