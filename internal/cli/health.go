package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var health response.Health
			if err := client.DoContext(cmd.Context(), http.MethodGet, "/api/v1/health", nil, &health); err != nil {
				return fmt.Errorf("%s unreachable: %w", cfg.ServerURL, err)
			}

			NewOutput(cfg.Output).Print(health)
			return nil
		},
	}
}
