package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/request"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
)

func newAwardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "award <player-id> <delta>",
		Short: "Add (or with a negative delta, deduct) points (moderator)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q: must be an integer", args[1])
			}

			req := request.AdjustScoreRequest{Delta: &delta}
			var result response.Player

			path := fmt.Sprintf("/api/v1/players/%s/score/adjust", url.PathEscape(args[0]))
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
	positionalNumbers(cmd)
	return cmd
}

func newSetScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-score <player-id> <value>",
		Short: "Overwrite a player's score (moderator)",
		Long: `Overwrite a player's score. The value is sent as typed and coerced by
the server: the leading integer is used, input without digits becomes 0,
negative values become 0, and blank input is rejected.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.SetScoreRequest{Value: args[1]}
			var result response.Player

			path := fmt.Sprintf("/api/v1/players/%s/score", url.PathEscape(args[0]))
			if err := client.Put(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
	positionalNumbers(cmd)
	return cmd
}

// positionalNumbers stops flag parsing at the first argument so a value
// such as -10 reaches RunE instead of being read as shorthand flags.
// Flags must come before the player id.
func positionalNumbers(cmd *cobra.Command) {
	cmd.Flags().SetInterspersed(false)
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List quick-adjust score presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Presets

			if err := client.Get("/api/v1/scoring/presets", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
