package cli

import (
	"github.com/spf13/cobra"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
)

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Join the roster as a contestant",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Player

			if err := client.Post("/api/v1/players/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBuzzCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buzz",
		Short: "Press the buzzer",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.BuzzResult

			if err := client.Post("/api/v1/round/buzz", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reopen the round for buzzing (moderator)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Round

			if err := client.Post("/api/v1/round/reset", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round",
		Short: "Show the current round state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Round

			if err := client.Get("/api/v1/round", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show the ranked leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Snapshot

			if err := client.Get("/api/v1/snapshot", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
