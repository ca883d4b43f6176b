package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream session events",
		Long: `Connect to the SSE endpoint and stream events in real-time.

Events include:
  - player_joined: A contestant joined the roster
  - buzz_accepted: A contestant locked the round
  - round_reset: The moderator reopened buzzing
  - score_changed: A contestant's score changed

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, os.Stdout, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// SSEEvent is one server-sent event as received
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(ctx context.Context, w io.Writer, jsonOutput bool) error {
	body, err := client.Stream(ctx, "/api/v1/events")
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	if !jsonOutput {
		fmt.Fprintln(w, "Connected to event stream")
	}

	err = ReadEvents(body, func(evt SSEEvent) {
		printEvent(w, evt, jsonOutput)
	})
	// Cancellation closes the body mid-read
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

// ReadEvents parses an SSE stream, calling fn for each complete event.
// Comment lines (keepalives) are skipped.
func ReadEvents(r io.Reader, fn func(SSEEvent)) error {
	scanner := bufio.NewScanner(r)
	var name string
	var data []string

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		case line == "":
			if name != "" || len(data) > 0 {
				if name == "" {
					name = "message"
				}
				fn(SSEEvent{Time: time.Now(), Event: name, Data: strings.Join(data, "\n")})
			}
			name, data = "", nil
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func printEvent(w io.Writer, evt SSEEvent, jsonOutput bool) {
	if jsonOutput {
		line, _ := json.Marshal(evt)
		fmt.Fprintln(w, string(line))
		return
	}

	timestamp := evt.Time.Format("15:04:05")
	var decoded response.Event
	if err := json.Unmarshal([]byte(evt.Data), &decoded); err == nil && decoded.Message != "" {
		fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, evt.Event, decoded.Message)
		return
	}

	display := strings.ReplaceAll(evt.Data, "\n", " ")
	if len(display) > 100 {
		display = display[:100] + "..."
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, evt.Event, display)
}
