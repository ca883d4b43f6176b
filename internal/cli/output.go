package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Identity:
		o.printIdentity(v)
	case response.AuthResponse:
		o.printAuthResponse(v)
	case response.Player:
		o.printPlayer(v)
	case response.Round:
		o.printRound(v)
	case response.BuzzResult:
		o.printBuzzResult(v)
	case response.Snapshot:
		o.printSnapshot(v)
	case response.Presets:
		o.printPresets(v)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printIdentity(id response.Identity) {
	role := "contestant"
	if id.IsAdmin {
		role = "moderator"
	}
	fmt.Fprintf(o.w, "User: %s (%s)\n", id.Username, role)
}

func (o *Output) printAuthResponse(a response.AuthResponse) {
	o.printIdentity(a.Identity)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
	fmt.Fprintf(o.w, "Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printPlayer(p response.Player) {
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(o.w, "Score: %d\n", p.Score)
	if p.LastBuzzTime != nil {
		fmt.Fprintf(o.w, "Last buzz: %s\n", p.LastBuzzTime.Format(time.TimeOnly))
	}
}

func (o *Output) printRound(r response.Round) {
	if r.LockedBy == nil {
		fmt.Fprintf(o.w, "Round: %s\n", r.State)
		return
	}
	fmt.Fprintf(o.w, "Round: %s by %s (%s)\n", r.State, r.LockedBy.Name, r.LockedBy.PlayerID)
	if r.BuzzTimestamp != nil {
		fmt.Fprintf(o.w, "Buzzed at: %s\n", r.BuzzTimestamp.Format("15:04:05.000"))
	}
}

func (o *Output) printBuzzResult(b response.BuzzResult) {
	if b.Accepted {
		fmt.Fprintln(o.w, "Buzz accepted!")
	} else {
		fmt.Fprintln(o.w, "Buzz rejected")
	}
	o.printRound(b.Round)
}

func (o *Output) printSnapshot(s response.Snapshot) {
	o.printRound(s.Round)
	fmt.Fprintf(o.w, "Leader: %s\n", s.Leader.Player.Name)
	fmt.Fprintf(o.w, "High score: %d\n", s.HighScore)
	fmt.Fprintf(o.w, "Players (%d):\n", s.PlayerCount)
	for _, st := range s.Standings {
		fmt.Fprintf(o.w, "  %2d. %-20s %6d  %s\n", st.Rank, st.Player.Name, st.Player.Score, progressBar(st.Progress, 20))
	}
}

func (o *Output) printPresets(p response.Presets) {
	parts := make([]string, len(p.Adjustments))
	for i, a := range p.Adjustments {
		parts[i] = fmt.Sprintf("%+d", a)
	}
	fmt.Fprintf(o.w, "Presets: %s\n", strings.Join(parts, " "))
}

// progressBar renders a fraction in [0,1] as a fixed-width bar
func progressBar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
