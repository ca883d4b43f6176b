package sse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "test-event",
			data:      "hello world",
			expected:  "event: test-event\ndata: hello world\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "score_changed",
			data:      "{\n  \"score\": 5\n}",
			expected:  "event: score_changed\ndata: {\ndata:   \"score\": 5\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single line", "hello", []string{"hello"}},
		{"two lines", "line1\nline2", []string{"line1", "line2"}},
		{"trailing newline", "line1\n", []string{"line1"}},
		{"empty string", "", []string{""}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitLines(tt.input))
		})
	}
}

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient(hub, "Alex")
	require.True(t, hub.Register(client))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("round_reset", "{}")

	select {
	case msg := <-client.send:
		assert.Equal(t, "event: round_reset\ndata: {}\n\n", string(msg))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHubUnregisterClosesClient(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient(hub, "Alex")
	hub.Register(client)
	hub.Unregister(client)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-client.send
	assert.False(t, open)
}

func TestHubCloseRejectsNewClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	hub.Close()
	hub.Close()

	assert.False(t, hub.Register(NewClient(hub, "late")))
}

func TestBroadcasterSendsJSONEvent(t *testing.T) {
	hub := newRunningHub(t)
	client := NewClient(hub, "viewer")
	hub.Register(client)

	b := NewBroadcaster(hub, testutil.NopLogger())
	b.Notify(model.Event{
		Type:       model.EventScoreChanged,
		Timestamp:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		PlayerID:   "p1",
		PlayerName: "Alex",
		Score:      15,
	})

	var msg []byte
	select {
	case msg = <-client.send:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	lines := strings.Split(strings.TrimSpace(string(msg)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "event: score_changed", lines[0])

	var payload response.Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[1], "data: ")), &payload))
	assert.Equal(t, "score_changed", payload.Type)
	assert.Equal(t, "Alex", payload.PlayerName)
	require.NotNil(t, payload.Score)
	assert.Equal(t, 15, *payload.Score)
	assert.Equal(t, "Alex now has 15 points", payload.Message)
}

func TestServeSSEStreamsEvents(t *testing.T) {
	hub := newRunningHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		ServeSSE(rec, req, hub, "Alex")
		close(done)
	}()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.BroadcastEvent("buzz_accepted", `{"player_name":"Alex"}`)

	// Give the stream a moment to flush before disconnecting
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, "event: buzz_accepted\ndata: {\"player_name\":\"Alex\"}\n\n")
}
