package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/testutil"
)

func TestMultiDeliversToAllSinks(t *testing.T) {
	var first, second []model.EventType
	m := NewMulti(testutil.NopLogger(),
		NotifierFunc(func(e model.Event) { first = append(first, e.Type) }),
		nil,
		NotifierFunc(func(e model.Event) { second = append(second, e.Type) }),
	)

	m.Notify(model.Event{Type: model.EventRoundReset})

	assert.Equal(t, []model.EventType{model.EventRoundReset}, first)
	assert.Equal(t, []model.EventType{model.EventRoundReset}, second)
}

func TestMultiSurvivesPanickingSink(t *testing.T) {
	var delivered bool
	m := NewMulti(testutil.NopLogger(),
		NotifierFunc(func(model.Event) { panic("boom") }),
	)
	m.Add(NotifierFunc(func(model.Event) { delivered = true }))

	assert.NotPanics(t, func() {
		m.Notify(model.Event{Type: model.EventBuzzAccepted})
	})
	assert.True(t, delivered)
}

func TestLogWritesEvent(t *testing.T) {
	logs, logger := testutil.NewLogCapture()
	l := NewLog(logger)

	l.Notify(model.Event{Type: model.EventScoreChanged, PlayerID: "p1", PlayerName: "Sam", Score: 10})

	assert.Contains(t, logs.String(), `"event":"score_changed"`)
	assert.Contains(t, logs.String(), "Sam now has 10 points")
	assert.Contains(t, logs.String(), `"component":"events"`)
}

func TestNopDoesNothing(t *testing.T) {
	assert.NotPanics(t, func() { Nop{}.Notify(model.Event{}) })
}
