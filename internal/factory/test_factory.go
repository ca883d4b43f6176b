package factory

import (
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/mocks"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/auth"
	"github.com/NotJanLive/trivia-pulse-points/internal/storage/memory"
)

// TestAdminSecret is the moderator secret used by NewTestApp
const TestAdminSecret = "test-admin-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDGenerator
	Recorder  *mocks.RecordingNotifier
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDGenerator()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	authCfg := auth.Config{
		SessionDuration: time.Hour,
		AdminSecret:     TestAdminSecret,
		BcryptCost:      bcrypt.MinCost,
	}

	app, err := newWithDependencies(store, mockClock, mockIDs, authCfg, 0, logger)
	if err != nil {
		// Only reachable with an invalid bcrypt cost
		panic(err)
	}

	recorder := mocks.NewRecordingNotifier()
	app.Notifier.Add(recorder)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
		Recorder:  recorder,
	}
}
