package checkpoint

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/notify"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/roster"
	"github.com/NotJanLive/trivia-pulse-points/internal/storage"
)

// DefaultBufferSize is the number of pending player records held before
// new checkpoints are dropped
const DefaultBufferSize = 256

const saveTimeout = 5 * time.Second

// Writer persists the player record attached to each session event.
// Saves happen on a single background goroutine in event order; a full
// queue or a failed save is logged and otherwise ignored.
type Writer struct {
	storage storage.Storage
	logger  *slog.Logger

	queue   chan model.Player
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once

	saved   atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
}

// Ensure Writer is a Notifier
var _ notify.Notifier = (*Writer)(nil)

// NewWriter creates a Writer. Call Run to start persisting.
func NewWriter(storage storage.Storage, bufferSize int, logger *slog.Logger) *Writer {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Writer{
		storage: storage,
		logger:  logger.With(slog.String("component", "checkpoint")),
		queue:   make(chan model.Player, bufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Notify queues the event's player record for saving
func (w *Writer) Notify(event model.Event) {
	if event.Player == nil {
		return
	}

	select {
	case <-w.done:
		return
	default:
	}

	select {
	case w.queue <- event.Player.Clone():
	default:
		w.dropped.Add(1)
		w.logger.Warn("checkpoint dropped - queue full",
			slog.String("player_id", string(event.Player.ID)),
			slog.String("event", string(event.Type)))
	}
}

// Run saves queued records until Close is called or ctx is cancelled.
// Records still queued at shutdown are flushed before Run returns.
func (w *Writer) Run(ctx context.Context) {
	defer close(w.stopped)
	w.logger.Info("checkpoint writer started")

	for {
		select {
		case player := <-w.queue:
			w.save(ctx, player)
		case <-w.done:
			w.drain(ctx)
			return
		case <-ctx.Done():
			w.drain(ctx)
			return
		}
	}
}

func (w *Writer) drain(ctx context.Context) {
	flushed := 0
	for {
		select {
		case player := <-w.queue:
			w.save(ctx, player)
			flushed++
		default:
			w.logger.Info("checkpoint writer stopped", slog.Int("flushed", flushed))
			return
		}
	}
}

func (w *Writer) save(ctx context.Context, player model.Player) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if err := w.storage.SavePlayer(ctx, &player); err != nil {
		w.failed.Add(1)
		w.logger.Error("checkpoint save failed",
			slog.String("player_id", string(player.ID)),
			slog.String("error", err.Error()))
		return
	}
	w.saved.Add(1)
}

// Close stops accepting records and waits for Run to flush the queue
func (w *Writer) Close() {
	w.once.Do(func() { close(w.done) })
	<-w.stopped
}

// Stats reports how many records were saved, dropped, and failed
func (w *Writer) Stats() (saved, dropped, failed int64) {
	return w.saved.Load(), w.dropped.Load(), w.failed.Load()
}

// Restore loads checkpointed players from storage into the roster and
// returns how many were restored
func Restore(ctx context.Context, store storage.Storage, r *roster.Roster) (int, error) {
	stored, err := store.ListPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list checkpointed players: %w", err)
	}

	players := make([]model.Player, 0, len(stored))
	for _, p := range stored {
		players = append(players, *p)
	}
	r.Restore(players)

	return r.Len(), nil
}
