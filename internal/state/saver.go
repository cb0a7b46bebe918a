package state

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/redwireai/storefront/internal/storage"
)

const saveTimeout = 10 * time.Second

// saver writes snapshots of one entity in the background. Queued snapshots
// coalesce: only the most recent pending snapshot is written, so a slow
// write can never be followed by an older one.
type saver struct {
	key    string
	store  storage.Store
	logger zerolog.Logger

	mu      sync.Mutex
	pending any
	dirty   bool

	// writeMu serializes writes between the loop and explicit flushes.
	writeMu sync.Mutex

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func newSaver(key string, store storage.Store, logger zerolog.Logger) *saver {
	s := &saver{
		key:    key,
		store:  store,
		logger: logger.With().Str("key", key).Logger(),
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// queue records v as the next snapshot to write. It never blocks.
func (s *saver) queue(v any) {
	s.mu.Lock()
	s.pending = v
	s.dirty = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *saver) run() {
	defer close(s.done)
	for {
		select {
		case <-s.wake:
			s.flush(context.Background())
		case <-s.stop:
			s.flush(context.Background())
			return
		}
	}
}

// flush writes the pending snapshot, if any.
func (s *saver) flush(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	v := s.pending
	s.pending = nil
	s.dirty = false
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := s.store.Save(ctx, s.key, v); err != nil {
		s.logger.Error().Err(err).Msg("persisting snapshot failed")
		return
	}
	s.logger.Debug().Msg("snapshot persisted")
}

func (s *saver) close(ctx context.Context) error {
	close(s.stop)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
