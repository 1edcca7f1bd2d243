// Package store holds the session's fetched images and load status.
//
// A Store is created once per session and handed to the view. It changes
// only through its action methods, and every action notifies subscribers
// with a fresh snapshot.
package store

import (
	"context"
	"sync"

	"github.com/devnullvoid/pixgrid/pkg/api"
	"github.com/devnullvoid/pixgrid/pkg/api/interfaces"
)

// Status describes the outcome of the most recent fetch attempt.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusFailed  Status = "failed"
)

// State is a read-only snapshot of the store.
type State struct {
	Images []api.Image
	Status Status
	// Err is empty unless Status is StatusFailed.
	Err string
}

// Fetcher retrieves one batch of images. *api.Client satisfies it.
type Fetcher interface {
	FetchRandomImages(ctx context.Context) ([]api.Image, error)
}

// Observer receives a snapshot after every action.
type Observer func(State)

type subscription struct {
	id uint64
	fn Observer
}

// Store is the single source of truth for fetched images.
type Store struct {
	mu     sync.RWMutex
	images []api.Image
	status Status
	err    string

	subMu  sync.Mutex
	subs   []subscription
	nextID uint64

	logger interfaces.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load transitions.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns an empty, idle store.
func New(opts ...Option) *Store {
	s := &Store{
		status: StatusIdle,
		logger: &interfaces.NoOpLogger{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	images := make([]api.Image, len(s.images))
	copy(images, s.images)

	return State{Images: images, Status: s.status, Err: s.err}
}

// Subscribe registers fn and returns a function that removes it. Observers
// run after the store lock is released, in registration order. They must
// not call store actions directly.
func (s *Store) Subscribe(fn Observer) func() {
	if fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()

			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) notify(state State) {
	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(state)
	}
}

// apply runs mutate under the write lock and then notifies observers.
func (s *Store) apply(mutate func()) State {
	s.mu.Lock()
	mutate()
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state)

	return state
}

// BeginLoad marks a fetch as in flight. Images are left as they are.
func (s *Store) BeginLoad() {
	s.apply(func() {
		s.status = StatusLoading
		s.err = ""
	})
}

// ReceiveImages replaces the image list with images and returns to idle.
func (s *Store) ReceiveImages(images []api.Image) {
	s.apply(func() {
		s.images = images
		s.status = StatusIdle
		s.err = ""
	})
}

// ReceiveError records a failed fetch. Previously loaded images stay.
func (s *Store) ReceiveError(message string) {
	s.apply(func() {
		s.status = StatusFailed
		s.err = message
	})
}

// RemoveImagesByID drops every image whose id is in ids, keeping the order
// of the rest. Unknown ids are ignored. It returns how many were removed.
func (s *Store) RemoveImagesByID(ids []string) int {
	if len(ids) == 0 {
		return 0
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	removed := 0
	s.apply(func() {
		kept := make([]api.Image, 0, len(s.images))
		for _, img := range s.images {
			if _, ok := drop[img.ID]; ok {
				removed++
				continue
			}
			kept = append(kept, img)
		}
		s.images = kept
	})

	s.logger.Debug("Removed %d images (%d ids requested)", removed, len(ids))

	return removed
}

// Load fetches a batch through f and applies exactly one of ReceiveImages
// or ReceiveError. The returned error has already been recorded in the
// store; callers may ignore it.
func (s *Store) Load(ctx context.Context, f Fetcher) error {
	s.BeginLoad()
	s.logger.Debug("Loading images")

	images, err := f.FetchRandomImages(ctx)
	if err != nil {
		s.logger.Error("Image load failed: %v", err)
		s.ReceiveError(err.Error())

		return err
	}

	s.logger.Info("Loaded %d images", len(images))
	s.ReceiveImages(images)

	return nil
}
