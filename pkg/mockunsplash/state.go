// Package mockunsplash serves a small, stateful imitation of the Unsplash
// random-photos endpoint for tests and offline development.
package mockunsplash

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devnullvoid/pixgrid/pkg/api"
)

// DefaultAccessKey is accepted by a State created with an empty key.
const DefaultAccessKey = "mock-access-key"

var (
	subjects = []string{"Mountain", "Cat", "City", "Forest", "Ocean", "Desert", "Bridge", "Coffee", "Street", "Aurora"}
	moods    = []string{"at dawn", "in the rain", "under stars", "after sunset", "in winter", "from above"}
	names    = []string{"Ada Park", "Jonas Weber", "Mira Sol", "Kenji Ito", "Lena Novak", "Omar Haddad"}
	tagPool  = []string{"nature", "cat", "animal", "urban", "travel", "landscape", "night", "water", "food", "architecture"}
)

// MockPhoto is a photo in the mock pool. URLs are filled in per request so
// they point back at the serving host.
type MockPhoto struct {
	api.Image
	Color [3]uint8
}

// failure is an injected error response.
type failure struct {
	status  int
	message string
}

// State holds the photo pool and request bookkeeping.
type State struct {
	mu        sync.RWMutex
	accessKey string
	photos    []*MockPhoto
	rng       *rand.Rand
	requests  int
	failNext  *failure
}

// NewState returns a State with size generated photos. The same seed always
// yields the same pool.
func NewState(accessKey string, size int, seed int64) *State {
	if accessKey == "" {
		accessKey = DefaultAccessKey
	}

	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	photos := make([]*MockPhoto, 0, size)
	for i := 0; i < size; i++ {
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("pixgrid-mock/%d/%d", seed, i)))

		var description *string
		if i%7 != 3 {
			description = api.StringPtr(fmt.Sprintf("%s %s", subjects[rng.Intn(len(subjects))], moods[rng.Intn(len(moods))]))
		}

		var alt *string
		if i%5 != 1 {
			alt = api.StringPtr(fmt.Sprintf("a photo of %s", tagPool[rng.Intn(len(tagPool))]))
		}

		tagCount := 1 + rng.Intn(3)
		tags := make([]api.Tag, 0, tagCount)
		for j := 0; j < tagCount; j++ {
			tags = append(tags, api.Tag{Title: tagPool[rng.Intn(len(tagPool))]})
		}

		name := names[rng.Intn(len(names))]
		photos = append(photos, &MockPhoto{
			Image: api.Image{
				ID:             id.String()[:11],
				Description:    description,
				AltDescription: alt,
				Width:          2000 + rng.Intn(4000),
				Height:         1500 + rng.Intn(4000),
				CreatedAt:      base.Add(time.Duration(rng.Intn(365*24)) * time.Hour).Format(time.RFC3339),
				User: api.User{
					ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()[:12],
					Name:     name,
					Username: fmt.Sprintf("user%d", rng.Intn(1000)),
				},
				Tags: tags,
			},
			Color: [3]uint8{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))},
		})
	}

	return &State{
		accessKey: accessKey,
		photos:    photos,
		rng:       rng,
	}
}

// AccessKey returns the key the server accepts as client_id.
func (s *State) AccessKey() string {
	return s.accessKey
}

// Requests returns how many random-photo requests have been served.
func (s *State) Requests() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.requests
}

// FailNext makes the next random-photo request answer with status and an
// Unsplash-style error body.
func (s *State) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failNext = &failure{status: status, message: message}
}

// takeFailure returns and clears the injected failure.
func (s *State) takeFailure() *failure {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.failNext
	s.failNext = nil
	s.requests++

	return f
}

// Sample returns count photos starting at a random offset in the pool,
// wrapping around. Photos repeat when count exceeds the pool size.
func (s *State) Sample(count int) []*MockPhoto {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.photos) == 0 || count <= 0 {
		return nil
	}

	start := s.rng.Intn(len(s.photos))
	out := make([]*MockPhoto, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.photos[(start+i)%len(s.photos)])
	}

	return out
}

// Photo looks up a pool photo by id.
func (s *State) Photo(id string) (*MockPhoto, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.photos {
		if p.ID == id {
			return p, true
		}
	}

	return nil, false
}
