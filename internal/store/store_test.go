package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devnullvoid/pixgrid/pkg/api"
)

type fetchFunc func(ctx context.Context) ([]api.Image, error)

func (f fetchFunc) FetchRandomImages(ctx context.Context) ([]api.Image, error) {
	return f(ctx)
}

func images(ids ...string) []api.Image {
	out := make([]api.Image, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.Image{ID: id})
	}

	return out
}

func ids(list []api.Image) []string {
	out := make([]string, 0, len(list))
	for _, img := range list {
		out = append(out, img.ID)
	}

	return out
}

func TestNew_StartsIdle(t *testing.T) {
	s := New()
	state := s.Snapshot()

	assert.Equal(t, StatusIdle, state.Status)
	assert.Empty(t, state.Err)
	assert.Empty(t, state.Images)
}

func TestActions(t *testing.T) {
	s := New()

	s.BeginLoad()
	assert.Equal(t, StatusLoading, s.Snapshot().Status)

	s.ReceiveImages(images("a", "b"))
	state := s.Snapshot()
	assert.Equal(t, StatusIdle, state.Status)
	assert.Equal(t, []string{"a", "b"}, ids(state.Images))

	s.ReceiveError("boom")
	state = s.Snapshot()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Equal(t, "boom", state.Err)
	assert.Equal(t, []string{"a", "b"}, ids(state.Images), "stale data stays visible")

	s.BeginLoad()
	state = s.Snapshot()
	assert.Equal(t, StatusLoading, state.Status)
	assert.Empty(t, state.Err)
}

func TestReceiveImages_ReplacesWholesale(t *testing.T) {
	s := New()
	s.ReceiveImages(images("a", "b", "c"))
	s.ReceiveImages(images("d", "d"))

	assert.Equal(t, []string{"d", "d"}, ids(s.Snapshot().Images))
}

func TestRemoveImagesByID(t *testing.T) {
	tests := []struct {
		name    string
		remove  []string
		want    []string
		removed int
	}{
		{name: "middle", remove: []string{"b"}, want: []string{"a", "c", "d"}, removed: 1},
		{name: "keeps order", remove: []string{"d", "a"}, want: []string{"b", "c"}, removed: 2},
		{name: "unknown ids ignored", remove: []string{"x", "c", "y"}, want: []string{"a", "b", "d"}, removed: 1},
		{name: "nothing", remove: nil, want: []string{"a", "b", "c", "d"}, removed: 0},
		{name: "all", remove: []string{"a", "b", "c", "d"}, want: []string{}, removed: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.ReceiveImages(images("a", "b", "c", "d"))
			before := len(s.Snapshot().Images)

			removed := s.RemoveImagesByID(tt.remove)

			after := s.Snapshot().Images
			assert.Equal(t, tt.removed, removed)
			assert.Equal(t, tt.want, ids(after))
			assert.Equal(t, before-tt.removed, len(after))
			for _, id := range tt.remove {
				assert.NotContains(t, ids(after), id)
			}
		})
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New()
	s.ReceiveImages(images("a", "b"))

	snap := s.Snapshot()
	snap.Images[0].ID = "changed"

	assert.Equal(t, "a", s.Snapshot().Images[0].ID)
}

func TestLoad_Success(t *testing.T) {
	s := New()
	var seen []Status
	s.Subscribe(func(st State) { seen = append(seen, st.Status) })

	err := s.Load(context.Background(), fetchFunc(func(ctx context.Context) ([]api.Image, error) {
		assert.Equal(t, StatusLoading, s.Snapshot().Status)
		return images("a", "b", "c"), nil
	}))

	require.NoError(t, err)
	assert.Equal(t, []Status{StatusLoading, StatusIdle}, seen)
	assert.Equal(t, []string{"a", "b", "c"}, ids(s.Snapshot().Images))
}

func TestLoad_FailureKeepsData(t *testing.T) {
	s := New()
	s.ReceiveImages(images("a", "b"))

	err := s.Load(context.Background(), fetchFunc(func(ctx context.Context) ([]api.Image, error) {
		return nil, errors.New("timeout")
	}))

	require.Error(t, err)
	state := s.Snapshot()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Equal(t, "timeout", state.Err)
	assert.Equal(t, []string{"a", "b"}, ids(state.Images))

	// Retry is just another Load.
	require.NoError(t, s.Load(context.Background(), fetchFunc(func(ctx context.Context) ([]api.Image, error) {
		return images("z"), nil
	})))
	state = s.Snapshot()
	assert.Equal(t, StatusIdle, state.Status)
	assert.Empty(t, state.Err)
	assert.Equal(t, []string{"z"}, ids(state.Images))
}

func TestLoad_AppliesOneTerminalAction(t *testing.T) {
	s := New()
	var states []State
	s.Subscribe(func(st State) { states = append(states, st) })

	_ = s.Load(context.Background(), fetchFunc(func(ctx context.Context) ([]api.Image, error) {
		return nil, errors.New("nope")
	}))

	require.Len(t, states, 2)
	assert.Equal(t, StatusLoading, states[0].Status)
	assert.Equal(t, StatusFailed, states[1].Status)
}

func TestSubscribe_OrderAndUnsubscribe(t *testing.T) {
	s := New()
	var calls []string

	unsubA := s.Subscribe(func(State) { calls = append(calls, "a") })
	s.Subscribe(func(State) { calls = append(calls, "b") })

	s.BeginLoad()
	assert.Equal(t, []string{"a", "b"}, calls)

	unsubA()
	unsubA()
	calls = nil
	s.ReceiveImages(nil)
	assert.Equal(t, []string{"b"}, calls)

	assert.NotPanics(t, func() { s.Subscribe(nil)() })
}

func TestSubscribe_ObserverCanReadStore(t *testing.T) {
	s := New()
	var got int
	s.Subscribe(func(State) {
		// The lock is released before observers run.
		got = len(s.Snapshot().Images)
	})

	s.ReceiveImages(images("a", "b"))
	assert.Equal(t, 2, got)
}

func TestStore_ConcurrentUse(t *testing.T) {
	s := New()
	s.ReceiveImages(images("a", "b", "c", "d", "e", "f"))

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.RemoveImagesByID([]string{id})
			_ = s.Snapshot()
		}(id)
	}
	wg.Wait()

	assert.Empty(t, s.Snapshot().Images)
}
