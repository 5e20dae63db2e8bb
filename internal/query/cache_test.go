// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/metrics"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ── helpers ───────────────────────────────────────────────────────────────────

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T) (*Cache, *fakeClock, *metrics.Manager) {
	t.Helper()
	clock := newFakeClock()
	m := metrics.NewTestManager()
	cfg := config.ClientCache{StaleTime: time.Minute, GCTime: 5 * time.Minute, SizeBytes: 1024 * 1024}
	return NewCache(cfg, m, logger.Nop(), WithClock(clock.Now)), clock, m
}

// counter returns a fetch func that counts calls and returns value.
func counter[T any](calls *atomic.Int32, value T) func(context.Context) (T, error) {
	return func(context.Context) (T, error) {
		calls.Add(1)
		return value, nil
	}
}

// tracked reports how many per-key bookkeeping entries the cache holds.
func (c *Cache) tracked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stored) + len(c.issued) + len(c.keyEpochs) + len(c.inflight)
}

// ── keys ──────────────────────────────────────────────────────────────────────

func TestKey_Equality(t *testing.T) {
	assert.Equal(t, NotesKey(0, 10), NotesKey(0, 10))
	assert.NotEqual(t, NotesKey(0, 10), NotesKey(10, 0))
	assert.NotEqual(t, NoteKey("1"), NotesKey(1, 0))
	assert.NotEqual(t, string(NotesKey(1, 10).storeKey()), string(NotesKey(11, 0).storeKey()))
	assert.NotEqual(t, string(NoteKey("a,b").storeKey()), string(NoteKey("a").storeKey()))
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "notes-count", NotesCountKey().String())
	assert.Equal(t, "notes(skip=0,limit=10)", NotesKey(0, 10).String())
	assert.Equal(t, `note("abc")`, NoteKey("abc").String())
}

// ── Fetch ─────────────────────────────────────────────────────────────────────

func TestFetch_CachesWithinStaleTime(t *testing.T) {
	c, clock, m := newTestCache(t)
	var calls atomic.Int32

	for range 3 {
		got, err := Fetch(context.Background(), c, NotesCountKey(), counter(&calls, int64(4)))
		require.NoError(t, err)
		assert.Equal(t, int64(4), got)
		clock.Advance(10 * time.Second)
	}

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterCacheHits.WithLabelValues("notes-count")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterCacheMisses.WithLabelValues("notes-count")))
}

func TestFetch_RefetchesWhenStale(t *testing.T) {
	c, clock, _ := newTestCache(t)
	var calls atomic.Int32

	_, err := Fetch(context.Background(), c, NotesCountKey(), counter(&calls, int64(1)))
	require.NoError(t, err)
	assert.True(t, c.Fresh(NotesCountKey()))

	clock.Advance(time.Minute)
	assert.False(t, c.Fresh(NotesCountKey()))

	_, err = Fetch(context.Background(), c, NotesCountKey(), counter(&calls, int64(1)))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_RoundTripsNotes(t *testing.T) {
	c, _, _ := newTestCache(t)
	notes := []models.Note{
		{ID: gofakeit.UUID(), Content: gofakeit.Sentence(6), CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: gofakeit.UUID(), Content: gofakeit.Sentence(6), CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	var calls atomic.Int32

	_, err := Fetch(context.Background(), c, NotesKey(0, 10), counter(&calls, notes))
	require.NoError(t, err)

	got, err := Fetch(context.Background(), c, NotesKey(0, 10), counter(&calls, []models.Note(nil)))
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, notes, got)
}

func TestFetch_DistinctParamsAreDistinctEntries(t *testing.T) {
	c, _, _ := newTestCache(t)
	var calls atomic.Int32

	_, _ = Fetch(context.Background(), c, NotesKey(0, 10), counter(&calls, []models.Note{}))
	_, _ = Fetch(context.Background(), c, NotesKey(10, 10), counter(&calls, []models.Note{}))
	_, _ = Fetch(context.Background(), c, NotesKey(0, 10), counter(&calls, []models.Note{}))

	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_ErrorsAreNotCached(t *testing.T) {
	c, _, _ := newTestCache(t)
	boom := errors.New("boom")

	_, err := Fetch(context.Background(), c, NoteKey("x"), func(context.Context) (models.Note, error) {
		return models.Note{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Fresh(NoteKey("x")))
}

func TestFetch_LargeEntryIsServedButNotCached(t *testing.T) {
	c, _, m := newTestCache(t)
	var calls atomic.Int32
	big := strings.Repeat("x", 4096) // > 1/1024 of the cache size

	for range 2 {
		got, err := Fetch(context.Background(), c, NoteKey("big"), counter(&calls, big))
		require.NoError(t, err)
		assert.Equal(t, big, got)
	}

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterCacheDiscarded.WithLabelValues(discardUnstorable)))
}

// ── invalidation ──────────────────────────────────────────────────────────────

func TestInvalidate_Key(t *testing.T) {
	c, _, _ := newTestCache(t)
	var calls atomic.Int32

	_, _ = Fetch(context.Background(), c, NoteKey("a"), counter(&calls, "a"))
	_, _ = Fetch(context.Background(), c, NoteKey("b"), counter(&calls, "b"))

	c.Invalidate(NoteKey("a"))

	assert.False(t, c.Fresh(NoteKey("a")))
	assert.True(t, c.Fresh(NoteKey("b")))
}

func TestInvalidate_IsIdempotent(t *testing.T) {
	c, _, _ := newTestCache(t)
	var calls atomic.Int32

	c.Invalidate(NoteKey("never-cached"))
	_, _ = Fetch(context.Background(), c, NoteKey("a"), counter(&calls, "a"))
	c.Invalidate(NoteKey("a"))
	c.Invalidate(NoteKey("a"))
	_, _ = Fetch(context.Background(), c, NoteKey("a"), counter(&calls, "a"))
	_, _ = Fetch(context.Background(), c, NoteKey("a"), counter(&calls, "a"))

	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidateTag_AllPagesOnly(t *testing.T) {
	c, _, _ := newTestCache(t)
	var calls atomic.Int32

	_, _ = Fetch(context.Background(), c, NotesKey(0, 10), counter(&calls, []models.Note{}))
	_, _ = Fetch(context.Background(), c, NotesKey(10, 10), counter(&calls, []models.Note{}))
	_, _ = Fetch(context.Background(), c, NotesCountKey(), counter(&calls, int64(0)))
	_, _ = Fetch(context.Background(), c, NoteKey("a"), counter(&calls, "a"))

	c.InvalidateTag(TagNotes)

	assert.False(t, c.Fresh(NotesKey(0, 10)))
	assert.False(t, c.Fresh(NotesKey(10, 10)))
	assert.True(t, c.Fresh(NotesCountKey()))
	assert.True(t, c.Fresh(NoteKey("a")))
}

func TestClear(t *testing.T) {
	c, _, _ := newTestCache(t)
	var calls atomic.Int32

	_, _ = Fetch(context.Background(), c, NotesCountKey(), counter(&calls, int64(3)))
	c.Clear()

	assert.False(t, c.Fresh(NotesCountKey()))
}

func TestInvalidate_ForgetsDroppedKeys(t *testing.T) {
	c, _, _ := newTestCache(t)
	var calls atomic.Int32

	for i := range 50 {
		key := NoteKey(gofakeit.UUID())
		_, _ = Fetch(context.Background(), c, key, counter(&calls, "v"))
		if i%2 == 0 {
			c.Invalidate(key)
		}
	}
	for i := range 20 {
		_, _ = Fetch(context.Background(), c, NotesKey(i*10, 10), counter(&calls, []models.Note{}))
	}

	c.InvalidateTag(TagNote, TagNotes)

	assert.Zero(t, c.tracked())
}

func TestInvalidate_RepeatedWhileInFlight_NotCached(t *testing.T) {
	c, _, m := newTestCache(t)
	key := NoteKey("a")

	_, err := Fetch(context.Background(), c, key, func(context.Context) (string, error) {
		c.Invalidate(key)
		c.Invalidate(key)
		return "stale", nil
	})

	require.NoError(t, err)
	assert.False(t, c.Fresh(key))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterCacheDiscarded.WithLabelValues(discardInvalidated)))
	assert.Zero(t, c.tracked())
}

func TestFetch_FailedFetchLeavesNoState(t *testing.T) {
	c, _, _ := newTestCache(t)

	_, err := Fetch(context.Background(), c, NoteKey("a"), func(context.Context) (string, error) {
		return "", errors.New("boom")
	})

	require.Error(t, err)
	assert.Zero(t, c.tracked())
}

// ── stale-response guard ──────────────────────────────────────────────────────

func TestFetch_InvalidatedWhileInFlight_NotCached(t *testing.T) {
	c, _, m := newTestCache(t)

	got, err := Fetch(context.Background(), c, NotesKey(0, 10), func(context.Context) ([]models.Note, error) {
		// a mutation lands while the list request is on the wire
		c.InvalidateTag(TagNotes)
		return []models.Note{{ID: "old"}}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "old", got[0].ID)
	assert.False(t, c.Fresh(NotesKey(0, 10)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterCacheDiscarded.WithLabelValues(discardInvalidated)))
}

func TestFetch_ClearedWhileInFlight_NotCached(t *testing.T) {
	c, _, _ := newTestCache(t)

	_, err := Fetch(context.Background(), c, NotesCountKey(), func(context.Context) (int64, error) {
		c.Clear()
		return 5, nil
	})

	require.NoError(t, err)
	assert.False(t, c.Fresh(NotesCountKey()))
}

func TestFetch_AbandonedQuery_NotCached(t *testing.T) {
	c, _, m := newTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := Fetch(ctx, c, NoteKey("a"), func(context.Context) (string, error) {
		// the view went away before the response arrived
		cancel()
		return "late", nil
	})

	require.NoError(t, err)
	assert.False(t, c.Fresh(NoteKey("a")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterCacheDiscarded.WithLabelValues(discardAbandoned)))
}

func TestFetch_OlderResponseDoesNotOverwriteNewer(t *testing.T) {
	c, _, m := newTestCache(t)
	key := NoteKey("a")

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = Fetch(context.Background(), c, key, func(context.Context) (string, error) {
			close(firstStarted)
			<-releaseFirst
			return "older", nil
		})
	}()

	<-firstStarted
	got, err := Fetch(context.Background(), c, key, func(context.Context) (string, error) {
		return "newer", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "newer", got)

	close(releaseFirst)
	wg.Wait()

	var calls atomic.Int32
	cached, err := Fetch(context.Background(), c, key, counter(&calls, "unused"))
	require.NoError(t, err)
	assert.Equal(t, "newer", cached)
	assert.Zero(t, calls.Load())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterCacheDiscarded.WithLabelValues(discardSuperseded)))
}

func TestFetch_ConcurrentAccess(t *testing.T) {
	c, _, _ := newTestCache(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := NotesKey(i%3*10, 10)
			_, _ = Fetch(context.Background(), c, key, func(context.Context) ([]models.Note, error) {
				return []models.Note{{ID: gofakeit.UUID()}}, nil
			})
			if i%5 == 0 {
				c.InvalidateTag(TagNotes)
			}
		}()
	}
	wg.Wait()
}
