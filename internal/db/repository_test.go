package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tock/internal/models"
)

func TestStopwatchInsertAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	stop := testNow.Add(3 * time.Second)
	sw := &models.Stopwatch{Name: "tea", StartTime: testNow, StopTime: &stop}
	require.NoError(t, store.Stopwatches.Insert(ctx, sw))
	assert.Greater(t, sw.ID, uint(0))

	got, err := store.Stopwatches.GetByID(ctx, sw.ID)
	require.NoError(t, err)
	assert.Equal(t, "tea", got.Name)
	assert.True(t, got.StartTime.Equal(testNow))
	require.NotNil(t, got.StopTime)
	assert.Equal(t, 3*time.Second, got.Elapsed(testNow.Add(time.Hour)))
}

func TestStopwatchInsertUpserts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sw := &models.Stopwatch{Name: "first", StartTime: testNow}
	require.NoError(t, store.Stopwatches.Insert(ctx, sw))

	sw.Name = "second"
	require.NoError(t, store.Stopwatches.Insert(ctx, sw))

	all, err := store.Stopwatches.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "second", all[0].Name)
	assert.True(t, all[0].IsRunning())

	// explicit id that does not exist yet is created
	restored := &models.Stopwatch{ID: 42, Name: "restored", StartTime: testNow}
	require.NoError(t, store.Stopwatches.Insert(ctx, restored))
	got, err := store.Stopwatches.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "restored", got.Name)
}

func TestStopwatchGetMissing(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Stopwatches.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStopwatchDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	a := &models.Stopwatch{Name: "a", StartTime: testNow}
	b := &models.Stopwatch{Name: "b", StartTime: testNow}
	c := &models.Stopwatch{Name: "c", StartTime: testNow}
	for _, sw := range []*models.Stopwatch{a, b, c} {
		require.NoError(t, store.Stopwatches.Insert(ctx, sw))
	}

	require.NoError(t, store.Stopwatches.Delete(ctx, b))
	require.NoError(t, store.Stopwatches.DeleteMany(ctx, []uint{c.ID, 12345}))
	require.NoError(t, store.Stopwatches.DeleteMany(ctx, nil))

	all, err := store.Stopwatches.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, a.ID, all[0].ID)
}

func TestTimerRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	start := testNow
	timer := &models.Timer{
		Name:                  "eggs",
		InitialDurationMillis: 30000,
		RemainingTimeMillis:   20000,
		IsRunning:             true,
		StartTime:             &start,
	}
	require.NoError(t, store.Timers.Insert(ctx, timer))

	got, err := store.Timers.GetByID(ctx, timer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), got.InitialDurationMillis)
	assert.True(t, got.IsRunning)
	assert.Equal(t, int64(15000), got.RemainingMillisAt(testNow.Add(5*time.Second)))

	require.NoError(t, store.Timers.Delete(ctx, got))
	_, err = store.Timers.GetByID(ctx, timer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWatchEmitsOnChange(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := store.Stopwatches.Watch(ctx)
	assert.Empty(t, receive(t, stream))

	require.NoError(t, store.Stopwatches.Insert(ctx, &models.Stopwatch{Name: "w", StartTime: testNow}))
	list := receive(t, stream)
	require.Len(t, list, 1)
	assert.Equal(t, "w", list[0].Name)

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-stream:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestWatchByIDReportsAbsence(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timer := &models.Timer{Name: "t", InitialDurationMillis: 1000, RemainingTimeMillis: 1000}
	require.NoError(t, store.Timers.Insert(ctx, timer))

	stream := store.Timers.WatchByID(ctx, timer.ID)
	first := receive(t, stream)
	require.NotNil(t, first)
	assert.Equal(t, "t", first.Name)

	require.NoError(t, store.Timers.Delete(ctx, timer))
	assert.Nil(t, receive(t, stream))
}
