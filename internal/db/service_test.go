package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStopwatchDefaults(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sw, err := store.CreateStopwatch(ctx, CreateStopwatchRequest{Name: "  "}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Stopwatch 1740819600000", sw.Name)
	assert.False(t, sw.IsRunning())
	assert.Equal(t, time.Duration(0), sw.Elapsed(testNow.Add(time.Hour)))

	started, err := store.CreateStopwatch(ctx, CreateStopwatchRequest{Name: "run", Start: true}, testNow)
	require.NoError(t, err)
	assert.True(t, started.IsRunning())
	assert.Equal(t, 5*time.Second, started.Elapsed(testNow.Add(5*time.Second)))
}

func TestStopwatchToggleResetRename(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sw, err := store.CreateStopwatch(ctx, CreateStopwatchRequest{Name: "focus", Start: true}, testNow)
	require.NoError(t, err)

	paused, err := store.ToggleStopwatch(ctx, sw.ID, testNow.Add(10*time.Second))
	require.NoError(t, err)
	assert.False(t, paused.IsRunning())

	stored, err := store.Stopwatches.GetByID(ctx, sw.ID)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, stored.Elapsed(testNow.Add(time.Hour)))

	renamed, err := store.RenameStopwatch(ctx, RenameRequest{ID: sw.ID, Name: " deep work "})
	require.NoError(t, err)
	assert.Equal(t, "deep work", renamed.Name)

	reset, err := store.ResetStopwatch(ctx, sw.ID, testNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), reset.Elapsed(testNow.Add(2*time.Minute)))
	assert.Equal(t, "deep work", reset.Name)
}

func TestStopwatchOperationsOnMissing(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.ToggleStopwatch(ctx, 7, testNow)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.RenameStopwatch(ctx, RenameRequest{ID: 7, Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTimer(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	timer, err := store.CreateTimer(ctx, CreateTimerRequest{Name: "pasta", Duration: 9 * time.Minute}, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(540000), timer.InitialDurationMillis)
	assert.Equal(t, int64(540000), timer.RemainingTimeMillis)
	assert.False(t, timer.IsRunning)
	assert.Nil(t, timer.StartTime)

	unnamed, err := store.CreateTimer(ctx, CreateTimerRequest{Duration: time.Second, Start: true}, testNow)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(unnamed.Name, "Timer "))
	assert.True(t, unnamed.IsRunning)
}

func TestCreateTimerValidation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.CreateTimer(ctx, CreateTimerRequest{Duration: -time.Second}, testNow)
	assert.EqualError(t, err, "duration must not be negative")

	_, err = store.CreateTimer(ctx, CreateTimerRequest{Duration: 100 * time.Hour}, testNow)
	assert.EqualError(t, err, "duration must be at most 99:59:59")

	_, err = store.CreateTimer(ctx, CreateTimerRequest{Name: strings.Repeat("x", 101), Duration: time.Second}, testNow)
	assert.EqualError(t, err, "name must be at most 100 characters")

	_, err = store.CreateTimer(ctx, CreateTimerRequest{Duration: MaxTimerDuration}, testNow)
	assert.NoError(t, err)
}

func TestTimerToggleAndReset(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	timer, err := store.CreateTimer(ctx, CreateTimerRequest{Name: "plank", Duration: 30 * time.Second}, testNow)
	require.NoError(t, err)

	_, err = store.ToggleTimer(ctx, timer.ID, testNow)
	require.NoError(t, err)
	paused, err := store.ToggleTimer(ctx, timer.ID, testNow.Add(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(25000), paused.RemainingTimeMillis)

	stored, err := store.Timers.GetByID(ctx, timer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), stored.RemainingTimeMillis)
	assert.False(t, stored.IsRunning)

	reset, err := store.ResetTimer(ctx, timer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), reset.RemainingTimeMillis)
}

func TestRenameValidation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	timer, err := store.CreateTimer(ctx, CreateTimerRequest{Name: "a", Duration: time.Second}, testNow)
	require.NoError(t, err)

	_, err = store.RenameTimer(ctx, RenameRequest{ID: timer.ID, Name: "   "})
	assert.EqualError(t, err, "name is required")

	renamed, err := store.RenameTimer(ctx, RenameRequest{ID: timer.ID, Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", renamed.Name)
}

func TestDeleteMany(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	a, err := store.CreateTimer(ctx, CreateTimerRequest{Name: "a", Duration: time.Second}, testNow)
	require.NoError(t, err)
	b, err := store.CreateTimer(ctx, CreateTimerRequest{Name: "b", Duration: time.Second}, testNow)
	require.NoError(t, err)

	require.NoError(t, store.DeleteTimers(ctx, a.ID, b.ID))
	all, err := store.Timers.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
