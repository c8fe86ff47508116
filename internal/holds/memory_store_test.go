package holds

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreHoldAndRelease(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Hold(ctx, "h1", "event-1", "alice@example.com", []string{"A1", "A2"}, time.Minute)
	require.NoError(t, err)

	hold, err := store.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "event-1", hold.EventID)
	assert.ElementsMatch(t, []string{"A1", "A2"}, hold.Seats)

	released, err := store.Release(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, 2, released)

	_, err = store.Get(ctx, "h1")
	assert.ErrorIs(t, err, ErrHoldNotFound)
}

func TestMemoryStoreConflictIsAllOrNothing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Hold(ctx, "h1", "event-1", "alice@example.com", []string{"A2"}, time.Minute))

	// A2 is taken, so the whole request fails and A1 stays free.
	err := store.Hold(ctx, "h2", "event-1", "bob@example.com", []string{"A1", "A2"}, time.Minute)
	assert.ErrorIs(t, err, ErrSeatHeld)

	require.NoError(t, store.Hold(ctx, "h3", "event-1", "carol@example.com", []string{"A1"}, time.Minute))
}

func TestMemoryStoreSeatsScopedPerEvent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Hold(ctx, "h1", "event-1", "alice@example.com", []string{"A1"}, time.Minute))
	require.NoError(t, store.Hold(ctx, "h2", "event-2", "bob@example.com", []string{"A1"}, time.Minute))
}

func TestMemoryStoreExpiredHoldFreesSeats(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Hold(ctx, "h1", "event-1", "alice@example.com", []string{"A1"}, 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, store.Hold(ctx, "h2", "event-1", "bob@example.com", []string{"A1"}, time.Minute))
	_, err := store.Get(ctx, "h1")
	assert.ErrorIs(t, err, ErrHoldNotFound)
}

// Two customers race for the same seat; exactly one hold may win.
func TestMemoryStoreConcurrentHoldsSingleWinner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const racers = 16
	var wg sync.WaitGroup
	results := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			holdID := fmt.Sprintf("hold-%d", i)
			customer := fmt.Sprintf("racer-%d@example.com", i)
			results[i] = store.Hold(ctx, holdID, "event-1", customer, []string{"S1", "S2"}, time.Minute)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSeatHeld)
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent hold must succeed")
}
