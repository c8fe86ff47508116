package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionCategoryLock(t *testing.T) {
	sel := NewSelection(ModeMulti)

	sofa := Seat{ID: "S1_1", Category: CategorySofa, Price: 7500}
	regular := Seat{ID: "A1", Category: CategoryRegular, Price: 3000}

	require.NoError(t, sel.Toggle(sofa))
	assert.Equal(t, CategorySofa, sel.Category())

	// Cross-category pick is rejected and the selection is unchanged.
	err := sel.Toggle(regular)
	assert.ErrorIs(t, err, ErrCategoryLocked)
	assert.Equal(t, []string{"S1_1"}, sel.IDs())

	// Deselecting the last seat unlocks the category.
	require.NoError(t, sel.Toggle(sofa))
	assert.Empty(t, sel.IDs())
	assert.Equal(t, Category(""), sel.Category())
	require.NoError(t, sel.Toggle(regular))
	assert.Equal(t, CategoryRegular, sel.Category())
}

func TestSelectionSingletonReplaces(t *testing.T) {
	sel := NewSelection(ModeSingleton)

	require.NoError(t, sel.Toggle(Seat{ID: "C1", Category: CategoryCouple, Price: 9000}))
	require.NoError(t, sel.Toggle(Seat{ID: "F3", Category: CategoryFamily, Price: 15000}))

	assert.Equal(t, []string{"F3"}, sel.IDs())
	assert.Equal(t, CategoryFamily, sel.Category())
	assert.Equal(t, 15000.0, sel.TotalPrice())

	// Toggling the selected seat deselects it.
	require.NoError(t, sel.Toggle(Seat{ID: "F3", Category: CategoryFamily, Price: 15000}))
	assert.Empty(t, sel.IDs())
}

func TestSelectionAccumulatesAndPrices(t *testing.T) {
	sel := NewSelection(ModeMulti)

	for _, id := range []string{"A1", "A2", "A3"} {
		require.NoError(t, sel.Toggle(Seat{ID: id, Category: CategoryRegular, Price: 3000}))
	}

	assert.Equal(t, []string{"A1", "A2", "A3"}, sel.IDs())
	assert.Equal(t, 9000.0, sel.TotalPrice())

	sel.Clear()
	assert.Empty(t, sel.Seats())
	assert.Zero(t, sel.TotalPrice())
}

func TestSelectionRejectsBookedSeat(t *testing.T) {
	sel := NewSelection(ModeMulti)
	err := sel.Toggle(Seat{ID: "A1", Category: CategoryRegular, Price: 3000, Booked: true})
	assert.ErrorIs(t, err, ErrSeatBooked)
	assert.Empty(t, sel.IDs())
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, ModeSingleton, ModeFor(EventTypeMovie, HallTypeVIP))
	assert.Equal(t, ModeMulti, ModeFor(EventTypeMovie, HallTypeStandard))
	assert.Equal(t, ModeMulti, ModeFor(EventTypeMatch, HallTypeVIP))
	assert.Equal(t, ModeMulti, ModeFor(EventTypeMatch, HallTypeStandard))
}
