package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vipMatchPricing() Pricing {
	return Pricing{
		"sofa":    {Price: 7500, Count: 10},
		"regular": {Price: 3000, Count: 12},
	}
}

func vipMoviePricing() Pricing {
	return Pricing{
		"single": {Price: 5000, Count: 20},
		"couple": {Price: 9000, Count: 7},
		"family": {Price: 15000, Count: 14},
	}
}

func TestGenerateLayoutCounts(t *testing.T) {
	tests := []struct {
		name      string
		eventType EventType
		hallType  HallType
		capacity  int
		pricing   Pricing
		want      int
	}{
		{"vip match", EventTypeMatch, HallTypeVIP, 99, vipMatchPricing(), 22},
		{"vip movie", EventTypeMovie, HallTypeVIP, 5, vipMoviePricing(), 41},
		{"standard movie", EventTypeMovie, HallTypeStandard, 48, Pricing{"standard": {Price: 2500, Count: 48}}, 48},
		{"standard match", EventTypeMatch, HallTypeStandard, 120, Pricing{"standard": {Price: 1500, Count: 120}}, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seats, err := Generate(tt.eventType, "hallA", tt.hallType, tt.capacity, tt.pricing, nil)
			require.NoError(t, err)
			assert.Len(t, seats, tt.want)

			seen := make(map[string]bool)
			for _, seat := range seats {
				assert.False(t, seen[seat.ID], "duplicate seat ID %s", seat.ID)
				seen[seat.ID] = true
				assert.False(t, seat.Booked)
			}
		})
	}
}

func TestGenerateVIPMatchLabels(t *testing.T) {
	seats, err := Generate(EventTypeMatch, "vipHall", HallTypeVIP, 22, vipMatchPricing(), nil)
	require.NoError(t, err)

	assert.Equal(t, "S1_1", seats[0].ID)
	assert.Equal(t, CategorySofa, seats[0].Category)
	assert.Equal(t, "S2_5", seats[9].ID)
	assert.Equal(t, "A1", seats[10].ID)
	assert.Equal(t, CategoryRegular, seats[10].Category)
	assert.Equal(t, "B6", seats[21].ID)
	assert.Equal(t, 7500.0, seats[0].Price)
	assert.Equal(t, 3000.0, seats[21].Price)
}

func TestGenerateVIPMovieLabels(t *testing.T) {
	seats, err := Generate(EventTypeMovie, "vipHall", HallTypeVIP, 10, vipMoviePricing(), nil)
	require.NoError(t, err)

	assert.Equal(t, "S1", seats[0].ID)
	assert.Equal(t, "S20", seats[19].ID)
	assert.Equal(t, "C1", seats[20].ID)
	assert.Equal(t, CategoryCouple, seats[20].Category)
	assert.Equal(t, "F14", seats[40].ID)
	assert.Equal(t, CategoryFamily, seats[40].Category)
}

func TestGenerateStandardHallScenario(t *testing.T) {
	// 48-seat standard hall with a legacy pricing key and two booked seats.
	pricing := Pricing{"standardSingle": {Price: 2500, Count: 48}}
	booked := []string{"HALLA-1", "HALLA-2"}

	seats, err := Generate(EventTypeMovie, "hallA", HallTypeStandard, 48, pricing, booked)
	require.NoError(t, err)
	require.Len(t, seats, 48)

	bookedCount := 0
	for _, seat := range seats {
		assert.Equal(t, 2500.0, seat.Price)
		assert.Equal(t, CategoryStandard, seat.Category)
		if seat.Booked {
			bookedCount++
		}
	}
	assert.Equal(t, 2, bookedCount)
	assert.True(t, seats[0].Booked)
	assert.True(t, seats[1].Booked)
	assert.False(t, seats[2].Booked)
	assert.Equal(t, "HALLA-48", seats[47].ID)
}

func TestGenerateLongHallNameLabelsFitClaimColumn(t *testing.T) {
	// Longest name the hall request binding admits (50 chars) at the max
	// capacity. Labels must stay within the 64-char seat claim column.
	name := "Premium Theatre And Conference Centre Main Stage A"
	require.Len(t, name, 50)
	capacity := 100000

	pricing := Pricing{"standard": {Price: 2000, Count: capacity}}
	seats, err := Generate(EventTypeMovie, name, HallTypeStandard, capacity, pricing, nil)
	require.NoError(t, err)
	require.Len(t, seats, capacity)

	for _, seat := range seats {
		if !assert.LessOrEqual(t, len(seat.ID), 64, "seat %s", seat.ID) {
			break
		}
	}
	assert.Equal(t, "PREMIUM THEATRE AND CONFERENCE CENTRE MAIN STAGE A-100000", seats[capacity-1].ID)
}

func TestGenerateBookedFlagMirrorsInput(t *testing.T) {
	booked := []string{"S3", "C2", "F14"}
	seats, err := Generate(EventTypeMovie, "h", HallTypeVIP, 0, vipMoviePricing(), booked)
	require.NoError(t, err)

	want := map[string]bool{"S3": true, "C2": true, "F14": true}
	for _, seat := range seats {
		assert.Equal(t, want[seat.ID], seat.Booked, "seat %s", seat.ID)
	}
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate("concert", "h", HallTypeVIP, 10, vipMoviePricing(), nil)
	assert.ErrorIs(t, err, ErrInvalidEventType)

	_, err = Generate(EventTypeMovie, "h", "balcony", 10, vipMoviePricing(), nil)
	assert.ErrorIs(t, err, ErrInvalidHallType)

	_, err = Generate(EventTypeMovie, "h", HallTypeStandard, 0, Pricing{"standard": {Price: 100}}, nil)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	// VIP movie layout with a missing couple tier must not price silently.
	_, err = Generate(EventTypeMovie, "h", HallTypeVIP, 10, Pricing{
		"single": {Price: 5000},
		"family": {Price: 15000},
	}, nil)
	assert.ErrorIs(t, err, ErrUnpricedCategory)
}

func TestPlanSeatCount(t *testing.T) {
	count, err := PlanSeatCount(EventTypeMatch, HallTypeVIP, 500)
	require.NoError(t, err)
	assert.Equal(t, 22, count)

	count, err = PlanSeatCount(EventTypeMovie, HallTypeVIP, 3)
	require.NoError(t, err)
	assert.Equal(t, 41, count)

	count, err = PlanSeatCount(EventTypeMatch, HallTypeStandard, 64)
	require.NoError(t, err)
	assert.Equal(t, 64, count)
}

func TestQuoteSeats(t *testing.T) {
	layout, err := Generate(EventTypeMatch, "h", HallTypeVIP, 22, vipMatchPricing(), []string{"S1_2"})
	require.NoError(t, err)

	t.Run("valid selection", func(t *testing.T) {
		quote, err := QuoteSeats(layout, []string{"S1_1", "S2_1"})
		require.NoError(t, err)
		assert.Equal(t, CategorySofa, quote.Category)
		assert.Equal(t, 15000.0, quote.Subtotal)
		assert.Len(t, quote.Seats, 2)
	})

	t.Run("unknown seat", func(t *testing.T) {
		_, err := QuoteSeats(layout, []string{"Z9"})
		assert.ErrorIs(t, err, ErrUnknownSeat)
	})

	t.Run("booked seat", func(t *testing.T) {
		_, err := QuoteSeats(layout, []string{"S1_2"})
		assert.ErrorIs(t, err, ErrSeatBooked)
	})

	t.Run("mixed categories", func(t *testing.T) {
		_, err := QuoteSeats(layout, []string{"S1_1", "A1"})
		assert.ErrorIs(t, err, ErrMixedCategories)
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := QuoteSeats(layout, nil)
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("duplicate ids collapse", func(t *testing.T) {
		quote, err := QuoteSeats(layout, []string{"A1", "A1", "A2"})
		require.NoError(t, err)
		assert.Len(t, quote.Seats, 2)
		assert.Equal(t, 6000.0, quote.Subtotal)
	})
}
