package reports

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
)

func confirmedBooking(email, eventType, seatType string, total float64, seats int, at time.Time) bookings.Booking {
	b := bookings.Booking{
		ID:            uuid.New(),
		CustomerEmail: email,
		EventType:     eventType,
		SeatType:      seatType,
		TotalAmount:   total,
		Status:        bookings.StatusConfirmed,
		CreatedAt:     at,
	}
	for i := 0; i < seats; i++ {
		b.Claims = append(b.Claims, bookings.SeatClaim{EventID: b.EventID})
	}
	return b
}

func TestRevenueBreakdownSumsToTotal(t *testing.T) {
	now := time.Now()
	all := []bookings.Booking{
		confirmedBooking("a@example.com", "movie", "single", 3000, 1, now),
		confirmedBooking("b@example.com", "movie", "couple", 9000, 1, now),
		confirmedBooking("a@example.com", "match", "sofa", 15000, 2, now),
		confirmedBooking("c@example.com", "match", "regular", 5000, 2, now),
	}

	summary := Summarize(all)
	byType := RevenueByEventType(all)
	bySeat := RevenueBySeatType(all)

	var typeSum, seatSum float64
	for _, v := range byType {
		typeSum += v
	}
	for _, v := range bySeat {
		seatSum += v
	}

	assert.Equal(t, summary.TotalRevenue, typeSum)
	assert.Equal(t, summary.TotalRevenue, seatSum)
	assert.Equal(t, 32000.0, summary.TotalRevenue)
}

func TestSummarizeCustomerCounts(t *testing.T) {
	now := time.Now()
	all := []bookings.Booking{
		confirmedBooking("a@example.com", "movie", "single", 3000, 1, now),
		confirmedBooking("a@example.com", "movie", "single", 3000, 1, now),
		confirmedBooking("b@example.com", "movie", "single", 3000, 1, now),
	}

	summary := Summarize(all)
	assert.Equal(t, 3, summary.BookingCount)
	assert.Equal(t, 2, summary.UniqueCustomers)
	assert.Equal(t, 1, summary.RepeatCustomers)
	assert.Equal(t, 3000.0, summary.AverageBookingValue)
}

func TestSummarizeEmptyInput(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 0.0, summary.AverageBookingValue)
	assert.Equal(t, 0, summary.UniqueCustomers)
}

func TestFilterConfirmedDropsOtherStatuses(t *testing.T) {
	now := time.Now()
	pending := confirmedBooking("p@example.com", "movie", "single", 1000, 1, now)
	pending.Status = bookings.StatusPending
	cancelled := confirmedBooking("c@example.com", "movie", "single", 1000, 1, now)
	cancelled.Status = bookings.StatusCancelled

	all := []bookings.Booking{
		pending,
		cancelled,
		confirmedBooking("ok@example.com", "movie", "single", 1000, 1, now),
	}

	out := FilterConfirmed(all, Window{}, "")
	require.Len(t, out, 1)
	assert.Equal(t, "ok@example.com", out[0].CustomerEmail)
}

func TestFilterConfirmedWindow(t *testing.T) {
	window, err := WindowFor("day", time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	inside := confirmedBooking("in@example.com", "movie", "single", 1000, 1,
		time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC))
	outside := confirmedBooking("out@example.com", "movie", "single", 1000, 1,
		time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC))

	out := FilterConfirmed([]bookings.Booking{inside, outside}, window, "")
	require.Len(t, out, 1)
	assert.Equal(t, "in@example.com", out[0].CustomerEmail)
}

func TestWindowForWeekStartsMonday(t *testing.T) {
	// 2026-08-28 is a Friday.
	window, err := WindowFor("week", time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), window.From)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), window.To)
}

func TestWindowForInvalidPeriod(t *testing.T) {
	_, err := WindowFor("fortnight", time.Now())
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestOccupancyZeroSeats(t *testing.T) {
	assert.Equal(t, 0.0, Occupancy(10, 0))
	assert.Equal(t, 0.5, Occupancy(24, 48))
	assert.Equal(t, 1.0, Occupancy(48, 48))
}

func TestExportPDFProducesDocument(t *testing.T) {
	now := time.Now()
	confirmed := []bookings.Booking{
		confirmedBooking("a@example.com", "movie", "single", 3000, 1, now),
		confirmedBooking("b@example.com", "match", "sofa", 15000, 2, now),
	}

	report := &Report{
		Reference:   "RPT-20260828-TEST01",
		GeneratedAt: now,
		Summary:     Summarize(confirmed),
		ByEventType: RevenueByEventType(confirmed),
		BySeatType:  RevenueBySeatType(confirmed),
		Bookings:    confirmed,
	}

	doc, err := ExportPDF(report)
	require.NoError(t, err)
	assert.True(t, len(doc) > 1000, "PDF output should be a non-trivial document")
	assert.Equal(t, "%PDF", string(doc[:4]))
}
