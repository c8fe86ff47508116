package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
)

type recordingBookingSource struct {
	lastQuery bookings.BookingListQuery
	page      *bookings.PaginatedBookings
}

func (r *recordingBookingSource) List(_ context.Context, query bookings.BookingListQuery) (*bookings.PaginatedBookings, error) {
	r.lastQuery = query
	if r.page != nil {
		return r.page, nil
	}
	return &bookings.PaginatedBookings{}, nil
}

func (r *recordingBookingSource) CountActiveClaims(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func TestGetReportPassesWindowBoundsVerbatim(t *testing.T) {
	want, err := WindowFor("day", time.Now())
	require.NoError(t, err)

	// A booking made just after local midnight may precede the UTC midnight
	// of the same date; it must survive both the list query and the
	// in-memory filter.
	early := confirmedBooking("a@example.com", "movie", "single", 3000, 1, want.From.Add(30*time.Minute))
	source := &recordingBookingSource{page: &bookings.PaginatedBookings{
		Bookings:   []bookings.Booking{early},
		TotalCount: 1,
	}}
	svc := NewService(source, nil)

	report, err := svc.GetReport(context.Background(), ReportQuery{Period: "day"})
	require.NoError(t, err)

	assert.True(t, source.lastQuery.CreatedFrom.Equal(want.From),
		"query lower bound %v, want %v", source.lastQuery.CreatedFrom, want.From)
	assert.True(t, source.lastQuery.CreatedTo.Equal(want.To),
		"query upper bound %v, want %v", source.lastQuery.CreatedTo, want.To)
	assert.Empty(t, source.lastQuery.DateFrom)
	assert.Empty(t, source.lastQuery.DateTo)
	assert.Equal(t, 1, report.Summary.BookingCount)
}

func TestGetReportCustomWindowBounds(t *testing.T) {
	source := &recordingBookingSource{}
	svc := NewService(source, nil)

	_, err := svc.GetReport(context.Background(), ReportQuery{
		Period:   "custom",
		DateFrom: "2026-08-01",
		DateTo:   "2026-08-07",
	})
	require.NoError(t, err)

	want, err := CustomWindow("2026-08-01", "2026-08-07")
	require.NoError(t, err)
	assert.True(t, source.lastQuery.CreatedFrom.Equal(want.From))
	assert.True(t, source.lastQuery.CreatedTo.Equal(want.To))
}
