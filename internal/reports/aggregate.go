package reports

import (
	"errors"
	"fmt"
	"time"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
)

var ErrInvalidPeriod = errors.New("invalid report period")

// Window is a half-open [From, To) reporting interval.
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// WindowFor resolves a named period relative to a reference time. Weeks start
// on Monday.
func WindowFor(period string, ref time.Time) (Window, error) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	switch period {
	case "day":
		return Window{From: day, To: day.AddDate(0, 0, 1)}, nil
	case "week":
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := day.AddDate(0, 0, -(weekday - 1))
		return Window{From: start, To: start.AddDate(0, 0, 7)}, nil
	case "month":
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return Window{From: start, To: start.AddDate(0, 1, 0)}, nil
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
}

// CustomWindow builds a window from inclusive YYYY-MM-DD bounds.
func CustomWindow(from, to string) (Window, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return Window{}, fmt.Errorf("invalid from date: %w", err)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return Window{}, fmt.Errorf("invalid to date: %w", err)
	}
	return Window{From: start, To: end.AddDate(0, 0, 1)}, nil
}

// FilterConfirmed keeps confirmed bookings inside the window, optionally
// restricted to one event. A zero window keeps everything.
func FilterConfirmed(all []bookings.Booking, window Window, eventID string) []bookings.Booking {
	var out []bookings.Booking
	for _, b := range all {
		if b.Status != bookings.StatusConfirmed {
			continue
		}
		if !window.From.IsZero() && !window.Contains(b.CreatedAt) {
			continue
		}
		if eventID != "" && b.EventID.String() != eventID {
			continue
		}
		out = append(out, b)
	}
	return out
}

// RevenueByEventType sums booking totals per event type.
func RevenueByEventType(confirmed []bookings.Booking) map[string]float64 {
	out := make(map[string]float64)
	for _, b := range confirmed {
		out[b.EventType] += b.TotalAmount
	}
	return out
}

// RevenueBySeatType sums booking totals per seat category.
func RevenueBySeatType(confirmed []bookings.Booking) map[string]float64 {
	out := make(map[string]float64)
	for _, b := range confirmed {
		out[b.SeatType] += b.TotalAmount
	}
	return out
}

// Occupancy is the claimed share of an event's seats, 0 when the layout is
// empty.
func Occupancy(activeClaims, totalSeats int) float64 {
	if totalSeats <= 0 {
		return 0
	}
	return float64(activeClaims) / float64(totalSeats)
}

// Summary captures the headline figures for a reporting window.
type Summary struct {
	TotalRevenue        float64 `json:"total_revenue"`
	BookingCount        int     `json:"booking_count"`
	SeatsSold           int     `json:"seats_sold"`
	UniqueCustomers     int     `json:"unique_customers"`
	RepeatCustomers     int     `json:"repeat_customers"`
	AverageBookingValue float64 `json:"average_booking_value"`
}

// Summarize reduces confirmed bookings to the headline figures. Customers are
// identified by email.
func Summarize(confirmed []bookings.Booking) Summary {
	s := Summary{}
	perCustomer := make(map[string]int)
	for _, b := range confirmed {
		s.TotalRevenue += b.TotalAmount
		s.BookingCount++
		s.SeatsSold += len(b.SeatLabels())
		perCustomer[b.CustomerEmail]++
	}
	s.UniqueCustomers = len(perCustomer)
	for _, n := range perCustomer {
		if n > 1 {
			s.RepeatCustomers++
		}
	}
	if s.BookingCount > 0 {
		s.AverageBookingValue = s.TotalRevenue / float64(s.BookingCount)
	}
	return s
}
