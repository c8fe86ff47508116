package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/events"
)

type Service interface {
	GetReport(ctx context.Context, query ReportQuery) (*Report, error)
	GetOccupancy(ctx context.Context, eventID string) (*OccupancyResponse, error)
	// ExportPDF renders the report and returns the document bytes with a
	// suggested filename.
	ExportPDF(ctx context.Context, query ReportQuery) ([]byte, string, error)
}

type ReportQuery struct {
	Period   string `form:"period" binding:"omitempty,oneof=day week month custom all"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	EventID  string `form:"event_id" binding:"omitempty,uuid"`
}

type OccupancyResponse struct {
	EventID      string  `json:"event_id"`
	EventTitle   string  `json:"event_title"`
	TotalSeats   int     `json:"total_seats"`
	ClaimedSeats int     `json:"claimed_seats"`
	Occupancy    float64 `json:"occupancy"`
}

// BookingSource is the slice of the bookings repository reports read from.
type BookingSource interface {
	List(ctx context.Context, query bookings.BookingListQuery) (*bookings.PaginatedBookings, error)
	CountActiveClaims(ctx context.Context, eventID uuid.UUID) (int64, error)
}

// EventSource resolves events for occupancy figures.
type EventSource interface {
	GetEventByID(ctx context.Context, id string) (*events.Event, error)
}

type service struct {
	bookingSource BookingSource
	eventSource   EventSource
}

func NewService(bookingSource BookingSource, eventSource EventSource) Service {
	return &service{bookingSource: bookingSource, eventSource: eventSource}
}

// reportPageSize bounds one report read. Reports reduce in memory, so the
// window query narrows the set before it gets here.
const reportPageSize = 10000

func (s *service) GetReport(ctx context.Context, query ReportQuery) (*Report, error) {
	window, err := resolveWindow(query)
	if err != nil {
		return nil, err
	}

	listQuery := bookings.BookingListQuery{
		Page:    1,
		Limit:   reportPageSize,
		Status:  string(bookings.StatusConfirmed),
		EventID: query.EventID,
	}
	if !window.From.IsZero() {
		// Pass the window bounds through as-is. Re-encoding them as day
		// strings would shift them to UTC midnights and drop bookings made
		// between local and UTC midnight from the page.
		listQuery.CreatedFrom = window.From
		listQuery.CreatedTo = window.To
	}

	page, err := s.bookingSource.List(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for report: %w", err)
	}

	confirmed := FilterConfirmed(page.Bookings, window, query.EventID)
	return &Report{
		Reference:   newReportReference(),
		GeneratedAt: time.Now(),
		Window:      window,
		Summary:     Summarize(confirmed),
		ByEventType: RevenueByEventType(confirmed),
		BySeatType:  RevenueBySeatType(confirmed),
		Bookings:    confirmed,
	}, nil
}

func resolveWindow(query ReportQuery) (Window, error) {
	switch query.Period {
	case "", "all":
		return Window{}, nil
	case "custom":
		return CustomWindow(query.DateFrom, query.DateTo)
	default:
		return WindowFor(query.Period, time.Now())
	}
}

func newReportReference() string {
	return fmt.Sprintf("RPT-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}

func (s *service) GetOccupancy(ctx context.Context, eventID string) (*OccupancyResponse, error) {
	event, err := s.eventSource.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	claimed, err := s.bookingSource.CountActiveClaims(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count seat claims: %w", err)
	}

	return &OccupancyResponse{
		EventID:      event.ID.String(),
		EventTitle:   event.Title,
		TotalSeats:   event.TotalSeats,
		ClaimedSeats: int(claimed),
		Occupancy:    Occupancy(int(claimed), event.TotalSeats),
	}, nil
}

func (s *service) ExportPDF(ctx context.Context, query ReportQuery) ([]byte, string, error) {
	report, err := s.GetReport(ctx, query)
	if err != nil {
		return nil, "", err
	}

	doc, err := ExportPDF(report)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s.pdf", report.Reference)
	return doc, filename, nil
}
