package holds

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/events"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/seatmap"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/logger"
)

type Service interface {
	HoldSeats(ctx context.Context, req HoldSeatsRequest) (*HoldResponse, error)
	ReleaseHold(ctx context.Context, holdID string) error
	GetHold(ctx context.Context, holdID string) (*Hold, error)
	// ValidateHold confirms the hold exists, belongs to the event, and covers
	// every requested seat. The booking writer calls this before committing.
	ValidateHold(ctx context.Context, holdID, eventID string, seats []string) error
}

// SeatmapSource is the slice of the events service the hold flow needs.
type SeatmapSource interface {
	GetSeatmap(ctx context.Context, id string) (*events.SeatmapResponse, error)
}

type service struct {
	store    Store
	seatmaps SeatmapSource
	ttl      time.Duration
}

func NewService(store Store, seatmaps SeatmapSource, ttl time.Duration) Service {
	return &service{store: store, seatmaps: seatmaps, ttl: ttl}
}

func (s *service) HoldSeats(ctx context.Context, req HoldSeatsRequest) (*HoldResponse, error) {
	view, err := s.seatmaps.GetSeatmap(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]seatmap.Seat, len(view.Seats))
	for _, seat := range view.Seats {
		byID[seat.ID] = seat
	}
	for _, label := range req.Seats {
		seat, ok := byID[label]
		if !ok {
			return nil, fmt.Errorf("%w: %q", seatmap.ErrUnknownSeat, label)
		}
		if seat.Booked {
			return nil, fmt.Errorf("%w: %q", seatmap.ErrSeatBooked, label)
		}
	}

	holdID := uuid.New().String()
	if err := s.store.Hold(ctx, holdID, req.EventID, req.CustomerKey, req.Seats, s.ttl); err != nil {
		logger.GetDefault().LogSeatConflict(ctx, req.EventID, req.Seats)
		return nil, err
	}

	return &HoldResponse{
		HoldID:    holdID,
		EventID:   req.EventID,
		Seats:     req.Seats,
		ExpiresAt: time.Now().Add(s.ttl),
		TTL:       int(s.ttl.Seconds()),
	}, nil
}

func (s *service) ReleaseHold(ctx context.Context, holdID string) error {
	_, err := s.store.Release(ctx, holdID)
	return err
}

func (s *service) GetHold(ctx context.Context, holdID string) (*Hold, error) {
	return s.store.Get(ctx, holdID)
}

func (s *service) ValidateHold(ctx context.Context, holdID, eventID string, seats []string) error {
	hold, err := s.store.Get(ctx, holdID)
	if err != nil {
		return err
	}

	if hold.EventID != eventID {
		return fmt.Errorf("%w: hold belongs to a different event", ErrHoldMismatch)
	}

	covered := make(map[string]struct{}, len(hold.Seats))
	for _, seat := range hold.Seats {
		covered[seat] = struct{}{}
	}
	for _, seat := range seats {
		if _, ok := covered[seat]; !ok {
			return fmt.Errorf("%w: %s", ErrHoldMismatch, seat)
		}
	}

	return nil
}
