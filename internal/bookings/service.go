package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/events"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/seatmap"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/config"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/constants"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/cache"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/logger"
)

type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error)
	GetBookingByID(ctx context.Context, id string) (*BookingResponse, error)
	GetBookingByCode(ctx context.Context, code string) (*BookingResponse, error)
	GetBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	CancelBooking(ctx context.Context, id string) (*BookingResponse, error)
	// ConfirmBooking flips a pending booking to confirmed once payment has
	// been verified. The payments service is the only caller.
	ConfirmBooking(ctx context.Context, id string, paymentRef string) (*BookingResponse, error)
	// SweepExpiredPending cancels pending bookings older than the payment TTL
	// and returns how many were released.
	SweepExpiredPending(ctx context.Context) (int, error)
	SetCacheService(cacheService cache.Service)
	SetNotifier(notifier Notifier)
	SetHoldValidator(validator HoldValidator)
}

// EventSource is the slice of the events service the booking writer needs.
type EventSource interface {
	GetEventByID(ctx context.Context, id string) (*events.Event, error)
	GetSeatmap(ctx context.Context, id string) (*events.SeatmapResponse, error)
}

// HoldValidator checks and releases pre-checkout holds.
type HoldValidator interface {
	ValidateHold(ctx context.Context, holdID, eventID string, seats []string) error
	ReleaseHold(ctx context.Context, holdID string) error
}

// Notifier publishes booking lifecycle messages. Nil means notifications are
// disabled and lifecycle events are only logged.
type Notifier interface {
	PublishBookingConfirmed(ctx context.Context, booking *BookingResponse) error
	PublishBookingCancelled(ctx context.Context, booking *BookingResponse) error
}

type service struct {
	repo         Repository
	eventSource  EventSource
	holds        HoldValidator
	notifier     Notifier
	cacheService cache.Service
	cfg          config.BookingConfig
}

func NewService(repo Repository, eventSource EventSource, cfg config.BookingConfig) Service {
	return &service{repo: repo, eventSource: eventSource, cfg: cfg}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

func (s *service) SetHoldValidator(validator HoldValidator) {
	s.holds = validator
}

func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error) {
	event, err := s.eventSource.GetEventByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event.Status != events.StatusActive {
		return nil, events.ErrEventNotActive
	}

	// Revalidate server-side: seats must come from the generated layout with
	// current claims applied, and the amount is recomputed from the pricing
	// snapshot. Client-submitted prices are never trusted.
	view, err := s.eventSource.GetSeatmap(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	quote, err := seatmap.QuoteSeats(view.Seats, req.Seats)
	if err != nil {
		if errors.Is(err, seatmap.ErrSeatBooked) {
			logger.GetDefault().LogSeatConflict(ctx, req.EventID, req.Seats)
			return nil, fmt.Errorf("%w: %v", ErrSeatAlreadyBooked, err)
		}
		return nil, err
	}

	if req.HoldID != "" && s.holds != nil {
		if err := s.holds.ValidateHold(ctx, req.HoldID, req.EventID, req.Seats); err != nil {
			return nil, err
		}
	}

	amount := quote.Subtotal
	fee := s.processingFee(amount)

	method := PaymentMethod(req.PaymentMethod)
	status := StatusConfirmed
	if method == PaymentMethodPaystack {
		// Paystack bookings stay pending until the gateway verifies payment.
		status = StatusPending
	}

	code, err := generateBookingCode(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking code: %w", err)
	}

	booking := &Booking{
		ID:            uuid.New(),
		BookingCode:   code,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		EventID:       event.ID,
		EventTitle:    event.Title,
		EventType:     string(event.EventType),
		SeatType:      string(quote.Category),
		Amount:        amount,
		ProcessingFee: fee,
		TotalAmount:   round2(amount + fee),
		Status:        status,
		PaymentMethod: method,
		PaymentRef:    req.PaymentRef,
	}

	claims := make([]SeatClaim, 0, len(quote.Seats))
	for _, seat := range quote.Seats {
		claims = append(claims, SeatClaim{
			ID:        uuid.New(),
			EventID:   event.ID,
			SeatLabel: seat.ID,
			Price:     seat.Price,
		})
	}

	if err := s.repo.CreateWithClaims(ctx, booking, claims); err != nil {
		if errors.Is(err, ErrSeatAlreadyBooked) {
			logger.GetDefault().LogSeatConflict(ctx, req.EventID, req.Seats)
		}
		return nil, err
	}

	if req.HoldID != "" && s.holds != nil {
		if err := s.holds.ReleaseHold(ctx, req.HoldID); err != nil {
			log.Printf("Warning: failed to release hold %s: %v", req.HoldID, err)
		}
	}

	s.invalidateSeatmapCache(ctx, req.EventID)
	logger.GetDefault().LogBookingCreated(ctx, booking.ID.String(), req.EventID, req.CustomerEmail)

	resp := booking.ToResponse()
	if booking.Status == StatusConfirmed {
		s.notifyConfirmed(ctx, resp)
	}
	return resp, nil
}

// processingFee applies the percentage rate with a hard cap.
func (s *service) processingFee(amount float64) float64 {
	fee := amount * s.cfg.ProcessingFeeRate
	if s.cfg.ProcessingFeeCap > 0 && fee > s.cfg.ProcessingFeeCap {
		fee = s.cfg.ProcessingFeeCap
	}
	return round2(fee)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateBookingCode builds a DVC-YYYYMMDD-XXXXXX reference. The alphabet
// drops lookalike characters so codes survive being read over the phone.
func generateBookingCode(now time.Time) (string, error) {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		suffix[i] = codeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("DVC-%s-%s", now.Format("20060102"), suffix), nil
}

func (s *service) GetBookingByID(ctx context.Context, id string) (*BookingResponse, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID: %w", err)
	}

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking.ToResponse(), nil
}

func (s *service) GetBookingByCode(ctx context.Context, code string) (*BookingResponse, error) {
	booking, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking.ToResponse(), nil
}

func (s *service) GetBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	return s.repo.List(ctx, query)
}

func (s *service) CancelBooking(ctx context.Context, id string) (*BookingResponse, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID: %w", err)
	}

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.repo.Cancel(ctx, bookingID, time.Now()); err != nil {
		return nil, err
	}

	s.invalidateSeatmapCache(ctx, booking.EventID.String())
	logger.GetDefault().LogBookingCancelled(ctx, booking.ID.String(), booking.EventID.String(), len(booking.Claims))

	booking, err = s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	resp := booking.ToResponse()
	s.notifyCancelled(ctx, resp)
	return resp, nil
}

func (s *service) ConfirmBooking(ctx context.Context, id string, paymentRef string) (*BookingResponse, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID: %w", err)
	}

	if err := s.repo.Confirm(ctx, bookingID, paymentRef); err != nil {
		return nil, err
	}

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	resp := booking.ToResponse()
	s.notifyConfirmed(ctx, resp)
	return resp, nil
}

func (s *service) SweepExpiredPending(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.cfg.PendingPaymentTTL)
	expired, err := s.repo.ExpiredPending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired pending bookings: %w", err)
	}

	swept := 0
	for _, booking := range expired {
		if err := s.repo.Cancel(ctx, booking.ID, time.Now()); err != nil {
			log.Printf("Warning: failed to sweep booking %s: %v", booking.ID, err)
			continue
		}
		s.invalidateSeatmapCache(ctx, booking.EventID.String())
		logger.GetDefault().LogBookingCancelled(ctx, booking.ID.String(), booking.EventID.String(), len(booking.Claims))
		swept++
	}
	return swept, nil
}

func (s *service) notifyConfirmed(ctx context.Context, booking *BookingResponse) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishBookingConfirmed(ctx, booking); err != nil {
		log.Printf("Warning: failed to publish booking confirmation: %v", err)
	}
}

func (s *service) notifyCancelled(ctx context.Context, booking *BookingResponse) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishBookingCancelled(ctx, booking); err != nil {
		log.Printf("Warning: failed to publish booking cancellation: %v", err)
	}
}

func (s *service) invalidateSeatmapCache(ctx context.Context, eventID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildEventSeatmapKey(eventID)); err != nil {
		log.Printf("Warning: failed to invalidate seatmap cache: %v", err)
	}
}
