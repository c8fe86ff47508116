package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/halls"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/seatmap"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/constants"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/cache"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/logger"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventNotActive    = errors.New("event is not active")
	ErrInvalidDate       = errors.New("invalid event date, expected YYYY-MM-DD")
	ErrPricingMismatch   = errors.New("pricing seat counts do not match the hall layout")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetClaimSource(claims ClaimSource)
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	GetEventBySlug(ctx context.Context, s string) (*Event, error)
	GetEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	GetSeatmap(ctx context.Context, id string) (*SeatmapResponse, error)
}

// HallService is the slice of the halls service this package needs.
type HallService interface {
	GetHallByID(ctx context.Context, id string) (*halls.Hall, error)
}

// ClaimSource reports the seat labels currently claimed for an event. The
// bookings repository implements it; injecting the interface keeps the
// dependency one-directional.
type ClaimSource interface {
	ActiveSeatLabels(ctx context.Context, eventID uuid.UUID) ([]string, error)
}

type service struct {
	repo         Repository
	hallService  HallService
	claims       ClaimSource
	cacheService cache.Service
}

func NewService(repo Repository, hallService HallService) Service {
	return &service{repo: repo, hallService: hallService}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetClaimSource(claims ClaimSource) {
	s.claims = claims
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	hall, err := s.hallService.GetHallByID(ctx, req.HallID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve hall: %w", err)
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	eventType := seatmap.EventType(req.EventType)
	totalSeats, err := seatmap.PlanSeatCount(eventType, hall.Type, hall.Capacity)
	if err != nil {
		return nil, err
	}

	if err := s.validatePricing(eventType, hall, req.Pricing, totalSeats); err != nil {
		return nil, err
	}

	if hall.Type == seatmap.HallTypeVIP && hall.Capacity != totalSeats {
		logger.GetDefault().WithFields(map[string]interface{}{
			"hall_id":       hall.ID.String(),
			"hall_capacity": hall.Capacity,
			"plan_seats":    totalSeats,
		}).Warn("VIP hall capacity diverges from its fixed seat plan; the plan wins")
	}

	eventSlug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	status := StatusDraft
	if req.Status != "" {
		status = Status(req.Status)
	}

	event := &Event{
		ID:         uuid.New(),
		Title:      req.Title,
		Slug:       eventSlug,
		EventType:  eventType,
		Category:   req.Category,
		EventDate:  eventDate,
		EventTime:  req.EventTime,
		HallID:     hall.ID,
		Status:     status,
		Pricing:    PricingMap(req.Pricing),
		TotalSeats: totalSeats,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidateCache(ctx, nil)
	event.Hall = hall
	return event, nil
}

// validatePricing checks that the snapshot prices exactly the categories the
// layout plan contains, and that the per-category counts sum to the plan size.
func (s *service) validatePricing(eventType seatmap.EventType, hall *halls.Hall, pricing map[string]seatmap.PriceTier, totalSeats int) error {
	categories, err := seatmap.PlanCategories(eventType, hall.Type)
	if err != nil {
		return err
	}

	allowed := make(map[string]struct{}, len(categories)+1)
	for _, cat := range categories {
		allowed[string(cat)] = struct{}{}
	}
	if hall.Type == seatmap.HallTypeStandard {
		// Legacy snapshots key standard seats as "standardSingle".
		allowed["standardSingle"] = struct{}{}
	}

	countSum := 0
	for name, tier := range pricing {
		if _, ok := allowed[name]; !ok {
			return fmt.Errorf("pricing category %q is not part of this layout", name)
		}
		if tier.Price < 0 {
			return fmt.Errorf("pricing contains a negative price")
		}
		countSum += tier.Count
	}
	if countSum != totalSeats {
		return fmt.Errorf("%w: counts sum to %d, layout has %d seats", ErrPricingMismatch, countSum, totalSeats)
	}

	// Generate fails on any unpriced category, so one dry run validates the
	// whole snapshot against the plan.
	if _, err := seatmap.Generate(eventType, hall.Name, hall.Type, hall.Capacity, seatmap.Pricing(pricing), nil); err != nil {
		return err
	}

	return nil
}

func (s *service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	candidate := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *service) GetEventByID(ctx context.Context, id string) (*Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	cacheKey := constants.BuildEventDetailKey(id)
	if s.cacheService != nil {
		var cached Event
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, event, constants.TTL_SEMI_STATIC_MEDIUM); err != nil {
			log.Printf("Warning: failed to cache event: %v", err)
		}
	}

	return event, nil
}

func (s *service) GetEventBySlug(ctx context.Context, slugStr string) (*Event, error) {
	event, err := s.repo.GetBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *service) GetEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
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

func (s *service) UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		updates["event_date"] = eventDate
	}
	if req.EventTime != nil {
		updates["event_time"] = *req.EventTime
	}
	if req.Status != nil {
		next := Status(*req.Status)
		if err := validateTransition(event.Status, next); err != nil {
			return nil, err
		}
		updates["status"] = next
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, eventID, updates); err != nil {
			return nil, fmt.Errorf("failed to update event: %w", err)
		}
		s.invalidateCache(ctx, &eventID)
	}

	return s.repo.GetByID(ctx, eventID)
}

func validateTransition(current, next Status) error {
	if current == next {
		return nil
	}
	switch {
	case current == StatusDraft && next == StatusActive:
		return nil
	case current == StatusActive && next == StatusCancelled:
		return nil
	case current == StatusDraft && next == StatusCancelled:
		return nil
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
	}
}

func (s *service) DeleteEvent(ctx context.Context, id string) error {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	if event.Status != StatusDraft {
		return fmt.Errorf("only draft events can be deleted; cancel the event instead")
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.invalidateCache(ctx, &eventID)
	return nil
}

// GetSeatmap generates the event's seat view on demand. Booked flags are
// derived from active seat claims at read time.
func (s *service) GetSeatmap(ctx context.Context, id string) (*SeatmapResponse, error) {
	cacheKey := constants.BuildEventSeatmapKey(id)
	if s.cacheService != nil {
		var cached SeatmapResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hall := event.Hall
	if hall == nil {
		hall, err = s.hallService.GetHallByID(ctx, event.HallID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve hall: %w", err)
		}
	}

	var bookedLabels []string
	if s.claims != nil {
		bookedLabels, err = s.claims.ActiveSeatLabels(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load seat claims: %w", err)
		}
	}

	seats, err := seatmap.Generate(event.EventType, hall.Name, hall.Type, hall.Capacity, seatmap.Pricing(event.Pricing), bookedLabels)
	if err != nil {
		return nil, err
	}

	available := 0
	for _, seat := range seats {
		if !seat.Booked {
			available++
		}
	}

	view := &SeatmapResponse{
		EventID:    event.ID.String(),
		EventTitle: event.Title,
		EventType:  string(event.EventType),
		HallName:   hall.Name,
		HallType:   string(hall.Type),
		Seats:      seats,
		TotalSeats: len(seats),
		Available:  available,
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, view, constants.TTL_DYNAMIC_SHORT); err != nil {
			log.Printf("Warning: failed to cache seat map: %v", err)
		}
	}

	return view, nil
}

func (s *service) invalidateCache(ctx context.Context, eventID *uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	patterns := []string{constants.PATTERN_EVENTS_ALL}
	if eventID != nil {
		patterns = append(patterns, constants.BuildEventSeatmapKey(eventID.String()))
	}
	for _, pattern := range patterns {
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			log.Printf("Warning: failed to invalidate event cache: %v", err)
		}
	}
}
