package halls

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/seatmap"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/constants"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/cache"
)

var (
	ErrHallNotFound = errors.New("hall not found")
	ErrHallInUse    = errors.New("hall is referenced by existing events")
	ErrNameTaken    = errors.New("hall with this name already exists")
)

type Service interface {
	CreateHall(ctx context.Context, req CreateHallRequest) (*Hall, error)
	GetHallByID(ctx context.Context, id string) (*Hall, error)
	GetHalls(ctx context.Context, query HallListQuery) (*PaginatedHalls, error)
	UpdateHall(ctx context.Context, id string, req UpdateHallRequest) (*Hall, error)
	DeleteHall(ctx context.Context, id string) error
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateHall(ctx context.Context, req CreateHallRequest) (*Hall, error) {
	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check hall name: %w", err)
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	hall := &Hall{
		ID:       uuid.New(),
		Name:     req.Name,
		Capacity: req.Capacity,
		Type:     seatmap.HallType(req.Type),
	}

	if err := s.repo.Create(ctx, hall); err != nil {
		return nil, fmt.Errorf("failed to create hall: %w", err)
	}

	s.invalidateCache(ctx)
	return hall, nil
}

func (s *service) GetHallByID(ctx context.Context, id string) (*Hall, error) {
	hallID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID: %w", err)
	}

	cacheKey := constants.BuildHallDetailKey(id)
	if s.cacheService != nil {
		var cached Hall
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	hall, err := s.repo.GetByID(ctx, hallID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHallNotFound
		}
		return nil, fmt.Errorf("failed to get hall: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, hall, constants.TTL_STATIC_LONG); err != nil {
			log.Printf("Warning: failed to cache hall: %v", err)
		}
	}

	return hall, nil
}

func (s *service) GetHalls(ctx context.Context, query HallListQuery) (*PaginatedHalls, error) {
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

func (s *service) UpdateHall(ctx context.Context, id string, req UpdateHallRequest) (*Hall, error) {
	hallID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID: %w", err)
	}

	if _, err := s.repo.GetByID(ctx, hallID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHallNotFound
		}
		return nil, fmt.Errorf("failed to get hall: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, hallID, updates); err != nil {
			return nil, fmt.Errorf("failed to update hall: %w", err)
		}
		s.invalidateCache(ctx)
	}

	return s.repo.GetByID(ctx, hallID)
}

func (s *service) DeleteHall(ctx context.Context, id string) error {
	hallID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid hall ID: %w", err)
	}

	count, err := s.repo.CountReferencingEvents(ctx, hallID)
	if err != nil {
		return fmt.Errorf("failed to check hall usage: %w", err)
	}
	if count > 0 {
		return ErrHallInUse
	}

	if err := s.repo.Delete(ctx, hallID); err != nil {
		return fmt.Errorf("failed to delete hall: %w", err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_HALLS_ALL); err != nil {
		log.Printf("Warning: failed to invalidate hall cache: %v", err)
	}
}
