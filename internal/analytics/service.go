package analytics

import (
	"context"
	"fmt"
	"log"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/constants"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/cache"
)

// Service defines the analytics service interface
type Service interface {
	GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error)
	GetRevenueBreakdown(ctx context.Context) (*RevenueBreakdown, error)
	GetHallOccupancy(ctx context.Context) ([]HallOccupancy, error)
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error) {
	cacheKey := constants.CACHE_KEY_ANALYTICS_DASHBOARD

	if s.cacheService != nil {
		var cached DashboardAnalytics
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	dashboard, err := s.repo.GetDashboardAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard analytics: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, dashboard, constants.TTL_DYNAMIC_MEDIUM); err != nil {
			log.Printf("Warning: failed to cache dashboard analytics: %v", err)
		}
	}

	return dashboard, nil
}

func (s *service) GetRevenueBreakdown(ctx context.Context) (*RevenueBreakdown, error) {
	cacheKey := constants.CACHE_KEY_ANALYTICS_REVENUE

	if s.cacheService != nil {
		var cached RevenueBreakdown
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	breakdown, err := s.repo.GetRevenueBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue breakdown: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, breakdown, constants.TTL_DYNAMIC_MEDIUM); err != nil {
			log.Printf("Warning: failed to cache revenue breakdown: %v", err)
		}
	}

	return breakdown, nil
}

func (s *service) GetHallOccupancy(ctx context.Context) ([]HallOccupancy, error) {
	cacheKey := constants.CACHE_KEY_ANALYTICS_OCCUPANCY

	if s.cacheService != nil {
		var cached []HallOccupancy
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	occupancy, err := s.repo.GetHallOccupancy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get hall occupancy: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, occupancy, constants.TTL_DYNAMIC_MEDIUM); err != nil {
			log.Printf("Warning: failed to cache hall occupancy: %v", err)
		}
	}

	return occupancy, nil
}
