package service

import (
	"context"
	"time"

	"library-backend/internal/domains/dashboard/model"
	"library-backend/internal/domains/dashboard/repository"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	summaryCacheKey    = "dashboard:summary"
	recentCacheKey     = "dashboard:recent_books"
	quickStatsCacheKey = "dashboard:quick_stats"

	// Short TTL: overdue counters are time-derived, a stale minute is
	// acceptable on a dashboard.
	cacheTTL = 1 * time.Minute

	recentBooksLimit = 5
)

// ServiceInterface defines the contract for dashboard reads.
type ServiceInterface interface {
	GetSummary(ctx context.Context) (*model.Summary, error)
	GetRecentBooks(ctx context.Context) ([]model.RecentBook, error)
	GetQuickStats(ctx context.Context) (*model.QuickStats, error)
}

type dashboardService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
	now   func() time.Time
}

// NewService creates a new dashboard service. cache may be nil.
func NewService(repo repository.RepositoryInterface, c cache.Cache) ServiceInterface {
	return &dashboardService{
		repo:  repo,
		cache: c,
		now:   time.Now,
	}
}

// GetSummary implements ServiceInterface.GetSummary
func (s *dashboardService) GetSummary(ctx context.Context) (*model.Summary, error) {
	if s.cache != nil {
		var cached model.Summary
		if found, err := s.cache.Get(ctx, summaryCacheKey, &cached); err != nil {
			logger.Warn("Dashboard cache read failed", map[string]interface{}{"key": summaryCacheKey, "error": err.Error()})
		} else if found {
			return &cached, nil
		}
	}

	summary, err := s.repo.GetSummary(ctx, s.now())
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, summaryCacheKey, summary)
	return summary, nil
}

// GetRecentBooks implements ServiceInterface.GetRecentBooks
func (s *dashboardService) GetRecentBooks(ctx context.Context) ([]model.RecentBook, error) {
	if s.cache != nil {
		var cached []model.RecentBook
		if found, err := s.cache.Get(ctx, recentCacheKey, &cached); err != nil {
			logger.Warn("Dashboard cache read failed", map[string]interface{}{"key": recentCacheKey, "error": err.Error()})
		} else if found {
			return cached, nil
		}
	}

	books, err := s.repo.GetRecentBooks(ctx, recentBooksLimit)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, recentCacheKey, books)
	return books, nil
}

// GetQuickStats implements ServiceInterface.GetQuickStats
func (s *dashboardService) GetQuickStats(ctx context.Context) (*model.QuickStats, error) {
	if s.cache != nil {
		var cached model.QuickStats
		if found, err := s.cache.Get(ctx, quickStatsCacheKey, &cached); err != nil {
			logger.Warn("Dashboard cache read failed", map[string]interface{}{"key": quickStatsCacheKey, "error": err.Error()})
		} else if found {
			return &cached, nil
		}
	}

	stats, err := s.repo.GetQuickStats(ctx, s.now())
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, quickStatsCacheKey, stats)
	return stats, nil
}

func (s *dashboardService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, cacheTTL); err != nil {
		logger.Warn("Dashboard cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
