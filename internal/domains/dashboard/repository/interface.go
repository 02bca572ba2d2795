package repository

import (
	"context"
	"time"

	"library-backend/internal/domains/dashboard/model"
)

// RepositoryInterface defines the aggregate queries behind the
// dashboard. All overdue figures are computed against the supplied
// instant, never stored.
type RepositoryInterface interface {
	// GetSummary computes the headline counters as of now.
	GetSummary(ctx context.Context, now time.Time) (*model.Summary, error)

	// GetRecentBooks retrieves the latest catalog additions.
	GetRecentBooks(ctx context.Context, limit int) ([]model.RecentBook, error)

	// GetQuickStats computes the secondary stats strip as of now.
	GetQuickStats(ctx context.Context, now time.Time) (*model.QuickStats, error)
}
