package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/dashboard/model"
)

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

// GetSummary implements RepositoryInterface.GetSummary
func (r *postgresRepository) GetSummary(ctx context.Context, now time.Time) (*model.Summary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM books),
			(SELECT COUNT(*) FROM issues WHERE status = 'ISSUED'),
			(SELECT COALESCE(SUM(available_copies), 0) FROM books),
			(SELECT COUNT(*) FROM members),
			(SELECT COUNT(*) FROM issues WHERE status = 'ISSUED' AND due_date < $1)
	`

	var s model.Summary
	err := r.pool.QueryRow(ctx, query, now).Scan(
		&s.TotalBooks,
		&s.IssuedBooks,
		&s.AvailableCopies,
		&s.TotalMembers,
		&s.OverdueBooks,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard summary: %w", err)
	}

	return &s, nil
}

// GetRecentBooks implements RepositoryInterface.GetRecentBooks
func (r *postgresRepository) GetRecentBooks(ctx context.Context, limit int) ([]model.RecentBook, error) {
	query := `
		SELECT id, title, author, category, created_at
		FROM books
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent books: %w", err)
	}
	defer rows.Close()

	var books []model.RecentBook
	for rows.Next() {
		var b model.RecentBook
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent books: %w", err)
	}

	return books, nil
}

// GetQuickStats implements RepositoryInterface.GetQuickStats
func (r *postgresRepository) GetQuickStats(ctx context.Context, now time.Time) (*model.QuickStats, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	query := `
		SELECT
			(SELECT COUNT(*) FROM issues WHERE status = 'ISSUED' AND due_date >= $1 AND due_date < $2),
			(SELECT COUNT(*) FROM members WHERE created_at >= $3)
	`

	var stats model.QuickStats
	err := r.pool.QueryRow(ctx, query, dayStart, dayEnd, monthStart).Scan(
		&stats.DueToday,
		&stats.NewMembersThisMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute quick stats: %w", err)
	}

	popularQuery := `
		SELECT b.category
		FROM issues i
		JOIN books b ON b.id = i.book_id
		GROUP BY b.category
		ORDER BY COUNT(*) DESC
		LIMIT 1
	`

	err = r.pool.QueryRow(ctx, popularQuery).Scan(&stats.MostPopularCategory)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to compute popular category: %w", err)
	}

	return &stats, nil
}
