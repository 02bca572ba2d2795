package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface defines the contract for catalog data access.
type RepositoryInterface interface {
	// Create inserts a new book.
	// Returns ErrISBNExists on a duplicate ISBN.
	Create(ctx context.Context, book *model.Book) error

	// GetByID retrieves a book by id.
	// Returns ErrBookNotFound if not exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// List retrieves a paginated catalog page with filters.
	List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error)

	// Update updates catalog fields (not copy counts) with a version bump.
	// Returns ErrBookNotFound if not exists.
	Update(ctx context.Context, book *model.Book) error

	// UpdateCopyCounts sets total_copies and available_copies together,
	// locking the row so concurrent reserve/release cannot interleave.
	// Returns ErrInvalidCopyCounts if 0 <= available <= total is violated.
	UpdateCopyCounts(ctx context.Context, id uuid.UUID, totalDelta int) (*model.Book, error)

	// Delete removes a book.
	// Returns ErrBookNotFound if not exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// ========================================
	// COPY LEDGER
	// ========================================

	// ReserveCopyWithTx decrements available_copies inside the caller's
	// transaction. The row is locked FOR UPDATE until the caller commits,
	// which makes "check availability, decrement, create issue" atomic
	// with respect to concurrent issue requests for the same book.
	ReserveCopyWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*model.Book, error)

	// ReleaseCopyWithTx increments available_copies inside the caller's
	// transaction, clamped at total_copies. A clamp is an anomaly (the
	// return flow already rejects double returns) and is logged.
	ReleaseCopyWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*model.Book, error)
}
