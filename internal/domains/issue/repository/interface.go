package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/issue/model"
)

// RepositoryInterface defines the contract for issue data access.
// The WithTx variants run inside a caller-owned transaction so the
// service layer can pair an issue mutation with the matching copy-count
// mutation on the books table and commit them together.
type RepositoryInterface interface {
	// BeginTx starts a transaction on the underlying pool.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateWithTx inserts a new issue inside the caller's transaction.
	CreateWithTx(ctx context.Context, tx pgx.Tx, issue *model.Issue) error

	// GetByID retrieves an issue by id.
	// Returns ErrIssueNotFound if not exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Issue, error)

	// GetByIDForUpdateWithTx retrieves an issue by id with a FOR UPDATE
	// lock inside the caller's transaction, serializing concurrent
	// returns of the same issue.
	GetByIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Issue, error)

	// MarkReturnedWithTx sets return_date and status=RETURNED inside the
	// caller's transaction.
	MarkReturnedWithTx(ctx context.Context, tx pgx.Tx, issue *model.Issue) error

	// ListByUser retrieves all issues for a user, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Issue, error)

	// ListAll retrieves a paginated issue register page joined with
	// borrower and book, ordered by issue_date descending.
	ListAll(ctx context.Context, filter model.ListIssuesRequest) ([]model.Detail, int, error)

	// ListAllForExport retrieves the complete joined register, most
	// recent first, for spreadsheet export.
	ListAllForExport(ctx context.Context) ([]model.Detail, error)

	// CountActiveByBook counts open issues for a book.
	CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int, error)

	// CountByStatus counts issues in the given state.
	CountByStatus(ctx context.Context, status model.Status) (int, error)
}
