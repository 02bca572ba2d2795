package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/issue/model"
	usermodel "library-backend/internal/domains/user/model"
)

// ServiceInterface defines the contract for circulation business logic.
type ServiceInterface interface {
	// IssueBook lends one copy of a book to a user. The copy reservation
	// and the issue record are committed in a single transaction.
	IssueBook(ctx context.Context, req model.IssueBookRequest) (*model.IssueResponse, error)

	// ReturnBook closes an open issue and puts the copy back in
	// circulation, again in a single transaction. Returning a RETURNED
	// issue fails with ErrAlreadyReturned.
	ReturnBook(ctx context.Context, issueID uuid.UUID) (*model.IssueResponse, error)

	// GetIssueByID retrieves a single issue.
	GetIssueByID(ctx context.Context, id uuid.UUID) (*model.IssueResponse, error)

	// FindByUser retrieves all issues for a user, overdue flags derived
	// at call time.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.IssueResponse, error)

	// FindAll retrieves the paginated issue register joined with
	// borrower and book.
	FindAll(ctx context.Context, req model.ListIssuesRequest) (*model.ListIssuesResponse, error)

	// ExportRegister renders the full issue register as an xlsx
	// workbook and returns its bytes with a suggested filename.
	ExportRegister(ctx context.Context) ([]byte, string, error)
}

// CopyLedger is the slice of the catalog repository the circulation
// flow needs: copy reservation and release inside its own transaction.
// Satisfied by the book repository.
type CopyLedger interface {
	ReserveCopyWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*bookmodel.Book, error)
	ReleaseCopyWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*bookmodel.Book, error)
}

// BorrowerDirectory resolves borrower accounts.
// Satisfied by the user repository.
type BorrowerDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*usermodel.User, error)
}
