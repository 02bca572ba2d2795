package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

// ServiceInterface defines the business logic for the catalog.
type ServiceInterface interface {
	// CreateBook adds a title to the catalog. All copies start available.
	// Returns ErrISBNExists on a duplicate ISBN.
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)

	// GetBookByID retrieves a book, served from cache when possible.
	// Returns ErrBookNotFound if not exists.
	GetBookByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)

	// ListBooks retrieves a paginated catalog page with filters.
	ListBooks(ctx context.Context, req model.ListBooksRequest) (*model.ListBooksResponse, error)

	// UpdateBook updates catalog fields (title, author, category, tags).
	// Returns ErrBookNotFound if not exists.
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error)

	// AdjustCopies changes total_copies; available_copies follows by the
	// same delta, clamped into [0, total].
	AdjustCopies(ctx context.Context, id uuid.UUID, req model.AdjustCopiesRequest) (*model.BookResponse, error)

	// DeleteBook removes a book from the catalog.
	// Returns ErrBookHasActiveIssues while copies are still on loan.
	DeleteBook(ctx context.Context, id uuid.UUID) error

	// UploadCover stores a cover image and records its URL on the book.
	UploadCover(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*model.BookResponse, error)
}

// ActiveIssueCounter reports how many ISSUED loans reference a book.
// Satisfied by the issue repository.
type ActiveIssueCounter interface {
	CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int, error)
}

// CoverStorage stores cover images and returns a public URL.
// Satisfied by the MinIO storage client.
type CoverStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
