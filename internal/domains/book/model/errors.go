package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrBookNotFound is returned when the book does not exist
	ErrBookNotFound = errors.New("book not found")

	// ErrISBNExists is returned when creating a book with a duplicate ISBN
	ErrISBNExists = errors.New("book with this ISBN already exists")

	// ErrNoCopiesAvailable is returned when issuing against zero available copies
	ErrNoCopiesAvailable = errors.New("no copies available")

	// ErrInvalidCopyCounts is returned when copy counts violate
	// 0 <= available <= total
	ErrInvalidCopyCounts = errors.New("invalid copy counts")

	// ErrBookHasActiveIssues is returned when deleting a book that still
	// has outstanding issues
	ErrBookHasActiveIssues = errors.New("book has active issues and cannot be deleted")

	// ErrStorageUnavailable is returned when no object storage is
	// configured for cover uploads
	ErrStorageUnavailable = errors.New("cover storage unavailable")
)

// NewBookNotFoundError creates a detailed not found error
func NewBookNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrBookNotFound, id)
}

// IsNotFoundError checks if error is a book not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBookNotFound)
}

// IsPreconditionError checks if error is a precondition failure
// (valid identifier, illegal transition given current state)
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrNoCopiesAvailable) ||
		errors.Is(err, ErrBookHasActiveIssues)
}
