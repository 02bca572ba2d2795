package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
)

// RepositoryInterface defines the contract for user data access.
type RepositoryInterface interface {
	// Create inserts a new user.
	// Returns ErrEmailExists on a duplicate email.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by id.
	// Returns ErrUserNotFound if not exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound if not exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Exists reports whether a user with the given id exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// List retrieves a paginated user listing with filters.
	List(ctx context.Context, filter model.ListUsersRequest) ([]model.User, int, error)

	// Update persists name/role/status changes.
	// Returns ErrUserNotFound if not exists.
	Update(ctx context.Context, user *model.User) error

	// CountByRole counts users with the given role.
	CountByRole(ctx context.Context, role model.Role) (int, error)
}
