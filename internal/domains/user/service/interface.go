package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
)

// ServiceInterface defines the business logic for users and authentication.
type ServiceInterface interface {
	// Register creates a MEMBER-role user with a bcrypt-hashed password.
	// Returns ErrEmailExists on a duplicate email.
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)

	// Login authenticates a user and issues access/refresh tokens.
	// Returns ErrInvalidCredentials on a bad email/password pair and
	// ErrUserInactive for a deactivated account.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// CreateUser creates a user with an explicit role (admin operation).
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error)

	// GetUserByID retrieves a user.
	// Returns ErrUserNotFound if not exists.
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserResponse, error)

	// ListUsers retrieves a paginated user listing.
	ListUsers(ctx context.Context, req model.ListUsersRequest) (*model.ListUsersResponse, error)

	// UpdateRole changes a user's role.
	UpdateRole(ctx context.Context, id uuid.UUID, req model.UpdateRoleRequest) (*model.UserResponse, error)

	// UpdateStatus activates/deactivates an account.
	UpdateStatus(ctx context.Context, id uuid.UUID, req model.UpdateStatusRequest) (*model.UserResponse, error)

	// EnsureBootstrapAdmin creates the configured administrator account if
	// it does not exist yet. Called once at startup; a no-op when the
	// account is already present or no credentials are configured.
	EnsureBootstrapAdmin(ctx context.Context, name, email, password string) error
}
