package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
)

// RepositoryInterface defines the contract for member data access.
type RepositoryInterface interface {
	// Create inserts a new membership.
	// Returns ErrMemberExists on a duplicate user_id and
	// ErrMembershipNumberExists on a duplicate membership_number.
	Create(ctx context.Context, member *model.Member) error

	// GetByID retrieves a membership by id.
	// Returns ErrMemberNotFound if not exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)

	// GetByUserID retrieves the membership attached to a user account.
	// Returns ErrMemberNotFound if not exists.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Member, error)

	// List retrieves a paginated member listing with filters.
	List(ctx context.Context, filter model.ListMembersRequest) ([]model.Member, int, error)

	// Update persists phone/status/borrowing_limit changes.
	// Returns ErrMemberNotFound if not exists.
	Update(ctx context.Context, member *model.Member) error
}
