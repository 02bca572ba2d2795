package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
)

// ServiceInterface defines the contract for membership business logic.
type ServiceInterface interface {
	// CreateMember enrolls an existing user as a library member.
	CreateMember(ctx context.Context, req model.CreateMemberRequest) (*model.MemberResponse, error)

	// GetMemberByID retrieves a membership by id.
	GetMemberByID(ctx context.Context, id uuid.UUID) (*model.MemberResponse, error)

	// GetMemberByUserID retrieves the membership attached to a user account.
	GetMemberByUserID(ctx context.Context, userID uuid.UUID) (*model.MemberResponse, error)

	// ListMembers retrieves a paginated member listing.
	ListMembers(ctx context.Context, req model.ListMembersRequest) (*model.ListMembersResponse, error)

	// UpdateMember updates contact details, status and borrowing limit.
	UpdateMember(ctx context.Context, id uuid.UUID, req model.UpdateMemberRequest) (*model.MemberResponse, error)
}

// UserChecker verifies that a user account exists before enrollment.
// Satisfied by the user repository.
type UserChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
