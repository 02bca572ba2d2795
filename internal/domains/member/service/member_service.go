package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/domains/member/repository"
)

type memberService struct {
	repo         repository.RepositoryInterface
	users        UserChecker
	defaultLimit int
}

// NewService creates a new member service. defaultLimit is applied when
// an enrollment request does not set a borrowing limit.
func NewService(repo repository.RepositoryInterface, users UserChecker, defaultLimit int) ServiceInterface {
	return &memberService{
		repo:         repo,
		users:        users,
		defaultLimit: defaultLimit,
	}
}

// CreateMember implements ServiceInterface.CreateMember
func (s *memberService) CreateMember(ctx context.Context, req model.CreateMemberRequest) (*model.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify user account: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %s", model.ErrUserAccountNotFound, req.UserID)
	}

	limit := s.defaultLimit
	if req.BorrowingLimit != nil {
		limit = *req.BorrowingLimit
	}

	now := time.Now()
	member := &model.Member{
		ID:               uuid.New(),
		UserID:           req.UserID,
		MembershipNumber: req.MembershipNumber,
		Phone:            req.Phone,
		Status:           model.MemberStatusActive,
		BorrowingLimit:   limit,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}

	res := member.ToResponse()
	return &res, nil
}

// GetMemberByID implements ServiceInterface.GetMemberByID
func (s *memberService) GetMemberByID(ctx context.Context, id uuid.UUID) (*model.MemberResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := member.ToResponse()
	return &res, nil
}

// GetMemberByUserID implements ServiceInterface.GetMemberByUserID
func (s *memberService) GetMemberByUserID(ctx context.Context, userID uuid.UUID) (*model.MemberResponse, error) {
	member, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := member.ToResponse()
	return &res, nil
}

// ListMembers implements ServiceInterface.ListMembers
func (s *memberService) ListMembers(ctx context.Context, req model.ListMembersRequest) (*model.ListMembersResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	members, totalItems, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	totalPages := (totalItems + req.Limit - 1) / req.Limit

	return &model.ListMembersResponse{
		Items:      model.ToResponseList(members),
		TotalItems: totalItems,
		TotalPages: totalPages,
		Page:       req.Page,
		Limit:      req.Limit,
	}, nil
}

// UpdateMember implements ServiceInterface.UpdateMember
func (s *memberService) UpdateMember(ctx context.Context, id uuid.UUID, req model.UpdateMemberRequest) (*model.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		member.Phone = req.Phone
	}
	if req.Status != nil {
		status := model.MemberStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidMemberStatus, *req.Status)
		}
		member.Status = status
	}
	if req.BorrowingLimit != nil {
		member.BorrowingLimit = *req.BorrowingLimit
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	res := member.ToResponse()
	return &res, nil
}
