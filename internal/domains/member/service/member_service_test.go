package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/member/model"
)

type mockMemberRepo struct {
	mock.Mock
}

func (m *mockMemberRepo) Create(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *mockMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *mockMemberRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *mockMemberRepo) List(ctx context.Context, filter model.ListMembersRequest) ([]model.Member, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Member), args.Int(1), args.Error(2)
}

func (m *mockMemberRepo) Update(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

type mockUserChecker struct {
	mock.Mock
}

func (m *mockUserChecker) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestCreateMember_DefaultBorrowingLimit(t *testing.T) {
	repo := &mockMemberRepo{}
	users := &mockUserChecker{}
	svc := NewService(repo, users, 5)

	ctx := context.Background()
	userID := uuid.New()

	users.On("Exists", ctx, userID).Return(true, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(m *model.Member) bool {
		return m.BorrowingLimit == 5 && m.Status == model.MemberStatusActive
	})).Return(nil)

	res, err := svc.CreateMember(ctx, model.CreateMemberRequest{
		UserID:           userID,
		MembershipNumber: "LIB-0001",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, res.BorrowingLimit)
	repo.AssertExpectations(t)
}

func TestCreateMember_UserMissing(t *testing.T) {
	repo := &mockMemberRepo{}
	users := &mockUserChecker{}
	svc := NewService(repo, users, 5)

	ctx := context.Background()
	userID := uuid.New()

	users.On("Exists", ctx, userID).Return(false, nil)

	_, err := svc.CreateMember(ctx, model.CreateMemberRequest{
		UserID:           userID,
		MembershipNumber: "LIB-0002",
	})
	require.ErrorIs(t, err, model.ErrUserAccountNotFound)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateMember_InvalidStatusRejected(t *testing.T) {
	repo := &mockMemberRepo{}
	users := &mockUserChecker{}
	svc := NewService(repo, users, 5)

	ctx := context.Background()
	id := uuid.New()

	bad := "SUSPENDED"
	_, err := svc.UpdateMember(ctx, id, model.UpdateMemberRequest{Status: &bad})
	require.Error(t, err)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
