package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user/model"
	"library-backend/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, filter model.ListUsersRequest) ([]model.User, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role model.Role) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

func newTestUserService(repo *mockUserRepo) ServiceInterface {
	return NewService(repo, jwt.NewManager("test-secret", 15, 168))
}

func hashedUser(email, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &model.User{
		ID:           uuid.New(),
		Name:         "Pat Reader",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleMember,
		Status:       model.StatusActive,
	}
}

func TestLogin_Success(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestUserService(repo)

	ctx := context.Background()
	user := hashedUser("pat@example.com", "correct horse")

	repo.On("GetByEmail", ctx, "pat@example.com").Return(user, nil)

	res, err := svc.Login(ctx, model.LoginRequest{Email: "pat@example.com", Password: "correct horse"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, user.Email, res.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestUserService(repo)

	ctx := context.Background()
	user := hashedUser("pat@example.com", "correct horse")

	repo.On("GetByEmail", ctx, "pat@example.com").Return(user, nil)

	_, err := svc.Login(ctx, model.LoginRequest{Email: "pat@example.com", Password: "wrong"})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailHidesExistence(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestUserService(repo)

	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, model.ErrUserNotFound)

	_, err := svc.Login(ctx, model.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestUserService(repo)

	ctx := context.Background()
	user := hashedUser("pat@example.com", "correct horse")
	user.Status = model.StatusInactive

	repo.On("GetByEmail", ctx, "pat@example.com").Return(user, nil)

	_, err := svc.Login(ctx, model.LoginRequest{Email: "pat@example.com", Password: "correct horse"})
	require.ErrorIs(t, err, model.ErrUserInactive)
}

func TestRegister_CreatesMemberRole(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestUserService(repo)

	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleMember && u.Status == model.StatusActive
	})).Return(nil)

	res, err := svc.Register(ctx, model.RegisterRequest{
		Name:     "Pat Reader",
		Email:    "pat@example.com",
		Password: "long enough secret",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember.String(), res.Role)

	repo.AssertExpectations(t)
}

func TestEnsureBootstrapAdmin_SkipsWhenUnconfigured(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestUserService(repo)

	err := svc.EnsureBootstrapAdmin(context.Background(), "Admin", "", "")
	require.NoError(t, err)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEnsureBootstrapAdmin_CreatesWhenMissing(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestUserService(repo)

	ctx := context.Background()

	repo.On("GetByEmail", ctx, "admin@example.com").Return(nil, model.ErrUserNotFound)
	repo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleAdmin && u.Email == "admin@example.com"
	})).Return(nil)

	err := svc.EnsureBootstrapAdmin(ctx, "Admin", "admin@example.com", "bootstrap secret")
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestEnsureBootstrapAdmin_NoopWhenPresent(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestUserService(repo)

	ctx := context.Background()
	existing := hashedUser("admin@example.com", "anything")
	existing.Role = model.RoleAdmin

	repo.On("GetByEmail", ctx, "admin@example.com").Return(existing, nil)

	err := svc.EnsureBootstrapAdmin(ctx, "Admin", "admin@example.com", "bootstrap secret")
	require.NoError(t, err)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEnsureBootstrapAdmin_ToleratesCreateRace(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestUserService(repo)

	ctx := context.Background()

	repo.On("GetByEmail", ctx, "admin@example.com").Return(nil, model.ErrUserNotFound)
	repo.On("Create", ctx, mock.Anything).Return(model.ErrEmailExists)

	err := svc.EnsureBootstrapAdmin(ctx, "Admin", "admin@example.com", "bootstrap secret")
	require.NoError(t, err)
}
