package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	"library-backend/pkg/jwt"
)

type userService struct {
	repo       repository.RepositoryInterface
	jwtManager *jwt.Manager
}

// NewService creates a new user service
func NewService(repo repository.RepositoryInterface, jwtManager *jwt.Manager) ServiceInterface {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// Register implements ServiceInterface.Register
func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, model.RoleMember)
	if err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}

// Login implements ServiceInterface.Login
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if model.IsNotFoundError(err) {
			// Do not reveal whether the email exists.
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, model.ErrUserInactive
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Email, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToResponse(),
	}, nil
}

// CreateUser implements ServiceInterface.CreateUser
func (s *userService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}

// GetUserByID implements ServiceInterface.GetUserByID
func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}

// ListUsers implements ServiceInterface.ListUsers
func (s *userService) ListUsers(ctx context.Context, req model.ListUsersRequest) (*model.ListUsersResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	users, totalItems, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	totalPages := (totalItems + req.Limit - 1) / req.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	return &model.ListUsersResponse{
		Items:      model.ToResponseList(users),
		TotalItems: totalItems,
		TotalPages: totalPages,
		Page:       req.Page,
		Limit:      req.Limit,
	}, nil
}

// UpdateRole implements ServiceInterface.UpdateRole
func (s *userService) UpdateRole(ctx context.Context, id uuid.UUID, req model.UpdateRoleRequest) (*model.UserResponse, error) {
	role := model.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidRole, req.Role)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}

// UpdateStatus implements ServiceInterface.UpdateStatus
func (s *userService) UpdateStatus(ctx context.Context, id uuid.UUID, req model.UpdateStatusRequest) (*model.UserResponse, error) {
	status := model.Status(req.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidStatus, req.Status)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}

// EnsureBootstrapAdmin implements ServiceInterface.EnsureBootstrapAdmin
func (s *userService) EnsureBootstrapAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		log.Warn().Msg("Bootstrap admin not configured, skipping")
		return nil
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil // already present
	}
	if !model.IsNotFoundError(err) {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	if _, err := s.createUser(ctx, name, email, password, model.RoleAdmin); err != nil {
		if errors.Is(err, model.ErrEmailExists) {
			return nil // lost a race with a concurrent instance
		}
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Info().Str("email", email).Msg("Bootstrap admin created")
	return nil
}

func (s *userService) createUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       model.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
