package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ===================================
// REQUEST DTOs
// ===================================

// RegisterRequest creates a MEMBER-role user.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

// CreateUserRequest creates a user with an explicit role (admin operation).
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.Role, validation.Required, validation.In(
			RoleAdmin.String(), RoleLibrarian.String(), RoleMember.String(),
		)),
	)
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateRoleRequest changes a user's role (admin operation).
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateStatusRequest activates/deactivates an account (admin operation).
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListUsersRequest represents query parameters for the user listing.
type ListUsersRequest struct {
	Role   *string `form:"role"`
	Status *string `form:"status"`
	Page   int     `form:"page,default=1"`
	Limit  int     `form:"limit,default=20"`
}

// ===================================
// RESPONSE DTOs
// ===================================

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the issued tokens.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// ListUsersResponse represents a paginated user listing.
type ListUsersResponse struct {
	Items      []UserResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

// ToResponse converts a User model to its response DTO.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		Status:    u.Status.String(),
		CreatedAt: u.CreatedAt,
	}
}

// ToResponseList converts a slice of User models to response DTOs.
func ToResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses
}
