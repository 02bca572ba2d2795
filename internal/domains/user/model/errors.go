package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when the user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when registering a duplicate email
	ErrEmailExists = errors.New("user with this email already exists")

	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive is returned when an INACTIVE account tries to
	// log in or borrow
	ErrUserInactive = errors.New("user account is inactive")

	// ErrInvalidRole is returned for an unknown role value
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidStatus is returned for an unknown status value
	ErrInvalidStatus = errors.New("invalid status")
)

// NewUserNotFoundError creates a detailed not found error
func NewUserNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrUserNotFound, id)
}

// IsNotFoundError checks if error is a user not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
