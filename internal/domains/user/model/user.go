package model

import (
	"time"

	"github.com/google/uuid"
)

// Role of a user within the library.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleLibrarian Role = "LIBRARIAN"
	RoleMember    Role = "MEMBER"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleLibrarian, RoleMember:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Status of a user account.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// User is the authentication identity. Library-specific profile data for
// MEMBER users lives on the Member entity.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // never expose in JSON
	Role         Role      `json:"role" db:"role"`
	Status       Status    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the account may log in and borrow.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
