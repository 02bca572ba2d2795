package model

import (
	"time"

	"github.com/google/uuid"
)

// MemberStatus values mirror the account statuses on the user domain.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

func (s MemberStatus) IsValid() bool {
	return s == MemberStatusActive || s == MemberStatusInactive
}

func (s MemberStatus) String() string {
	return string(s)
}

// Member is the library membership record attached to a user account.
// A user has at most one membership. BorrowingLimit is informational
// for the front desk and is not enforced at issue time.
type Member struct {
	ID               uuid.UUID    `json:"id"`
	UserID           uuid.UUID    `json:"user_id"`
	MembershipNumber string       `json:"membership_number"`
	Phone            *string      `json:"phone,omitempty"`
	Status           MemberStatus `json:"status"`
	BorrowingLimit   int          `json:"borrowing_limit"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}
