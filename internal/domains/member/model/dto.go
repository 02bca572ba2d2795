package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ===================================
// REQUEST DTOs
// ===================================

// CreateMemberRequest enrolls a user as a library member.
type CreateMemberRequest struct {
	UserID           uuid.UUID `json:"user_id"`
	MembershipNumber string    `json:"membership_number"`
	Phone            *string   `json:"phone,omitempty"`
	BorrowingLimit   *int      `json:"borrowing_limit,omitempty"`
}

func (r CreateMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.MembershipNumber, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Phone, validation.Length(0, 30)),
		validation.Field(&r.BorrowingLimit, validation.Min(1), validation.Max(100)),
	)
}

// UpdateMemberRequest updates contact details and limits.
type UpdateMemberRequest struct {
	Phone          *string `json:"phone,omitempty"`
	Status         *string `json:"status,omitempty"`
	BorrowingLimit *int    `json:"borrowing_limit,omitempty"`
}

func (r UpdateMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phone, validation.Length(0, 30)),
		validation.Field(&r.Status, validation.In(
			MemberStatusActive.String(), MemberStatusInactive.String(),
		)),
		validation.Field(&r.BorrowingLimit, validation.Min(1), validation.Max(100)),
	)
}

// ListMembersRequest represents query parameters for the member listing.
type ListMembersRequest struct {
	Status *string `form:"status"`
	Search *string `form:"search"`
	Page   int     `form:"page,default=1"`
	Limit  int     `form:"limit,default=20"`
}

// ===================================
// RESPONSE DTOs
// ===================================

// MemberResponse represents a membership in API responses.
type MemberResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	MembershipNumber string    `json:"membership_number"`
	Phone            *string   `json:"phone,omitempty"`
	Status           string    `json:"status"`
	BorrowingLimit   int       `json:"borrowing_limit"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListMembersResponse represents a paginated member listing.
type ListMembersResponse struct {
	Items      []MemberResponse `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// ToResponse converts a Member model to its response DTO.
func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:               m.ID,
		UserID:           m.UserID,
		MembershipNumber: m.MembershipNumber,
		Phone:            m.Phone,
		Status:           m.Status.String(),
		BorrowingLimit:   m.BorrowingLimit,
		CreatedAt:        m.CreatedAt,
	}
}

// ToResponseList converts a slice of Member models to response DTOs.
func ToResponseList(members []Member) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i, m := range members {
		responses[i] = m.ToResponse()
	}
	return responses
}
