package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ===================================
// REQUEST DTOs
// ===================================

// IssueBookRequest lends one copy of a book to a user.
type IssueBookRequest struct {
	UserID uuid.UUID `json:"user_id"`
	BookID uuid.UUID `json:"book_id"`
}

func (r IssueBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.BookID, validation.Required),
	)
}

// ListIssuesRequest represents query parameters for the issue register.
type ListIssuesRequest struct {
	Status *string `form:"status"`
	Page   int     `form:"page,default=1"`
	Limit  int     `form:"limit,default=20"`
}

func (r ListIssuesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.In(
			StatusIssued.String(), StatusReturned.String(),
		)),
	)
}

// ===================================
// RESPONSE DTOs
// ===================================

// IssueResponse represents a lending record in API responses.
// Overdue is derived from the due date at response time.
type IssueResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	BookID     uuid.UUID  `json:"book_id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
	Overdue    bool       `json:"overdue"`
}

// IssueDetailResponse is an issue joined with borrower and book fields.
type IssueDetailResponse struct {
	IssueResponse
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
	BookISBN   string `json:"book_isbn"`
}

// ListIssuesResponse represents a paginated issue register page.
type ListIssuesResponse struct {
	Items      []IssueDetailResponse `json:"items"`
	TotalItems int                   `json:"total_items"`
	TotalPages int                   `json:"total_pages"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
}

// ToResponse converts an Issue to its response DTO, deriving the
// overdue flag as of now.
func (i *Issue) ToResponse(now time.Time) IssueResponse {
	return IssueResponse{
		ID:         i.ID,
		UserID:     i.UserID,
		BookID:     i.BookID,
		IssueDate:  i.IssueDate,
		DueDate:    i.DueDate,
		ReturnDate: i.ReturnDate,
		Status:     i.Status.String(),
		Overdue:    i.IsOverdue(now),
	}
}

// ToDetailResponse converts a Detail to its response DTO.
func (d *Detail) ToDetailResponse(now time.Time) IssueDetailResponse {
	return IssueDetailResponse{
		IssueResponse: d.Issue.ToResponse(now),
		UserName:      d.UserName,
		UserEmail:     d.UserEmail,
		BookTitle:     d.BookTitle,
		BookAuthor:    d.BookAuthor,
		BookISBN:      d.BookISBN,
	}
}

// ToDetailResponseList converts a slice of Details to response DTOs.
func ToDetailResponseList(details []Detail, now time.Time) []IssueDetailResponse {
	responses := make([]IssueDetailResponse, len(details))
	for i := range details {
		responses[i] = details[i].ToDetailResponse(now)
	}
	return responses
}
