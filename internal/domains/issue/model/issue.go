package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a book issue.
// An issue is open (ISSUED) until the copy comes back (RETURNED);
// there are no further states.
type Status string

const (
	StatusIssued   Status = "ISSUED"
	StatusReturned Status = "RETURNED"
)

func (s Status) IsValid() bool {
	return s == StatusIssued || s == StatusReturned
}

func (s Status) String() string {
	return string(s)
}

// Issue is a single lending record: one copy of one book, issued to
// one user. ReturnDate is nil while the issue is open.
type Issue struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	BookID     uuid.UUID  `json:"book_id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsOpen reports whether the copy is still out.
func (i *Issue) IsOpen() bool {
	return i.Status == StatusIssued
}

// IsOverdue reports whether the issue is past due as of now.
// Overdue is always derived at read time, never stored.
func (i *Issue) IsOverdue(now time.Time) bool {
	return i.Status == StatusIssued && now.After(i.DueDate)
}

// Detail is an issue joined with the borrower and the book,
// as listed on the circulation desk screens.
type Detail struct {
	Issue
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
	BookISBN   string `json:"book_isbn"`
}
