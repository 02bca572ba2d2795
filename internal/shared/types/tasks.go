package types

import (
	"time"

	"github.com/google/uuid"
)

// Asynq task types handled by cmd/worker.
const (
	TypeIssueReceiptEmail  = "email:issue_receipt"
	TypeReturnReceiptEmail = "email:return_receipt"
)

// Asynq queue names.
const (
	QueueDefault = "default"
	QueueEmail   = "email"
)

// IssueReceiptPayload is the task payload for an issue receipt email.
type IssueReceiptPayload struct {
	IssueID   uuid.UUID `json:"issue_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	BookTitle string    `json:"book_title"`
	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`
}

// ReturnReceiptPayload is the task payload for a return receipt email.
// FineAmount is a decimal string so the payload survives JSON intact.
type ReturnReceiptPayload struct {
	IssueID    uuid.UUID `json:"issue_id"`
	UserName   string    `json:"user_name"`
	UserEmail  string    `json:"user_email"`
	BookTitle  string    `json:"book_title"`
	ReturnDate time.Time `json:"return_date"`
	DueDate    time.Time `json:"due_date"`
	DaysLate   int       `json:"days_late"`
	FineAmount string    `json:"fine_amount"`
}
