package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	issuemodel "library-backend/internal/domains/issue/model"
)

// Classification of an issue with respect to its due date.
type Classification string

const (
	ClassificationOnTime  Classification = "ON_TIME"
	ClassificationOverdue Classification = "OVERDUE"
)

// Detail is the per-issue fine summary shown on reporting screens.
// Paid mirrors the issue status: a returned issue is treated as settled.
type Detail struct {
	IssueID        uuid.UUID       `json:"issue_id"`
	UserID         uuid.UUID       `json:"user_id"`
	BookID         uuid.UUID       `json:"book_id"`
	UserName       string          `json:"user_name,omitempty"`
	BookTitle      string          `json:"book_title,omitempty"`
	DueDate        time.Time       `json:"due_date"`
	ReturnDate     *time.Time      `json:"return_date,omitempty"`
	DaysLate       int             `json:"days_late"`
	Amount         decimal.Decimal `json:"amount"`
	Classification Classification  `json:"classification"`
	Paid           bool            `json:"paid"`
}

// Compute calculates the fine for an issue due at due, measured at ref.
// Days late are counted in whole days, any fraction of a day past due
// rounds up to a full day. A non-positive lateness yields a zero fine.
func Compute(due, ref time.Time, ratePerDay decimal.Decimal) (int, decimal.Decimal) {
	diff := ref.Sub(due)
	if diff <= 0 {
		return 0, decimal.Zero
	}

	daysLate := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		daysLate++
	}

	return daysLate, ratePerDay.Mul(decimal.NewFromInt(int64(daysLate)))
}

// ReferenceDate picks the instant a fine is measured at: the return
// date once the copy is back, otherwise now. A late return's fine is
// therefore frozen at return time while an open loan's keeps growing.
func ReferenceDate(issue *issuemodel.Issue, now time.Time) time.Time {
	if issue.ReturnDate != nil {
		return *issue.ReturnDate
	}
	return now
}

// Classify derives the fine summary for a single issue as of now.
func Classify(issue *issuemodel.Issue, now time.Time, ratePerDay decimal.Decimal) Detail {
	daysLate, amount := Compute(issue.DueDate, ReferenceDate(issue, now), ratePerDay)

	classification := ClassificationOnTime
	if daysLate > 0 {
		classification = ClassificationOverdue
	}

	return Detail{
		IssueID:        issue.ID,
		UserID:         issue.UserID,
		BookID:         issue.BookID,
		DueDate:        issue.DueDate,
		ReturnDate:     issue.ReturnDate,
		DaysLate:       daysLate,
		Amount:         amount,
		Classification: classification,
		Paid:           issue.Status == issuemodel.StatusReturned,
	}
}

// ClassifyDetail derives the fine summary for a joined issue row,
// carrying the borrower and book display fields through.
func ClassifyDetail(d *issuemodel.Detail, now time.Time, ratePerDay decimal.Decimal) Detail {
	detail := Classify(&d.Issue, now, ratePerDay)
	detail.UserName = d.UserName
	detail.BookTitle = d.BookTitle
	return detail
}
