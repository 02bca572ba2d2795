package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	issuemodel "library-backend/internal/domains/issue/model"
)

var rate = decimal.NewFromInt(10)

func TestCompute(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		ref          time.Time
		wantDaysLate int
		wantAmount   string
	}{
		{
			name:         "returned before due date",
			ref:          due.Add(-48 * time.Hour),
			wantDaysLate: 0,
			wantAmount:   "0",
		},
		{
			name:         "returned exactly at due date",
			ref:          due,
			wantDaysLate: 0,
			wantAmount:   "0",
		},
		{
			name:         "one hour late rounds up to a full day",
			ref:          due.Add(1 * time.Hour),
			wantDaysLate: 1,
			wantAmount:   "10",
		},
		{
			name:         "exactly one day late",
			ref:          due.Add(24 * time.Hour),
			wantDaysLate: 1,
			wantAmount:   "10",
		},
		{
			name:         "one day and one minute late",
			ref:          due.Add(24*time.Hour + time.Minute),
			wantDaysLate: 2,
			wantAmount:   "20",
		},
		{
			name:         "three days late",
			ref:          due.Add(72 * time.Hour),
			wantDaysLate: 3,
			wantAmount:   "30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			daysLate, amount := Compute(due, tt.ref, rate)
			assert.Equal(t, tt.wantDaysLate, daysLate)
			assert.True(t, amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"amount = %s, want %s", amount, tt.wantAmount)
		})
	}
}

func TestReferenceDate_FrozenAtReturnTime(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	returned := due.Add(48 * time.Hour)
	now := due.Add(10 * 24 * time.Hour)

	issue := &issuemodel.Issue{
		DueDate:    due,
		ReturnDate: &returned,
		Status:     issuemodel.StatusReturned,
	}

	assert.Equal(t, returned, ReferenceDate(issue, now))

	daysLate, amount := Compute(issue.DueDate, ReferenceDate(issue, now), rate)
	assert.Equal(t, 2, daysLate)
	assert.True(t, amount.Equal(decimal.NewFromInt(20)))
}

func TestReferenceDate_OpenLoanGrowsDaily(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	issue := &issuemodel.Issue{
		DueDate: due,
		Status:  issuemodel.StatusIssued,
	}

	day5 := due.Add(5 * 24 * time.Hour)
	day6 := due.Add(6 * 24 * time.Hour)

	daysLate5, _ := Compute(issue.DueDate, ReferenceDate(issue, day5), rate)
	daysLate6, _ := Compute(issue.DueDate, ReferenceDate(issue, day6), rate)

	assert.Equal(t, 5, daysLate5)
	assert.Equal(t, 6, daysLate6)
}

func TestClassify(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := due.Add(3 * 24 * time.Hour)

	t.Run("open overdue loan", func(t *testing.T) {
		issue := &issuemodel.Issue{
			DueDate: due,
			Status:  issuemodel.StatusIssued,
		}

		detail := Classify(issue, now, rate)
		assert.Equal(t, ClassificationOverdue, detail.Classification)
		assert.Equal(t, 3, detail.DaysLate)
		assert.True(t, detail.Amount.Equal(decimal.NewFromInt(30)))
		assert.False(t, detail.Paid)
	})

	t.Run("returned on time", func(t *testing.T) {
		returned := due.Add(-24 * time.Hour)
		issue := &issuemodel.Issue{
			DueDate:    due,
			ReturnDate: &returned,
			Status:     issuemodel.StatusReturned,
		}

		detail := Classify(issue, now, rate)
		assert.Equal(t, ClassificationOnTime, detail.Classification)
		assert.Equal(t, 0, detail.DaysLate)
		assert.True(t, detail.Amount.IsZero())
		assert.True(t, detail.Paid)
	})

	t.Run("returned late is settled", func(t *testing.T) {
		returned := due.Add(24 * time.Hour)
		issue := &issuemodel.Issue{
			DueDate:    due,
			ReturnDate: &returned,
			Status:     issuemodel.StatusReturned,
		}

		detail := Classify(issue, now, rate)
		assert.Equal(t, ClassificationOverdue, detail.Classification)
		assert.Equal(t, 1, detail.DaysLate)
		assert.True(t, detail.Paid)
	})
}
