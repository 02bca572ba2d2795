package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	issuemodel "library-backend/internal/domains/issue/model"
)

type mockIssueSource struct {
	mock.Mock
}

func (m *mockIssueSource) ListAllForExport(ctx context.Context) ([]issuemodel.Detail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]issuemodel.Detail), args.Error(1)
}

func (m *mockIssueSource) ListByUser(ctx context.Context, userID uuid.UUID) ([]issuemodel.Issue, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]issuemodel.Issue), args.Error(1)
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestFineService(issues *mockIssueSource) *fineService {
	return &fineService{
		issues:     issues,
		ratePerDay: decimal.NewFromInt(10),
		now:        func() time.Time { return testNow },
	}
}

func TestListFines_OverdueOnlyFiltersOnTime(t *testing.T) {
	issues := &mockIssueSource{}
	svc := newTestFineService(issues)

	ctx := context.Background()

	details := []issuemodel.Detail{
		{
			Issue: issuemodel.Issue{
				ID:      uuid.New(),
				DueDate: testNow.AddDate(0, 0, -4),
				Status:  issuemodel.StatusIssued,
			},
			UserName:  "Late Reader",
			BookTitle: "Overdue Title",
		},
		{
			Issue: issuemodel.Issue{
				ID:      uuid.New(),
				DueDate: testNow.AddDate(0, 0, 4),
				Status:  issuemodel.StatusIssued,
			},
			UserName:  "Prompt Reader",
			BookTitle: "On Time Title",
		},
	}

	issues.On("ListAllForExport", ctx).Return(details, nil)

	fines, err := svc.ListFines(ctx, true)
	require.NoError(t, err)
	require.Len(t, fines, 1)

	assert.Equal(t, "Late Reader", fines[0].UserName)
	assert.Equal(t, 4, fines[0].DaysLate)
	assert.True(t, fines[0].Amount.Equal(decimal.NewFromInt(40)))
	assert.False(t, fines[0].Paid)
}

func TestListFinesByUser_PaidMirrorsReturnedStatus(t *testing.T) {
	issues := &mockIssueSource{}
	svc := newTestFineService(issues)

	ctx := context.Background()
	userID := uuid.New()

	returnedAt := testNow.AddDate(0, 0, -1)
	list := []issuemodel.Issue{
		{
			ID:         uuid.New(),
			UserID:     userID,
			DueDate:    testNow.AddDate(0, 0, -3),
			ReturnDate: &returnedAt,
			Status:     issuemodel.StatusReturned,
		},
		{
			ID:      uuid.New(),
			UserID:  userID,
			DueDate: testNow.AddDate(0, 0, -3),
			Status:  issuemodel.StatusIssued,
		},
	}

	issues.On("ListByUser", ctx, userID).Return(list, nil)

	fines, err := svc.ListFinesByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, fines, 2)

	// Returned two days late, fine frozen at return time and settled.
	assert.Equal(t, 2, fines[0].DaysLate)
	assert.True(t, fines[0].Paid)

	// Still out, fine keeps accruing.
	assert.Equal(t, 3, fines[1].DaysLate)
	assert.False(t, fines[1].Paid)
}
