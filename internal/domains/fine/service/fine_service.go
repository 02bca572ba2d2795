package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/fine/model"
	issuemodel "library-backend/internal/domains/issue/model"
)

// ServiceInterface defines the contract for fine reporting.
type ServiceInterface interface {
	// ListFines classifies every issue on record. With overdueOnly set,
	// on-time issues are filtered out.
	ListFines(ctx context.Context, overdueOnly bool) ([]model.Detail, error)

	// ListFinesByUser classifies all issues of one user.
	ListFinesByUser(ctx context.Context, userID uuid.UUID) ([]model.Detail, error)
}

// IssueSource is the slice of the issue repository fine reporting
// reads from. Satisfied by the issue repository.
type IssueSource interface {
	ListAllForExport(ctx context.Context) ([]issuemodel.Detail, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]issuemodel.Issue, error)
}

type fineService struct {
	issues     IssueSource
	ratePerDay decimal.Decimal
	now        func() time.Time
}

// NewService creates a new fine service
func NewService(issues IssueSource, ratePerDay decimal.Decimal) ServiceInterface {
	return &fineService{
		issues:     issues,
		ratePerDay: ratePerDay,
		now:        time.Now,
	}
}

// ListFines implements ServiceInterface.ListFines
func (s *fineService) ListFines(ctx context.Context, overdueOnly bool) ([]model.Detail, error) {
	details, err := s.issues.ListAllForExport(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fines := make([]model.Detail, 0, len(details))
	for i := range details {
		fine := model.ClassifyDetail(&details[i], now, s.ratePerDay)
		if overdueOnly && fine.DaysLate == 0 {
			continue
		}
		fines = append(fines, fine)
	}

	return fines, nil
}

// ListFinesByUser implements ServiceInterface.ListFinesByUser
func (s *fineService) ListFinesByUser(ctx context.Context, userID uuid.UUID) ([]model.Detail, error) {
	issues, err := s.issues.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fines := make([]model.Detail, len(issues))
	for i := range issues {
		fines[i] = model.Classify(&issues[i], now, s.ratePerDay)
	}

	return fines, nil
}
