package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	"library-backend/internal/config"
	finemodel "library-backend/internal/domains/fine/model"
	"library-backend/internal/domains/issue/model"
	"library-backend/internal/domains/issue/repository"
	usermodel "library-backend/internal/domains/user/model"
	"library-backend/internal/shared/types"
	"library-backend/pkg/logger"
)

type issueService struct {
	repo           repository.RepositoryInterface
	books          CopyLedger
	users          BorrowerDirectory
	queue          *asynq.Client
	loanPeriodDays int
	fineRatePerDay decimal.Decimal
	now            func() time.Time
}

// NewService creates a new circulation service. queue may be nil, in
// which case receipt emails are skipped.
func NewService(
	repo repository.RepositoryInterface,
	books CopyLedger,
	users BorrowerDirectory,
	queue *asynq.Client,
	cfg config.LibraryConfig,
) ServiceInterface {
	return &issueService{
		repo:           repo,
		books:          books,
		users:          users,
		queue:          queue,
		loanPeriodDays: cfg.LoanPeriodDays,
		fineRatePerDay: cfg.FineRatePerDay,
		now:            time.Now,
	}
}

// IssueBook implements ServiceInterface.IssueBook
func (s *issueService) IssueBook(ctx context.Context, req model.IssueBookRequest) (*model.IssueResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if usermodel.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: id %s", model.ErrBorrowerNotFound, req.UserID)
		}
		return nil, fmt.Errorf("failed to resolve borrower: %w", err)
	}
	if !user.IsActive() {
		return nil, fmt.Errorf("%w: id %s", model.ErrBorrowerInactive, req.UserID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Locks the book row until commit, so a concurrent issue request
	// for the last copy cannot also succeed.
	book, err := s.books.ReserveCopyWithTx(ctx, tx, req.BookID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	issue := &model.Issue{
		ID:        uuid.New(),
		UserID:    req.UserID,
		BookID:    req.BookID,
		IssueDate: now,
		DueDate:   now.AddDate(0, 0, s.loanPeriodDays),
		Status:    model.StatusIssued,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateWithTx(ctx, tx, issue); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit issue transaction: %w", err)
	}

	logger.Info("Book issued", map[string]interface{}{
		"issue_id": issue.ID.String(),
		"user_id":  issue.UserID.String(),
		"book_id":  issue.BookID.String(),
		"due_date": issue.DueDate,
	})

	s.enqueueReceipt(types.TypeIssueReceiptEmail, types.IssueReceiptPayload{
		IssueID:   issue.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		BookTitle: book.Title,
		IssueDate: issue.IssueDate,
		DueDate:   issue.DueDate,
	})

	res := issue.ToResponse(now)
	return &res, nil
}

// ReturnBook implements ServiceInterface.ReturnBook
func (s *issueService) ReturnBook(ctx context.Context, issueID uuid.UUID) (*model.IssueResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the issue row first so concurrent returns of the same issue
	// serialize here and the loser sees status RETURNED.
	issue, err := s.repo.GetByIDForUpdateWithTx(ctx, tx, issueID)
	if err != nil {
		return nil, err
	}

	if issue.Status != model.StatusIssued {
		return nil, fmt.Errorf("%w: id %s", model.ErrAlreadyReturned, issueID)
	}

	now := s.now()
	issue.ReturnDate = &now
	issue.Status = model.StatusReturned

	if err := s.repo.MarkReturnedWithTx(ctx, tx, issue); err != nil {
		return nil, err
	}

	book, err := s.books.ReleaseCopyWithTx(ctx, tx, issue.BookID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit return transaction: %w", err)
	}

	daysLate, fine := finemodel.Compute(issue.DueDate, now, s.fineRatePerDay)

	logger.Info("Book returned", map[string]interface{}{
		"issue_id":  issue.ID.String(),
		"book_id":   issue.BookID.String(),
		"days_late": daysLate,
		"fine":      fine.String(),
	})

	if user, err := s.users.GetByID(ctx, issue.UserID); err != nil {
		logger.Warn("Skipping return receipt, borrower lookup failed", map[string]interface{}{
			"issue_id": issue.ID.String(),
			"error":    err.Error(),
		})
	} else {
		s.enqueueReceipt(types.TypeReturnReceiptEmail, types.ReturnReceiptPayload{
			IssueID:    issue.ID,
			UserName:   user.Name,
			UserEmail:  user.Email,
			BookTitle:  book.Title,
			ReturnDate: now,
			DueDate:    issue.DueDate,
			DaysLate:   daysLate,
			FineAmount: fine.String(),
		})
	}

	res := issue.ToResponse(now)
	return &res, nil
}

// GetIssueByID implements ServiceInterface.GetIssueByID
func (s *issueService) GetIssueByID(ctx context.Context, id uuid.UUID) (*model.IssueResponse, error) {
	issue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := issue.ToResponse(s.now())
	return &res, nil
}

// FindByUser implements ServiceInterface.FindByUser
func (s *issueService) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.IssueResponse, error) {
	issues, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]model.IssueResponse, len(issues))
	for i := range issues {
		responses[i] = issues[i].ToResponse(now)
	}
	return responses, nil
}

// FindAll implements ServiceInterface.FindAll
func (s *issueService) FindAll(ctx context.Context, req model.ListIssuesRequest) (*model.ListIssuesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	details, totalItems, err := s.repo.ListAll(ctx, req)
	if err != nil {
		return nil, err
	}

	totalPages := (totalItems + req.Limit - 1) / req.Limit

	return &model.ListIssuesResponse{
		Items:      model.ToDetailResponseList(details, s.now()),
		TotalItems: totalItems,
		TotalPages: totalPages,
		Page:       req.Page,
		Limit:      req.Limit,
	}, nil
}

func (s *issueService) enqueueReceipt(taskType string, payload interface{}) {
	if s.queue == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal receipt payload", err)
		return
	}

	task := asynq.NewTask(taskType, data)
	if _, err := s.queue.Enqueue(task, asynq.Queue(types.QueueEmail), asynq.MaxRetry(3)); err != nil {
		// Receipts are best effort. The issue/return is already committed.
		logger.Warn("Failed to enqueue receipt email", map[string]interface{}{
			"task_type": taskType,
			"error":     err.Error(),
		})
	}
}
