package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/issue/model"
	usermodel "library-backend/internal/domains/user/model"
)

// ========================================
// FAKES & MOCKS
// ========================================

// fakeTx satisfies pgx.Tx and records commit/rollback so tests can
// assert transaction boundaries.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

type mockIssueRepo struct {
	mock.Mock
}

func (m *mockIssueRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *mockIssueRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, issue *model.Issue) error {
	args := m.Called(ctx, tx, issue)
	return args.Error(0)
}

func (m *mockIssueRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *mockIssueRepo) GetByIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Issue, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *mockIssueRepo) MarkReturnedWithTx(ctx context.Context, tx pgx.Tx, issue *model.Issue) error {
	args := m.Called(ctx, tx, issue)
	return args.Error(0)
}

func (m *mockIssueRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Issue, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Issue), args.Error(1)
}

func (m *mockIssueRepo) ListAll(ctx context.Context, filter model.ListIssuesRequest) ([]model.Detail, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Detail), args.Int(1), args.Error(2)
}

func (m *mockIssueRepo) ListAllForExport(ctx context.Context) ([]model.Detail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Detail), args.Error(1)
}

func (m *mockIssueRepo) CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	args := m.Called(ctx, bookID)
	return args.Int(0), args.Error(1)
}

func (m *mockIssueRepo) CountByStatus(ctx context.Context, status model.Status) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type mockCopyLedger struct {
	mock.Mock
}

func (m *mockCopyLedger) ReserveCopyWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*bookmodel.Book, error) {
	args := m.Called(ctx, tx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookmodel.Book), args.Error(1)
}

func (m *mockCopyLedger) ReleaseCopyWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*bookmodel.Book, error) {
	args := m.Called(ctx, tx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookmodel.Book), args.Error(1)
}

type mockBorrowerDirectory struct {
	mock.Mock
}

func (m *mockBorrowerDirectory) GetByID(ctx context.Context, id uuid.UUID) (*usermodel.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usermodel.User), args.Error(1)
}

// ========================================
// TEST SETUP
// ========================================

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestService(repo *mockIssueRepo, books *mockCopyLedger, users *mockBorrowerDirectory) *issueService {
	return &issueService{
		repo:           repo,
		books:          books,
		users:          users,
		queue:          nil,
		loanPeriodDays: 14,
		fineRatePerDay: decimal.NewFromInt(10),
		now:            func() time.Time { return testNow },
	}
}

func activeBorrower(id uuid.UUID) *usermodel.User {
	return &usermodel.User{
		ID:     id,
		Name:   "Pat Reader",
		Email:  "pat@example.com",
		Role:   usermodel.RoleMember,
		Status: usermodel.StatusActive,
	}
}

func catalogBook(id uuid.UUID, available int) *bookmodel.Book {
	return &bookmodel.Book{
		ID:              id,
		Title:           "The Go Programming Language",
		Author:          "Donovan & Kernighan",
		ISBN:            "9780134190440",
		TotalCopies:     3,
		AvailableCopies: available,
	}
}

// ========================================
// ISSUE
// ========================================

func TestIssueBook_Success(t *testing.T) {
	repo := &mockIssueRepo{}
	books := &mockCopyLedger{}
	users := &mockBorrowerDirectory{}
	svc := newTestService(repo, books, users)

	ctx := context.Background()
	userID := uuid.New()
	bookID := uuid.New()
	tx := &fakeTx{}

	users.On("GetByID", ctx, userID).Return(activeBorrower(userID), nil)
	repo.On("BeginTx", ctx).Return(tx, nil)
	books.On("ReserveCopyWithTx", ctx, tx, bookID).Return(catalogBook(bookID, 2), nil)
	repo.On("CreateWithTx", ctx, tx, mock.AnythingOfType("*model.Issue")).Return(nil)

	res, err := svc.IssueBook(ctx, model.IssueBookRequest{UserID: userID, BookID: bookID})
	require.NoError(t, err)

	assert.Equal(t, model.StatusIssued.String(), res.Status)
	assert.Equal(t, testNow, res.IssueDate)
	assert.Equal(t, testNow.AddDate(0, 0, 14), res.DueDate)
	assert.False(t, res.Overdue)
	assert.Nil(t, res.ReturnDate)
	assert.True(t, tx.committed)

	repo.AssertExpectations(t)
	books.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestIssueBook_BorrowerNotFound(t *testing.T) {
	repo := &mockIssueRepo{}
	books := &mockCopyLedger{}
	users := &mockBorrowerDirectory{}
	svc := newTestService(repo, books, users)

	ctx := context.Background()
	userID := uuid.New()

	users.On("GetByID", ctx, userID).Return(nil, usermodel.NewUserNotFoundError(userID))

	_, err := svc.IssueBook(ctx, model.IssueBookRequest{UserID: userID, BookID: uuid.New()})
	require.ErrorIs(t, err, model.ErrBorrowerNotFound)

	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestIssueBook_InactiveBorrower(t *testing.T) {
	repo := &mockIssueRepo{}
	books := &mockCopyLedger{}
	users := &mockBorrowerDirectory{}
	svc := newTestService(repo, books, users)

	ctx := context.Background()
	userID := uuid.New()

	borrower := activeBorrower(userID)
	borrower.Status = usermodel.StatusInactive
	users.On("GetByID", ctx, userID).Return(borrower, nil)

	_, err := svc.IssueBook(ctx, model.IssueBookRequest{UserID: userID, BookID: uuid.New()})
	require.ErrorIs(t, err, model.ErrBorrowerInactive)

	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestIssueBook_NoCopiesLeavesNoPartialState(t *testing.T) {
	repo := &mockIssueRepo{}
	books := &mockCopyLedger{}
	users := &mockBorrowerDirectory{}
	svc := newTestService(repo, books, users)

	ctx := context.Background()
	userID := uuid.New()
	bookID := uuid.New()
	tx := &fakeTx{}

	users.On("GetByID", ctx, userID).Return(activeBorrower(userID), nil)
	repo.On("BeginTx", ctx).Return(tx, nil)
	books.On("ReserveCopyWithTx", ctx, tx, bookID).Return(nil, bookmodel.ErrNoCopiesAvailable)

	_, err := svc.IssueBook(ctx, model.IssueBookRequest{UserID: userID, BookID: bookID})
	require.ErrorIs(t, err, bookmodel.ErrNoCopiesAvailable)

	// No issue record may be written when reservation fails.
	repo.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestIssueBook_LastCopySecondRequestFails(t *testing.T) {
	repo := &mockIssueRepo{}
	books := &mockCopyLedger{}
	users := &mockBorrowerDirectory{}
	svc := newTestService(repo, books, users)

	ctx := context.Background()
	bookID := uuid.New()
	firstUser := uuid.New()
	secondUser := uuid.New()

	users.On("GetByID", ctx, firstUser).Return(activeBorrower(firstUser), nil)
	users.On("GetByID", ctx, secondUser).Return(activeBorrower(secondUser), nil)
	repo.On("BeginTx", ctx).Return(&fakeTx{}, nil)

	// The row lock makes reservations sequential: the first request
	// takes the last copy, the second sees zero.
	books.On("ReserveCopyWithTx", ctx, mock.Anything, bookID).Return(catalogBook(bookID, 0), nil).Once()
	books.On("ReserveCopyWithTx", ctx, mock.Anything, bookID).Return(nil, bookmodel.ErrNoCopiesAvailable).Once()
	repo.On("CreateWithTx", ctx, mock.Anything, mock.AnythingOfType("*model.Issue")).Return(nil).Once()

	_, err := svc.IssueBook(ctx, model.IssueBookRequest{UserID: firstUser, BookID: bookID})
	require.NoError(t, err)

	_, err = svc.IssueBook(ctx, model.IssueBookRequest{UserID: secondUser, BookID: bookID})
	require.ErrorIs(t, err, bookmodel.ErrNoCopiesAvailable)

	books.AssertExpectations(t)
	repo.AssertExpectations(t)
}

// ========================================
// RETURN
// ========================================

func TestReturnBook_Success(t *testing.T) {
	repo := &mockIssueRepo{}
	books := &mockCopyLedger{}
	users := &mockBorrowerDirectory{}
	svc := newTestService(repo, books, users)

	ctx := context.Background()
	issueID := uuid.New()
	userID := uuid.New()
	bookID := uuid.New()
	tx := &fakeTx{}

	open := &model.Issue{
		ID:        issueID,
		UserID:    userID,
		BookID:    bookID,
		IssueDate: testNow.AddDate(0, 0, -7),
		DueDate:   testNow.AddDate(0, 0, 7),
		Status:    model.StatusIssued,
	}

	repo.On("BeginTx", ctx).Return(tx, nil)
	repo.On("GetByIDForUpdateWithTx", ctx, tx, issueID).Return(open, nil)
	repo.On("MarkReturnedWithTx", ctx, tx, open).Return(nil)
	books.On("ReleaseCopyWithTx", ctx, tx, bookID).Return(catalogBook(bookID, 3), nil)
	users.On("GetByID", ctx, userID).Return(activeBorrower(userID), nil)

	res, err := svc.ReturnBook(ctx, issueID)
	require.NoError(t, err)

	assert.Equal(t, model.StatusReturned.String(), res.Status)
	require.NotNil(t, res.ReturnDate)
	assert.Equal(t, testNow, *res.ReturnDate)
	assert.False(t, res.Overdue)
	assert.True(t, tx.committed)

	repo.AssertExpectations(t)
	books.AssertExpectations(t)
}

func TestReturnBook_AlreadyReturned(t *testing.T) {
	repo := &mockIssueRepo{}
	books := &mockCopyLedger{}
	users := &mockBorrowerDirectory{}
	svc := newTestService(repo, books, users)

	ctx := context.Background()
	issueID := uuid.New()
	tx := &fakeTx{}

	returnedAt := testNow.AddDate(0, 0, -1)
	closed := &model.Issue{
		ID:         issueID,
		UserID:     uuid.New(),
		BookID:     uuid.New(),
		DueDate:    testNow.AddDate(0, 0, 7),
		ReturnDate: &returnedAt,
		Status:     model.StatusReturned,
	}

	repo.On("BeginTx", ctx).Return(tx, nil)
	repo.On("GetByIDForUpdateWithTx", ctx, tx, issueID).Return(closed, nil)

	_, err := svc.ReturnBook(ctx, issueID)
	require.ErrorIs(t, err, model.ErrAlreadyReturned)

	// Neither the issue nor the copy count may change.
	repo.AssertNotCalled(t, "MarkReturnedWithTx", mock.Anything, mock.Anything, mock.Anything)
	books.AssertNotCalled(t, "ReleaseCopyWithTx", mock.Anything, mock.Anything, mock.Anything)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestReturnBook_NotFound(t *testing.T) {
	repo := &mockIssueRepo{}
	books := &mockCopyLedger{}
	users := &mockBorrowerDirectory{}
	svc := newTestService(repo, books, users)

	ctx := context.Background()
	issueID := uuid.New()
	tx := &fakeTx{}

	repo.On("BeginTx", ctx).Return(tx, nil)
	repo.On("GetByIDForUpdateWithTx", ctx, tx, issueID).Return(nil, model.NewIssueNotFoundError(issueID))

	_, err := svc.ReturnBook(ctx, issueID)
	require.ErrorIs(t, err, model.ErrIssueNotFound)
	assert.False(t, tx.committed)
}

// ========================================
// LISTING
// ========================================

func TestFindByUser_DerivesOverdueFlag(t *testing.T) {
	repo := &mockIssueRepo{}
	books := &mockCopyLedger{}
	users := &mockBorrowerDirectory{}
	svc := newTestService(repo, books, users)

	ctx := context.Background()
	userID := uuid.New()

	returnedAt := testNow.AddDate(0, 0, -20)
	issues := []model.Issue{
		{
			ID:      uuid.New(),
			UserID:  userID,
			DueDate: testNow.AddDate(0, 0, -2),
			Status:  model.StatusIssued,
		},
		{
			ID:      uuid.New(),
			UserID:  userID,
			DueDate: testNow.AddDate(0, 0, 5),
			Status:  model.StatusIssued,
		},
		{
			// Past due but already returned, so not overdue.
			ID:         uuid.New(),
			UserID:     userID,
			DueDate:    testNow.AddDate(0, 0, -30),
			ReturnDate: &returnedAt,
			Status:     model.StatusReturned,
		},
	}

	repo.On("ListByUser", ctx, userID).Return(issues, nil)

	res, err := svc.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, res, 3)

	assert.True(t, res[0].Overdue)
	assert.False(t, res[1].Overdue)
	assert.False(t, res[2].Overdue)
}

func TestFindAll_Pagination(t *testing.T) {
	repo := &mockIssueRepo{}
	books := &mockCopyLedger{}
	users := &mockBorrowerDirectory{}
	svc := newTestService(repo, books, users)

	ctx := context.Background()

	details := []model.Detail{
		{
			Issue: model.Issue{
				ID:      uuid.New(),
				DueDate: testNow.AddDate(0, 0, 3),
				Status:  model.StatusIssued,
			},
			UserName:  "Pat Reader",
			BookTitle: "The Go Programming Language",
		},
	}

	repo.On("ListAll", ctx, mock.AnythingOfType("model.ListIssuesRequest")).Return(details, 41, nil)

	res, err := svc.FindAll(ctx, model.ListIssuesRequest{Page: 2, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 41, res.TotalItems)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 2, res.Page)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Pat Reader", res.Items[0].UserName)
}
