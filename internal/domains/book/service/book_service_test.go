package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
)

// noopCache satisfies cache.Cache with misses and successful writes.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, keys ...string) error        { return nil }
func (noopCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (noopCache) Ping(ctx context.Context) error                          { return nil }

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *mockBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *mockBookRepo) List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Book), args.Int(1), args.Error(2)
}

func (m *mockBookRepo) Update(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *mockBookRepo) UpdateCopyCounts(ctx context.Context, id uuid.UUID, totalDelta int) (*model.Book, error) {
	args := m.Called(ctx, id, totalDelta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *mockBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBookRepo) ReserveCopyWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, tx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *mockBookRepo) ReleaseCopyWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, tx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

type mockIssueCounter struct {
	mock.Mock
}

func (m *mockIssueCounter) CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	args := m.Called(ctx, bookID)
	return args.Int(0), args.Error(1)
}

func newTestBookService(repo *mockBookRepo, counter *mockIssueCounter) ServiceInterface {
	return NewService(repo, counter, nil, noopCache{})
}

func TestCreateBook_AllCopiesStartAvailable(t *testing.T) {
	repo := &mockBookRepo{}
	counter := &mockIssueCounter{}
	svc := newTestBookService(repo, counter)

	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(b *model.Book) bool {
		return b.TotalCopies == 4 && b.AvailableCopies == 4 && b.Version == 1
	})).Return(nil)

	res, err := svc.CreateBook(ctx, model.CreateBookRequest{
		Title:       "The Go Programming Language",
		Author:      "Donovan & Kernighan",
		ISBN:        "9780134190440",
		Category:    "Programming",
		TotalCopies: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.AvailableCopies)
	repo.AssertExpectations(t)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	repo := &mockBookRepo{}
	counter := &mockIssueCounter{}
	svc := newTestBookService(repo, counter)

	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(model.ErrISBNExists)

	_, err := svc.CreateBook(ctx, model.CreateBookRequest{
		Title:       "The Go Programming Language",
		Author:      "Donovan & Kernighan",
		ISBN:        "9780134190440",
		Category:    "Programming",
		TotalCopies: 1,
	})
	require.ErrorIs(t, err, model.ErrISBNExists)
}

func TestDeleteBook_BlockedWhileCopiesOnLoan(t *testing.T) {
	repo := &mockBookRepo{}
	counter := &mockIssueCounter{}
	svc := newTestBookService(repo, counter)

	ctx := context.Background()
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(&model.Book{ID: id}, nil)
	counter.On("CountActiveByBook", ctx, id).Return(2, nil)

	err := svc.DeleteBook(ctx, id)
	require.ErrorIs(t, err, model.ErrBookHasActiveIssues)

	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteBook_Success(t *testing.T) {
	repo := &mockBookRepo{}
	counter := &mockIssueCounter{}
	svc := newTestBookService(repo, counter)

	ctx := context.Background()
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(&model.Book{ID: id}, nil)
	counter.On("CountActiveByBook", ctx, id).Return(0, nil)
	repo.On("Delete", ctx, id).Return(nil)

	err := svc.DeleteBook(ctx, id)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestAdjustCopies_PassesDelta(t *testing.T) {
	repo := &mockBookRepo{}
	counter := &mockIssueCounter{}
	svc := newTestBookService(repo, counter)

	ctx := context.Background()
	id := uuid.New()

	current := &model.Book{ID: id, TotalCopies: 3, AvailableCopies: 1}
	updated := &model.Book{ID: id, TotalCopies: 5, AvailableCopies: 3}

	repo.On("GetByID", ctx, id).Return(current, nil)
	repo.On("UpdateCopyCounts", ctx, id, 2).Return(updated, nil)

	res, err := svc.AdjustCopies(ctx, id, model.AdjustCopiesRequest{TotalCopies: 5})
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalCopies)
	assert.Equal(t, 3, res.AvailableCopies)
	repo.AssertExpectations(t)
}

func TestUploadCover_StorageUnavailable(t *testing.T) {
	repo := &mockBookRepo{}
	counter := &mockIssueCounter{}
	svc := newTestBookService(repo, counter)

	_, err := svc.UploadCover(context.Background(), uuid.New(), []byte{0xFF}, "image/jpeg")
	require.ErrorIs(t, err, model.ErrStorageUnavailable)
}
