package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/pkg/cache"
)

const (
	bookCacheKeyPrefix = "books:id:"
	bookCacheTTL       = 10 * time.Minute
)

type bookService struct {
	repo         repository.RepositoryInterface
	issueCounter ActiveIssueCounter
	storage      CoverStorage
	cache        cache.Cache
}

// NewService creates a new catalog service
func NewService(
	repo repository.RepositoryInterface,
	issueCounter ActiveIssueCounter,
	storage CoverStorage,
	cacheClient cache.Cache,
) ServiceInterface {
	return &bookService{
		repo:         repo,
		issueCounter: issueCounter,
		storage:      storage,
		cache:        cacheClient,
	}
}

// CreateBook implements ServiceInterface.CreateBook
func (s *bookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	book := model.Book{
		ID:              uuid.New(),
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		Category:        req.Category,
		Tags:            req.Tags,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies, // new titles start fully available
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, &book); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, book.ID)

	response := book.ToResponse()
	return &response, nil
}

// GetBookByID implements ServiceInterface.GetBookByID
func (s *bookService) GetBookByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cached model.BookResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		// Cache failures are non-critical; fall through to the database.
		log.Warn().Err(err).Str("key", cacheKey).Msg("Book cache read failed")
	}
	if found {
		return &cached, nil
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := book.ToResponse()

	if err := s.cache.Set(ctx, cacheKey, response, bookCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Book cache write failed")
	}

	return &response, nil
}

// ListBooks implements ServiceInterface.ListBooks
func (s *bookService) ListBooks(ctx context.Context, req model.ListBooksRequest) (*model.ListBooksResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	books, totalItems, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	totalPages := (totalItems + req.Limit - 1) / req.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	return &model.ListBooksResponse{
		Items:      model.ToResponseList(books),
		TotalItems: totalItems,
		TotalPages: totalPages,
		Page:       req.Page,
		Limit:      req.Limit,
	}, nil
}

// UpdateBook implements ServiceInterface.UpdateBook
func (s *bookService) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Category != nil {
		book.Category = *req.Category
	}
	if req.Tags != nil {
		book.Tags = req.Tags
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, id)

	response := book.ToResponse()
	return &response, nil
}

// AdjustCopies implements ServiceInterface.AdjustCopies
func (s *bookService) AdjustCopies(ctx context.Context, id uuid.UUID, req model.AdjustCopiesRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateCopyCounts(ctx, id, req.TotalCopies-book.TotalCopies)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, id)

	response := updated.ToResponse()
	return &response, nil
}

// DeleteBook implements ServiceInterface.DeleteBook.
// Deleting a title with copies still on loan is rejected so Issue records
// never dangle.
func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.issueCounter.CountActiveByBook(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count active issues: %w", err)
	}
	if active > 0 {
		return fmt.Errorf("%w: %d copies on loan", model.ErrBookHasActiveIssues, active)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx, id)
	return nil
}

// UploadCover implements ServiceInterface.UploadCover
func (s *bookService) UploadCover(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*model.BookResponse, error) {
	if s.storage == nil {
		return nil, model.ErrStorageUnavailable
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	key := path.Join("covers", book.ID.String()+ext)

	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload cover: %w", err)
	}

	book.CoverURL = &url
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, id)

	response := book.ToResponse()
	return &response, nil
}

func (s *bookService) invalidateCache(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, bookCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("book_id", id.String()).Msg("Book cache invalidation failed")
	}
}
