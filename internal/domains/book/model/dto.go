package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ===================================
// REQUEST DTOs
// ===================================

// CreateBookRequest represents the payload for adding a title to the catalog.
// New books start with all copies available.
type CreateBookRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	ISBN        string   `json:"isbn"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	TotalCopies int      `json:"total_copies"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.ISBN, validation.Required, is.ISBN),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.TotalCopies, validation.Min(0)),
	)
}

// UpdateBookRequest updates catalog fields. Copy counts change through
// AdjustCopies, not here.
type UpdateBookRequest struct {
	Title    *string  `json:"title"`
	Author   *string  `json:"author"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// AdjustCopiesRequest changes total_copies. available_copies moves by the
// same delta, clamped into [0, total].
type AdjustCopiesRequest struct {
	TotalCopies int `json:"total_copies"`
}

func (r AdjustCopiesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TotalCopies, validation.Min(0)),
	)
}

// ListBooksRequest represents query parameters for the catalog listing.
type ListBooksRequest struct {
	Category      *string `form:"category"`
	Search        *string `form:"search"`
	AvailableOnly bool    `form:"available_only"`
	Page          int     `form:"page,default=1"`
	Limit         int     `form:"limit,default=20"`
}

// ===================================
// RESPONSE DTOs
// ===================================

// BookResponse represents a book in API responses.
type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	CoverURL        *string   `json:"cover_url,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	Available       bool      `json:"available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ListBooksResponse represents a paginated catalog page.
type ListBooksResponse struct {
	Items      []BookResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

// ToResponse converts a Book model to its response DTO.
func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Category:        b.Category,
		Tags:            b.Tags,
		CoverURL:        b.CoverURL,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		Available:       b.IsAvailable(),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ToResponseList converts a slice of Book models to response DTOs.
func ToResponseList(books []Book) []BookResponse {
	responses := make([]BookResponse, len(books))
	for i, b := range books {
		responses[i] = b.ToResponse()
	}
	return responses
}
