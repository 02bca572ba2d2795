package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
)

const maxCoverSize = 5 << 20 // 5 MB

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new catalog handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateBook handles POST /api/v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		switch {
		case isValidationError(err):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		case errors.Is(err, model.ErrISBNExists):
			response.Error(c, http.StatusConflict, "ISBN already exists", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create book", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "Book created successfully", book)
}

// GetBookByID handles GET /api/v1/books/:id
func (h *Handler) GetBookByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid book ID format", err.Error())
		return
	}

	book, err := h.service.GetBookByID(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Book not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get book", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Book retrieved successfully", book)
}

// ListBooks handles GET /api/v1/books
func (h *Handler) ListBooks(c *gin.Context) {
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	res, err := h.service.ListBooks(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list books", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Books retrieved successfully", res.Items, &response.Meta{
		Page:  res.Page,
		Limit: res.Limit,
		Total: res.TotalItems,
	})
}

// UpdateBook handles PUT /api/v1/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid book ID format", err.Error())
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case isValidationError(err):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "Book not found", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update book", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Book updated successfully", book)
}

// AdjustCopies handles PATCH /api/v1/books/:id/copies
func (h *Handler) AdjustCopies(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid book ID format", err.Error())
		return
	}

	var req model.AdjustCopiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	book, err := h.service.AdjustCopies(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case isValidationError(err):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "Book not found", err.Error())
		case errors.Is(err, model.ErrInvalidCopyCounts):
			response.Error(c, http.StatusUnprocessableEntity, "Invalid copy counts", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to adjust copies", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Copies adjusted successfully", book)
}

// DeleteBook handles DELETE /api/v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid book ID format", err.Error())
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "Book not found", err.Error())
		case errors.Is(err, model.ErrBookHasActiveIssues):
			response.Error(c, http.StatusConflict, "Book has active issues", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to delete book", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Book deleted successfully", nil)
}

// UploadCover handles POST /api/v1/books/:id/cover
func (h *Handler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid book ID format", err.Error())
		return
	}

	file, header, err := c.Request.FormFile("cover")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Missing cover file", err.Error())
		return
	}
	defer file.Close()

	if header.Size > maxCoverSize {
		response.Error(c, http.StatusBadRequest, "Cover file too large", "maximum size is 5MB")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		response.Error(c, http.StatusBadRequest, "Unsupported cover format", "only JPEG and PNG are accepted")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxCoverSize))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to read cover file", err.Error())
		return
	}

	book, err := h.service.UploadCover(c.Request.Context(), id, data, contentType)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "Book not found", err.Error())
		case errors.Is(err, model.ErrStorageUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "Cover storage unavailable", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to upload cover", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Cover uploaded successfully", book)
}

func isValidationError(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.Error
	return errors.As(err, &verr)
}
