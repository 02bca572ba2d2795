package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/issue/model"
	"library-backend/internal/domains/issue/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new issue handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// IssueBook handles POST /api/v1/book-issues
func (h *Handler) IssueBook(c *gin.Context) {
	var req model.IssueBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	issue, err := h.service.IssueBook(c.Request.Context(), req)
	if err != nil {
		switch {
		case isValidationError(err):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		case errors.Is(err, model.ErrBorrowerNotFound):
			response.Error(c, http.StatusNotFound, "User not found", err.Error())
		case errors.Is(err, model.ErrBorrowerInactive):
			response.Error(c, http.StatusForbidden, "User account is inactive", err.Error())
		case bookmodel.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "Book not found", err.Error())
		case errors.Is(err, bookmodel.ErrNoCopiesAvailable):
			response.Error(c, http.StatusConflict, "No copies available", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to issue book", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "Book issued successfully", issue)
}

// ReturnBook handles POST /api/v1/book-issues/:id/return
func (h *Handler) ReturnBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid issue ID format", err.Error())
		return
	}

	issue, err := h.service.ReturnBook(c.Request.Context(), id)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "Issue not found", err.Error())
		case errors.Is(err, model.ErrAlreadyReturned):
			response.Error(c, http.StatusConflict, "Book already returned", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to return book", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Book returned successfully", issue)
}

// GetIssueByID handles GET /api/v1/book-issues/:id
func (h *Handler) GetIssueByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid issue ID format", err.Error())
		return
	}

	issue, err := h.service.GetIssueByID(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Issue not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get issue", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Issue retrieved successfully", issue)
}

// FindByUser handles GET /api/v1/book-issues/user/:userId
func (h *Handler) FindByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID format", err.Error())
		return
	}

	issues, err := h.service.FindByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list user issues", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Issues retrieved successfully", issues)
}

// FindAll handles GET /api/v1/book-issues
func (h *Handler) FindAll(c *gin.Context) {
	var req model.ListIssuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	res, err := h.service.FindAll(c.Request.Context(), req)
	if err != nil {
		if isValidationError(err) {
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to list issues", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Issues retrieved successfully", res.Items, &response.Meta{
		Page:  res.Page,
		Limit: res.Limit,
		Total: res.TotalItems,
	})
}

// ExportRegister handles GET /api/v1/book-issues/export
func (h *Handler) ExportRegister(c *gin.Context) {
	data, filename, err := h.service.ExportRegister(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to export issue register", err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func isValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}
