package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/domains/member/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new member handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateMember handles POST /api/v1/members
func (h *Handler) CreateMember(c *gin.Context) {
	var req model.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	member, err := h.service.CreateMember(c.Request.Context(), req)
	if err != nil {
		switch {
		case isValidationError(err):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		case errors.Is(err, model.ErrUserAccountNotFound):
			response.Error(c, http.StatusNotFound, "User account not found", err.Error())
		case errors.Is(err, model.ErrMemberExists):
			response.Error(c, http.StatusConflict, "User already has a membership", err.Error())
		case errors.Is(err, model.ErrMembershipNumberExists):
			response.Error(c, http.StatusConflict, "Membership number already in use", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create member", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "Member created successfully", member)
}

// GetMemberByID handles GET /api/v1/members/:id
func (h *Handler) GetMemberByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid member ID format", err.Error())
		return
	}

	member, err := h.service.GetMemberByID(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Member not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get member", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Member retrieved successfully", member)
}

// GetMemberByUserID handles GET /api/v1/members/user/:userId
func (h *Handler) GetMemberByUserID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID format", err.Error())
		return
	}

	member, err := h.service.GetMemberByUserID(c.Request.Context(), userID)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Member not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get member", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Member retrieved successfully", member)
}

// ListMembers handles GET /api/v1/members
func (h *Handler) ListMembers(c *gin.Context) {
	var req model.ListMembersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	res, err := h.service.ListMembers(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list members", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Members retrieved successfully", res.Items, &response.Meta{
		Page:  res.Page,
		Limit: res.Limit,
		Total: res.TotalItems,
	})
}

// UpdateMember handles PUT /api/v1/members/:id
func (h *Handler) UpdateMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid member ID format", err.Error())
		return
	}

	var req model.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	member, err := h.service.UpdateMember(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case isValidationError(err):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		case errors.Is(err, model.ErrInvalidMemberStatus):
			response.Error(c, http.StatusBadRequest, "Invalid member status", err.Error())
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "Member not found", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update member", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Member updated successfully", member)
}

func isValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}
