package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new user handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case isValidationError(err):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		case errors.Is(err, model.ErrEmailExists):
			response.Error(c, http.StatusConflict, "Email already registered", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to register user", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", user)
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case isValidationError(err):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		case errors.Is(err, model.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		case errors.Is(err, model.ErrUserInactive):
			response.Error(c, http.StatusForbidden, "Account is inactive", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to log in", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Logged in successfully", res)
}

// CreateUser handles POST /api/v1/admin/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		switch {
		case isValidationError(err):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		case errors.Is(err, model.ErrEmailExists):
			response.Error(c, http.StatusConflict, "Email already registered", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create user", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", user)
}

// GetProfile handles GET /api/v1/users/me
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := c.MustGet("userID").(uuid.UUID)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Missing user context", nil)
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "User not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get profile", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", user)
}

// ListUsers handles GET /api/v1/admin/users
func (h *Handler) ListUsers(c *gin.Context) {
	var req model.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	res, err := h.service.ListUsers(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list users", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Users retrieved successfully", res.Items, &response.Meta{
		Page:  res.Page,
		Limit: res.Limit,
		Total: res.TotalItems,
	})
}

// UpdateRole handles PUT /api/v1/admin/users/:id/role
func (h *Handler) UpdateRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID format", err.Error())
		return
	}

	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "Invalid role", err.Error())
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "User not found", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update role", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Role updated successfully", user)
}

// UpdateStatus handles PUT /api/v1/admin/users/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID format", err.Error())
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	user, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "Invalid status", err.Error())
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "User not found", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update status", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Status updated successfully", user)
}

func isValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}
