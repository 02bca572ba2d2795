package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/fine/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new fine handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// ListFines handles GET /api/v1/fines
func (h *Handler) ListFines(c *gin.Context) {
	overdueOnly, _ := strconv.ParseBool(c.DefaultQuery("overdue_only", "false"))

	fines, err := h.service.ListFines(c.Request.Context(), overdueOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list fines", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Fines retrieved successfully", fines)
}

// ListFinesByUser handles GET /api/v1/fines/user/:userId
func (h *Handler) ListFinesByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID format", err.Error())
		return
	}

	fines, err := h.service.ListFinesByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list fines", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Fines retrieved successfully", fines)
}
