package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/dashboard/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new dashboard handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get dashboard summary", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Summary retrieved successfully", summary)
}

// GetRecentBooks handles GET /api/v1/dashboard/recent-books
func (h *Handler) GetRecentBooks(c *gin.Context) {
	books, err := h.service.GetRecentBooks(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get recent books", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Recent books retrieved successfully", books)
}

// GetQuickStats handles GET /api/v1/dashboard/quick-stats
func (h *Handler) GetQuickStats(c *gin.Context) {
	stats, err := h.service.GetQuickStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get quick stats", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Quick stats retrieved successfully", stats)
}
