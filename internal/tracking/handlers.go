package tracking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler contains the staff-only HTTP handlers for page views.
type Handler struct {
	repository Repository
}

// NewHandler creates a new Handler.
func NewHandler(repository Repository) *Handler {
	return &Handler{repository: repository}
}

// List handles GET /api/v1/tracking.
func (h *Handler) List(c *gin.Context) {
	views, err := h.repository.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// Delete handles DELETE /api/v1/tracking/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page view id"})
		return
	}

	if err := h.repository.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}
