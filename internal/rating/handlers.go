package rating

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Emmir-1/sell-swap-hint/internal/auth"
)

// ReviewRequest is the create/update payload for a review.
type ReviewRequest struct {
	Mark int    `json:"mark" binding:"required,gte=1,lte=5"`
	Body string `json:"body"`
}

// Handler contains the HTTP handlers for reviews.
type Handler struct {
	useCase *UseCase
}

// NewHandler creates a new Handler.
func NewHandler(useCase *UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Create handles POST /api/v1/products/:id/reviews.
func (h *Handler) Create(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.useCase.Create(c.Request.Context(), identity.UserID, c.Param("id"), req.Mark, req.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListByProduct handles GET /api/v1/products/:id/reviews.
func (h *Handler) ListByProduct(c *gin.Context) {
	reviews, err := h.useCase.ListByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Update handles PUT /api/v1/reviews/:id.
func (h *Handler) Update(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.useCase.Update(c.Request.Context(), c.Param("id"), req.Mark, req.Body); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// Delete handles DELETE /api/v1/reviews/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidMark):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
