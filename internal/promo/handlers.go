package promo

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Emmir-1/sell-swap-hint/internal/auth"
)

// PromoRequest is the create/update payload for a promo.
type PromoRequest struct {
	Image string `json:"image" binding:"required"`
	Body  string `json:"body"`
}

// Handler contains the HTTP handlers for promos.
type Handler struct {
	useCase *UseCase
}

// NewHandler creates a new Handler.
func NewHandler(useCase *UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Create handles POST /api/v1/promos.
func (h *Handler) Create(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo, err := h.useCase.Create(c.Request.Context(), identity.UserID, req.Image, req.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, promo)
}

// List handles GET /api/v1/promos.
func (h *Handler) List(c *gin.Context) {
	promos, err := h.useCase.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, promos)
}

// Update handles PUT /api/v1/promos/:id.
func (h *Handler) Update(c *gin.Context) {
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.useCase.Update(c.Request.Context(), c.Param("id"), req.Image, req.Body); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// Delete handles DELETE /api/v1/promos/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
