package product

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Emmir-1/sell-swap-hint/internal/auth"
)

// ProductRequest is the create/update payload.
type ProductRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Quantity    int             `json:"quantity" binding:"gte=0"`
	Preview     string          `json:"preview"`
}

// ToggleRequest flips a like or favorite flag.
type ToggleRequest struct {
	Value bool `json:"value"`
}

// Handler contains the HTTP handlers for the catalog.
type Handler struct {
	useCase *UseCase
}

// NewHandler creates a new Handler.
func NewHandler(useCase *UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Create handles POST /api/v1/products.
func (h *Handler) Create(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.useCase.Create(c.Request.Context(), identity.UserID,
		req.Title, req.Description, req.Category, req.Preview, req.Price, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Get handles GET /api/v1/products/:id.
func (h *Handler) Get(c *gin.Context) {
	product, err := h.useCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// List handles GET /api/v1/products with an optional category filter.
func (h *Handler) List(c *gin.Context) {
	products, err := h.useCase.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Update handles PUT /api/v1/products/:id.
func (h *Handler) Update(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.useCase.Update(c.Request.Context(), identity.UserID, identity.IsStaff, &Product{
		ID:           c.Param("id"),
		Title:        req.Title,
		Description:  req.Description,
		CategorySlug: req.Category,
		Price:        req.Price,
		Quantity:     req.Quantity,
		PreviewURL:   req.Preview,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// Delete handles DELETE /api/v1/products/:id.
func (h *Handler) Delete(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), identity.UserID, identity.IsStaff, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// Like handles POST /api/v1/products/:id/like.
func (h *Handler) Like(c *gin.Context) {
	h.toggle(c, h.useCase.ToggleLike)
}

// Favorite handles POST /api/v1/products/:id/favorite.
func (h *Handler) Favorite(c *gin.Context) {
	h.toggle(c, h.useCase.ToggleFavorite)
}

// ListFavorites handles GET /api/v1/products/favorites.
func (h *Handler) ListFavorites(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	items, err := h.useCase.ListFavorites(c.Request.Context(), identity.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) toggle(c *gin.Context, apply func(ctx context.Context, userID, productID string, value bool) error) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := apply(c.Request.Context(), identity.UserID, c.Param("id"), req.Value); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
