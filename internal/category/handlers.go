package category

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Slug   string  `json:"slug"`
	Name   string  `json:"name" binding:"required"`
	Parent *string `json:"parent"`
}

// UpdateCategoryRequest is the payload for updating a category.
type UpdateCategoryRequest struct {
	Name   string  `json:"name" binding:"required"`
	Parent *string `json:"parent"`
}

// Handler contains the HTTP handlers for categories.
type Handler struct {
	useCase *UseCase
}

// NewHandler creates a new Handler.
func NewHandler(useCase *UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Create handles POST /api/v1/categories.
func (h *Handler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.useCase.Create(c.Request.Context(), &Category{
		Slug:       req.Slug,
		Name:       req.Name,
		ParentSlug: req.Parent,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Get handles GET /api/v1/categories/:slug.
func (h *Handler) Get(c *gin.Context) {
	category, err := h.useCase.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, category)
}

// List handles GET /api/v1/categories.
func (h *Handler) List(c *gin.Context) {
	categories, err := h.useCase.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Update handles PUT /api/v1/categories/:slug.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.useCase.Update(c.Request.Context(), &Category{
		Slug:       c.Param("slug"),
		Name:       req.Name,
		ParentSlug: req.Parent,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// Delete handles DELETE /api/v1/categories/:slug.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}
