package news

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler contains the HTTP handlers for news.
type Handler struct {
	repository Repository
	scraper    *Scraper
}

// NewHandler creates a new Handler.
func NewHandler(repository Repository, scraper *Scraper) *Handler {
	return &Handler{repository: repository, scraper: scraper}
}

// List handles GET /api/v1/news.
func (h *Handler) List(c *gin.Context) {
	items, err := h.repository.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Parse handles GET /api/v1/news/parse. It kicks off a scrape in the
// background and returns immediately.
func (h *Handler) Parse(c *gin.Context) {
	// Detached from the request context: the scrape outlives the response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := h.scraper.Run(ctx); err != nil {
			log.Printf("news: on-demand scrape failed: %v", err)
		}
	}()
	c.JSON(http.StatusOK, gin.H{"result": "parse started"})
}

// Delete handles DELETE /api/v1/news/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.repository.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}
