package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Emmir-1/sell-swap-hint/internal/auth"
)

// OrderLineRequest is one requested product line. Quantity defaults to 1.
type OrderLineRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"gte=0"`
}

// PlaceOrderRequest is the order placement payload.
type PlaceOrderRequest struct {
	Address  string             `json:"address" binding:"required"`
	Number   string             `json:"number" binding:"required"`
	Products []OrderLineRequest `json:"products" binding:"required,min=1,dive"`
}

// Handler contains the HTTP handlers for orders.
type Handler struct {
	useCase *UseCase
	tracer  trace.Tracer
}

// NewHandler creates a new Handler.
func NewHandler(useCase *UseCase, tracer trace.Tracer) *Handler {
	return &Handler{useCase: useCase, tracer: tracer}
}

// Place handles POST /api/v1/orders.
func (h *Handler) Place(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "place_order")
	defer span.End()

	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("user_id", identity.UserID),
		attribute.String("order_number", req.Number),
		attribute.Int("line_count", len(req.Products)),
	)

	lines := make([]Line, len(req.Products))
	for i, p := range req.Products {
		lines[i] = Line{ProductID: p.Product, Quantity: p.Quantity}
	}

	order, err := h.useCase.Place(ctx, identity.UserID, identity.Email, req.Address, req.Number, lines)
	if err != nil {
		span.RecordError(err)

		var notFound *NotFoundError
		var insufficient *InsufficientStockError
		switch {
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &insufficient):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	span.SetAttributes(
		attribute.String("order_id", order.ID),
		attribute.String("total_sum", order.TotalSum.StringFixed(2)),
	)

	c.JSON(http.StatusCreated, order)
}

// Get handles GET /api/v1/orders/:id.
func (h *Handler) Get(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	order, err := h.useCase.Get(c.Request.Context(), identity.UserID, identity.IsStaff, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// List handles GET /api/v1/orders. Staff see every order, everyone else
// sees their own.
func (h *Handler) List(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orders, err := h.useCase.List(c.Request.Context(), identity.UserID, identity.IsStaff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}
