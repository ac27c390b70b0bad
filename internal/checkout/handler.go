package checkout

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/catalog"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/order"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/shipping"
)

// CartClearer empties the buyer's cart once the order is committed;
// satisfied by *cart.Store.
type CartClearer interface {
	Clear(ctx context.Context, userID string) error
}

type Handler struct {
	service *Service
	carts   CartClearer
}

func NewHandler(service *Service, carts CartClearer) *Handler {
	return &Handler{service: service, carts: carts}
}

// PlaceOrder handles POST /api/checkout. Works with or without a session:
// an authenticated user id comes from the JWT middleware, a guest is
// identified by the email in the body.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout payload", "details": err.Error()})
		return
	}

	identity := identityFromContext(c, req)

	placed, err := h.service.PlaceOrder(c.Request.Context(), identity, req)
	if err != nil {
		h.reject(c, err)
		return
	}

	// cart lives in Redis for account holders only; losing the delete is
	// harmless, the order already exists
	if uid := c.GetString("user_id"); uid != "" && h.carts != nil {
		if err := h.carts.Clear(c.Request.Context(), uid); err != nil {
			log.Printf("⚠️  Could not clear cart for %s: %v", uid, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"orderId":      placed.ID,
		"order_number": placed.OrderNumber,
		"total":        placed.Total,
	})
}

func identityFromContext(c *gin.Context, req Request) Identity {
	if uid := c.GetString("user_id"); uid != "" {
		if parsed, err := uuid.Parse(uid); err == nil {
			return Identity{UserID: &parsed, AccountEmail: c.GetString("email")}
		}
	}
	name := strings.TrimSpace(req.Address.FirstName + " " + req.Address.LastName)
	return Identity{GuestEmail: req.Email, GuestName: name}
}

func (h *Handler) reject(c *gin.Context, err error) {
	var vErr *ValidationError

	switch {
	case errors.Is(err, order.ErrInsufficientStock):
		body := gin.H{"error": "Insufficient stock"}
		if errors.As(err, &vErr) {
			body["product"] = vErr.Product
		}
		c.JSON(http.StatusConflict, body)

	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrVariantNotFound):
		body := gin.H{"error": "Product no longer available"}
		if errors.As(err, &vErr) {
			body["product"] = vErr.Product
		}
		c.JSON(http.StatusNotFound, body)

	case errors.Is(err, shipping.ErrMethodNotFound),
		errors.Is(err, shipping.ErrMethodInactive):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping method unavailable"})

	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrBadPaymentMethod),
		errors.Is(err, ErrGuestEmailRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})

	default:
		// persistence failures stay opaque; the caller retries a fresh
		// checkout, nothing was committed
		log.Printf("❌ Checkout failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process the order, please try again"})
	}
}
