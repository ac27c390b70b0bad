package cart

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

// Carts is the storage the handler talks to; satisfied by *Store.
type Carts interface {
	Get(ctx context.Context, userID string) ([]models.CartItem, error)
	Put(ctx context.Context, userID string, items []models.CartItem) error
	Clear(ctx context.Context, userID string) error
}

type Handler struct {
	store Carts
}

func NewHandler(store Carts) *Handler {
	return &Handler{store: store}
}

// Get returns the signed-in user's cart.
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	items, err := h.store.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load cart"})
		return
	}
	c.JSON(http.StatusOK, models.Cart{UserID: userID, Items: items})
}

// Put replaces the cart contents.
func (h *Handler) Put(c *gin.Context) {
	userID := c.GetString("user_id")

	var body struct {
		Items []models.CartItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart payload"})
		return
	}
	for _, item := range body.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Every item needs a product and a positive quantity"})
			return
		}
	}

	if err := h.store.Put(c.Request.Context(), userID, body.Items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save cart"})
		return
	}
	c.JSON(http.StatusOK, models.Cart{UserID: userID, Items: body.Items})
}

// Clear empties the cart.
func (h *Handler) Clear(c *gin.Context) {
	userID := c.GetString("user_id")
	if err := h.store.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
