package shipping

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListActive handles GET /api/shipping-methods. An optional cart_total query
// parameter prices each method against the buyer's subtotal so the
// storefront can show "free" upfront.
func (h *Handler) ListActive(c *gin.Context) {
	methods, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load shipping methods"})
		return
	}

	subtotal := decimal.Zero
	if raw := c.Query("cart_total"); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err == nil && !parsed.IsNegative() {
			subtotal = parsed
		}
	}

	type priced struct {
		models.ShippingMethod
		Cost   decimal.Decimal `json:"cost"`
		IsFree bool            `json:"is_free"`
	}
	out := make([]priced, 0, len(methods))
	for _, m := range methods {
		cost := m.Cost(subtotal)
		out = append(out, priced{ShippingMethod: m, Cost: cost, IsFree: cost.IsZero()})
	}

	c.JSON(http.StatusOK, gin.H{"methods": out})
}

type methodRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	BasePrice     decimal.Decimal  `json:"base_price"`
	FreeAbove     *decimal.Decimal `json:"free_above"`
	EstimatedDays int              `json:"estimated_days"`
	IsActive      *bool            `json:"is_active"`
}

// Create handles POST /api/admin/shipping-methods.
func (h *Handler) Create(c *gin.Context) {
	var req methodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipping method payload", "details": err.Error()})
		return
	}
	if req.BasePrice.IsNegative() || (req.FreeAbove != nil && req.FreeAbove.IsNegative()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prices must not be negative"})
		return
	}

	m := models.ShippingMethod{
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		FreeAbove:     req.FreeAbove,
		EstimatedDays: req.EstimatedDays,
	}
	if err := h.repo.Create(c.Request.Context(), &m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create shipping method"})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Update handles PUT /api/admin/shipping-methods/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipping method id"})
		return
	}

	var req methodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipping method payload"})
		return
	}

	m := models.ShippingMethod{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		FreeAbove:     req.FreeAbove,
		EstimatedDays: req.EstimatedDays,
		IsActive:      true,
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := h.repo.Update(c.Request.Context(), &m); err != nil {
		if errors.Is(err, ErrMethodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipping method not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update shipping method"})
		return
	}
	c.JSON(http.StatusOK, m)
}
