package catalog

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/search"
)

type Handler struct {
	repo  *Repository
	index *search.Index
}

func NewHandler(repo *Repository, index *search.Index) *Handler {
	return &Handler{repo: repo, index: index}
}

// List handles GET /api/products.
func (h *Handler) List(c *gin.Context) {
	products, err := h.repo.ListProducts(c.Request.Context())
	if err != nil {
		log.Printf("❌ Could not list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get handles GET /api/products/:id, variants included.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, err := h.repo.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price" binding:"required"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	SKU               string          `json:"sku" binding:"required"`
	ImageURLs         []string        `json:"image_urls"`
	HasVariants       bool            `json:"has_variants"`
}

// Create handles POST /api/admin/products.
func (h *Handler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload", "details": err.Error()})
		return
	}
	if req.Price.IsNegative() || req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price and stock must not be negative"})
		return
	}

	p := models.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		SKU:               req.SKU,
		ImageURLs:         req.ImageURLs,
		HasVariants:       req.HasVariants,
	}
	if err := h.repo.CreateProduct(c.Request.Context(), &p); err != nil {
		log.Printf("❌ Could not create product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create product"})
		return
	}

	h.index.IndexProduct(c.Request.Context(), p)
	c.JSON(http.StatusCreated, p)
}

// Update handles PUT /api/admin/products/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	current, err := h.repo.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load product"})
		return
	}

	var req struct {
		Name              *string          `json:"name"`
		Description       *string          `json:"description"`
		Price             *decimal.Decimal `json:"price"`
		LowStockThreshold *int             `json:"low_stock_threshold"`
		ImageURLs         []string         `json:"image_urls"`
		IsActive          *bool            `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
		return
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}
		current.Price = *req.Price
	}
	if req.LowStockThreshold != nil {
		current.LowStockThreshold = *req.LowStockThreshold
	}
	if req.ImageURLs != nil {
		current.ImageURLs = req.ImageURLs
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := h.repo.UpdateProduct(c.Request.Context(), current); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update product"})
		return
	}

	h.index.IndexProduct(c.Request.Context(), *current)
	c.JSON(http.StatusOK, current)
}

// CreateVariant handles POST /api/admin/products/:id/variants.
func (h *Handler) CreateVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req struct {
		SKU        string            `json:"sku" binding:"required"`
		Price      *decimal.Decimal  `json:"price"`
		Stock      int               `json:"stock"`
		Attributes map[string]string `json:"attributes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variant payload", "details": err.Error()})
		return
	}
	if req.Stock < 0 || (req.Price != nil && req.Price.IsNegative()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price and stock must not be negative"})
		return
	}

	if _, err := h.repo.GetProduct(c.Request.Context(), productID); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load product"})
		return
	}

	v := models.ProductVariant{
		ProductID:  productID,
		SKU:        req.SKU,
		Price:      req.Price,
		Stock:      req.Stock,
		Attributes: req.Attributes,
	}
	if err := h.repo.CreateVariant(c.Request.Context(), &v); err != nil {
		log.Printf("❌ Could not create variant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create variant"})
		return
	}

	c.JSON(http.StatusCreated, v)
}

// Restock handles POST /api/admin/variants/:id/restock and accepts negative
// deltas for corrections.
func (h *Handler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variant id"})
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A non-zero delta is required"})
		return
	}

	stock, err := h.repo.Restock(c.Request.Context(), id, req.Delta)
	if err != nil {
		if errors.Is(err, ErrVariantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found or stock would go negative"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not adjust stock"})
		return
	}

	log.Printf("📦 Variant %s restocked by %+d (now %d)", id, req.Delta, stock)
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// RestockProduct handles POST /api/admin/products/:id/restock, the same
// adjustment for products sold without variants.
func (h *Handler) RestockProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A non-zero delta is required"})
		return
	}

	stock, err := h.repo.RestockProduct(c.Request.Context(), id, req.Delta)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or stock would go negative"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not adjust stock"})
		return
	}

	log.Printf("📦 Product %s restocked by %+d (now %d)", id, req.Delta, stock)
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}
