package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Price             decimal.Decimal  `json:"price"`
	Stock             int              `json:"stock"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	SKU               string           `json:"sku"`
	ImageURLs         []string         `json:"image_urls"`
	IsActive          bool             `json:"is_active"`
	HasVariants       bool             `json:"has_variants"`
	Variants          []ProductVariant `json:"variants,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ProductVariant is a sellable configuration (size, color, ...) with its own
// stock counter and an optional price override.
type ProductVariant struct {
	ID         uuid.UUID         `json:"id"`
	ProductID  uuid.UUID         `json:"product_id"`
	SKU        string            `json:"sku"`
	Price      *decimal.Decimal  `json:"price,omitempty"`
	Stock      int               `json:"stock"`
	Attributes map[string]string `json:"attributes"`
	IsActive   bool              `json:"is_active"`
}

// UnitPrice returns the variant price override when set, the product price
// otherwise.
func (v ProductVariant) UnitPrice(p Product) decimal.Decimal {
	if v.Price != nil {
		return *v.Price
	}
	return p.Price
}
