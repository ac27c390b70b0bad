package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShippingMethod struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	BasePrice     decimal.Decimal  `json:"base_price"`
	FreeAbove     *decimal.Decimal `json:"free_above,omitempty"`
	EstimatedDays int              `json:"estimated_days"`
	IsActive      bool             `json:"is_active"`
}

// Cost applies the free-shipping threshold: subtotal at or above FreeAbove
// ships for nothing.
func (m ShippingMethod) Cost(subtotal decimal.Decimal) decimal.Decimal {
	if m.FreeAbove != nil && subtotal.GreaterThanOrEqual(*m.FreeAbove) {
		return decimal.Zero
	}
	return m.BasePrice
}
