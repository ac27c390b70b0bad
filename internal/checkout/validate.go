package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/catalog"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/order"
)

// CatalogStore is the read-only catalog view the validator needs; satisfied
// by *catalog.Repository.
type CatalogStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)
}

// validateItems reconciles every requested line against the live catalog.
// Price, sku and name are taken from the store; the client copy is ignored.
// The whole checkout is rejected on the first bad line, identifying it.
func validateItems(ctx context.Context, store CatalogStore, items []LineItemRequest) ([]ValidatedLineItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	validated := make([]ValidatedLineItem, 0, len(items))
	for i, item := range items {
		line, err := validateItem(ctx, store, item)
		if err != nil {
			name := item.Name
			if name == "" {
				name = item.ProductID
			}
			if line != nil {
				name = line.Name
			}
			return nil, &ValidationError{Line: i, Product: name, Err: err}
		}
		validated = append(validated, *line)
	}
	return validated, nil
}

// validateItem may return a partially filled line together with an error so
// the caller can name the product in the rejection.
func validateItem(ctx context.Context, store CatalogStore, item LineItemRequest) (*ValidatedLineItem, error) {
	if item.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	productID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return nil, catalog.ErrProductNotFound
	}

	product, err := store.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, catalog.ErrProductNotFound
	}

	line := &ValidatedLineItem{
		ProductID: product.ID,
		SKU:       product.SKU,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  item.Quantity,
	}

	if item.VariantID == "" {
		if product.HasVariants {
			return line, fmt.Errorf("a variant must be selected")
		}
		if product.Stock < item.Quantity {
			return line, order.ErrInsufficientStock
		}
		return line, nil
	}

	variantID, err := uuid.Parse(item.VariantID)
	if err != nil {
		return line, catalog.ErrVariantNotFound
	}
	variant, err := store.GetVariant(ctx, variantID)
	if err != nil {
		return line, err
	}
	// the variant must belong to the requested product
	if variant.ProductID != product.ID || !variant.IsActive {
		return line, catalog.ErrVariantNotFound
	}
	if variant.Stock < item.Quantity {
		return line, order.ErrInsufficientStock
	}

	line.VariantID = &variant.ID
	line.SKU = variant.SKU
	line.UnitPrice = variant.UnitPrice(*product)
	if len(variant.Attributes) > 0 {
		raw, err := json.Marshal(variant.Attributes)
		if err != nil {
			return line, err
		}
		info := string(raw)
		line.VariantInfo = &info
	}
	return line, nil
}
