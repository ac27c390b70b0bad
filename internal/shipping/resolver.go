package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

var ErrMethodInactive = errors.New("shipping method is not active")

// MethodStore is what the resolver reads from; satisfied by *Repository.
type MethodStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.ShippingMethod, error)
}

// Resolver turns a chosen shipping method into the cost to charge for a
// given subtotal.
type Resolver struct {
	store MethodStore
}

func NewResolver(store MethodStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve rejects missing or deactivated methods, then applies the
// free-above threshold against the validated subtotal.
func (r *Resolver) Resolve(ctx context.Context, methodID uuid.UUID, subtotal decimal.Decimal) (*models.ShippingMethod, decimal.Decimal, error) {
	method, err := r.store.Get(ctx, methodID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !method.IsActive {
		return nil, decimal.Zero, ErrMethodInactive
	}
	return method, method.Cost(subtotal), nil
}
