package shipping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

type fakeMethodStore struct {
	method *models.ShippingMethod
	err    error
}

func (f *fakeMethodStore) Get(ctx context.Context, id uuid.UUID) (*models.ShippingMethod, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.method, nil
}

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func standardMethod() *models.ShippingMethod {
	freeAbove := d("50.00")
	return &models.ShippingMethod{
		ID:        uuid.New(),
		Name:      "Standard",
		BasePrice: d("4.99"),
		FreeAbove: &freeAbove,
		IsActive:  true,
	}
}

func TestResolveFreeAboveThreshold(t *testing.T) {
	method := standardMethod()
	resolver := NewResolver(&fakeMethodStore{method: method})

	// exactly at the threshold ships free
	_, cost, err := resolver.Resolve(context.Background(), method.ID, d("50.00"))
	require.NoError(t, err)
	assert.True(t, cost.IsZero(), "cost = %s", cost)

	// a cent under pays the base price
	_, cost, err = resolver.Resolve(context.Background(), method.ID, d("49.99"))
	require.NoError(t, err)
	assert.True(t, cost.Equal(d("4.99")), "cost = %s", cost)
}

func TestResolveNoThreshold(t *testing.T) {
	method := standardMethod()
	method.FreeAbove = nil
	resolver := NewResolver(&fakeMethodStore{method: method})

	_, cost, err := resolver.Resolve(context.Background(), method.ID, d("1000.00"))
	require.NoError(t, err)
	assert.True(t, cost.Equal(d("4.99")))
}

func TestResolveInactiveMethod(t *testing.T) {
	method := standardMethod()
	method.IsActive = false
	resolver := NewResolver(&fakeMethodStore{method: method})

	_, _, err := resolver.Resolve(context.Background(), method.ID, d("10.00"))
	assert.ErrorIs(t, err, ErrMethodInactive)
}

func TestResolveMissingMethod(t *testing.T) {
	resolver := NewResolver(&fakeMethodStore{err: ErrMethodNotFound})

	_, _, err := resolver.Resolve(context.Background(), uuid.New(), d("10.00"))
	assert.ErrorIs(t, err, ErrMethodNotFound)
}
