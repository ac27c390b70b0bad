package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/catalog"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/order"
)

type fakeCatalog struct {
	products map[uuid.UUID]*models.Product
	variants map[uuid.UUID]*models.ProductVariant
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) GetVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	v, ok := f.variants[id]
	if !ok {
		return nil, catalog.ErrVariantNotFound
	}
	return v, nil
}

type fakeShipping struct {
	method models.ShippingMethod
}

func (f *fakeShipping) Resolve(ctx context.Context, methodID uuid.UUID, subtotal decimal.Decimal) (*models.ShippingMethod, decimal.Decimal, error) {
	m := f.method
	m.ID = methodID
	return &m, m.Cost(subtotal), nil
}

type fakeOrders struct {
	draft *order.Draft
	err   error
}

func (f *fakeOrders) CreateOrder(ctx context.Context, draft *order.Draft) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.draft = draft
	ord := draft.Order
	ord.ID = uuid.New()
	ord.OrderNumber = order.NewOrderNumber(time.Now())
	ord.Items = draft.Items
	return &ord, nil
}

type fakeNotifier struct {
	called chan string
	err    error
}

func (f *fakeNotifier) OrderConfirmation(ord *models.Order, email string) error {
	if f.called != nil {
		f.called <- email
	}
	return f.err
}

type fixture struct {
	service  *Service
	orders   *fakeOrders
	notifier *fakeNotifier

	productID uuid.UUID
	variantID uuid.UUID
	guest     Identity
	request   Request
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	productID := uuid.New()
	variantID := uuid.New()
	override := d("12.50")

	cat := &fakeCatalog{
		products: map[uuid.UUID]*models.Product{
			productID: {
				ID:          productID,
				Name:        "Ceramic mug",
				SKU:         "MUG-01",
				Price:       d("9.99"),
				Stock:       10,
				IsActive:    true,
				HasVariants: true,
			},
		},
		variants: map[uuid.UUID]*models.ProductVariant{
			variantID: {
				ID:         variantID,
				ProductID:  productID,
				SKU:        "MUG-01-BLUE",
				Price:      &override,
				Stock:      5,
				Attributes: map[string]string{"color": "blue"},
				IsActive:   true,
			},
		},
	}

	ship := &fakeShipping{method: models.ShippingMethod{Name: "Standard", BasePrice: d("4.99"), IsActive: true}}
	orders := &fakeOrders{}
	notifier := &fakeNotifier{called: make(chan string, 1)}

	return &fixture{
		service:   NewService(cat, ship, orders, notifier),
		orders:    orders,
		notifier:  notifier,
		productID: productID,
		variantID: variantID,
		guest:     Identity{GuestEmail: "ana@example.com", GuestName: "Ana Pérez"},
		request: Request{
			Email: "ana@example.com",
			Address: AddressRequest{
				FirstName: "Ana", LastName: "Pérez", Address1: "Calle Mayor 1",
				City: "Madrid", PostalCode: "28001", Country: "ES",
			},
			ShippingMethodID: uuid.NewString(),
			PaymentMethod:    PaymentCOD,
			Items: []LineItemRequest{
				{ProductID: productID.String(), VariantID: variantID.String(), Quantity: 2, Name: "tampered name"},
			},
		},
	}
}

func TestPlaceOrderUsesCatalogPrices(t *testing.T) {
	f := newFixture(t)

	placed, err := f.service.PlaceOrder(context.Background(), f.guest, f.request)
	require.NoError(t, err)
	require.Len(t, f.orders.draft.Items, 1)

	item := f.orders.draft.Items[0]
	// price and name come from the catalog, whatever the client sent
	assert.True(t, item.Price.Equal(d("12.50")), "price = %s", item.Price)
	assert.Equal(t, "Ceramic mug", item.Name)
	assert.Equal(t, "MUG-01-BLUE", item.SKU)
	require.NotNil(t, item.VariantInfo)
	assert.Contains(t, *item.VariantInfo, "blue")

	// subtotal 25.00, shipping 4.99
	assert.True(t, placed.Subtotal.Equal(d("25.00")))
	assert.True(t, placed.Total.Equal(d("29.99")), "total = %s", placed.Total)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t)
	f.request.Items = nil

	_, err := f.service.PlaceOrder(context.Background(), f.guest, f.request)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, f.orders.draft, "nothing must be persisted")
}

func TestPlaceOrderBadPaymentMethod(t *testing.T) {
	f := newFixture(t)
	f.request.PaymentMethod = "CARD"

	_, err := f.service.PlaceOrder(context.Background(), f.guest, f.request)
	assert.ErrorIs(t, err, ErrBadPaymentMethod)
}

func TestPlaceOrderGuestNeedsEmail(t *testing.T) {
	f := newFixture(t)
	f.guest.GuestEmail = ""

	_, err := f.service.PlaceOrder(context.Background(), f.guest, f.request)
	assert.ErrorIs(t, err, ErrGuestEmailRequired)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.request.Items[0].Quantity = 6 // variant has 5

	_, err := f.service.PlaceOrder(context.Background(), f.guest, f.request)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInsufficientStock)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Ceramic mug", vErr.Product)
	assert.Nil(t, f.orders.draft, "nothing must be persisted")
}

func TestPlaceOrderVariantOfOtherProduct(t *testing.T) {
	f := newFixture(t)

	otherProduct := uuid.New()
	f.request.Items[0].ProductID = otherProduct.String()
	cat := f.service.catalog.(*fakeCatalog)
	cat.products[otherProduct] = &models.Product{
		ID: otherProduct, Name: "Plate", SKU: "PLT-01", Price: d("3.00"), IsActive: true, HasVariants: true,
	}

	_, err := f.service.PlaceOrder(context.Background(), f.guest, f.request)
	assert.ErrorIs(t, err, catalog.ErrVariantNotFound)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	f := newFixture(t)
	f.request.Items[0].ProductID = uuid.NewString()

	_, err := f.service.PlaceOrder(context.Background(), f.guest, f.request)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestPlaceOrderNotifierFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp is down")

	placed, err := f.service.PlaceOrder(context.Background(), f.guest, f.request)
	require.NoError(t, err, "a dead mail transport must not fail checkout")
	require.NotNil(t, placed)

	select {
	case email := <-f.notifier.called:
		assert.Equal(t, "ana@example.com", email)
	case <-time.After(time.Second):
		t.Fatal("notifier was never called")
	}
}

func TestPlaceOrderGuestIdentity(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.PlaceOrder(context.Background(), f.guest, f.request)
	require.NoError(t, err)

	ord := f.orders.draft.Order
	assert.Nil(t, ord.UserID)
	require.NotNil(t, ord.GuestEmail)
	assert.Equal(t, "ana@example.com", *ord.GuestEmail)
	require.NotNil(t, ord.GuestName)
	assert.Equal(t, "Ana Pérez", *ord.GuestName)
}

func TestPlaceOrderAccountIdentity(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	identity := Identity{UserID: &userID}

	_, err := f.service.PlaceOrder(context.Background(), identity, f.request)
	require.NoError(t, err)

	ord := f.orders.draft.Order
	require.NotNil(t, ord.UserID)
	assert.Equal(t, userID, *ord.UserID)
	assert.Nil(t, ord.GuestEmail)
	assert.Nil(t, ord.GuestName)
	require.NotNil(t, f.orders.draft.Address.UserID)
	assert.Equal(t, userID, *f.orders.draft.Address.UserID)
}

func TestPlaceOrderAccountEmailFromSession(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	identity := Identity{UserID: &userID, AccountEmail: "account@example.com"}
	f.request.Email = "" // account holders may omit the body email entirely

	_, err := f.service.PlaceOrder(context.Background(), identity, f.request)
	require.NoError(t, err)

	select {
	case email := <-f.notifier.called:
		assert.Equal(t, "account@example.com", email)
	case <-time.After(time.Second):
		t.Fatal("notifier was never called")
	}
}

func TestPlaceOrderSessionEmailBeatsBody(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	identity := Identity{UserID: &userID, AccountEmail: "account@example.com"}
	f.request.Email = "attacker@example.com"

	_, err := f.service.PlaceOrder(context.Background(), identity, f.request)
	require.NoError(t, err)

	select {
	case email := <-f.notifier.called:
		assert.Equal(t, "account@example.com", email)
	case <-time.After(time.Second):
		t.Fatal("notifier was never called")
	}
}

func TestPlaceOrderPersistenceFailureIsOpaque(t *testing.T) {
	f := newFixture(t)
	f.orders.err = errors.New("connection reset")

	_, err := f.service.PlaceOrder(context.Background(), f.guest, f.request)
	require.Error(t, err)

	select {
	case <-f.notifier.called:
		t.Fatal("notifier must not run when the transaction failed")
	case <-time.After(50 * time.Millisecond):
	}
}
