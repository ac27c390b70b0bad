package checkout

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/order"
)

// OrderStore commits the draft atomically; satisfied by *order.Repository.
type OrderStore interface {
	CreateOrder(ctx context.Context, draft *order.Draft) (*models.Order, error)
}

// ShippingResolver prices the chosen method; satisfied by *shipping.Resolver.
type ShippingResolver interface {
	Resolve(ctx context.Context, methodID uuid.UUID, subtotal decimal.Decimal) (*models.ShippingMethod, decimal.Decimal, error)
}

// Notifier delivers the confirmation after commit. Best effort: errors are
// logged, never surfaced.
type Notifier interface {
	OrderConfirmation(order *models.Order, email string) error
}

// Service runs the checkout sequence: validate, price, persist, notify.
type Service struct {
	catalog  CatalogStore
	shipping ShippingResolver
	orders   OrderStore
	notifier Notifier

	// bound on the persistence transaction; a timeout rolls back, never
	// partially commits
	txTimeout time.Duration
}

func NewService(catalog CatalogStore, shipping ShippingResolver, orders OrderStore, notifier Notifier) *Service {
	return &Service{
		catalog:   catalog,
		shipping:  shipping,
		orders:    orders,
		notifier:  notifier,
		txTimeout: 10 * time.Second,
	}
}

// PlaceOrder either fully succeeds (order persisted, id returned) or fully
// fails with no side effects. No partial state is ever exposed.
func (s *Service) PlaceOrder(ctx context.Context, identity Identity, req Request) (*models.Order, error) {
	if err := checkRequest(identity, req); err != nil {
		return nil, err
	}

	items, err := validateItems(ctx, s.catalog, req.Items)
	if err != nil {
		return nil, err
	}

	methodID, err := uuid.Parse(req.ShippingMethodID)
	if err != nil {
		return nil, &ValidationError{Line: -1, Product: "shipping", Err: err}
	}
	subtotal := Subtotal(items)
	method, shippingCost, err := s.shipping.Resolve(ctx, methodID, subtotal)
	if err != nil {
		return nil, err
	}

	totals := CalculateTotals(items, shippingCost)
	draft := buildDraft(identity, req, method, items, totals)

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()
	placed, err := s.orders.CreateOrder(txCtx, draft)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Order %s placed (%s, %s items=%d)",
		placed.OrderNumber, placed.PaymentMethod, placed.Total.StringFixed(2), len(placed.Items))

	// Post-commit, fire and forget. A dead mail transport must not turn a
	// persisted order into a checkout failure. Account holders are mailed at
	// their session address; the body email is only trusted for guests.
	email := placed.Email(identity.AccountEmail)
	if email == "" {
		email = req.Email
	}
	go s.notify(placed, email)

	return placed, nil
}

func (s *Service) notify(placed *models.Order, email string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Order confirmation panicked for %s: %v", placed.OrderNumber, r)
		}
	}()
	if email == "" {
		return
	}
	if err := s.notifier.OrderConfirmation(placed, email); err != nil {
		log.Printf("❌ Could not send confirmation for %s: %v", placed.OrderNumber, err)
	}
}

func checkRequest(identity Identity, req Request) error {
	if len(req.Items) == 0 {
		return ErrEmptyCart
	}
	if req.PaymentMethod != PaymentCOD && req.PaymentMethod != PaymentTransfer {
		return ErrBadPaymentMethod
	}
	if identity.IsGuest() && identity.GuestEmail == "" {
		return ErrGuestEmailRequired
	}
	return nil
}

func buildDraft(identity Identity, req Request, method *models.ShippingMethod, items []ValidatedLineItem, totals Totals) *order.Draft {
	addr := models.Address{
		UserID:     identity.UserID,
		FirstName:  req.Address.FirstName,
		LastName:   req.Address.LastName,
		Address1:   req.Address.Address1,
		Address2:   req.Address.Address2,
		City:       req.Address.City,
		State:      req.Address.State,
		PostalCode: req.Address.PostalCode,
		Country:    req.Address.Country,
		Phone:      req.Address.Phone,
	}

	ord := models.Order{
		UserID:           identity.UserID,
		PaymentMethod:    req.PaymentMethod,
		Subtotal:         totals.Subtotal,
		ShippingCost:     totals.ShippingCost,
		Discount:         totals.Discount,
		Tax:              totals.Tax,
		Total:            totals.Total,
		ShippingMethodID: method.ID,
	}
	if identity.IsGuest() {
		email := identity.GuestEmail
		name := identity.GuestName
		ord.GuestEmail = &email
		ord.GuestName = &name
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			SKU:         it.SKU,
			Name:        it.Name,
			Price:       it.UnitPrice,
			Quantity:    it.Quantity,
			VariantInfo: it.VariantInfo,
		})
	}

	return &order.Draft{Address: addr, Order: ord, Items: orderItems}
}
