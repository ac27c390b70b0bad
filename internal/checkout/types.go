package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout. Card processing is out of scope;
// TRANSFER orders get a SEPA QR in the confirmation mail instead.
const (
	PaymentCOD      = "COD"
	PaymentTransfer = "TRANSFER"
)

// Request is the typed checkout body. Client-submitted name/attributes are
// display hints only; identity and quantity are the only trusted fields per
// line.
type Request struct {
	Email            string            `json:"email"`
	Address          AddressRequest    `json:"address" binding:"required"`
	ShippingMethodID string            `json:"shippingMethodId" binding:"required"`
	PaymentMethod    string            `json:"paymentMethod" binding:"required"`
	Items            []LineItemRequest `json:"items"`
}

type AddressRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Address1   string `json:"address1" binding:"required"`
	Address2   string `json:"address2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone"`
}

type LineItemRequest struct {
	ProductID  string            `json:"product_id"`
	VariantID  string            `json:"variant_id,omitempty"`
	Quantity   int               `json:"quantity"`
	Name       string            `json:"name,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// ValidatedLineItem is the server-reconciled line: price, sku and name come
// from the catalog, never from the request. Immutable once built.
type ValidatedLineItem struct {
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	SKU         string
	Name        string
	UnitPrice   decimal.Decimal
	Quantity    int
	VariantInfo *string
}

// Identity is who is placing the order: an authenticated account or a guest.
// Exactly one side is populated. AccountEmail rides along from the session
// claims so the confirmation never depends on the body for account holders.
type Identity struct {
	UserID       *uuid.UUID
	AccountEmail string
	GuestEmail   string
	GuestName    string
}

func (id Identity) IsGuest() bool { return id.UserID == nil }
