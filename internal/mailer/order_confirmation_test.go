package mailer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

type fakeSender struct {
	to      string
	subject string
	html    string
}

func (f *fakeSender) Send(to, subject, html string) error {
	f.to, f.subject, f.html = to, subject, html
	return nil
}

func testOrder(payment string) *models.Order {
	return &models.Order{
		OrderNumber:   "ORD-20260901-4F2A9C",
		PaymentMethod: payment,
		Subtotal:      decimal.RequireFromString("25.00"),
		ShippingCost:  decimal.RequireFromString("4.99"),
		Total:         decimal.RequireFromString("29.99"),
		Items: []models.OrderItem{
			{Name: "Ceramic mug", Price: decimal.RequireFromString("12.50"), Quantity: 2},
		},
	}
}

func TestOrderConfirmationMail(t *testing.T) {
	sender := &fakeSender{}
	n := NewOrderNotifier(sender)

	require.NoError(t, n.OrderConfirmation(testOrder("COD"), "ana@example.com"))

	assert.Equal(t, "ana@example.com", sender.to)
	assert.Contains(t, sender.subject, "ORD-20260901-4F2A9C")
	assert.Contains(t, sender.html, "Ceramic mug")
	assert.Contains(t, sender.html, "25.00")
	assert.Contains(t, sender.html, "29.99")
	assert.NotContains(t, sender.html, "bank transfer", "COD orders carry no transfer block")
}

func TestOrderConfirmationTransferInstructions(t *testing.T) {
	sender := &fakeSender{}
	n := NewOrderNotifier(sender)

	require.NoError(t, n.OrderConfirmation(testOrder("TRANSFER"), "ana@example.com"))

	assert.Contains(t, sender.html, "bank transfer")
	assert.Contains(t, sender.html, "IBAN")
	assert.Contains(t, sender.html, "ORD-20260901-4F2A9C")
	assert.Contains(t, sender.html, "data:image/png;base64,")
}

func TestSepaQR(t *testing.T) {
	qr, err := SepaQR("ES9121000418450200051332", "CAIXESBB", "Origen Store",
		"ORD-20260901-4F2A9C", decimal.RequireFromString("29.99"))
	require.NoError(t, err)
	assert.NotEmpty(t, qr)
}
