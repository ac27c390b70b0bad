package mailer

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/config"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

// OrderNotifier builds and sends the post-commit confirmation mail.
type OrderNotifier struct {
	sender Sender
}

func NewOrderNotifier(sender Sender) *OrderNotifier {
	return &OrderNotifier{sender: sender}
}

func (n *OrderNotifier) OrderConfirmation(ord *models.Order, email string) error {
	subject := fmt.Sprintf("Order confirmation %s", ord.OrderNumber)
	return n.sender.Send(email, subject, orderConfirmationHTML(ord))
}

func orderConfirmationHTML(ord *models.Order) string {
	var rows strings.Builder
	for _, item := range ord.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&rows, `
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s€</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s€</td>
			</tr>`, item.Name, item.Quantity, item.Price.StringFixed(2), lineTotal.StringFixed(2))
	}

	transferBlock := ""
	if ord.PaymentMethod == "TRANSFER" {
		transferBlock = transferInstructions(ord)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your order</h2>
		<p>Your order <strong>%s</strong> has been received.</p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Product</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr><td colspan="3" style="padding: 8px; text-align: right;">Subtotal:</td><td style="padding: 8px;">%s€</td></tr>
				<tr><td colspan="3" style="padding: 8px; text-align: right;">Shipping:</td><td style="padding: 8px;">%s€</td></tr>
				<tr><td colspan="3" style="padding: 8px; text-align: right; font-weight: bold;">Total:</td><td style="padding: 8px; font-weight: bold;">%s€</td></tr>
			</tfoot>
		</table>
		%s
		<p style="margin-top: 30px; color: #555;">Best regards,<br><strong>The Origen team</strong></p>
	</div>
</body>
</html>`, ord.OrderNumber, rows.String(),
		ord.Subtotal.StringFixed(2), ord.ShippingCost.StringFixed(2), ord.Total.StringFixed(2),
		transferBlock)
}

func transferInstructions(ord *models.Order) string {
	iban := config.Get("COMPANY_IBAN", "ES9121000418450200051332")
	bic := config.Get("COMPANY_BIC", "CAIXESBB")
	company := config.Get("COMPANY_NAME", "Origen Store")

	qr, err := SepaQR(iban, bic, company, ord.OrderNumber, ord.Total)
	if err != nil {
		// the mail still goes out, just without the QR
		log.Printf("⚠️  Could not build SEPA QR for %s: %v", ord.OrderNumber, err)
		qr = ""
	}

	block := fmt.Sprintf(`
		<h3>Payment by bank transfer</h3>
		<p>Please transfer <strong>%s€</strong> to:</p>
		<p>IBAN: %s<br>BIC: %s<br>Beneficiary: %s<br>Reference: %s</p>`,
		ord.Total.StringFixed(2), iban, bic, company, ord.OrderNumber)
	if qr != "" {
		block += fmt.Sprintf(`<p><img src="data:image/png;base64,%s" alt="SEPA QR" width="200"></p>`, qr)
	}
	return block
}
