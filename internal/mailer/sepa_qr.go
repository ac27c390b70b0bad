package mailer

import (
	"encoding/base64"
	"fmt"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

// SepaQR renders an EPC069-12 payment QR as a base64 PNG ready for an
// <img src="data:image/png;base64,..."> tag.
func SepaQR(iban, bic, name, ref string, amount decimal.Decimal) (string, error) {
	payload := fmt.Sprintf(`BCD
001
1
SCT
%s
%s
%s
EUR%s
%s`, bic, name, iban, amount.StringFixed(2), ref)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
