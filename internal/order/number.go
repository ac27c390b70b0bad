package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber builds a human-readable number from the order date plus a
// random suffix, e.g. ORD-20260901-4F2A9C. Entropy alone is not trusted for
// uniqueness: the orders table carries a unique index and CreateOrder retries
// on conflict with a fresh number.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
