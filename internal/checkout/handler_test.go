package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeCartClearer struct {
	cleared []string
}

func (f *fakeCartClearer) Clear(ctx context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

func checkoutBody(f *fixture) []byte {
	raw, err := json.Marshal(f.request)
	if err != nil {
		panic(err)
	}
	return raw
}

func performCheckout(t *testing.T, h *Handler, body []byte, userID string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.POST("/api/checkout", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
			c.Set("email", "account@example.com")
		}
		h.PlaceOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandlerGuestCheckout(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.service, nil)

	w := performCheckout(t, h, checkoutBody(f), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success     bool   `json:"success"`
		OrderID     string `json:"orderId"`
		OrderNumber string `json:"order_number"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.OrderID)
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{6}$`, resp.OrderNumber)

	// guest identity was taken from the body
	require.NotNil(t, f.orders.draft.Order.GuestEmail)
	assert.Equal(t, "ana@example.com", *f.orders.draft.Order.GuestEmail)
}

func TestHandlerAuthenticatedCheckoutClearsCart(t *testing.T) {
	f := newFixture(t)
	carts := &fakeCartClearer{}
	h := NewHandler(f.service, carts)
	userID := uuid.NewString()

	w := performCheckout(t, h, checkoutBody(f), userID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, []string{userID}, carts.cleared)
	assert.Nil(t, f.orders.draft.Order.GuestEmail, "session identity wins over the body")

	// the confirmation goes to the session address, not the body one
	select {
	case email := <-f.notifier.called:
		assert.Equal(t, "account@example.com", email)
	case <-time.After(time.Second):
		t.Fatal("notifier was never called")
	}
}

func TestHandlerInsufficientStockConflict(t *testing.T) {
	f := newFixture(t)
	f.request.Items[0].Quantity = 50
	h := NewHandler(f.service, nil)

	w := performCheckout(t, h, checkoutBody(f), "")
	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Insufficient stock", resp["error"])
	assert.Equal(t, "Ceramic mug", resp["product"])
}

func TestHandlerUnknownProductNotFound(t *testing.T) {
	f := newFixture(t)
	f.request.Items[0].ProductID = uuid.NewString()
	h := NewHandler(f.service, nil)

	w := performCheckout(t, h, checkoutBody(f), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerBadPaymentMethod(t *testing.T) {
	f := newFixture(t)
	f.request.PaymentMethod = "BITCOIN"
	h := NewHandler(f.service, nil)

	w := performCheckout(t, h, checkoutBody(f), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerMalformedBody(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.service, nil)

	w := performCheckout(t, h, []byte(`{"address":`), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerPersistenceFailureIsOpaque(t *testing.T) {
	f := newFixture(t)
	f.orders.err = fmt.Errorf("pq: connection refused at host db:5432")
	h := NewHandler(f.service, nil)

	w := performCheckout(t, h, checkoutBody(f), "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db:5432", "internals must not leak to the client")
}
