package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func performRestockProduct(t *testing.T, h *Handler, id string, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.POST("/api/admin/products/:id/restock", h.RestockProduct)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/"+id+"/restock",
		bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRestockProductEndpoint(t *testing.T) {
	repo, mock := newTestRepo(t)
	h := NewHandler(repo, nil)
	id := uuid.New()

	mock.ExpectQuery(`UPDATE products SET stock = stock \+ \$2`).
		WithArgs(id, 20).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(30))

	w := performRestockProduct(t, h, id.String(), `{"delta": 20}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Stock int `json:"stock"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestockProductEndpointRejectsOverdraw(t *testing.T) {
	repo, mock := newTestRepo(t)
	h := NewHandler(repo, nil)
	id := uuid.New()

	mock.ExpectQuery(`UPDATE products SET stock = stock \+ \$2`).
		WithArgs(id, -50).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}))

	w := performRestockProduct(t, h, id.String(), `{"delta": -50}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRestockProductEndpointBadInput(t *testing.T) {
	repo, _ := newTestRepo(t)
	h := NewHandler(repo, nil)

	w := performRestockProduct(t, h, "not-a-uuid", `{"delta": 5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRestockProduct(t, h, uuid.NewString(), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
