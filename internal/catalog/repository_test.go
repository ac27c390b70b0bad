package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestGetProductWithVariants(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "price", "stock", "low_stock_threshold",
			"sku", "image_urls", "is_active", "has_variants", "created_at", "updated_at",
		}).AddRow(id, "Ceramic mug", "", "9.99", 10, 3, "MUG-01", "{}", true, true, now, now))
	mock.ExpectQuery(`SELECT (.+) FROM product_variants WHERE product_id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "product_id", "sku", "price", "stock", "attributes", "is_active",
		}).AddRow(uuid.New(), id, "MUG-01-BLUE", "12.50", 5, []byte(`{"color":"blue"}`), true))

	p, err := repo.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ceramic mug", p.Name)
	require.Len(t, p.Variants, 1)
	require.NotNil(t, p.Variants[0].Price)
	assert.Equal(t, "12.5", p.Variants[0].Price.String())
	assert.Equal(t, map[string]string{"color": "blue"}, p.Variants[0].Attributes)
}

func TestGetProductNotFound(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetProduct(context.Background(), id)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRestockNeverGoesNegative(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	// the guard makes an oversized negative correction match no row
	mock.ExpectQuery(`UPDATE product_variants SET stock = stock \+ \$2`).
		WithArgs(id, -50).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}))

	_, err := repo.Restock(context.Background(), id, -50)
	assert.ErrorIs(t, err, ErrVariantNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestockProductNeverGoesNegative(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`UPDATE products SET stock = stock \+ \$2`).
		WithArgs(id, -50).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}))

	_, err := repo.RestockProduct(context.Background(), id, -50)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestockProductReturnsNewCounter(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`UPDATE products SET stock = stock \+ \$2`).
		WithArgs(id, 20).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(30))

	stock, err := repo.RestockProduct(context.Background(), id, 20)
	require.NoError(t, err)
	assert.Equal(t, 30, stock)
}

func TestRestockReturnsNewCounter(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`UPDATE product_variants SET stock = stock \+ \$2`).
		WithArgs(id, 5).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(12))

	stock, err := repo.Restock(context.Background(), id, 5)
	require.NoError(t, err)
	assert.Equal(t, 12, stock)
}
