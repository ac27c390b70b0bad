package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const productColumns = `id, name, description, price, stock, low_stock_threshold, sku,
	image_urls, is_active, has_variants, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	var images pq.StringArray
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.LowStockThreshold, &p.SKU, &images, &p.IsActive, &p.HasVariants,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ImageURLs = images
	return &p, nil
}

// GetProduct returns the product with its variants loaded.
func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	variants, err := r.variantsForProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

// GetVariant returns a single variant by id.
func (r *Repository) GetVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, product_id, sku, price, stock, attributes, is_active
		 FROM product_variants WHERE id = $1`, id)
	v, err := scanVariant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return v, nil
}

func scanVariant(row interface{ Scan(...any) error }) (*models.ProductVariant, error) {
	var v models.ProductVariant
	var price decimal.NullDecimal
	var attrs []byte
	if err := row.Scan(&v.ID, &v.ProductID, &v.SKU, &price, &v.Stock, &attrs, &v.IsActive); err != nil {
		return nil, err
	}
	if price.Valid {
		v.Price = &price.Decimal
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &v.Attributes); err != nil {
			return nil, fmt.Errorf("variant attributes: %v", err)
		}
	}
	return &v, nil
}

func (r *Repository) variantsForProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, sku, price, stock, attributes, is_active
		 FROM product_variants WHERE product_id = $1 ORDER BY sku`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []models.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, *v)
	}
	return variants, rows.Err()
}

// ListProducts returns active products, newest first.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_active ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *Repository) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO products (name, description, price, stock, low_stock_threshold, sku, image_urls, has_variants)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING id, is_active, created_at, updated_at`,
		p.Name, p.Description, p.Price, p.Stock, p.LowStockThreshold, p.SKU,
		pq.StringArray(p.ImageURLs), p.HasVariants).
		Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

func (r *Repository) UpdateProduct(ctx context.Context, p *models.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products
		 SET name=$2, description=$3, price=$4, low_stock_threshold=$5,
		     image_urls=$6, is_active=$7, updated_at=now()
		 WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Price, p.LowStockThreshold,
		pq.StringArray(p.ImageURLs), p.IsActive)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) CreateVariant(ctx context.Context, v *models.ProductVariant) error {
	attrs, err := json.Marshal(v.Attributes)
	if err != nil {
		return err
	}
	var price decimal.NullDecimal
	if v.Price != nil {
		price = decimal.NullDecimal{Decimal: *v.Price, Valid: true}
	}
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO product_variants (product_id, sku, price, stock, attributes)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id, is_active`,
		v.ProductID, v.SKU, price, v.Stock, attrs).
		Scan(&v.ID, &v.IsActive)
	if err != nil {
		return err
	}
	// the parent now sells through variants
	_, err = r.db.ExecContext(ctx,
		`UPDATE products SET has_variants = TRUE, updated_at = now() WHERE id = $1`, v.ProductID)
	return err
}

// Restock adds delta units to a variant stock counter. Delta may be negative
// for corrections but the counter never drops below zero.
func (r *Repository) Restock(ctx context.Context, variantID uuid.UUID, delta int) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx,
		`UPDATE product_variants SET stock = stock + $2
		 WHERE id = $1 AND stock + $2 >= 0
		 RETURNING stock`, variantID, delta).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrVariantNotFound
	}
	return stock, err
}

// RestockProduct is the same adjustment for products sold without variants.
func (r *Repository) RestockProduct(ctx context.Context, productID uuid.UUID, delta int) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now()
		 WHERE id = $1 AND stock + $2 >= 0
		 RETURNING stock`, productID, delta).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrProductNotFound
	}
	return stock, err
}
