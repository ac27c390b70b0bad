package shipping

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

var ErrMethodNotFound = errors.New("shipping method not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanMethod(row interface{ Scan(...any) error }) (*models.ShippingMethod, error) {
	var m models.ShippingMethod
	var freeAbove decimal.NullDecimal
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.BasePrice, &freeAbove,
		&m.EstimatedDays, &m.IsActive)
	if err != nil {
		return nil, err
	}
	if freeAbove.Valid {
		m.FreeAbove = &freeAbove.Decimal
	}
	return &m, nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.ShippingMethod, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, base_price, free_above, estimated_days, is_active
		 FROM shipping_methods WHERE id = $1`, id)
	m, err := scanMethod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMethodNotFound
	}
	return m, err
}

// ListActive returns the methods a buyer can pick from.
func (r *Repository) ListActive(ctx context.Context) ([]models.ShippingMethod, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, base_price, free_above, estimated_days, is_active
		 FROM shipping_methods WHERE is_active ORDER BY base_price`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	methods := make([]models.ShippingMethod, 0)
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, *m)
	}
	return methods, rows.Err()
}

func (r *Repository) Create(ctx context.Context, m *models.ShippingMethod) error {
	var freeAbove decimal.NullDecimal
	if m.FreeAbove != nil {
		freeAbove = decimal.NullDecimal{Decimal: *m.FreeAbove, Valid: true}
	}
	return r.db.QueryRowContext(ctx,
		`INSERT INTO shipping_methods (name, description, base_price, free_above, estimated_days)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id, is_active`,
		m.Name, m.Description, m.BasePrice, freeAbove, m.EstimatedDays).
		Scan(&m.ID, &m.IsActive)
}

func (r *Repository) Update(ctx context.Context, m *models.ShippingMethod) error {
	var freeAbove decimal.NullDecimal
	if m.FreeAbove != nil {
		freeAbove = decimal.NullDecimal{Decimal: *m.FreeAbove, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE shipping_methods
		 SET name=$2, description=$3, base_price=$4, free_above=$5, estimated_days=$6, is_active=$7
		 WHERE id=$1`,
		m.ID, m.Name, m.Description, m.BasePrice, freeAbove, m.EstimatedDays, m.IsActive)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMethodNotFound
	}
	return nil
}
