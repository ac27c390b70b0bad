package order

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrBadTransition     = errors.New("illegal order status transition")
)

// Draft is everything CreateOrder persists in one transaction.
type Draft struct {
	Address models.Address
	Order   models.Order
	Items   []models.OrderItem
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const numberAttempts = 3

// CreateOrder runs the atomic unit of work: address, order, items and stock
// decrements either all commit or none do. The generated order number may
// collide; Postgres aborts the transaction on the unique violation, so the
// retry restarts the whole transaction with a fresh number.
func (r *Repository) CreateOrder(ctx context.Context, draft *Draft) (*models.Order, error) {
	var lastErr error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		draft.Order.OrderNumber = NewOrderNumber(time.Now())
		ord, err := r.createOnce(ctx, draft)
		if err == nil {
			return ord, nil
		}
		if isUniqueViolation(err, "uniq_orders_number") {
			log.Printf("⚠️  Order number collision on %s, retrying", draft.Order.OrderNumber)
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func (r *Repository) createOnce(ctx context.Context, draft *Draft) (*models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	addr := draft.Address
	err = tx.QueryRowContext(ctx,
		`INSERT INTO addresses (user_id, first_name, last_name, address1, address2, city, state, postal_code, country, phone)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id`,
		addr.UserID, addr.FirstName, addr.LastName, addr.Address1, addr.Address2,
		addr.City, addr.State, addr.PostalCode, addr.Country, addr.Phone).
		Scan(&addr.ID)
	if err != nil {
		return nil, err
	}

	ord := draft.Order
	// one address row backs both shipping and billing
	ord.ShippingAddressID = addr.ID
	ord.BillingAddressID = addr.ID
	ord.Status = models.OrderPending
	ord.PaymentStatus = models.PaymentPending

	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (order_number, user_id, guest_email, guest_name, status, payment_status,
		                     payment_method, subtotal, shipping_cost, discount, tax, total,
		                     shipping_address_id, billing_address_id, shipping_method_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		 RETURNING id, created_at, updated_at`,
		ord.OrderNumber, ord.UserID, ord.GuestEmail, ord.GuestName, ord.Status, ord.PaymentStatus,
		ord.PaymentMethod, ord.Subtotal, ord.ShippingCost, ord.Discount, ord.Tax, ord.Total,
		ord.ShippingAddressID, ord.BillingAddressID, ord.ShippingMethodID).
		Scan(&ord.ID, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return nil, err
	}

	ord.Items = make([]models.OrderItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		item.OrderID = ord.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, variant_id, sku, name, price, quantity, variant_info)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
			item.OrderID, item.ProductID, item.VariantID, item.SKU, item.Name,
			item.Price, item.Quantity, item.VariantInfo).
			Scan(&item.ID)
		if err != nil {
			return nil, err
		}

		// The decrement re-checks remaining stock at write time. Two
		// checkouts racing for the last unit serialize on the row lock and
		// the loser matches no row.
		if err := decrementStock(ctx, tx, item); err != nil {
			return nil, err
		}
		ord.Items = append(ord.Items, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &ord, nil
}

func decrementStock(ctx context.Context, tx *sql.Tx, item models.OrderItem) error {
	var res sql.Result
	var err error
	if item.VariantID != nil {
		res, err = tx.ExecContext(ctx,
			`UPDATE product_variants SET stock = stock - $2
			 WHERE id = $1 AND stock >= $2`,
			item.VariantID, item.Quantity)
	} else {
		res, err = tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = now()
			 WHERE id = $1 AND stock >= $2`,
			item.ProductID, item.Quantity)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}
	return false
}

const orderColumns = `id, order_number, user_id, guest_email, guest_name, status, payment_status,
	payment_method, subtotal, shipping_cost, discount, tax, total,
	shipping_address_id, billing_address_id, shipping_method_id, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.GuestEmail, &o.GuestName,
		&o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.Subtotal, &o.ShippingCost,
		&o.Discount, &o.Tax, &o.Total, &o.ShippingAddressID, &o.BillingAddressID,
		&o.ShippingMethodID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID loads an order with its items.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, variant_id, sku, name, price, quantity, variant_info
		 FROM order_items WHERE order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID,
			&it.SKU, &it.Name, &it.Price, &it.Quantity, &it.VariantInfo); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// ListByUser returns an account's orders, newest first, without items.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListAll is the backoffice view.
func (r *Repository) ListAll(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// UpdateStatus applies a backoffice transition. Cancelling restores the
// stock the order had reserved, inside the same transaction.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus) (*models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current models.OrderStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !models.CanTransition(current, to) {
		return nil, ErrBadTransition
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, to); err != nil {
		return nil, err
	}

	if to == models.OrderCancelled {
		if err := restoreStock(ctx, tx, id); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func restoreStock(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE product_variants v SET stock = v.stock + i.quantity
		 FROM order_items i
		 WHERE i.order_id = $1 AND i.variant_id = v.id`, orderID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE products p SET stock = p.stock + i.quantity, updated_at = now()
		 FROM order_items i
		 WHERE i.order_id = $1 AND i.variant_id IS NULL AND i.product_id = p.id`, orderID)
	return err
}
