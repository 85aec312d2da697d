package order

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nskaik/order-payment-api/kit/db"
)

type SQLRepository struct {
	db db.Client
}

func NewSQLRepository(dbClient db.Client) *SQLRepository {
	return &SQLRepository{db: dbClient}
}

const (
	qOrderInsert = "INSERT INTO orders (id, user_id, status, total_amount, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	qItemInsert  = "INSERT INTO order_items (id, order_id, position, product_name, quantity, unit_price, subtotal) VALUES (?, ?, ?, ?, ?, ?, ?)"
	qOrderSelect = "SELECT o.id, o.user_id, o.status, o.total_amount, o.created_at, o.updated_at, COALESCE(p.id, '') FROM orders o LEFT JOIN payments p ON p.order_id = o.id"
	qOrderGet    = qOrderSelect + " WHERE o.id = ?"
	qOrderList   = qOrderSelect + " WHERE o.user_id = ? AND (? = '' OR o.status = ?) ORDER BY o.created_at DESC, o.id DESC"
	qItemsGet    = "SELECT id, order_id, product_name, quantity, unit_price, subtotal FROM order_items WHERE order_id = ? ORDER BY position"
	qItemsDelete = "DELETE FROM order_items WHERE order_id = ?"
	qOrderEdit   = "UPDATE orders SET total_amount = ?, updated_at = ? WHERE id = ? AND status = 'pending'"
	qOrderDelete = "DELETE FROM orders WHERE id = ? AND NOT EXISTS (SELECT 1 FROM payments WHERE payments.order_id = orders.id)"
	qNoPayment   = " AND NOT EXISTS (SELECT 1 FROM payments WHERE payments.order_id = orders.id)"
)

func (r *SQLRepository) Create(ctx context.Context, o *Order) error {
	err := r.db.InTx(ctx, func(ctx context.Context, tx db.Client) error {
		if _, err := tx.Exec(ctx, qOrderInsert, o.ID, o.UserID, string(o.Status), o.Total, db.FormatTime(o.CreatedAt), db.FormatTime(o.UpdatedAt)); err != nil {
			return err
		}
		return insertItems(ctx, tx, o)
	})
	if err != nil {
		slog.ErrorContext(ctx, "create order", "layer", "repo", "component", "order", "repo", "SQLRepository", "method", "Create", "order_id", o.ID, "user_id", o.UserID, "err", err)
		return err
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, orderID string) (*Order, error) {
	row, err := r.db.QueryRow(ctx, qOrderGet, orderID)
	if err != nil {
		slog.ErrorContext(ctx, "get order", "layer", "repo", "component", "order", "repo", "SQLRepository", "method", "Get", "order_id", orderID, "err", err)
		return nil, err
	}
	o, err := scanOrder(row)
	if err != nil {
		if !db.IsNotFound(err) {
			slog.ErrorContext(ctx, "get order", "layer", "repo", "component", "order", "repo", "SQLRepository", "method", "Get", "order_id", orderID, "err", err)
		}
		return nil, err
	}
	if o.Items, err = r.items(ctx, orderID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *SQLRepository) List(ctx context.Context, userID string, status Status) ([]*Order, error) {
	rows, err := r.db.Query(ctx, qOrderList, userID, string(status), string(status))
	if err != nil {
		slog.ErrorContext(ctx, "list orders", "layer", "repo", "component", "order", "repo", "SQLRepository", "method", "List", "user_id", userID, "err", err)
		return nil, err
	}
	var out []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			_ = rows.Close()
			return nil, errors.Join(db.ErrInternal, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, errors.Join(db.ErrInternal, err)
	}
	// Items are read only after the cursor is closed: the store may run on
	// a single connection.
	if err := rows.Close(); err != nil {
		return nil, errors.Join(db.ErrInternal, err)
	}
	for _, o := range out {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReplaceItems swaps the whole item set and the total in one transaction,
// provided the order is still pending.
func (r *SQLRepository) ReplaceItems(ctx context.Context, o *Order) (bool, error) {
	applied := false
	err := r.db.InTx(ctx, func(ctx context.Context, tx db.Client) error {
		n, err := tx.Exec(ctx, qOrderEdit, o.Total, db.FormatTime(o.UpdatedAt), o.ID)
		if err != nil || n == 0 {
			return err
		}
		if _, err := tx.Exec(ctx, qItemsDelete, o.ID); err != nil {
			return err
		}
		if err := insertItems(ctx, tx, o); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "replace items", "layer", "repo", "component", "order", "repo", "SQLRepository", "method", "ReplaceItems", "order_id", o.ID, "err", err)
		return false, err
	}
	return applied, nil
}

// Transition writes the new status only if the order still satisfies the
// transition rule, so concurrent transitions cannot both win.
func (r *SQLRepository) Transition(ctx context.Context, orderID string, to Status, at time.Time) (bool, error) {
	rl, ok := rules[to]
	if !ok {
		return false, ErrInvalidTransition
	}
	q, args := transitionQuery(rl, orderID, to, at)
	n, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		slog.ErrorContext(ctx, "transition order", "layer", "repo", "component", "order", "repo", "SQLRepository", "method", "Transition", "order_id", orderID, "to", to, "err", err)
		return false, err
	}
	return n > 0, nil
}

func (r *SQLRepository) Delete(ctx context.Context, orderID string) (bool, error) {
	n, err := r.db.Exec(ctx, qOrderDelete, orderID)
	if err != nil {
		slog.ErrorContext(ctx, "delete order", "layer", "repo", "component", "order", "repo", "SQLRepository", "method", "Delete", "order_id", orderID, "err", err)
		return false, err
	}
	return n > 0, nil
}

func transitionQuery(rl rule, orderID string, to Status, at time.Time) (string, []any) {
	placeholders := make([]string, len(rl.from))
	args := []any{string(to), db.FormatTime(at), orderID}
	for i, from := range rl.from {
		placeholders[i] = "?"
		args = append(args, string(from))
	}
	q := "UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status IN (" + strings.Join(placeholders, ", ") + ")"
	if rl.noPayment {
		q += qNoPayment
	}
	return q, args
}

func (r *SQLRepository) items(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, qItemsGet, orderID)
	if err != nil {
		slog.ErrorContext(ctx, "get items", "layer", "repo", "component", "order", "repo", "SQLRepository", "method", "items", "order_id", orderID, "err", err)
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, errors.Join(db.ErrInternal, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(db.ErrInternal, err)
	}
	return items, nil
}

func insertItems(ctx context.Context, tx db.Client, o *Order) error {
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if _, err := tx.Exec(ctx, qItemInsert, it.ID, o.ID, i, it.ProductName, it.Quantity, it.UnitPrice, it.Subtotal); err != nil {
			return err
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*Order, error) {
	var (
		o                Order
		created, updated string
	)
	if err := s.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &created, &updated, &o.PaymentID); err != nil {
		return nil, err
	}
	var err error
	if o.CreatedAt, err = db.ParseTime(created); err != nil {
		return nil, errors.Join(db.ErrInternal, err)
	}
	if o.UpdatedAt, err = db.ParseTime(updated); err != nil {
		return nil, errors.Join(db.ErrInternal, err)
	}
	return &o, nil
}
