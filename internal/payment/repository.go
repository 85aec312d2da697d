package payment

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/nskaik/order-payment-api/kit/db"
)

type SQLRepository struct {
	db db.Client
}

func NewSQLRepository(dbClient db.Client) *SQLRepository {
	return &SQLRepository{db: dbClient}
}

const (
	// The insert only lands while the order is confirmed; the unique index
	// on order_id rejects a second payment.
	qPaymentInsert = "INSERT INTO payments (id, order_id, user_id, status, payment_method, amount, transaction_id, created_at) " +
		"SELECT ?, ?, ?, ?, ?, ?, ?, ? WHERE EXISTS (SELECT 1 FROM orders WHERE id = ? AND status = 'confirmed')"
	qPaymentSelect     = "SELECT id, order_id, user_id, status, payment_method, amount, transaction_id, created_at FROM payments"
	qPaymentGet        = qPaymentSelect + " WHERE id = ?"
	qPaymentGetByOrder = qPaymentSelect + " WHERE order_id = ?"
	qPaymentList       = qPaymentSelect + " WHERE user_id = ? ORDER BY created_at DESC, id DESC"
)

func (r *SQLRepository) Create(ctx context.Context, p *Payment) (bool, error) {
	var txID any
	if p.TransactionID != "" {
		txID = p.TransactionID
	}
	n, err := r.db.Exec(ctx, qPaymentInsert,
		p.ID, p.OrderID, p.UserID, string(p.Status), p.Method, p.Amount, txID, db.FormatTime(p.CreatedAt),
		p.OrderID,
	)
	if err != nil {
		if !db.IsConflict(err) {
			slog.ErrorContext(ctx, "create payment", "layer", "repo", "component", "payment", "repo", "SQLRepository", "method", "Create", "payment_id", p.ID, "order_id", p.OrderID, "err", err)
		}
		return false, err
	}
	return n > 0, nil
}

func (r *SQLRepository) Get(ctx context.Context, paymentID string) (*Payment, error) {
	return r.getOne(ctx, "Get", qPaymentGet, paymentID)
}

func (r *SQLRepository) GetByOrder(ctx context.Context, orderID string) (*Payment, error) {
	return r.getOne(ctx, "GetByOrder", qPaymentGetByOrder, orderID)
}

func (r *SQLRepository) List(ctx context.Context, userID string) ([]*Payment, error) {
	rows, err := r.db.Query(ctx, qPaymentList, userID)
	if err != nil {
		slog.ErrorContext(ctx, "list payments", "layer", "repo", "component", "payment", "repo", "SQLRepository", "method", "List", "user_id", userID, "err", err)
		return nil, err
	}
	defer rows.Close()

	out := []*Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, errors.Join(db.ErrInternal, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(db.ErrInternal, err)
	}
	return out, nil
}

func (r *SQLRepository) getOne(ctx context.Context, method, query, arg string) (*Payment, error) {
	row, err := r.db.QueryRow(ctx, query, arg)
	if err != nil {
		slog.ErrorContext(ctx, "get payment", "layer", "repo", "component", "payment", "repo", "SQLRepository", "method", method, "key", arg, "err", err)
		return nil, err
	}
	p, err := scanPayment(row)
	if err != nil {
		if !db.IsNotFound(err) {
			slog.ErrorContext(ctx, "get payment", "layer", "repo", "component", "payment", "repo", "SQLRepository", "method", method, "key", arg, "err", err)
		}
		return nil, err
	}
	return p, nil
}

func scanPayment(s db.Row) (*Payment, error) {
	var (
		p       Payment
		txID    sql.NullString
		created string
	)
	if err := s.Scan(&p.ID, &p.OrderID, &p.UserID, &p.Status, &p.Method, &p.Amount, &txID, &created); err != nil {
		return nil, err
	}
	p.TransactionID = txID.String
	at, err := db.ParseTime(created)
	if err != nil {
		return nil, errors.Join(db.ErrInternal, err)
	}
	p.CreatedAt = at
	return &p, nil
}
