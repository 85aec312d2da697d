package order

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/stretchr/testify/require"
)

func openTestRepository(t *testing.T) (*SQLRepository, *db.SQLClient) {
	t.Helper()
	c, err := db.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return NewSQLRepository(c), c
}

func newStoredOrder(t *testing.T, repo *SQLRepository, id, userID string, at time.Time, inputs ...ItemInput) *Order {
	t.Helper()
	items, err := ValidateItems(inputs)
	require.NoError(t, err)
	o := &Order{ID: id, UserID: userID, Status: StatusPending, CreatedAt: at, UpdatedAt: at}
	o.setItems(items)
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}

func attachPayment(t *testing.T, c *db.SQLClient, orderID, status string) {
	t.Helper()
	_, err := c.Exec(context.Background(),
		"INSERT INTO payments (id, order_id, user_id, status, payment_method, amount, created_at) VALUES (?, ?, 'u1', ?, 'credit_card', '35.00', ?)",
		"pay-"+orderID, orderID, status, db.FormatTime(time.Now()))
	require.NoError(t, err)
}

func countItems(t *testing.T, c *db.SQLClient, orderID string) int {
	t.Helper()
	row, err := c.QueryRow(context.Background(), "SELECT COUNT(*) FROM order_items WHERE order_id = ?", orderID)
	require.NoError(t, err)
	var n int
	require.NoError(t, row.Scan(&n))
	return n
}

func TestSQLRepository_CreateGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _ := openTestRepository(t)
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	newStoredOrder(t, repo, "o1", "u1", now, validItems...)

	got, err := repo.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserID)
	require.Equal(t, StatusPending, got.Status)
	require.Equal(t, "35.00", got.Total.String())
	require.False(t, got.HasPayment())
	require.True(t, now.Equal(got.CreatedAt))
	require.Len(t, got.Items, 2)
	require.Equal(t, "Keyboard", got.Items[0].ProductName)
	require.Equal(t, "20.00", got.Items[0].Subtotal.String())
	require.Equal(t, "Mouse", got.Items[1].ProductName)
	require.Equal(t, 3, got.Items[1].Quantity)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestSQLRepository_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _ := openTestRepository(t)
	base := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	newStoredOrder(t, repo, "o1", "u1", base, validItems...)
	newStoredOrder(t, repo, "o2", "u1", base.Add(time.Minute), validItems...)
	newStoredOrder(t, repo, "o3", "u2", base, validItems...)
	applied, err := repo.Transition(ctx, "o1", StatusConfirmed, base)
	require.NoError(t, err)
	require.True(t, applied)

	all, err := repo.List(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "o2", all[0].ID)
	require.Equal(t, "o1", all[1].ID)
	require.Len(t, all[1].Items, 2)

	confirmed, err := repo.List(ctx, "u1", StatusConfirmed)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	require.Equal(t, "o1", confirmed[0].ID)

	none, err := repo.List(ctx, "nobody", "")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestSQLRepository_ReplaceItems(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, c := openTestRepository(t)
	o := newStoredOrder(t, repo, "o1", "u1", time.Now(), validItems...)

	items, err := ValidateItems([]ItemInput{{ProductName: "Desk", Quantity: 1, UnitPrice: "150.00"}})
	require.NoError(t, err)
	o.setItems(items)
	applied, err := repo.ReplaceItems(ctx, o)
	require.NoError(t, err)
	require.True(t, applied)

	got, err := repo.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, "150.00", got.Total.String())
	require.Len(t, got.Items, 1)
	require.Equal(t, 1, countItems(t, c, "o1"))

	_, err = repo.Transition(ctx, "o1", StatusConfirmed, time.Now())
	require.NoError(t, err)

	items, err = ValidateItems(validItems)
	require.NoError(t, err)
	o.setItems(items)
	applied, err = repo.ReplaceItems(ctx, o)
	require.NoError(t, err)
	require.False(t, applied)

	got, err = repo.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, "150.00", got.Total.String())
	require.Equal(t, 1, countItems(t, c, "o1"))
}

func TestSQLRepository_Transition(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, c := openTestRepository(t)
	newStoredOrder(t, repo, "o1", "u1", time.Now(), validItems...)
	newStoredOrder(t, repo, "o2", "u1", time.Now(), validItems...)

	applied, err := repo.Transition(ctx, "o1", StatusConfirmed, time.Now())
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = repo.Transition(ctx, "o1", StatusConfirmed, time.Now())
	require.NoError(t, err)
	require.False(t, applied)

	for _, status := range []string{"pending", "successful", "failed"} {
		attachPayment(t, c, "o1", status)
		applied, err = repo.Transition(ctx, "o1", StatusCancelled, time.Now())
		require.NoError(t, err)
		require.False(t, applied, status)
		_, err = c.Exec(ctx, "DELETE FROM payments WHERE order_id = ?", "o1")
		require.NoError(t, err)
	}

	applied, err = repo.Transition(ctx, "o2", StatusCancelled, time.Now())
	require.NoError(t, err)
	require.True(t, applied)
	applied, err = repo.Transition(ctx, "o2", StatusCancelled, time.Now())
	require.NoError(t, err)
	require.False(t, applied)

	got, err := repo.Get(ctx, "o2")
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, got.Status)
}

func TestSQLRepository_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, c := openTestRepository(t)
	newStoredOrder(t, repo, "o1", "u1", time.Now(), validItems...)
	newStoredOrder(t, repo, "o2", "u1", time.Now(), validItems...)
	_, err := repo.Transition(ctx, "o1", StatusConfirmed, time.Now())
	require.NoError(t, err)
	attachPayment(t, c, "o1", "failed")

	deleted, err := repo.Delete(ctx, "o1")
	require.NoError(t, err)
	require.False(t, deleted)
	got, err := repo.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, "pay-o1", got.PaymentID)
	require.Equal(t, 2, countItems(t, c, "o1"))

	deleted, err = repo.Delete(ctx, "o2")
	require.NoError(t, err)
	require.True(t, deleted)
	_, err = repo.Get(ctx, "o2")
	require.ErrorIs(t, err, db.ErrNotFound)
	require.Equal(t, 0, countItems(t, c, "o2"))
}
