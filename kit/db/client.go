package db

import "context"

type Row interface {
	Scan(dest ...any) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Client is the narrow storage surface repositories depend on. Exec reports
// the number of affected rows so guarded UPDATE/DELETE statements can tell a
// lost race from a success.
type Client interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	QueryRow(ctx context.Context, query string, args ...any) (Row, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	// InTx runs fn inside a transaction. fn receives a Client bound to it;
	// returning an error rolls everything back.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Client) error) error
}
