package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLClient is the Client implementation backed by database/sql and the
// pure-Go SQLite driver.
type SQLClient struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at path, applies the
// embedded migrations and returns a ready client.
//
// WAL lets readers proceed while the single writer connection works;
// foreign keys are enforced so order items cascade with their order.
func OpenSQLite(ctx context.Context, path string) (*SQLClient, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: ping %q: %w", path, err)
	}
	if err := Migrate(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &SQLClient{db: sqlDB}, nil
}

func (c *SQLClient) Close() error {
	return c.db.Close()
}

func (c *SQLClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *SQLClient) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return execOn(ctx, c.db, query, args...)
}

func (c *SQLClient) QueryRow(ctx context.Context, query string, args ...any) (Row, error) {
	return &sqlRow{row: c.db.QueryRowContext(ctx, query, args...)}, nil
}

func (c *SQLClient) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (c *SQLClient) InTx(ctx context.Context, fn func(ctx context.Context, tx Client) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		slog.ErrorContext(ctx, "begin tx", "layer", "client", "component", "db", "err", err)
		return errors.Join(ErrInternal, err)
	}
	if err := fn(ctx, &txClient{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.ErrorContext(ctx, "rollback tx", "layer", "client", "component", "db", "err", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		slog.ErrorContext(ctx, "commit tx", "layer", "client", "component", "db", "err", err)
		return translate(err)
	}
	return nil
}

type txClient struct {
	tx *sql.Tx
}

func (c *txClient) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return execOn(ctx, c.tx, query, args...)
}

func (c *txClient) QueryRow(ctx context.Context, query string, args ...any) (Row, error) {
	return &sqlRow{row: c.tx.QueryRowContext(ctx, query, args...)}, nil
}

func (c *txClient) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// InTx on a transaction-bound client joins the outer transaction.
func (c *txClient) InTx(ctx context.Context, fn func(ctx context.Context, tx Client) error) error {
	return fn(ctx, c)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execOn(ctx context.Context, e execer, query string, args ...any) (int64, error) {
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}
	return n, nil
}

type sqlRow struct {
	row *sql.Row
}

func (r *sqlRow) Scan(dest ...any) error {
	return translate(r.row.Scan(dest...))
}

// translate maps driver errors onto the package sentinels. Constraint
// violations on unique keys become ErrConflict so callers can turn them into
// domain errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return errors.Join(ErrConflict, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_CHECK:
			return errors.Join(ErrInvalid, err)
		}
	}
	return errors.Join(ErrInternal, err)
}
