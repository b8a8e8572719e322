package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// rebind turns $N placeholders into SQLite's numbered ?N form
func rebind(query string) string {
	return placeholderRe.ReplaceAllString(query, "?$1")
}

// sqlQuerier is satisfied by both *sql.DB and *sql.Tx
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type stdQuerier struct {
	q sqlQuerier
}

func (s stdQuerier) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.q.ExecContext(ctx, rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s stdQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	return stdRow{row: s.q.QueryRowContext(ctx, rebind(query), args...)}
}

func (s stdQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.q.QueryContext(ctx, rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return stdRows{Rows: rows}, nil
}

type stdRow struct {
	row *sql.Row
}

func (r stdRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return err
}

type stdRows struct {
	*sql.Rows
}

func (r stdRows) Close() {
	_ = r.Rows.Close()
}

type stdTx struct {
	stdQuerier
	tx *sql.Tx
}

func (t *stdTx) Commit(context.Context) error   { return t.tx.Commit() }
func (t *stdTx) Rollback(context.Context) error { return t.tx.Rollback() }

// SQLiteDB is the embedded fallback store used when no Postgres is configured.
type SQLiteDB struct {
	stdQuerier
	db *sql.DB
}

// NewSQLite opens (or creates) the database file at path
func NewSQLite(ctx context.Context, path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// One connection serializes writers, so the pragmas below stick and
	// transactions never race for the write lock.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA foreign_keys=ON;`,
		`PRAGMA busy_timeout=5000;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteDB{stdQuerier: stdQuerier{q: db}, db: db}, nil
}

func (db *SQLiteDB) Begin(ctx context.Context) (Tx, error) {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &stdTx{stdQuerier: stdQuerier{q: tx}, tx: tx}, nil
}

func (db *SQLiteDB) Ping(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

func (db *SQLiteDB) Close() {
	_ = db.db.Close()
}

func (db *SQLiteDB) Dialect() Dialect {
	return SQLite
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// Primary key collisions report as UNIQUE too; mask to the primary code
	// so it works with or without extended result codes.
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
}
