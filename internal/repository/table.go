package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Clock returns the time stamped onto created_at/updated_at.
type Clock func() time.Time

// SystemClock is UTC truncated to the DATETIME resolution.
func SystemClock() time.Time { return time.Now().UTC().Truncate(time.Second) }

// table implements Repository[T, K] for one SQL table. columns are the
// writable columns (no id, no timestamps) in the order returned by values.
type table[T any, K comparable] struct {
	q       querier
	now     Clock
	name    string
	columns []string
	// selectSQL reads full rows; idColumn is how the key is addressed in it.
	selectSQL string
	idColumn  string
	orderBy   string
	scan      func(rowScanner, *T) error
	values    func(*T) []any
	key       func(*T) K
	// setKey receives LastInsertId; nil for tables whose key is set by the caller.
	setKey func(*T, int64)
	stamps func(*T) (created, updated *time.Time)
}

func (t *table[T, K]) List(ctx context.Context) ([]T, error) {
	return t.where(ctx, "")
}

func (t *table[T, K]) Get(ctx context.Context, id K) (*T, error) {
	var e T
	row := t.q.QueryRowContext(ctx, t.selectSQL+" WHERE "+t.idColumn+" = ? LIMIT 1", id)
	if err := t.scan(row, &e); err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (t *table[T, K]) Add(ctx context.Context, e *T) error {
	created, updated := t.stamps(e)
	now := t.now()
	*created, *updated = now, now

	cols := append(append([]string{}, t.columns...), "created_at", "updated_at")
	args := append(t.values(e), now, now)
	if t.setKey == nil {
		cols = append([]string{"id"}, cols...)
		args = append([]any{t.key(e)}, args...)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(cols, ", "), placeholders(len(cols)))
	res, err := t.q.ExecContext(ctx, q, args...)
	if err != nil {
		return translate(err)
	}
	if t.setKey != nil {
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		t.setKey(e, id)
	}
	return nil
}

func (t *table[T, K]) Update(ctx context.Context, e *T) error {
	_, updated := t.stamps(e)
	*updated = t.now()

	sets := make([]string, 0, len(t.columns)+1)
	for _, c := range t.columns {
		sets = append(sets, c+" = ?")
	}
	sets = append(sets, "updated_at = ?")
	args := append(t.values(e), *updated, t.key(e))
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(sets, ", "))
	res, err := t.q.ExecContext(ctx, q, args...)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

func (t *table[T, K]) Delete(ctx context.Context, id K) error {
	res, err := t.q.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = ?", id)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

// where lists rows matching an optional condition on selectSQL.
func (t *table[T, K]) where(ctx context.Context, cond string, args ...any) ([]T, error) {
	q := t.selectSQL
	if cond != "" {
		q += " WHERE " + cond
	}
	if t.orderBy != "" {
		q += " ORDER BY " + t.orderBy
	}
	rows, err := t.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		var e T
		if err := t.scan(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// affected turns a zero-row write into ErrNotFound. The DSN sets
// clientFoundRows so matched-but-unchanged rows still count.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
