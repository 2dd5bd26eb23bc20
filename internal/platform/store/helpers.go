package store

import (
	"context"
	"errors"
	"fmt"

	perr "textpolish/internal/platform/errors"
)

// ErrNotOne is returned by ExecOne when a write touched zero or many rows
var ErrNotOne = errors.New("store: expected exactly one row affected")

// ExecOne runs a write and asserts exactly one row was affected
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		return fmt.Errorf("%w: got %d", ErrNotOne, n)
	}
	return nil
}

// Scalar reads the first column of the first row into T
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		if IsNoRows(err) {
			return zero, perr.ErrNotFound
		}
		return zero, err
	}
	return v, nil
}

// One maps exactly one row through scan. No rows is perr.ErrNotFound.
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (item T, err error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return item, err
	}
	defer func() { err = errors.Join(err, rows.Close()) }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return item, err
		}
		return item, perr.ErrNotFound
	}
	if item, err = scan(rows); err != nil {
		return item, err
	}
	if rows.Next() {
		var zero T
		return zero, errors.New("store: expected 1 row, got more")
	}
	return item, rows.Err()
}

// Many maps every row through scan
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (out []T, err error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, rows.Close()) }()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
