package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Descriptor tells the Postgres backend how one entity kind maps onto its
// table: the data columns (id and created_at are managed by the store), how
// to read a row back, and which SQL expression each scope field compiles to.
type Descriptor[T Entity] struct {
	Table string
	// Columns are the data columns in insert/update order, excluding id and
	// created_at.
	Columns []string
	// Values extracts the column values from an entity, matching Columns.
	Values func(T) []any
	// Scan reads one row from a SELECT of id, created_at, Columns...
	Scan func(rows pgx.Rows) (T, error)
	// Fields maps scope field names to SQL expressions. Unmapped fields
	// compile to FALSE.
	Fields map[string]string
	// OrderBy is the stable default ordering, e.g. "created_at, id".
	OrderBy string
}

// ColumnExpr resolves a scope field name for predicate compilation.
func (d Descriptor[T]) ColumnExpr(field string) (string, bool) {
	expr, ok := d.Fields[field]
	return expr, ok
}

// PostgresBackend is the pgx-based Backend implementation. Scope predicates
// compile into the WHERE clause of every statement, so out-of-scope rows are
// invisible to reads and untouchable by writes at the database itself.
type PostgresBackend[T Entity] struct {
	pool *pgxpool.Pool
	desc Descriptor[T]
}

// NewPostgresBackend creates a Postgres backend for one entity table.
func NewPostgresBackend[T Entity](pool *pgxpool.Pool, desc Descriptor[T]) *PostgresBackend[T] {
	return &PostgresBackend[T]{pool: pool, desc: desc}
}

func (b *PostgresBackend[T]) selectList() string {
	cols := append([]string{"id", "created_at"}, b.desc.Columns...)
	return strings.Join(cols, ", ")
}

// Select returns rows matching both the scope predicate and the caller
// filter, in the descriptor's stable order.
func (b *PostgresBackend[T]) Select(ctx context.Context, pred authz.Predicate, opts ListOptions) ([]T, error) {
	var args []any
	where := compilePredicate(pred.And(opts.Filter), b.desc, &args)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s",
		b.selectList(), b.desc.Table, where, b.desc.OrderBy)
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := b.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", b.desc.Table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		e, err := b.desc.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", b.desc.Table, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SelectByID returns the row with id when it matches the predicate.
func (b *PostgresBackend[T]) SelectByID(ctx context.Context, pred authz.Predicate, id uuid.UUID) (T, error) {
	var zero T

	args := []any{id}
	where := compilePredicate(pred, b.desc, &args)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND %s",
		b.selectList(), b.desc.Table, where)

	rows, err := b.pool.Query(ctx, query, args...)
	if err != nil {
		return zero, fmt.Errorf("select %s by id: %w", b.desc.Table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, fmt.Errorf("select %s by id: %w", b.desc.Table, err)
		}
		return zero, ErrNotFound
	}
	e, err := b.desc.Scan(rows)
	if err != nil {
		return zero, fmt.Errorf("scan %s: %w", b.desc.Table, err)
	}
	return e, nil
}

// Insert writes e and stamps the database-assigned id and creation time.
func (b *PostgresBackend[T]) Insert(ctx context.Context, e T) error {
	placeholders := make([]string, len(b.desc.Columns))
	for i := range b.desc.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id, created_at",
		b.desc.Table, strings.Join(b.desc.Columns, ", "), strings.Join(placeholders, ", "))

	var (
		id        uuid.UUID
		createdAt time.Time
	)
	if err := b.pool.QueryRow(ctx, query, b.desc.Values(e)...).Scan(&id, &createdAt); err != nil {
		return fmt.Errorf("insert %s: %w", b.desc.Table, err)
	}
	e.SetEntityID(id)
	e.SetCreatedAt(createdAt)
	return nil
}

// Update replaces the row with id by e's column values. Zero affected rows —
// whether the id is missing or merely out of scope — reads as ErrNotFound.
func (b *PostgresBackend[T]) Update(ctx context.Context, pred authz.Predicate, id uuid.UUID, e T) error {
	args := b.desc.Values(e)
	sets := make([]string, len(b.desc.Columns))
	for i, col := range b.desc.Columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}

	args = append(args, id)
	idPos := len(args)
	where := compilePredicate(pred, b.desc, &args)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND %s",
		b.desc.Table, strings.Join(sets, ", "), idPos, where)

	tag, err := b.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", b.desc.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes the row with id under the predicate.
func (b *PostgresBackend[T]) Delete(ctx context.Context, pred authz.Predicate, id uuid.UUID) error {
	args := []any{id}
	where := compilePredicate(pred, b.desc, &args)

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND %s", b.desc.Table, where)

	tag, err := b.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", b.desc.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of rows matching the predicate.
func (b *PostgresBackend[T]) Count(ctx context.Context, pred authz.Predicate) (int, error) {
	var args []any
	where := compilePredicate(pred, b.desc, &args)

	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", b.desc.Table, where)
	if err := b.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", b.desc.Table, err)
	}
	return n, nil
}
