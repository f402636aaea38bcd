package book

import (
	"context"
	"errors"
	"time"

	"booknetwork/internal/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, owner_id, title, author_name, isbn, synopsis, cover_url, shareable, archived, created_at, updated_at`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (id, owner_id, title, author_name, isbn, synopsis, cover_url,
		                   shareable, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, sql,
		b.ID, b.OwnerID, b.Title, b.AuthorName, b.ISBN, b.Synopsis, b.CoverURL,
		b.Shareable, b.Archived, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, apperr.NotFound("book", id)
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) ListDisplayable(ctx context.Context, q DisplayableQuery) ([]Book, int, error) {
	const where = `WHERE archived = false AND shareable = true AND owner_id <> $1`
	return r.list(ctx, where, q.ViewerID, q.Page.Limit(), q.Page.Offset())
}

func (r *PostgresRepo) ListByOwner(ctx context.Context, q OwnerQuery) ([]Book, int, error) {
	const where = `WHERE owner_id = $1`
	return r.list(ctx, where, q.OwnerID, q.Page.Limit(), q.Page.Offset())
}

func (r *PostgresRepo) list(ctx context.Context, where string, userID string, limit, offset int) ([]Book, int, error) {
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM books `+where, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT ` + bookColumns + ` FROM books ` + where + `
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) ToggleShareable(ctx context.Context, id string) (bool, error) {
	const sql = `UPDATE books SET shareable = NOT shareable, updated_at = NOW() WHERE id = $1 RETURNING shareable`
	return r.flip(ctx, sql, id)
}

func (r *PostgresRepo) ToggleArchived(ctx context.Context, id string) (bool, error) {
	const sql = `UPDATE books SET archived = NOT archived, updated_at = NOW() WHERE id = $1 RETURNING archived`
	return r.flip(ctx, sql, id)
}

// flip relies on the row lock the UPDATE takes, so concurrent toggles never
// lose an update.
func (r *PostgresRepo) flip(ctx context.Context, sql, id string) (bool, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var value bool
	if err := r.db.QueryRow(timeoutCtx, sql, id).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperr.NotFound("book", id)
		}
		return false, err
	}
	return value, nil
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.Title, &b.AuthorName, &b.ISBN, &b.Synopsis, &b.CoverURL,
		&b.Shareable, &b.Archived, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}
