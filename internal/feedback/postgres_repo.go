package feedback

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (repo *PostgresRepo) Create(ctx context.Context, f *Feedback) error {
	const insertSQL = `
		INSERT INTO feedbacks (id, book_id, author_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	timeoutCtx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()
	_, err := repo.db.Exec(timeoutCtx, insertSQL, f.ID, f.BookID, f.AuthorID, f.Rating, f.Comment, f.CreatedAt)
	return err
}

func (repo *PostgresRepo) ListByBook(ctx context.Context, q BookQuery) ([]Feedback, int, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var total int
	if err := repo.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM feedbacks WHERE book_id = $1`, q.BookID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, book_id, author_id, rating, comment, created_at
		FROM feedbacks
		WHERE book_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := repo.db.Query(timeoutCtx, query, q.BookID, q.Page.Limit(), q.Page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Feedback
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.BookID, &f.AuthorID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	return out, total, rows.Err()
}

func (repo *PostgresRepo) Summary(ctx context.Context, bookID string) (Summary, error) {
	query := `
		SELECT AVG(rating)::FLOAT, COUNT(rating)
		FROM feedbacks
		WHERE book_id = $1
	`
	timeoutCtx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var average sql.NullFloat64
	var count int
	if err := repo.db.QueryRow(timeoutCtx, query, bookID).Scan(&average, &count); err != nil {
		return Summary{}, err
	}
	if !average.Valid {
		return Summary{BookID: bookID}, nil
	}
	return Summary{BookID: bookID, Average: average.Float64, Count: count}, nil
}
