package loan

import (
	"context"
	"errors"
	"time"

	"booknetwork/internal/apperr"
	"booknetwork/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	recordColumns = `id, book_id, owner_id, borrower_id, returned, return_approved, created_at, updated_at`

	// openLoanConstraint is the partial unique index on open records.
	openLoanConstraint = "borrow_records_one_open_loan"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

// WithinBook opens a transaction and locks the book row, so concurrent
// borrows of the same book queue behind each other. The partial unique
// index still rejects a second open record if a caller skips the lock.
func (r *PostgresRepo) WithinBook(ctx context.Context, bookID string, fn func(ctx context.Context, tx Tx) error) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return postgres.InTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		var locked string
		err := tx.QueryRow(timeoutCtx, `SELECT id FROM books WHERE id = $1 FOR UPDATE`, bookID).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("book", bookID)
			}
			return err
		}
		return fn(timeoutCtx, pgTx{db: tx})
	})
}

func (r *PostgresRepo) HasOpenLoan(ctx context.Context, bookID string) (bool, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return hasOpenLoan(timeoutCtx, r.db, bookID)
}

func (r *PostgresRepo) ListBorrowed(ctx context.Context, q BorrowedQuery) ([]Record, int, error) {
	const where = `WHERE borrower_id = $1`
	return r.list(ctx, where, q.BorrowerID, q.Page.Limit(), q.Page.Offset())
}

func (r *PostgresRepo) ListReturned(ctx context.Context, q ReturnedQuery) ([]Record, int, error) {
	const where = `WHERE owner_id = $1 AND returned = true`
	return r.list(ctx, where, q.OwnerID, q.Page.Limit(), q.Page.Offset())
}

func (r *PostgresRepo) list(ctx context.Context, where, userID string, limit, offset int) ([]Record, int, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var total int
	if err := r.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM borrow_records `+where, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(timeoutCtx, `SELECT `+recordColumns+` FROM borrow_records `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}

type pgTx struct {
	db postgres.DBTX
}

func (t pgTx) HasOpenLoan(ctx context.Context, bookID string) (bool, error) {
	return hasOpenLoan(ctx, t.db, bookID)
}

func (t pgTx) FindOpen(ctx context.Context, bookID, borrowerID string) (Record, bool, error) {
	const query = `SELECT ` + recordColumns + ` FROM borrow_records
		WHERE book_id = $1 AND borrower_id = $2 AND returned = false`
	return findOne(t.db.QueryRow(ctx, query, bookID, borrowerID))
}

func (t pgTx) FindPendingReturn(ctx context.Context, bookID string) (Record, bool, error) {
	const query = `SELECT ` + recordColumns + ` FROM borrow_records
		WHERE book_id = $1 AND returned = true AND return_approved = false
		ORDER BY created_at ASC, id ASC
		LIMIT 1`
	return findOne(t.db.QueryRow(ctx, query, bookID))
}

func (t pgTx) Insert(ctx context.Context, rec *Record) error {
	const sql = `
		INSERT INTO borrow_records (id, book_id, owner_id, borrower_id, returned, return_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := t.db.Exec(ctx, sql,
		rec.ID, rec.BookID, rec.OwnerID, rec.BorrowerID,
		rec.Returned, rec.ReturnApproved, rec.CreatedAt, rec.UpdatedAt,
	)
	if postgres.IsUniqueViolation(err, openLoanConstraint) {
		return apperr.ErrAlreadyBorrowed
	}
	return err
}

func (t pgTx) MarkReturned(ctx context.Context, id string, at time.Time) error {
	const sql = `UPDATE borrow_records SET returned = true, updated_at = $2
		WHERE id = $1 AND returned = false`
	return t.transition(ctx, sql, id, at, apperr.ErrNotBorrowed)
}

func (t pgTx) MarkReturnApproved(ctx context.Context, id string, at time.Time) error {
	const sql = `UPDATE borrow_records SET return_approved = true, updated_at = $2
		WHERE id = $1 AND returned = true AND return_approved = false`
	return t.transition(ctx, sql, id, at, apperr.ErrReturnNotPending)
}

// transition guards the source state in the WHERE clause; no affected row
// means the record already moved on.
func (t pgTx) transition(ctx context.Context, sql, id string, at time.Time, rejection error) error {
	tag, err := t.db.Exec(ctx, sql, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return rejection
	}
	return nil
}

func hasOpenLoan(ctx context.Context, db postgres.DBTX, bookID string) (bool, error) {
	var open bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM borrow_records WHERE book_id = $1 AND returned = false)`,
		bookID,
	).Scan(&open)
	return open, err
}

func findOne(row pgx.Row) (Record, bool, error) {
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	return rec, true, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.BookID, &rec.OwnerID, &rec.BorrowerID,
		&rec.Returned, &rec.ReturnApproved, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}
