package loan

import (
	"time"

	"booknetwork/internal/pagination"
)

// Status is the position of a Record in its one way lifecycle.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusReturned Status = "RETURNED"
	StatusApproved Status = "APPROVED"
)

// Record is one borrow of one book. A book has at most one record with
// Returned=false at any time. Records are never deleted.
type Record struct {
	ID             string    `json:"id"`
	BookID         string    `json:"book_id"`
	OwnerID        string    `json:"owner_id"`
	BorrowerID     string    `json:"borrower_id"`
	Returned       bool      `json:"returned"`
	ReturnApproved bool      `json:"return_approved"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Status derives the lifecycle state from the two flags.
func (r Record) Status() Status {
	switch {
	case r.ReturnApproved:
		return StatusApproved
	case r.Returned:
		return StatusReturned
	default:
		return StatusOpen
	}
}

// Open reports whether the record still holds custody of the book.
func (r Record) Open() bool {
	return !r.Returned
}

// BorrowedBook is a Record joined with the catalog fields listings show.
type BorrowedBook struct {
	RecordID       string    `json:"id"`
	BookID         string    `json:"book_id"`
	Title          string    `json:"title"`
	AuthorName     string    `json:"author_name"`
	ISBN           string    `json:"isbn"`
	BorrowerID     string    `json:"borrower_id"`
	Returned       bool      `json:"returned"`
	ReturnApproved bool      `json:"return_approved"`
	BorrowedAt     time.Time `json:"borrowed_at"`
}

// BorrowedQuery lists every record whose borrower is BorrowerID.
type BorrowedQuery struct {
	BorrowerID string
	Page       pagination.Request
}

// ReturnedQuery lists returned records on books owned by OwnerID.
type ReturnedQuery struct {
	OwnerID string
	Page    pagination.Request
}
