// Package policy decides who may change a book's state.
//
// Every function is a pure predicate over snapshots: it returns nil when the
// action is permitted and a typed rejection from apperr otherwise. Callers
// must run the check before mutating anything.
package policy

import "booknetwork/internal/apperr"

// Actor is the identity on whose behalf an operation runs.
type Actor struct {
	ID string
}

// BookState is the subset of a book the policy needs.
type BookState struct {
	ID        string
	OwnerID   string
	Shareable bool
	Archived  bool
}

// Available reports whether the book can take part in lending.
func (b BookState) Available() bool {
	return !b.Archived && b.Shareable
}

func (b BookState) ownedBy(a Actor) bool {
	return b.OwnerID == a.ID
}

// CanToggleShareable permits only the owner.
func CanToggleShareable(actor Actor, book BookState) error {
	if !book.ownedBy(actor) {
		return apperr.Forbidden("update books shareable status", "")
	}
	return nil
}

// CanToggleArchived permits only the owner.
func CanToggleArchived(actor Actor, book BookState) error {
	if !book.ownedBy(actor) {
		return apperr.Forbidden("update books archived status", "")
	}
	return nil
}

// CanBorrow checks availability, then self-borrowing, then the book level
// open loan flag. The order is part of the contract.
func CanBorrow(actor Actor, book BookState, hasOpenLoan bool) error {
	if !book.Available() {
		return apperr.ErrBookUnavailable.WithReason("the requested book cannot be borrowed since it is archived or not shareable")
	}
	if book.ownedBy(actor) {
		return apperr.ErrSelfBorrow
	}
	if hasOpenLoan {
		return apperr.ErrAlreadyBorrowed
	}
	return nil
}

// CanGiveFeedback checks availability before ownership.
func CanGiveFeedback(actor Actor, book BookState) error {
	if !book.Available() {
		return apperr.ErrBookUnavailable.WithReason("you cannot give a feedback for an archived or non shareable book")
	}
	if book.ownedBy(actor) {
		return apperr.ErrSelfFeedback
	}
	return nil
}

// CanReturn permits the borrower holding the open loan to hand the book back.
// heldByActor is true when an open loan on the book belongs to actor.
func CanReturn(actor Actor, book BookState, heldByActor bool) error {
	if !book.Available() {
		return apperr.ErrBookUnavailable.WithReason("the requested book cannot be returned since it is archived or not shareable")
	}
	if book.ownedBy(actor) {
		return apperr.ErrSelfBorrow.WithReason("you cannot return your own book")
	}
	if !heldByActor {
		return apperr.ErrNotBorrowed
	}
	return nil
}

// CanApproveReturn permits the owner to close a returned loan.
// pendingReturn is true when a returned but unapproved record exists.
func CanApproveReturn(actor Actor, book BookState, pendingReturn bool) error {
	if !book.Available() {
		return apperr.ErrBookUnavailable.WithReason("the requested book cannot be approved since it is archived or not shareable")
	}
	if !book.ownedBy(actor) {
		return apperr.Forbidden("approve the return of a book you do not own", "")
	}
	if !pendingReturn {
		return apperr.ErrReturnNotPending.WithReason("the book is not returned yet, you cannot approve its return")
	}
	return nil
}
