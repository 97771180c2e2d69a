package services

import (
	"errors"
	"fmt"
)

var (
	// ErrHeaderNotFound means no row of the uploaded sheet looked like
	// a header row, so column roles cannot be assigned.
	ErrHeaderNotFound = errors.New("no usable header row found in sheet")

	// ErrNoValidRows means extraction produced no product rows.
	ErrNoValidRows = errors.New("no valid rows to import")

	// ErrEmptyCart means checkout was attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoSupplierSelected means order creation was requested with an
	// empty supplier selection.
	ErrNoSupplierSelected = errors.New("no supplier selected")

	// ErrOrderNotConfirmed means the order save returned no order and
	// no error; the caller should re-query before retrying.
	ErrOrderNotConfirmed = errors.New("order save returned no order")
)

// ImportApplyError reports a failure while writing matched stock
// counts to the catalog. Applied is the number of rows written before
// the failure; rows are applied one at a time with no rollback, so the
// catalog may be partially updated.
type ImportApplyError struct {
	Applied int
	Err     error
}

func (e *ImportApplyError) Error() string {
	return fmt.Sprintf("stock import failed after %d applied rows: %v", e.Applied, e.Err)
}

func (e *ImportApplyError) Unwrap() error { return e.Err }

// CheckoutPartialError reports a checkout that failed part-way through
// its supplier buckets. Created counts the orders persisted before the
// failing bucket; those suppliers' lines are already removed from the
// cart, the rest remain.
type CheckoutPartialError struct {
	Created  int
	Supplier string
	Err      error
}

func (e *CheckoutPartialError) Error() string {
	return fmt.Sprintf("checkout stopped at supplier %q after %d created orders: %v", e.Supplier, e.Created, e.Err)
}

func (e *CheckoutPartialError) Unwrap() error { return e.Err }
