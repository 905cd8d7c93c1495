// Package service implements the write-side validation gate in front of the
// repositories. Every mutation is normalized and validated here; handlers
// map the sentinel errors below onto HTTP statuses.
package service

import "errors"

var (
	// ErrNotFound signals that a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNameTaken signals a case-insensitive name collision.
	ErrNameTaken = errors.New("name already taken")
	// ErrInUse signals a delete blocked by referencing expenses.
	ErrInUse = errors.New("record is referenced by expenses")
	// ErrInvalidName signals an empty or over-long name.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidColor signals a color that is not #RRGGBB.
	ErrInvalidColor = errors.New("invalid color: must be #RRGGBB")
	// ErrInvalidAmount signals a non-positive, over-precise or out-of-bound amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrDateInFuture signals an expense dated beyond tomorrow.
	ErrDateInFuture = errors.New("date is too far in the future")
)
