package storage

import "errors"

// ErrInvalidAmount is returned when a monetary amount is zero or negative.
var ErrInvalidAmount = errors.New("amount must be a positive number of cents")

// ErrUnknownCategory is returned when a category is not in the canonical set.
var ErrUnknownCategory = errors.New("unknown spend category")

// ErrInsufficientCredits is returned when an allocation batch exceeds the sponsor's available credit.
var ErrInsufficientCredits = errors.New("insufficient sponsor credits")

// ErrAlreadyDecided is returned when approving or rejecting a deposit that is no longer in the NEW state.
var ErrAlreadyDecided = errors.New("deposit already decided")

// ErrTransactionExpired is returned when confirming a transaction past its expiry window.
var ErrTransactionExpired = errors.New("transaction expired")

// ErrTransactionNotCancellable is returned when a transaction cannot be canceled, e.g., because it's already confirmed or expired.
var ErrTransactionNotCancellable = errors.New("transaction not in a cancellable state")

// ErrReferenceCollision is returned when deposit reference generation exhausts its retry budget.
var ErrReferenceCollision = errors.New("deposit reference collision")

// ErrZeroAvailability is returned by prepare when no budget at all is available for the requested category.
var ErrZeroAvailability = errors.New("no budget available for category")

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")
