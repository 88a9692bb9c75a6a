package storage

import (
	"context"

	"github.com/kuduq/settlement/pkg/models"
)

// TransactionFilter narrows a student's transaction listing.
type TransactionFilter struct {
	Category   *models.Category
	MerchantId string
}

// TransactionPage is one page of a cursor-paginated transaction listing.
// NextCursor is an opaque token; empty means the listing is exhausted.
type TransactionPage struct {
	Transactions []models.Transaction
	NextCursor   string
}

// ConfirmResult is the outcome of a confirm attempt. When ReconfirmRequired
// is set, availability dropped below the quoted amount between prepare and
// confirm: the transaction stays PREPARED with a revised quote and the caller
// must confirm again to accept it.
type ConfirmResult struct {
	Transaction       *models.Transaction
	ReconfirmRequired bool
}

// SpendReader defines the interface for reading spend transactions.
type SpendReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByStudent retrieves a student's transactions, newest
	// first, forward-paginated by an opaque cursor.
	ListTransactionsByStudent(ctx context.Context, studentID string, filter TransactionFilter, limit int32, cursor string) (*TransactionPage, error)
}

// SpendEngine defines the two-phase prepare/confirm protocol.
type SpendEngine interface {
	// PrepareTransaction quotes how much of the requested amount the
	// student's budget can cover right now. It mutates no lots; the quote may
	// be invalidated by a concurrent spend before confirm. Replaying the same
	// idempotency key returns the previously prepared transaction.
	PrepareTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// ConfirmTransaction consumes lots oldest-first up to the quoted amount
	// and writes the SPEND ledger entry. Replays after CONFIRMED return the
	// stored result without consuming budget again.
	ConfirmTransaction(ctx context.Context, txID, idempotencyKey string) (*ConfirmResult, error)

	// CancelTransaction aborts a PREPARED transaction. No ledger effect.
	CancelTransaction(ctx context.Context, txID string) (*models.Transaction, error)
}

// SpendStore combines the reader and engine interfaces.
type SpendStore interface {
	SpendReader
	SpendEngine
}
