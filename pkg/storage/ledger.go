package storage

import (
	"context"

	"github.com/kuduq/settlement/pkg/models"
)

// LedgerReader defines the interface for reading ledger data.
type LedgerReader interface {
	// ListLedgerEntries retrieves the most recent ledger entries for a
	// (student, category) pair, newest first.
	ListLedgerEntries(ctx context.Context, studentID string, category models.Category, limit int32) ([]models.LedgerEntry, error)
}
