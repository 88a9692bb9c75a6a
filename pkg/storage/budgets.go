package storage

import (
	"context"

	"github.com/kuduq/settlement/pkg/models"
)

// AllocationRequest is one (category, amount) entry of an allocation batch.
type AllocationRequest struct {
	Category models.Category
	Amount   int64
}

// BudgetWriter defines the interface for converting sponsor credit into lots.
type BudgetWriter interface {
	// AllocateBudgets creates one lot and one ALLOCATION ledger entry per
	// request, atomically debiting the sponsor's available credit. The batch
	// is all-or-nothing: if the total exceeds the available credit, it fails
	// with ErrInsufficientCredits and no lot is created. Replaying the same
	// idempotency key returns the originally created lots.
	AllocateBudgets(ctx context.Context, sponsorID, studentID string, requests []AllocationRequest, idempotencyKey string) ([]models.BudgetLot, error)
}

// BudgetReader defines the read-only projection over lots.
type BudgetReader interface {
	// ListBudgets returns the per-category allocation summary for a student.
	ListBudgets(ctx context.Context, studentID string) ([]models.BudgetSummary, error)

	// GetAvailableBudget returns the unconsumed amount across a (student,
	// category) pair's lots.
	GetAvailableBudget(ctx context.Context, studentID string, category models.Category) (int64, error)
}

// BudgetStore combines the writer and reader interfaces.
type BudgetStore interface {
	BudgetWriter
	BudgetReader
}
