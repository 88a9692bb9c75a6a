package storage

import (
	"context"
	"time"

	"github.com/kuduq/settlement/pkg/models"
)

// SweeperStore defines the privileged interface used by the expiry and
// reconciliation jobs. It should only be exposed to those components.
type SweeperStore interface {
	// ExpireTransaction transitions a PREPARED transaction past its expiry
	// window to EXPIRED. It returns whether a transition actually happened;
	// a transaction that is already terminal is not an error.
	ExpireTransaction(ctx context.Context, txID string) (bool, error)

	// ListExpiredPrepared retrieves transactions still PREPARED whose expiry
	// time is before asOf.
	ListExpiredPrepared(ctx context.Context, asOf time.Time) ([]models.Transaction, error)

	// ListBudgetKeys returns every budget key present in the lots table.
	ListBudgetKeys(ctx context.Context) ([]string, error)

	// ReconcileBudget checks the audit invariant for one (student, category)
	// pair: ledger allocations minus spends must equal the remaining amount
	// across that pair's lots.
	ReconcileBudget(ctx context.Context, studentID string, category models.Category) (*models.ReconciliationReport, error)
}
