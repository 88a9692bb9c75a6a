package storage

import (
	"context"

	"github.com/kuduq/settlement/pkg/models"
)

// CreditsReader defines the interface for reading sponsor credit data.
type CreditsReader interface {
	// GetDeposit retrieves a single EFT deposit by its ID.
	GetDeposit(ctx context.Context, depositID string) (*models.SponsorCredit, error)

	// GetSponsorBalance retrieves a sponsor's running approved/allocated totals.
	// A sponsor with no approved deposits yet has a zero balance, not an error.
	GetSponsorBalance(ctx context.Context, sponsorID string) (*models.SponsorBalance, error)
}

// CreditsManager defines the interface for recording and deciding EFT deposits.
type CreditsManager interface {
	// RequestDepositReference generates a deposit reference that is unique
	// across all sponsors, retrying internally on collision.
	RequestDepositReference(ctx context.Context, sponsorID string) (string, error)

	// CreateDeposit records a pending (NEW) deposit notification.
	CreateDeposit(ctx context.Context, deposit *models.SponsorCredit) (*models.SponsorCredit, error)

	// ApproveDeposit transitions a deposit NEW -> ALLOCATED for approvedAmount,
	// which may be less than the notified amount. Replaying the same
	// idempotency key returns the prior result instead of ErrAlreadyDecided.
	ApproveDeposit(ctx context.Context, depositID string, approvedAmount int64, idempotencyKey string) (*models.SponsorCredit, error)

	// RejectDeposit transitions a deposit NEW -> REJECTED.
	RejectDeposit(ctx context.Context, depositID, reason string) (*models.SponsorCredit, error)
}

// CreditsStore combines the reader and manager interfaces.
type CreditsStore interface {
	CreditsReader
	CreditsManager
}
