package scheduler

import (
	"context"
	"time"
)

// Scheduler defines the interface for a component that schedules an expiry
// check for a prepared transaction.
type Scheduler interface {
	// ScheduleExpiryCheck enqueues an expiry check for the transaction,
	// delivered after the given delay.
	ScheduleExpiryCheck(ctx context.Context, txID string, delay time.Duration) error
}

// ExpiryCheckMessage is the payload delivered to the expiry worker.
type ExpiryCheckMessage struct {
	TransactionId string    `json:"transaction_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}
