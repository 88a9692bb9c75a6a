package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage"
)

// PrepareTransaction quotes how much of the requested spend the student's
// budget covers right now and records the transaction as PREPARED. It is a
// quote, not a reservation: no lot is touched until confirm, so a concurrent
// spend may still shrink availability before this transaction confirms.
func (s *Store) PrepareTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx.AmountRequested <= 0 {
		return nil, storage.ErrInvalidAmount
	}
	category, ok := models.ParseCategory(string(tx.Category))
	if !ok {
		return nil, fmt.Errorf("%q: %w", tx.Category, storage.ErrUnknownCategory)
	}
	tx.Category = category

	// Idempotent replay: the same key returns the same transaction, no new txId.
	record, err := s.getIdempotencyRecord(ctx, scopePrepare, tx.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return s.GetTransaction(ctx, record.ResourceID)
	}

	lots, err := s.listLots(ctx, models.BudgetKey(tx.StudentId, category))
	if err != nil {
		return nil, fmt.Errorf("failed to read lots for quote: %w", err)
	}

	available := availableAmount(lots)
	covered := tx.AmountRequested
	if covered > available {
		covered = available
	}
	if covered == 0 {
		return nil, storage.ErrZeroAvailability
	}

	now := time.Now()
	tx.Id = uuid.New().String()
	tx.AmountCovered = covered
	tx.AmountShortfall = tx.AmountRequested - covered
	tx.State = models.PREPARED
	tx.CreatedAt = now
	tx.UpdatedAt = now
	tx.ExpiresAt = now.Add(PrepareExpiryWindow)
	tx.TTL = now.Add(24 * time.Hour).Unix()

	slog.Log(ctx, slog.LevelDebug, "preparing transaction", "transaction", tx)

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	idemPut, err := s.putIdempotencyRecord(scopePrepare, tx.IdempotencyKey, tx.Id, now)
	if err != nil {
		return nil, err
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the transaction record.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 2: Claim the idempotency key.
				Put: idemPut,
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 1 {
			// A concurrent request with the same key won the claim; serve its
			// transaction.
			if tce.CancellationReasons[1].Code != nil && *tce.CancellationReasons[1].Code == "ConditionalCheckFailed" {
				record, getErr := s.getIdempotencyRecord(ctx, scopePrepare, tx.IdempotencyKey)
				if getErr != nil {
					return nil, getErr
				}
				if record != nil {
					return s.GetTransaction(ctx, record.ResourceID)
				}
			}
		}
		return nil, fmt.Errorf("failed to execute prepare transaction: %w", err)
	}

	// If the write succeeded, enqueue the expiry check.
	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleExpiryCheck(ctx, tx.Id, PrepareExpiryWindow+expiryCheckGrace); err != nil {
			// The sweep catches transactions whose check never arrives.
			slog.Log(ctx, slog.LevelError, "transaction prepared but expiry check not enqueued", "transaction_id", tx.Id, "error", err)
		}
	}

	return tx, nil
}
