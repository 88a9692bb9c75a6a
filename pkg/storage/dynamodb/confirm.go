package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage"
)

// ConfirmTransaction finalizes a prepared spend. It re-evaluates availability
// at confirm time and consumes lots oldest-first inside a single DynamoDB
// transaction, with a version condition on every touched lot. Two confirms
// racing on the same (student, category) pair therefore never jointly consume
// more than the true available amount: the loser's conditions fail and it
// either retries or reports a reconfirm.
func (s *Store) ConfirmTransaction(ctx context.Context, txID, idempotencyKey string) (*storage.ConfirmResult, error) {
	for attempt := 0; attempt < confirmAttempts; attempt++ {
		tx, err := s.GetTransaction(ctx, txID)
		if err != nil {
			return nil, err
		}

		switch tx.State {
		case models.CONFIRMED:
			// Replay: return the stored result without consuming budget again.
			return &storage.ConfirmResult{Transaction: tx}, nil
		case models.EXPIRED:
			return nil, storage.ErrTransactionExpired
		case models.CANCELED:
			return nil, fmt.Errorf("transaction %s is canceled", txID)
		}

		// Lazy expiry check: the queue or sweep may not have caught up yet.
		if time.Now().After(tx.ExpiresAt) {
			if _, err := s.ExpireTransaction(ctx, txID); err != nil {
				return nil, fmt.Errorf("failed to expire transaction on confirm: %w", err)
			}
			return nil, storage.ErrTransactionExpired
		}

		lots, err := s.listLots(ctx, models.BudgetKey(tx.StudentId, tx.Category))
		if err != nil {
			return nil, fmt.Errorf("failed to read lots for confirm: %w", err)
		}

		available := availableAmount(lots)
		if available < tx.AmountCovered {
			// Availability shrank since prepare. Never silently confirm a
			// different amount: rewrite the quote and ask the caller to
			// confirm again.
			revised, err := s.reviseQuote(ctx, tx, available)
			if err != nil {
				if errors.Is(err, errQuoteMoved) {
					continue
				}
				return nil, err
			}
			return &storage.ConfirmResult{Transaction: revised, ReconfirmRequired: true}, nil
		}

		// Availability held or grew: re-derive the covered amount so a spend
		// quoted short can pick up budget allocated since prepare.
		covered := tx.AmountRequested
		if covered > available {
			covered = available
		}

		confirmed, err := s.executeConfirm(ctx, tx, lots, covered, idempotencyKey)
		if err != nil {
			var tce *types.TransactionCanceledException
			if errors.As(err, &tce) {
				// A lot version moved under us; take a fresh look.
				continue
			}
			return nil, err
		}
		return &storage.ConfirmResult{Transaction: confirmed}, nil
	}

	return nil, fmt.Errorf("confirm of transaction %s contended %d times, giving up", txID, confirmAttempts)
}

// errQuoteMoved signals that the transaction changed while a quote revision
// was in flight.
var errQuoteMoved = errors.New("quote moved")

// reviseQuote rewrites the covered/shortfall amounts of a still-PREPARED
// transaction after availability dropped.
func (s *Store) reviseQuote(ctx context.Context, tx *models.Transaction, available int64) (*models.Transaction, error) {
	covered := tx.AmountRequested
	if covered > available {
		covered = available
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for quote revision: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: tx.Id},
		},
		UpdateExpression:    aws.String("SET amount_covered = :covered, amount_shortfall = :shortfall, updated_at = :now"),
		ConditionExpression: aws.String("#state = :prepared AND amount_covered = :old_covered"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":covered":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", covered)},
			":shortfall":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tx.AmountRequested-covered)},
			":old_covered": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tx.AmountCovered)},
			":prepared":    &types.AttributeValueMemberS{Value: string(models.PREPARED)},
			":now":         nowAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, errQuoteMoved
		}
		return nil, fmt.Errorf("failed to revise quote: %w", err)
	}

	var revised models.Transaction
	if err := attributevalue.UnmarshalMap(result.Attributes, &revised); err != nil {
		return nil, fmt.Errorf("failed to unmarshal revised transaction: %w", err)
	}

	return &revised, nil
}

// executeConfirm performs the atomic settlement: per-lot consumption updates,
// the SPEND ledger entry, and the PREPARED -> CONFIRMED state transition.
func (s *Store) executeConfirm(ctx context.Context, tx *models.Transaction, lots []models.BudgetLot, covered int64, idempotencyKey string) (*models.Transaction, error) {
	now := time.Now()
	draws := planConsumption(lots, covered)

	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for settlement: %w", err)
	}

	items := make([]types.TransactWriteItem, 0, len(draws)+2)
	for _, draw := range draws {
		items = append(items, types.TransactWriteItem{
			// Consume part of one lot. The version condition makes the whole
			// settlement fail if any lot moved since it was read.
			Update: &types.Update{
				TableName: aws.String(s.LotsTableName),
				Key: map[string]types.AttributeValue{
					"budget_key":    &types.AttributeValueMemberS{Value: draw.Lot.BudgetKey},
					"created_at_id": &types.AttributeValueMemberS{Value: draw.Lot.CreatedAtId},
				},
				UpdateExpression:    aws.String("SET consumed = consumed + :take, version = version + :inc"),
				ConditionExpression: aws.String("version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":take":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", draw.Take)},
					":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", draw.Lot.Version)},
					":inc":     &types.AttributeValueMemberN{Value: "1"},
				},
			},
		})
	}

	// A confirm whose revised quote reached zero settles without ledger
	// effect; a zero-amount SPEND entry would only be noise.
	if covered > 0 {
		entryID := uuid.New().String()
		entry := models.LedgerEntry{
			EntryID:       entryID,
			BudgetKey:     models.BudgetKey(tx.StudentId, tx.Category),
			CreatedAtId:   sortKey(now, entryID),
			StudentId:     tx.StudentId,
			Category:      tx.Category,
			EntryType:     models.SPEND,
			Amount:        covered,
			TransactionID: tx.Id,
			Description:   fmt.Sprintf("Settlement for transaction %s", tx.Id),
			Timestamp:     now,
		}
		entryAV, err := attributevalue.MarshalMap(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal spend ledger entry: %w", err)
		}

		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.LedgerTableName),
				Item:                entryAV,
				ConditionExpression: aws.String("attribute_not_exists(budget_key)"),
			},
		})
	}

	items = append(items,
		types.TransactWriteItem{
			// Transition the transaction, pinned to the amounts this confirm
			// was computed from.
			Update: &types.Update{
				TableName: aws.String(s.TransactionsTableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: tx.Id},
				},
				// REMOVE #ttl keeps confirmed transactions out of the
				// table's TTL sweep; only abandoned PREPARED rows expire.
				UpdateExpression:    aws.String("SET #state = :confirmed, amount_covered = :covered, amount_shortfall = :shortfall, confirm_key = :key, confirmed_at = :now, updated_at = :now REMOVE #ttl"),
				ConditionExpression: aws.String("#state = :prepared AND amount_covered = :old_covered"),
				ExpressionAttributeNames: map[string]string{
					"#state": "state",
					"#ttl":   "ttl",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":confirmed":   &types.AttributeValueMemberS{Value: string(models.CONFIRMED)},
					":prepared":    &types.AttributeValueMemberS{Value: string(models.PREPARED)},
					":covered":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", covered)},
					":shortfall":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tx.AmountRequested-covered)},
					":old_covered": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tx.AmountCovered)},
					":key":         &types.AttributeValueMemberS{Value: idempotencyKey},
					":now":         nowAV,
				},
			},
		},
	)

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		return nil, err
	}

	tx.State = models.CONFIRMED
	tx.AmountCovered = covered
	tx.AmountShortfall = tx.AmountRequested - covered
	tx.ConfirmKey = idempotencyKey
	tx.ConfirmedAt = &now
	tx.UpdatedAt = now
	return tx, nil
}
