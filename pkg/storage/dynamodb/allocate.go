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

// AllocateBudgets atomically converts sponsor credit into one budget lot per
// requested category, writing a matching ALLOCATION ledger entry for each.
// The batch is all-or-nothing: a single condition on the sponsor's available
// balance guards the whole TransactWriteItems call, so either every lot is
// created or none is.
func (s *Store) AllocateBudgets(ctx context.Context, sponsorID, studentID string, requests []storage.AllocationRequest, idempotencyKey string) ([]models.BudgetLot, error) {
	if len(requests) == 0 {
		return nil, storage.ErrInvalidAmount
	}

	var total int64
	for _, req := range requests {
		if req.Amount <= 0 {
			return nil, storage.ErrInvalidAmount
		}
		if _, ok := models.ParseCategory(string(req.Category)); !ok {
			return nil, fmt.Errorf("%q: %w", req.Category, storage.ErrUnknownCategory)
		}
		total += req.Amount
	}

	// Idempotent replay: return the lots the original call created.
	record, err := s.getIdempotencyRecord(ctx, scopeAllocate, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return s.listLotsByAllocation(ctx, record.ResourceID)
	}

	balance, err := s.ensureSponsorBalance(ctx, sponsorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sponsor balance for allocation: %w", err)
	}
	if balance.Available < total {
		return nil, storage.ErrInsufficientCredits
	}

	now := time.Now()
	allocationID := uuid.New().String()

	idemPut, err := s.putIdempotencyRecord(scopeAllocate, idempotencyKey, allocationID, now)
	if err != nil {
		return nil, err
	}

	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for allocation: %w", err)
	}
	totalAV, err := attributevalue.Marshal(total)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal allocation total: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: Debit the sponsor's available credit.
			Update: &types.Update{
				TableName: aws.String(s.BalancesTableName),
				Key: map[string]types.AttributeValue{
					"sponsor_id": &types.AttributeValueMemberS{Value: sponsorID},
				},
				// Availability alone guards the debit; the version counter
				// is bumped but not checked, so a concurrent deposit
				// approval cannot fail an allocation that still fits.
				UpdateExpression:    aws.String("SET allocated = allocated + :total, available = available - :total, version = version + :inc, updated_at = :now"),
				ConditionExpression: aws.String("available >= :total"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":total": totalAV,
					":inc":   &types.AttributeValueMemberN{Value: "1"},
					":now":   nowAV,
				},
			},
		},
		{
			// Operation 2: Claim the idempotency key.
			Put: idemPut,
		},
	}

	lots := make([]models.BudgetLot, 0, len(requests))
	for _, req := range requests {
		category, _ := models.ParseCategory(string(req.Category))
		lotID := uuid.New().String()

		lot := models.BudgetLot{
			Id:           lotID,
			BudgetKey:    models.BudgetKey(studentID, category),
			CreatedAtId:  sortKey(now, lotID),
			AllocationId: allocationID,
			SponsorId:    sponsorID,
			StudentId:    studentID,
			Category:     category,
			Amount:       req.Amount,
			Consumed:     0,
			Version:      1,
			CreatedAt:    now,
		}

		lotAV, err := attributevalue.MarshalMap(lot)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal lot: %w", err)
		}

		entryID := uuid.New().String()
		entry := models.LedgerEntry{
			EntryID:     entryID,
			BudgetKey:   lot.BudgetKey,
			CreatedAtId: sortKey(now, entryID),
			StudentId:   studentID,
			Category:    category,
			EntryType:   models.ALLOCATION,
			Amount:      req.Amount,
			SponsorId:   sponsorID,
			Description: fmt.Sprintf("Allocation of lot %s", lotID),
			Timestamp:   now,
		}

		entryAV, err := attributevalue.MarshalMap(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal allocation ledger entry: %w", err)
		}

		items = append(items,
			types.TransactWriteItem{
				Put: &types.Put{
					TableName:           aws.String(s.LotsTableName),
					Item:                lotAV,
					ConditionExpression: aws.String("attribute_not_exists(budget_key)"),
				},
			},
			types.TransactWriteItem{
				Put: &types.Put{
					TableName:           aws.String(s.LedgerTableName),
					Item:                entryAV,
					ConditionExpression: aws.String("attribute_not_exists(budget_key)"),
				},
			},
		)

		lots = append(lots, lot)
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 0 {
			reasons := tce.CancellationReasons
			// Operation 1 failing its condition means the balance no
			// longer covers the batch.
			if reasons[0].Code != nil && *reasons[0].Code == "ConditionalCheckFailed" {
				return nil, storage.ErrInsufficientCredits
			}
			// Operation 2 failing means a concurrent replay of the same key
			// won; serve its result.
			if len(reasons) > 1 && reasons[1].Code != nil && *reasons[1].Code == "ConditionalCheckFailed" {
				record, getErr := s.getIdempotencyRecord(ctx, scopeAllocate, idempotencyKey)
				if getErr != nil {
					return nil, getErr
				}
				if record != nil {
					return s.listLotsByAllocation(ctx, record.ResourceID)
				}
			}
		}
		return nil, fmt.Errorf("failed to execute allocation transaction: %w", err)
	}

	return lots, nil
}

const allocationGSI = "allocation_id-index"

// listLotsByAllocation retrieves the lots created by one allocation batch.
func (s *Store) listLotsByAllocation(ctx context.Context, allocationID string) ([]models.BudgetLot, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LotsTableName),
		IndexName:              aws.String(allocationGSI),
		KeyConditionExpression: aws.String("allocation_id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: allocationID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query lots by allocation: %w", err)
	}

	var lots []models.BudgetLot
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &lots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lots: %w", err)
	}

	return lots, nil
}
