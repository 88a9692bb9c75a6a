package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage"
)

const (
	studentLotsGSI         = "student_id-index"
	studentTransactionsGSI = "student_id-created_at-index"
)

// GetTransaction retrieves a transaction from DynamoDB by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": txID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("transaction %s: %w", txID, storage.ErrNotFound)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}

// listLots retrieves every lot under a budget key, oldest first. The sort key
// embeds a fixed-width timestamp, so DynamoDB's native range-key order is the
// consumption order.
func (s *Store) listLots(ctx context.Context, budgetKey string) ([]models.BudgetLot, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LotsTableName),
		KeyConditionExpression: aws.String("budget_key = :key"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: budgetKey},
		},
	}

	var lots []models.BudgetLot
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query lots: %w", err)
		}

		var page []models.BudgetLot
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lots: %w", err)
		}
		lots = append(lots, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return lots, nil
}

// GetAvailableBudget returns the unconsumed amount across a (student,
// category) pair's lots.
func (s *Store) GetAvailableBudget(ctx context.Context, studentID string, category models.Category) (int64, error) {
	lots, err := s.listLots(ctx, models.BudgetKey(studentID, category))
	if err != nil {
		return 0, err
	}
	return availableAmount(lots), nil
}

// ListBudgets returns the per-category allocation summary for a student.
func (s *Store) ListBudgets(ctx context.Context, studentID string) ([]models.BudgetSummary, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LotsTableName),
		IndexName:              aws.String(studentLotsGSI),
		KeyConditionExpression: aws.String("student_id = :studentID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":studentID": &types.AttributeValueMemberS{Value: studentID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query lots by student ID: %w", err)
	}

	var lots []models.BudgetLot
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &lots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lots: %w", err)
	}

	byCategory := make(map[models.Category]*models.BudgetSummary)
	for _, lot := range lots {
		summary, ok := byCategory[lot.Category]
		if !ok {
			summary = &models.BudgetSummary{Category: lot.Category}
			byCategory[lot.Category] = summary
		}
		summary.Allocated += lot.Amount
		summary.Used += lot.Consumed
		summary.Available += lot.Remaining()
	}

	summaries := make([]models.BudgetSummary, 0, len(byCategory))
	for _, summary := range byCategory {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Category < summaries[j].Category
	})

	return summaries, nil
}

// ListLedgerEntries retrieves the most recent ledger entries for a (student,
// category) pair, newest first.
func (s *Store) ListLedgerEntries(ctx context.Context, studentID string, category models.Category, limit int32) ([]models.LedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		KeyConditionExpression: aws.String("budget_key = :key"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: models.BudgetKey(studentID, category)},
		},
		ScanIndexForward: aws.Bool(false), // Sort by timestamp in descending order
		Limit:            &limit,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for ledger entries: %w", err)
	}

	var entries []models.LedgerEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entries: %w", err)
	}

	return entries, nil
}

// ListTransactionsByStudent retrieves a student's transactions newest first,
// forward-paginated by an opaque cursor.
func (s *Store) ListTransactionsByStudent(ctx context.Context, studentID string, filter storage.TransactionFilter, limit int32, cursor string) (*storage.TransactionPage, error) {
	startKey, err := decodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(studentTransactionsGSI),
		KeyConditionExpression: aws.String("student_id = :studentID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":studentID": &types.AttributeValueMemberS{Value: studentID},
		},
		ScanIndexForward:  aws.Bool(false), // Newest first.
		Limit:             &limit,
		ExclusiveStartKey: startKey,
	}

	var filters []string
	if filter.Category != nil {
		filters = append(filters, "category = :category")
		input.ExpressionAttributeValues[":category"] = &types.AttributeValueMemberS{Value: string(*filter.Category)}
	}
	if filter.MerchantId != "" {
		filters = append(filters, "merchant_id = :merchantID")
		input.ExpressionAttributeValues[":merchantID"] = &types.AttributeValueMemberS{Value: filter.MerchantId}
	}
	if len(filters) > 0 {
		input.FilterExpression = aws.String(strings.Join(filters, " AND "))
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for transactions by student ID: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	nextCursor, err := encodeCursor(result.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}

	return &storage.TransactionPage{
		Transactions: transactions,
		NextCursor:   nextCursor,
	}, nil
}

// ListBudgetKeys returns every distinct budget key in the lots table. The
// partition key varies per item, so this requires a Scan.
func (s *Store) ListBudgetKeys(ctx context.Context) ([]string, error) {
	input := &dynamodb.ScanInput{
		TableName:            aws.String(s.LotsTableName),
		ProjectionExpression: aws.String("budget_key"),
	}

	seen := make(map[string]struct{})
	var keys []string
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lots table: %w", err)
		}

		var partials []struct {
			BudgetKey string `dynamodbav:"budget_key"`
		}
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &partials); err != nil {
			return nil, fmt.Errorf("failed to unmarshal budget keys: %w", err)
		}

		for _, p := range partials {
			if _, ok := seen[p.BudgetKey]; !ok {
				seen[p.BudgetKey] = struct{}{}
				keys = append(keys, p.BudgetKey)
			}
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sort.Strings(keys)
	return keys, nil
}

// ReconcileBudget checks the audit invariant for one (student, category)
// pair: the sum of ALLOCATION entries minus SPEND entries must equal the
// remaining amount across the pair's lots.
func (s *Store) ReconcileBudget(ctx context.Context, studentID string, category models.Category) (*models.ReconciliationReport, error) {
	budgetKey := models.BudgetKey(studentID, category)

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		KeyConditionExpression: aws.String("budget_key = :key"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: budgetKey},
		},
	}

	var entries []models.LedgerEntry
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query ledger for reconciliation: %w", err)
		}

		var page []models.LedgerEntry
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ledger entries: %w", err)
		}
		entries = append(entries, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	report := &models.ReconciliationReport{
		StudentId: studentID,
		Category:  category,
	}
	for _, entry := range entries {
		switch entry.EntryType {
		case models.ALLOCATION:
			report.LedgerAllocated += entry.Amount
		case models.SPEND:
			report.LedgerSpent += entry.Amount
		}
	}

	lots, err := s.listLots(ctx, budgetKey)
	if err != nil {
		return nil, err
	}
	report.LotRemaining = availableAmount(lots)
	report.Balanced = report.LedgerAllocated-report.LedgerSpent == report.LotRemaining

	return report, nil
}
