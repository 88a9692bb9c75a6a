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
	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage"
)

// CancelTransaction aborts a PREPARED transaction. Nothing was consumed at
// prepare time, so cancellation has no ledger effect.
func (s *Store) CancelTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	tx, err := s.GetTransaction(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction for cancellation: %w", err)
	}

	if tx.State != models.PREPARED {
		return nil, storage.ErrTransactionNotCancellable
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for cancellation: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: tx.Id},
		},
		// Canceled transactions are kept, so drop the TTL attribute set
		// at prepare time.
		UpdateExpression:    aws.String("SET #state = :canceled, updated_at = :now REMOVE #ttl"),
		ConditionExpression: aws.String("#state = :prepared"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
			"#ttl":   "ttl",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":canceled": &types.AttributeValueMemberS{Value: string(models.CANCELED)},
			":prepared": &types.AttributeValueMemberS{Value: string(models.PREPARED)},
			":now":      nowAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrTransactionNotCancellable
		}
		return nil, fmt.Errorf("failed to execute cancellation: %w", err)
	}

	var canceled models.Transaction
	if err := attributevalue.UnmarshalMap(result.Attributes, &canceled); err != nil {
		return nil, fmt.Errorf("failed to unmarshal canceled transaction: %w", err)
	}

	return &canceled, nil
}
