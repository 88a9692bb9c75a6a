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
)

const expiredPreparedGSI = "state-created_at-index"

// ExpireTransaction transitions a PREPARED transaction past its expiry window
// to EXPIRED. It reports whether a transition actually happened: losing the
// race to a confirm, a cancel, or another expiry check is a no-op, not an
// error.
func (s *Store) ExpireTransaction(ctx context.Context, txID string) (bool, error) {
	tx, err := s.GetTransaction(ctx, txID)
	if err != nil {
		return false, fmt.Errorf("failed to get transaction for expiry: %w", err)
	}

	if tx.State != models.PREPARED {
		return false, nil
	}
	if time.Now().Before(tx.ExpiresAt) {
		return false, nil
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return false, fmt.Errorf("failed to marshal timestamp for expiry: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression:    aws.String("SET #state = :expired, updated_at = :now"),
		ConditionExpression: aws.String("#state = :prepared"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expired":  &types.AttributeValueMemberS{Value: string(models.EXPIRED)},
			":prepared": &types.AttributeValueMemberS{Value: string(models.PREPARED)},
			":now":      nowAV,
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return false, nil
		}
		return false, fmt.Errorf("failed to expire transaction: %w", err)
	}

	return true, nil
}

// ListExpiredPrepared retrieves transactions still PREPARED whose expiry time
// passed before asOf. Used by the reconciliation sweep to catch transactions
// whose queued expiry check was lost.
func (s *Store) ListExpiredPrepared(ctx context.Context, asOf time.Time) ([]models.Transaction, error) {
	asOfStr, err := asOf.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expiry cutoff: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(expiredPreparedGSI),
		KeyConditionExpression: aws.String("#state = :state"),
		FilterExpression:       aws.String("expires_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":state":  &types.AttributeValueMemberS{Value: string(models.PREPARED)},
			":cutoff": &types.AttributeValueMemberS{Value: string(asOfStr)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for expired prepared transactions: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal expired prepared transactions: %w", err)
	}

	return transactions, nil
}
