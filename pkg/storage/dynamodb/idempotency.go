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

// Idempotency record scopes. A key is only ever replayed within the scope of
// the operation that first claimed it.
const (
	scopeApprove   = "deposit-approve"
	scopeAllocate  = "allocation"
	scopePrepare   = "prepare"
	scopeReference = "reference"
)

// errIdempotencyKeyClaimed signals that a conditional put lost the race for a key.
var errIdempotencyKeyClaimed = errors.New("idempotency key already claimed")

// idempotencyKeyName namespaces keys per scope so the same client key cannot
// collide across operations.
func idempotencyKeyName(scope, key string) string {
	return scope + "#" + key
}

// putIdempotencyRecord builds the conditional Put that claims an idempotency
// key, for use inside a TransactWriteItems call.
func (s *Store) putIdempotencyRecord(scope, key, resourceID string, now time.Time) (*types.Put, error) {
	record := models.IdempotencyRecord{
		Key:        idempotencyKeyName(scope, key),
		Scope:      scope,
		ResourceID: resourceID,
		CreatedAt:  now,
		TTL:        now.Add(idempotencyRetention).Unix(),
	}

	recordAV, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal idempotency record: %w", err)
	}

	return &types.Put{
		TableName:           aws.String(s.IdempotencyTableName),
		Item:                recordAV,
		ConditionExpression: aws.String("attribute_not_exists(#k)"),
		ExpressionAttributeNames: map[string]string{
			"#k": "key",
		},
	}, nil
}

// claimKey attempts to claim a key directly (outside a transaction). Used for
// deposit reference uniqueness.
func (s *Store) claimKey(ctx context.Context, scope, key, resourceID string) error {
	put, err := s.putIdempotencyRecord(scope, key, resourceID, time.Now())
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                put.TableName,
		Item:                     put.Item,
		ConditionExpression:      put.ConditionExpression,
		ExpressionAttributeNames: put.ExpressionAttributeNames,
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return errIdempotencyKeyClaimed
		}
		return fmt.Errorf("failed to claim key: %w", err)
	}

	return nil
}

// getIdempotencyRecord looks up a previously claimed key. Returns nil when
// the key has never been claimed in this scope.
func (s *Store) getIdempotencyRecord(ctx context.Context, scope, key string) (*models.IdempotencyRecord, error) {
	keyAV, err := attributevalue.MarshalMap(map[string]string{"key": idempotencyKeyName(scope, key)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal idempotency key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.IdempotencyTableName),
		Key:       keyAV,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency record: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var record models.IdempotencyRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency record: %w", err)
	}

	return &record, nil
}
