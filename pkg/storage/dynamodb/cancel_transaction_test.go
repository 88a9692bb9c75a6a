package dynamodb

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage"
	"github.com/kuduq/settlement/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCancelTransaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		tx := preparedTx(15000)
		txAV, _ := attributevalue.MarshalMap(&tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: txAV}, nil)

		canceled := tx
		canceled.State = models.CANCELED
		canceled.UpdatedAt = time.Now()
		canceledAV, _ := attributevalue.MarshalMap(&canceled)
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			// Cancellation drops the prepare-time TTL along with the
			// state transition.
			return strings.Contains(*input.UpdateExpression, "REMOVE #ttl") &&
				input.ExpressionAttributeNames["#ttl"] == "ttl"
		})).Once().Return(&dynamodb.UpdateItemOutput{Attributes: canceledAV}, nil)

		result, err := store.CancelTransaction(context.Background(), "tx1")

		assert.NoError(t, err)
		assert.Equal(t, models.CANCELED, result.State)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Confirmed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		tx := preparedTx(15000)
		tx.State = models.CONFIRMED
		txAV, _ := attributevalue.MarshalMap(&tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: txAV}, nil)

		_, err := store.CancelTransaction(context.Background(), "tx1")

		assert.ErrorIs(t, err, storage.ErrTransactionNotCancellable)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Race To Confirm", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		tx := preparedTx(15000)
		txAV, _ := attributevalue.MarshalMap(&tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: txAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.CancelTransaction(context.Background(), "tx1")

		assert.ErrorIs(t, err, storage.ErrTransactionNotCancellable)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.CancelTransaction(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}
