package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestExpireTransaction(t *testing.T) {
	t.Run("Expires Past Window", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		tx := preparedTx(15000)
		tx.ExpiresAt = time.Now().Add(-time.Minute)
		txAV, _ := attributevalue.MarshalMap(&tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: txAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{}, nil)

		expired, err := store.ExpireTransaction(context.Background(), "tx1")

		assert.NoError(t, err)
		assert.True(t, expired)
		mockClient.AssertExpectations(t)
	})

	t.Run("No-Op Before Window Closes", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		tx := preparedTx(15000)
		txAV, _ := attributevalue.MarshalMap(&tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: txAV}, nil)

		expired, err := store.ExpireTransaction(context.Background(), "tx1")

		assert.NoError(t, err)
		assert.False(t, expired)
		mockClient.AssertExpectations(t)
	})

	t.Run("No-Op On Terminal State", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		tx := preparedTx(15000)
		tx.State = models.CONFIRMED
		txAV, _ := attributevalue.MarshalMap(&tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: txAV}, nil)

		expired, err := store.ExpireTransaction(context.Background(), "tx1")

		assert.NoError(t, err)
		assert.False(t, expired)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Race Is Not An Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		tx := preparedTx(15000)
		tx.ExpiresAt = time.Now().Add(-time.Minute)
		txAV, _ := attributevalue.MarshalMap(&tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: txAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{})

		expired, err := store.ExpireTransaction(context.Background(), "tx1")

		assert.NoError(t, err)
		assert.False(t, expired)
		mockClient.AssertExpectations(t)
	})
}

func TestListExpiredPrepared(t *testing.T) {
	t.Run("Queries The State Index", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		tx := preparedTx(15000)
		tx.ExpiresAt = time.Now().Add(-time.Hour)
		txAV, _ := attributevalue.MarshalMap(&tx)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.IndexName != nil && *input.IndexName == expiredPreparedGSI
		})).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{txAV}}, nil)

		transactions, err := store.ListExpiredPrepared(context.Background(), time.Now())

		assert.NoError(t, err)
		assert.Len(t, transactions, 1)
		assert.Equal(t, "tx1", transactions[0].Id)
		mockClient.AssertExpectations(t)
	})
}
