package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage"
	"github.com/kuduq/settlement/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAllocateBudgets(t *testing.T) {
	requests := []storage.AllocationRequest{
		{Category: models.CategoryFood, Amount: 60000},
		{Category: models.CategoryBooks, Amount: 20000},
	}
	balance := &models.SponsorBalance{SponsorId: "sponsor1", Approved: 100000, Allocated: 0, Available: 100000, Version: 2}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		balanceAV, _ := attributevalue.MarshalMap(balance)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			// Balance debit, idempotency claim, then a lot and a ledger
			// entry per requested category.
			return len(input.TransactItems) == 2+2*len(requests)
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		lots, err := store.AllocateBudgets(context.Background(), "sponsor1", "student1", requests, "alloc-1")

		assert.NoError(t, err)
		assert.Len(t, lots, 2)
		assert.Equal(t, models.CategoryFood, lots[0].Category)
		assert.Equal(t, int64(60000), lots[0].Amount)
		assert.Equal(t, int64(0), lots[0].Consumed)
		assert.Equal(t, models.BudgetKey("student1", models.CategoryFood), lots[0].BudgetKey)
		assert.Equal(t, lots[0].AllocationId, lots[1].AllocationId)
		mockClient.AssertExpectations(t)
	})

	t.Run("Balance Debit Does Not Check Version", func(t *testing.T) {
		// A deposit approval landing between the balance read and the
		// allocation write bumps the version; the debit must still go
		// through as long as availability covers the batch.
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		balanceAV, _ := attributevalue.MarshalMap(balance)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			debit := input.TransactItems[0].Update
			if debit == nil || debit.ConditionExpression == nil {
				return false
			}
			_, hasVersion := debit.ExpressionAttributeValues[":version"]
			return *debit.ConditionExpression == "available >= :total" && !hasVersion
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		_, err := store.AllocateBudgets(context.Background(), "sponsor1", "student1", requests, "alloc-1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Empty Request", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		_, err := store.AllocateBudgets(context.Background(), "sponsor1", "student1", nil, "alloc-1")

		assert.ErrorIs(t, err, storage.ErrInvalidAmount)
		mockClient.AssertExpectations(t)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		bad := []storage.AllocationRequest{{Category: "Gambling", Amount: 1000}}
		_, err := store.AllocateBudgets(context.Background(), "sponsor1", "student1", bad, "alloc-1")

		assert.ErrorIs(t, err, storage.ErrUnknownCategory)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Credits Pre-Check", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		low := &models.SponsorBalance{SponsorId: "sponsor1", Approved: 50000, Allocated: 0, Available: 50000, Version: 1}
		lowAV, _ := attributevalue.MarshalMap(low)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: lowAV}, nil)

		_, err := store.AllocateBudgets(context.Background(), "sponsor1", "student1", requests, "alloc-1")

		assert.ErrorIs(t, err, storage.ErrInsufficientCredits)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Credits On Conditional Failure", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		balanceAV, _ := attributevalue.MarshalMap(balance)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)

		reasons := []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().
			Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		_, err := store.AllocateBudgets(context.Background(), "sponsor1", "student1", requests, "alloc-1")

		assert.ErrorIs(t, err, storage.ErrInsufficientCredits)
		mockClient.AssertExpectations(t)
	})

	t.Run("Idempotent Replay", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		record := models.IdempotencyRecord{Key: "allocation#alloc-1", Scope: "allocation", ResourceID: "alloc-id-1"}
		recordAV, _ := attributevalue.MarshalMap(&record)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: recordAV}, nil)

		existing := models.BudgetLot{Id: "lot1", AllocationId: "alloc-id-1", Category: models.CategoryFood, Amount: 60000}
		existingAV, _ := attributevalue.MarshalMap(&existing)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.IndexName != nil && *input.IndexName == allocationGSI
		})).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{existingAV}}, nil)

		lots, err := store.AllocateBudgets(context.Background(), "sponsor1", "student1", requests, "alloc-1")

		assert.NoError(t, err)
		assert.Len(t, lots, 1)
		assert.Equal(t, "lot1", lots[0].Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Concurrent Replay Wins Key Claim", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		balanceAV, _ := attributevalue.MarshalMap(balance)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)

		reasons := []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().
			Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		record := models.IdempotencyRecord{Key: "allocation#alloc-1", Scope: "allocation", ResourceID: "alloc-id-9"}
		recordAV, _ := attributevalue.MarshalMap(&record)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: recordAV}, nil)

		existing := models.BudgetLot{Id: "lot9", AllocationId: "alloc-id-9", Category: models.CategoryFood, Amount: 60000}
		existingAV, _ := attributevalue.MarshalMap(&existing)
		mockClient.On("Query", mock.Anything, mock.Anything).Once().
			Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{existingAV}}, nil)

		lots, err := store.AllocateBudgets(context.Background(), "sponsor1", "student1", requests, "alloc-1")

		assert.NoError(t, err)
		assert.Len(t, lots, 1)
		assert.Equal(t, "lot9", lots[0].Id)
		mockClient.AssertExpectations(t)
	})
}
