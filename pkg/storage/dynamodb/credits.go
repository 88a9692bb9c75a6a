package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage"
)

// referencePrefix brands deposit references so sponsors can recognize them on
// bank statements.
const referencePrefix = "KDQ-"

// newReferenceCandidate derives a short uppercase reference from a fresh uuid.
func newReferenceCandidate() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return referencePrefix + raw[:10]
}

// RequestDepositReference generates a deposit reference unique across all
// sponsors. Uniqueness is enforced by a conditional put; on collision a fresh
// candidate is tried, bounded by referenceAttempts.
func (s *Store) RequestDepositReference(ctx context.Context, sponsorID string) (string, error) {
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		candidate := newReferenceCandidate()

		err := s.claimKey(ctx, scopeReference, candidate, sponsorID)
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, errIdempotencyKeyClaimed) {
			continue
		}
		return "", fmt.Errorf("failed to register deposit reference: %w", err)
	}

	return "", storage.ErrReferenceCollision
}

// CreateDeposit records a pending EFT deposit notification.
func (s *Store) CreateDeposit(ctx context.Context, deposit *models.SponsorCredit) (*models.SponsorCredit, error) {
	if deposit.Amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}

	deposit.Id = uuid.New().String()
	deposit.Status = models.CREDIT_NEW
	deposit.CreatedAt = time.Now()

	depositAV, err := attributevalue.MarshalMap(deposit)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deposit: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.CreditsTableName),
		Item:                depositAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create deposit in DynamoDB: %w", err)
	}

	return deposit, nil
}

// GetDeposit retrieves a deposit from DynamoDB by its ID.
func (s *Store) GetDeposit(ctx context.Context, depositID string) (*models.SponsorCredit, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": depositID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deposit ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.CreditsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("deposit %s: %w", depositID, storage.ErrNotFound)
	}

	var deposit models.SponsorCredit
	if err := attributevalue.UnmarshalMap(result.Item, &deposit); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deposit: %w", err)
	}

	return &deposit, nil
}

// ApproveDeposit atomically transitions a deposit NEW -> ALLOCATED and credits
// the sponsor's balance with the approved amount, which may be less than the
// notified amount. Replaying the same idempotency key against the
// already-approved deposit returns the prior result.
func (s *Store) ApproveDeposit(ctx context.Context, depositID string, approvedAmount int64, idempotencyKey string) (*models.SponsorCredit, error) {
	deposit, err := s.GetDeposit(ctx, depositID)
	if err != nil {
		return nil, err
	}

	if deposit.Status != models.CREDIT_NEW {
		return s.replayOrAlreadyDecided(ctx, deposit, idempotencyKey)
	}

	if approvedAmount <= 0 || approvedAmount > deposit.Amount {
		return nil, storage.ErrInvalidAmount
	}

	// The balance row must exist before the arithmetic credit below.
	if _, err := s.ensureSponsorBalance(ctx, deposit.SponsorId); err != nil {
		return nil, fmt.Errorf("failed to load sponsor balance for approval: %w", err)
	}

	now := time.Now()
	idemPut, err := s.putIdempotencyRecord(scopeApprove, idempotencyKey, depositID, now)
	if err != nil {
		return nil, err
	}

	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for approval: %w", err)
	}
	amountAV, err := attributevalue.Marshal(approvedAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal approved amount: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Decide the deposit.
				Update: &types.Update{
					TableName: aws.String(s.CreditsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: depositID},
					},
					UpdateExpression:    aws.String("SET #status = :allocated, approved_amount = :amount, idempotency_key = :key, decided_at = :now"),
					ConditionExpression: aws.String("#status = :new"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":allocated": &types.AttributeValueMemberS{Value: string(models.CREDIT_ALLOCATED)},
						":new":       &types.AttributeValueMemberS{Value: string(models.CREDIT_NEW)},
						":amount":    amountAV,
						":key":       &types.AttributeValueMemberS{Value: idempotencyKey},
						":now":       nowAV,
					},
				},
			},
			{
				// Operation 2: Credit the sponsor's balance.
				Update: &types.Update{
					TableName: aws.String(s.BalancesTableName),
					Key: map[string]types.AttributeValue{
						"sponsor_id": &types.AttributeValueMemberS{Value: deposit.SponsorId},
					},
					// Crediting is unconditional arithmetic; the deposit's
					// own status condition serializes the decision.
					UpdateExpression: aws.String("SET approved = approved + :amount, available = available + :amount, version = version + :inc, updated_at = :now"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
						":inc":    &types.AttributeValueMemberN{Value: "1"},
						":now":    nowAV,
					},
				},
			},
			{
				// Operation 3: Claim the idempotency key.
				Put: idemPut,
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 0 {
			// The deposit condition failing means a concurrent decision won.
			if tce.CancellationReasons[0].Code != nil && *tce.CancellationReasons[0].Code == "ConditionalCheckFailed" {
				decided, getErr := s.GetDeposit(ctx, depositID)
				if getErr != nil {
					return nil, getErr
				}
				return s.replayOrAlreadyDecided(ctx, decided, idempotencyKey)
			}
		}
		return nil, fmt.Errorf("failed to execute approval transaction: %w", err)
	}

	deposit.Status = models.CREDIT_ALLOCATED
	deposit.ApprovedAmount = approvedAmount
	deposit.IdempotencyKey = idempotencyKey
	deposit.DecidedAt = &now
	return deposit, nil
}

// replayOrAlreadyDecided distinguishes an idempotent replay of a prior
// approval from a genuine conflicting decision.
func (s *Store) replayOrAlreadyDecided(ctx context.Context, deposit *models.SponsorCredit, idempotencyKey string) (*models.SponsorCredit, error) {
	if deposit.Status == models.CREDIT_ALLOCATED && idempotencyKey != "" && deposit.IdempotencyKey == idempotencyKey {
		return deposit, nil
	}
	return nil, storage.ErrAlreadyDecided
}

// RejectDeposit transitions a deposit NEW -> REJECTED.
func (s *Store) RejectDeposit(ctx context.Context, depositID, reason string) (*models.SponsorCredit, error) {
	current, err := s.GetDeposit(ctx, depositID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.CREDIT_NEW {
		return nil, storage.ErrAlreadyDecided
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for rejection: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.CreditsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: depositID},
		},
		UpdateExpression:    aws.String("SET #status = :rejected, reason = :reason, decided_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :new"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rejected": &types.AttributeValueMemberS{Value: string(models.CREDIT_REJECTED)},
			":new":      &types.AttributeValueMemberS{Value: string(models.CREDIT_NEW)},
			":reason":   &types.AttributeValueMemberS{Value: reason},
			":now":      nowAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrAlreadyDecided
		}
		return nil, fmt.Errorf("failed to reject deposit: %w", err)
	}

	var deposit models.SponsorCredit
	if err := attributevalue.UnmarshalMap(result.Attributes, &deposit); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rejected deposit: %w", err)
	}

	return &deposit, nil
}

// GetSponsorBalance retrieves a sponsor's balance. A sponsor with no approved
// deposits yet has a zero balance.
func (s *Store) GetSponsorBalance(ctx context.Context, sponsorID string) (*models.SponsorBalance, error) {
	balance, _, err := s.getSponsorBalanceItem(ctx, sponsorID)
	return balance, err
}

// getSponsorBalanceItem reports whether the balance item actually exists;
// callers that only read treat a missing item as a zero balance.
func (s *Store) getSponsorBalanceItem(ctx context.Context, sponsorID string) (*models.SponsorBalance, bool, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"sponsor_id": sponsorID})
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal sponsor ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.BalancesTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get sponsor balance from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return &models.SponsorBalance{SponsorId: sponsorID, Version: 1}, false, nil
	}

	var balance models.SponsorBalance
	if err := attributevalue.UnmarshalMap(result.Item, &balance); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal sponsor balance: %w", err)
	}

	return &balance, true, nil
}

// ensureSponsorBalance makes sure the sponsor's balance item exists so later
// arithmetic updates have attributes to add to, then returns its current state.
func (s *Store) ensureSponsorBalance(ctx context.Context, sponsorID string) (*models.SponsorBalance, error) {
	balance, found, err := s.getSponsorBalanceItem(ctx, sponsorID)
	if err != nil {
		return nil, err
	}
	if found {
		return balance, nil
	}

	seed := models.SponsorBalance{
		SponsorId: sponsorID,
		Version:   1,
		UpdatedAt: time.Now(),
	}
	seedAV, err := attributevalue.MarshalMap(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sponsor balance seed: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.BalancesTableName),
		Item:                seedAV,
		ConditionExpression: aws.String("attribute_not_exists(sponsor_id)"),
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// Lost a seed race; the item exists now.
			return s.GetSponsorBalance(ctx, sponsorID)
		}
		return nil, fmt.Errorf("failed to seed sponsor balance: %w", err)
	}

	return &seed, nil
}
