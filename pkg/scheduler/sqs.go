package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSAPI defines the subset of the SQS client used by the scheduler.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// maxSQSDelay is the longest delay SQS supports on a single message. Longer
// expiry windows would need a re-enqueue hop; the reconciliation sweep covers
// that case anyway.
const maxSQSDelay = 15 * time.Minute

// SQSScheduler implements the Scheduler interface using AWS SQS delayed messages.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Scheduler = (*SQSScheduler)(nil)

// ScheduleExpiryCheck sends the expiry check to an SQS queue with a delivery delay.
func (s *SQSScheduler) ScheduleExpiryCheck(ctx context.Context, txID string, delay time.Duration) error {
	if delay < 0 {
		delay = 0
	}
	if delay > maxSQSDelay {
		delay = maxSQSDelay
	}

	msg := ExpiryCheckMessage{
		TransactionId: txID,
		ScheduledAt:   time.Now(),
	}

	// Marshal the message to JSON.
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal expiry check for SQS: %w", err)
	}

	// Send the message to SQS.
	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
	})

	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
