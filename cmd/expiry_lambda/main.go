package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/kuduq/settlement/pkg/scheduler"
	"github.com/kuduq/settlement/pkg/storage"
	dynamostore "github.com/kuduq/settlement/pkg/storage/dynamodb"
)

var store storage.SweeperStore

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	tables := dynamostore.Tables{
		Credits:      os.Getenv("DYNAMODB_CREDITS_TABLE_NAME"),
		Balances:     os.Getenv("DYNAMODB_BALANCES_TABLE_NAME"),
		Lots:         os.Getenv("DYNAMODB_LOTS_TABLE_NAME"),
		Ledger:       os.Getenv("DYNAMODB_LEDGER_TABLE_NAME"),
		Transactions: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Idempotency:  os.Getenv("DYNAMODB_IDEMPOTENCY_TABLE_NAME"),
	}

	if tables.Transactions == "" {
		log.Fatal("DYNAMODB_TRANSACTIONS_TABLE_NAME environment variable not set")
	}

	// The expiry lambda never prepares transactions, so we pass no scheduler.
	store = dynamostore.New(dbClient, nil, tables)
}

// HandleRequest processes delayed SQS expiry checks. Each message names one
// transaction whose prepare window has elapsed; expiring it is a no-op when
// the transaction was confirmed or canceled in the meantime.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var check scheduler.ExpiryCheckMessage
		if err := json.Unmarshal([]byte(message.Body), &check); err != nil {
			log.Printf("ERROR: failed to unmarshal expiry check from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		expired, err := store.ExpireTransaction(ctx, check.TransactionId)
		if err != nil {
			log.Printf("ERROR: failed to expire transaction %s: %v", check.TransactionId, err)
			return err
		}

		if expired {
			log.Printf("Expired transaction %s", check.TransactionId)
		} else {
			log.Printf("Transaction %s did not need expiry", check.TransactionId)
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
