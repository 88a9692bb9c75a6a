package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kuduq/settlement/pkg/api"
	"github.com/kuduq/settlement/pkg/handlers"
	"github.com/kuduq/settlement/pkg/middleware"
	"github.com/kuduq/settlement/pkg/scheduler"
	dynamostore "github.com/kuduq/settlement/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// AWS Session
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

	if tables.Credits == "" || tables.Balances == "" || tables.Lots == "" ||
		tables.Ledger == "" || tables.Transactions == "" || tables.Idempotency == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// SQS Client and Scheduler
	sqsClient := sqs.NewFromConfig(cfg)
	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler := scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	// Create our storage implementation
	store := dynamostore.New(dbClient, sqsScheduler, tables)

	// Create our handler
	handler := handlers.NewApiHandler(store)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics)

	router.Handle("/metrics", promhttp.Handler())

	// Use the generated function to mount our handler on the router
	api.HandlerFromMux(handler, router)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
