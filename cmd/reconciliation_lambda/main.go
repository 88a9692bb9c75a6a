package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage"
	dynamostore "github.com/kuduq/settlement/pkg/storage/dynamodb"
)

var store storage.SweeperStore

// auditConcurrency bounds the parallel ReconcileBudget calls so the sweep
// does not starve the tables' read capacity.
const auditConcurrency = 8

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

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

	store = dynamostore.New(dbClient, nil, tables)
}

// HandleRequest is triggered by an EventBridge Schedule. It backstops the
// SQS-delayed expiry checks by sweeping stale PREPARED transactions, then
// audits the ledger-versus-lots invariant for every budget key.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting sweep of stale prepared transactions...")

	staleTxs, err := store.ListExpiredPrepared(ctx, time.Now())
	if err != nil {
		log.Printf("ERROR: failed to list stale prepared transactions: %v", err)
		return err
	}

	for _, tx := range staleTxs {
		expired, err := store.ExpireTransaction(ctx, tx.Id)
		if err != nil {
			log.Printf("ERROR: failed to expire transaction %s: %v", tx.Id, err)
			// Continue to the next transaction, don't let one failure stop the whole batch.
			continue
		}
		if expired {
			log.Printf("Expired stale transaction %s", tx.Id)
		}
	}

	log.Println("Starting ledger reconciliation audit...")

	budgetKeys, err := store.ListBudgetKeys(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list budget keys: %v", err)
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(auditConcurrency)
	for _, key := range budgetKeys {
		key := key
		g.Go(func() error {
			studentID, category, err := models.ParseBudgetKey(key)
			if err != nil {
				log.Printf("ERROR: skipping unparseable budget key: %v", err)
				return nil
			}

			report, err := store.ReconcileBudget(ctx, studentID, category)
			if err != nil {
				return err
			}

			if !report.Balanced {
				log.Printf("ALERT: budget %s is out of balance: ledger allocated %d, spent %d, lots remaining %d",
					key, report.LedgerAllocated, report.LedgerSpent, report.LotRemaining)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("ERROR: reconciliation audit failed: %v", err)
		return err
	}

	log.Printf("Reconciliation finished: %d transactions swept, %d budgets audited.", len(staleTxs), len(budgetKeys))
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
