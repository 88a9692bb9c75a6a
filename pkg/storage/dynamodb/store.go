package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/kuduq/settlement/pkg/scheduler"
	"github.com/kuduq/settlement/pkg/storage"
)

// DynamoDBAPI defines the subset of the DynamoDB client the store depends on.
// It exists so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

const (
	// PrepareExpiryWindow bounds how long a PREPARED transaction may wait for
	// its confirm before expiring. The original backend leaves the window
	// unspecified; five minutes is a conservative, documented choice.
	PrepareExpiryWindow = 5 * time.Minute

	// expiryCheckGrace is added to the SQS delay so the lazy check in confirm
	// wins over the queued check in the common case.
	expiryCheckGrace = 30 * time.Second

	// referenceAttempts bounds how many candidate deposit references are
	// tried before giving up with ErrReferenceCollision.
	referenceAttempts = 5

	// confirmAttempts bounds internal retries when a confirm loses a version
	// race but availability still covers the quote.
	confirmAttempts = 3

	// idempotencyRetention is how long key-to-result records are kept. It is
	// the safe client retry window.
	idempotencyRetention = 24 * time.Hour
)

// sortKeyTimeFormat is a fixed-width RFC3339 variant. Unlike RFC3339Nano it
// never trims trailing zeros, so lexicographic order equals time order.
const sortKeyTimeFormat = "2006-01-02T15:04:05.000000000Z"

// sortKey builds the range key used by the lots and ledger tables. The uuid
// suffix keeps keys unique when two writes land on the same nanosecond.
func sortKey(t time.Time, id string) string {
	return t.UTC().Format(sortKeyTimeFormat) + "#" + id
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                DynamoDBAPI
	Scheduler             scheduler.Scheduler
	CreditsTableName      string
	BalancesTableName     string
	LotsTableName         string
	LedgerTableName       string
	TransactionsTableName string
	IdempotencyTableName  string
}

// Tables carries the table names the store operates on.
type Tables struct {
	Credits      string
	Balances     string
	Lots         string
	Ledger       string
	Transactions string
	Idempotency  string
}

// New creates a new Store. The scheduler may be nil for components that never
// prepare transactions (e.g. the reconciliation job).
func New(client DynamoDBAPI, sched scheduler.Scheduler, tables Tables) *Store {
	return &Store{
		Client:                client,
		Scheduler:             sched,
		CreditsTableName:      tables.Credits,
		BalancesTableName:     tables.Balances,
		LotsTableName:         tables.Lots,
		LedgerTableName:       tables.Ledger,
		TransactionsTableName: tables.Transactions,
		IdempotencyTableName:  tables.Idempotency,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
