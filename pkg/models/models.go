package models

import (
	"fmt"
	"strings"
	"time"
)

// CreditStatus defines the possible states of a sponsor's EFT deposit.
type CreditStatus string

const (
	CREDIT_NEW       CreditStatus = "NEW"
	CREDIT_ALLOCATED CreditStatus = "ALLOCATED"
	CREDIT_REJECTED  CreditStatus = "REJECTED"
)

// TransactionState defines the possible states of a spend transaction.
type TransactionState string

const (
	PREPARED  TransactionState = "PREPARED"
	CONFIRMED TransactionState = "CONFIRMED"
	EXPIRED   TransactionState = "EXPIRED"
	CANCELED  TransactionState = "CANCELED"
)

// Category is one of the canonical spend categories budgets are allocated to.
type Category string

const (
	CategoryFood       Category = "Food"
	CategoryTransport  Category = "Transport"
	CategoryBooks      Category = "Books"
	CategoryClothing   Category = "Clothing"
	CategoryToiletries Category = "Toiletries"
	CategoryAirtime    Category = "Airtime"
)

// Categories lists every recognized category in canonical capitalization.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryBooks,
	CategoryClothing,
	CategoryToiletries,
	CategoryAirtime,
}

// ParseCategory resolves a case-insensitive category name to its canonical form.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// BudgetKey is the partition key shared by a (student, category) pair's lots
// and ledger entries.
func BudgetKey(studentID string, category Category) string {
	return fmt.Sprintf("STUDENT#%s#CAT#%s", studentID, category)
}

// ParseBudgetKey splits a budget key back into its (student, category) pair.
func ParseBudgetKey(key string) (studentID string, category Category, err error) {
	rest, ok := strings.CutPrefix(key, "STUDENT#")
	if !ok {
		return "", "", fmt.Errorf("malformed budget key %q", key)
	}
	studentID, rawCategory, ok := strings.Cut(rest, "#CAT#")
	if !ok || studentID == "" {
		return "", "", fmt.Errorf("malformed budget key %q", key)
	}
	category, ok = ParseCategory(rawCategory)
	if !ok {
		return "", "", fmt.Errorf("budget key %q has unknown category %q", key, rawCategory)
	}
	return studentID, category, nil
}

// SponsorCredit represents a single EFT deposit notified by a sponsor.
// Status only moves forward: NEW -> ALLOCATED or NEW -> REJECTED.
type SponsorCredit struct {
	Id             string       `dynamodbav:"id"`
	SponsorId      string       `dynamodbav:"sponsor_id"`
	Amount         int64        `dynamodbav:"amount"`
	ApprovedAmount int64        `dynamodbav:"approved_amount,omitempty"`
	Status         CreditStatus `dynamodbav:"status"`
	Reference      string       `dynamodbav:"reference"`
	Notes          string       `dynamodbav:"notes,omitempty"`
	Reason         string       `dynamodbav:"reason,omitempty"`
	IdempotencyKey string       `dynamodbav:"idempotency_key,omitempty"`
	CreatedAt      time.Time    `dynamodbav:"created_at"`
	DecidedAt      *time.Time   `dynamodbav:"decided_at,omitempty"`
}

// SponsorBalance tracks a sponsor's running approved and allocated totals.
// Available is maintained as its own attribute (always Approved - Allocated)
// so the allocate path can guard it with a plain `available >= :total`
// condition expression; it can never go negative.
type SponsorBalance struct {
	SponsorId string    `dynamodbav:"sponsor_id"`
	Approved  int64     `dynamodbav:"approved"`
	Allocated int64     `dynamodbav:"allocated"`
	Available int64     `dynamodbav:"available"`
	Version   int64     `dynamodbav:"version"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
}

// BudgetLot is one allocation of sponsor credit to a (student, category)
// pair. Immutable once created except for Consumed, which only grows and
// never exceeds Amount. Lots are consumed oldest-first.
type BudgetLot struct {
	Id           string    `dynamodbav:"id"`
	BudgetKey    string    `dynamodbav:"budget_key"`
	CreatedAtId  string    `dynamodbav:"created_at_id"`
	AllocationId string    `dynamodbav:"allocation_id"`
	SponsorId    string    `dynamodbav:"sponsor_id"`
	StudentId    string    `dynamodbav:"student_id"`
	Category     Category  `dynamodbav:"category"`
	Amount       int64     `dynamodbav:"amount"`
	Consumed     int64     `dynamodbav:"consumed"`
	Version      int64     `dynamodbav:"version"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
}

// Remaining returns the unconsumed portion of the lot.
func (l *BudgetLot) Remaining() int64 {
	return l.Amount - l.Consumed
}

// LedgerEntryType distinguishes allocation credits from spend debits.
type LedgerEntryType string

const (
	ALLOCATION LedgerEntryType = "ALLOCATION"
	SPEND      LedgerEntryType = "SPEND"
)

// LedgerEntry is a single append-only entry in the budget ledger. For any
// budget key, the sum of ALLOCATION amounts minus SPEND amounts must equal
// the remaining amount across that key's lots.
type LedgerEntry struct {
	EntryID       string          `dynamodbav:"entry_id"`
	BudgetKey     string          `dynamodbav:"budget_key"`
	CreatedAtId   string          `dynamodbav:"created_at_id"`
	StudentId     string          `dynamodbav:"student_id"`
	Category      Category        `dynamodbav:"category"`
	EntryType     LedgerEntryType `dynamodbav:"entry_type"`
	Amount        int64           `dynamodbav:"amount"`
	SponsorId     string          `dynamodbav:"sponsor_id,omitempty"`
	TransactionID string          `dynamodbav:"transaction_id,omitempty"`
	Description   string          `dynamodbav:"description"`
	Timestamp     time.Time       `dynamodbav:"timestamp"`
}

// Transaction represents a student's two-phase spend against a category
// budget. Prepare quotes the covered amount; confirm consumes lots and makes
// the transaction terminal.
type Transaction struct {
	Id              string           `dynamodbav:"id"`
	StudentId       string           `dynamodbav:"student_id"`
	MerchantId      string           `dynamodbav:"merchant_id"`
	Category        Category         `dynamodbav:"category"`
	AmountRequested int64            `dynamodbav:"amount_requested"`
	AmountCovered   int64            `dynamodbav:"amount_covered"`
	AmountShortfall int64            `dynamodbav:"amount_shortfall"`
	State           TransactionState `dynamodbav:"state"`
	IdempotencyKey  string           `dynamodbav:"idempotency_key"`
	ConfirmKey      string           `dynamodbav:"confirm_key,omitempty"`
	CreatedAt       time.Time        `dynamodbav:"created_at"`
	UpdatedAt       time.Time        `dynamodbav:"updated_at"`
	ExpiresAt       time.Time        `dynamodbav:"expires_at"`
	ConfirmedAt     *time.Time       `dynamodbav:"confirmed_at,omitempty"`
	TTL             int64            `dynamodbav:"ttl,omitempty"`
}

// Terminal reports whether the transaction can no longer change state.
func (t *Transaction) Terminal() bool {
	return t.State == CONFIRMED || t.State == EXPIRED || t.State == CANCELED
}

// BudgetSummary is the per-category read view of a student's budget.
type BudgetSummary struct {
	Category  Category `dynamodbav:"category"`
	Allocated int64    `dynamodbav:"allocated"`
	Used      int64    `dynamodbav:"used"`
	Available int64    `dynamodbav:"available"`
}

// IdempotencyRecord maps a caller-supplied idempotency key to the resource it
// created. Records carry a TTL so DynamoDB reclaims them once the retry
// window has passed.
type IdempotencyRecord struct {
	Key        string    `dynamodbav:"key"`
	Scope      string    `dynamodbav:"scope"`
	ResourceID string    `dynamodbav:"resource_id"`
	CreatedAt  time.Time `dynamodbav:"created_at"`
	TTL        int64     `dynamodbav:"ttl,omitempty"`
}

// ReconciliationReport compares a budget key's ledger sums against its lot
// state.
type ReconciliationReport struct {
	StudentId       string   `json:"student_id"`
	Category        Category `json:"category"`
	LedgerAllocated int64    `json:"ledger_allocated"`
	LedgerSpent     int64    `json:"ledger_spent"`
	LotRemaining    int64    `json:"lot_remaining"`
	Balanced        bool     `json:"balanced"`
}
