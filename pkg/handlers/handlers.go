package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kuduq/settlement/pkg/api"
	"github.com/kuduq/settlement/pkg/mapping"
	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage"
)

const (
	defaultTransactionPageSize = 25
	maxTransactionPageSize     = 100
	defaultLedgerPageSize      = 50
)

// ApiHandler implements the generated server interface.
// It holds our application's dependencies, including the storage layer.
type ApiHandler struct {
	Store storage.ApiStore
}

// NewApiHandler creates a new ApiHandler with a storage dependency.
func NewApiHandler(store storage.ApiStore) *ApiHandler {
	return &ApiHandler{Store: store}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// GetPing handles the health check.
func (h *ApiHandler) GetPing(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, api.Ping{Message: "pong"})
}

// RequestDepositReference issues a globally unique EFT deposit reference.
func (h *ApiHandler) RequestDepositReference(w http.ResponseWriter, r *http.Request, sponsorId string) {
	reference, err := h.Store.RequestDepositReference(r.Context(), sponsorId)
	if err != nil {
		respondStorageError(w, r, "Failed to issue deposit reference", err)
		return
	}

	respondJSON(w, http.StatusCreated, api.DepositReference{Reference: reference})
}

// NotifyEftDeposit records an incoming EFT deposit as a pending credit.
func (h *ApiHandler) NotifyEftDeposit(w http.ResponseWriter, r *http.Request, sponsorId string) {
	var newDeposit api.NewEftDeposit
	if err := json.NewDecoder(r.Body).Decode(&newDeposit); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	credit := mapping.ToDomainNewDeposit(sponsorId, &newDeposit)

	created, err := h.Store.CreateDeposit(r.Context(), credit)
	if err != nil {
		respondStorageError(w, r, "Failed to record deposit", err)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiDeposit(created))
}

// GetSponsorBalance returns a sponsor's approved/allocated/available totals.
func (h *ApiHandler) GetSponsorBalance(w http.ResponseWriter, r *http.Request, sponsorId string) {
	balance, err := h.Store.GetSponsorBalance(r.Context(), sponsorId)
	if err != nil {
		respondStorageError(w, r, "Failed to retrieve sponsor balance", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiBalance(balance))
}

// ApproveEftDeposit approves a pending deposit, possibly for a smaller amount
// than was notified.
func (h *ApiHandler) ApproveEftDeposit(w http.ResponseWriter, r *http.Request, depositId string) {
	var req api.ApproveEftDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.IdempotencyKey == "" {
		respondError(w, http.StatusBadRequest, "idempotency_key is required")
		return
	}

	credit, err := h.Store.ApproveDeposit(r.Context(), depositId, req.ApprovedAmountCents, req.IdempotencyKey)
	if err != nil {
		respondStorageError(w, r, "Failed to approve deposit", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiDeposit(credit))
}

// RejectEftDeposit rejects a pending deposit.
func (h *ApiHandler) RejectEftDeposit(w http.ResponseWriter, r *http.Request, depositId string) {
	var req api.RejectEftDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	credit, err := h.Store.RejectDeposit(r.Context(), depositId, req.Reason)
	if err != nil {
		respondStorageError(w, r, "Failed to reject deposit", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiDeposit(credit))
}

// AllocateBudgets converts sponsor credit into per-category budget lots for a
// student. The batch is all-or-nothing.
func (h *ApiHandler) AllocateBudgets(w http.ResponseWriter, r *http.Request, sponsorId string, studentId string) {
	var req api.AllocateBudgetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.IdempotencyKey == "" {
		respondError(w, http.StatusBadRequest, "idempotency_key is required")
		return
	}
	if len(req.Allocations) == 0 {
		respondError(w, http.StatusBadRequest, "allocations must not be empty")
		return
	}

	requests := make([]storage.AllocationRequest, len(req.Allocations))
	for i, a := range req.Allocations {
		requests[i] = storage.AllocationRequest{
			Category: models.Category(a.Category),
			Amount:   a.AmountCents,
		}
	}

	if _, err := h.Store.AllocateBudgets(r.Context(), sponsorId, studentId, requests, req.IdempotencyKey); err != nil {
		respondStorageError(w, r, "Failed to allocate budgets", err)
		return
	}

	summaries, err := h.Store.ListBudgets(r.Context(), studentId)
	if err != nil {
		respondStorageError(w, r, "Failed to retrieve budgets after allocation", err)
		return
	}

	respondJSON(w, http.StatusOK, toApiBudgetSummaries(summaries))
}

// GetStudentBudgets returns a student's per-category budget summary.
func (h *ApiHandler) GetStudentBudgets(w http.ResponseWriter, r *http.Request, studentId string) {
	summaries, err := h.Store.ListBudgets(r.Context(), studentId)
	if err != nil {
		respondStorageError(w, r, "Failed to retrieve budgets", err)
		return
	}

	respondJSON(w, http.StatusOK, toApiBudgetSummaries(summaries))
}

// CanPay is a read-only affordability probe. A positive result is not a
// reservation and can be invalidated by a concurrent spend.
func (h *ApiHandler) CanPay(w http.ResponseWriter, r *http.Request, studentId string) {
	var req api.CanPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.AmountCents <= 0 {
		respondError(w, http.StatusUnprocessableEntity, "amount_cents must be positive")
		return
	}

	category, ok := models.ParseCategory(req.Category)
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Unknown category: %s", req.Category))
		return
	}

	available, err := h.Store.GetAvailableBudget(r.Context(), studentId, category)
	if err != nil {
		respondStorageError(w, r, "Failed to check budget availability", err)
		return
	}

	respondJSON(w, http.StatusOK, api.CanPayResult{
		Result:         available >= req.AmountCents,
		AvailableCents: available,
	})
}

// PrepareTransaction quotes how much of a requested spend the student's
// budget can cover right now.
func (h *ApiHandler) PrepareTransaction(w http.ResponseWriter, r *http.Request, studentId string) {
	var req api.PrepareTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.IdempotencyKey == "" {
		respondError(w, http.StatusBadRequest, "idempotency_key is required")
		return
	}
	if req.MerchantId == "" {
		respondError(w, http.StatusBadRequest, "merchant_id is required")
		return
	}

	tx := &models.Transaction{
		StudentId:       studentId,
		MerchantId:      req.MerchantId,
		Category:        models.Category(req.Category),
		AmountRequested: req.AmountCents,
		IdempotencyKey:  req.IdempotencyKey,
	}

	prepared, err := h.Store.PrepareTransaction(r.Context(), tx)
	if err != nil {
		respondStorageError(w, r, "Failed to prepare transaction", err)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiTransaction(prepared))
}

// ConfirmTransaction settles a prepared transaction against the student's
// budget lots.
func (h *ApiHandler) ConfirmTransaction(w http.ResponseWriter, r *http.Request, studentId string, txId string) {
	var req api.ConfirmTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.IdempotencyKey == "" {
		respondError(w, http.StatusBadRequest, "idempotency_key is required")
		return
	}

	if !h.transactionBelongsTo(w, r, studentId, txId) {
		return
	}

	result, err := h.Store.ConfirmTransaction(r.Context(), txId, req.IdempotencyKey)
	if err != nil {
		respondStorageError(w, r, "Failed to confirm transaction", err)
		return
	}

	if result.ReconfirmRequired {
		respondJSON(w, http.StatusConflict, api.ConfirmConflict{
			ReconfirmRequired: true,
			Transaction:       *mapping.ToApiTransaction(result.Transaction),
		})
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiTransaction(result.Transaction))
}

// CancelTransaction aborts a prepared transaction.
func (h *ApiHandler) CancelTransaction(w http.ResponseWriter, r *http.Request, studentId string, txId string) {
	if !h.transactionBelongsTo(w, r, studentId, txId) {
		return
	}

	canceled, err := h.Store.CancelTransaction(r.Context(), txId)
	if err != nil {
		respondStorageError(w, r, "Failed to cancel transaction", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiTransaction(canceled))
}

// ListStudentTransactions returns a student's transactions newest first, with
// an opaque cursor for the next page.
func (h *ApiHandler) ListStudentTransactions(w http.ResponseWriter, r *http.Request, studentId string, params api.ListStudentTransactionsParams) {
	var filter storage.TransactionFilter
	if params.Category != nil {
		category, ok := models.ParseCategory(*params.Category)
		if !ok {
			respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Unknown category: %s", *params.Category))
			return
		}
		filter.Category = &category
	}
	if params.MerchantId != nil {
		filter.MerchantId = *params.MerchantId
	}

	limit := int32(defaultTransactionPageSize)
	if params.Limit != nil && *params.Limit > 0 {
		limit = min(*params.Limit, maxTransactionPageSize)
	}

	cursor := ""
	if params.Cursor != nil {
		cursor = *params.Cursor
	}

	page, err := h.Store.ListTransactionsByStudent(r.Context(), studentId, filter, limit, cursor)
	if err != nil {
		respondStorageError(w, r, "Failed to retrieve transactions", err)
		return
	}

	apiPage := api.TransactionPage{
		Transactions: make([]api.Transaction, len(page.Transactions)),
	}
	for i, tx := range page.Transactions {
		apiPage.Transactions[i] = *mapping.ToApiTransaction(&tx)
	}
	if page.NextCursor != "" {
		apiPage.NextCursor = &page.NextCursor
	}

	respondJSON(w, http.StatusOK, apiPage)
}

// ListLedgerEntries returns a student's ledger entries for one category,
// newest first.
func (h *ApiHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request, studentId string, params api.ListLedgerEntriesParams) {
	category, ok := models.ParseCategory(params.Category)
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Unknown category: %s", params.Category))
		return
	}

	limit := int32(defaultLedgerPageSize)
	if params.Limit != nil && *params.Limit > 0 {
		limit = *params.Limit
	}

	entries, err := h.Store.ListLedgerEntries(r.Context(), studentId, category, limit)
	if err != nil {
		respondStorageError(w, r, "Failed to retrieve ledger entries", err)
		return
	}

	apiEntries := make([]api.LedgerEntry, len(entries))
	for i, entry := range entries {
		apiEntries[i] = *mapping.ToApiLedgerEntry(&entry)
	}

	respondJSON(w, http.StatusOK, apiEntries)
}

// transactionBelongsTo verifies the path's student owns the transaction. It
// writes the error response and returns false when the check fails.
func (h *ApiHandler) transactionBelongsTo(w http.ResponseWriter, r *http.Request, studentId, txId string) bool {
	tx, err := h.Store.GetTransaction(r.Context(), txId)
	if err != nil {
		respondStorageError(w, r, "Failed to retrieve transaction", err)
		return false
	}
	if tx.StudentId != studentId {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Transaction %s not found", txId))
		return false
	}
	return true
}

func toApiBudgetSummaries(summaries []models.BudgetSummary) []api.BudgetSummary {
	apiSummaries := make([]api.BudgetSummary, len(summaries))
	for i, summary := range summaries {
		apiSummaries[i] = *mapping.ToApiBudgetSummary(&summary)
	}
	return apiSummaries
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, api.Error{Error: message})
}

// respondStorageError maps the storage layer's sentinel errors onto HTTP
// statuses. Anything unrecognized is a 500.
func respondStorageError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidAmount),
		errors.Is(err, storage.ErrUnknownCategory),
		errors.Is(err, storage.ErrZeroAvailability):
		respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("%s: %v", message, err))
	case errors.Is(err, storage.ErrInsufficientCredits),
		errors.Is(err, storage.ErrAlreadyDecided),
		errors.Is(err, storage.ErrTransactionNotCancellable),
		errors.Is(err, storage.ErrReferenceCollision):
		respondError(w, http.StatusConflict, fmt.Sprintf("%s: %v", message, err))
	case errors.Is(err, storage.ErrTransactionExpired):
		respondError(w, http.StatusGone, fmt.Sprintf("%s: %v", message, err))
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf("%s: %v", message, err))
	default:
		slog.ErrorContext(r.Context(), "storage operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, message)
	}
}
