package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kuduq/settlement/pkg/api"
	"github.com/kuduq/settlement/pkg/models"
	"github.com/kuduq/settlement/pkg/storage"
	"github.com/kuduq/settlement/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	assert.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
}

func TestPrepareTransaction(t *testing.T) {
	prepareReq := api.PrepareTransactionRequest{
		AmountCents:    40000,
		Category:       "Food",
		MerchantId:     "merchant1",
		IdempotencyKey: "prep-1",
	}
	preparedTx := &models.Transaction{
		Id:              "tx1",
		StudentId:       "student1",
		MerchantId:      "merchant1",
		Category:        models.CategoryFood,
		AmountRequested: 40000,
		AmountCovered:   15000,
		AmountShortfall: 25000,
		State:           models.PREPARED,
		ExpiresAt:       time.Now().Add(5 * time.Minute),
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("PrepareTransaction", mock.Anything, mock.Anything).Return(preparedTx, nil)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student1/transactions/prepare", prepareReq)
		rr := httptest.NewRecorder()

		h.PrepareTransaction(rr, req, "student1")

		assert.Equal(t, http.StatusCreated, rr.Code)

		var returned api.Transaction
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "tx1", returned.Id)
		assert.Equal(t, int64(15000), returned.AmountCoveredCents)
		assert.Equal(t, int64(25000), returned.AmountShortfallCents)
		assert.Equal(t, api.PREPARED, returned.State)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Zero Availability", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("PrepareTransaction", mock.Anything, mock.Anything).Return(nil, storage.ErrZeroAvailability)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student1/transactions/prepare", prepareReq)
		rr := httptest.NewRecorder()

		h.PrepareTransaction(rr, req, "student1")

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Missing Idempotency Key", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage)

		bad := prepareReq
		bad.IdempotencyKey = ""
		req := postJSON(t, "/students/student1/transactions/prepare", bad)
		rr := httptest.NewRecorder()

		h.PrepareTransaction(rr, req, "student1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		// Storage must not be reached on a validation failure.
	})

	t.Run("Bad Request - Invalid JSON", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage)

		req := httptest.NewRequest(http.MethodPost, "/students/student1/transactions/prepare", strings.NewReader("not-json"))
		rr := httptest.NewRecorder()

		h.PrepareTransaction(rr, req, "student1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Generic Storage Failure", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("PrepareTransaction", mock.Anything, mock.Anything).Return(nil, errors.New("something went wrong"))

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student1/transactions/prepare", prepareReq)
		rr := httptest.NewRecorder()

		h.PrepareTransaction(rr, req, "student1")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestConfirmTransaction(t *testing.T) {
	confirmReq := api.ConfirmTransactionRequest{IdempotencyKey: "conf-1"}
	ownedTx := &models.Transaction{Id: "tx1", StudentId: "student1", State: models.PREPARED}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(ownedTx, nil)

		confirmed := *ownedTx
		confirmed.State = models.CONFIRMED
		confirmed.AmountCovered = 15000
		mockStorage.On("ConfirmTransaction", mock.Anything, "tx1", "conf-1").
			Return(&storage.ConfirmResult{Transaction: &confirmed}, nil)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student1/transactions/tx1/confirm", confirmReq)
		rr := httptest.NewRecorder()

		h.ConfirmTransaction(rr, req, "student1", "tx1")

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Transaction
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, api.CONFIRMED, returned.State)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Reconfirm Required", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(ownedTx, nil)

		revised := *ownedTx
		revised.AmountCovered = 6000
		mockStorage.On("ConfirmTransaction", mock.Anything, "tx1", "conf-1").
			Return(&storage.ConfirmResult{Transaction: &revised, ReconfirmRequired: true}, nil)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student1/transactions/tx1/confirm", confirmReq)
		rr := httptest.NewRecorder()

		h.ConfirmTransaction(rr, req, "student1", "tx1")

		assert.Equal(t, http.StatusConflict, rr.Code)

		var conflict api.ConfirmConflict
		json.Unmarshal(rr.Body.Bytes(), &conflict)
		assert.True(t, conflict.ReconfirmRequired)
		assert.Equal(t, int64(6000), conflict.Transaction.AmountCoveredCents)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Expired", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(ownedTx, nil)
		mockStorage.On("ConfirmTransaction", mock.Anything, "tx1", "conf-1").
			Return(nil, storage.ErrTransactionExpired)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student1/transactions/tx1/confirm", confirmReq)
		rr := httptest.NewRecorder()

		h.ConfirmTransaction(rr, req, "student1", "tx1")

		assert.Equal(t, http.StatusGone, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Wrong Student Gets Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(ownedTx, nil)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student2/transactions/tx1/confirm", confirmReq)
		rr := httptest.NewRecorder()

		h.ConfirmTransaction(rr, req, "student2", "tx1")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStorage.AssertNotCalled(t, "ConfirmTransaction", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCancelTransaction(t *testing.T) {
	ownedTx := &models.Transaction{Id: "tx1", StudentId: "student1", State: models.PREPARED}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(ownedTx, nil)

		canceled := *ownedTx
		canceled.State = models.CANCELED
		mockStorage.On("CancelTransaction", mock.Anything, "tx1").Return(&canceled, nil)

		h := NewApiHandler(mockStorage)

		req := httptest.NewRequest(http.MethodPost, "/students/student1/transactions/tx1/cancel", nil)
		rr := httptest.NewRecorder()

		h.CancelTransaction(rr, req, "student1", "tx1")

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not Cancellable", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(ownedTx, nil)
		mockStorage.On("CancelTransaction", mock.Anything, "tx1").Return(nil, storage.ErrTransactionNotCancellable)

		h := NewApiHandler(mockStorage)

		req := httptest.NewRequest(http.MethodPost, "/students/student1/transactions/tx1/cancel", nil)
		rr := httptest.NewRecorder()

		h.CancelTransaction(rr, req, "student1", "tx1")

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestCanPay(t *testing.T) {
	t.Run("Affordable", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAvailableBudget", mock.Anything, "student1", models.CategoryFood).Return(int64(50000), nil)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student1/can-pay", api.CanPayRequest{AmountCents: 40000, Category: "food"})
		rr := httptest.NewRecorder()

		h.CanPay(rr, req, "student1")

		assert.Equal(t, http.StatusOK, rr.Code)

		var result api.CanPayResult
		json.Unmarshal(rr.Body.Bytes(), &result)
		assert.True(t, result.Result)
		assert.Equal(t, int64(50000), result.AvailableCents)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not Affordable", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAvailableBudget", mock.Anything, "student1", models.CategoryFood).Return(int64(10000), nil)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student1/can-pay", api.CanPayRequest{AmountCents: 40000, Category: "Food"})
		rr := httptest.NewRecorder()

		h.CanPay(rr, req, "student1")

		assert.Equal(t, http.StatusOK, rr.Code)

		var result api.CanPayResult
		json.Unmarshal(rr.Body.Bytes(), &result)
		assert.False(t, result.Result)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student1/can-pay", api.CanPayRequest{AmountCents: 100, Category: "Gambling"})
		rr := httptest.NewRecorder()

		h.CanPay(rr, req, "student1")

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Non-Positive Amount", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/students/student1/can-pay", api.CanPayRequest{AmountCents: 0, Category: "Food"})
		rr := httptest.NewRecorder()

		h.CanPay(rr, req, "student1")

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestApproveEftDeposit(t *testing.T) {
	approveReq := api.ApproveEftDepositRequest{ApprovedAmountCents: 80000, IdempotencyKey: "appr-1"}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		approved := int64(80000)
		credit := &models.SponsorCredit{Id: "dep1", SponsorId: "sponsor1", Amount: 100000, ApprovedAmount: approved, Status: models.CREDIT_ALLOCATED}
		mockStorage.On("ApproveDeposit", mock.Anything, "dep1", int64(80000), "appr-1").Return(credit, nil)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/deposits/dep1/approve", approveReq)
		rr := httptest.NewRecorder()

		h.ApproveEftDeposit(rr, req, "dep1")

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.EftDeposit
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, api.ALLOCATED, returned.Status)
		assert.NotNil(t, returned.ApprovedAmountCents)
		assert.Equal(t, approved, *returned.ApprovedAmountCents)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Already Decided", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ApproveDeposit", mock.Anything, "dep1", int64(80000), "appr-1").
			Return(nil, storage.ErrAlreadyDecided)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/deposits/dep1/approve", approveReq)
		rr := httptest.NewRecorder()

		h.ApproveEftDeposit(rr, req, "dep1")

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestAllocateBudgets(t *testing.T) {
	allocateReq := api.AllocateBudgetsRequest{
		IdempotencyKey: "alloc-1",
		Allocations: []api.BudgetAllocation{
			{Category: "Food", AmountCents: 60000},
			{Category: "Books", AmountCents: 20000},
		},
	}

	t.Run("Success Returns Budget Summary", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		lots := []models.BudgetLot{{Id: "lot1"}, {Id: "lot2"}}
		mockStorage.On("AllocateBudgets", mock.Anything, "sponsor1", "student1", mock.Anything, "alloc-1").Return(lots, nil)
		summaries := []models.BudgetSummary{
			{Category: models.CategoryBooks, Allocated: 20000, Available: 20000},
			{Category: models.CategoryFood, Allocated: 60000, Available: 60000},
		}
		mockStorage.On("ListBudgets", mock.Anything, "student1").Return(summaries, nil)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/sponsors/sponsor1/students/student1/budgets", allocateReq)
		rr := httptest.NewRecorder()

		h.AllocateBudgets(rr, req, "sponsor1", "student1")

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned []api.BudgetSummary
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Len(t, returned, 2)
		assert.Equal(t, int64(60000), returned[1].AllocatedCents)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Insufficient Credits", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("AllocateBudgets", mock.Anything, "sponsor1", "student1", mock.Anything, "alloc-1").
			Return(nil, storage.ErrInsufficientCredits)

		h := NewApiHandler(mockStorage)

		req := postJSON(t, "/sponsors/sponsor1/students/student1/budgets", allocateReq)
		rr := httptest.NewRecorder()

		h.AllocateBudgets(rr, req, "sponsor1", "student1")

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Empty Allocations", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage)

		bad := allocateReq
		bad.Allocations = nil
		req := postJSON(t, "/sponsors/sponsor1/students/student1/budgets", bad)
		rr := httptest.NewRecorder()

		h.AllocateBudgets(rr, req, "sponsor1", "student1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListStudentTransactions(t *testing.T) {
	t.Run("Clamps Limit And Forwards Cursor", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		next := "opaque-token"
		page := &storage.TransactionPage{
			Transactions: []models.Transaction{{Id: "tx1", StudentId: "student1", State: models.CONFIRMED}},
			NextCursor:   next,
		}
		mockStorage.On("ListTransactionsByStudent", mock.Anything, "student1", mock.Anything, int32(100), "abc").Return(page, nil)

		h := NewApiHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/students/student1/transactions", nil)
		rr := httptest.NewRecorder()

		limit := int32(500)
		cursor := "abc"
		h.ListStudentTransactions(rr, req, "student1", api.ListStudentTransactionsParams{Limit: &limit, Cursor: &cursor})

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.TransactionPage
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Len(t, returned.Transactions, 1)
		assert.NotNil(t, returned.NextCursor)
		assert.Equal(t, next, *returned.NextCursor)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown Category Filter", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/students/student1/transactions?category=Gambling", nil)
		rr := httptest.NewRecorder()

		bad := "Gambling"
		h.ListStudentTransactions(rr, req, "student1", api.ListStudentTransactionsParams{Category: &bad})

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestListLedgerEntries(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		entries := []models.LedgerEntry{
			{EntryID: "e1", EntryType: models.SPEND, Amount: 15000, Category: models.CategoryFood},
		}
		mockStorage.On("ListLedgerEntries", mock.Anything, "student1", models.CategoryFood, int32(50)).Return(entries, nil)

		h := NewApiHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/students/student1/ledger?category=Food", nil)
		rr := httptest.NewRecorder()

		h.ListLedgerEntries(rr, req, "student1", api.ListLedgerEntriesParams{Category: "Food"})

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned []api.LedgerEntry
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Len(t, returned, 1)
		assert.Equal(t, api.SPEND, returned[0].EntryType)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/students/student1/ledger?category=Gambling", nil)
		rr := httptest.NewRecorder()

		h.ListLedgerEntries(rr, req, "student1", api.ListLedgerEntriesParams{Category: "Gambling"})

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestGetPing(t *testing.T) {
	h := NewApiHandler(new(mocks.Storage))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()

	h.GetPing(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pong")
}
