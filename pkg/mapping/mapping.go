package mapping

import (
	"github.com/kuduq/settlement/pkg/api"
	"github.com/kuduq/settlement/pkg/models"
)

// ToApiDeposit converts a domain SponsorCredit model to an API EftDeposit model.
func ToApiDeposit(credit *models.SponsorCredit) *api.EftDeposit {
	deposit := &api.EftDeposit{
		Id:          credit.Id,
		SponsorId:   credit.SponsorId,
		AmountCents: credit.Amount,
		Status:      api.EftDepositStatus(credit.Status),
		Reference:   credit.Reference,
		CreatedAt:   credit.CreatedAt,
		DecidedAt:   credit.DecidedAt,
	}
	if credit.ApprovedAmount != 0 {
		deposit.ApprovedAmountCents = &credit.ApprovedAmount
	}
	if credit.Notes != "" {
		deposit.Notes = &credit.Notes
	}
	if credit.Reason != "" {
		deposit.Reason = &credit.Reason
	}
	return deposit
}

// ToDomainNewDeposit converts an API NewEftDeposit model to a domain SponsorCredit model.
func ToDomainNewDeposit(sponsorID string, newDeposit *api.NewEftDeposit) *models.SponsorCredit {
	credit := &models.SponsorCredit{
		SponsorId: sponsorID,
		Amount:    newDeposit.AmountCents,
		Reference: newDeposit.Reference,
	}
	if newDeposit.Notes != nil {
		credit.Notes = *newDeposit.Notes
	}
	return credit
}

// ToApiBalance converts a domain SponsorBalance model to an API SponsorBalance model.
func ToApiBalance(balance *models.SponsorBalance) *api.SponsorBalance {
	return &api.SponsorBalance{
		SponsorId:      balance.SponsorId,
		ApprovedCents:  balance.Approved,
		AllocatedCents: balance.Allocated,
		AvailableCents: balance.Available,
	}
}

// ToApiBudgetSummary converts a domain BudgetSummary model to an API BudgetSummary model.
func ToApiBudgetSummary(summary *models.BudgetSummary) *api.BudgetSummary {
	return &api.BudgetSummary{
		Category:       string(summary.Category),
		AllocatedCents: summary.Allocated,
		UsedCents:      summary.Used,
		AvailableCents: summary.Available,
	}
}

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:                   tx.Id,
		StudentId:            tx.StudentId,
		MerchantId:           tx.MerchantId,
		Category:             string(tx.Category),
		AmountRequestedCents: tx.AmountRequested,
		AmountCoveredCents:   tx.AmountCovered,
		AmountShortfallCents: tx.AmountShortfall,
		State:                api.TransactionState(tx.State),
		CreatedAt:            tx.CreatedAt,
		UpdatedAt:            tx.UpdatedAt,
		ConfirmedAt:          tx.ConfirmedAt,
		ExpiresAt:            tx.ExpiresAt,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	apiEntry := &api.LedgerEntry{
		EntryId:     entry.EntryID,
		StudentId:   entry.StudentId,
		Category:    string(entry.Category),
		EntryType:   api.LedgerEntryEntryType(entry.EntryType),
		AmountCents: entry.Amount,
		Description: entry.Description,
		Timestamp:   entry.Timestamp,
	}
	if entry.SponsorId != "" {
		apiEntry.SponsorId = &entry.SponsorId
	}
	if entry.TransactionID != "" {
		apiEntry.TransactionId = &entry.TransactionID
	}
	return apiEntry
}
