package dynamodb

import "github.com/kuduq/settlement/pkg/models"

// lotDraw is a planned consumption against a single lot.
type lotDraw struct {
	Lot  models.BudgetLot
	Take int64
}

// availableAmount sums the unconsumed remainder across lots.
func availableAmount(lots []models.BudgetLot) int64 {
	var available int64
	for _, lot := range lots {
		available += lot.Remaining()
	}
	return available
}

// planConsumption walks lots in the order given (oldest first, as returned by
// the lots query) and plans draws until amount is covered. The caller must
// have verified that the lots can cover the amount.
func planConsumption(lots []models.BudgetLot, amount int64) []lotDraw {
	var draws []lotDraw
	remaining := amount
	for _, lot := range lots {
		if remaining <= 0 {
			break
		}
		take := lot.Remaining()
		if take <= 0 {
			continue
		}
		if take > remaining {
			take = remaining
		}
		draws = append(draws, lotDraw{Lot: lot, Take: take})
		remaining -= take
	}
	return draws
}
