package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	t.Run("Canonical Names", func(t *testing.T) {
		for _, c := range Categories {
			parsed, ok := ParseCategory(string(c))
			assert.True(t, ok)
			assert.Equal(t, c, parsed)
		}
	})

	t.Run("Case-Insensitive", func(t *testing.T) {
		for _, input := range []string{"food", "FOOD", "fOoD"} {
			parsed, ok := ParseCategory(input)
			assert.True(t, ok)
			assert.Equal(t, CategoryFood, parsed)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		_, ok := ParseCategory("Gambling")
		assert.False(t, ok)
		_, ok = ParseCategory("")
		assert.False(t, ok)
	})
}

func TestBudgetKeyRoundTrip(t *testing.T) {
	key := BudgetKey("student1", CategoryToiletries)
	assert.Equal(t, "STUDENT#student1#CAT#Toiletries", key)

	studentID, category, err := ParseBudgetKey(key)
	assert.NoError(t, err)
	assert.Equal(t, "student1", studentID)
	assert.Equal(t, CategoryToiletries, category)
}

func TestParseBudgetKeyMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"student1#CAT#Food",
		"STUDENT#student1",
		"STUDENT##CAT#Food",
		"STUDENT#student1#CAT#Gambling",
	} {
		_, _, err := ParseBudgetKey(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTransactionTerminal(t *testing.T) {
	for state, terminal := range map[TransactionState]bool{
		PREPARED:  false,
		CONFIRMED: true,
		EXPIRED:   true,
		CANCELED:  true,
	} {
		tx := Transaction{State: state}
		assert.Equal(t, terminal, tx.Terminal(), "state %s", state)
	}
}

func TestBudgetLotRemaining(t *testing.T) {
	lot := BudgetLot{Amount: 10000, Consumed: 4000}
	assert.Equal(t, int64(6000), lot.Remaining())

	exhausted := BudgetLot{Amount: 5000, Consumed: 5000}
	assert.Equal(t, int64(0), exhausted.Remaining())
}
