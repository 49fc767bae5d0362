package transactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expenseTx(amount int64, category string) Transaction {
	return Transaction{Amount: amount, Category: category, Type: TypeExpense}
}

func incomeTx(amount int64, category string) Transaction {
	return Transaction{Amount: amount, Category: category, Type: TypeIncome}
}

func TestAdjustmentForCreate(t *testing.T) {
	adj, ok := adjustmentForCreate(expenseTx(200, "food"))
	require.True(t, ok)
	assert.Equal(t, Adjustment{Category: "food", Delta: 200}, adj)

	_, ok = adjustmentForCreate(incomeTx(200, "salary"))
	assert.False(t, ok, "income never touches budget totals")
}

func TestAdjustmentForDelete(t *testing.T) {
	adj, ok := adjustmentForDelete(expenseTx(400, "food"))
	require.True(t, ok)
	assert.Equal(t, Adjustment{Category: "food", Delta: -400}, adj)

	_, ok = adjustmentForDelete(incomeTx(400, "salary"))
	assert.False(t, ok)
}

func TestAdjustmentsForUpdateCategoryChange(t *testing.T) {
	// Moving an expense from A to B decrements A and increments B.
	adjs := adjustmentsForUpdate(expenseTx(100, "food"), expenseTx(150, "travel"))
	assert.Equal(t, []Adjustment{
		{Category: "food", Delta: -100},
		{Category: "travel", Delta: 150},
	}, adjs)
}

func TestAdjustmentsForUpdateTypeChange(t *testing.T) {
	// expense -> income: only the reversal remains.
	adjs := adjustmentsForUpdate(expenseTx(100, "food"), incomeTx(100, "food"))
	assert.Equal(t, []Adjustment{{Category: "food", Delta: -100}}, adjs)

	// income -> expense: only the new contribution.
	adjs = adjustmentsForUpdate(incomeTx(100, "food"), expenseTx(100, "food"))
	assert.Equal(t, []Adjustment{{Category: "food", Delta: 100}}, adjs)

	// income -> income: untouched.
	adjs = adjustmentsForUpdate(incomeTx(100, "a"), incomeTx(200, "b"))
	assert.Empty(t, adjs)
}

func TestAdjustmentsForUpdateSameFieldsCancel(t *testing.T) {
	adjs := adjustmentsForUpdate(expenseTx(100, "food"), expenseTx(100, "food"))
	require.Len(t, adjs, 2)
	assert.Equal(t, int64(0), adjs[0].Delta+adjs[1].Delta)
	assert.Equal(t, adjs[0].Category, adjs[1].Category)
}

func TestApplyPatchPartialFields(t *testing.T) {
	base := expenseTx(100, "food")
	newAmount := int64(250)
	got := applyPatch(base, Patch{Amount: &newAmount})
	assert.Equal(t, int64(250), got.Amount)
	assert.Equal(t, "food", got.Category)
	assert.Equal(t, TypeExpense, got.Type)

	newCat := "travel"
	got = applyPatch(base, Patch{Category: &newCat})
	assert.Equal(t, int64(100), got.Amount)
	assert.Equal(t, "travel", got.Category)
}

// TestReplayKeepsTotalsConsistent replays random-ish sequences of ledger
// mutations against an in-memory budget map and checks the running totals
// always equal the recomputed per-category expense sums.
func TestReplayKeepsTotalsConsistent(t *testing.T) {
	totals := map[string]int64{"food": 0, "rent": 0} // categories with budgets
	live := map[string]Transaction{}

	apply := func(adj Adjustment, ok bool) {
		if !ok {
			return
		}
		if _, exists := totals[adj.Category]; !exists {
			return // no budget for this category: no-op
		}
		totals[adj.Category] += adj.Delta
	}

	create := func(id string, tx Transaction) {
		live[id] = tx
		apply(adjustmentForCreate(tx))
	}
	update := func(id string, patch Patch) {
		old := live[id]
		updated := applyPatch(old, patch)
		live[id] = updated
		for _, adj := range adjustmentsForUpdate(old, updated) {
			apply(adj, true)
		}
	}
	remove := func(id string) {
		apply(adjustmentForDelete(live[id]))
		delete(live, id)
	}

	create("t1", expenseTx(200, "food"))
	create("t2", expenseTx(400, "food"))
	create("t3", incomeTx(5000, "salary"))
	create("t4", expenseTx(900, "rent"))
	create("t5", expenseTx(50, "misc")) // no budget

	newCat := "food"
	update("t4", Patch{Category: &newCat}) // rent -> food
	newAmount := int64(150)
	update("t1", Patch{Amount: &newAmount})
	newType := TypeIncome
	update("t2", Patch{Type: &newType}) // expense -> income
	remove("t5")
	remove("t2")

	// Recompute from the surviving ledger.
	recomputed := map[string]int64{"food": 0, "rent": 0}
	for _, tx := range live {
		if tx.Type != TypeExpense {
			continue
		}
		if _, ok := recomputed[tx.Category]; ok {
			recomputed[tx.Category] += tx.Amount
		}
	}

	assert.Equal(t, recomputed, totals)
	assert.Equal(t, int64(150+900), totals["food"])
	assert.Equal(t, int64(0), totals["rent"])
}

func TestClampRecentLimit(t *testing.T) {
	assert.Equal(t, 10, clampRecentLimit(0))
	assert.Equal(t, 10, clampRecentLimit(-5))
	assert.Equal(t, 1, clampRecentLimit(1))
	assert.Equal(t, 100, clampRecentLimit(100))
	assert.Equal(t, 100, clampRecentLimit(101))
	assert.Equal(t, 100, clampRecentLimit(5000))
}
