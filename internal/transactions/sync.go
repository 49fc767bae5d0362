package transactions

// Adjustment is a budget running-total delta implied by a ledger mutation.
// Deltas target the budget whose name equals the category, same user.
type Adjustment struct {
	Category string
	Delta    int64
}

// adjustmentForCreate: a new expense adds its amount to the matching budget.
func adjustmentForCreate(t Transaction) (Adjustment, bool) {
	if t.Type != TypeExpense {
		return Adjustment{}, false
	}
	return Adjustment{Category: t.Category, Delta: t.Amount}, true
}

// adjustmentForDelete: removing an expense gives its amount back.
func adjustmentForDelete(t Transaction) (Adjustment, bool) {
	if t.Type != TypeExpense {
		return Adjustment{}, false
	}
	return Adjustment{Category: t.Category, Delta: -t.Amount}, true
}

// adjustmentsForUpdate reverses the old expense contribution and applies
// the new one. Both steps are needed because amount, category, or type may
// all have changed; when nothing relevant changed the two deltas cancel.
// The returned order matters: reversal first, then reapply.
func adjustmentsForUpdate(oldTx, newTx Transaction) []Adjustment {
	var out []Adjustment
	if adj, ok := adjustmentForDelete(oldTx); ok {
		out = append(out, adj)
	}
	if adj, ok := adjustmentForCreate(newTx); ok {
		out = append(out, adj)
	}
	return out
}

// applyPatch builds the updated transaction from the fields present in patch.
// Amount/category/type are assumed validated by the caller.
func applyPatch(t Transaction, patch Patch) Transaction {
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Description != nil {
		t.Description = patch.Description
	}
	if patch.Date != nil {
		t.OccurredOn = *patch.Date
	}
	return t
}
