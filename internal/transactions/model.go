package transactions

import (
	"strings"
	"time"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Transaction struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Amount      int64     `db:"amount" json:"amount"`
	Category    string    `db:"category" json:"category"`
	Type        string    `db:"type" json:"type"`
	OccurredOn  time.Time `db:"occurred_on" json:"occurred_on"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateRequest struct {
	Amount      int64   `json:"amount"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Description *string `json:"description"`
	Date        string  `json:"date"` // YYYY-MM-DD, defaults to today
}

// UpdateRequest patches only the fields present.
type UpdateRequest struct {
	Amount      *int64  `json:"amount"`
	Category    *string `json:"category"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

// Patch is UpdateRequest after handler-side validation and date parsing.
type Patch struct {
	Amount      *int64
	Category    *string
	Type        *string
	Description *string
	Date        *time.Time
}

// ListFilters narrows the ledger listing. Category and Description match
// as case-insensitive substrings, Amount and Date as exact values.
type ListFilters struct {
	Amount      *int64
	Category    string
	Date        *time.Time
	Description string
	Type        string
}

func NormalizeType(t string) string {
	t = strings.TrimSpace(strings.ToLower(t))
	if t == TypeIncome || t == TypeExpense {
		return t
	}
	return ""
}
