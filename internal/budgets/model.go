package budgets

import "time"

type Budget struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Limit     int64     `db:"limit_amount" json:"limit"`
	Total     int64     `db:"total" json:"total"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Exceeded reports whether spending has gone strictly past the cap.
// A budget exactly at its limit is not exceeded.
func (b Budget) Exceeded() bool {
	return b.Total > b.Limit
}

// AlertMessage is the user-facing limit warning for a category.
func AlertMessage(name string) string {
	return "Budget limit exceeded for '" + name + "'"
}

type CreateRequest struct {
	Name  string `json:"name"`
	Limit int64  `json:"limit"`
}

type UpdateRequest struct {
	Limit int64 `json:"limit"`
}

// ListFilters narrows the budgets listing. Name matches as a
// case-insensitive substring, Limit as an exact value.
type ListFilters struct {
	Name  string
	Limit *int64
}

// AdjustResult reports the state of a budget after a running-total change.
type AdjustResult struct {
	Category string `json:"category"`
	Limit    int64  `json:"limit"`
	Total    int64  `json:"total"`
}

func (r AdjustResult) Exceeded() bool {
	return r.Total > r.Limit
}
