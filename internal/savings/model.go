package savings

import "time"

// Goal is a savings target the user funds incrementally.
type Goal struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	Name        string     `db:"name" json:"name"`
	Target      int64      `db:"target" json:"target"`
	Total       int64      `db:"total" json:"total"`
	GoalDate    *time.Time `db:"goal_date" json:"goal_date,omitempty"`
	Description *string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// Reached reports whether the goal is fully funded.
func (g Goal) Reached() bool {
	return g.Total >= g.Target
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Target      int64   `json:"target"`
	Date        string  `json:"date"` // YYYY-MM-DD, optional
	Description *string `json:"description"`
}

type UpdateRequest struct {
	Target int64 `json:"target"`
}

type FundRequest struct {
	Amount int64 `json:"amount"`
}
