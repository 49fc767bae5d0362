package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

// MonthlySummary recomputes per-month totals from the ledger on every call.
func (s *Store) MonthlySummary(ctx context.Context, userID string) ([]MonthlyRow, error) {
	rows, err := s.Pool.Query(ctx, `
SELECT EXTRACT(YEAR FROM occurred_on)::int AS year,
       EXTRACT(MONTH FROM occurred_on)::int AS month,
       COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0)::bigint AS income,
       COALESCE(SUM(CASE WHEN type = 'expense' THEN amount END), 0)::bigint AS expense
FROM transactions
WHERE user_id = $1::uuid
GROUP BY 1, 2
ORDER BY 1 DESC, 2 DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MonthlyRow, 0)
	for rows.Next() {
		var r MonthlyRow
		if err := rows.Scan(&r.Year, &r.Month, &r.Income, &r.Expense); err != nil {
			return nil, err
		}
		r.ProfitLoss = r.Income - r.Expense
		out = append(out, r)
	}
	return out, rows.Err()
}

// CategorySummary totals every (type, category) pair seen in the ledger.
func (s *Store) CategorySummary(ctx context.Context, userID string) ([]CategoryRow, error) {
	rows, err := s.Pool.Query(ctx, `
SELECT type, category, SUM(amount)::bigint AS total, COUNT(*)::bigint AS count
FROM transactions
WHERE user_id = $1::uuid
GROUP BY type, category
ORDER BY total DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategoryRow, 0)
	for rows.Next() {
		var r CategoryRow
		if err := rows.Scan(&r.Type, &r.Category, &r.Total, &r.Count); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// BudgetAlerts recomputes spent per budget straight from the ledger rather
// than trusting the denormalized running total, so a drifted total can
// never hide an overspent category. Month (YYYY-MM) optionally narrows the
// spent window.
func (s *Store) BudgetAlerts(ctx context.Context, userID, month string) ([]AlertRow, error) {
	query := `
SELECT b.name, b.limit_amount, COALESCE(SUM(t.amount), 0)::bigint AS spent
FROM budgets b
LEFT JOIN transactions t
  ON t.user_id = b.user_id
 AND t.category = b.name
 AND t.type = 'expense'`
	args := []any{userID}
	if month != "" {
		args = append(args, month)
		query += `
 AND to_char(t.occurred_on, 'YYYY-MM') = $2`
	}
	query += `
WHERE b.user_id = $1::uuid
GROUP BY b.id, b.name, b.limit_amount
HAVING COALESCE(SUM(t.amount), 0) > b.limit_amount
ORDER BY spent DESC`

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AlertRow, 0)
	for rows.Next() {
		var r AlertRow
		if err := rows.Scan(&r.Category, &r.Limit, &r.Spent); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Statement lists transactions in a date range, newest first, for exports.
func (s *Store) Statement(ctx context.Context, userID, from, to string) ([]StatementRow, error) {
	rows, err := s.Pool.Query(ctx, `
SELECT id::text, type, category, amount, occurred_on::text, COALESCE(description, '')
FROM transactions
WHERE user_id = $1::uuid AND occurred_on BETWEEN $2::date AND $3::date
ORDER BY occurred_on DESC, created_at DESC
LIMIT 2000
`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StatementRow, 0)
	for rows.Next() {
		var r StatementRow
		if err := rows.Scan(&r.ID, &r.Type, &r.Category, &r.Amount, &r.Date, &r.Description); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
