package summary

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

type Repo struct {
	Pool *pgxpool.Pool
}

type Summary struct {
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	Net          int64 `json:"net"`
}

// GetByUser sums income and expense for the user, optionally scoped to a
// YYYY-MM month. The two aggregates are independent reads and run
// concurrently.
func (r Repo) GetByUser(ctx context.Context, userID, month string) (Summary, error) {
	var income, expense int64

	sumFor := func(typ string, dest *int64) func() error {
		return func() error {
			if month != "" {
				return r.Pool.QueryRow(ctx, `
SELECT COALESCE(SUM(amount), 0)::bigint
FROM transactions
WHERE user_id = $1::uuid
  AND type = $2
  AND to_char(occurred_on, 'YYYY-MM') = $3
`, userID, typ, month).Scan(dest)
			}
			return r.Pool.QueryRow(ctx, `
SELECT COALESCE(SUM(amount), 0)::bigint
FROM transactions
WHERE user_id = $1::uuid AND type = $2
`, userID, typ).Scan(dest)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(sumFor("income", &income))
	g.Go(sumFor("expense", &expense))
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          income - expense,
	}, nil
}
