package budgets

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("budget not found")
	ErrDuplicateName = errors.New("budget name already exists")
)

// DB is the subset of pgx querying shared by *pgxpool.Pool and pgx.Tx,
// so budget adjustments can run inside a ledger transaction.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// Create inserts a budget with its total seeded from the expense
// transactions already recorded in that category, in one statement.
func (r *Repo) Create(ctx context.Context, userID, name string, limit int64) (Budget, error) {
	var b Budget
	err := r.Pool.QueryRow(ctx, `
INSERT INTO budgets (user_id, name, limit_amount, total)
VALUES ($1::uuid, $2, $3, COALESCE((
    SELECT SUM(amount) FROM transactions
    WHERE user_id = $1::uuid AND category = $2 AND type = 'expense'
), 0))
RETURNING id::text, user_id::text, name, limit_amount, total, created_at
`, userID, name, limit).Scan(&b.ID, &b.UserID, &b.Name, &b.Limit, &b.Total, &b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Budget{}, ErrDuplicateName
		}
		return Budget{}, err
	}
	return b, nil
}

// ApplyDelta atomically moves a budget's running total by delta.
// A category without a budget is a no-op and returns (nil, nil).
func ApplyDelta(ctx context.Context, db DB, userID, category string, delta int64) (*AdjustResult, error) {
	var res AdjustResult
	err := db.QueryRow(ctx, `
UPDATE budgets
SET total = total + $3
WHERE user_id = $1::uuid AND name = $2
RETURNING name, limit_amount, total
`, userID, category, delta).Scan(&res.Category, &res.Limit, &res.Total)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateLimit changes the cap only; the running total is left alone.
func (r *Repo) UpdateLimit(ctx context.Context, userID, id string, limit int64) (Budget, error) {
	var b Budget
	err := r.Pool.QueryRow(ctx, `
UPDATE budgets
SET limit_amount = $3
WHERE id = $1::uuid AND user_id = $2::uuid
RETURNING id::text, user_id::text, name, limit_amount, total, created_at
`, id, userID, limit).Scan(&b.ID, &b.UserID, &b.Name, &b.Limit, &b.Total, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, ErrNotFound
	}
	if err != nil {
		return Budget{}, err
	}
	return b, nil
}

// Delete removes a budget. Transactions keep their category label;
// the weak name link is simply left dangling.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1::uuid AND user_id = $2::uuid`, id, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context, userID string, f ListFilters) ([]Budget, error) {
	query := `
SELECT id::text, user_id::text, name, limit_amount, total, created_at
FROM budgets
WHERE user_id = $1::uuid`
	args := []any{userID}

	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		query += ` AND name ILIKE $2`
	}
	if f.Limit != nil {
		args = append(args, *f.Limit)
		if f.Name != "" {
			query += ` AND limit_amount = $3`
		} else {
			query += ` AND limit_amount = $2`
		}
	}
	query += ` ORDER BY name ASC`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Budget, 0)
	for rows.Next() {
		var b Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Limit, &b.Total, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
