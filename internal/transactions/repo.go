package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AryaKS01/Personal-Finance-Tracker/internal/budgets"
)

var ErrNotFound = errors.New("transaction not found")

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// Create inserts the transaction and, for expenses, moves the matching
// budget's running total in the same database transaction. The returned
// AdjustResult is nil when no budget matched the category.
func (r *Repo) Create(ctx context.Context, userID string, t Transaction) (Transaction, *budgets.AdjustResult, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, nil, err
	}
	defer tx.Rollback(ctx)

	var out Transaction
	err = tx.QueryRow(ctx, `
INSERT INTO transactions (user_id, amount, category, type, occurred_on, description)
VALUES ($1::uuid, $2, $3, $4, COALESCE($5, CURRENT_DATE), $6)
RETURNING id::text, user_id::text, amount, category, type, occurred_on, description, created_at
`, userID, t.Amount, t.Category, t.Type, nullDate(t.OccurredOn), t.Description).
		Scan(&out.ID, &out.UserID, &out.Amount, &out.Category, &out.Type, &out.OccurredOn, &out.Description, &out.CreatedAt)
	if err != nil {
		return Transaction{}, nil, err
	}

	var res *budgets.AdjustResult
	if adj, ok := adjustmentForCreate(out); ok {
		res, err = budgets.ApplyDelta(ctx, tx, userID, adj.Category, adj.Delta)
		if err != nil {
			return Transaction{}, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, nil, err
	}
	return out, res, nil
}

// Update applies the patch and reconciles budget totals: the old expense
// contribution is reversed, then the new one applied, all in one database
// transaction so totals never drift from the ledger.
func (r *Repo) Update(ctx context.Context, userID, id string, patch Patch) (Transaction, *budgets.AdjustResult, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, nil, err
	}
	defer tx.Rollback(ctx)

	var old Transaction
	err = tx.QueryRow(ctx, `
SELECT id::text, user_id::text, amount, category, type, occurred_on, description, created_at
FROM transactions
WHERE id = $1::uuid AND user_id = $2::uuid
FOR UPDATE
`, id, userID).Scan(&old.ID, &old.UserID, &old.Amount, &old.Category, &old.Type, &old.OccurredOn, &old.Description, &old.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, nil, ErrNotFound
	}
	if err != nil {
		return Transaction{}, nil, err
	}

	updated := applyPatch(old, patch)

	_, err = tx.Exec(ctx, `
UPDATE transactions
SET amount = $3, category = $4, type = $5, occurred_on = $6, description = $7
WHERE id = $1::uuid AND user_id = $2::uuid
`, id, userID, updated.Amount, updated.Category, updated.Type, updated.OccurredOn, updated.Description)
	if err != nil {
		return Transaction{}, nil, err
	}

	// Reversal first, then reapply; only the reapply can raise an alert.
	var res *budgets.AdjustResult
	for _, adj := range adjustmentsForUpdate(old, updated) {
		applied, err := budgets.ApplyDelta(ctx, tx, userID, adj.Category, adj.Delta)
		if err != nil {
			return Transaction{}, nil, err
		}
		if adj.Delta > 0 {
			res = applied
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, nil, err
	}
	return updated, res, nil
}

// Delete removes the transaction and gives an expense amount back to the
// matching budget. Categories without a budget are a no-op on budget state.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var deleted Transaction
	err = tx.QueryRow(ctx, `
DELETE FROM transactions
WHERE id = $1::uuid AND user_id = $2::uuid
RETURNING amount, category, type
`, id, userID).Scan(&deleted.Amount, &deleted.Category, &deleted.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if adj, ok := adjustmentForDelete(deleted); ok {
		if _, err := budgets.ApplyDelta(ctx, tx, userID, adj.Category, adj.Delta); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) List(ctx context.Context, userID string, f ListFilters) ([]Transaction, error) {
	query := `
SELECT id::text, user_id::text, amount, category, type, occurred_on, description, created_at
FROM transactions
WHERE user_id = $1::uuid`
	args := []any{userID}

	add := func(cond string, val any) {
		args = append(args, val)
		query += fmt.Sprintf(" AND %s $%d", cond, len(args))
	}

	if f.Amount != nil {
		add("amount =", *f.Amount)
	}
	if f.Category != "" {
		add("category ILIKE", "%"+f.Category+"%")
	}
	if f.Date != nil {
		add("occurred_on =", *f.Date)
	}
	if f.Description != "" {
		add("description ILIKE", "%"+f.Description+"%")
	}
	if f.Type != "" {
		add("type =", f.Type)
	}
	query += ` ORDER BY occurred_on DESC, created_at DESC`

	return r.queryMany(ctx, query, args...)
}

func (r *Repo) Recent(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	limit = clampRecentLimit(limit)
	return r.queryMany(ctx, `
SELECT id::text, user_id::text, amount, category, type, occurred_on, description, created_at
FROM transactions
WHERE user_id = $1::uuid
ORDER BY occurred_on DESC, created_at DESC
LIMIT $2
`, userID, limit)
}

func (r *Repo) queryMany(ctx context.Context, query string, args ...any) ([]Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Type, &t.OccurredOn, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// clampRecentLimit defaults a missing limit to 10 and caps it at 100;
// a caller asking for more still gets the cap, not the default.
func clampRecentLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
