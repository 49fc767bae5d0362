package savings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("savings goal not found")
	ErrDuplicateName = errors.New("savings goal name already exists")
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

func (r *Repo) Create(ctx context.Context, userID string, g Goal) (Goal, error) {
	var goalDate any
	if g.GoalDate != nil {
		goalDate = *g.GoalDate
	}

	var out Goal
	err := r.Pool.QueryRow(ctx, `
INSERT INTO savings_goals (user_id, name, target, goal_date, description)
VALUES ($1::uuid, $2, $3, $4, $5)
RETURNING id::text, user_id::text, name, target, total, goal_date, description, created_at
`, userID, g.Name, g.Target, goalDate, g.Description).
		Scan(&out.ID, &out.UserID, &out.Name, &out.Target, &out.Total, &out.GoalDate, &out.Description, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Goal{}, ErrDuplicateName
		}
		return Goal{}, err
	}
	return out, nil
}

func (r *Repo) List(ctx context.Context, userID string) ([]Goal, error) {
	rows, err := r.Pool.Query(ctx, `
SELECT id::text, user_id::text, name, target, total, goal_date, description, created_at
FROM savings_goals
WHERE user_id = $1::uuid
ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Goal, 0)
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Total, &g.GoalDate, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpdateTarget changes the target only; accumulated funds stay.
func (r *Repo) UpdateTarget(ctx context.Context, userID, id string, target int64) (Goal, error) {
	var g Goal
	err := r.Pool.QueryRow(ctx, `
UPDATE savings_goals
SET target = $3
WHERE id = $1::uuid AND user_id = $2::uuid
RETURNING id::text, user_id::text, name, target, total, goal_date, description, created_at
`, id, userID, target).Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Total, &g.GoalDate, &g.Description, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrNotFound
	}
	if err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM savings_goals WHERE id = $1::uuid AND user_id = $2::uuid`, id, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddFund moves the goal's total by amount as a single atomic increment.
func (r *Repo) AddFund(ctx context.Context, userID, id string, amount int64) (Goal, error) {
	var g Goal
	err := r.Pool.QueryRow(ctx, `
UPDATE savings_goals
SET total = total + $3
WHERE id = $1::uuid AND user_id = $2::uuid
RETURNING id::text, user_id::text, name, target, total, goal_date, description, created_at
`, id, userID, amount).Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Total, &g.GoalDate, &g.Description, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrNotFound
	}
	if err != nil {
		return Goal{}, err
	}
	return g, nil
}
