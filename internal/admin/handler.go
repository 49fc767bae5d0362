package admin

import (
	"crypto/subtle"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	Pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{Pool: pool}
}

// RequireAdminAPIKey gates admin routes on the X-Admin-Key header matching
// ADMIN_API_KEY. An unset key rejects everything rather than leaving the
// surface open.
func RequireAdminAPIKey() fiber.Handler {
	key := strings.TrimSpace(os.Getenv("ADMIN_API_KEY"))

	return func(c *fiber.Ctx) error {
		if key == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "ADMIN_API_KEY not set")
		}
		got := strings.TrimSpace(c.Get("X-Admin-Key"))
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid admin key")
		}
		return c.Next()
	}
}

type latestUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type latestTx struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type OverviewResponse struct {
	UsersTotal        int64        `json:"users_total"`
	TransactionsTotal int64        `json:"transactions_total"`
	BudgetsTotal      int64        `json:"budgets_total"`
	GoalsTotal        int64        `json:"goals_total"`
	LatestUsers       []latestUser `json:"latest_users"`
	LatestTx          []latestTx   `json:"latest_transactions"`
}

func (h *Handler) Overview(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var resp OverviewResponse

	// totals
	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&resp.UsersTotal); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed users_total: "+err.Error())
	}
	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&resp.TransactionsTotal); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed transactions_total: "+err.Error())
	}
	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM budgets`).Scan(&resp.BudgetsTotal); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed budgets_total: "+err.Error())
	}
	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM savings_goals`).Scan(&resp.GoalsTotal); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed goals_total: "+err.Error())
	}

	// latest users
	{
		rows, err := h.Pool.Query(ctx, `
			SELECT id::text, email, created_at::text
			FROM users
			ORDER BY created_at DESC
			LIMIT 20`)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed latest_users: "+err.Error())
		}
		defer rows.Close()

		for rows.Next() {
			var u latestUser
			if err := rows.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed scan latest_users: "+err.Error())
			}
			resp.LatestUsers = append(resp.LatestUsers, u)
		}
		if err := rows.Err(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed latest_users rows: "+err.Error())
		}
	}

	// latest transactions across all users
	{
		rows, err := h.Pool.Query(ctx, `
			SELECT id::text, user_id::text, type, category, amount, created_at::text
			FROM transactions
			ORDER BY created_at DESC
			LIMIT 20`)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed latest_transactions: "+err.Error())
		}
		defer rows.Close()

		for rows.Next() {
			var t latestTx
			if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Amount, &t.CreatedAt); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed scan latest_transactions: "+err.Error())
			}
			resp.LatestTx = append(resp.LatestTx, t)
		}
		if err := rows.Err(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed latest_transactions rows: "+err.Error())
		}
	}

	return c.JSON(resp)
}

type auditRow struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id,omitempty"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id,omitempty"`
	IP         string `json:"ip,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// AuditTrail returns the most recent audit log entries, optionally
// filtered by action.
func (h *Handler) AuditTrail(c *fiber.Ctx) error {
	ctx := c.UserContext()

	query := `
		SELECT id::text, COALESCE(user_id::text, ''), action, entity_type,
		       COALESCE(entity_id::text, ''), COALESCE(ip, ''), created_at::text
		FROM audit_logs`
	args := []any{}
	if action := c.Query("action"); action != "" {
		query += ` WHERE action = $1`
		args = append(args, action)
	}
	query += `
		ORDER BY created_at DESC
		LIMIT 100`

	rows, err := h.Pool.Query(ctx, query, args...)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed audit_logs: "+err.Error())
	}
	defer rows.Close()

	out := make([]auditRow, 0)
	for rows.Next() {
		var r auditRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Action, &r.EntityType, &r.EntityID, &r.IP, &r.CreatedAt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed scan audit_logs: "+err.Error())
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed audit_logs rows: "+err.Error())
	}

	return c.JSON(fiber.Map{"entries": out})
}
