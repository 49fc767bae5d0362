package reports

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AryaKS01/Personal-Finance-Tracker/internal/auth"
)

type MonthlyRow struct {
	Year       int   `json:"year"`
	Month      int   `json:"month"`
	Income     int64 `json:"income"`
	Expense    int64 `json:"expense"`
	ProfitLoss int64 `json:"profit_loss"`
}

type CategoryRow struct {
	Type     string `json:"type"` // income or expense
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Count    int64  `json:"count"`
}

type AlertRow struct {
	Category string `json:"category"`
	Limit    int64  `json:"limit"`
	Spent    int64  `json:"spent"`
}

type StatementRow struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

// Reader is the aggregation surface the handlers need; *Store satisfies it.
type Reader interface {
	MonthlySummary(ctx context.Context, userID string) ([]MonthlyRow, error)
	CategorySummary(ctx context.Context, userID string) ([]CategoryRow, error)
	BudgetAlerts(ctx context.Context, userID, month string) ([]AlertRow, error)
	Statement(ctx context.Context, userID, from, to string) ([]StatementRow, error)
}

type Handler struct {
	Store Reader
}

func NewHandler(store Reader) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) MonthlySummary(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	rows, err := h.Store.MonthlySummary(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute monthly summary")
	}
	return c.JSON(fiber.Map{"summary": rows})
}

func (h *Handler) Categories(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	rows, err := h.Store.CategorySummary(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute category summary")
	}
	return c.JSON(fiber.Map{"categories": rows})
}

func (h *Handler) BudgetAlerts(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	month := strings.TrimSpace(c.Query("month"))
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
	}

	rows, err := h.Store.BudgetAlerts(c.UserContext(), userID, month)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute budget alerts")
	}
	return c.JSON(fiber.Map{"alerts": rows})
}

// parseRange reads from/to query params, defaulting to the last 30 days.
func parseRange(c *fiber.Ctx) (string, string, error) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		end := time.Now()
		start := end.AddDate(0, 0, -29)
		from = start.Format("2006-01-02")
		to = end.Format("2006-01-02")
	}

	if _, err := time.Parse("2006-01-02", from); err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
	}
	return from, to, nil
}
