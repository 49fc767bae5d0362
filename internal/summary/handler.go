package summary

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AryaKS01/Personal-Finance-Tracker/internal/auth"
)

type Store interface {
	GetByUser(ctx context.Context, userID, month string) (Summary, error)
}

type Handler struct {
	Store Store
}

func (h Handler) GetSummary(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	month := strings.TrimSpace(c.Query("month")) // YYYY-MM or empty
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
	}

	s, err := h.Store.GetByUser(c.UserContext(), userID, month)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch summary")
	}

	return c.JSON(s)
}
