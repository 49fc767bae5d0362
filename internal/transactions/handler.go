package transactions

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AryaKS01/Personal-Finance-Tracker/internal/auth"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/budgets"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/money"
)

const dateLayout = "2006-01-02"

// Store is what the handler needs from persistence; *Repo satisfies it.
type Store interface {
	Create(ctx context.Context, userID string, t Transaction) (Transaction, *budgets.AdjustResult, error)
	Update(ctx context.Context, userID, id string, patch Patch) (Transaction, *budgets.AdjustResult, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, f ListFilters) ([]Transaction, error)
	Recent(ctx context.Context, userID string, limit int) ([]Transaction, error)
}

type Handler struct {
	Store Store

	// Audit, when set, records mutations best-effort (wired in main).
	Audit func(c *fiber.Ctx, userID, action, entityID string)
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

type transactionResponse struct {
	Transaction Transaction `json:"transaction"`
	Alert       string      `json:"alert,omitempty"`
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "category required")
	}
	typ := NormalizeType(req.Type)
	if typ == "" {
		return fiber.NewError(fiber.StatusBadRequest, "type must be income or expense")
	}
	if req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}

	t := Transaction{
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        typ,
		Description: req.Description,
	}
	if strings.TrimSpace(req.Date) != "" {
		d, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		t.OccurredOn = d
	}

	created, adj, err := h.Store.Create(c.UserContext(), userID, t)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add transaction")
	}

	h.record(c, userID, "transaction.create", created.ID)

	resp := transactionResponse{Transaction: created}
	if adj != nil && adj.Exceeded() {
		resp.Alert = budgets.AlertMessage(adj.Category)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	patch := Patch{Amount: req.Amount, Description: req.Description}
	if req.Amount != nil && *req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}
	if req.Category != nil {
		cat := strings.TrimSpace(*req.Category)
		if cat == "" {
			return fiber.NewError(fiber.StatusBadRequest, "category cannot be empty")
		}
		patch.Category = &cat
	}
	if req.Type != nil {
		typ := NormalizeType(*req.Type)
		if typ == "" {
			return fiber.NewError(fiber.StatusBadRequest, "type must be income or expense")
		}
		patch.Type = &typ
	}
	if req.Date != nil {
		d, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		patch.Date = &d
	}

	updated, adj, err := h.Store.Update(c.UserContext(), userID, id, patch)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update transaction")
	}

	h.record(c, userID, "transaction.update", updated.ID)

	resp := transactionResponse{Transaction: updated}
	if adj != nil && adj.Exceeded() {
		resp.Alert = budgets.AlertMessage(adj.Category)
	}
	return c.JSON(resp)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}

	err = h.Store.Delete(c.UserContext(), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete transaction")
	}

	h.record(c, userID, "transaction.delete", id)

	return c.JSON(fiber.Map{"message": "transaction deleted"})
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var f ListFilters
	if raw := strings.TrimSpace(c.Query("amount")); raw != "" {
		v, err := money.ParseMinor(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "amount must be a positive amount")
		}
		f.Amount = &v
	}
	f.Category = strings.TrimSpace(c.Query("category"))
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		f.Date = &d
	}
	f.Description = strings.TrimSpace(c.Query("description"))
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		typ := NormalizeType(raw)
		if typ == "" {
			return fiber.NewError(fiber.StatusBadRequest, "type must be income or expense")
		}
		f.Type = typ
	}

	items, err := h.Store.List(c.UserContext(), userID, f)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list transactions")
	}

	return c.JSON(fiber.Map{"transactions": items})
}

func (h *Handler) Recent(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	limit := 10
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	items, err := h.Store.Recent(c.UserContext(), userID, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list recent transactions")
	}

	return c.JSON(fiber.Map{"transactions": items})
}

func (h *Handler) record(c *fiber.Ctx, userID, action, entityID string) {
	if h.Audit != nil {
		h.Audit(c, userID, action, entityID)
	}
}
