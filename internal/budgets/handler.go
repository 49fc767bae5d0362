package budgets

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AryaKS01/Personal-Finance-Tracker/internal/auth"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/money"
)

// Store is what the handler needs from persistence; *Repo satisfies it.
type Store interface {
	Create(ctx context.Context, userID, name string, limit int64) (Budget, error)
	UpdateLimit(ctx context.Context, userID, id string, limit int64) (Budget, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, f ListFilters) ([]Budget, error)
}

type Handler struct {
	Store Store

	// Audit, when set, records mutations best-effort (wired in main).
	Audit func(c *fiber.Ctx, userID, action, entityID string)
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

type budgetResponse struct {
	Budget Budget `json:"budget"`
	Alert  string `json:"alert,omitempty"`
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

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}
	if req.Limit <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be greater than zero")
	}

	b, err := h.Store.Create(c.UserContext(), userID, req.Name, req.Limit)
	if errors.Is(err, ErrDuplicateName) {
		return fiber.NewError(fiber.StatusBadRequest, "a budget with this name already exists")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create budget")
	}

	h.record(c, userID, "budget.create", b.ID)

	resp := budgetResponse{Budget: b}
	if b.Exceeded() {
		resp.Alert = AlertMessage(b.Name)
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
		return fiber.NewError(fiber.StatusNotFound, "budget not found")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Limit <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be greater than zero")
	}

	b, err := h.Store.UpdateLimit(c.UserContext(), userID, id, req.Limit)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "budget not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update budget")
	}

	h.record(c, userID, "budget.update", b.ID)

	resp := budgetResponse{Budget: b}
	if b.Exceeded() {
		resp.Alert = AlertMessage(b.Name)
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
		return fiber.NewError(fiber.StatusNotFound, "budget not found")
	}

	err = h.Store.Delete(c.UserContext(), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "budget not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete budget")
	}

	h.record(c, userID, "budget.delete", id)

	return c.JSON(fiber.Map{"message": "budget deleted"})
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var f ListFilters
	f.Name = strings.TrimSpace(c.Query("name"))
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		v, err := money.ParseMinor(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive amount")
		}
		f.Limit = &v
	}

	items, err := h.Store.List(c.UserContext(), userID, f)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list budgets")
	}

	return c.JSON(fiber.Map{"budgets": items})
}

func (h *Handler) record(c *fiber.Ctx, userID, action, entityID string) {
	if h.Audit != nil {
		h.Audit(c, userID, action, entityID)
	}
}
