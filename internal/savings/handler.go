package savings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AryaKS01/Personal-Finance-Tracker/internal/auth"
)

type Store interface {
	Create(ctx context.Context, userID string, g Goal) (Goal, error)
	List(ctx context.Context, userID string) ([]Goal, error)
	UpdateTarget(ctx context.Context, userID, id string, target int64) (Goal, error)
	Delete(ctx context.Context, userID, id string) error
	AddFund(ctx context.Context, userID, id string, amount int64) (Goal, error)
}

type Handler struct {
	Store Store
	// Audit, when set, records each mutation.
	Audit func(c *fiber.Ctx, userID, action, entityID string)
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

type goalResponse struct {
	Goal    Goal   `json:"goal"`
	Message string `json:"message,omitempty"`
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
	if req.Target <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "target must be greater than zero")
	}

	g := Goal{Name: req.Name, Target: req.Target, Description: req.Description}
	if strings.TrimSpace(req.Date) != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		g.GoalDate = &d
	}

	created, err := h.Store.Create(c.UserContext(), userID, g)
	if errors.Is(err, ErrDuplicateName) {
		return fiber.NewError(fiber.StatusBadRequest, "a savings goal with this name already exists")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create savings goal")
	}

	h.record(c, userID, "savings_goal.create", created.ID)
	return c.Status(fiber.StatusCreated).JSON(goalResponse{Goal: created})
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Store.List(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list savings goals")
	}

	return c.JSON(fiber.Map{"goals": items})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "savings goal not found")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Target <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "target must be greater than zero")
	}

	g, err := h.Store.UpdateTarget(c.UserContext(), userID, id, req.Target)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "savings goal not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update savings goal")
	}

	h.record(c, userID, "savings_goal.update", g.ID)
	return c.JSON(goalResponse{Goal: g})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "savings goal not found")
	}

	err = h.Store.Delete(c.UserContext(), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "savings goal not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete savings goal")
	}

	h.record(c, userID, "savings_goal.delete", id)
	return c.JSON(fiber.Map{"message": "savings goal deleted"})
}

func (h *Handler) AddFund(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "savings goal not found")
	}

	var req FundRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}

	g, err := h.Store.AddFund(c.UserContext(), userID, id, req.Amount)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "savings goal not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add funds")
	}

	h.record(c, userID, "savings_goal.fund", g.ID)

	resp := goalResponse{Goal: g, Message: "funds added"}
	if g.Reached() {
		resp.Message = "funds added, goal reached"
	}
	return c.JSON(resp)
}

func (h *Handler) record(c *fiber.Ctx, userID, action, entityID string) {
	if h.Audit != nil {
		h.Audit(c, userID, action, entityID)
	}
}
