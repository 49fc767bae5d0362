package http

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/AryaKS01/Personal-Finance-Tracker/internal/auth"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/domain"
)

type AuthHandler struct {
	DB *pgxpool.Pool
	// Audit, when set, records signup/login events.
	Audit func(c *fiber.Ctx, userID, action, entityID string)
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[@$!%*?&]`)
)

// validPassword requires at least 8 characters with one lowercase letter,
// one uppercase letter, one digit, and one special character.
func validPassword(pw string) bool {
	return len(pw) >= 8 &&
		lowerPattern.MatchString(pw) &&
		upperPattern.MatchString(pw) &&
		digitPattern.MatchString(pw) &&
		specialPattern.MatchString(pw)
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	body.FullName = strings.TrimSpace(body.FullName)

	if body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password required")
	}
	if !emailPattern.MatchString(body.Email) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email")
	}
	if !validPassword(body.Password) {
		return fiber.NewError(fiber.StatusBadRequest,
			"password must be at least 8 characters with lowercase, uppercase, a digit, and a special character")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	ctx := userContext(c)

	var userID string
	err = h.DB.QueryRow(
		ctx,
		`INSERT INTO users (email, password_hash, full_name)
         VALUES ($1, $2, $3)
         RETURNING id`,
		body.Email, string(hashed), body.FullName,
	).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fiber.NewError(fiber.StatusBadRequest, "email already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
	}

	token, err := auth.GenerateToken(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	if h.Audit != nil {
		h.Audit(c, userID, "user.signup", userID)
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	var (
		userID       string
		passwordHash string
	)

	ctx := userContext(c)
	err := h.DB.QueryRow(
		ctx,
		`SELECT id, password_hash FROM users WHERE email = $1`,
		body.Email,
	).Scan(&userID, &passwordHash)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := auth.GenerateToken(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	if h.Audit != nil {
		h.Audit(c, userID, "user.login", userID)
	}

	return c.JSON(authResponse{Token: token})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var u domain.User
	err = h.DB.QueryRow(
		userContext(c),
		`SELECT id, email, full_name, is_verified, created_at, last_seen_at
         FROM users WHERE id = $1::uuid`,
		userID,
	).Scan(&u.ID, &u.Email, &u.FullName, &u.IsVerified, &u.CreatedAt, &u.LastSeenAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not load profile")
	}

	return c.JSON(u)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
