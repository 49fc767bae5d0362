package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/AryaKS01/Personal-Finance-Tracker/internal/admin"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/audit"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/auth"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/budgets"
	apphttp "github.com/AryaKS01/Personal-Finance-Tracker/internal/http"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/reports"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/router"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/savings"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/summary"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/transactions"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		slog.Error("DATABASE_URL is not set")
		os.Exit(1)
	}
	if len(auth.Secret()) == 0 {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		slog.Error("creating pgx pool", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := pool.Ping(pingCtx); err != nil {
		cancel()
		slog.Error("pinging database", "err", err)
		os.Exit(1)
	}
	cancel()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware())
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// Dev token endpoint
	if strings.EqualFold(os.Getenv("ENV"), "dev") {
		app.Get("/dev/token", func(c *fiber.Ctx) error {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"user_id": "11111111-1111-1111-1111-111111111111",
				"exp":     time.Now().Add(24 * time.Hour).Unix(),
			})
			signed, err := token.SignedString(auth.Secret())
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
			}
			return c.JSON(fiber.Map{"token": signed})
		})
	}

	record := func(entityType string) func(c *fiber.Ctx, userID, action, entityID string) {
		return func(c *fiber.Ctx, userID, action, entityID string) {
			audit.Record(c, pool, userID, action, entityType, entityID)
		}
	}

	authHandler := &apphttp.AuthHandler{DB: pool, Audit: record("user")}

	budgetRepo := budgets.NewRepo(pool)
	budgetHandler := budgets.NewHandler(budgetRepo)
	budgetHandler.Audit = record("budget")

	txRepo := transactions.NewRepo(pool)
	txHandler := transactions.NewHandler(txRepo)
	txHandler.Audit = record("transaction")

	savingsRepo := savings.NewRepo(pool)
	savingsHandler := savings.NewHandler(savingsRepo)
	savingsHandler.Audit = record("savings_goal")

	summaryRepo := summary.Repo{Pool: pool}
	summaryHandler := &summary.Handler{Store: summaryRepo}

	reportsHandler := reports.NewHandler(reports.NewStore(pool))
	adminHandler := admin.NewHandler(pool)

	authMW := auth.Middleware(pool)

	r := &router.Router{
		AuthHandler:    authHandler,
		TxHandler:      txHandler,
		BudgetHandler:  budgetHandler,
		SavingsHandler: savingsHandler,
		SummaryHandler: summaryHandler,
		ReportsHandler: reportsHandler,
		AdminHandler:   adminHandler,
		AuthMW:         authMW,
		AdminMW:        admin.RequireAdminAPIKey(),
		AuthLimit:      router.RateLimitAuth(),
		WriteLimit:     router.RateLimitWrite(),
	}
	r.RegisterRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("listening", "port", port)
	if err := app.Listen(":" + port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		slog.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	}
}
