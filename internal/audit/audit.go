package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Entry struct {
	UserID     *string
	Action     string
	EntityType string
	EntityID   *string
	IP         *string
	UserAgent  *string
	Metadata   []byte
}

// Write records an audit entry; failures are returned so callers can ignore if needed.
func Write(ctx context.Context, db *pgxpool.Pool, e Entry) error {
	if db == nil {
		return nil
	}

	var metadata any
	if len(e.Metadata) > 0 {
		metadata = json.RawMessage(e.Metadata)
	}

	_, err := db.Exec(ctx, `
INSERT INTO audit_logs (user_id, action, entity_type, entity_id, ip, user_agent, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, e.UserID, e.Action, e.EntityType, e.EntityID, e.IP, e.UserAgent, metadata)

	return err
}

// Record writes a best-effort audit row for the current request.
// Failures are logged and swallowed so mutations never fail on auditing.
func Record(c *fiber.Ctx, db *pgxpool.Pool, userID, action, entityType, entityID string) {
	ip := c.IP()
	ua := c.Get("User-Agent")

	e := Entry{
		Action:     action,
		EntityType: entityType,
	}
	if userID != "" {
		e.UserID = &userID
	}
	if entityID != "" {
		e.EntityID = &entityID
	}
	if ip != "" {
		e.IP = &ip
	}
	if ua != "" {
		e.UserAgent = &ua
	}

	if err := Write(c.UserContext(), db, e); err != nil {
		slog.Warn("audit write failed", "action", action, "entity", entityType, "err", err)
	}
}
