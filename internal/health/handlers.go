// Package health reports dependency status for uptime checks.
package health

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// JSON handles GET /health/json with per-dependency status.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	deps := fiber.Map{
		"database": h.databaseStatus(c),
		"redis":    h.redisStatus(c),
	}
	status := "ok"
	for _, v := range deps {
		if v != "connected" {
			status = "degraded"
		}
	}
	return c.JSON(fiber.Map{
		"status":       status,
		"time":         time.Now().UTC().Format(time.RFC3339),
		"dependencies": deps,
	})
}

func (h *Handlers) databaseStatus(c *fiber.Ctx) string {
	if h.DB == nil {
		return "not configured"
	}
	sqlDB, err := h.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		return "disconnected"
	}
	return "connected"
}

func (h *Handlers) redisStatus(c *fiber.Ctx) string {
	if h.Rdb == nil {
		return "not configured"
	}
	if err := h.Rdb.Ping(c.Context()).Err(); err != nil {
		return "disconnected"
	}
	return "connected"
}
