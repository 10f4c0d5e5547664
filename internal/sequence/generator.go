// Package sequence issues the human-readable bid numbers ("BID-2025-0001").
package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ferro-backend/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CounterBid is the counter name for bid sequence numbers.
const CounterBid = "bid"

// Generator produces unique, monotonically increasing sequence numbers per
// (organization, counter). The primary path is an atomic Redis INCR and is
// safe under concurrent callers. The fallback path scans existing numbers and
// is NOT concurrency-safe; it only exists for degraded availability.
type Generator struct {
	DB     *gorm.DB
	Rdb    *redis.Client
	Prefix string
}

// Next returns the next sequence number for the org/counter pair, formatted
// {PREFIX}-{year}-{number} with the number zero-padded to at least 4 digits
// (10000 and up stay unpadded).
func (g *Generator) Next(ctx context.Context, orgID uuid.UUID, counter string) (string, error) {
	year := time.Now().Year()

	n, err := g.nextCounterValue(ctx, orgID, counter)
	if err != nil {
		n, err = g.scanFallback(ctx, orgID, year)
		if err != nil {
			return "", err
		}
		log.Warn().
			Str("org_id", orgID.String()).
			Str("counter", counter).
			Int64("number", n).
			Msg("Sequence counter unavailable; fell back to scanning existing numbers (NOT safe under concurrent writers)")
	}

	return fmt.Sprintf("%s-%d-%04d", g.prefix(), year, n), nil
}

// nextCounterValue is the atomic increment-and-fetch primitive.
func (g *Generator) nextCounterValue(ctx context.Context, orgID uuid.UUID, counter string) (int64, error) {
	if g.Rdb == nil {
		return 0, redis.ErrClosed
	}
	key := fmt.Sprintf("seq:%s:%s", orgID, counter)
	return g.Rdb.Incr(ctx, key).Result()
}

// scanFallback computes max(existing suffix)+1 over this year's numbers for
// the org. Two simultaneous callers can compute the same value; the unique
// index on sequence_number makes the loser fail loudly instead of colliding.
func (g *Generator) scanFallback(ctx context.Context, orgID uuid.UUID, year int) (int64, error) {
	pattern := fmt.Sprintf("%s-%d-", g.prefix(), year)

	var numbers []string
	err := g.DB.WithContext(ctx).
		Model(&models.Bid{}).
		Where("org_id = ? AND sequence_number LIKE ?", orgID, pattern+"%").
		Pluck("sequence_number", &numbers).Error
	if err != nil {
		return 0, err
	}

	var max int64
	for _, s := range numbers {
		suffix := strings.TrimPrefix(s, pattern)
		n, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

func (g *Generator) prefix() string {
	if g.Prefix == "" {
		return "BID"
	}
	return g.Prefix
}
