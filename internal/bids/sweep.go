package bids

import (
	"context"
	"time"

	"ferro-backend/internal/models"
	"ferro-backend/internal/timeline"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SweepResult reports one expiration sweep run.
type SweepResult struct {
	ExpiredCount int `json:"expired_count"`
	ErrorCount   int `json:"error_count"`
}

// SweepExpirations transitions every bid whose end date is on or before today
// and whose status is still pre-terminal to expired, recording a history row
// attributed to the system actor. Bids are processed one at a time; a failure
// on one bid is counted and logged, never aborts the rest of the sweep.
func (s *Service) SweepExpirations(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	now := time.Now()
	y, m, d := now.Date()
	startOfTomorrow := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	var stale []models.Bid
	err := s.DB.WithContext(ctx).
		Where("status IN ? AND end_date IS NOT NULL AND end_date < ?", models.PreTerminalStatuses, startOfTomorrow).
		Find(&stale).Error
	if err != nil {
		return result, err
	}

	for i := range stale {
		bid := &stale[i]
		oldStatus := bid.Status
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(bid).Update("status", models.BidStatusExpired).Error; err != nil {
				return err
			}
			return timeline.RecordStatusChange(tx, bid.BidID, oldStatus, models.BidStatusExpired, models.SystemActor)
		})
		if err != nil {
			result.ErrorCount++
			log.Warn().Err(err).Str("bid_id", bid.BidID.String()).Msg("Expiration sweep failed for bid")
			continue
		}
		result.ExpiredCount++
	}

	if result.ExpiredCount > 0 || result.ErrorCount > 0 {
		log.Info().Int("expired", result.ExpiredCount).Int("errors", result.ErrorCount).Msg("Expiration sweep finished")
	}
	return result, nil
}
