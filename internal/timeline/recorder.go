// Package timeline appends immutable milestone and audit rows for bids.
package timeline

import (
	"context"
	"encoding/json"
	"fmt"

	"ferro-backend/internal/models"
	"ferro-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordCreated appends the "created" milestone. Called inside the bid
// creation transaction.
func RecordCreated(tx *gorm.DB, bid *models.Bid) error {
	return tx.Create(&models.TimelineEvent{
		BidID:     bid.BidID,
		Label:     models.TimelineCreated,
		EventDate: bid.CreatedAt,
	}).Error
}

// RecordEndDate appends the "end_date" milestone carrying the day count from
// creation to end date. Only called when the bid has an end date.
func RecordEndDate(tx *gorm.DB, bid *models.Bid) error {
	if bid.EndDate == nil {
		return nil
	}
	days := validation.DaysBetween(bid.CreatedAt, *bid.EndDate)
	details, _ := json.Marshal(map[string]interface{}{"day_count": days})
	return tx.Create(&models.TimelineEvent{
		BidID:     bid.BidID,
		Label:     models.TimelineEndDate,
		EventDate: *bid.EndDate,
		Details:   datatypes.JSON(details),
	}).Error
}

// RecordStatusChange appends a history row describing a status transition and
// who caused it.
func RecordStatusChange(tx *gorm.DB, bidID uuid.UUID, oldStatus, newStatus, actor string) error {
	details, _ := json.Marshal(map[string]interface{}{
		"message": fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus),
	})
	return tx.Create(&models.BidHistory{
		BidID:    bidID,
		Field:    "status",
		OldValue: oldStatus,
		NewValue: newStatus,
		ActorID:  actor,
		Details:  datatypes.JSON(details),
	}).Error
}

// ListByBid returns a bid's timeline, oldest first.
func ListByBid(ctx context.Context, db *gorm.DB, bidID uuid.UUID) ([]models.TimelineEvent, error) {
	var events []models.TimelineEvent
	err := db.WithContext(ctx).Where("bid_id = ?", bidID).Order("created_at ASC").Find(&events).Error
	return events, err
}

// ListHistory returns a bid's audit rows, newest first.
func ListHistory(ctx context.Context, db *gorm.DB, bidID uuid.UUID) ([]models.BidHistory, error) {
	var rows []models.BidHistory
	err := db.WithContext(ctx).Where("bid_id = ?", bidID).Order("created_at DESC").Find(&rows).Error
	return rows, err
}
