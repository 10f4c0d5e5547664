package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Timeline milestone labels.
const (
	TimelineCreated = "created"
	TimelineEndDate = "end_date"
)

// TimelineEvent is an append-only milestone row. Rows are never updated or deleted.
type TimelineEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	BidID     uuid.UUID      `gorm:"column:bid_id;type:uuid;not null;index" json:"bid_id"`
	Label     string         `gorm:"column:label;type:varchar(30);not null" json:"label"`
	EventDate time.Time      `gorm:"column:event_date;not null" json:"event_date"`
	Details   datatypes.JSON `gorm:"column:details;type:json" json:"details"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (TimelineEvent) TableName() string {
	return "TimelineEvents"
}

func (e *TimelineEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}

// SystemActor attributes automated changes (expiration sweep) in history rows.
const SystemActor = "system"

// BidHistory is an append-only audit row recording a field change on a bid.
type BidHistory struct {
	HistoryID uuid.UUID      `gorm:"column:history_id;type:uuid;primaryKey" json:"history_id"`
	BidID     uuid.UUID      `gorm:"column:bid_id;type:uuid;not null;index" json:"bid_id"`
	Field     string         `gorm:"column:field;type:varchar(50);not null" json:"field"`
	OldValue  string         `gorm:"column:old_value" json:"old_value"`
	NewValue  string         `gorm:"column:new_value" json:"new_value"`
	ActorID   string         `gorm:"column:actor_id;type:varchar(50);not null" json:"actor_id"`
	Details   datatypes.JSON `gorm:"column:details;type:json" json:"details"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (BidHistory) TableName() string {
	return "BidHistories"
}

func (h *BidHistory) BeforeCreate(tx *gorm.DB) error {
	if h.HistoryID == uuid.Nil {
		h.HistoryID = uuid.New()
	}
	return nil
}
