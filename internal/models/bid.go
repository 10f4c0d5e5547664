package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job type classification for a bid.
const (
	JobTypeGeneral                 = "general"
	JobTypeSurvey                  = "survey"
	JobTypePlanSpec                = "plan_spec"
	JobTypeDesignBuild             = "design_build"
	JobTypeService                 = "service"
	JobTypePreventativeMaintenance = "preventative_maintenance"
)

// Bid statuses. PreTerminalStatuses are the ones the expiration sweep may move to expired.
const (
	BidStatusDraft      = "draft"
	BidStatusPending    = "pending"
	BidStatusSubmitted  = "submitted"
	BidStatusInProgress = "in_progress"
	BidStatusAccepted   = "accepted"
	BidStatusExpired    = "expired"
	BidStatusCancelled  = "cancelled"
)

// PreTerminalStatuses lists statuses a bid can still expire from.
var PreTerminalStatuses = []string{BidStatusDraft, BidStatusPending, BidStatusSubmitted, BidStatusInProgress}

// Bid is a quote under negotiation for a unit of work. Amount is the derived
// headline price in whole dollars; it is only written by the recalculation cascade.
type Bid struct {
	BidID                   uuid.UUID      `gorm:"column:bid_id;type:uuid;primaryKey" json:"bid_id"`
	OrgID                   uuid.UUID      `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	SequenceNumber          string         `gorm:"column:sequence_number;type:varchar(30);not null;uniqueIndex" json:"sequence_number"`
	Title                   string         `gorm:"column:title" json:"title"`
	JobType                 string         `gorm:"column:job_type;type:varchar(30);not null" json:"job_type"`
	Status                  string         `gorm:"column:status;type:varchar(20);default:'draft'" json:"status"`
	Amount                  float64        `gorm:"column:amount;type:decimal(18,2);default:0" json:"amount"`
	ProfitMargin            float64        `gorm:"column:profit_margin;type:decimal(18,2);default:0" json:"profit_margin"`
	SupervisorID            *uuid.UUID     `gorm:"column:supervisor_id;type:uuid" json:"supervisor_id"`
	PrimaryTechnicianID     *uuid.UUID     `gorm:"column:primary_technician_id;type:uuid" json:"primary_technician_id"`
	EndDate                 *time.Time     `gorm:"column:end_date" json:"end_date"`
	PlannedStartDate        *time.Time     `gorm:"column:planned_start_date" json:"planned_start_date"`
	EstimatedCompletionDate *time.Time     `gorm:"column:estimated_completion_date" json:"estimated_completion_date"`
	CreatedAt               time.Time      `json:"createdAt"`
	UpdatedAt               time.Time      `json:"updatedAt"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Bid) TableName() string {
	return "Bids"
}

func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.BidID == uuid.Nil {
		b.BidID = uuid.New()
	}
	return nil
}

// ValidJobType reports whether t is one of the fixed job-type enumeration values.
func ValidJobType(t string) bool {
	switch t {
	case JobTypeGeneral, JobTypeSurvey, JobTypePlanSpec, JobTypeDesignBuild, JobTypeService, JobTypePreventativeMaintenance:
		return true
	}
	return false
}
