// Package bids owns the bid entity lifecycle: creation, edits, soft delete,
// status transitions, and the expiration sweep.
package bids

import (
	"context"
	"time"

	"ferro-backend/internal/models"
	"ferro-backend/internal/pkg/apperr"
	"ferro-backend/internal/pkg/validation"
	"ferro-backend/internal/sequence"
	"ferro-backend/internal/timeline"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeDirectory resolves employee references; implemented by orgs.Service.
type EmployeeDirectory interface {
	EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	DB        *gorm.DB
	Seq       *sequence.Generator
	Directory EmployeeDirectory
}

type CreateBidInput struct {
	OrgID                   uuid.UUID
	Title                   string
	JobType                 string
	ProfitMargin            float64
	SupervisorID            *uuid.UUID
	PrimaryTechnicianID     *uuid.UUID
	EndDate                 *time.Time
	PlannedStartDate        *time.Time
	EstimatedCompletionDate *time.Time
}

// Create validates references and the end-date invariant, assigns a sequence
// number, and writes the bid with its zeroed breakdown, operating-expense
// config, and timeline milestones as one transaction. A failed create leaves
// no rows behind.
func (s *Service) Create(ctx context.Context, in CreateBidInput) (*models.Bid, error) {
	if in.OrgID == uuid.Nil {
		return nil, apperr.Validation("org_id", "Organization is required")
	}
	if !models.ValidJobType(in.JobType) {
		return nil, apperr.Validation("job_type", "Unknown job type")
	}
	now := time.Now()
	if in.EndDate != nil && !validation.SameOrAfterDay(*in.EndDate, now) {
		return nil, apperr.Validation("end_date", "End date must be on or after the creation date")
	}
	if err := s.checkEmployee(ctx, "supervisor_id", in.SupervisorID); err != nil {
		return nil, err
	}
	if err := s.checkEmployee(ctx, "primary_technician_id", in.PrimaryTechnicianID); err != nil {
		return nil, err
	}

	seqNumber, err := s.Seq.Next(ctx, in.OrgID, sequence.CounterBid)
	if err != nil {
		return nil, err
	}

	bid := &models.Bid{
		OrgID:                   in.OrgID,
		SequenceNumber:          seqNumber,
		Title:                   in.Title,
		JobType:                 in.JobType,
		Status:                  models.BidStatusDraft,
		ProfitMargin:            in.ProfitMargin,
		SupervisorID:            in.SupervisorID,
		PrimaryTechnicianID:     in.PrimaryTechnicianID,
		EndDate:                 in.EndDate,
		PlannedStartDate:        in.PlannedStartDate,
		EstimatedCompletionDate: in.EstimatedCompletionDate,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bid).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.FinancialBreakdown{BidID: bid.BidID}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.OperatingExpenseConfig{BidID: bid.BidID}).Error; err != nil {
			return err
		}
		if err := timeline.RecordCreated(tx, bid); err != nil {
			return err
		}
		return timeline.RecordEndDate(tx, bid)
	})
	if err != nil {
		return nil, err
	}
	return bid, nil
}

func (s *Service) checkEmployee(ctx context.Context, field string, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := s.Directory.EmployeeExists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Referential(field, "Employee not found for "+field)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, bidID uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	if err := s.DB.WithContext(ctx).Where("bid_id = ?", bidID).First(&bid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (s *Service) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.DB.WithContext(ctx).Where("org_id = ?", orgID).Order("created_at DESC").Find(&bids).Error
	return bids, err
}

type UpdateBidInput struct {
	Title                   *string
	JobType                 *string
	ProfitMargin            *float64
	SupervisorID            *uuid.UUID
	PrimaryTechnicianID     *uuid.UUID
	EndDate                 *time.Time
	PlannedStartDate        *time.Time
	EstimatedCompletionDate *time.Time
}

// Update edits bid fields. The end-date invariant is validated against the
// bid's original creation date, not the time of the update.
func (s *Service) Update(ctx context.Context, bidID uuid.UUID, in UpdateBidInput) (*models.Bid, error) {
	bid, err := s.Get(ctx, bidID)
	if err != nil {
		return nil, err
	}

	cols := map[string]interface{}{}
	if in.Title != nil {
		cols["title"] = *in.Title
	}
	if in.JobType != nil {
		if !models.ValidJobType(*in.JobType) {
			return nil, apperr.Validation("job_type", "Unknown job type")
		}
		cols["job_type"] = *in.JobType
	}
	if in.ProfitMargin != nil {
		cols["profit_margin"] = *in.ProfitMargin
	}
	if in.SupervisorID != nil {
		if err := s.checkEmployee(ctx, "supervisor_id", in.SupervisorID); err != nil {
			return nil, err
		}
		cols["supervisor_id"] = *in.SupervisorID
	}
	if in.PrimaryTechnicianID != nil {
		if err := s.checkEmployee(ctx, "primary_technician_id", in.PrimaryTechnicianID); err != nil {
			return nil, err
		}
		cols["primary_technician_id"] = *in.PrimaryTechnicianID
	}
	if in.EndDate != nil {
		if !validation.SameOrAfterDay(*in.EndDate, bid.CreatedAt) {
			return nil, apperr.Validation("end_date", "End date must be on or after the creation date")
		}
		cols["end_date"] = *in.EndDate
	}
	if in.PlannedStartDate != nil {
		cols["planned_start_date"] = *in.PlannedStartDate
	}
	if in.EstimatedCompletionDate != nil {
		cols["estimated_completion_date"] = *in.EstimatedCompletionDate
	}

	if len(cols) == 0 {
		return bid, nil
	}
	if err := s.DB.WithContext(ctx).Model(bid).Updates(cols).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, bidID)
}

// UpdateStatus transitions a bid and records a history row attributed to actor.
func (s *Service) UpdateStatus(ctx context.Context, bidID uuid.UUID, status, actor string) (*models.Bid, error) {
	switch status {
	case models.BidStatusDraft, models.BidStatusPending, models.BidStatusSubmitted,
		models.BidStatusInProgress, models.BidStatusAccepted, models.BidStatusExpired, models.BidStatusCancelled:
	default:
		return nil, apperr.Validation("status", "Unknown status")
	}

	bid, err := s.Get(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid.Status == status {
		return bid, nil
	}

	oldStatus := bid.Status
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(bid).Update("status", status).Error; err != nil {
			return err
		}
		return timeline.RecordStatusChange(tx, bid.BidID, oldStatus, status, actor)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, bidID)
}

// Delete soft-deletes the bid and everything it owns.
func (s *Service) Delete(ctx context.Context, bidID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("bid_id = ?", bidID).Delete(&models.Bid{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		for _, m := range []interface{}{
			&models.FinancialBreakdown{},
			&models.OperatingExpenseConfig{},
			&models.MaterialLine{},
			&models.LaborLine{},
			&models.TravelLine{},
		} {
			if err := tx.Where("bid_id = ?", bidID).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
