// Package breakdown maintains the per-bid financial rollup.
package breakdown

import (
	"context"
	"math"

	"ferro-backend/internal/dualtrack"
	"ferro-backend/internal/models"
	"ferro-backend/internal/pkg/apperr"
	"ferro-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schema lists the dual-tracked columns a direct breakdown edit may touch.
// Operating expense, totals and gross profit are owned by the recalculation
// cascade and are not directly patchable.
var Schema = dualtrack.Schema{
	Pairs: []dualtrack.Pair{
		{Initial: "materials", Actual: "actual_materials"},
		{Initial: "labor", Actual: "actual_labor"},
		{Initial: "travel", Actual: "actual_travel"},
	},
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) GetByBid(ctx context.Context, bidID uuid.UUID) (*models.FinancialBreakdown, error) {
	var fb models.FinancialBreakdown
	if err := s.DB.WithContext(ctx).Where("bid_id = ?", bidID).First(&fb).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &fb, nil
}

// Update applies a partial dual-track edit to the breakdown's subtotal fields.
// If no row exists and the patch carries initial-track values, a row is
// inserted with actual seeded from initial; a patch with no initial values
// against a missing row is a no-op that reports the missing state.
func (s *Service) Update(ctx context.Context, bidID uuid.UUID, patch map[string]interface{}) (*models.FinancialBreakdown, error) {
	cols, err := numericColumns(Schema, patch)
	if err != nil {
		return nil, err
	}

	var fb models.FinancialBreakdown
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("bid_id = ?", bidID).First(&fb).Error
		if findErr == gorm.ErrRecordNotFound {
			hasInitial, _ := Schema.Classify(patch)
			if !hasInitial {
				return apperr.ErrNotFound
			}
			fb = models.FinancialBreakdown{BidID: bidID}
			if err := tx.Create(&fb).Error; err != nil {
				return err
			}
		} else if findErr != nil {
			return findErr
		}
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(&fb).Updates(cols).Error; err != nil {
			return err
		}
		return tx.Where("bid_id = ?", bidID).First(&fb).Error
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// numericColumns validates every tracked column value as a number; malformed
// values fail with a field-level validation error.
func numericColumns(schema dualtrack.Schema, patch map[string]interface{}) (map[string]interface{}, error) {
	cols := schema.UpdateColumns(patch)
	for name, v := range cols {
		f, ok := validation.ToFloat(v)
		if !ok {
			return nil, apperr.Validation(name, "Invalid numeric value for "+name)
		}
		cols[name] = round2(f)
	}
	return cols, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
