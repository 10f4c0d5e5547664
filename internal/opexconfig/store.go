// Package opexconfig persists the per-bid operating-expense parameters.
package opexconfig

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

// Schema covers the operating-expense config columns. The dual-tracked pairs
// are the calculator outputs (written by the recalculation cascade); the plain
// columns are the user-editable parameters.
var Schema = dualtrack.Schema{
	Pairs: []dualtrack.Pair{
		{Initial: "overhead_allocation", Actual: "actual_overhead_allocation"},
		{Initial: "total_operating_expense", Actual: "actual_total_operating_expense"},
	},
	Plain: []string{
		"enabled",
		"gross_revenue_previous_year",
		"operating_cost_previous_year",
		"inflation_rate",
		"markup_enabled",
		"markup_percent",
	},
}

type Store struct {
	DB *gorm.DB
}

func (s *Store) GetByBid(ctx context.Context, bidID uuid.UUID) (*models.OperatingExpenseConfig, error) {
	var cfg models.OperatingExpenseConfig
	if err := s.DB.WithContext(ctx).Where("bid_id = ?", bidID).First(&cfg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// Update applies a partial edit to the config's parameter fields. A null
// parameter clears the column so recalculation falls back to the org-wide
// default for it. Calculator output columns in the patch are ignored; the
// cascade owns them.
func (s *Store) Update(ctx context.Context, bidID uuid.UUID, patch map[string]interface{}) (*models.OperatingExpenseConfig, error) {
	cols, err := paramColumns(patch)
	if err != nil {
		return nil, err
	}

	var cfg models.OperatingExpenseConfig
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("bid_id = ?", bidID).First(&cfg).Error
		if findErr == gorm.ErrRecordNotFound {
			if len(cols) == 0 {
				return apperr.ErrNotFound
			}
			cfg = models.OperatingExpenseConfig{BidID: bidID}
			if err := tx.Create(&cfg).Error; err != nil {
				return err
			}
		} else if findErr != nil {
			return findErr
		}
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(&cfg).Updates(cols).Error; err != nil {
			return err
		}
		return tx.Where("bid_id = ?", bidID).First(&cfg).Error
	})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func paramColumns(patch map[string]interface{}) (map[string]interface{}, error) {
	cols := make(map[string]interface{})
	for _, name := range []string{"gross_revenue_previous_year", "operating_cost_previous_year", "inflation_rate", "markup_percent"} {
		v, ok := patch[name]
		if !ok {
			continue
		}
		if v == nil {
			cols[name] = nil
			continue
		}
		f, okF := validation.ToFloat(v)
		if !okF {
			return nil, apperr.Validation(name, "Invalid numeric value for "+name)
		}
		cols[name] = math.Round(f*100) / 100
	}
	for _, name := range []string{"enabled", "markup_enabled"} {
		v, ok := patch[name]
		if !ok {
			continue
		}
		b, okB := validation.ToBool(v)
		if !okB {
			return nil, apperr.Validation(name, "Invalid boolean value for "+name)
		}
		cols[name] = b
	}
	return cols, nil
}
