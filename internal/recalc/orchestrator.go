// Package recalc is the cascade that keeps a bid's breakdown, operating
// expense figures, and headline amount consistent after any component change.
package recalc

import (
	"context"
	"math"

	"ferro-backend/internal/models"
	"ferro-backend/internal/overhead"
	"ferro-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Orchestrator struct {
	DB       *gorm.DB
	Defaults overhead.DefaultsSource
}

// Summary is the post-cascade state returned to callers.
type Summary struct {
	Breakdown *models.FinancialBreakdown     `json:"breakdown"`
	Config    *models.OperatingExpenseConfig `json:"operating_expense_config"`
	Amount    float64                        `json:"amount"`
}

// Recalculate recomputes the bid's rollup from source components and writes
// the breakdown, config outputs, and headline amount as one transaction. It
// never trusts cached totals: subtotals are re-derived from the cost lines
// (or, for bids with no itemized lines, from the breakdown's own subtotal
// fields), so an interrupted earlier cascade self-heals here.
func (o *Orchestrator) Recalculate(ctx context.Context, bidID uuid.UUID) (*Summary, error) {
	var summary *Summary
	err := o.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := o.recalculateTx(tx, bidID)
		if err != nil {
			return err
		}
		summary = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (o *Orchestrator) recalculateTx(tx *gorm.DB, bidID uuid.UUID) (*Summary, error) {
	var bid models.Bid
	if err := tx.Where("bid_id = ?", bidID).First(&bid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	var fb models.FinancialBreakdown
	if err := tx.Where("bid_id = ?", bidID).First(&fb).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		fb = models.FinancialBreakdown{BidID: bidID}
		if err := tx.Create(&fb).Error; err != nil {
			return nil, err
		}
	}

	sub, hasLines, err := SumLines(tx, bidID)
	if err != nil {
		return nil, err
	}
	if !hasLines {
		sub = Subtotals{
			Materials:       fb.Materials,
			Labor:           fb.Labor,
			Travel:          fb.Travel,
			ActualMaterials: fb.ActualMaterials,
			ActualLabor:     fb.ActualLabor,
			ActualTravel:    fb.ActualTravel,
		}
	}
	totalCost := sub.TotalCost()
	actualTotalCost := sub.ActualTotalCost()

	var cfg models.OperatingExpenseConfig
	if err := tx.Where("bid_id = ?", bidID).First(&cfg).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		cfg = models.OperatingExpenseConfig{BidID: bidID}
		if err := tx.Create(&cfg).Error; err != nil {
			return nil, err
		}
	}

	fbCols := map[string]interface{}{
		"materials":         sub.Materials,
		"labor":             sub.Labor,
		"travel":            sub.Travel,
		"actual_materials":  sub.ActualMaterials,
		"actual_labor":      sub.ActualLabor,
		"actual_travel":     sub.ActualTravel,
		"total_cost":        totalCost,
		"actual_total_cost": actualTotalCost,
	}
	cfgCols := map[string]interface{}{}
	var amount float64

	if !cfg.Enabled {
		// Overhead off: add-on contributes nothing, price equals cost, and the
		// headline is the ceiling of actual total cost.
		fbCols["operating_expense"] = 0.0
		fbCols["actual_operating_expense"] = 0.0
		fbCols["total_price"] = totalCost
		fbCols["actual_total_price"] = actualTotalCost
		fbCols["gross_profit"] = 0.0
		fbCols["actual_gross_profit"] = 0.0
		cfgCols["overhead_allocation"] = 0.0
		cfgCols["actual_overhead_allocation"] = 0.0
		cfgCols["total_operating_expense"] = 0.0
		cfgCols["actual_total_operating_expense"] = 0.0
		amount = math.Ceil(actualTotalCost)
	} else {
		if actualTotalCost < 0 {
			return nil, apperr.Validation("total_cost", "Direct cost cannot be negative")
		}
		params, err := o.resolveParams(tx, &bid, &cfg)
		if err != nil {
			return nil, err
		}
		initial := overhead.Calculate(totalCost, params)
		actual := overhead.Calculate(actualTotalCost, params)

		fbCols["operating_expense"] = round2(initial.TotalOperatingAddOn)
		fbCols["actual_operating_expense"] = round2(actual.TotalOperatingAddOn)
		fbCols["total_price"] = round2(initial.TotalPrice)
		fbCols["actual_total_price"] = round2(actual.TotalPrice)
		fbCols["gross_profit"] = round2(initial.TotalPrice - totalCost)
		fbCols["actual_gross_profit"] = round2(actual.TotalPrice - actualTotalCost)
		cfgCols["overhead_allocation"] = round2(initial.OverheadAllocation)
		cfgCols["actual_overhead_allocation"] = round2(actual.OverheadAllocation)
		cfgCols["total_operating_expense"] = round2(initial.TotalOperatingAddOn)
		cfgCols["actual_total_operating_expense"] = round2(actual.TotalOperatingAddOn)
		amount = actual.FinalBidAmount
	}

	if err := tx.Model(&fb).Updates(fbCols).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&cfg).Updates(cfgCols).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&bid).Update("amount", amount).Error; err != nil {
		return nil, err
	}

	if err := tx.Where("bid_id = ?", bidID).First(&fb).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("bid_id = ?", bidID).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &Summary{Breakdown: &fb, Config: &cfg, Amount: amount}, nil
}

// resolveParams takes the bid's own operating-expense parameters, falling back
// to the organization-wide defaults for each unset field.
func (o *Orchestrator) resolveParams(tx *gorm.DB, bid *models.Bid, cfg *models.OperatingExpenseConfig) (overhead.Params, error) {
	var params overhead.Params
	needDefaults := cfg.GrossRevenuePreviousYear == nil || cfg.OperatingCostPreviousYear == nil || cfg.InflationRate == nil
	if needDefaults && o.Defaults != nil {
		defaults, err := o.Defaults.OrganizationDefaults(tx, bid.OrgID)
		if err != nil {
			return params, err
		}
		params = defaults
	}
	if cfg.GrossRevenuePreviousYear != nil {
		params.GrossRevenuePreviousYear = *cfg.GrossRevenuePreviousYear
	}
	if cfg.OperatingCostPreviousYear != nil {
		params.OperatingCostPreviousYear = *cfg.OperatingCostPreviousYear
	}
	if cfg.InflationRate != nil {
		params.InflationRate = *cfg.InflationRate
	}
	return params, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
