// Package overhead computes the operating-expense add-on applied on top of a
// bid's direct cost.
package overhead

import (
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Params are the inputs to Calculate after org-default fallback has been applied.
type Params struct {
	GrossRevenuePreviousYear  float64
	OperatingCostPreviousYear float64
	InflationRate             float64
}

// Result carries every derived figure. FinalBidAmount is the headline price in
// whole dollars (ceiling of TotalPrice).
type Result struct {
	OverheadRatio       float64 `json:"overhead_ratio"`
	OverheadAllocation  float64 `json:"overhead_allocation"`
	InflationMultiplier float64 `json:"inflation_multiplier"`
	TotalOperatingAddOn float64 `json:"total_operating_add_on"`
	InflationOffset     float64 `json:"inflation_offset"`
	TotalPrice          float64 `json:"total_price"`
	FinalBidAmount      float64 `json:"final_bid_amount"`
}

// Calculate derives the operating-expense add-on from direct cost and the
// prior-year revenue/cost ratio, inflation-adjusted.
//
// Degenerate inputs (gross revenue <= 0, or negative direct cost) zero every
// derived figure and fall back to the ceiling of direct cost as the headline.
// That is a deliberate fail-safe-to-direct-cost policy, not an error.
func Calculate(directCost float64, p Params) Result {
	if p.GrossRevenuePreviousYear <= 0 || directCost < 0 {
		return Result{
			InflationMultiplier: 1,
			TotalPrice:          directCost,
			FinalBidAmount:      math.Ceil(directCost),
		}
	}

	ratio := p.OperatingCostPreviousYear / p.GrossRevenuePreviousYear
	allocation := directCost * ratio
	multiplier := 1 + p.InflationRate/100
	addOn := allocation * multiplier
	totalPrice := directCost + addOn

	return Result{
		OverheadRatio:       ratio,
		OverheadAllocation:  allocation,
		InflationMultiplier: multiplier,
		TotalOperatingAddOn: addOn,
		InflationOffset:     addOn - allocation,
		TotalPrice:          totalPrice,
		FinalBidAmount:      math.Ceil(totalPrice),
	}
}

// DefaultsSource resolves organization-wide operating-expense defaults, used
// for any parameter a bid's own config leaves unset. Injected so the
// calculator stays a pure, independently testable function. The lookup takes
// the caller's transaction so it reads the same snapshot as the cascade.
type DefaultsSource interface {
	OrganizationDefaults(tx *gorm.DB, orgID uuid.UUID) (Params, error)
}
