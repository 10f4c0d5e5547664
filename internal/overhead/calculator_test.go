package overhead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// directCost=10000, revenue=500000, cost=100000, inflation=5% →
// ratio 0.2, allocation 2000, add-on 2100, price 12100, headline 12100.
func TestCalculate_EnabledScenario(t *testing.T) {
	res := Calculate(10000, Params{
		GrossRevenuePreviousYear:  500000,
		OperatingCostPreviousYear: 100000,
		InflationRate:             5,
	})

	assert.InDelta(t, 0.2, res.OverheadRatio, 1e-9)
	assert.InDelta(t, 2000, res.OverheadAllocation, 1e-9)
	assert.InDelta(t, 1.05, res.InflationMultiplier, 1e-9)
	assert.InDelta(t, 2100, res.TotalOperatingAddOn, 1e-9)
	assert.InDelta(t, 100, res.InflationOffset, 1e-9)
	assert.InDelta(t, 12100, res.TotalPrice, 1e-9)
	assert.Equal(t, float64(12100), res.FinalBidAmount)
}

func TestCalculate_HeadlineRoundsUp(t *testing.T) {
	res := Calculate(100.10, Params{
		GrossRevenuePreviousYear:  1000,
		OperatingCostPreviousYear: 100,
		InflationRate:             0,
	})
	// 100.10 + 10.01 = 110.11 → 111
	assert.Equal(t, float64(111), res.FinalBidAmount)
}

// grossRevenue <= 0 zeroes everything and falls back to ceil(directCost).
func TestCalculate_DegenerateRevenue(t *testing.T) {
	for _, revenue := range []float64{0, -5000} {
		res := Calculate(1234.5, Params{GrossRevenuePreviousYear: revenue, OperatingCostPreviousYear: 100000, InflationRate: 5})
		assert.Zero(t, res.OverheadRatio)
		assert.Zero(t, res.OverheadAllocation)
		assert.Zero(t, res.TotalOperatingAddOn)
		assert.Equal(t, float64(1235), res.FinalBidAmount)
	}
}

func TestCalculate_NegativeDirectCost(t *testing.T) {
	res := Calculate(-10, Params{GrossRevenuePreviousYear: 500000, OperatingCostPreviousYear: 100000, InflationRate: 5})
	assert.Zero(t, res.OverheadAllocation)
	assert.Equal(t, float64(-10), res.FinalBidAmount)
}

func TestCalculate_ZeroInflation(t *testing.T) {
	res := Calculate(10000, Params{GrossRevenuePreviousYear: 500000, OperatingCostPreviousYear: 100000})
	assert.InDelta(t, 2000, res.TotalOperatingAddOn, 1e-9)
	assert.Zero(t, res.InflationOffset)
	assert.Equal(t, float64(12000), res.FinalBidAmount)
}
