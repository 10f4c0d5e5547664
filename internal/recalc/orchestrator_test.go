package recalc

import (
	"context"
	"testing"

	"ferro-backend/internal/models"
	"ferro-backend/internal/orgs"
	"ferro-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRecalcTest(t *testing.T) (*Orchestrator, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Organization{}, &models.Bid{}, &models.FinancialBreakdown{},
		&models.OperatingExpenseConfig{}, &models.MaterialLine{}, &models.LaborLine{}, &models.TravelLine{},
	))
	return &Orchestrator{DB: db, Defaults: &orgs.Service{DB: db}}, db
}

func seedBid(t *testing.T, db *gorm.DB, orgID uuid.UUID) *models.Bid {
	bid := &models.Bid{OrgID: orgID, SequenceNumber: uuid.NewString(), Title: "Boiler replacement", JobType: models.JobTypeGeneral, Status: models.BidStatusDraft}
	require.NoError(t, db.Create(bid).Error)
	require.NoError(t, db.Create(&models.FinancialBreakdown{BidID: bid.BidID}).Error)
	require.NoError(t, db.Create(&models.OperatingExpenseConfig{BidID: bid.BidID}).Error)
	return bid
}

func TestRecalculate_EnabledOverhead(t *testing.T) {
	o, db := setupRecalcTest(t)
	bid := seedBid(t, db, uuid.New())

	require.NoError(t, db.Create(&models.MaterialLine{
		BidID: bid.BidID, Name: "Equipment",
		TotalCost: 10000, TotalPrice: 10000,
		ActualTotalCost: 10000, ActualTotalPrice: 10000,
	}).Error)
	require.NoError(t, db.Model(&models.OperatingExpenseConfig{}).Where("bid_id = ?", bid.BidID).Updates(map[string]interface{}{
		"enabled":                      true,
		"gross_revenue_previous_year":  500000.0,
		"operating_cost_previous_year": 100000.0,
		"inflation_rate":               5.0,
	}).Error)

	summary, err := o.Recalculate(context.Background(), bid.BidID)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, summary.Breakdown.ActualTotalCost)
	assert.Equal(t, 2100.0, summary.Breakdown.ActualOperatingExpense)
	assert.Equal(t, 12100.0, summary.Breakdown.ActualTotalPrice)
	assert.Equal(t, 2100.0, summary.Breakdown.ActualGrossProfit)
	assert.Equal(t, 2000.0, summary.Config.ActualOverheadAllocation)
	assert.Equal(t, 2100.0, summary.Config.ActualTotalOperatingExpense)
	assert.Equal(t, 12100.0, summary.Amount)

	var persisted models.Bid
	require.NoError(t, db.Where("bid_id = ?", bid.BidID).First(&persisted).Error)
	assert.Equal(t, 12100.0, persisted.Amount)
}

func TestRecalculate_DisabledOverhead(t *testing.T) {
	o, db := setupRecalcTest(t)
	bid := seedBid(t, db, uuid.New())

	require.NoError(t, db.Create(&models.MaterialLine{
		BidID: bid.BidID, Name: "Equipment",
		TotalCost: 777.25, TotalPrice: 777.25,
		ActualTotalCost: 777.25, ActualTotalPrice: 777.25,
	}).Error)

	summary, err := o.Recalculate(context.Background(), bid.BidID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.Breakdown.ActualOperatingExpense)
	assert.Equal(t, summary.Breakdown.ActualTotalCost, summary.Breakdown.ActualTotalPrice)
	assert.Equal(t, 0.0, summary.Breakdown.ActualGrossProfit)
	assert.Equal(t, 0.0, summary.Config.ActualOverheadAllocation)
	assert.Equal(t, 778.0, summary.Amount)
}

// Running the cascade twice with unchanged inputs writes identical figures.
func TestRecalculate_Idempotent(t *testing.T) {
	o, db := setupRecalcTest(t)
	bid := seedBid(t, db, uuid.New())

	require.NoError(t, db.Create(&models.LaborLine{
		BidID: bid.BidID, Position: "Technician",
		TotalCost: 1600, TotalPrice: 3000,
		ActualTotalCost: 1920, ActualTotalPrice: 3600,
	}).Error)
	require.NoError(t, db.Model(&models.OperatingExpenseConfig{}).Where("bid_id = ?", bid.BidID).Updates(map[string]interface{}{
		"enabled":                      true,
		"gross_revenue_previous_year":  200000.0,
		"operating_cost_previous_year": 50000.0,
		"inflation_rate":               3.0,
	}).Error)

	first, err := o.Recalculate(context.Background(), bid.BidID)
	require.NoError(t, err)
	second, err := o.Recalculate(context.Background(), bid.BidID)
	require.NoError(t, err)

	assert.Equal(t, first.Amount, second.Amount)
	assert.Equal(t, first.Breakdown.TotalPrice, second.Breakdown.TotalPrice)
	assert.Equal(t, first.Breakdown.ActualTotalPrice, second.Breakdown.ActualTotalPrice)
	assert.Equal(t, first.Config.ActualOverheadAllocation, second.Config.ActualOverheadAllocation)
}

// Stale cached subtotals are overwritten from the cost lines, and missing
// breakdown/config rows are created on the fly.
func TestRecalculate_SelfHeals(t *testing.T) {
	o, db := setupRecalcTest(t)
	bid := &models.Bid{OrgID: uuid.New(), SequenceNumber: uuid.NewString(), Title: "Orphan", JobType: models.JobTypeService, Status: models.BidStatusDraft}
	require.NoError(t, db.Create(bid).Error)

	require.NoError(t, db.Create(&models.MaterialLine{
		BidID: bid.BidID, Name: "Ducting",
		TotalCost: 500, TotalPrice: 500,
		ActualTotalCost: 650, ActualTotalPrice: 650,
	}).Error)

	summary, err := o.Recalculate(context.Background(), bid.BidID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, summary.Breakdown.TotalCost)
	assert.Equal(t, 650.0, summary.Breakdown.ActualTotalCost)
	assert.Equal(t, 650.0, summary.Amount)

	var cfgCount int64
	require.NoError(t, db.Model(&models.OperatingExpenseConfig{}).Where("bid_id = ?", bid.BidID).Count(&cfgCount).Error)
	assert.Equal(t, int64(1), cfgCount)
}

// Bids with no itemized lines keep their directly entered subtotals.
func TestRecalculate_NoLinesUsesBreakdownSubtotals(t *testing.T) {
	o, db := setupRecalcTest(t)
	bid := seedBid(t, db, uuid.New())

	require.NoError(t, db.Model(&models.FinancialBreakdown{}).Where("bid_id = ?", bid.BidID).Updates(map[string]interface{}{
		"materials": 300.0, "labor": 200.0, "travel": 100.0,
		"actual_materials": 330.0, "actual_labor": 200.0, "actual_travel": 120.0,
	}).Error)

	summary, err := o.Recalculate(context.Background(), bid.BidID)
	require.NoError(t, err)
	assert.Equal(t, 600.0, summary.Breakdown.TotalCost)
	assert.Equal(t, 650.0, summary.Breakdown.ActualTotalCost)
	assert.Equal(t, 650.0, summary.Amount)
}

func TestRecalculate_OrgDefaultFallback(t *testing.T) {
	o, db := setupRecalcTest(t)
	org := &models.Organization{Name: "Ferro Mechanical", GrossRevenuePreviousYear: 500000, OperatingCostPreviousYear: 100000, InflationRate: 5}
	require.NoError(t, db.Create(org).Error)
	bid := seedBid(t, db, org.OrgID)

	require.NoError(t, db.Create(&models.MaterialLine{
		BidID: bid.BidID, Name: "Equipment",
		TotalCost: 10000, TotalPrice: 10000,
		ActualTotalCost: 10000, ActualTotalPrice: 10000,
	}).Error)
	require.NoError(t, db.Model(&models.OperatingExpenseConfig{}).Where("bid_id = ?", bid.BidID).Update("enabled", true).Error)

	summary, err := o.Recalculate(context.Background(), bid.BidID)
	require.NoError(t, err)
	assert.Equal(t, 12100.0, summary.Amount)
}

// A bid-level parameter overrides only its own field; the rest still come from
// the organization.
func TestRecalculate_PerFieldOverride(t *testing.T) {
	o, db := setupRecalcTest(t)
	org := &models.Organization{Name: "Ferro Mechanical", GrossRevenuePreviousYear: 500000, OperatingCostPreviousYear: 100000, InflationRate: 5}
	require.NoError(t, db.Create(org).Error)
	bid := seedBid(t, db, org.OrgID)

	require.NoError(t, db.Create(&models.MaterialLine{
		BidID: bid.BidID, Name: "Equipment",
		TotalCost: 10000, TotalPrice: 10000,
		ActualTotalCost: 10000, ActualTotalPrice: 10000,
	}).Error)
	require.NoError(t, db.Model(&models.OperatingExpenseConfig{}).Where("bid_id = ?", bid.BidID).Updates(map[string]interface{}{
		"enabled":        true,
		"inflation_rate": 10.0,
	}).Error)

	summary, err := o.Recalculate(context.Background(), bid.BidID)
	require.NoError(t, err)
	assert.Equal(t, 2200.0, summary.Breakdown.ActualOperatingExpense)
	assert.Equal(t, 12200.0, summary.Amount)
}

func TestRecalculate_NegativeDirectCostRejected(t *testing.T) {
	o, db := setupRecalcTest(t)
	bid := seedBid(t, db, uuid.New())

	require.NoError(t, db.Model(&models.FinancialBreakdown{}).Where("bid_id = ?", bid.BidID).Update("actual_materials", -50.0).Error)
	require.NoError(t, db.Model(&models.OperatingExpenseConfig{}).Where("bid_id = ?", bid.BidID).Updates(map[string]interface{}{
		"enabled":                      true,
		"gross_revenue_previous_year":  500000.0,
		"operating_cost_previous_year": 100000.0,
	}).Error)

	_, err := o.Recalculate(context.Background(), bid.BidID)
	v, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "total_cost", v.Field)
}

// Zero prior-year revenue zeroes the add-on and falls back to direct cost.
func TestRecalculate_DegenerateRevenue(t *testing.T) {
	o, db := setupRecalcTest(t)
	bid := seedBid(t, db, uuid.New())

	require.NoError(t, db.Create(&models.MaterialLine{
		BidID: bid.BidID, Name: "Equipment",
		TotalCost: 999.5, TotalPrice: 999.5,
		ActualTotalCost: 999.5, ActualTotalPrice: 999.5,
	}).Error)
	require.NoError(t, db.Model(&models.OperatingExpenseConfig{}).Where("bid_id = ?", bid.BidID).Updates(map[string]interface{}{
		"enabled":                      true,
		"gross_revenue_previous_year":  0.0,
		"operating_cost_previous_year": 100000.0,
		"inflation_rate":               5.0,
	}).Error)

	summary, err := o.Recalculate(context.Background(), bid.BidID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Breakdown.ActualOperatingExpense)
	assert.Equal(t, 999.5, summary.Breakdown.ActualTotalPrice)
	assert.Equal(t, 1000.0, summary.Amount)
}

func TestRecalculate_BidNotFound(t *testing.T) {
	o, _ := setupRecalcTest(t)
	_, err := o.Recalculate(context.Background(), uuid.New())
	assert.Equal(t, apperr.ErrNotFound, err)
}
