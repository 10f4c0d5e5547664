package breakdown

import (
	"context"
	"testing"

	"ferro-backend/internal/models"
	"ferro-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBreakdownTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FinancialBreakdown{}))
	return &Service{DB: db}, db
}

func TestUpdate_InitialOnlyMirrorsToActual(t *testing.T) {
	s, db := setupBreakdownTest(t)
	bidID := uuid.New()
	require.NoError(t, db.Create(&models.FinancialBreakdown{BidID: bidID}).Error)

	fb, err := s.Update(context.Background(), bidID, map[string]interface{}{"materials": 1200.0})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, fb.Materials)
	assert.Equal(t, 1200.0, fb.ActualMaterials)
}

func TestUpdate_ActualOnlyLeavesInitial(t *testing.T) {
	s, db := setupBreakdownTest(t)
	bidID := uuid.New()
	require.NoError(t, db.Create(&models.FinancialBreakdown{BidID: bidID, Labor: 800, ActualLabor: 800}).Error)

	fb, err := s.Update(context.Background(), bidID, map[string]interface{}{"actual_labor": 950.0})
	require.NoError(t, err)
	assert.Equal(t, 800.0, fb.Labor)
	assert.Equal(t, 950.0, fb.ActualLabor)
}

// A patch with initial values against a missing row inserts it, actual seeded
// from initial.
func TestUpdate_InsertsMissingRow(t *testing.T) {
	s, _ := setupBreakdownTest(t)
	bidID := uuid.New()

	fb, err := s.Update(context.Background(), bidID, map[string]interface{}{"travel": 75.0})
	require.NoError(t, err)
	assert.Equal(t, 75.0, fb.Travel)
	assert.Equal(t, 75.0, fb.ActualTravel)
}

// An actual-only patch against a missing row reports the missing state rather
// than conjuring a half-initialized rollup.
func TestUpdate_ActualOnlyOnMissingRow(t *testing.T) {
	s, _ := setupBreakdownTest(t)
	_, err := s.Update(context.Background(), uuid.New(), map[string]interface{}{"actual_travel": 75.0})
	assert.Equal(t, apperr.ErrNotFound, err)
}

func TestUpdate_RejectsMalformedNumber(t *testing.T) {
	s, db := setupBreakdownTest(t)
	bidID := uuid.New()
	require.NoError(t, db.Create(&models.FinancialBreakdown{BidID: bidID}).Error)

	_, err := s.Update(context.Background(), bidID, map[string]interface{}{"materials": "lots"})
	v, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "materials", v.Field)
}

// Unknown columns, including cascade-owned totals, are ignored.
func TestUpdate_IgnoresCascadeOwnedColumns(t *testing.T) {
	s, db := setupBreakdownTest(t)
	bidID := uuid.New()
	require.NoError(t, db.Create(&models.FinancialBreakdown{BidID: bidID}).Error)

	fb, err := s.Update(context.Background(), bidID, map[string]interface{}{"total_price": 99999.0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, fb.TotalPrice)
}

func TestGetByBid_NotFound(t *testing.T) {
	s, _ := setupBreakdownTest(t)
	_, err := s.GetByBid(context.Background(), uuid.New())
	assert.Equal(t, apperr.ErrNotFound, err)
}
