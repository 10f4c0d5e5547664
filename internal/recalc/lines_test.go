package recalc

import (
	"testing"

	"ferro-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumLines_PerTrack(t *testing.T) {
	_, db := setupRecalcTest(t)
	bidID := uuid.New()

	require.NoError(t, db.Create(&models.MaterialLine{BidID: bidID, Name: "Pipe", TotalCost: 100, ActualTotalCost: 110}).Error)
	require.NoError(t, db.Create(&models.MaterialLine{BidID: bidID, Name: "Fittings", TotalCost: 50, ActualTotalCost: 50}).Error)
	require.NoError(t, db.Create(&models.LaborLine{BidID: bidID, Position: "Technician", TotalCost: 400, ActualTotalCost: 480}).Error)
	require.NoError(t, db.Create(&models.TravelLine{BidID: bidID, LaborLineID: uuid.New(), TotalCost: 60, ActualTotalCost: 60}).Error)

	sub, hasLines, err := SumLines(db, bidID)
	require.NoError(t, err)
	assert.True(t, hasLines)
	assert.Equal(t, 150.0, sub.Materials)
	assert.Equal(t, 400.0, sub.Labor)
	assert.Equal(t, 60.0, sub.Travel)
	assert.Equal(t, 160.0, sub.ActualMaterials)
	assert.Equal(t, 610.0, sub.TotalCost())
	assert.Equal(t, 700.0, sub.ActualTotalCost())
}

func TestSumLines_Empty(t *testing.T) {
	_, db := setupRecalcTest(t)
	_, hasLines, err := SumLines(db, uuid.New())
	require.NoError(t, err)
	assert.False(t, hasLines)
}
