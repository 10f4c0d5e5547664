package recalc

import (
	"ferro-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subtotals is the per-track sum of a bid's cost lines.
type Subtotals struct {
	Materials       float64
	Labor           float64
	Travel          float64
	ActualMaterials float64
	ActualLabor     float64
	ActualTravel    float64
}

func (s Subtotals) TotalCost() float64 {
	return round2(s.Materials + s.Labor + s.Travel)
}

func (s Subtotals) ActualTotalCost() float64 {
	return round2(s.ActualMaterials + s.ActualLabor + s.ActualTravel)
}

// SumLines recomputes subtotals from the bid's non-deleted cost lines.
// hasLines is false when the bid has no itemized lines at all, in which case
// the breakdown's own subtotal fields are the source of truth.
func SumLines(tx *gorm.DB, bidID uuid.UUID) (Subtotals, bool, error) {
	var sub Subtotals
	var count int64

	var materials []models.MaterialLine
	if err := tx.Where("bid_id = ?", bidID).Find(&materials).Error; err != nil {
		return sub, false, err
	}
	for _, m := range materials {
		sub.Materials += m.TotalCost
		sub.ActualMaterials += m.ActualTotalCost
	}
	count += int64(len(materials))

	var labor []models.LaborLine
	if err := tx.Where("bid_id = ?", bidID).Find(&labor).Error; err != nil {
		return sub, false, err
	}
	for _, l := range labor {
		sub.Labor += l.TotalCost
		sub.ActualLabor += l.ActualTotalCost
	}
	count += int64(len(labor))

	var travel []models.TravelLine
	if err := tx.Where("bid_id = ?", bidID).Find(&travel).Error; err != nil {
		return sub, false, err
	}
	for _, t := range travel {
		sub.Travel += t.TotalCost
		sub.ActualTravel += t.ActualTotalCost
	}
	count += int64(len(travel))

	sub.Materials = round2(sub.Materials)
	sub.Labor = round2(sub.Labor)
	sub.Travel = round2(sub.Travel)
	sub.ActualMaterials = round2(sub.ActualMaterials)
	sub.ActualLabor = round2(sub.ActualLabor)
	sub.ActualTravel = round2(sub.ActualTravel)

	return sub, count > 0, nil
}
