// Package costlines persists the itemized cost components of a bid:
// material lines, labor lines, and the travel line paired with a labor line.
package costlines

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

var materialSchema = dualtrack.Schema{
	Pairs: []dualtrack.Pair{
		{Initial: "quantity", Actual: "actual_quantity"},
		{Initial: "unit_cost", Actual: "actual_unit_cost"},
		{Initial: "markup_percent", Actual: "actual_markup_percent"},
	},
	Plain: []string{"name"},
}

var laborSchema = dualtrack.Schema{
	Pairs: []dualtrack.Pair{
		{Initial: "days", Actual: "actual_days"},
		{Initial: "hours_per_day", Actual: "actual_hours_per_day"},
		{Initial: "cost_rate", Actual: "actual_cost_rate"},
		{Initial: "billable_rate", Actual: "actual_billable_rate"},
	},
	Plain: []string{"position"},
}

var travelSchema = dualtrack.Schema{
	Pairs: []dualtrack.Pair{
		{Initial: "round_trip_miles", Actual: "actual_round_trip_miles"},
		{Initial: "mileage_rate", Actual: "actual_mileage_rate"},
		{Initial: "vehicle_day_rate", Actual: "actual_vehicle_day_rate"},
		{Initial: "days", Actual: "actual_days"},
	},
}

// Columns holding strings rather than money; excluded from numeric coercion.
var stringColumns = map[string]bool{"name": true, "position": true}

type Service struct {
	DB *gorm.DB
}

// MaterialInput seeds a new material line; actual values start as copies of
// the quoted ones.
type MaterialInput struct {
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	UnitCost      float64 `json:"unit_cost"`
	MarkupPercent float64 `json:"markup_percent"`
}

type LaborInput struct {
	Position     string  `json:"position"`
	Days         float64 `json:"days"`
	HoursPerDay  float64 `json:"hours_per_day"`
	CostRate     float64 `json:"cost_rate"`
	BillableRate float64 `json:"billable_rate"`
}

type TravelInput struct {
	RoundTripMiles float64 `json:"round_trip_miles"`
	MileageRate    float64 `json:"mileage_rate"`
	VehicleDayRate float64 `json:"vehicle_day_rate"`
	Days           float64 `json:"days"`
}

func (s *Service) CreateMaterial(ctx context.Context, bidID uuid.UUID, in MaterialInput) (*models.MaterialLine, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name", "Material name is required")
	}
	line := &models.MaterialLine{
		BidID:               bidID,
		Name:                in.Name,
		Quantity:            in.Quantity,
		UnitCost:            in.UnitCost,
		MarkupPercent:       in.MarkupPercent,
		ActualQuantity:      in.Quantity,
		ActualUnitCost:      in.UnitCost,
		ActualMarkupPercent: in.MarkupPercent,
	}
	applyMaterialTotals(line)
	if err := s.DB.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

func (s *Service) CreateLabor(ctx context.Context, bidID uuid.UUID, in LaborInput) (*models.LaborLine, error) {
	if in.Position == "" {
		return nil, apperr.Validation("position", "Labor position is required")
	}
	line := newLaborLine(bidID, in)
	if err := s.DB.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

func (s *Service) CreateTravel(ctx context.Context, bidID, laborLineID uuid.UUID, in TravelInput) (*models.TravelLine, error) {
	var labor models.LaborLine
	if err := s.DB.WithContext(ctx).Where("line_id = ? AND bid_id = ?", laborLineID, bidID).First(&labor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.Referential("labor_line_id", "Labor line not found for travel line")
		}
		return nil, err
	}
	var paired int64
	if err := s.DB.WithContext(ctx).Model(&models.TravelLine{}).Where("labor_line_id = ?", laborLineID).Count(&paired).Error; err != nil {
		return nil, err
	}
	if paired > 0 {
		return nil, apperr.Validation("labor_line_id", "Labor line already has a travel line")
	}
	line := newTravelLine(bidID, laborLineID, in)
	if err := s.DB.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// CreateLaborWithTravel creates a labor line and its paired travel line as one
// atomic unit.
func (s *Service) CreateLaborWithTravel(ctx context.Context, bidID uuid.UUID, laborIn LaborInput, travelIn TravelInput) (*models.LaborLine, *models.TravelLine, error) {
	if laborIn.Position == "" {
		return nil, nil, apperr.Validation("position", "Labor position is required")
	}
	labor := newLaborLine(bidID, laborIn)
	var travel *models.TravelLine
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(labor).Error; err != nil {
			return err
		}
		travel = newTravelLine(bidID, labor.LineID, travelIn)
		return tx.Create(travel).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return labor, travel, nil
}

func (s *Service) UpdateMaterial(ctx context.Context, lineID uuid.UUID, patch map[string]interface{}) (*models.MaterialLine, error) {
	var line models.MaterialLine
	err := s.updateLine(ctx, &line, lineID, materialSchema, patch, func() map[string]interface{} {
		applyMaterialTotals(&line)
		return map[string]interface{}{
			"total_cost":         line.TotalCost,
			"total_price":        line.TotalPrice,
			"actual_total_cost":  line.ActualTotalCost,
			"actual_total_price": line.ActualTotalPrice,
		}
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *Service) UpdateLabor(ctx context.Context, lineID uuid.UUID, patch map[string]interface{}) (*models.LaborLine, error) {
	var line models.LaborLine
	err := s.updateLine(ctx, &line, lineID, laborSchema, patch, func() map[string]interface{} {
		applyLaborTotals(&line)
		return map[string]interface{}{
			"total_hours":        line.TotalHours,
			"total_cost":         line.TotalCost,
			"total_price":        line.TotalPrice,
			"actual_total_hours": line.ActualTotalHours,
			"actual_total_cost":  line.ActualTotalCost,
			"actual_total_price": line.ActualTotalPrice,
		}
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *Service) UpdateTravel(ctx context.Context, lineID uuid.UUID, patch map[string]interface{}) (*models.TravelLine, error) {
	var line models.TravelLine
	err := s.updateLine(ctx, &line, lineID, travelSchema, patch, func() map[string]interface{} {
		applyTravelTotals(&line)
		return map[string]interface{}{
			"mileage_cost":        line.MileageCost,
			"vehicle_cost":        line.VehicleCost,
			"total_cost":          line.TotalCost,
			"actual_mileage_cost": line.ActualMileageCost,
			"actual_vehicle_cost": line.ActualVehicleCost,
			"actual_total_cost":   line.ActualTotalCost,
		}
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// updateLine applies the dual-track patch to an existing line, then recomputes
// the line's derived totals per track. dest must be a pointer to the line model.
func (s *Service) updateLine(ctx context.Context, dest interface{}, lineID uuid.UUID, schema dualtrack.Schema, patch map[string]interface{}, totals func() map[string]interface{}) error {
	cols, err := trackColumns(schema, patch)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("line_id = ?", lineID).First(dest).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.ErrNotFound
			}
			return err
		}
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(dest).Updates(cols).Error; err != nil {
			return err
		}
		if err := tx.Where("line_id = ?", lineID).First(dest).Error; err != nil {
			return err
		}
		return tx.Model(dest).Updates(totals()).Error
	})
}

func (s *Service) GetMaterial(ctx context.Context, lineID uuid.UUID) (*models.MaterialLine, error) {
	var line models.MaterialLine
	if err := s.first(ctx, &line, lineID); err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *Service) GetLabor(ctx context.Context, lineID uuid.UUID) (*models.LaborLine, error) {
	var line models.LaborLine
	if err := s.first(ctx, &line, lineID); err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *Service) GetTravel(ctx context.Context, lineID uuid.UUID) (*models.TravelLine, error) {
	var line models.TravelLine
	if err := s.first(ctx, &line, lineID); err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *Service) first(ctx context.Context, dest interface{}, lineID uuid.UUID) error {
	err := s.DB.WithContext(ctx).Where("line_id = ?", lineID).First(dest).Error
	if err == gorm.ErrRecordNotFound {
		return apperr.ErrNotFound
	}
	return err
}

func (s *Service) ListMaterials(ctx context.Context, bidID uuid.UUID) ([]models.MaterialLine, error) {
	var lines []models.MaterialLine
	err := s.DB.WithContext(ctx).Where("bid_id = ?", bidID).Order("created_at ASC").Find(&lines).Error
	return lines, err
}

func (s *Service) ListLabor(ctx context.Context, bidID uuid.UUID) ([]models.LaborLine, error) {
	var lines []models.LaborLine
	err := s.DB.WithContext(ctx).Where("bid_id = ?", bidID).Order("created_at ASC").Find(&lines).Error
	return lines, err
}

func (s *Service) ListTravel(ctx context.Context, bidID uuid.UUID) ([]models.TravelLine, error) {
	var lines []models.TravelLine
	err := s.DB.WithContext(ctx).Where("bid_id = ?", bidID).Order("created_at ASC").Find(&lines).Error
	return lines, err
}

func (s *Service) DeleteMaterial(ctx context.Context, lineID uuid.UUID) error {
	return s.softDelete(ctx, &models.MaterialLine{}, lineID)
}

// DeleteLabor soft-deletes a labor line and its paired travel line, if any.
func (s *Service) DeleteLabor(ctx context.Context, lineID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("line_id = ?", lineID).Delete(&models.LaborLine{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return tx.Where("labor_line_id = ?", lineID).Delete(&models.TravelLine{}).Error
	})
}

func (s *Service) DeleteTravel(ctx context.Context, lineID uuid.UUID) error {
	return s.softDelete(ctx, &models.TravelLine{}, lineID)
}

func (s *Service) softDelete(ctx context.Context, model interface{}, lineID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("line_id = ?", lineID).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func newLaborLine(bidID uuid.UUID, in LaborInput) *models.LaborLine {
	line := &models.LaborLine{
		BidID:              bidID,
		Position:           in.Position,
		Days:               in.Days,
		HoursPerDay:        in.HoursPerDay,
		CostRate:           in.CostRate,
		BillableRate:       in.BillableRate,
		ActualDays:         in.Days,
		ActualHoursPerDay:  in.HoursPerDay,
		ActualCostRate:     in.CostRate,
		ActualBillableRate: in.BillableRate,
	}
	applyLaborTotals(line)
	return line
}

func newTravelLine(bidID, laborLineID uuid.UUID, in TravelInput) *models.TravelLine {
	line := &models.TravelLine{
		BidID:                bidID,
		LaborLineID:          laborLineID,
		RoundTripMiles:       in.RoundTripMiles,
		MileageRate:          in.MileageRate,
		VehicleDayRate:       in.VehicleDayRate,
		Days:                 in.Days,
		ActualRoundTripMiles: in.RoundTripMiles,
		ActualMileageRate:    in.MileageRate,
		ActualVehicleDayRate: in.VehicleDayRate,
		ActualDays:           in.Days,
	}
	applyTravelTotals(line)
	return line
}

func applyMaterialTotals(m *models.MaterialLine) {
	m.TotalCost = round2(m.Quantity * m.UnitCost)
	m.TotalPrice = round2(m.TotalCost * (1 + m.MarkupPercent/100))
	m.ActualTotalCost = round2(m.ActualQuantity * m.ActualUnitCost)
	m.ActualTotalPrice = round2(m.ActualTotalCost * (1 + m.ActualMarkupPercent/100))
}

func applyLaborTotals(l *models.LaborLine) {
	l.TotalHours = round2(l.Days * l.HoursPerDay)
	l.TotalCost = round2(l.TotalHours * l.CostRate)
	l.TotalPrice = round2(l.TotalHours * l.BillableRate)
	l.ActualTotalHours = round2(l.ActualDays * l.ActualHoursPerDay)
	l.ActualTotalCost = round2(l.ActualTotalHours * l.ActualCostRate)
	l.ActualTotalPrice = round2(l.ActualTotalHours * l.ActualBillableRate)
}

func applyTravelTotals(t *models.TravelLine) {
	t.MileageCost = round2(t.RoundTripMiles * t.MileageRate * t.Days)
	t.VehicleCost = round2(t.VehicleDayRate * t.Days)
	t.TotalCost = round2(t.MileageCost + t.VehicleCost)
	t.ActualMileageCost = round2(t.ActualRoundTripMiles * t.ActualMileageRate * t.ActualDays)
	t.ActualVehicleCost = round2(t.ActualVehicleDayRate * t.ActualDays)
	t.ActualTotalCost = round2(t.ActualMileageCost + t.ActualVehicleCost)
}

// trackColumns validates tracked numeric columns; name/position pass through.
func trackColumns(schema dualtrack.Schema, patch map[string]interface{}) (map[string]interface{}, error) {
	cols := schema.UpdateColumns(patch)
	for name, v := range cols {
		if stringColumns[name] {
			continue
		}
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
