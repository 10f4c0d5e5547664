package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialLine is one itemized material row on a bid. Totals are derived from
// the track's own quantity/unit cost/markup and recomputed on every write.
type MaterialLine struct {
	LineID              uuid.UUID      `gorm:"column:line_id;type:uuid;primaryKey" json:"line_id"`
	BidID               uuid.UUID      `gorm:"column:bid_id;type:uuid;not null;index" json:"bid_id"`
	Name                string         `gorm:"column:name;not null" json:"name"`
	Quantity            float64        `gorm:"column:quantity;type:decimal(18,2);default:0" json:"quantity"`
	UnitCost            float64        `gorm:"column:unit_cost;type:decimal(18,2);default:0" json:"unit_cost"`
	MarkupPercent       float64        `gorm:"column:markup_percent;type:decimal(18,2);default:0" json:"markup_percent"`
	TotalCost           float64        `gorm:"column:total_cost;type:decimal(18,2);default:0" json:"total_cost"`
	TotalPrice          float64        `gorm:"column:total_price;type:decimal(18,2);default:0" json:"total_price"`
	ActualQuantity      float64        `gorm:"column:actual_quantity;type:decimal(18,2);default:0" json:"actual_quantity"`
	ActualUnitCost      float64        `gorm:"column:actual_unit_cost;type:decimal(18,2);default:0" json:"actual_unit_cost"`
	ActualMarkupPercent float64        `gorm:"column:actual_markup_percent;type:decimal(18,2);default:0" json:"actual_markup_percent"`
	ActualTotalCost     float64        `gorm:"column:actual_total_cost;type:decimal(18,2);default:0" json:"actual_total_cost"`
	ActualTotalPrice    float64        `gorm:"column:actual_total_price;type:decimal(18,2);default:0" json:"actual_total_price"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MaterialLine) TableName() string {
	return "MaterialLines"
}

func (m *MaterialLine) BeforeCreate(tx *gorm.DB) error {
	if m.LineID == uuid.Nil {
		m.LineID = uuid.New()
	}
	return nil
}

// LaborLine is one itemized labor row on a bid.
type LaborLine struct {
	LineID             uuid.UUID      `gorm:"column:line_id;type:uuid;primaryKey" json:"line_id"`
	BidID              uuid.UUID      `gorm:"column:bid_id;type:uuid;not null;index" json:"bid_id"`
	Position           string         `gorm:"column:position;not null" json:"position"`
	Days               float64        `gorm:"column:days;type:decimal(18,2);default:0" json:"days"`
	HoursPerDay        float64        `gorm:"column:hours_per_day;type:decimal(18,2);default:0" json:"hours_per_day"`
	TotalHours         float64        `gorm:"column:total_hours;type:decimal(18,2);default:0" json:"total_hours"`
	CostRate           float64        `gorm:"column:cost_rate;type:decimal(18,2);default:0" json:"cost_rate"`
	BillableRate       float64        `gorm:"column:billable_rate;type:decimal(18,2);default:0" json:"billable_rate"`
	TotalCost          float64        `gorm:"column:total_cost;type:decimal(18,2);default:0" json:"total_cost"`
	TotalPrice         float64        `gorm:"column:total_price;type:decimal(18,2);default:0" json:"total_price"`
	ActualDays         float64        `gorm:"column:actual_days;type:decimal(18,2);default:0" json:"actual_days"`
	ActualHoursPerDay  float64        `gorm:"column:actual_hours_per_day;type:decimal(18,2);default:0" json:"actual_hours_per_day"`
	ActualTotalHours   float64        `gorm:"column:actual_total_hours;type:decimal(18,2);default:0" json:"actual_total_hours"`
	ActualCostRate     float64        `gorm:"column:actual_cost_rate;type:decimal(18,2);default:0" json:"actual_cost_rate"`
	ActualBillableRate float64        `gorm:"column:actual_billable_rate;type:decimal(18,2);default:0" json:"actual_billable_rate"`
	ActualTotalCost    float64        `gorm:"column:actual_total_cost;type:decimal(18,2);default:0" json:"actual_total_cost"`
	ActualTotalPrice   float64        `gorm:"column:actual_total_price;type:decimal(18,2);default:0" json:"actual_total_price"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LaborLine) TableName() string {
	return "LaborLines"
}

func (l *LaborLine) BeforeCreate(tx *gorm.DB) error {
	if l.LineID == uuid.Nil {
		l.LineID = uuid.New()
	}
	return nil
}

// TravelLine is owned by exactly one labor line (unique labor_line_id).
type TravelLine struct {
	LineID               uuid.UUID      `gorm:"column:line_id;type:uuid;primaryKey" json:"line_id"`
	BidID                uuid.UUID      `gorm:"column:bid_id;type:uuid;not null;index" json:"bid_id"`
	LaborLineID          uuid.UUID      `gorm:"column:labor_line_id;type:uuid;not null;uniqueIndex" json:"labor_line_id"`
	RoundTripMiles       float64        `gorm:"column:round_trip_miles;type:decimal(18,2);default:0" json:"round_trip_miles"`
	MileageRate          float64        `gorm:"column:mileage_rate;type:decimal(18,2);default:0" json:"mileage_rate"`
	VehicleDayRate       float64        `gorm:"column:vehicle_day_rate;type:decimal(18,2);default:0" json:"vehicle_day_rate"`
	Days                 float64        `gorm:"column:days;type:decimal(18,2);default:0" json:"days"`
	MileageCost          float64        `gorm:"column:mileage_cost;type:decimal(18,2);default:0" json:"mileage_cost"`
	VehicleCost          float64        `gorm:"column:vehicle_cost;type:decimal(18,2);default:0" json:"vehicle_cost"`
	TotalCost            float64        `gorm:"column:total_cost;type:decimal(18,2);default:0" json:"total_cost"`
	ActualRoundTripMiles float64        `gorm:"column:actual_round_trip_miles;type:decimal(18,2);default:0" json:"actual_round_trip_miles"`
	ActualMileageRate    float64        `gorm:"column:actual_mileage_rate;type:decimal(18,2);default:0" json:"actual_mileage_rate"`
	ActualVehicleDayRate float64        `gorm:"column:actual_vehicle_day_rate;type:decimal(18,2);default:0" json:"actual_vehicle_day_rate"`
	ActualDays           float64        `gorm:"column:actual_days;type:decimal(18,2);default:0" json:"actual_days"`
	ActualMileageCost    float64        `gorm:"column:actual_mileage_cost;type:decimal(18,2);default:0" json:"actual_mileage_cost"`
	ActualVehicleCost    float64        `gorm:"column:actual_vehicle_cost;type:decimal(18,2);default:0" json:"actual_vehicle_cost"`
	ActualTotalCost      float64        `gorm:"column:actual_total_cost;type:decimal(18,2);default:0" json:"actual_total_cost"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TravelLine) TableName() string {
	return "TravelLines"
}

func (t *TravelLine) BeforeCreate(tx *gorm.DB) error {
	if t.LineID == uuid.Nil {
		t.LineID = uuid.New()
	}
	return nil
}
