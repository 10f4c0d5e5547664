package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OperatingExpenseConfig holds the overhead parameters for one bid.
// The three parameter columns are pointers: nil means "unset, fall back to the
// organization-wide default" during recalculation. The allocation/add-on columns
// are outputs of the calculator, dual-tracked like every other money figure.
type OperatingExpenseConfig struct {
	ConfigID                    uuid.UUID      `gorm:"column:config_id;type:uuid;primaryKey" json:"config_id"`
	BidID                       uuid.UUID      `gorm:"column:bid_id;type:uuid;not null;uniqueIndex" json:"bid_id"`
	Enabled                     bool           `gorm:"column:enabled;default:false" json:"enabled"`
	GrossRevenuePreviousYear    *float64       `gorm:"column:gross_revenue_previous_year;type:decimal(18,2)" json:"gross_revenue_previous_year"`
	OperatingCostPreviousYear   *float64       `gorm:"column:operating_cost_previous_year;type:decimal(18,2)" json:"operating_cost_previous_year"`
	InflationRate               *float64       `gorm:"column:inflation_rate;type:decimal(18,2)" json:"inflation_rate"`
	OverheadAllocation          float64        `gorm:"column:overhead_allocation;type:decimal(18,2);default:0" json:"overhead_allocation"`
	TotalOperatingExpense       float64        `gorm:"column:total_operating_expense;type:decimal(18,2);default:0" json:"total_operating_expense"`
	ActualOverheadAllocation    float64        `gorm:"column:actual_overhead_allocation;type:decimal(18,2);default:0" json:"actual_overhead_allocation"`
	ActualTotalOperatingExpense float64        `gorm:"column:actual_total_operating_expense;type:decimal(18,2);default:0" json:"actual_total_operating_expense"`
	MarkupEnabled               bool           `gorm:"column:markup_enabled;default:false" json:"markup_enabled"`
	MarkupPercent               float64        `gorm:"column:markup_percent;type:decimal(18,2);default:0" json:"markup_percent"`
	CreatedAt                   time.Time      `json:"createdAt"`
	UpdatedAt                   time.Time      `json:"updatedAt"`
	DeletedAt                   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OperatingExpenseConfig) TableName() string {
	return "OperatingExpenseConfigs"
}

func (o *OperatingExpenseConfig) BeforeCreate(tx *gorm.DB) error {
	if o.ConfigID == uuid.Nil {
		o.ConfigID = uuid.New()
	}
	return nil
}
