package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinancialBreakdown is the per-bid rollup. Every figure exists in two tracks:
// the initial (quoted) columns and the actual_ (realized) columns.
// TotalCost/TotalPrice/GrossProfit are maintained by the recalculation cascade,
// never trusted from direct writes.
type FinancialBreakdown struct {
	BreakdownID            uuid.UUID      `gorm:"column:breakdown_id;type:uuid;primaryKey" json:"breakdown_id"`
	BidID                  uuid.UUID      `gorm:"column:bid_id;type:uuid;not null;uniqueIndex" json:"bid_id"`
	Materials              float64        `gorm:"column:materials;type:decimal(18,2);default:0" json:"materials"`
	Labor                  float64        `gorm:"column:labor;type:decimal(18,2);default:0" json:"labor"`
	Travel                 float64        `gorm:"column:travel;type:decimal(18,2);default:0" json:"travel"`
	OperatingExpense       float64        `gorm:"column:operating_expense;type:decimal(18,2);default:0" json:"operating_expense"`
	TotalCost              float64        `gorm:"column:total_cost;type:decimal(18,2);default:0" json:"total_cost"`
	TotalPrice             float64        `gorm:"column:total_price;type:decimal(18,2);default:0" json:"total_price"`
	GrossProfit            float64        `gorm:"column:gross_profit;type:decimal(18,2);default:0" json:"gross_profit"`
	ActualMaterials        float64        `gorm:"column:actual_materials;type:decimal(18,2);default:0" json:"actual_materials"`
	ActualLabor            float64        `gorm:"column:actual_labor;type:decimal(18,2);default:0" json:"actual_labor"`
	ActualTravel           float64        `gorm:"column:actual_travel;type:decimal(18,2);default:0" json:"actual_travel"`
	ActualOperatingExpense float64        `gorm:"column:actual_operating_expense;type:decimal(18,2);default:0" json:"actual_operating_expense"`
	ActualTotalCost        float64        `gorm:"column:actual_total_cost;type:decimal(18,2);default:0" json:"actual_total_cost"`
	ActualTotalPrice       float64        `gorm:"column:actual_total_price;type:decimal(18,2);default:0" json:"actual_total_price"`
	ActualGrossProfit      float64        `gorm:"column:actual_gross_profit;type:decimal(18,2);default:0" json:"actual_gross_profit"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

func (FinancialBreakdown) TableName() string {
	return "FinancialBreakdowns"
}

func (f *FinancialBreakdown) BeforeCreate(tx *gorm.DB) error {
	if f.BreakdownID == uuid.Nil {
		f.BreakdownID = uuid.New()
	}
	return nil
}
