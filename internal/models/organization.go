package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization carries the org-wide operating-expense defaults used when a bid's
// own config leaves a parameter unset. The rest of org CRUD lives elsewhere.
type Organization struct {
	OrgID                     uuid.UUID      `gorm:"column:org_id;type:uuid;primaryKey" json:"org_id"`
	Name                      string         `gorm:"column:name;not null" json:"name"`
	GrossRevenuePreviousYear  float64        `gorm:"column:gross_revenue_previous_year;type:decimal(18,2);default:0" json:"gross_revenue_previous_year"`
	OperatingCostPreviousYear float64        `gorm:"column:operating_cost_previous_year;type:decimal(18,2);default:0" json:"operating_cost_previous_year"`
	InflationRate             float64        `gorm:"column:inflation_rate;type:decimal(18,2);default:0" json:"inflation_rate"`
	CreatedAt                 time.Time      `json:"createdAt"`
	UpdatedAt                 time.Time      `json:"updatedAt"`
	DeletedAt                 gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Organization) TableName() string {
	return "Organizations"
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.OrgID == uuid.Nil {
		o.OrgID = uuid.New()
	}
	return nil
}

// Employee exists here only for referential checks on supervisor / primary
// technician ids at bid creation.
type Employee struct {
	EmployeeID uuid.UUID      `gorm:"column:employee_id;type:uuid;primaryKey" json:"employee_id"`
	OrgID      uuid.UUID      `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	Fullname   string         `gorm:"column:fullname;not null" json:"fullname"`
	Position   string         `gorm:"column:position" json:"position"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Employee) TableName() string {
	return "Employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.EmployeeID == uuid.Nil {
		e.EmployeeID = uuid.New()
	}
	return nil
}
