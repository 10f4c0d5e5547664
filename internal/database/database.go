package database

import (
	"ferro-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 ("prepared statement already exists") when
// the connection goes through a pooler (PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for the reconciliation engine's models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Organization{},
		&models.Employee{},
		&models.Bid{},
		&models.FinancialBreakdown{},
		&models.OperatingExpenseConfig{},
		&models.MaterialLine{},
		&models.LaborLine{},
		&models.TravelLine{},
		&models.TimelineEvent{},
		&models.BidHistory{},
	)
}
