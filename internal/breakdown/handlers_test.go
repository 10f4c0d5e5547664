package breakdown

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"ferro-backend/internal/models"
	"ferro-backend/internal/orgs"
	"ferro-backend/internal/recalc"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBreakdownRoutes(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Organization{}, &models.Bid{}, &models.FinancialBreakdown{},
		&models.OperatingExpenseConfig{}, &models.MaterialLine{}, &models.LaborLine{}, &models.TravelLine{},
	))
	h := &Handlers{
		Service: &Service{DB: db},
		Recalc:  &recalc.Orchestrator{DB: db, Defaults: &orgs.Service{DB: db}},
	}

	app := fiber.New()
	group := app.Group("/api/v1/breakdowns")
	group.Get("/get-breakdown/:bid_id", h.GetBreakdown)
	group.Patch("/update-breakdown/:bid_id", h.UpdateBreakdown)
	return app, db
}

// A direct subtotal edit over the wire runs the full cascade and returns the
// recalculated summary.
func TestUpdateBreakdownRoute_RunsCascade(t *testing.T) {
	app, db := setupBreakdownRoutes(t)
	bid := &models.Bid{OrgID: uuid.New(), SequenceNumber: uuid.NewString(), Title: "Rooftop unit", JobType: models.JobTypeGeneral, Status: models.BidStatusDraft}
	require.NoError(t, db.Create(bid).Error)
	require.NoError(t, db.Create(&models.FinancialBreakdown{BidID: bid.BidID}).Error)
	require.NoError(t, db.Create(&models.OperatingExpenseConfig{BidID: bid.BidID}).Error)

	req := httptest.NewRequest("PATCH", "/api/v1/breakdowns/update-breakdown/"+bid.BidID.String(), strings.NewReader(`{"materials": 250.5}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 251.0, data["amount"])

	var persisted models.Bid
	require.NoError(t, db.Where("bid_id = ?", bid.BidID).First(&persisted).Error)
	assert.Equal(t, 251.0, persisted.Amount)
}

func TestGetBreakdownRoute_NotFound(t *testing.T) {
	app, _ := setupBreakdownRoutes(t)
	req := httptest.NewRequest("GET", "/api/v1/breakdowns/get-breakdown/"+uuid.NewString(), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
