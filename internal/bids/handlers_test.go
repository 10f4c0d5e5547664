package bids

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ferro-backend/internal/orgs"
	"ferro-backend/internal/recalc"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlersTest(t *testing.T) *fiber.App {
	service, db := setupBidsTest(t)
	h := &Handlers{
		Service: service,
		Recalc:  &recalc.Orchestrator{DB: db, Defaults: &orgs.Service{DB: db}},
	}

	app := fiber.New()
	group := app.Group("/api/v1/bids")
	group.Post("/create-bid", h.CreateBid)
	group.Get("/get-bid/:bid_id", h.GetBid)
	group.Patch("/update-status/:bid_id", h.UpdateStatus)
	group.Post("/recalculate/:bid_id", h.Recalculate)
	group.Get("/get-timeline/:bid_id", h.GetTimeline)
	return app
}

func postJSON(app *fiber.App, path, body string) (int, map[string]interface{}, error) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]interface{}
	_ = json.Unmarshal(raw, &decoded)
	return resp.StatusCode, decoded, nil
}

func TestCreateBidRoute(t *testing.T) {
	app := setupHandlersTest(t)
	end := time.Now().AddDate(0, 0, 14).Format("2006-01-02")

	status, body, err := postJSON(app, "/api/v1/bids/create-bid", `{
		"org_id": "a3bb189e-8bf9-3888-9912-ace4e6543002",
		"title": "Chiller install",
		"job_type": "general",
		"end_date": "`+end+`"
	}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, status)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "draft", data["status"])
	seq, _ := data["sequence_number"].(string)
	assert.True(t, strings.HasPrefix(seq, "BID-"))
}

func TestCreateBidRoute_BadOrgID(t *testing.T) {
	app := setupHandlersTest(t)
	status, body, err := postJSON(app, "/api/v1/bids/create-bid", `{"org_id": "not-a-uuid", "title": "X", "job_type": "general"}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "error", body["status"])
}

func TestCreateBidRoute_PastEndDate(t *testing.T) {
	app := setupHandlersTest(t)
	past := time.Now().AddDate(0, 0, -5).Format("2006-01-02")
	status, body, err := postJSON(app, "/api/v1/bids/create-bid", `{
		"org_id": "a3bb189e-8bf9-3888-9912-ace4e6543002",
		"title": "Late", "job_type": "general", "end_date": "`+past+`"
	}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, status)

	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	details, ok := errObj["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "end_date", details["field"])
}

func TestGetBidRoute_NotFound(t *testing.T) {
	app := setupHandlersTest(t)
	req := httptest.NewRequest("GET", "/api/v1/bids/get-bid/a3bb189e-8bf9-3888-9912-ace4e6543002", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateStatusRoute(t *testing.T) {
	app := setupHandlersTest(t)
	status, body, err := postJSON(app, "/api/v1/bids/create-bid", `{
		"org_id": "a3bb189e-8bf9-3888-9912-ace4e6543002", "title": "X", "job_type": "general"
	}`)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]interface{})
	bidID := data["bid_id"].(string)

	req := httptest.NewRequest("PATCH", "/api/v1/bids/update-status/"+bidID, strings.NewReader(`{"status": "submitted", "actor": "user-7"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRecalculateRoute(t *testing.T) {
	app := setupHandlersTest(t)
	status, body, err := postJSON(app, "/api/v1/bids/create-bid", `{
		"org_id": "a3bb189e-8bf9-3888-9912-ace4e6543002", "title": "X", "job_type": "general"
	}`)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]interface{})
	bidID := data["bid_id"].(string)

	status, body, err = postJSON(app, "/api/v1/bids/recalculate/"+bidID, "")
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, status)

	summary := body["data"].(map[string]interface{})
	assert.Equal(t, 0.0, summary["amount"])
}
