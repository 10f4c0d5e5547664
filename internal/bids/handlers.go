package bids

import (
	"encoding/json"
	"time"

	"ferro-backend/internal/models"
	"ferro-backend/internal/pkg/response"
	"ferro-backend/internal/pkg/validation"
	"ferro-backend/internal/recalc"
	"ferro-backend/internal/timeline"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
	Recalc  *recalc.Orchestrator
}

type createBidBody struct {
	OrgID                   string  `json:"org_id"`
	Title                   string  `json:"title"`
	JobType                 string  `json:"job_type"`
	ProfitMargin            float64 `json:"profit_margin"`
	SupervisorID            string  `json:"supervisor_id"`
	PrimaryTechnicianID     string  `json:"primary_technician_id"`
	EndDate                 string  `json:"end_date"`
	PlannedStartDate        string  `json:"planned_start_date"`
	EstimatedCompletionDate string  `json:"estimated_completion_date"`
}

// POST /api/v1/bids/create-bid
func (h *Handlers) CreateBid(c *fiber.Ctx) error {
	var body createBidBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	orgID, err := uuid.Parse(body.OrgID)
	if err != nil {
		return response.Error(c, "Invalid org_id format", fiber.StatusBadRequest, nil)
	}

	in := CreateBidInput{
		OrgID:        orgID,
		Title:        body.Title,
		JobType:      body.JobType,
		ProfitMargin: body.ProfitMargin,
	}
	if in.SupervisorID, err = parseOptionalUUID(body.SupervisorID, "supervisor_id"); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	if in.PrimaryTechnicianID, err = parseOptionalUUID(body.PrimaryTechnicianID, "primary_technician_id"); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	var ok bool
	if in.EndDate, ok = parseOptionalDate(body.EndDate); !ok {
		return response.Error(c, "Invalid end_date format", fiber.StatusBadRequest, nil)
	}
	if in.PlannedStartDate, ok = parseOptionalDate(body.PlannedStartDate); !ok {
		return response.Error(c, "Invalid planned_start_date format", fiber.StatusBadRequest, nil)
	}
	if in.EstimatedCompletionDate, ok = parseOptionalDate(body.EstimatedCompletionDate); !ok {
		return response.Error(c, "Invalid estimated_completion_date format", fiber.StatusBadRequest, nil)
	}

	bid, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.SuccessCreated(c, "Bid created successfully", bid, nil)
}

// GET /api/v1/bids/get-bid/:bid_id
func (h *Handlers) GetBid(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	bid, err := h.Service.Get(c.Context(), bidID)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Bid fetched successfully", bid, nil)
}

// GET /api/v1/bids/get-org-bids?org_id=...
func (h *Handlers) GetOrgBids(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Query("org_id"))
	if err != nil {
		return response.Error(c, "Invalid org_id format", fiber.StatusBadRequest, nil)
	}
	bids, err := h.Service.ListByOrg(c.Context(), orgID)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Bids fetched successfully", bids, nil)
}

type updateBidBody struct {
	Title                   *string  `json:"title"`
	JobType                 *string  `json:"job_type"`
	ProfitMargin            *float64 `json:"profit_margin"`
	SupervisorID            *string  `json:"supervisor_id"`
	PrimaryTechnicianID     *string  `json:"primary_technician_id"`
	EndDate                 *string  `json:"end_date"`
	PlannedStartDate        *string  `json:"planned_start_date"`
	EstimatedCompletionDate *string  `json:"estimated_completion_date"`
}

// PATCH /api/v1/bids/update-bid/:bid_id
func (h *Handlers) UpdateBid(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	var body updateBidBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	in := UpdateBidInput{
		Title:        body.Title,
		JobType:      body.JobType,
		ProfitMargin: body.ProfitMargin,
	}
	if body.SupervisorID != nil {
		if in.SupervisorID, err = parseOptionalUUID(*body.SupervisorID, "supervisor_id"); err != nil {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
	}
	if body.PrimaryTechnicianID != nil {
		if in.PrimaryTechnicianID, err = parseOptionalUUID(*body.PrimaryTechnicianID, "primary_technician_id"); err != nil {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
	}
	var ok bool
	if body.EndDate != nil {
		if in.EndDate, ok = parseOptionalDate(*body.EndDate); !ok {
			return response.Error(c, "Invalid end_date format", fiber.StatusBadRequest, nil)
		}
	}
	if body.PlannedStartDate != nil {
		if in.PlannedStartDate, ok = parseOptionalDate(*body.PlannedStartDate); !ok {
			return response.Error(c, "Invalid planned_start_date format", fiber.StatusBadRequest, nil)
		}
	}
	if body.EstimatedCompletionDate != nil {
		if in.EstimatedCompletionDate, ok = parseOptionalDate(*body.EstimatedCompletionDate); !ok {
			return response.Error(c, "Invalid estimated_completion_date format", fiber.StatusBadRequest, nil)
		}
	}

	bid, err := h.Service.Update(c.Context(), bidID, in)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Bid updated successfully", bid, nil)
}

// PATCH /api/v1/bids/update-status/:bid_id
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Status string `json:"status"`
		Actor  string `json:"actor"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	actor := body.Actor
	if actor == "" {
		actor = models.SystemActor
	}
	bid, err := h.Service.UpdateStatus(c.Context(), bidID, body.Status, actor)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Bid status updated successfully", bid, nil)
}

// DELETE /api/v1/bids/delete-bid/:bid_id
func (h *Handlers) DeleteBid(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), bidID); err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Bid deleted successfully", nil, nil)
}

// POST /api/v1/bids/recalculate/:bid_id
func (h *Handlers) Recalculate(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	summary, err := h.Recalc.Recalculate(c.Context(), bidID)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Bid recalculated successfully", summary, nil)
}

// GET /api/v1/bids/get-timeline/:bid_id
func (h *Handlers) GetTimeline(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	events, err := timeline.ListByBid(c.Context(), h.Service.DB, bidID)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Timeline fetched successfully", events, nil)
}

// GET /api/v1/bids/get-history/:bid_id
func (h *Handlers) GetHistory(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	rows, err := timeline.ListHistory(c.Context(), h.Service.DB, bidID)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "History fetched successfully", rows, nil)
}

// POST /api/v1/bids/sweep-expirations
func (h *Handlers) SweepExpirations(c *fiber.Ctx) error {
	result, err := h.Service.SweepExpirations(c.Context())
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Expiration sweep finished", result, nil)
}

func parseOptionalUUID(s, field string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+field+" format")
	}
	return &id, nil
}

func parseOptionalDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, ok := validation.ParseDate(s)
	if !ok {
		return nil, false
	}
	return &t, true
}
