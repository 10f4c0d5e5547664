package breakdown

import (
	"encoding/json"

	"ferro-backend/internal/pkg/response"
	"ferro-backend/internal/recalc"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
	Recalc  *recalc.Orchestrator
}

// GET /api/v1/breakdowns/get-breakdown/:bid_id
func (h *Handlers) GetBreakdown(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	fb, err := h.Service.GetByBid(c.Context(), bidID)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Breakdown fetched successfully", fb, nil)
}

// PATCH /api/v1/breakdowns/update-breakdown/:bid_id. Direct subtotal edits
// for bids without itemized lines; the cascade runs afterwards.
func (h *Handlers) UpdateBreakdown(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	var patch map[string]interface{}
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if _, err := h.Service.Update(c.Context(), bidID, patch); err != nil {
		return response.Failure(c, err)
	}
	summary, err := h.Recalc.Recalculate(c.Context(), bidID)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Breakdown updated successfully", summary, nil)
}
