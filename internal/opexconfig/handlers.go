package opexconfig

import (
	"encoding/json"

	"ferro-backend/internal/pkg/response"
	"ferro-backend/internal/recalc"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Store  *Store
	Recalc *recalc.Orchestrator
}

// GET /api/v1/operating-expense/get-config/:bid_id
func (h *Handlers) GetConfig(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	cfg, err := h.Store.GetByBid(c.Context(), bidID)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Operating expense config fetched successfully", cfg, nil)
}

// PATCH /api/v1/operating-expense/update-config/:bid_id. Any config change
// triggers the recalculation cascade.
func (h *Handlers) UpdateConfig(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	var patch map[string]interface{}
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if _, err := h.Store.Update(c.Context(), bidID, patch); err != nil {
		return response.Failure(c, err)
	}
	summary, err := h.Recalc.Recalculate(c.Context(), bidID)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Operating expense config updated successfully", summary, nil)
}
