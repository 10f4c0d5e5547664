package costlines

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

// POST /api/v1/cost-lines/create-material/:bid_id
func (h *Handlers) CreateMaterial(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	var in MaterialInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	line, err := h.Service.CreateMaterial(c.Context(), bidID, in)
	if err != nil {
		return response.Failure(c, err)
	}
	if _, err := h.Recalc.Recalculate(c.Context(), bidID); err != nil {
		return response.Failure(c, err)
	}
	return response.SuccessCreated(c, "Material line created successfully", line, nil)
}

// POST /api/v1/cost-lines/create-labor/:bid_id
func (h *Handlers) CreateLabor(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	var in LaborInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	line, err := h.Service.CreateLabor(c.Context(), bidID, in)
	if err != nil {
		return response.Failure(c, err)
	}
	if _, err := h.Recalc.Recalculate(c.Context(), bidID); err != nil {
		return response.Failure(c, err)
	}
	return response.SuccessCreated(c, "Labor line created successfully", line, nil)
}

// POST /api/v1/cost-lines/create-travel/:bid_id
func (h *Handlers) CreateTravel(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	var body struct {
		LaborLineID string `json:"labor_line_id"`
		TravelInput
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	laborLineID, err := uuid.Parse(body.LaborLineID)
	if err != nil {
		return response.Error(c, "Invalid labor_line_id format", fiber.StatusBadRequest, nil)
	}
	line, err := h.Service.CreateTravel(c.Context(), bidID, laborLineID, body.TravelInput)
	if err != nil {
		return response.Failure(c, err)
	}
	if _, err := h.Recalc.Recalculate(c.Context(), bidID); err != nil {
		return response.Failure(c, err)
	}
	return response.SuccessCreated(c, "Travel line created successfully", line, nil)
}

// POST /api/v1/cost-lines/create-labor-with-travel/:bid_id creates the matched
// pair in one transaction.
func (h *Handlers) CreateLaborWithTravel(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Labor  LaborInput  `json:"labor"`
		Travel TravelInput `json:"travel"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	labor, travel, err := h.Service.CreateLaborWithTravel(c.Context(), bidID, body.Labor, body.Travel)
	if err != nil {
		return response.Failure(c, err)
	}
	if _, err := h.Recalc.Recalculate(c.Context(), bidID); err != nil {
		return response.Failure(c, err)
	}
	return response.SuccessCreated(c, "Labor and travel lines created successfully", fiber.Map{
		"labor":  labor,
		"travel": travel,
	}, nil)
}

// PATCH /api/v1/cost-lines/update-material/:line_id
func (h *Handlers) UpdateMaterial(c *fiber.Ctx) error {
	lineID, err := uuid.Parse(c.Params("line_id"))
	if err != nil {
		return response.Error(c, "Invalid line_id format", fiber.StatusBadRequest, nil)
	}
	var patch map[string]interface{}
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	line, err := h.Service.UpdateMaterial(c.Context(), lineID, patch)
	if err != nil {
		return response.Failure(c, err)
	}
	if _, err := h.Recalc.Recalculate(c.Context(), line.BidID); err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Material line updated successfully", line, nil)
}

// PATCH /api/v1/cost-lines/update-labor/:line_id
func (h *Handlers) UpdateLabor(c *fiber.Ctx) error {
	lineID, err := uuid.Parse(c.Params("line_id"))
	if err != nil {
		return response.Error(c, "Invalid line_id format", fiber.StatusBadRequest, nil)
	}
	var patch map[string]interface{}
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	line, err := h.Service.UpdateLabor(c.Context(), lineID, patch)
	if err != nil {
		return response.Failure(c, err)
	}
	if _, err := h.Recalc.Recalculate(c.Context(), line.BidID); err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Labor line updated successfully", line, nil)
}

// PATCH /api/v1/cost-lines/update-travel/:line_id
func (h *Handlers) UpdateTravel(c *fiber.Ctx) error {
	lineID, err := uuid.Parse(c.Params("line_id"))
	if err != nil {
		return response.Error(c, "Invalid line_id format", fiber.StatusBadRequest, nil)
	}
	var patch map[string]interface{}
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	line, err := h.Service.UpdateTravel(c.Context(), lineID, patch)
	if err != nil {
		return response.Failure(c, err)
	}
	if _, err := h.Recalc.Recalculate(c.Context(), line.BidID); err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Travel line updated successfully", line, nil)
}

// GET /api/v1/cost-lines/get-materials/:bid_id
func (h *Handlers) GetMaterials(c *fiber.Ctx) error {
	return h.list(c, func(bidID uuid.UUID) (interface{}, error) {
		return h.Service.ListMaterials(c.Context(), bidID)
	})
}

// GET /api/v1/cost-lines/get-labor/:bid_id
func (h *Handlers) GetLabor(c *fiber.Ctx) error {
	return h.list(c, func(bidID uuid.UUID) (interface{}, error) {
		return h.Service.ListLabor(c.Context(), bidID)
	})
}

// GET /api/v1/cost-lines/get-travel/:bid_id
func (h *Handlers) GetTravel(c *fiber.Ctx) error {
	return h.list(c, func(bidID uuid.UUID) (interface{}, error) {
		return h.Service.ListTravel(c.Context(), bidID)
	})
}

func (h *Handlers) list(c *fiber.Ctx, fetch func(uuid.UUID) (interface{}, error)) error {
	bidID, err := uuid.Parse(c.Params("bid_id"))
	if err != nil {
		return response.Error(c, "Invalid bid_id format", fiber.StatusBadRequest, nil)
	}
	lines, err := fetch(bidID)
	if err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Cost lines fetched successfully", lines, nil)
}

// DELETE /api/v1/cost-lines/delete-material/:line_id
func (h *Handlers) DeleteMaterial(c *fiber.Ctx) error {
	lineID, err := uuid.Parse(c.Params("line_id"))
	if err != nil {
		return response.Error(c, "Invalid line_id format", fiber.StatusBadRequest, nil)
	}
	line, err := h.Service.GetMaterial(c.Context(), lineID)
	if err != nil {
		return response.Failure(c, err)
	}
	if err := h.Service.DeleteMaterial(c.Context(), lineID); err != nil {
		return response.Failure(c, err)
	}
	if _, err := h.Recalc.Recalculate(c.Context(), line.BidID); err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Material line deleted successfully", nil, nil)
}

// DELETE /api/v1/cost-lines/delete-labor/:line_id also removes the paired
// travel line.
func (h *Handlers) DeleteLabor(c *fiber.Ctx) error {
	lineID, err := uuid.Parse(c.Params("line_id"))
	if err != nil {
		return response.Error(c, "Invalid line_id format", fiber.StatusBadRequest, nil)
	}
	line, err := h.Service.GetLabor(c.Context(), lineID)
	if err != nil {
		return response.Failure(c, err)
	}
	if err := h.Service.DeleteLabor(c.Context(), lineID); err != nil {
		return response.Failure(c, err)
	}
	if _, err := h.Recalc.Recalculate(c.Context(), line.BidID); err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Labor line deleted successfully", nil, nil)
}

// DELETE /api/v1/cost-lines/delete-travel/:line_id
func (h *Handlers) DeleteTravel(c *fiber.Ctx) error {
	lineID, err := uuid.Parse(c.Params("line_id"))
	if err != nil {
		return response.Error(c, "Invalid line_id format", fiber.StatusBadRequest, nil)
	}
	line, err := h.Service.GetTravel(c.Context(), lineID)
	if err != nil {
		return response.Failure(c, err)
	}
	if err := h.Service.DeleteTravel(c.Context(), lineID); err != nil {
		return response.Failure(c, err)
	}
	if _, err := h.Recalc.Recalculate(c.Context(), line.BidID); err != nil {
		return response.Failure(c, err)
	}
	return response.Success(c, "Travel line deleted successfully", nil, nil)
}
