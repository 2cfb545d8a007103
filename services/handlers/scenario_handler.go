package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/shared"
)

type ScenarioHandler struct {
	scenarioSvc ScenarioServiceInterface
}

func NewScenarioHandler(scenarioSvc ScenarioServiceInterface) *ScenarioHandler {
	return &ScenarioHandler{scenarioSvc: scenarioSvc}
}

// @Summary Save a scenario
// @Description Persist a simulator configuration and its computed results
// @Tags scenarios
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param scenarioRequest body dto.SaveScenarioRequest true "Scenario payload"
// @Success 201 {object} shared.Response{data=dto.ScenarioResponse}
// @Router /api/v1/scenarios [post]
func (h *ScenarioHandler) Save(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SaveScenarioRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.scenarioSvc.Save(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Scenario saved", resp)
}

// @Summary List scenarios
// @Description All scenarios owned by the authenticated account, newest first
// @Tags scenarios
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ScenarioListResponse}
// @Router /api/v1/scenarios [get]
func (h *ScenarioHandler) List(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.scenarioSvc.List(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get a scenario
// @Description Fetch one scenario by ID. Scenarios of other accounts are reported as not found
// @Tags scenarios
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param scenarioId path string true "Scenario ID"
// @Success 200 {object} shared.Response{data=dto.ScenarioResponse}
// @Router /api/v1/scenarios/{scenarioId} [get]
func (h *ScenarioHandler) Get(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	scenarioID := c.Params("scenarioId")

	resp, err := h.scenarioSvc.GetByID(userID, scenarioID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Delete a scenario
// @Description Remove one owned scenario
// @Tags scenarios
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param scenarioId path string true "Scenario ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/scenarios/{scenarioId} [delete]
func (h *ScenarioHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	scenarioID := c.Params("scenarioId")

	if err := h.scenarioSvc.Delete(userID, scenarioID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Scenario deleted", nil)
}
