package services

import (
	"encoding/json"

	"github.com/alphabatem/common/context"
	"gorm.io/datatypes"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/model"
	"github.com/econosfera/econ_api/shared"
)

// ScenarioService persists named simulation configurations. Every operation
// is scoped to the owning account; a scenario owned by someone else behaves
// exactly like a missing one.
type ScenarioService struct {
	context.DefaultService

	sqlSvc *PostgresService
}

const SCENARIO_SVC = "scenario_svc"

func (svc ScenarioService) Id() string {
	return SCENARIO_SVC
}

func (svc *ScenarioService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ScenarioService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func (svc *ScenarioService) Save(userID string, req dto.SaveScenarioRequest) (*dto.ScenarioResponse, error) {
	if !shared.IsValidModuleType(req.ModuleType) {
		return nil, shared.NewBadRequestError(nil, "Unknown module type")
	}
	if !json.Valid(req.Variables) {
		return nil, shared.NewBadRequestError(nil, "variables must be a JSON document")
	}
	if len(req.Results) > 0 && !json.Valid(req.Results) {
		return nil, shared.NewBadRequestError(nil, "results must be a JSON document")
	}

	scenario := &model.Scenario{
		UserID:     userID,
		ModuleType: req.ModuleType,
		SubType:    req.SubType,
		Name:       req.Name,
		Variables:  datatypes.JSON(req.Variables),
	}
	if len(req.Results) > 0 {
		scenario.Results = datatypes.JSON(req.Results)
	}

	created, err := svc.sqlSvc.CreateScenario(scenario)
	if err != nil {
		return nil, err
	}

	resp := svc.mapScenarioToResponse(created)
	return &resp, nil
}

func (svc *ScenarioService) List(userID string) (*dto.ScenarioListResponse, error) {
	scenarios, err := svc.sqlSvc.ListScenarios(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ScenarioResponse, len(scenarios))
	for i, s := range scenarios {
		responses[i] = svc.mapScenarioToResponse(&s)
	}

	return &dto.ScenarioListResponse{
		Scenarios: responses,
		Total:     len(responses),
	}, nil
}

func (svc *ScenarioService) GetByID(userID, scenarioID string) (*dto.ScenarioResponse, error) {
	scenario, err := svc.sqlSvc.GetScenario(userID, scenarioID)
	if err != nil {
		return nil, err
	}

	resp := svc.mapScenarioToResponse(scenario)
	return &resp, nil
}

func (svc *ScenarioService) Delete(userID, scenarioID string) error {
	return svc.sqlSvc.DeleteScenario(userID, scenarioID)
}

func (svc *ScenarioService) mapScenarioToResponse(scenario *model.Scenario) dto.ScenarioResponse {
	return dto.ScenarioResponse{
		ID:         scenario.ID,
		ModuleType: scenario.ModuleType,
		SubType:    scenario.SubType,
		Name:       scenario.Name,
		Variables:  json.RawMessage(scenario.Variables),
		Results:    json.RawMessage(scenario.Results),
		CreatedAt:  scenario.CreatedAt,
	}
}
