package dto

import (
	"encoding/json"
	"time"
)

type SaveScenarioRequest struct {
	ModuleType string          `json:"module_type" validate:"required,oneof=macro micro finanzas inflacion cripto seguros" example:"macro"`
	SubType    string          `json:"sub_type,omitempty" example:"taylor_rule"`
	Name       string          `json:"name" validate:"required,min=1,max=120" example:"Escenario base 2026"`
	Variables  json.RawMessage `json:"variables" validate:"required" swaggertype:"object"`
	Results    json.RawMessage `json:"results,omitempty" swaggertype:"object"`
}

func (s SaveScenarioRequest) Validate() error {
	return GetValidator().Struct(s)
}

type ScenarioResponse struct {
	ID         string          `json:"id"`
	ModuleType string          `json:"module_type"`
	SubType    string          `json:"sub_type,omitempty"`
	Name       string          `json:"name"`
	Variables  json.RawMessage `json:"variables" swaggertype:"object"`
	Results    json.RawMessage `json:"results,omitempty" swaggertype:"object"`
	CreatedAt  time.Time       `json:"created_at"`
}

type ScenarioListResponse struct {
	Scenarios []ScenarioResponse `json:"scenarios"`
	Total     int                `json:"total"`
}
