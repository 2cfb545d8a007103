package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/econosfera/econ_api/calc"
	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/shared"
)

// CalculationHandler exposes the pure calculators over HTTP. No handler here
// touches the database; state lives entirely in the request.
type CalculationHandler struct{}

func NewCalculationHandler() *CalculationHandler {
	return &CalculationHandler{}
}

// @Summary Inflation indicators
// @Description Real rates, inflation gaps and the Taylor reference rate for one scenario
// @Tags calculators
// @Accept json
// @Produce json
// @Param calcRequest body dto.InflationCalcRequest true "Inflation scenario"
// @Success 200 {object} shared.Response{data=calc.InflationResult}
// @Router /api/v1/calc/inflation [post]
func (h *CalculationHandler) Inflation(c *fiber.Ctx) error {
	var req dto.InflationCalcRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result := calc.Inflation(calc.InflationInput{
		InflationRate:     req.InflationRate,
		CoreInflationRate: req.CoreInflationRate,
		InflationTarget:   req.InflationTarget,
		PolicyRate:        req.PolicyRate,
		OutputGap:         req.OutputGap,
		InflationCoeff:    req.InflationCoeff,
		OutputCoeff:       req.OutputCoeff,
		NeutralRate:       req.NeutralRate,
	})

	return shared.ResponseJSON(c, http.StatusOK, "Success", result)
}

// @Summary Halving schedule
// @Description Emission state of a geometrically halved block reward schedule
// @Tags calculators
// @Accept json
// @Produce json
// @Param calcRequest body dto.HalvingCalcRequest true "Emission parameters"
// @Success 200 {object} shared.Response{data=calc.HalvingResult}
// @Router /api/v1/calc/halving [post]
func (h *CalculationHandler) Halving(c *fiber.Ctx) error {
	var req dto.HalvingCalcRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result := calc.Halving(calc.HalvingInput{
		InitialReward:   req.InitialReward,
		HalvingInterval: req.HalvingInterval,
		CurrentBlock:    req.CurrentBlock,
		BlockTimeMins:   req.BlockTimeMins,
	})

	return shared.ResponseJSON(c, http.StatusOK, "Success", result)
}

// @Summary Insurance premium
// @Description Expected loss and gross premium for one insurance policy
// @Tags calculators
// @Accept json
// @Produce json
// @Param calcRequest body dto.InsuranceCalcRequest true "Policy parameters"
// @Success 200 {object} shared.Response{data=calc.InsuranceResult}
// @Router /api/v1/calc/insurance [post]
func (h *CalculationHandler) Insurance(c *fiber.Ctx) error {
	var req dto.InsuranceCalcRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result := calc.InsurancePremium(calc.InsuranceInput{
		LossProbability: req.LossProbability,
		LossSeverity:    req.LossSeverity,
		LoadingFactor:   req.LoadingFactor,
		FixedCost:       req.FixedCost,
		SumInsured:      req.SumInsured,
	})

	return shared.ResponseJSON(c, http.StatusOK, "Success", result)
}

// @Summary Valuation ratios
// @Description P/E, earnings yield and PEG for one equity
// @Tags calculators
// @Accept json
// @Produce json
// @Param calcRequest body dto.ValuationCalcRequest true "Equity figures"
// @Success 200 {object} shared.Response{data=calc.ValuationResult}
// @Router /api/v1/calc/valuation [post]
func (h *CalculationHandler) Valuation(c *fiber.Ctx) error {
	var req dto.ValuationCalcRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result := calc.Valuation(calc.ValuationInput{
		Price:            req.Price,
		EarningsPerShare: req.EarningsPerShare,
		GrowthRate:       req.GrowthRate,
	})

	return shared.ResponseJSON(c, http.StatusOK, "Success", result)
}
