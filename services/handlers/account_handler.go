package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/shared"
)

type AccountHandler struct {
	accountSvc AccountServiceInterface
}

func NewAccountHandler(accountSvc AccountServiceInterface) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// @Summary Get credit balance
// @Description Current export credit balance and plan for the authenticated account
// @Tags account
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.BalanceResponse}
// @Router /api/v1/account/balance [get]
func (h *AccountHandler) GetBalance(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.accountSvc.GetBalance(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Upgrade plan
// @Description Switch to a paid plan and receive its credit bundle
// @Tags account
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param upgradeRequest body dto.UpgradePlanRequest true "Target plan"
// @Success 200 {object} shared.Response{data=dto.UpgradePlanResponse}
// @Router /api/v1/account/upgrade [post]
func (h *AccountHandler) UpgradePlan(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpgradePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.accountSvc.UpgradePlan(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Plan upgraded", resp)
}

// @Summary Get learning progress
// @Description XP, level, streak and earned badges for the authenticated account
// @Tags account
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/account/progress [get]
func (h *AccountHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.accountSvc.GetProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary List accounts
// @Description Paged account listing with optional search
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param search query string false "Match against email or username"
// @Success 200 {object} shared.Response{data=dto.AdminAccountListResponse}
// @Router /api/v1/admin/accounts [get]
func (h *AccountHandler) AdminListAccounts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	search := c.Query("search")

	resp, err := h.accountSvc.AdminListAccounts(page, limit, search)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Grant credits
// @Description Add export credits to an account, recorded against a plan tag
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "Account ID"
// @Param grantRequest body dto.AdminGrantCreditsRequest true "Credit grant"
// @Success 200 {object} shared.Response{data=dto.BalanceResponse}
// @Router /api/v1/admin/accounts/{userId}/credits [post]
func (h *AccountHandler) AdminGrantCredits(c *fiber.Ctx) error {
	targetID := c.Params("userId")

	var req dto.AdminGrantCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.accountSvc.GrantCredits(targetID, req.Credits, "")
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Credits granted", resp)
}
