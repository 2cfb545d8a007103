package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// @Summary Register a new account
// @Description Create a new account with the starting credit balance
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body dto.RegisterRequest true "Registration details"
// @Success 201 {object} shared.Response{data=dto.RegisterResponse}
// @Router /api/v1/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Register(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Account registered successfully", resp)
}

// @Summary Login
// @Description Authenticate with email or username and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login credentials"
// @Success 200 {object} shared.Response{data=dto.LoginResponse}
// @Router /api/v1/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Login(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Login successful", resp)
}

// @Summary Federated sign-in
// @Description Sign in with an external identity provider, creating the account on first use
// @Tags auth
// @Accept json
// @Produce json
// @Param federatedRequest body dto.FederatedSignInRequest true "Provider identity"
// @Success 200 {object} shared.Response{data=dto.LoginResponse}
// @Router /api/v1/auth/federated [post]
func (h *AuthHandler) FederatedSignIn(c *fiber.Ctx) error {
	var req dto.FederatedSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.FederatedSignIn(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Sign-in successful", resp)
}
