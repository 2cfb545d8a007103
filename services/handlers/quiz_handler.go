package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/shared"
)

type QuizHandler struct {
	quizSvc        QuizServiceInterface
	leaderboardSvc LeaderboardServiceInterface
}

func NewQuizHandler(quizSvc QuizServiceInterface, leaderboardSvc LeaderboardServiceInterface) *QuizHandler {
	return &QuizHandler{
		quizSvc:        quizSvc,
		leaderboardSvc: leaderboardSvc,
	}
}

// @Summary List quizzes
// @Description Active quizzes, optionally filtered by module
// @Tags quizzes
// @Produce json
// @Param module query string false "Module filter" Enums(macro, micro, finanzas, inflacion, cripto, seguros)
// @Success 200 {object} shared.Response{data=dto.QuizListResponse}
// @Router /api/v1/quizzes [get]
func (h *QuizHandler) GetQuizzes(c *fiber.Ctx) error {
	moduleType := c.Query("module")
	if moduleType != "" && !shared.IsValidModuleType(moduleType) {
		return shared.NewBadRequestError(nil, "Unknown module")
	}

	resp, err := h.quizSvc.GetQuizzes(moduleType)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get a quiz
// @Description One quiz with its questions and answer options
// @Tags quizzes
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} shared.Response{data=dto.QuizResponse}
// @Router /api/v1/quizzes/{quizId} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")

	resp, err := h.quizSvc.GetQuiz(quizID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Submit quiz answers
// @Description Grade an attempt. XP is awarded only for the first attempt on each quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param quizId path string true "Quiz ID"
// @Param submitRequest body dto.SubmitQuizRequest true "Answers keyed by question ID"
// @Success 200 {object} shared.Response{data=dto.SubmitQuizResponse}
// @Router /api/v1/quizzes/{quizId}/submit [post]
func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	quizID := c.Params("quizId")

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.quizSvc.SubmitAttempt(userID, quizID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Attempt recorded", resp)
}

// @Summary Attempt history
// @Description All quiz attempts of the authenticated account, newest first
// @Tags quizzes
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]dto.AttemptResponse}
// @Router /api/v1/quizzes/attempts [get]
func (h *QuizHandler) GetAttempts(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.quizSvc.GetAttempts(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Leaderboard
// @Description Top accounts ranked by total XP
// @Tags quizzes
// @Produce json
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard [get]
func (h *QuizHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	resp, err := h.leaderboardSvc.Top(limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
