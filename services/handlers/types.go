package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/econosfera/econ_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	FederatedSignIn(req dto.FederatedSignInRequest) (*dto.LoginResponse, error)
	RequiredAuth() fiber.Handler
	OptionalAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

type AccountServiceInterface interface {
	GetBalance(userID string) (*dto.BalanceResponse, error)
	GrantCredits(userID string, n int, planTag string) (*dto.BalanceResponse, error)
	UpgradePlan(userID string, req dto.UpgradePlanRequest) (*dto.UpgradePlanResponse, error)
	GetProgress(userID string) (*dto.ProgressResponse, error)
	AdminListAccounts(page, limit int, search string) (*dto.AdminAccountListResponse, error)
}

type ScenarioServiceInterface interface {
	Save(userID string, req dto.SaveScenarioRequest) (*dto.ScenarioResponse, error)
	List(userID string) (*dto.ScenarioListResponse, error)
	GetByID(userID, scenarioID string) (*dto.ScenarioResponse, error)
	Delete(userID, scenarioID string) error
}

type QuizServiceInterface interface {
	GetQuizzes(moduleType string) (*dto.QuizListResponse, error)
	GetQuiz(quizID string) (*dto.QuizResponse, error)
	SubmitAttempt(userID, quizID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	GetAttempts(userID string) ([]dto.AttemptResponse, error)
}

type ExportServiceInterface interface {
	RequestExport(req dto.ExportGateRequest) (*dto.ExportResponse, error)
	StoreArtifact(userID, exportID string, data []byte, contentType string) (*dto.ArtifactUploadResponse, error)
	GetArtifactURL(userID, exportID string) (*dto.ArtifactURLResponse, error)
	GetHistory(userID string) (*dto.ExportHistoryResponse, error)
}

type LeaderboardServiceInterface interface {
	Top(limit int) (*dto.LeaderboardResponse, error)
}
