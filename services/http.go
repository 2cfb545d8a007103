package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"

	docs "github.com/econosfera/econ_api/docs"
	"github.com/econosfera/econ_api/services/handlers"
	"github.com/econosfera/econ_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc        *AuthService
	accountSvc     *AccountService
	scenarioSvc    *ScenarioService
	quizSvc        *QuizService
	exportSvc      *ExportService
	leaderboardSvc *LeaderboardService
	rateLimitSvc   *RateLimitService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.accountSvc = svc.Service(ACCOUNT_SVC).(*AccountService)
	svc.scenarioSvc = svc.Service(SCENARIO_SVC).(*ScenarioService)
	svc.quizSvc = svc.Service(QUIZ_SVC).(*QuizService)
	svc.exportSvc = svc.Service(EXPORT_SVC).(*ExportService)
	svc.leaderboardSvc = svc.Service(LEADERBOARD_SVC).(*LeaderboardService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	docs.SwaggerInfo.BasePath = ""

	app := fiber.New(fiber.Config{
		JSONEncoder:  shared.JSONAPI.Marshal,
		JSONDecoder:  shared.JSONAPI.Unmarshal,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	if os.Getenv("LOG_LEVEL") == "TRACE" {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))
	app.Use(MonitoringMiddleware())

	svc.registerRoutes(app)

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	accountHandler := handlers.NewAccountHandler(svc.accountSvc)
	scenarioHandler := handlers.NewScenarioHandler(svc.scenarioSvc)
	quizHandler := handlers.NewQuizHandler(svc.quizSvc, svc.leaderboardSvc)
	exportHandler := handlers.NewExportHandler(svc.exportSvc)
	calcHandler := handlers.NewCalculationHandler()

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	// Auth, throttled per client IP.
	authLimiter := svc.rateLimitSvc.AuthLimiter()
	v1.Post("/register", authLimiter, authHandler.Register)
	v1.Post("/login", authLimiter, authHandler.Login)
	v1.Post("/auth/federated", authLimiter, authHandler.FederatedSignIn)

	account := v1.Group("/account", svc.authSvc.RequiredAuth())
	account.Get("/balance", accountHandler.GetBalance)
	account.Post("/upgrade", accountHandler.UpgradePlan)
	account.Get("/progress", accountHandler.GetProgress)

	scenarios := v1.Group("/scenarios", svc.authSvc.RequiredAuth())
	scenarios.Post("/", scenarioHandler.Save)
	scenarios.Get("/", scenarioHandler.List)
	scenarios.Get("/:scenarioId", scenarioHandler.Get)
	scenarios.Delete("/:scenarioId", scenarioHandler.Delete)

	// The export gate accepts anonymous callers; artifact and history
	// endpoints require ownership.
	v1.Post("/export", svc.authSvc.OptionalAuth(), exportHandler.RequestExport)
	v1.Get("/export/history", svc.authSvc.RequiredAuth(), exportHandler.GetHistory)
	v1.Post("/export/:exportId/artifact", svc.authSvc.RequiredAuth(), exportHandler.StoreArtifact)
	v1.Get("/export/:exportId/artifact", svc.authSvc.RequiredAuth(), exportHandler.GetArtifactURL)

	v1.Get("/quizzes", quizHandler.GetQuizzes)
	v1.Get("/quizzes/attempts", svc.authSvc.RequiredAuth(), quizHandler.GetAttempts)
	v1.Get("/quizzes/:quizId", quizHandler.GetQuiz)
	v1.Post("/quizzes/:quizId/submit", svc.authSvc.RequiredAuth(), quizHandler.SubmitAttempt)
	v1.Get("/leaderboard", quizHandler.GetLeaderboard)

	calcGroup := v1.Group("/calc")
	calcGroup.Post("/inflation", calcHandler.Inflation)
	calcGroup.Post("/halving", calcHandler.Halving)
	calcGroup.Post("/insurance", calcHandler.Insurance)
	calcGroup.Post("/valuation", calcHandler.Valuation)

	admin := v1.Group("/admin", svc.authSvc.RequiredAuth(), svc.authSvc.RequireRole(shared.RoleAdmin))
	admin.Get("/accounts", accountHandler.AdminListAccounts)
	admin.Post("/accounts/:userId/credits", accountHandler.AdminGrantCredits)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c)
}
