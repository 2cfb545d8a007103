package main

import (
	"github.com/econosfera/econ_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// @title Econosfera API
// @version 1.0
// @description Economics education backend: accounts, scenarios, quizzes and metered exports
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&services.PostgresService{},
		&services.RedisService{},
		&services.StorageService{},
		&services.RateLimitService{},
		&services.MonitoringService{},

		&services.AuthService{},
		&services.AccountService{},
		&services.LeaderboardService{},
		&services.ScenarioService{},
		&services.QuizService{},
		&services.ExportService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	if err := ctx.Run(); err != nil {
		log.Fatal().Err(err).Msg("Service context exited")
		return
	}
}
