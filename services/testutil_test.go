package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/econosfera/econ_api/model"
	"github.com/econosfera/econ_api/shared"
)

// newTestDB opens an isolated in-memory database migrated to the current
// schema. The single connection serializes concurrent transactions the way
// row locks do in production.
func newTestDB(t *testing.T) *PostgresService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(migrateModels()...))

	return &PostgresService{db: db}
}

func createTestAccount(t *testing.T, ds *PostgresService, email, username string) *model.Account {
	t.Helper()

	account, err := ds.CreateAccount(&model.Account{
		Email:        email,
		Username:     username,
		AuthProvider: shared.AuthProviderLocal,
		Role:         shared.RoleUser,
		Plan:         shared.PlanFree,
	})
	require.NoError(t, err)
	return account
}

func setCredits(t *testing.T, ds *PostgresService, userID string, credits int) {
	t.Helper()
	require.NoError(t, ds.db.Model(&model.Account{}).Where("id = ?", userID).Update("credits", credits).Error)
}

// seedTestQuiz inserts a two-question quiz and returns it with the correct
// option id per question.
func seedTestQuiz(t *testing.T, ds *PostgresService, moduleType string, xpReward int) (*model.Quiz, map[string]string) {
	t.Helper()

	quizID := newTestID()
	quiz := model.Quiz{
		ID:         quizID,
		ModuleType: moduleType,
		Title:      "Test quiz",
		XPReward:   xpReward,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, ds.db.Create(&quiz).Error)

	correctAnswers := make(map[string]string)
	for i := 1; i <= 2; i++ {
		question := model.Question{
			ID:        newTestID(),
			QuizID:    quizID,
			Text:      fmt.Sprintf("Question %d", i),
			Order:     i,
			CreatedAt: time.Now(),
		}
		require.NoError(t, ds.db.Create(&question).Error)

		for j := 0; j < 3; j++ {
			option := model.Option{
				ID:         newTestID(),
				QuestionID: question.ID,
				Text:       fmt.Sprintf("Option %d", j),
				IsCorrect:  j == 0,
			}
			require.NoError(t, ds.db.Create(&option).Error)
			if option.IsCorrect {
				correctAnswers[question.ID] = option.ID
			}
		}
	}

	loaded, err := ds.GetQuiz(quizID)
	require.NoError(t, err)
	return loaded, correctAnswers
}

func seedTestBadge(t *testing.T, ds *PostgresService, code string) *model.Badge {
	t.Helper()

	badge := model.Badge{
		ID:        newTestID(),
		Code:      code,
		Name:      code,
		CreatedAt: time.Now(),
	}
	require.NoError(t, ds.db.Create(&badge).Error)
	return &badge
}

func newTestID() string {
	id, _ := uuid.NewV7()
	return id.String()
}
