package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/econosfera/econ_api/model"
	"github.com/econosfera/econ_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "econ_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func migrateModels() []interface{} {
	return []interface{}{
		&model.Account{},
		&model.Scenario{},
		&model.ExportLog{},
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.QuizAttempt{},
		&model.Badge{},
		&model.UserBadge{},
	}
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	err = ds.db.AutoMigrate(migrateModels()...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	err = ds.seedInitialData()
	if err != nil {
		log.Printf("Failed to seed initial data: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *PostgresService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound // 404
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict // 409
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest // 400
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError // 500
		errorType = "TRANSACTION_ERROR"
	default:
		// Driver-specific errors surface as strings
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict // 409
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "relation") && strings.Contains(err.Error(), "does not exist") {
			statusCode = http.StatusInternalServerError // 500
			errorType = "SCHEMA_ERROR"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable // 503
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError // 500
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== ACCOUNT METHODS ====================

func (ds *PostgresService) GetAccount(id string) (*model.Account, error) {
	var account model.Account
	if err := ds.db.Where("id = ?", id).First(&account).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &account, nil
}

func (ds *PostgresService) GetAccountByEmail(email string) (*model.Account, error) {
	var account model.Account
	if err := ds.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (ds *PostgresService) GetAccountByEmailOrUsername(emailOrUsername string) (*model.Account, error) {
	var account model.Account
	if err := ds.db.Where("email = ? OR username = ?", emailOrUsername, emailOrUsername).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount inserts a new account. The unique indexes on email and
// username make duplicate registration fail atomically: either the row
// exists afterwards or nothing changed.
func (ds *PostgresService) CreateAccount(account *model.Account) (*model.Account, error) {
	if account.ID == "" {
		id, _ := uuid.NewV7()
		account.ID = id.String()
	}
	if account.Credits == 0 {
		account.Credits = shared.InitialCredits
	}
	if account.Level == 0 {
		account.Level = 1
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	if err := ds.db.Create(account).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, shared.NewDuplicateAccountError(duplicateField(err))
		}
		return nil, ds.HandleError(err)
	}
	return account, nil
}

func isDuplicateErr(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func duplicateField(err error) string {
	if strings.Contains(err.Error(), "username") {
		return "Username"
	}
	return "Email"
}

// UpdateStreak writes only the streak columns. A full-row save here would
// also write credits, export_count and xp from the caller's snapshot and
// could undo a charge or award committed in between.
func (ds *PostgresService) UpdateStreak(userID string, streak int, activityAt time.Time) error {
	res := ds.db.Model(&model.Account{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"streak":           streak,
		"last_activity_at": &activityAt,
		"updated_at":       time.Now(),
	})
	if res.Error != nil {
		return ds.HandleError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError("Account not found")
	}
	return nil
}

func (ds *PostgresService) UpdateLastLogin(userID string) error {
	now := time.Now()
	return ds.db.Model(&model.Account{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"last_login_at": &now,
		"updated_at":    now,
	}).Error
}

// ConsumeCredits decrements the balance only when it covers n, as a single
// conditional UPDATE. A zero rows-affected result means the guard failed and
// maps to InsufficientCredit; two concurrent consumers of the last credit
// cannot both pass.
func (ds *PostgresService) ConsumeCredits(userID string, n int) error {
	return ds.consumeCreditsTx(ds.db, userID, n)
}

func (ds *PostgresService) consumeCreditsTx(tx *gorm.DB, userID string, n int) error {
	res := tx.Model(&model.Account{}).
		Where("id = ? AND credits >= ?", userID, n).
		Updates(map[string]interface{}{
			"credits":    gorm.Expr("credits - ?", n),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return ds.HandleError(res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing account from an empty balance.
		if _, err := ds.GetAccount(userID); err != nil {
			return err
		}
		return shared.NewInsufficientCreditError()
	}
	return nil
}

// GrantCredits atomically increments the balance and optionally moves the
// account to a new plan.
func (ds *PostgresService) GrantCredits(userID string, n int, planTag string) (*model.Account, error) {
	var account model.Account
	err := ds.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"credits":    gorm.Expr("credits + ?", n),
			"updated_at": time.Now(),
		}
		if planTag != "" {
			updates["plan"] = planTag
		}

		res := tx.Model(&model.Account{}).Where("id = ?", userID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ?", userID).First(&account).Error
	})
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &account, nil
}

func (ds *PostgresService) ListAccounts(page, limit int, search string) ([]model.Account, int64, error) {
	var accounts []model.Account
	var total int64

	query := ds.db.Model(&model.Account{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("email LIKE ? OR username LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, ds.HandleError(err)
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&accounts).Error; err != nil {
		return nil, 0, ds.HandleError(err)
	}

	return accounts, total, nil
}

// ==================== SCENARIO METHODS ====================

func (ds *PostgresService) CreateScenario(scenario *model.Scenario) (*model.Scenario, error) {
	id, _ := uuid.NewV7()
	scenario.ID = id.String()
	scenario.CreatedAt = time.Now()

	if err := ds.db.Create(scenario).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return scenario, nil
}

func (ds *PostgresService) ListScenarios(userID string) ([]model.Scenario, error) {
	var scenarios []model.Scenario
	if err := ds.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&scenarios).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return scenarios, nil
}

// GetScenario filters by owner and id in one lookup so a scenario owned by
// someone else is indistinguishable from a missing one.
func (ds *PostgresService) GetScenario(userID, scenarioID string) (*model.Scenario, error) {
	var scenario model.Scenario
	if err := ds.db.Where("id = ? AND user_id = ?", scenarioID, userID).First(&scenario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Scenario not found")
		}
		return nil, ds.HandleError(err)
	}
	return &scenario, nil
}

func (ds *PostgresService) DeleteScenario(userID, scenarioID string) error {
	res := ds.db.Where("id = ? AND user_id = ?", scenarioID, userID).Delete(&model.Scenario{})
	if res.Error != nil {
		return ds.HandleError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError("Scenario not found")
	}
	return nil
}

// ==================== EXPORT METHODS ====================

// MeteredExport runs the whole export charge as one transaction: the
// conditional credit decrement, the export-counter increment and the audit
// log append either all apply or none do.
func (ds *PostgresService) MeteredExport(userID, moduleName, exportType string) (*model.ExportLog, *model.Account, error) {
	var entry model.ExportLog
	var account model.Account

	err := ds.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Account{}).
			Where("id = ? AND credits >= 1", userID).
			Updates(map[string]interface{}{
				"credits":      gorm.Expr("credits - 1"),
				"export_count": gorm.Expr("export_count + 1"),
				"updated_at":   time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Where("id = ?", userID).First(&account).Error; err != nil {
				return shared.NewNotFoundError("Account not found")
			}
			return shared.NewInsufficientCreditError()
		}

		id, _ := uuid.NewV7()
		entry = model.ExportLog{
			ID:         id.String(),
			UserID:     &userID,
			ExportType: exportType,
			ModuleName: moduleName,
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", userID).First(&account).Error
	})
	if err != nil {
		if _, ok := shared.GetAppError(err); ok {
			return nil, nil, err
		}
		return nil, nil, ds.HandleError(err)
	}

	return &entry, &account, nil
}

// AnonymousExport appends an audit row with no owning account. It never
// touches a balance.
func (ds *PostgresService) AnonymousExport(moduleName, exportType string) (*model.ExportLog, error) {
	id, _ := uuid.NewV7()
	entry := model.ExportLog{
		ID:         id.String(),
		UserID:     nil,
		ExportType: exportType,
		ModuleName: moduleName,
		CreatedAt:  time.Now(),
	}
	if err := ds.db.Create(&entry).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &entry, nil
}

func (ds *PostgresService) GetExportLog(userID, exportID string) (*model.ExportLog, error) {
	var entry model.ExportLog
	if err := ds.db.Where("id = ? AND user_id = ?", exportID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Export not found")
		}
		return nil, ds.HandleError(err)
	}
	return &entry, nil
}

func (ds *PostgresService) ListExportLogs(userID string) ([]model.ExportLog, error) {
	var entries []model.ExportLog
	if err := ds.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return entries, nil
}

func (ds *PostgresService) SetExportArtifactKey(exportID, key string) error {
	return ds.db.Model(&model.ExportLog{}).Where("id = ?", exportID).Update("artifact_key", key).Error
}

// ==================== QUIZ METHODS ====================

func (ds *PostgresService) GetQuizzes(moduleType string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	query := ds.db.Where("is_active = ?", true)
	if moduleType != "" {
		query = query.Where("module_type = ?", moduleType)
	}
	if err := query.Order("module_type, title").Find(&quizzes).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return quizzes, nil
}

func (ds *PostgresService) GetQuiz(quizID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := ds.db.Where("id = ? AND is_active = ?", quizID, true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\"")
		}).
		Preload("Questions.Options").
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Quiz not found")
		}
		return nil, ds.HandleError(err)
	}
	return &quiz, nil
}

// SubmitAttemptResult reports what the attempt transaction decided.
type SubmitAttemptResult struct {
	Attempt      model.QuizAttempt
	FirstAttempt bool
	XPAwarded    int
	Account      model.Account
}

// SubmitQuizAttempt records an attempt and awards the quiz XP only on the
// first attempt per (account, quiz). The leading account UPDATE takes the
// row lock that serializes concurrent submissions for the same account, so
// the prior-attempt check and the XP award cannot interleave.
func (ds *PostgresService) SubmitQuizAttempt(userID, quizID string, score, xpReward int) (*SubmitAttemptResult, error) {
	var result SubmitAttemptResult

	err := ds.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Account{}).Where("id = ?", userID).
			Update("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.NewNotFoundError("Account not found")
		}

		var prior int64
		if err := tx.Model(&model.QuizAttempt{}).
			Where("user_id = ? AND quiz_id = ?", userID, quizID).
			Count(&prior).Error; err != nil {
			return err
		}
		result.FirstAttempt = prior == 0

		id, _ := uuid.NewV7()
		result.Attempt = model.QuizAttempt{
			ID:        id.String(),
			UserID:    userID,
			QuizID:    quizID,
			Score:     score,
			Completed: true,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&result.Attempt).Error; err != nil {
			return err
		}

		if result.FirstAttempt {
			result.XPAwarded = xpReward
			if err := tx.Model(&model.Account{}).Where("id = ?", userID).
				Update("xp", gorm.Expr("xp + ?", xpReward)).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", userID).First(&result.Account).Error
	})
	if err != nil {
		if _, ok := shared.GetAppError(err); ok {
			return nil, err
		}
		return nil, ds.HandleError(err)
	}

	return &result, nil
}

func (ds *PostgresService) UpdateAccountLevel(userID string, level int) error {
	return ds.db.Model(&model.Account{}).Where("id = ?", userID).Update("level", level).Error
}

func (ds *PostgresService) GetAttempts(userID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	if err := ds.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&attempts).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return attempts, nil
}

// ==================== BADGE METHODS ====================

func (ds *PostgresService) GetBadgeByCode(code string) (*model.Badge, error) {
	var badge model.Badge
	if err := ds.db.Where("code = ?", code).First(&badge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Badge not found")
		}
		return nil, ds.HandleError(err)
	}
	return &badge, nil
}

// AwardBadge is an idempotent upsert on the (user, badge) unique index:
// re-awarding is a no-op, never an error or a duplicate row. Returns whether
// a new award happened.
func (ds *PostgresService) AwardBadge(userID, badgeID string) (bool, error) {
	id, _ := uuid.NewV7()
	ub := model.UserBadge{
		ID:        id.String(),
		UserID:    userID,
		BadgeID:   badgeID,
		AwardedAt: time.Now(),
	}

	res := ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(&ub)
	if res.Error != nil {
		return false, ds.HandleError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (ds *PostgresService) GetUserBadges(userID string) ([]model.UserBadge, error) {
	var badges []model.UserBadge
	if err := ds.db.Where("user_id = ?", userID).Preload("Badge").Find(&badges).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return badges, nil
}

// ==================== LEADERBOARD METHODS ====================

func (ds *PostgresService) GetTopAccountsByXP(limit int) ([]model.Account, error) {
	var accounts []model.Account
	if err := ds.db.Where("xp > 0").Order("xp DESC").Limit(limit).Find(&accounts).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return accounts, nil
}

// ==================== SEED DATA ====================

func (ds *PostgresService) seedInitialData() error {
	if err := ds.seedBadges(); err != nil {
		return err
	}
	if err := ds.seedQuizzes(); err != nil {
		return err
	}
	return ds.seedAdminAccount()
}

func (ds *PostgresService) seedBadges() error {
	var count int64
	if err := ds.db.Model(&model.Badge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	badges := []model.Badge{}
	for _, m := range shared.ModuleTypes {
		id, _ := uuid.NewV7()
		badges = append(badges, model.Badge{
			ID:          id.String(),
			Code:        "perfect_" + m,
			Name:        "Perfect score: " + m,
			Description: fmt.Sprintf("Scored 100 on a %s quiz", m),
			IconURL:     fmt.Sprintf("/assets/badges/perfect_%s.png", m),
			CreatedAt:   time.Now(),
		})
	}

	return ds.db.Create(&badges).Error
}

func (ds *PostgresService) seedQuizzes() error {
	var count int64
	if err := ds.db.Model(&model.Quiz{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type seedOption struct {
		text    string
		correct bool
	}
	type seedQuestion struct {
		text    string
		options []seedOption
	}
	type seedQuiz struct {
		module    string
		title     string
		desc      string
		xp        int
		questions []seedQuestion
	}

	seeds := []seedQuiz{
		{
			module: shared.ModuleMacro,
			title:  "Tasas de interés y regla de Taylor",
			desc:   "Conceptos básicos de política monetaria",
			xp:     50,
			questions: []seedQuestion{
				{
					text: "¿Qué mide la tasa de interés real ex-post?",
					options: []seedOption{
						{"La tasa de política menos la inflación observada", true},
						{"La tasa de política más la inflación esperada", false},
						{"La inflación núcleo menos la meta", false},
					},
				},
				{
					text: "En la regla de Taylor, una brecha de producto negativa sugiere…",
					options: []seedOption{
						{"Subir la tasa de referencia", false},
						{"Bajar la tasa de referencia", true},
						{"Mantener la meta de inflación", false},
					},
				},
			},
		},
		{
			module: shared.ModuleCripto,
			title:  "Halving y emisión",
			desc:   "Calendarios de emisión con recompensa decreciente",
			xp:     50,
			questions: []seedQuestion{
				{
					text: "Tras cada halving, la recompensa por bloque…",
					options: []seedOption{
						{"Se duplica", false},
						{"Se reduce a la mitad", true},
						{"No cambia", false},
					},
				},
			},
		},
		{
			module: shared.ModuleSeguros,
			title:  "Prima de seguros",
			desc:   "Pérdida esperada y recargos",
			xp:     40,
			questions: []seedQuestion{
				{
					text: "La pérdida esperada anual se calcula como…",
					options: []seedOption{
						{"Probabilidad × severidad", true},
						{"Suma asegurada × recargo", false},
						{"Prima pura × probabilidad", false},
					},
				},
			},
		},
		{
			module: shared.ModuleFinanzas,
			title:  "Ratios de valuación",
			desc:   "P/E, earnings yield y PEG",
			xp:     40,
			questions: []seedQuestion{
				{
					text: "Un PEG menor a 1 suele indicar…",
					options: []seedOption{
						{"Acción cara respecto a su crecimiento", false},
						{"Acción barata respecto a su crecimiento", true},
						{"Crecimiento negativo", false},
					},
				},
			},
		},
	}

	for _, sq := range seeds {
		quizID, _ := uuid.NewV7()
		quiz := model.Quiz{
			ID:          quizID.String(),
			ModuleType:  sq.module,
			Title:       sq.title,
			Description: sq.desc,
			XPReward:    sq.xp,
			IsActive:    true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := ds.db.Create(&quiz).Error; err != nil {
			return err
		}

		for i, q := range sq.questions {
			questionID, _ := uuid.NewV7()
			question := model.Question{
				ID:        questionID.String(),
				QuizID:    quiz.ID,
				Text:      q.text,
				Order:     i + 1,
				CreatedAt: time.Now(),
			}
			if err := ds.db.Create(&question).Error; err != nil {
				return err
			}

			for _, o := range q.options {
				optionID, _ := uuid.NewV7()
				option := model.Option{
					ID:         optionID.String(),
					QuestionID: question.ID,
					Text:       o.text,
					IsCorrect:  o.correct,
				}
				if err := ds.db.Create(&option).Error; err != nil {
					return err
				}
			}
		}
	}

	log.Printf("Seeded %d quizzes", len(seeds))
	return nil
}

func (ds *PostgresService) seedAdminAccount() error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return nil
	}

	var count int64
	if err := ds.db.Model(&model.Account{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "ChangeMe123"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	if err != nil {
		return err
	}

	id, _ := uuid.NewV7()
	admin := model.Account{
		ID:           id.String(),
		Email:        adminEmail,
		Username:     "admin",
		Password:     string(hashedPassword),
		AuthProvider: shared.AuthProviderLocal,
		Role:         shared.RoleAdmin,
		Credits:      shared.InitialCredits,
		Plan:         shared.PlanFree,
		Level:        1,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := ds.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin account %s", adminEmail)
	return nil
}
