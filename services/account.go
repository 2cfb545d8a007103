package services

import (
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/shared"
)

// AccountService is the credit ledger plus the gamification counters that
// hang off the account row.
type AccountService struct {
	context.DefaultService

	sqlSvc *PostgresService
}

const ACCOUNT_SVC = "account_svc"

func (svc AccountService) Id() string {
	return ACCOUNT_SVC
}

func (svc *AccountService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AccountService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ==================== CREDIT LEDGER ====================

func (svc *AccountService) GetBalance(userID string) (*dto.BalanceResponse, error) {
	account, err := svc.sqlSvc.GetAccount(userID)
	if err != nil {
		return nil, err
	}

	return &dto.BalanceResponse{
		Credits:     account.Credits,
		ExportCount: account.ExportCount,
		Plan:        account.Plan,
	}, nil
}

func (svc *AccountService) ConsumeCredits(userID string, n int) error {
	return svc.sqlSvc.ConsumeCredits(userID, n)
}

func (svc *AccountService) GrantCredits(userID string, n int, planTag string) (*dto.BalanceResponse, error) {
	account, err := svc.sqlSvc.GrantCredits(userID, n, planTag)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"credits": n,
		"plan":    planTag,
	}).Info("Credits granted")

	return &dto.BalanceResponse{
		Credits:     account.Credits,
		ExportCount: account.ExportCount,
		Plan:        account.Plan,
	}, nil
}

// UpgradePlan maps the purchased plan to its credit bundle. Payment
// processing happens upstream; this is the fulfillment step.
func (svc *AccountService) UpgradePlan(userID string, req dto.UpgradePlanRequest) (*dto.UpgradePlanResponse, error) {
	bundle, ok := shared.PlanCredits[req.Plan]
	if !ok {
		return nil, shared.NewBadRequestError(nil, "Unknown plan")
	}

	account, err := svc.sqlSvc.GrantCredits(userID, bundle, req.Plan)
	if err != nil {
		return nil, err
	}

	return &dto.UpgradePlanResponse{
		Plan:           account.Plan,
		CreditsGranted: bundle,
		Credits:        account.Credits,
	}, nil
}

// ==================== PROGRESS ====================

func (svc *AccountService) GetProgress(userID string) (*dto.ProgressResponse, error) {
	account, err := svc.sqlSvc.GetAccount(userID)
	if err != nil {
		return nil, err
	}

	userBadges, err := svc.sqlSvc.GetUserBadges(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to load badges")
		userBadges = nil
	}

	badges := make([]dto.BadgeResponse, 0, len(userBadges))
	for _, ub := range userBadges {
		awardedAt := ub.AwardedAt
		badges = append(badges, dto.BadgeResponse{
			Code:        ub.Badge.Code,
			Name:        ub.Badge.Name,
			Description: ub.Badge.Description,
			IconURL:     ub.Badge.IconURL,
			AwardedAt:   &awardedAt,
		})
	}

	return &dto.ProgressResponse{
		UserID:        userID,
		XP:            account.XP,
		Level:         account.Level,
		XPToNextLevel: CalculateXPToNextLevel(account.XP),
		Streak:        account.Streak,
		Badges:        badges,
	}, nil
}

// UpdateStreak applies the daily streak rules to the account row: same day
// is a no-op, the next day increments, a gap resets to one.
func (svc *AccountService) UpdateStreak(userID string) error {
	account, err := svc.sqlSvc.GetAccount(userID)
	if err != nil {
		return err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	streak := account.Streak
	if account.LastActivityAt == nil {
		streak = 1
	} else {
		last := *account.LastActivityAt
		lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, last.Location())

		daysDiff := int(today.Sub(lastDay).Hours() / 24)

		switch daysDiff {
		case 0:
			// Same day, no change to streak
		case 1:
			streak++
		default:
			streak = 1
		}
	}

	return svc.sqlSvc.UpdateStreak(userID, streak, now)
}

// ==================== LEVEL HELPERS ====================

// CalculateLevel converts cumulative XP to a level; each level requires
// 1.5x more XP than the previous one, starting at 100.
func CalculateLevel(totalXP int) int {
	level := 1
	requiredXP := 100

	for totalXP >= requiredXP {
		totalXP -= requiredXP
		level++
		requiredXP = int(float64(requiredXP) * 1.5)
	}

	return level
}

func CalculateXPToNextLevel(currentXP int) int {
	currentLevel := CalculateLevel(currentXP)
	return totalXPForLevel(currentLevel+1) - currentXP
}

func totalXPForLevel(targetLevel int) int {
	if targetLevel <= 1 {
		return 0
	}

	totalXP := 0
	requiredXP := 100

	for level := 2; level <= targetLevel; level++ {
		totalXP += requiredXP
		requiredXP = int(float64(requiredXP) * 1.5)
	}

	return totalXP
}

// ==================== ADMIN ====================

func (svc *AccountService) AdminListAccounts(page, limit int, search string) (*dto.AdminAccountListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	accounts, total, err := svc.sqlSvc.ListAccounts(page, limit, search)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.AdminAccountInfo, len(accounts))
	for i, a := range accounts {
		infos[i] = dto.AdminAccountInfo{
			ID:          a.ID,
			Email:       a.Email,
			Username:    a.Username,
			Role:        a.Role,
			Plan:        a.Plan,
			Credits:     a.Credits,
			ExportCount: a.ExportCount,
			XP:          a.XP,
			CreatedAt:   a.CreatedAt,
		}
	}

	return &dto.AdminAccountListResponse{
		Accounts: infos,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}
