package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/model"
	"github.com/econosfera/econ_api/shared"
)

func newAccountService(t *testing.T) (*AccountService, *PostgresService) {
	t.Helper()
	ds := newTestDB(t)
	return &AccountService{sqlSvc: ds}, ds
}

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},  // 100 + 150
		{474, 3},  // next threshold at 100+150+225 = 475
		{475, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, CalculateLevel(tt.xp), "xp=%d", tt.xp)
	}
}

func TestCalculateXPToNextLevel(t *testing.T) {
	assert.Equal(t, 100, CalculateXPToNextLevel(0))
	assert.Equal(t, 1, CalculateXPToNextLevel(99))
	assert.Equal(t, 150, CalculateXPToNextLevel(100))
	assert.Equal(t, 125, CalculateXPToNextLevel(125))
}

func TestGetBalance(t *testing.T) {
	svc, ds := newAccountService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")

	balance, err := svc.GetBalance(account.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.InitialCredits, balance.Credits)
	assert.Equal(t, shared.PlanFree, balance.Plan)

	_, err = svc.GetBalance("no-such-id")
	require.Error(t, err)
}

func TestUpgradePlanGrantsBundle(t *testing.T) {
	svc, ds := newAccountService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")

	resp, err := svc.UpgradePlan(account.ID, dto.UpgradePlanRequest{Plan: shared.PlanPro})
	require.NoError(t, err)
	assert.Equal(t, shared.PlanPro, resp.Plan)
	assert.Equal(t, shared.PlanCredits[shared.PlanPro], resp.CreditsGranted)
	assert.Equal(t, shared.InitialCredits+shared.PlanCredits[shared.PlanPro], resp.Credits)

	_, err = svc.UpgradePlan(account.ID, dto.UpgradePlanRequest{Plan: "platinum"})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestUpdateStreak(t *testing.T) {
	svc, ds := newAccountService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")

	// First activity starts the streak.
	require.NoError(t, svc.UpdateStreak(account.ID))
	reloaded, err := ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Streak)

	// Same-day activity leaves it alone.
	require.NoError(t, svc.UpdateStreak(account.ID))
	reloaded, err = ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Streak)

	// Activity yesterday extends the streak.
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, ds.db.Model(&model.Account{}).Where("id = ?", account.ID).
		Update("last_activity_at", &yesterday).Error)
	require.NoError(t, svc.UpdateStreak(account.ID))
	reloaded, err = ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Streak)

	// A gap resets it.
	lastWeek := time.Now().AddDate(0, 0, -7)
	require.NoError(t, ds.db.Model(&model.Account{}).Where("id = ?", account.ID).
		Update("last_activity_at", &lastWeek).Error)
	require.NoError(t, svc.UpdateStreak(account.ID))
	reloaded, err = ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Streak)
}

func TestGetProgressIncludesBadges(t *testing.T) {
	svc, ds := newAccountService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")
	badge := seedTestBadge(t, ds, "perfect_macro")

	_, err := ds.AwardBadge(account.ID, badge.ID)
	require.NoError(t, err)
	require.NoError(t, ds.db.Model(&model.Account{}).Where("id = ?", account.ID).Update("xp", 120).Error)

	progress, err := svc.GetProgress(account.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, progress.XP)
	assert.Equal(t, 1, progress.Level) // level column is updated by the quiz flow
	require.Len(t, progress.Badges, 1)
	assert.Equal(t, "perfect_macro", progress.Badges[0].Code)
	assert.NotNil(t, progress.Badges[0].AwardedAt)
}

func TestAdminListAccounts(t *testing.T) {
	svc, ds := newAccountService(t)
	createTestAccount(t, ds, "alice@test.com", "alice")
	createTestAccount(t, ds, "bob@test.com", "bob")
	createTestAccount(t, ds, "carol@qa.test.com", "carol")

	resp, err := svc.AdminListAccounts(1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Accounts, 2)

	resp, err = svc.AdminListAccounts(1, 20, "qa.test")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Accounts, 1)
	assert.Equal(t, "carol", resp.Accounts[0].Username)
}
