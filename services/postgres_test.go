package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econosfera/econ_api/model"
	"github.com/econosfera/econ_api/shared"
)

func TestCreateAccountDefaults(t *testing.T) {
	ds := newTestDB(t)

	account := createTestAccount(t, ds, "user@test.com", "user1")

	assert.NotEmpty(t, account.ID)
	assert.Equal(t, shared.InitialCredits, account.Credits)
	assert.Equal(t, 1, account.Level)
	assert.Equal(t, 0, account.ExportCount)
}

func TestCreateAccountDuplicateLeavesFirstUntouched(t *testing.T) {
	ds := newTestDB(t)

	first := createTestAccount(t, ds, "user@test.com", "user1")
	setCredits(t, ds, first.ID, 7)

	_, err := ds.CreateAccount(&model.Account{
		Email:    "user@test.com",
		Username: "someoneelse",
	})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)

	reloaded, err := ds.GetAccount(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "user1", reloaded.Username)
	assert.Equal(t, 7, reloaded.Credits)

	var count int64
	require.NoError(t, ds.db.Model(&model.Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConsumeCreditsGuard(t *testing.T) {
	ds := newTestDB(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")

	require.NoError(t, ds.ConsumeCredits(account.ID, 4))

	reloaded, err := ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.InitialCredits-4, reloaded.Credits)

	err = ds.ConsumeCredits(account.ID, 100)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 402, appErr.StatusCode)

	reloaded, err = ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.InitialCredits-4, reloaded.Credits)
}

func TestConsumeCreditsMissingAccount(t *testing.T) {
	ds := newTestDB(t)

	err := ds.ConsumeCredits("no-such-id", 1)
	require.Error(t, err)

	if appErr, ok := shared.GetAppError(err); ok {
		assert.NotEqual(t, 402, appErr.StatusCode)
	}
}

func TestGrantCredits(t *testing.T) {
	ds := newTestDB(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")

	updated, err := ds.GrantCredits(account.ID, 25, shared.PlanBasic)
	require.NoError(t, err)
	assert.Equal(t, shared.InitialCredits+25, updated.Credits)
	assert.Equal(t, shared.PlanBasic, updated.Plan)

	// Empty plan tag only moves the balance.
	updated, err = ds.GrantCredits(account.ID, 5, "")
	require.NoError(t, err)
	assert.Equal(t, shared.InitialCredits+30, updated.Credits)
	assert.Equal(t, shared.PlanBasic, updated.Plan)

	_, err = ds.GrantCredits("no-such-id", 5, "")
	require.Error(t, err)
}

func TestMeteredExportDecrementsOnce(t *testing.T) {
	ds := newTestDB(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")

	entry, updated, err := ds.MeteredExport(account.ID, shared.ModuleMacro, shared.ExportTypePDF)
	require.NoError(t, err)

	assert.Equal(t, shared.InitialCredits-1, updated.Credits)
	assert.Equal(t, 1, updated.ExportCount)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, account.ID, *entry.UserID)
	assert.Equal(t, shared.ExportTypePDF, entry.ExportType)

	var logs []model.ExportLog
	require.NoError(t, ds.db.Find(&logs).Error)
	assert.Len(t, logs, 1)
}

func TestMeteredExportInsufficientCredit(t *testing.T) {
	ds := newTestDB(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")
	setCredits(t, ds, account.ID, 0)

	_, _, err := ds.MeteredExport(account.ID, shared.ModuleMacro, shared.ExportTypePDF)
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 402, appErr.StatusCode)

	// The rejection leaves every piece of state untouched.
	reloaded, err := ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Credits)
	assert.Equal(t, 0, reloaded.ExportCount)

	var count int64
	require.NoError(t, ds.db.Model(&model.ExportLog{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestMeteredExportLastCreditRace(t *testing.T) {
	ds := newTestDB(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")
	setCredits(t, ds, account.ID, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = ds.MeteredExport(account.ID, shared.ModuleMacro, shared.ExportTypePNG)
		}(i)
	}
	wg.Wait()

	successes := 0
	rejections := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok, "unexpected error: %v", err)
		require.Equal(t, 402, appErr.StatusCode)
		rejections++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, rejections)

	reloaded, err := ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Credits)
	assert.Equal(t, 1, reloaded.ExportCount)

	var count int64
	require.NoError(t, ds.db.Model(&model.ExportLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAnonymousExportSkipsMetering(t *testing.T) {
	ds := newTestDB(t)

	entry, err := ds.AnonymousExport(shared.ModuleCripto, shared.ExportTypePNG)
	require.NoError(t, err)
	assert.Nil(t, entry.UserID)
	assert.Equal(t, shared.ModuleCripto, entry.ModuleName)
}

func TestGetExportLogScopedToOwner(t *testing.T) {
	ds := newTestDB(t)
	owner := createTestAccount(t, ds, "owner@test.com", "owner")
	other := createTestAccount(t, ds, "other@test.com", "other")

	entry, _, err := ds.MeteredExport(owner.ID, shared.ModuleMacro, shared.ExportTypePDF)
	require.NoError(t, err)

	_, err = ds.GetExportLog(other.ID, entry.ID)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)

	got, err := ds.GetExportLog(owner.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
}

func TestAwardBadgeIdempotent(t *testing.T) {
	ds := newTestDB(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")
	badge := seedTestBadge(t, ds, "perfect_macro")

	awarded, err := ds.AwardBadge(account.ID, badge.ID)
	require.NoError(t, err)
	assert.True(t, awarded)

	awarded, err = ds.AwardBadge(account.ID, badge.ID)
	require.NoError(t, err)
	assert.False(t, awarded)

	var count int64
	require.NoError(t, ds.db.Model(&model.UserBadge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateStreakPreservesConcurrentCharge(t *testing.T) {
	ds := newTestDB(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")

	// The streak path reads its snapshot, then an export charge commits
	// before the streak write lands.
	stale, err := ds.GetAccount(account.ID)
	require.NoError(t, err)

	_, _, err = ds.MeteredExport(account.ID, shared.ModuleMacro, shared.ExportTypePDF)
	require.NoError(t, err)

	require.NoError(t, ds.UpdateStreak(account.ID, stale.Streak+1, time.Now()))

	reloaded, err := ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.InitialCredits-1, reloaded.Credits)
	assert.Equal(t, 1, reloaded.ExportCount)
	assert.Equal(t, 1, reloaded.Streak)
	require.NotNil(t, reloaded.LastActivityAt)
}

func TestUpdateStreakMissingAccount(t *testing.T) {
	ds := newTestDB(t)

	err := ds.UpdateStreak(newTestID(), 1, time.Now())
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestSubmitQuizAttemptAwardsXPOnce(t *testing.T) {
	ds := newTestDB(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")
	quiz, _ := seedTestQuiz(t, ds, shared.ModuleMacro, 50)

	first, err := ds.SubmitQuizAttempt(account.ID, quiz.ID, 60, quiz.XPReward)
	require.NoError(t, err)
	assert.True(t, first.FirstAttempt)
	assert.Equal(t, 50, first.XPAwarded)
	assert.Equal(t, 50, first.Account.XP)

	second, err := ds.SubmitQuizAttempt(account.ID, quiz.ID, 90, quiz.XPReward)
	require.NoError(t, err)
	assert.False(t, second.FirstAttempt)
	assert.Equal(t, 0, second.XPAwarded)
	assert.Equal(t, 50, second.Account.XP)

	attempts, err := ds.GetAttempts(account.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestSubmitQuizAttemptDoubleSubmitRace(t *testing.T) {
	ds := newTestDB(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")
	quiz, _ := seedTestQuiz(t, ds, shared.ModuleMacro, 50)

	var wg sync.WaitGroup
	results := make([]*SubmitAttemptResult, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = ds.SubmitQuizAttempt(account.ID, quiz.ID, 100, quiz.XPReward)
		}(i)
	}
	wg.Wait()

	firstAttempts := 0
	for i := range results {
		require.NoError(t, errs[i])
		if results[i].FirstAttempt {
			firstAttempts++
			assert.Equal(t, 50, results[i].XPAwarded)
		} else {
			assert.Equal(t, 0, results[i].XPAwarded)
		}
	}
	assert.Equal(t, 1, firstAttempts)

	reloaded, err := ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, reloaded.XP)

	attempts, err := ds.GetAttempts(account.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestGetQuizLoadsQuestionsInOrder(t *testing.T) {
	ds := newTestDB(t)
	quiz, _ := seedTestQuiz(t, ds, shared.ModuleSeguros, 40)

	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, 1, quiz.Questions[0].Order)
	assert.Equal(t, 2, quiz.Questions[1].Order)
	assert.Len(t, quiz.Questions[0].Options, 3)
}

func TestGetTopAccountsByXP(t *testing.T) {
	ds := newTestDB(t)

	a := createTestAccount(t, ds, "a@test.com", "alice")
	b := createTestAccount(t, ds, "b@test.com", "bob")
	createTestAccount(t, ds, "c@test.com", "carol") // stays at 0 XP

	require.NoError(t, ds.db.Model(&model.Account{}).Where("id = ?", a.ID).Update("xp", 120).Error)
	require.NoError(t, ds.db.Model(&model.Account{}).Where("id = ?", b.ID).Update("xp", 300).Error)

	top, err := ds.GetTopAccountsByXP(10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "bob", top[0].Username)
	assert.Equal(t, "alice", top[1].Username)
}
