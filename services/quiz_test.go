package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/model"
	"github.com/econosfera/econ_api/shared"
)

func newQuizService(t *testing.T) (*QuizService, *PostgresService) {
	t.Helper()

	ds := newTestDB(t)
	svc := &QuizService{
		sqlSvc:         ds,
		accountSvc:     &AccountService{sqlSvc: ds},
		leaderboardSvc: &LeaderboardService{redisSvc: &RedisService{}, sqlSvc: ds},
	}
	return svc, ds
}

func TestGrade(t *testing.T) {
	svc := &QuizService{}

	quiz := &model.Quiz{
		Questions: []model.Question{
			{ID: "q1", Options: []model.Option{
				{ID: "a", IsCorrect: true},
				{ID: "b"},
			}},
			{ID: "q2", Options: []model.Option{
				{ID: "c"},
				{ID: "d", IsCorrect: true},
			}},
		},
	}

	score, correct, total := svc.grade(quiz, map[string]string{"q1": "a", "q2": "d"})
	assert.Equal(t, 100, score)
	assert.Equal(t, 2, correct)
	assert.Equal(t, 2, total)

	score, correct, _ = svc.grade(quiz, map[string]string{"q1": "a", "q2": "c"})
	assert.Equal(t, 50, score)
	assert.Equal(t, 1, correct)

	// Unanswered questions count as wrong.
	score, correct, _ = svc.grade(quiz, map[string]string{"q1": "a"})
	assert.Equal(t, 50, score)
	assert.Equal(t, 1, correct)

	// Answers for unknown questions are ignored.
	score, _, _ = svc.grade(quiz, map[string]string{"zz": "a"})
	assert.Equal(t, 0, score)

	score, correct, total = svc.grade(&model.Quiz{}, map[string]string{})
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, correct)
	assert.Equal(t, 0, total)
}

func TestGetQuizHidesCorrectFlags(t *testing.T) {
	svc, ds := newQuizService(t)
	quiz, _ := seedTestQuiz(t, ds, shared.ModuleMacro, 50)

	resp, err := svc.GetQuiz(quiz.ID)
	require.NoError(t, err)
	require.Len(t, resp.Questions, 2)
	for _, q := range resp.Questions {
		assert.Len(t, q.Options, 3)
		for _, o := range q.Options {
			assert.NotEmpty(t, o.ID)
			assert.NotEmpty(t, o.Text)
		}
	}
}

func TestGetQuizzesFiltersByModule(t *testing.T) {
	svc, ds := newQuizService(t)
	seedTestQuiz(t, ds, shared.ModuleMacro, 50)
	seedTestQuiz(t, ds, shared.ModuleCripto, 50)

	all, err := svc.GetQuizzes("")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	macro, err := svc.GetQuizzes(shared.ModuleMacro)
	require.NoError(t, err)
	require.Equal(t, 1, macro.Total)
	assert.Equal(t, shared.ModuleMacro, macro.Quizzes[0].ModuleType)
}

func TestSubmitAttemptFirstAttemptAwardsEverything(t *testing.T) {
	svc, ds := newQuizService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")
	quiz, correctAnswers := seedTestQuiz(t, ds, shared.ModuleMacro, 50)
	seedTestBadge(t, ds, "perfect_macro")

	resp, err := svc.SubmitAttempt(account.ID, quiz.ID, dto.SubmitQuizRequest{Answers: correctAnswers})
	require.NoError(t, err)

	assert.Equal(t, 100, resp.Score)
	assert.True(t, resp.FirstAttempt)
	assert.Equal(t, 50, resp.XPAwarded)
	assert.Equal(t, 50, resp.TotalXP)
	assert.Equal(t, "perfect_macro", resp.BadgeAwarded)

	reloaded, err := ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, reloaded.XP)
	assert.Equal(t, 1, reloaded.Streak)
}

func TestSubmitAttemptRepeatEarnsNothing(t *testing.T) {
	svc, ds := newQuizService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")
	quiz, correctAnswers := seedTestQuiz(t, ds, shared.ModuleCripto, 60)
	seedTestBadge(t, ds, "perfect_cripto")

	// Partial first attempt: XP yes, badge no.
	partial := map[string]string{}
	for q, o := range correctAnswers {
		partial[q] = o
		break
	}
	first, err := svc.SubmitAttempt(account.ID, quiz.ID, dto.SubmitQuizRequest{Answers: partial})
	require.NoError(t, err)
	assert.True(t, first.FirstAttempt)
	assert.Equal(t, 60, first.XPAwarded)
	assert.Empty(t, first.BadgeAwarded)

	// Perfect second attempt: badge yes, XP no.
	second, err := svc.SubmitAttempt(account.ID, quiz.ID, dto.SubmitQuizRequest{Answers: correctAnswers})
	require.NoError(t, err)
	assert.False(t, second.FirstAttempt)
	assert.Equal(t, 0, second.XPAwarded)
	assert.Equal(t, 60, second.TotalXP)
	assert.Equal(t, "perfect_cripto", second.BadgeAwarded)

	var attempts int64
	require.NoError(t, ds.db.Model(&model.QuizAttempt{}).Count(&attempts).Error)
	assert.Equal(t, int64(2), attempts)
}

func TestSubmitAttemptLevelsUp(t *testing.T) {
	svc, ds := newQuizService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")
	quiz, correctAnswers := seedTestQuiz(t, ds, shared.ModuleFinanzas, 120)

	resp, err := svc.SubmitAttempt(account.ID, quiz.ID, dto.SubmitQuizRequest{Answers: correctAnswers})
	require.NoError(t, err)
	assert.Equal(t, 120, resp.TotalXP)
	assert.Equal(t, 2, resp.Level)

	reloaded, err := ds.GetAccount(account.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Level)
}

func TestSubmitAttemptUnknownQuiz(t *testing.T) {
	svc, ds := newQuizService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")

	_, err := svc.SubmitAttempt(account.ID, "no-such-quiz", dto.SubmitQuizRequest{Answers: map[string]string{"q": "a"}})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestLeaderboardFallsBackToDB(t *testing.T) {
	ds := newTestDB(t)
	svc := &LeaderboardService{redisSvc: &RedisService{}, sqlSvc: ds}

	a := createTestAccount(t, ds, "a@test.com", "alice")
	b := createTestAccount(t, ds, "b@test.com", "bob")
	require.NoError(t, ds.db.Model(&model.Account{}).Where("id = ?", a.ID).Update("xp", 90).Error)
	require.NoError(t, ds.db.Model(&model.Account{}).Where("id = ?", b.ID).Update("xp", 210).Error)

	resp, err := svc.Top(10)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "bob", resp.Entries[0].Username)
	assert.Equal(t, 1, resp.Entries[0].Rank)
	assert.Equal(t, "alice", resp.Entries[1].Username)
}
