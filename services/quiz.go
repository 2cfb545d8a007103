package services

import (
	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/model"
)

// QuizService serves quiz content and runs the attempt state machine:
// every submission records an attempt; only the first attempt per
// (account, quiz) awards XP; a perfect score awards the module badge.
type QuizService struct {
	context.DefaultService

	sqlSvc         *PostgresService
	accountSvc     *AccountService
	leaderboardSvc *LeaderboardService
}

const QUIZ_SVC = "quiz_svc"

func (svc QuizService) Id() string {
	return QUIZ_SVC
}

func (svc *QuizService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *QuizService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.accountSvc = svc.Service(ACCOUNT_SVC).(*AccountService)
	svc.leaderboardSvc = svc.Service(LEADERBOARD_SVC).(*LeaderboardService)
	return nil
}

// ==================== CONTENT ====================

func (svc *QuizService) GetQuizzes(moduleType string) (*dto.QuizListResponse, error) {
	quizzes, err := svc.sqlSvc.GetQuizzes(moduleType)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.QuizResponse, len(quizzes))
	for i, q := range quizzes {
		responses[i] = dto.QuizResponse{
			ID:          q.ID,
			ModuleType:  q.ModuleType,
			Title:       q.Title,
			Description: q.Description,
			XPReward:    q.XPReward,
		}
	}

	return &dto.QuizListResponse{Quizzes: responses, Total: len(responses)}, nil
}

func (svc *QuizService) GetQuiz(quizID string) (*dto.QuizResponse, error) {
	quiz, err := svc.sqlSvc.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	resp := svc.mapQuizToResponse(quiz)
	return &resp, nil
}

// mapQuizToResponse strips the IsCorrect flag: correct answers never leave
// the server.
func (svc *QuizService) mapQuizToResponse(quiz *model.Quiz) dto.QuizResponse {
	questions := make([]dto.QuestionResponse, len(quiz.Questions))
	for i, q := range quiz.Questions {
		options := make([]dto.OptionResponse, len(q.Options))
		for j, o := range q.Options {
			options[j] = dto.OptionResponse{ID: o.ID, Text: o.Text}
		}
		questions[i] = dto.QuestionResponse{
			ID:      q.ID,
			Text:    q.Text,
			Order:   q.Order,
			Options: options,
		}
	}

	return dto.QuizResponse{
		ID:          quiz.ID,
		ModuleType:  quiz.ModuleType,
		Title:       quiz.Title,
		Description: quiz.Description,
		XPReward:    quiz.XPReward,
		Questions:   questions,
	}
}

// ==================== SUBMISSION ====================

func (svc *QuizService) SubmitAttempt(userID, quizID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	quiz, err := svc.sqlSvc.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	score, correct, total := svc.grade(quiz, req.Answers)

	result, err := svc.sqlSvc.SubmitQuizAttempt(userID, quizID, score, quiz.XPReward)
	if err != nil {
		return nil, err
	}

	RecordQuizSubmission(result.FirstAttempt, result.XPAwarded)

	resp := &dto.SubmitQuizResponse{
		AttemptID:    result.Attempt.ID,
		Score:        score,
		Correct:      correct,
		Total:        total,
		XPAwarded:    result.XPAwarded,
		FirstAttempt: result.FirstAttempt,
		TotalXP:      result.Account.XP,
		Level:        result.Account.Level,
	}

	if result.XPAwarded > 0 {
		newLevel := CalculateLevel(result.Account.XP)
		if newLevel != result.Account.Level {
			if err := svc.sqlSvc.UpdateAccountLevel(userID, newLevel); err != nil {
				log.WithError(err).WithField("user_id", userID).Warn("Failed to update level")
			} else {
				log.WithFields(log.Fields{"user_id": userID, "level": newLevel}).Info("Account leveled up")
			}
		}
		resp.Level = newLevel

		svc.leaderboardSvc.RecordXP(userID, result.Account.Username, result.Account.XP)
	}

	if score == 100 {
		badgeCode := "perfect_" + quiz.ModuleType
		if awarded, err := svc.awardBadge(userID, badgeCode); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to award badge")
		} else if awarded {
			resp.BadgeAwarded = badgeCode
		}
	}

	if err := svc.accountSvc.UpdateStreak(userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to update streak")
	}

	return resp, nil
}

// grade scores an answer map (question id -> option id) against the correct
// options. Unanswered and unknown questions count as wrong.
func (svc *QuizService) grade(quiz *model.Quiz, answers map[string]string) (score, correct, total int) {
	total = len(quiz.Questions)
	if total == 0 {
		return 0, 0, 0
	}

	for _, q := range quiz.Questions {
		chosen, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, o := range q.Options {
			if o.ID == chosen && o.IsCorrect {
				correct++
				break
			}
		}
	}

	score = correct * 100 / total
	return score, correct, total
}

func (svc *QuizService) awardBadge(userID, badgeCode string) (bool, error) {
	badge, err := svc.sqlSvc.GetBadgeByCode(badgeCode)
	if err != nil {
		return false, err
	}
	return svc.sqlSvc.AwardBadge(userID, badge.ID)
}

func (svc *QuizService) GetAttempts(userID string) ([]dto.AttemptResponse, error) {
	attempts, err := svc.sqlSvc.GetAttempts(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AttemptResponse, len(attempts))
	for i, a := range attempts {
		responses[i] = dto.AttemptResponse{
			ID:        a.ID,
			QuizID:    a.QuizID,
			Score:     a.Score,
			Completed: a.Completed,
			CreatedAt: a.CreatedAt,
		}
	}
	return responses, nil
}
