package dto

import "time"

type QuizResponse struct {
	ID          string             `json:"id"`
	ModuleType  string             `json:"module_type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	XPReward    int                `json:"xp_reward"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
}

type QuestionResponse struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Order   int              `json:"order"`
	Options []OptionResponse `json:"options"`
}

// OptionResponse never exposes which option is correct.
type OptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuizListResponse struct {
	Quizzes []QuizResponse `json:"quizzes"`
	Total   int            `json:"total"`
}

type SubmitQuizRequest struct {
	// Answers maps question id to the chosen option id.
	Answers map[string]string `json:"answers" validate:"required,min=1"`
}

func (s SubmitQuizRequest) Validate() error {
	return GetValidator().Struct(s)
}

type SubmitQuizResponse struct {
	AttemptID    string `json:"attempt_id"`
	Score        int    `json:"score"`
	Correct      int    `json:"correct"`
	Total        int    `json:"total"`
	XPAwarded    int    `json:"xp_awarded"`
	FirstAttempt bool   `json:"first_attempt"`
	BadgeAwarded string `json:"badge_awarded,omitempty"`
	TotalXP      int    `json:"total_xp"`
	Level        int    `json:"level"`
}

type AttemptResponse struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quiz_id"`
	Score     int       `json:"score"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	XP       int    `json:"xp"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`
}
