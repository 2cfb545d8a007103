package model

import "time"

// Quiz is reference content: a set of questions for one simulation module.
// Quizzes are seeded, not created through the API.
type Quiz struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ModuleType  string    `json:"module_type" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	XPReward    int       `json:"xp_reward" gorm:"default:50"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Questions []Question `json:"questions" gorm:"foreignKey:QuizID"`
}

type Question struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	QuizID    string    `json:"quiz_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Order     int       `json:"order" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	Options []Option `json:"options" gorm:"foreignKey:QuestionID"`
}

// Option is one answer choice; exactly one option per question carries
// IsCorrect. The flag is stripped from API responses.
type Option struct {
	ID         string `json:"id" gorm:"primaryKey"`
	QuestionID string `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"-" gorm:"default:false"`
}

// QuizAttempt records one submission. Multiple attempts per (user, quiz) are
// allowed; only the first one awards XP.
type QuizAttempt struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;index:idx_attempt_user_quiz"`
	QuizID    string    `json:"quiz_id" gorm:"not null;index:idx_attempt_user_quiz"`
	Score     int       `json:"score" gorm:"not null"`
	Completed bool      `json:"completed" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	Account Account `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Quiz    Quiz    `json:"-" gorm:"foreignKey:QuizID"`
}

type Badge struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Code        string    `json:"code" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserBadge joins an account to a badge. The composite unique index makes
// awarding idempotent: a second award is a no-op, never a duplicate row.
type UserBadge struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	BadgeID   string    `json:"badge_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	AwardedAt time.Time `json:"awarded_at"`

	Badge Badge `json:"badge" gorm:"foreignKey:BadgeID"`
}
