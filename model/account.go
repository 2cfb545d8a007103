package model

import "time"

// Account is a registered or federated user identity. Credits meter export
// actions; XP/Streak accumulate from quiz completions. Rows are never
// hard-deleted.
type Account struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Password     string `json:"-"` // bcrypt hash; empty for federated accounts
	AuthProvider string `json:"auth_provider" gorm:"default:local"`
	Role         string `json:"role" gorm:"default:user"`

	Credits     int    `json:"credits" gorm:"default:10;check:credits >= 0"`
	ExportCount int    `json:"export_count" gorm:"default:0"`
	Plan        string `json:"plan" gorm:"default:free"`

	XP     int `json:"xp" gorm:"default:0"`
	Level  int `json:"level" gorm:"default:1"`
	Streak int `json:"streak" gorm:"default:0"`

	LastActivityAt *time.Time `json:"last_activity_at"`
	LastLoginAt    *time.Time `json:"last_login_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
