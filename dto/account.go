package dto

import "time"

type BalanceResponse struct {
	Credits     int    `json:"credits" example:"9"`
	ExportCount int    `json:"export_count" example:"1"`
	Plan        string `json:"plan" example:"free"`
}

type UpgradePlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=basic pro premium" example:"pro"`
}

func (u UpgradePlanRequest) Validate() error {
	return GetValidator().Struct(u)
}

type UpgradePlanResponse struct {
	Plan           string `json:"plan" example:"pro"`
	CreditsGranted int    `json:"credits_granted" example:"100"`
	Credits        int    `json:"credits" example:"109"`
}

type ProgressResponse struct {
	UserID        string          `json:"user_id"`
	XP            int             `json:"xp"`
	Level         int             `json:"level"`
	XPToNextLevel int             `json:"xp_to_next_level"`
	Streak        int             `json:"streak"`
	Badges        []BadgeResponse `json:"badges"`
}

type BadgeResponse struct {
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IconURL     string     `json:"icon_url"`
	AwardedAt   *time.Time `json:"awarded_at,omitempty"`
}

// ==================== ADMIN DTOs ====================

type AdminGrantCreditsRequest struct {
	Credits int `json:"credits" validate:"required,gt=0,lte=10000" example:"50"`
}

func (a AdminGrantCreditsRequest) Validate() error {
	return GetValidator().Struct(a)
}

type AdminAccountInfo struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Plan        string    `json:"plan"`
	Credits     int       `json:"credits"`
	ExportCount int       `json:"export_count"`
	XP          int       `json:"xp"`
	CreatedAt   time.Time `json:"created_at"`
}

type AdminAccountListResponse struct {
	Accounts []AdminAccountInfo `json:"accounts"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}
