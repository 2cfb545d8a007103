package model

import "time"

// ExportLog is an append-only audit record of one export event. UserID is
// NULL for the anonymous path, which bypasses the credit check entirely.
type ExportLog struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      *string   `json:"user_id" gorm:"index"`
	ExportType  string    `json:"export_type" gorm:"not null"` // PDF or PNG
	ModuleName  string    `json:"module_name" gorm:"not null"`
	ArtifactKey string    `json:"artifact_key"` // object-store key once the rendered file is uploaded
	CreatedAt   time.Time `json:"created_at"`
}
