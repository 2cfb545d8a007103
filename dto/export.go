package dto

import "time"

type ExportRequest struct {
	ModuleName string `json:"module_name" validate:"required,min=1,max=60" example:"macro"`
	ExportType string `json:"export_type" validate:"required,oneof=PDF PNG" example:"PDF"`
}

func (e ExportRequest) Validate() error {
	return GetValidator().Struct(e)
}

// ExportGateRequest tags who is asking for the export.
type ExportGateRequest struct {
	UserID     string `json:"-"` // empty means anonymous
	ModuleName string `json:"module_name"`
	ExportType string `json:"export_type"`
}

func (e ExportGateRequest) Anonymous() bool {
	return e.UserID == ""
}

type ExportResponse struct {
	ExportID         string `json:"export_id"`
	Anonymous        bool   `json:"anonymous"`
	RemainingCredits int    `json:"remaining_credits,omitempty"`
	ExportCount      int    `json:"export_count,omitempty"`
}

type ExportLogEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	ExportType string    `json:"export_type"`
	ModuleName string    `json:"module_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type ExportHistoryResponse struct {
	Exports []ExportLogEntry `json:"exports"`
	Total   int              `json:"total"`
}

type ArtifactUploadResponse struct {
	ExportID    string `json:"export_id"`
	ArtifactKey string `json:"artifact_key"`
	Size        int64  `json:"size"`
}

type ArtifactURLResponse struct {
	ExportID string `json:"export_id"`
	URL      string `json:"url"`
	ExpireIn int64  `json:"expire_in"`
}
