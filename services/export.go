package services

import (
	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/shared"
)

// ExportService is the authorization + metering checkpoint in front of
// report generation. The metered and anonymous paths are distinct variants
// of one request type and never merge: only the authenticated variant
// touches the credit ledger.
type ExportService struct {
	context.DefaultService

	sqlSvc     *PostgresService
	storageSvc *StorageService
}

const EXPORT_SVC = "export_svc"

func (svc ExportService) Id() string {
	return EXPORT_SVC
}

func (svc *ExportService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ExportService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.storageSvc = svc.Service(STORAGE_SVC).(*StorageService)
	return nil
}

// RequestExport approves or rejects one export action. On the metered path
// the credit decrement, export-counter increment and audit log row are one
// transaction; a rejection leaves all state untouched. The caller performs
// the actual rendering only after approval.
func (svc *ExportService) RequestExport(req dto.ExportGateRequest) (*dto.ExportResponse, error) {
	if req.Anonymous() {
		entry, err := svc.sqlSvc.AnonymousExport(req.ModuleName, req.ExportType)
		if err != nil {
			exportsTotal.WithLabelValues(req.ExportType, "error").Inc()
			return nil, err
		}

		exportsTotal.WithLabelValues(req.ExportType, "anonymous").Inc()
		log.WithFields(log.Fields{
			"export_id": entry.ID,
			"module":    req.ModuleName,
			"type":      req.ExportType,
		}).Info("Anonymous export logged")

		return &dto.ExportResponse{
			ExportID:  entry.ID,
			Anonymous: true,
		}, nil
	}

	entry, account, err := svc.sqlSvc.MeteredExport(req.UserID, req.ModuleName, req.ExportType)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 402 {
			exportsTotal.WithLabelValues(req.ExportType, "insufficient_credit").Inc()
		} else {
			exportsTotal.WithLabelValues(req.ExportType, "error").Inc()
		}
		return nil, err
	}

	exportsTotal.WithLabelValues(req.ExportType, "success").Inc()
	creditsConsumedTotal.Inc()

	log.WithFields(log.Fields{
		"export_id": entry.ID,
		"user_id":   req.UserID,
		"module":    req.ModuleName,
		"type":      req.ExportType,
		"remaining": account.Credits,
	}).Info("Metered export approved")

	return &dto.ExportResponse{
		ExportID:         entry.ID,
		Anonymous:        false,
		RemainingCredits: account.Credits,
		ExportCount:      account.ExportCount,
	}, nil
}

// ==================== ARTIFACTS ====================

// StoreArtifact uploads the rendered report for an approved export. The
// export log row must belong to the caller.
func (svc *ExportService) StoreArtifact(userID, exportID string, data []byte, contentType string) (*dto.ArtifactUploadResponse, error) {
	entry, err := svc.sqlSvc.GetExportLog(userID, exportID)
	if err != nil {
		return nil, err
	}

	key, err := svc.storageSvc.UploadReport(entry.ID, entry.ExportType, data, contentType)
	if err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.SetExportArtifactKey(entry.ID, key); err != nil {
		return nil, err
	}

	return &dto.ArtifactUploadResponse{
		ExportID:    entry.ID,
		ArtifactKey: key,
		Size:        int64(len(data)),
	}, nil
}

func (svc *ExportService) GetArtifactURL(userID, exportID string) (*dto.ArtifactURLResponse, error) {
	entry, err := svc.sqlSvc.GetExportLog(userID, exportID)
	if err != nil {
		return nil, err
	}
	if entry.ArtifactKey == "" {
		return nil, shared.NewNotFoundError("No artifact uploaded for this export")
	}

	url, expireIn, err := svc.storageSvc.PresignedReportURL(entry.ArtifactKey)
	if err != nil {
		return nil, err
	}

	return &dto.ArtifactURLResponse{
		ExportID: entry.ID,
		URL:      url,
		ExpireIn: expireIn,
	}, nil
}

func (svc *ExportService) GetHistory(userID string) (*dto.ExportHistoryResponse, error) {
	entries, err := svc.sqlSvc.ListExportLogs(userID)
	if err != nil {
		return nil, err
	}

	exports := make([]dto.ExportLogEntry, len(entries))
	for i, e := range entries {
		exports[i] = dto.ExportLogEntry{
			ID:         e.ID,
			ExportType: e.ExportType,
			ModuleName: e.ModuleName,
			CreatedAt:  e.CreatedAt,
		}
		if e.UserID != nil {
			exports[i].UserID = *e.UserID
		}
	}

	return &dto.ExportHistoryResponse{Exports: exports, Total: len(exports)}, nil
}
