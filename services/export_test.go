package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/model"
	"github.com/econosfera/econ_api/shared"
)

func newExportService(t *testing.T) (*ExportService, *PostgresService) {
	t.Helper()
	ds := newTestDB(t)
	return &ExportService{sqlSvc: ds}, ds
}

func TestRequestExportMetered(t *testing.T) {
	svc, ds := newExportService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")

	resp, err := svc.RequestExport(dto.ExportGateRequest{
		UserID:     account.ID,
		ModuleName: shared.ModuleMacro,
		ExportType: shared.ExportTypePDF,
	})
	require.NoError(t, err)

	assert.False(t, resp.Anonymous)
	assert.NotEmpty(t, resp.ExportID)
	assert.Equal(t, shared.InitialCredits-1, resp.RemainingCredits)
	assert.Equal(t, 1, resp.ExportCount)
}

func TestRequestExportAnonymous(t *testing.T) {
	svc, ds := newExportService(t)

	resp, err := svc.RequestExport(dto.ExportGateRequest{
		ModuleName: shared.ModuleSeguros,
		ExportType: shared.ExportTypePNG,
	})
	require.NoError(t, err)

	assert.True(t, resp.Anonymous)
	assert.NotEmpty(t, resp.ExportID)
	assert.Zero(t, resp.RemainingCredits)

	var entry model.ExportLog
	require.NoError(t, ds.db.Where("id = ?", resp.ExportID).First(&entry).Error)
	assert.Nil(t, entry.UserID)
}

func TestRequestExportInsufficientCredit(t *testing.T) {
	svc, ds := newExportService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")
	setCredits(t, ds, account.ID, 0)

	_, err := svc.RequestExport(dto.ExportGateRequest{
		UserID:     account.ID,
		ModuleName: shared.ModuleMacro,
		ExportType: shared.ExportTypePDF,
	})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 402, appErr.StatusCode)
}

func TestGetHistoryScopedToOwner(t *testing.T) {
	svc, ds := newExportService(t)
	alice := createTestAccount(t, ds, "alice@test.com", "alice")
	bob := createTestAccount(t, ds, "bob@test.com", "bob")

	for i := 0; i < 3; i++ {
		_, err := svc.RequestExport(dto.ExportGateRequest{
			UserID:     alice.ID,
			ModuleName: shared.ModuleMacro,
			ExportType: shared.ExportTypePDF,
		})
		require.NoError(t, err)
	}
	// An anonymous export must never appear in anyone's history.
	_, err := svc.RequestExport(dto.ExportGateRequest{
		ModuleName: shared.ModuleMacro,
		ExportType: shared.ExportTypePNG,
	})
	require.NoError(t, err)

	history, err := svc.GetHistory(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, history.Total)
	for _, e := range history.Exports {
		assert.Equal(t, alice.ID, e.UserID)
	}

	history, err = svc.GetHistory(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, history.Total)
}

func TestGetArtifactURLRequiresUploadedArtifact(t *testing.T) {
	svc, ds := newExportService(t)
	account := createTestAccount(t, ds, "user@test.com", "user1")

	resp, err := svc.RequestExport(dto.ExportGateRequest{
		UserID:     account.ID,
		ModuleName: shared.ModuleCripto,
		ExportType: shared.ExportTypePDF,
	})
	require.NoError(t, err)

	_, err = svc.GetArtifactURL(account.ID, resp.ExportID)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}
