package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/shared"
)

type ExportHandler struct {
	exportSvc ExportServiceInterface
}

func NewExportHandler(exportSvc ExportServiceInterface) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// @Summary Request an export
// @Description Authorize a report export. Authenticated requests consume one credit; anonymous requests are logged without metering
// @Tags exports
// @Accept json
// @Produce json
// @Param Authorization header string false "User Bearer Token" default(Bearer <user_token>)
// @Param exportRequest body dto.ExportRequest true "Export request"
// @Success 200 {object} shared.Response{data=dto.ExportResponse}
// @Failure 402 {object} shared.Response
// @Router /api/v1/export [post]
func (h *ExportHandler) RequestExport(c *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}
	if !shared.IsValidModuleType(req.ModuleName) {
		return shared.NewBadRequestError(nil, "Unknown module")
	}

	gateReq := dto.ExportGateRequest{
		ModuleName: req.ModuleName,
		ExportType: req.ExportType,
	}
	if userID, ok := c.Locals(shared.UserID).(string); ok {
		gateReq.UserID = userID
	}

	resp, err := h.exportSvc.RequestExport(gateReq)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Export approved", resp)
}

// @Summary Upload export artifact
// @Description Attach the rendered report file to an approved export
// @Tags exports
// @Accept octet-stream
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param exportId path string true "Export ID"
// @Success 200 {object} shared.Response{data=dto.ArtifactUploadResponse}
// @Router /api/v1/export/{exportId}/artifact [post]
func (h *ExportHandler) StoreArtifact(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	exportID := c.Params("exportId")

	data := c.Body()
	if len(data) == 0 {
		return shared.NewBadRequestError(nil, "Empty artifact body")
	}

	contentType := c.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.exportSvc.StoreArtifact(userID, exportID, data, contentType)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Artifact stored", resp)
}

// @Summary Get artifact download URL
// @Description Presigned, time-limited download link for a stored report
// @Tags exports
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param exportId path string true "Export ID"
// @Success 200 {object} shared.Response{data=dto.ArtifactURLResponse}
// @Router /api/v1/export/{exportId}/artifact [get]
func (h *ExportHandler) GetArtifactURL(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	exportID := c.Params("exportId")

	resp, err := h.exportSvc.GetArtifactURL(userID, exportID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Export history
// @Description Export log entries of the authenticated account, newest first
// @Tags exports
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ExportHistoryResponse}
// @Router /api/v1/export/history [get]
func (h *ExportHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.exportSvc.GetHistory(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
