package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financehouse/internal/errors"
	"financehouse/internal/services"
)

// maxUploadBytes caps spreadsheet uploads at 5 MiB.
const maxUploadBytes = 5 << 20

// ImportHandler handles spreadsheet import requests.
type ImportHandler struct {
	importService services.ImportServicer
	auditService  services.AuditServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer, auditService services.AuditServicer) *ImportHandler {
	return &ImportHandler{importService: importService, auditService: auditService}
}

// ImportSpreadsheet handles a multipart spreadsheet upload. The upload field
// is named "file"; the optional "skip_flagged" form value excludes rows
// flagged as duplicates instead of importing them.
func (h *ImportHandler) ImportSpreadsheet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file exceeds the 5 MiB upload limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	if len(data) > maxUploadBytes {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file exceeds the 5 MiB upload limit"))
		return
	}

	opts := services.ImportOptions{
		SkipFlagged: c.PostForm("skip_flagged") == "true",
	}

	result, err := h.importService.ImportSpreadsheet(
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
		opts,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "IMPORT_SPREADSHEET", "import", "", c.ClientIP(),
		map[string]interface{}{
			"filename":  fileHeader.Filename,
			"total":     result.TotalRows,
			"succeeded": result.Succeeded,
			"failed":    result.Failed,
			"skipped":   result.Skipped,
		})

	c.JSON(http.StatusOK, result)
}
