package echo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/campuscore/admissions/internal/application/admission"
)

// maxBatchFileSize caps uploaded batch files at 5 MB.
const maxBatchFileSize = 5 << 20

// BatchArchive stores the raw uploaded batch file for later inspection.
type BatchArchive interface {
	UploadBatchFile(ctx context.Context, objectKey, contentType string, payload []byte) error
}

type ImportHandler struct {
	importUseCase app.ImportApplications
	archive       BatchArchive
}

type bulkImportRequest struct {
	Rows           []app.RowInput `json:"rows"`
	FileName       string         `json:"file_name"`
	IdempotencyKey string         `json:"idempotency_key"`
}

type bulkImportResponse struct {
	Success     bool   `json:"success"`
	ImportJobID string `json:"import_job_id"`
	Total       int    `json:"total"`
	SuccessRows int    `json:"success_rows"`
	FailedRows  int    `json:"failed_rows"`
}

type bulkImportReplayResponse struct {
	Success     bool   `json:"success"`
	ImportJobID string `json:"import_job_id"`
	Message     string `json:"message"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

func NewImportHandler(importUseCase app.ImportApplications, archive BatchArchive) *ImportHandler {
	return &ImportHandler{importUseCase: importUseCase, archive: archive}
}

func (h *ImportHandler) BulkImport(c echo.Context) error {
	var req bulkImportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.Request().Header.Get("Idempotency-Key")
	}

	out, err := h.importUseCase.Execute(c.Request().Context(), app.ImportApplicationsInput{
		Rows:           req.Rows,
		FileName:       req.FileName,
		IdempotencyKey: req.IdempotencyKey,
		CreatedBy:      userID(c),
	})
	if err != nil {
		c.Logger().Errorf("bulk import failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, importResponse(out))
}

func (h *ImportHandler) BulkImportFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "file field is required",
		}})
	}
	if fileHeader.Size > maxBatchFileSize {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "FILE_TOO_LARGE",
			Message: "file exceeds the 5MB limit",
		}})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "INVALID_FILE",
			Message: "file could not be read",
		}})
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxBatchFileSize+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "INVALID_FILE",
			Message: "file could not be read",
		}})
	}
	if len(payload) > maxBatchFileSize {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "FILE_TOO_LARGE",
			Message: "file exceeds the 5MB limit",
		}})
	}

	rows, err := app.ParseRowFile(fileHeader.Filename, bytes.NewReader(payload))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: fileErrorBody(err)})
	}

	out, err := h.importUseCase.Execute(c.Request().Context(), app.ImportApplicationsInput{
		Rows:           rows,
		FileName:       fileHeader.Filename,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
		CreatedBy:      userID(c),
	})
	if err != nil {
		c.Logger().Errorf("bulk file import failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if h.archive != nil && !out.Replayed {
		objectKey := fmt.Sprintf("imports/%s/%s", out.JobID, fileHeader.Filename)
		contentType := fileHeader.Header.Get(echo.HeaderContentType)
		if err := h.archive.UploadBatchFile(c.Request().Context(), objectKey, contentType, payload); err != nil {
			log.Printf("failed to archive batch file %s: %v", objectKey, err)
		}
	}

	return c.JSON(http.StatusOK, importResponse(out))
}

func importResponse(out app.ImportApplicationsOutput) any {
	if out.Replayed {
		return bulkImportReplayResponse{
			Success:     true,
			ImportJobID: out.JobID,
			Message:     "import already processed",
		}
	}
	return bulkImportResponse{
		Success:     true,
		ImportJobID: out.JobID,
		Total:       out.Total,
		SuccessRows: out.SuccessRows,
		FailedRows:  out.FailedRows,
	}
}

func fileErrorBody(err error) *errorBody {
	switch {
	case errors.Is(err, app.ErrUnsupportedFileType):
		return &errorBody{Code: "INVALID_FILE_TYPE", Message: "only .csv and .xlsx files are supported"}
	case errors.Is(err, app.ErrEmptyFile):
		return &errorBody{Code: "EMPTY_FILE", Message: "file contains no data rows"}
	case errors.Is(err, app.ErrMissingHeader):
		return &errorBody{Code: "INVALID_FILE", Message: "header row is missing required columns"}
	default:
		return &errorBody{Code: "INVALID_FILE", Message: "file could not be parsed"}
	}
}
