package echo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	app "github.com/campuscore/admissions/internal/application/admission"
	httpecho "github.com/campuscore/admissions/internal/interfaces/http/echo"
)

func TestListImportJobsSuccess(t *testing.T) {
	t.Parallel()

	listUC := &fakeListUseCase{output: app.ListImportJobsOutput{
		Jobs: []app.ImportJobSummary{{
			ID:          "6b9f83a4-07c6-4a39-96b5-8cf96f0d35b3",
			FileName:    "spring.csv",
			Status:      "completed",
			TotalRows:   3,
			SuccessRows: 1,
			FailedRows:  2,
			CreatedBy:   "staff-1",
			CreatedAt:   time.Now(),
		}},
		Page:  1,
		Limit: 20,
		Total: 1,
	}}
	e := newTestServer(&fakeImportUseCase{}, listUC, &fakeErrorsUseCase{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/imports?page=1&limit=20", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerToken(t, httpecho.CapabilityEditApplications))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	if got["success"] != true {
		t.Fatalf("expected success=true, got %#v", got["success"])
	}
	data, ok := got["data"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload: %#v", got["data"])
	}
	if data["total"] != float64(1) || data["page"] != float64(1) || data["limit"] != float64(20) {
		t.Fatalf("unexpected paging: %#v", data)
	}
	jobs, ok := data["jobs"].([]any)
	if !ok || len(jobs) != 1 {
		t.Fatalf("unexpected jobs payload: %#v", data["jobs"])
	}
}

func TestListImportJobsInternalError(t *testing.T) {
	t.Parallel()

	e := newTestServer(&fakeImportUseCase{}, &fakeListUseCase{err: app.ErrListImportJobs}, &fakeErrorsUseCase{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/imports", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerToken(t, httpecho.CapabilityEditApplications))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestListImportJobsMissingToken(t *testing.T) {
	t.Parallel()

	e := newTestServer(&fakeImportUseCase{}, &fakeListUseCase{}, &fakeErrorsUseCase{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/imports", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListImportJobErrorsSuccess(t *testing.T) {
	t.Parallel()

	errorsUC := &fakeErrorsUseCase{output: app.GetImportJobErrorsOutput{
		Errors: []app.ImportRowErrorOutput{{
			ID:           1,
			ImportJobID:  "6b9f83a4-07c6-4a39-96b5-8cf96f0d35b3",
			RowNumber:    2,
			ColumnName:   "last_name",
			ErrorCode:    "MISSING_REQUIRED_FIELDS",
			ErrorMessage: "missing required fields: last_name",
			RawRow:       json.RawMessage(`{"first_name":"Rafi"}`),
		}},
	}}
	e := newTestServer(&fakeImportUseCase{}, &fakeListUseCase{}, errorsUC, nil)

	req := httptest.NewRequest(http.MethodGet, "/imports/6b9f83a4-07c6-4a39-96b5-8cf96f0d35b3/errors", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerToken(t, httpecho.CapabilityEditApplications))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	data, ok := got["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("unexpected data payload: %#v", got["data"])
	}
	entry, ok := data[0].(map[string]any)
	if !ok {
		t.Fatalf("unexpected entry: %#v", data[0])
	}
	if entry["error_code"] != "MISSING_REQUIRED_FIELDS" {
		t.Fatalf("unexpected error code: %#v", entry["error_code"])
	}
	raw, ok := entry["raw_row_json"].(map[string]any)
	if !ok || raw["first_name"] != "Rafi" {
		t.Fatalf("unexpected raw row: %#v", entry["raw_row_json"])
	}
}

func TestListImportJobErrorsEmptyListIsNotNull(t *testing.T) {
	t.Parallel()

	errorsUC := &fakeErrorsUseCase{output: app.GetImportJobErrorsOutput{Errors: []app.ImportRowErrorOutput{}}}
	e := newTestServer(&fakeImportUseCase{}, &fakeListUseCase{}, errorsUC, nil)

	req := httptest.NewRequest(http.MethodGet, "/imports/6b9f83a4-07c6-4a39-96b5-8cf96f0d35b3/errors", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerToken(t, httpecho.CapabilityEditApplications))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	if string(got["data"]) != "[]" {
		t.Fatalf("expected empty array, got %s", got["data"])
	}
}

func TestListImportJobErrorsInvalidID(t *testing.T) {
	t.Parallel()

	e := newTestServer(&fakeImportUseCase{}, &fakeListUseCase{}, &fakeErrorsUseCase{err: app.ErrInvalidJobID}, nil)

	req := httptest.NewRequest(http.MethodGet, "/imports/not-a-uuid/errors", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerToken(t, httpecho.CapabilityEditApplications))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListImportJobErrorsNotFound(t *testing.T) {
	t.Parallel()

	e := newTestServer(&fakeImportUseCase{}, &fakeListUseCase{}, &fakeErrorsUseCase{err: app.ErrJobNotFound}, nil)

	req := httptest.NewRequest(http.MethodGet, "/imports/6b9f83a4-07c6-4a39-96b5-8cf96f0d35b3/errors", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerToken(t, httpecho.CapabilityEditApplications))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
