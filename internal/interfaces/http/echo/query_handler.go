package echo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	app "github.com/campuscore/admissions/internal/application/admission"
)

type QueryHandler struct {
	listJobs  app.ListImportJobs
	jobErrors app.GetImportJobErrors
}

func NewQueryHandler(listJobs app.ListImportJobs, jobErrors app.GetImportJobErrors) *QueryHandler {
	return &QueryHandler{listJobs: listJobs, jobErrors: jobErrors}
}

func (h *QueryHandler) ListImportJobs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.listJobs.Execute(c.Request().Context(), app.ListImportJobsInput{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		c.Logger().Errorf("list import jobs failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, apiResponse{Success: true, Data: out})
}

func (h *QueryHandler) ListImportJobErrors(c echo.Context) error {
	out, err := h.jobErrors.Execute(c.Request().Context(), app.GetImportJobErrorsInput{
		JobID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidJobID) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_job_id",
				Message: "id must be a valid UUID",
			}})
		}
		if errors.Is(err, app.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "import job not found",
			}})
		}

		c.Logger().Errorf("list import job errors failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, apiResponse{Success: true, Data: out.Errors})
}
