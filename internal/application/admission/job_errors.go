package admission

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/campuscore/admissions/internal/domain/admission"
)

type GetImportJobErrorsInput struct {
	JobID string
}

type ImportRowErrorOutput struct {
	ID           int64           `json:"id"`
	ImportJobID  string          `json:"import_job_id"`
	RowNumber    int             `json:"row_number"`
	ColumnName   string          `json:"column_name,omitempty"`
	ErrorCode    string          `json:"error_code"`
	ErrorMessage string          `json:"error_message"`
	RawRow       json.RawMessage `json:"raw_row_json"`
}

type GetImportJobErrorsOutput struct {
	Errors []ImportRowErrorOutput
}

type GetImportJobErrors interface {
	Execute(ctx context.Context, in GetImportJobErrorsInput) (GetImportJobErrorsOutput, error)
}

type jobErrorLister interface {
	FindByID(ctx context.Context, jobID string) (*domain.ImportJob, error)
	ListErrors(ctx context.Context, jobID string) ([]domain.ImportRowError, error)
}

type getImportJobErrors struct {
	repo jobErrorLister
}

func NewGetImportJobErrors(repo jobErrorLister) GetImportJobErrors {
	return &getImportJobErrors{repo: repo}
}

func (uc *getImportJobErrors) Execute(ctx context.Context, in GetImportJobErrorsInput) (GetImportJobErrorsOutput, error) {
	if uuid.Validate(in.JobID) != nil {
		return GetImportJobErrorsOutput{}, ErrInvalidJobID
	}

	job, err := uc.repo.FindByID(ctx, in.JobID)
	if err != nil {
		return GetImportJobErrorsOutput{}, fmt.Errorf("%w: %v", ErrListJobErrors, err)
	}
	if job == nil {
		return GetImportJobErrorsOutput{}, ErrJobNotFound
	}

	rowErrors, err := uc.repo.ListErrors(ctx, in.JobID)
	if err != nil {
		return GetImportJobErrorsOutput{}, fmt.Errorf("%w: %v", ErrListJobErrors, err)
	}

	out := make([]ImportRowErrorOutput, 0, len(rowErrors))
	for _, rowErr := range rowErrors {
		raw := json.RawMessage(rowErr.RawRowJSON)
		if !json.Valid(raw) {
			raw = json.RawMessage("{}")
		}
		out = append(out, ImportRowErrorOutput{
			ID:           rowErr.ID,
			ImportJobID:  rowErr.ImportJobID,
			RowNumber:    rowErr.RowNumber,
			ColumnName:   rowErr.ColumnName,
			ErrorCode:    rowErr.ErrorCode,
			ErrorMessage: rowErr.ErrorMessage,
			RawRow:       raw,
		})
	}

	return GetImportJobErrorsOutput{Errors: out}, nil
}
