package admission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/campuscore/admissions/internal/domain/admission"
)

type ImportApplicationsInput struct {
	Rows           []RowInput
	FileName       string
	IdempotencyKey string
	CreatedBy      string
}

type ImportApplicationsOutput struct {
	JobID       string
	Total       int
	SuccessRows int
	FailedRows  int
	Replayed    bool
}

type ImportApplications interface {
	Execute(ctx context.Context, in ImportApplicationsInput) (ImportApplicationsOutput, error)
}

type importJobStore interface {
	Create(ctx context.Context, job domain.ImportJob) (string, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.ImportJob, error)
	RecordRowError(ctx context.Context, rowErr domain.ImportRowError) error
	Complete(ctx context.Context, jobID string, successRows, failedRows int) error
}

type applicationStore interface {
	FindByIdentifiers(ctx context.Context, ids domain.Identifiers) (*domain.DuplicateCandidate, error)
	Create(ctx context.Context, app domain.Application) error
}

type importApplications struct {
	jobs         importJobStore
	applications applicationStore
}

func NewImportApplications(jobs importJobStore, applications applicationStore) ImportApplications {
	return &importApplications{jobs: jobs, applications: applications}
}

// Execute runs the whole batch: one job record up front, every row through the
// validate/dedup/insert pipeline, one finalization write. Row failures never
// abort the batch; only job bookkeeping failures surface to the caller.
func (uc *importApplications) Execute(ctx context.Context, in ImportApplicationsInput) (ImportApplicationsOutput, error) {
	key := strings.TrimSpace(in.IdempotencyKey)
	if key != "" {
		existing, err := uc.jobs.FindByIdempotencyKey(ctx, key)
		if err != nil {
			return ImportApplicationsOutput{}, fmt.Errorf("%w: %v", ErrCreateImportJob, err)
		}
		if existing != nil {
			return replayOutput(existing), nil
		}
	}

	jobID, err := uc.jobs.Create(ctx, domain.ImportJob{
		FileName:       in.FileName,
		IdempotencyKey: key,
		Status:         domain.JobStatusProcessing,
		TotalRows:      len(in.Rows),
		CreatedBy:      in.CreatedBy,
	})
	if err != nil {
		// A concurrent submission with the same key may have won the insert.
		if key != "" && errors.Is(err, domain.ErrIdempotencyKeyConflict) {
			existing, findErr := uc.jobs.FindByIdempotencyKey(ctx, key)
			if findErr == nil && existing != nil {
				return replayOutput(existing), nil
			}
		}
		return ImportApplicationsOutput{}, fmt.Errorf("%w: %v", ErrCreateImportJob, err)
	}

	success := 0
	for i, row := range in.Rows {
		if uc.importRow(ctx, jobID, i+1, row, in.CreatedBy) {
			success++
		}
	}
	failed := len(in.Rows) - success

	if err := uc.jobs.Complete(ctx, jobID, success, failed); err != nil {
		return ImportApplicationsOutput{}, fmt.Errorf("%w: %v", ErrCompleteImportJob, err)
	}

	return ImportApplicationsOutput{
		JobID:       jobID,
		Total:       len(in.Rows),
		SuccessRows: success,
		FailedRows:  failed,
	}, nil
}

// importRow writes exactly one of an application record or a row error.
func (uc *importApplications) importRow(ctx context.Context, jobID string, rowNumber int, row RowInput, createdBy string) bool {
	record, err := row.toDomain(createdBy)
	if err != nil {
		column := ""
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) && len(vErr.Missing) > 0 {
			column = vErr.Missing[0]
		}
		uc.recordRowError(ctx, jobID, rowNumber, row, column, domain.CodeMissingRequiredFields, err.Error())
		return false
	}

	if record.Identifiers.Any() {
		candidate, err := uc.applications.FindByIdentifiers(ctx, record.Identifiers)
		if err != nil {
			uc.recordRowError(ctx, jobID, rowNumber, row, "", domain.CodeImportFailed, err.Error())
			return false
		}
		if candidate != nil && candidate.DateOfBirth == record.DateOfBirth {
			uc.recordRowError(ctx, jobID, rowNumber, row, "", domain.CodeDuplicateIdentifier,
				"an application with the same identifier and date of birth already exists")
			return false
		}
	}

	generated := record.RefNo == ""
	if generated {
		record.RefNo = domain.NewRefNo(time.Now())
	}

	err = uc.applications.Create(ctx, record)
	if generated && errors.Is(err, domain.ErrRefNoTaken) {
		record.RefNo = domain.NewRefNo(time.Now())
		err = uc.applications.Create(ctx, record)
	}
	if err != nil {
		code := domain.CodeImportFailed
		if errors.Is(err, domain.ErrDuplicateIdentifier) {
			code = domain.CodeDuplicateIdentifier
		}
		uc.recordRowError(ctx, jobID, rowNumber, row, "", code, err.Error())
		return false
	}

	return true
}

func (uc *importApplications) recordRowError(ctx context.Context, jobID string, rowNumber int, row RowInput, column, code, message string) {
	raw, err := json.Marshal(row)
	if err != nil {
		raw = []byte("{}")
	}

	rowErr := domain.ImportRowError{
		ImportJobID:  jobID,
		RowNumber:    rowNumber,
		ColumnName:   column,
		ErrorCode:    code,
		ErrorMessage: message,
		RawRowJSON:   string(raw),
	}
	if err := uc.jobs.RecordRowError(ctx, rowErr); err != nil {
		log.Printf("record row error for job %s row %d failed: %v", jobID, rowNumber, err)
	}
}

func replayOutput(job *domain.ImportJob) ImportApplicationsOutput {
	return ImportApplicationsOutput{
		JobID:       job.ID,
		Total:       job.TotalRows,
		SuccessRows: job.SuccessRows,
		FailedRows:  job.FailedRows,
		Replayed:    true,
	}
}
