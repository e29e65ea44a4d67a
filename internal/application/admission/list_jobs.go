package admission

import (
	"context"
	"fmt"
	"time"

	domain "github.com/campuscore/admissions/internal/domain/admission"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListImportJobsInput struct {
	Page  int
	Limit int
}

type ImportJobSummary struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name,omitempty"`
	Status      string    `json:"status"`
	TotalRows   int       `json:"total_rows"`
	SuccessRows int       `json:"success_rows"`
	FailedRows  int       `json:"failed_rows"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListImportJobsOutput struct {
	Jobs  []ImportJobSummary `json:"jobs"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Total int64              `json:"total"`
}

type ListImportJobs interface {
	Execute(ctx context.Context, in ListImportJobsInput) (ListImportJobsOutput, error)
}

type importJobLister interface {
	List(ctx context.Context, offset, limit int) ([]domain.ImportJob, int64, error)
}

type listImportJobs struct {
	repo importJobLister
}

func NewListImportJobs(repo importJobLister) ListImportJobs {
	return &listImportJobs{repo: repo}
}

func (uc *listImportJobs) Execute(ctx context.Context, in ListImportJobsInput) (ListImportJobsOutput, error) {
	page := in.Page
	if page <= 0 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	jobs, total, err := uc.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return ListImportJobsOutput{}, fmt.Errorf("%w: %v", ErrListImportJobs, err)
	}

	summaries := make([]ImportJobSummary, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, ImportJobSummary{
			ID:          job.ID,
			FileName:    job.FileName,
			Status:      job.Status,
			TotalRows:   job.TotalRows,
			SuccessRows: job.SuccessRows,
			FailedRows:  job.FailedRows,
			CreatedBy:   job.CreatedBy,
			CreatedAt:   job.CreatedAt,
		})
	}

	return ListImportJobsOutput{
		Jobs:  summaries,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}
