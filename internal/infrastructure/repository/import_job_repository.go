package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/campuscore/admissions/internal/domain/admission"
	"github.com/campuscore/admissions/internal/infrastructure/db/models"
)

type ImportJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

func (r *ImportJobRepository) Create(ctx context.Context, job domain.ImportJob) (string, error) {
	row := models.ImportJob{
		ID:             uuid.NewString(),
		FileName:       nullableText(job.FileName),
		IdempotencyKey: nullableText(job.IdempotencyKey),
		Status:         job.Status,
		TotalRows:      job.TotalRows,
		SuccessRows:    job.SuccessRows,
		FailedRows:     job.FailedRows,
		CreatedBy:      job.CreatedBy,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", domain.ErrIdempotencyKeyConflict
		}
		return "", fmt.Errorf("create import job: %w", err)
	}

	return row.ID, nil
}

func (r *ImportJobRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.ImportJob, error) {
	var row models.ImportJob

	err := r.db.WithContext(ctx).First(&row, "idempotency_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find import job by idempotency key: %w", err)
	}

	return toDomainJob(row), nil
}

func (r *ImportJobRepository) FindByID(ctx context.Context, jobID string) (*domain.ImportJob, error) {
	var row models.ImportJob

	err := r.db.WithContext(ctx).First(&row, "id = ?", jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find import job: %w", err)
	}

	return toDomainJob(row), nil
}

func (r *ImportJobRepository) RecordRowError(ctx context.Context, rowErr domain.ImportRowError) error {
	row := models.ImportJobError{
		ImportJobID:  rowErr.ImportJobID,
		RowNumber:    rowErr.RowNumber,
		ColumnName:   nullableText(rowErr.ColumnName),
		ErrorCode:    rowErr.ErrorCode,
		ErrorMessage: rowErr.ErrorMessage,
		RawRowJSON:   rowErr.RawRowJSON,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record import row error: %w", err)
	}
	return nil
}

// Complete finalizes a processing job exactly once; a second call finds no
// matching row and reports the job as missing.
func (r *ImportJobRepository) Complete(ctx context.Context, jobID string, successRows, failedRows int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("id = ? AND status = ?", jobID, domain.JobStatusProcessing).
		Updates(map[string]any{
			"status":       domain.JobStatusCompleted,
			"success_rows": successRows,
			"failed_rows":  failedRows,
		})
	if result.Error != nil {
		return fmt.Errorf("complete import job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *ImportJobRepository) List(ctx context.Context, offset, limit int) ([]domain.ImportJob, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ImportJob{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count import jobs: %w", err)
	}

	var rows []models.ImportJob
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list import jobs: %w", err)
	}

	jobs := make([]domain.ImportJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, *toDomainJob(row))
	}
	return jobs, total, nil
}

func (r *ImportJobRepository) ListErrors(ctx context.Context, jobID string) ([]domain.ImportRowError, error) {
	var rows []models.ImportJobError

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows, "import_job_id = ?", jobID).Error
	if err != nil {
		return nil, fmt.Errorf("list import job errors: %w", err)
	}

	rowErrors := make([]domain.ImportRowError, 0, len(rows))
	for _, row := range rows {
		rowErrors = append(rowErrors, domain.ImportRowError{
			ID:           row.ID,
			ImportJobID:  row.ImportJobID,
			RowNumber:    row.RowNumber,
			ColumnName:   textValue(row.ColumnName),
			ErrorCode:    row.ErrorCode,
			ErrorMessage: row.ErrorMessage,
			RawRowJSON:   row.RawRowJSON,
			CreatedAt:    row.CreatedAt,
		})
	}
	return rowErrors, nil
}

func toDomainJob(row models.ImportJob) *domain.ImportJob {
	return &domain.ImportJob{
		ID:             row.ID,
		FileName:       textValue(row.FileName),
		IdempotencyKey: textValue(row.IdempotencyKey),
		Status:         row.Status,
		TotalRows:      row.TotalRows,
		SuccessRows:    row.SuccessRows,
		FailedRows:     row.FailedRows,
		CreatedBy:      row.CreatedBy,
		CreatedAt:      row.CreatedAt,
	}
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func textValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
