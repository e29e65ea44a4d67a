package models

import "time"

type ImportJob struct {
	ID             string  `gorm:"type:uuid;primaryKey"`
	FileName       *string `gorm:"type:text"`
	IdempotencyKey *string `gorm:"type:text;uniqueIndex"`
	Status         string  `gorm:"type:text;not null"`
	TotalRows      int     `gorm:"not null;default:0"`
	SuccessRows    int     `gorm:"not null;default:0"`
	FailedRows     int     `gorm:"not null;default:0"`
	CreatedBy      string  `gorm:"type:text;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ImportJob) TableName() string {
	return "import_jobs"
}

type ImportJobError struct {
	ID           int64   `gorm:"primaryKey"`
	ImportJobID  string  `gorm:"type:uuid;index;not null"`
	RowNumber    int     `gorm:"not null"`
	ColumnName   *string `gorm:"type:text"`
	ErrorCode    string  `gorm:"type:text;not null"`
	ErrorMessage string  `gorm:"type:text;not null"`
	RawRowJSON   string  `gorm:"type:text;not null;column:raw_row_json"`
	CreatedAt    time.Time
}

func (ImportJobError) TableName() string {
	return "import_job_errors"
}
