package admission

import "time"

const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
)

const (
	CodeMissingRequiredFields = "MISSING_REQUIRED_FIELDS"
	CodeDuplicateIdentifier   = "DUPLICATE_IDENTIFIER"
	CodeImportFailed          = "IMPORT_FAILED"
)

type ImportJob struct {
	ID             string
	FileName       string
	IdempotencyKey string
	Status         string
	TotalRows      int
	SuccessRows    int
	FailedRows     int
	CreatedBy      string
	CreatedAt      time.Time
}

type ImportRowError struct {
	ID           int64
	ImportJobID  string
	RowNumber    int
	ColumnName   string
	ErrorCode    string
	ErrorMessage string
	RawRowJSON   string
	CreatedAt    time.Time
}

// DuplicateCandidate is the single existing application inspected by the
// duplicate check. Only its date of birth decides the outcome.
type DuplicateCandidate struct {
	ApplicationID int64
	DateOfBirth   string
}
