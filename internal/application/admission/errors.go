package admission

import "errors"

var (
	ErrCreateImportJob   = errors.New("failed to create import job")
	ErrCompleteImportJob = errors.New("failed to finalize import job")
	ErrListImportJobs    = errors.New("failed to list import jobs")
	ErrListJobErrors     = errors.New("failed to list import job errors")
	ErrInvalidJobID      = errors.New("invalid import job id")
	ErrJobNotFound       = errors.New("import job not found")

	ErrUnsupportedFileType = errors.New("unsupported row file type")
	ErrUnreadableFile      = errors.New("unreadable row file")
	ErrEmptyFile           = errors.New("row file has no data")
	ErrMissingHeader       = errors.New("row file is missing a header row")
)
