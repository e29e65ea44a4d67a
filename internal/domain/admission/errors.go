package admission

import (
	"errors"
	"strings"
)

var (
	ErrRefNoTaken             = errors.New("reference number already taken")
	ErrDuplicateIdentifier    = errors.New("duplicate identifier")
	ErrIdempotencyKeyConflict = errors.New("idempotency key already used")
	ErrJobNotFound            = errors.New("import job not found")
)

// ValidationError reports which required row fields were absent.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
