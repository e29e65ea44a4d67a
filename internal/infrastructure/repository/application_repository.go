package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/campuscore/admissions/internal/domain/admission"
)

const uniqueViolationCode = "23505"

const insertApplicationSQL = `
INSERT INTO applications (
  ref_no, first_name, middle_name, last_name, full_name, date_of_birth,
  gender, mobile_number, email, nid_no, passport_no, birth_certificate_no,
  permanent_address, present_address, program_code, campus_id, semester_id,
  admission_type, previous_university, credits_earned, notes, status,
  payment_status, admission_test_required, identifier_locked, created_by,
  created_at, updated_at
) VALUES (
  $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
  $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, NOW(), NOW()
)`

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

// FindByIdentifiers returns the first application matching any of the provided
// identity documents, or nil when none are provided or nothing matches.
func (r *ApplicationRepository) FindByIdentifiers(ctx context.Context, ids domain.Identifiers) (*domain.DuplicateCandidate, error) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("nid_no", ids.NIDNo)
	add("passport_no", ids.PassportNo)
	add("birth_certificate_no", ids.BirthCertificateNo)
	if len(conds) == 0 {
		return nil, nil
	}

	query := "SELECT id, date_of_birth FROM applications WHERE " +
		strings.Join(conds, " OR ") + " ORDER BY id LIMIT 1"

	var candidate domain.DuplicateCandidate
	err := r.pool.QueryRow(ctx, query, args...).Scan(&candidate.ApplicationID, &candidate.DateOfBirth)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find application by identifiers: %w", err)
	}
	return &candidate, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, record domain.Application) error {
	permanent, err := json.Marshal(addressDocFrom(record.PermanentAddress))
	if err != nil {
		return fmt.Errorf("encode permanent address: %w", err)
	}
	present, err := json.Marshal(addressDocFrom(record.PresentAddress))
	if err != nil {
		return fmt.Errorf("encode present address: %w", err)
	}

	_, err = r.pool.Exec(ctx, insertApplicationSQL,
		record.RefNo,
		record.FirstName,
		record.MiddleName,
		record.LastName,
		record.FullName,
		record.DateOfBirth,
		record.Gender,
		record.MobileNumber,
		record.Email,
		nullableText(record.Identifiers.NIDNo),
		nullableText(record.Identifiers.PassportNo),
		nullableText(record.Identifiers.BirthCertificateNo),
		permanent,
		present,
		record.ProgramCode,
		record.CampusID,
		record.SemesterID,
		record.AdmissionType,
		record.PreviousUniversity,
		record.CreditsEarned,
		record.Notes,
		record.Status,
		record.PaymentStatus,
		record.AdmissionTestRequired,
		record.IdentifierLocked,
		record.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			if strings.Contains(pgErr.ConstraintName, "ref_no") {
				return domain.ErrRefNoTaken
			}
			return fmt.Errorf("%w: %s", domain.ErrDuplicateIdentifier, pgErr.ConstraintName)
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

type addressDoc struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

func addressDocFrom(address domain.Address) addressDoc {
	return addressDoc{
		Street:  address.Street,
		City:    address.City,
		State:   address.State,
		ZipCode: address.ZipCode,
		Country: address.Country,
	}
}
