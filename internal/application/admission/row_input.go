package admission

import (
	domain "github.com/campuscore/admissions/internal/domain/admission"
)

type AddressInput struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// RowInput is one raw applicant row as submitted by the client.
type RowInput struct {
	FirstName          string        `json:"first_name"`
	MiddleName         string        `json:"middle_name,omitempty"`
	LastName           string        `json:"last_name"`
	DOB                string        `json:"dob"`
	Gender             string        `json:"gender,omitempty"`
	MobileNumber       string        `json:"mobile_number,omitempty"`
	Email              string        `json:"email,omitempty"`
	NIDNo              string        `json:"nid_no,omitempty"`
	PassportNo         string        `json:"passport_no,omitempty"`
	BirthCertificateNo string        `json:"birth_certificate_no,omitempty"`
	PermanentAddress   *AddressInput `json:"permanent_address,omitempty"`
	PresentAddress     *AddressInput `json:"present_address,omitempty"`
	AdmissionType      string        `json:"admission_type,omitempty"`
	PreviousUniversity string        `json:"previous_university,omitempty"`
	CreditsEarned      float64       `json:"credits_earned,omitempty"`
	ProgramCode        string        `json:"program_code"`
	CampusID           string        `json:"campus_id,omitempty"`
	SemesterID         string        `json:"semester_id"`
	Notes              string        `json:"notes,omitempty"`
	RefNo              string        `json:"ref_no,omitempty"`
}

func (r RowInput) toDomain(createdBy string) (domain.Application, error) {
	return domain.NewApplication(domain.NewApplicationParams{
		RefNo:              r.RefNo,
		FirstName:          r.FirstName,
		MiddleName:         r.MiddleName,
		LastName:           r.LastName,
		DateOfBirth:        r.DOB,
		Gender:             r.Gender,
		MobileNumber:       r.MobileNumber,
		Email:              r.Email,
		NIDNo:              r.NIDNo,
		PassportNo:         r.PassportNo,
		BirthCertificateNo: r.BirthCertificateNo,
		PermanentAddress:   r.PermanentAddress.toDomain(),
		PresentAddress:     r.PresentAddress.toDomain(),
		ProgramCode:        r.ProgramCode,
		CampusID:           r.CampusID,
		SemesterID:         r.SemesterID,
		AdmissionType:      r.AdmissionType,
		PreviousUniversity: r.PreviousUniversity,
		CreditsEarned:      r.CreditsEarned,
		Notes:              r.Notes,
		CreatedBy:          createdBy,
	})
}

func (a *AddressInput) toDomain() *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}
