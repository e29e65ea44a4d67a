package admission

import "strings"

const (
	StatusProvisional    = "provisional"
	PaymentStatusUnpaid  = "unpaid"
	DefaultAdmissionType = "Regular"
)

type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// Identifiers are the optional identity documents an applicant may present.
// Any one of them, combined with the date of birth, identifies a duplicate.
type Identifiers struct {
	NIDNo              string
	PassportNo         string
	BirthCertificateNo string
}

func (i Identifiers) Any() bool {
	return i.NIDNo != "" || i.PassportNo != "" || i.BirthCertificateNo != ""
}

type Application struct {
	RefNo                 string
	FirstName             string
	MiddleName            string
	LastName              string
	FullName              string
	DateOfBirth           string
	Gender                string
	MobileNumber          string
	Email                 string
	Identifiers           Identifiers
	PermanentAddress      Address
	PresentAddress        Address
	ProgramCode           string
	CampusID              string
	SemesterID            string
	AdmissionType         string
	PreviousUniversity    string
	CreditsEarned         float64
	Notes                 string
	Status                string
	PaymentStatus         string
	AdmissionTestRequired bool
	IdentifierLocked      bool
	CreatedBy             string
}

type NewApplicationParams struct {
	RefNo              string
	FirstName          string
	MiddleName         string
	LastName           string
	DateOfBirth        string
	Gender             string
	MobileNumber       string
	Email              string
	NIDNo              string
	PassportNo         string
	BirthCertificateNo string
	PermanentAddress   *Address
	PresentAddress     *Address
	ProgramCode        string
	CampusID           string
	SemesterID         string
	AdmissionType      string
	PreviousUniversity string
	CreditsEarned      float64
	Notes              string
	CreatedBy          string
}

// NewApplication validates the required fields and normalizes the rest into a
// record that still needs staff review: provisional status, unpaid, no test
// requirement, identifiers unlocked.
func NewApplication(p NewApplicationParams) (Application, error) {
	missing := missingRequiredFields(p)
	if len(missing) > 0 {
		return Application{}, &ValidationError{Missing: missing}
	}

	admissionType := strings.TrimSpace(p.AdmissionType)
	if admissionType == "" {
		admissionType = DefaultAdmissionType
	}

	permanent := Address{}
	if p.PermanentAddress != nil {
		permanent = *p.PermanentAddress
	}
	present := Address{}
	if p.PresentAddress != nil {
		present = *p.PresentAddress
	}

	return Application{
		RefNo:        strings.TrimSpace(p.RefNo),
		FirstName:    strings.TrimSpace(p.FirstName),
		MiddleName:   strings.TrimSpace(p.MiddleName),
		LastName:     strings.TrimSpace(p.LastName),
		FullName:     composeFullName(p.FirstName, p.MiddleName, p.LastName),
		DateOfBirth:  strings.TrimSpace(p.DateOfBirth),
		Gender:       strings.TrimSpace(p.Gender),
		MobileNumber: strings.TrimSpace(p.MobileNumber),
		Email:        strings.TrimSpace(p.Email),
		Identifiers: Identifiers{
			NIDNo:              strings.TrimSpace(p.NIDNo),
			PassportNo:         strings.TrimSpace(p.PassportNo),
			BirthCertificateNo: strings.TrimSpace(p.BirthCertificateNo),
		},
		PermanentAddress:      permanent,
		PresentAddress:        present,
		ProgramCode:           strings.TrimSpace(p.ProgramCode),
		CampusID:              strings.TrimSpace(p.CampusID),
		SemesterID:            strings.TrimSpace(p.SemesterID),
		AdmissionType:         admissionType,
		PreviousUniversity:    strings.TrimSpace(p.PreviousUniversity),
		CreditsEarned:         p.CreditsEarned,
		Notes:                 p.Notes,
		Status:                StatusProvisional,
		PaymentStatus:         PaymentStatusUnpaid,
		AdmissionTestRequired: false,
		IdentifierLocked:      false,
		CreatedBy:             p.CreatedBy,
	}, nil
}

func missingRequiredFields(p NewApplicationParams) []string {
	var missing []string
	if strings.TrimSpace(p.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(p.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if strings.TrimSpace(p.DateOfBirth) == "" {
		missing = append(missing, "dob")
	}
	if strings.TrimSpace(p.ProgramCode) == "" {
		missing = append(missing, "program_code")
	}
	if strings.TrimSpace(p.SemesterID) == "" {
		missing = append(missing, "semester_id")
	}
	return missing
}

func composeFullName(parts ...string) string {
	trimmed := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			trimmed = append(trimmed, part)
		}
	}
	return strings.Join(trimmed, " ")
}
