package admission

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseRowFile turns an uploaded CSV or XLSX file into raw rows. The first
// line must be a header naming the columns; unknown columns are ignored and
// missing ones leave their fields empty for the validator to flag.
func ParseRowFile(fileName string, r io.Reader) ([]RowInput, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return parseCSVRows(r)
	case ".xlsx":
		return parseXLSXRows(r)
	default:
		return nil, ErrUnsupportedFileType
	}
}

func parseCSVRows(r io.Reader) ([]RowInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	return rowsFromRecords(records)
}

func parseXLSXRows(r io.Reader) ([]RowInput, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	return rowsFromRecords(records)
}

func rowsFromRecords(records [][]string) ([]RowInput, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["first_name"]; !ok {
		return nil, ErrMissingHeader
	}
	if len(records) == 1 {
		return nil, ErrEmptyFile
	}

	rows := make([]RowInput, 0, len(records)-1)
	for n, record := range records[1:] {
		cell := func(column string) string {
			i, ok := columns[column]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		credits := 0.0
		if raw := cell("credits_earned"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: invalid credits_earned %q", ErrUnreadableFile, n+2, raw)
			}
			credits = parsed
		}

		rows = append(rows, RowInput{
			FirstName:          cell("first_name"),
			MiddleName:         cell("middle_name"),
			LastName:           cell("last_name"),
			DOB:                cell("dob"),
			Gender:             cell("gender"),
			MobileNumber:       cell("mobile_number"),
			Email:              cell("email"),
			NIDNo:              cell("nid_no"),
			PassportNo:         cell("passport_no"),
			BirthCertificateNo: cell("birth_certificate_no"),
			PermanentAddress:   addressFromCells(cell, "permanent_"),
			PresentAddress:     addressFromCells(cell, "present_"),
			AdmissionType:      cell("admission_type"),
			PreviousUniversity: cell("previous_university"),
			CreditsEarned:      credits,
			ProgramCode:        cell("program_code"),
			CampusID:           cell("campus_id"),
			SemesterID:         cell("semester_id"),
			Notes:              cell("notes"),
			RefNo:              cell("ref_no"),
		})
	}

	return rows, nil
}

func addressFromCells(cell func(string) string, prefix string) *AddressInput {
	address := AddressInput{
		Street:  cell(prefix + "street"),
		City:    cell(prefix + "city"),
		State:   cell(prefix + "state"),
		ZipCode: cell(prefix + "zip_code"),
		Country: cell(prefix + "country"),
	}
	if address == (AddressInput{}) {
		return nil
	}
	return &address
}
