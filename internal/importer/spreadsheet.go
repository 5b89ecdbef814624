// AngelaMos | 2026
// spreadsheet.go

package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Column names are matched after lowercasing, so primary_DOB arrives as
// primary_dob.
const (
	colPrimaryFirstName   = "primary_first_name"
	colPrimaryLastName    = "primary_last_name"
	colSecondaryFirstName = "secondary_first_name"
	colSecondaryLastName  = "secondary_last_name"
	colPrimaryEmail       = "primary_email"
	colSecondaryEmail     = "secondary_email"
	colPrimaryPhone       = "primary_phone"
	colSecondaryPhone     = "secondary_phone"
	colPrimaryDOB         = "primary_dob"
	colSecondaryDOB       = "secondary_dob"
	colStatus             = "status"
	colMailPreference     = "mail_preference"
	colPastClient         = "past_client"
	colNotes              = "notes"
	colAddress            = "address"
	colSuite              = "suite"
	colCity               = "city"
	colState              = "state"
	colZipCode            = "zip_code"
)

var knownColumns = map[string]struct{}{
	colPrimaryFirstName: {}, colPrimaryLastName: {},
	colSecondaryFirstName: {}, colSecondaryLastName: {},
	colPrimaryEmail: {}, colSecondaryEmail: {},
	colPrimaryPhone: {}, colSecondaryPhone: {},
	colPrimaryDOB: {}, colSecondaryDOB: {},
	colStatus: {}, colMailPreference: {}, colPastClient: {}, colNotes: {},
	colAddress: {}, colSuite: {}, colCity: {}, colState: {}, colZipCode: {},
}

var zipMagic = []byte("PK\x03\x04")

// Sheet is a parsed contact spreadsheet. Rows are keyed by lowercased
// header; empty cells are omitted. Blank rows are dropped but Line keeps
// the original position for error messages.
type Sheet struct {
	Columns []string
	Rows    []SheetRow
}

type SheetRow struct {
	Line   int
	Values map[string]string
}

func (r SheetRow) Get(col string) (string, bool) {
	v, ok := r.Values[col]
	return v, ok
}

// UnknownColumns lists header names that are not contact fields.
func (s *Sheet) UnknownColumns() []string {
	var out []string
	for _, c := range s.Columns {
		if _, ok := knownColumns[c]; !ok && c != "" {
			out = append(out, c)
		}
	}
	return out
}

// ParseSpreadsheet reads the first worksheet of an XLSX file, or CSV when
// data is not a zip container. Every failure wraps ErrFormat.
func ParseSpreadsheet(data []byte) (*Sheet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrFormat)
	}

	var (
		records [][]string
		err     error
	)
	if bytes.HasPrefix(data, zipMagic) {
		records, err = readXLSX(data)
	} else {
		records, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}

	return buildSheet(records)
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	defer f.Close() //nolint:errcheck // in-memory workbook

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrFormat)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("%w: not a spreadsheet", ErrFormat)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return records, nil
}

func buildSheet(records [][]string) (*Sheet, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrFormat)
	}

	columns := make([]string, len(records[0]))
	for i, h := range records[0] {
		columns[i] = strings.ToLower(strings.TrimSpace(h))
	}

	if !contains(columns, colPrimaryFirstName) || !contains(columns, colPrimaryLastName) {
		return nil, fmt.Errorf(
			"%w: header must include %s and %s",
			ErrFormat, colPrimaryFirstName, colPrimaryLastName,
		)
	}

	sheet := &Sheet{Columns: columns}
	for i, rec := range records[1:] {
		values := make(map[string]string, len(columns))
		for j, cell := range rec {
			if j >= len(columns) || columns[j] == "" {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				values[columns[j]] = v
			}
		}
		if len(values) == 0 {
			continue
		}
		sheet.Rows = append(sheet.Rows, SheetRow{Line: i + 2, Values: values})
	}

	return sheet, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// ParseDate accepts an Excel serial day number or one of the common
// layouts and returns midnight UTC of that day.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial <= 0 || math.IsInf(serial, 0) || math.IsNaN(serial) {
			return time.Time{}, fmt.Errorf("date serial %q out of range", raw)
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("date serial %q: %w", raw, err)
		}
		return truncateDay(t), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return truncateDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseFlag reads yes/no style cells. ok is false for anything else.
func ParseFlag(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1", "x":
		return true, true
	case "false", "no", "n", "0", "":
		return false, true
	}
	return false, false
}
