// Package input loads the institution dataset from a delimited file and
// projects it down to the six columns the study models on.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// InstitutionRecord is one row of the projected dataset. Numeric cells keep
// their raw string form here; parsing happens when the feature table is
// built, so null markers survive the projection step.
type InstitutionRecord struct {
	Institution    string
	State          string
	AdmissionRate  string
	Degrees        string
	TotalTuition   string
	AdditionalFees string
}

// ColumnMapping names the source headers for each required column.
type ColumnMapping struct {
	Institution    string `yaml:"institution"`
	State          string `yaml:"state"`
	AdmissionRate  string `yaml:"admission_rate"`
	Degrees        string `yaml:"degrees"`
	TotalTuition   string `yaml:"total_tuition"`
	AdditionalFees string `yaml:"additional_fees"`
}

// DefaultColumnMapping covers the College Scorecard export the study was
// designed against.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Institution:    "INSTNM",
		State:          "STABBR",
		AdmissionRate:  "ADM_RATE",
		Degrees:        "HIGHDEG",
		TotalTuition:   "TUITIONFEE_IN",
		AdditionalFees: "TUITFTE",
	}
}

// InvalidInputError reports a source file that cannot be projected into the
// six-column institution table.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// IsMissing reports whether a raw cell carries one of the recognized null
// markers: empty string, "NA" or "NULL".
func IsMissing(cell string) bool {
	switch strings.TrimSpace(cell) {
	case "", "NA", "NULL":
		return true
	}
	return false
}

// LoadCSV reads the file at path and returns the projected, deduplicated
// institution records.
func LoadCSV(path string, mapping ColumnMapping) ([]InstitutionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return ReadRecords(f, mapping)
}

// ReadRecords parses a delimited table with a header row from r, projects
// the six mapped columns and removes exact-duplicate rows. Row order is
// preserved; the first occurrence of a duplicate wins.
func ReadRecords(r io.Reader, mapping ColumnMapping) ([]InstitutionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("failed to read header: %v", err)}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	required := map[string]string{
		"institution":     mapping.Institution,
		"state":           mapping.State,
		"admission_rate":  mapping.AdmissionRate,
		"degrees":         mapping.Degrees,
		"total_tuition":   mapping.TotalTuition,
		"additional_fees": mapping.AdditionalFees,
	}
	columns := make(map[string]int, len(required))
	for field, source := range required {
		idx, ok := index[source]
		if !ok {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("required column %q (%s) not found in header", source, field)}
		}
		columns[field] = idx
	}

	cell := func(row []string, field string) string {
		idx := columns[field]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []InstitutionRecord
	seen := make(map[InstitutionRecord]struct{})
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("failed to read row: %v", err)}
		}

		rec := InstitutionRecord{
			Institution:    cell(row, "institution"),
			State:          cell(row, "state"),
			AdmissionRate:  cell(row, "admission_rate"),
			Degrees:        cell(row, "degrees"),
			TotalTuition:   cell(row, "total_tuition"),
			AdditionalFees: cell(row, "additional_fees"),
		}
		if _, dup := seen[rec]; dup {
			continue
		}
		seen[rec] = struct{}{}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &InvalidInputError{Reason: "dataset contains no rows"}
	}
	return records, nil
}
