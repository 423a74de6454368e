package features

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dkruze/CS-Capstone-CC/pipelines/Input"
)

// Feature column names used throughout the study.
const (
	ColState          = "State"
	ColAdmissionRate  = "AdmissionRate"
	ColDegrees        = "Degrees"
	ColTotalTuition   = "TotalTuition"
	ColAdditionalFees = "AdditionalFees"
)

// FeatureColumns returns the ordered model feature list.
func FeatureColumns() []string {
	return []string{ColState, ColAdmissionRate, ColDegrees, ColTotalTuition, ColAdditionalFees}
}

// Table is the columnar numeric feature table. Missing cells are NaN until
// ImputeMeans replaces them; after imputation the table is never mutated.
type Table struct {
	Names       []string // institution names, aligned with rows, not a feature
	ColumnNames []string
	columns     [][]float64 // column-major, parallel to ColumnNames
	StateOrder  []string    // category order used for the State codes
	DegreeOrder []string    // category order used for the Degrees codes
}

// Rows returns the number of rows in the table.
func (t *Table) Rows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0])
}

// Column returns the cells of a named column.
func (t *Table) Column(name string) ([]float64, error) {
	for i, n := range t.ColumnNames {
		if n == name {
			return t.columns[i], nil
		}
	}
	return nil, &InvalidInputError{Column: name, Reason: "no such column"}
}

// Matrix returns a row-major copy of the named feature columns, in order.
func (t *Table) Matrix(columns []string) ([][]float64, error) {
	cols := make([][]float64, len(columns))
	for i, name := range columns {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	rows := make([][]float64, t.Rows())
	for r := range rows {
		rows[r] = make([]float64, len(cols))
		for c := range cols {
			rows[r][c] = cols[c][r]
		}
	}
	return rows, nil
}

// BuildTable encodes the categorical columns and parses the numeric ones,
// producing the base feature table. Null-marked numeric cells become NaN;
// run ImputeMeans before modeling.
func BuildTable(records []input.InstitutionRecord) (*Table, error) {
	n := len(records)
	if n == 0 {
		return nil, &InvalidInputError{Reason: "no records"}
	}

	names := make([]string, n)
	states := make([]string, n)
	degrees := make([]string, n)
	for i, rec := range records {
		names[i] = rec.Institution
		states[i] = rec.State
		degrees[i] = rec.Degrees
	}

	stateCodes, stateOrder, err := Encode(states, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ColState, err)
	}
	degreeCodes, degreeOrder, err := Encode(degrees, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ColDegrees, err)
	}

	parse := func(column string, cell func(input.InstitutionRecord) string) ([]float64, error) {
		out := make([]float64, n)
		for i, rec := range records {
			raw := cell(rec)
			if input.IsMissing(raw) {
				out[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &InvalidInputError{Column: column, Reason: fmt.Sprintf("row %d: unparseable value %q", i, raw)}
			}
			out[i] = v
		}
		return out, nil
	}

	admission, err := parse(ColAdmissionRate, func(r input.InstitutionRecord) string { return r.AdmissionRate })
	if err != nil {
		return nil, err
	}
	tuition, err := parse(ColTotalTuition, func(r input.InstitutionRecord) string { return r.TotalTuition })
	if err != nil {
		return nil, err
	}
	fees, err := parse(ColAdditionalFees, func(r input.InstitutionRecord) string { return r.AdditionalFees })
	if err != nil {
		return nil, err
	}

	toFloats := func(codes []int) []float64 {
		out := make([]float64, len(codes))
		for i, c := range codes {
			out[i] = float64(c)
		}
		return out
	}

	return &Table{
		Names:       names,
		ColumnNames: FeatureColumns(),
		columns: [][]float64{
			toFloats(stateCodes),
			admission,
			toFloats(degreeCodes),
			tuition,
			fees,
		},
		StateOrder:  stateOrder,
		DegreeOrder: degreeOrder,
	}, nil
}
