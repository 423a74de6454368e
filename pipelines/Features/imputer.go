package features

import (
	"math"

	"github.com/montanaflynn/stats"
)

// ImputeMeans replaces every NaN cell with the arithmetic mean of its
// column's non-missing values, computed once over the full column before
// any replacement. Complete columns are untouched, so imputing twice
// yields the same table as imputing once. A column with no observed values
// has an undefined mean and fails with *InvalidInputError.
func (t *Table) ImputeMeans() error {
	for i, name := range t.ColumnNames {
		col := t.columns[i]
		observed := make([]float64, 0, len(col))
		for _, v := range col {
			if !math.IsNaN(v) {
				observed = append(observed, v)
			}
		}
		if len(observed) == len(col) {
			continue
		}
		if len(observed) == 0 {
			return &InvalidInputError{Column: name, Reason: "entirely missing, mean undefined"}
		}
		mean, err := stats.Mean(observed)
		if err != nil {
			return &InvalidInputError{Column: name, Reason: err.Error()}
		}
		for j, v := range col {
			if math.IsNaN(v) {
				col[j] = mean
			}
		}
	}
	return nil
}
