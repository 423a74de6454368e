// Package features turns projected institution records into the numeric
// feature table the tree models consume: ordinal encoding for categorical
// columns followed by column-mean imputation of missing numeric cells.
package features

import (
	"fmt"

	"github.com/dkruze/CS-Capstone-CC/pipelines/Input"
)

// MissingCategory is the reserved bucket label for null-marked cells. A
// missing value is treated as its own category rather than dropped, since
// absence is itself informative for the tree.
const MissingCategory = "<NA>"

// InvalidInputError reports a column that cannot be encoded or imputed.
type InvalidInputError struct {
	Column string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input in column %q: %s", e.Column, e.Reason)
}

// Encode maps categorical values to 1-based ordinal codes.
//
// When order is nil it is derived from the input: distinct non-missing
// values in first-occurrence order, with the missing bucket sorting last if
// any null-marked cell is present. The effective order is returned so
// callers can re-encode later values identically. Codes are the 1-based
// position in the effective order, so distinct values always get distinct
// codes covering the contiguous range 1..K.
//
// Encode is a pure function: identical values and order always produce the
// identical code sequence.
func Encode(values []string, order []string) ([]int, []string, error) {
	effective := order
	if effective == nil {
		seen := make(map[string]struct{})
		hasMissing := false
		for _, v := range values {
			if input.IsMissing(v) {
				hasMissing = true
				continue
			}
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				effective = append(effective, v)
			}
		}
		if hasMissing {
			effective = append(effective, MissingCategory)
		}
	}

	codeOf := make(map[string]int, len(effective))
	for i, v := range effective {
		if _, dup := codeOf[v]; dup {
			return nil, nil, &InvalidInputError{Reason: fmt.Sprintf("duplicate category %q in order", v)}
		}
		codeOf[v] = i + 1
	}

	missingCode, hasMissingBucket := codeOf[MissingCategory]
	codes := make([]int, len(values))
	for i, v := range values {
		if input.IsMissing(v) {
			if !hasMissingBucket {
				// Supplied order without a missing bucket: nulls still get
				// their own code, appended after the listed categories.
				missingCode = len(effective) + 1
				hasMissingBucket = true
			}
			codes[i] = missingCode
			continue
		}
		code, ok := codeOf[v]
		if !ok {
			return nil, nil, &InvalidInputError{Reason: fmt.Sprintf("value %q not present in supplied order", v)}
		}
		codes[i] = code
	}
	return codes, effective, nil
}
