// Package output renders study results for humans and persists them for
// later inspection.
package output

import (
	"fmt"
	"strings"

	"github.com/dkruze/CS-Capstone-CC/pipelines/Study"
)

// Render formats one service result as a confusion-matrix table plus
// derived metrics.
func Render(r *study.ServiceResult) string {
	c := r.Confusion
	var b strings.Builder

	fmt.Fprintf(&b, "Service: %s (run %s)\n", r.Service, r.RunID)
	fmt.Fprintf(&b, "Train rows: %d  Test rows: %d  Duration: %s\n\n", r.TrainRows, r.TestRows, r.Duration)

	b.WriteString("Confusion Matrix:\n")
	b.WriteString("Actual \\ Predicted |          0          1\n")
	b.WriteString("-------------------+----------------------\n")
	fmt.Fprintf(&b, "%-18s | %10d %10d\n", "0", c.TrueNegatives, c.FalsePositives)
	fmt.Fprintf(&b, "%-18s | %10d %10d\n\n", "1", c.FalseNegatives, c.TruePositives)

	fmt.Fprintf(&b, "Accuracy:    %.4f\n", c.Accuracy)
	fmt.Fprintf(&b, "Sensitivity: %s\n", metric(c.Sensitivity, c.SensitivityDefined))
	fmt.Fprintf(&b, "Specificity: %s\n", metric(c.Specificity, c.SpecificityDefined))

	best := r.Sweep.Best()
	fmt.Fprintf(&b, "\nSelected complexity (min gain): %.6f\n", best.MinGain)
	fmt.Fprintf(&b, "Cross-validated accuracy: %.4f (sd %.4f over %d folds)\n",
		best.MeanAccuracy, best.StdAccuracy, len(best.FoldAccuracies))

	return b.String()
}

func metric(value float64, defined bool) string {
	if !defined {
		return "undefined (single-class test set)"
	}
	return fmt.Sprintf("%.4f", value)
}
