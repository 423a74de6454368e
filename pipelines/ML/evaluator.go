package ml

import "fmt"

// ConfusionResult is the 2x2 contingency table of a binary classifier on a
// held-out set, with derived metrics. Class 1 is the positive class. When
// a metric's denominator is zero (the test set holds only one class) the
// matching Defined flag is false and the value is meaningless; reports
// must surface "undefined" rather than a silent zero.
type ConfusionResult struct {
	TruePositives  int `json:"true_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`
	Total          int `json:"total"`

	Accuracy           float64 `json:"accuracy"`
	Sensitivity        float64 `json:"sensitivity"`
	SensitivityDefined bool    `json:"sensitivity_defined"`
	Specificity        float64 `json:"specificity"`
	SpecificityDefined bool    `json:"specificity_defined"`
}

// EvaluateModel applies a fitted tree to every row of ds and builds the
// confusion table against the true labels. The four cells always sum to
// ds.Rows(). The model's feature schema must match the dataset's columns
// exactly, order included.
func EvaluateModel(model *DecisionTree, ds *Dataset) (*ConfusionResult, error) {
	if model == nil || model.Root == nil {
		return nil, &EvaluationError{Reason: "model is not fitted"}
	}
	if !sameSchema(model.FeatureNames, ds.FeatureNames) {
		return nil, &EvaluationError{
			Reason: fmt.Sprintf("model features %v do not match dataset columns %v", model.FeatureNames, ds.FeatureNames),
		}
	}
	if ds.Rows() == 0 {
		return nil, &EvaluationError{Reason: "empty test set"}
	}

	result := &ConfusionResult{Total: ds.Rows()}
	for i, row := range ds.X {
		pred, err := model.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("prediction failed at row %d: %w", i, err)
		}
		switch {
		case pred == 1 && ds.Y[i] == 1:
			result.TruePositives++
		case pred == 0 && ds.Y[i] == 0:
			result.TrueNegatives++
		case pred == 1 && ds.Y[i] == 0:
			result.FalsePositives++
		default:
			result.FalseNegatives++
		}
	}

	result.Accuracy = float64(result.TruePositives+result.TrueNegatives) / float64(result.Total)
	if actualPositives := result.TruePositives + result.FalseNegatives; actualPositives > 0 {
		result.Sensitivity = float64(result.TruePositives) / float64(actualPositives)
		result.SensitivityDefined = true
	}
	if actualNegatives := result.TrueNegatives + result.FalsePositives; actualNegatives > 0 {
		result.Specificity = float64(result.TrueNegatives) / float64(actualNegatives)
		result.SpecificityDefined = true
	}
	return result, nil
}

func sameSchema(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
