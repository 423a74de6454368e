package ml

import "fmt"

// ConfigurationError reports invalid split sizes, label counts or
// cross-validation parameters.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// TrainingError reports a training set the tree cannot be fit on: a
// degenerate label distribution or non-finite feature values.
type TrainingError struct {
	Reason string
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("training failed: %s", e.Reason)
}

// EvaluationError reports a model/test-set schema mismatch.
type EvaluationError struct {
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed: %s", e.Reason)
}
