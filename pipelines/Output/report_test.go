package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dkruze/CS-Capstone-CC/pipelines/ML"
	"github.com/dkruze/CS-Capstone-CC/pipelines/Study"
)

func sampleResult() *study.ServiceResult {
	return &study.ServiceResult{
		RunID:     "11111111-2222-3333-4444-555555555555",
		Service:   "github",
		TrainRows: 5007,
		TestRows:  1669,
		Duration:  42 * time.Second,
		Sweep: &ml.SweepResult{
			Candidates: []ml.CandidateResult{
				{MinGain: 0.01, MeanAccuracy: 0.912, StdAccuracy: 0.004, FoldAccuracies: make([]float64, 30)},
			},
		},
		Confusion: &ml.ConfusionResult{
			TruePositives:      20,
			TrueNegatives:      1500,
			FalsePositives:     49,
			FalseNegatives:     100,
			Total:              1669,
			Accuracy:           0.9107,
			Sensitivity:        0.1667,
			SensitivityDefined: true,
			Specificity:        0.9684,
			SpecificityDefined: true,
		},
	}
}

func TestRender(t *testing.T) {
	t.Run("includes cells and metrics", func(t *testing.T) {
		text := Render(sampleResult())
		assert.Contains(t, text, "Service: github")
		assert.Contains(t, text, "Confusion Matrix")
		assert.Contains(t, text, "1500")
		assert.Contains(t, text, "Accuracy:    0.9107")
		assert.Contains(t, text, "Sensitivity: 0.1667")
		assert.Contains(t, text, "min gain")
	})

	t.Run("undefined metrics are spelled out", func(t *testing.T) {
		r := sampleResult()
		r.Confusion.SensitivityDefined = false
		text := Render(r)
		assert.Contains(t, text, "Sensitivity: undefined")
	})
}
