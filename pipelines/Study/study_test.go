package study

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkruze/CS-Capstone-CC/pipelines/Features"
	"github.com/dkruze/CS-Capstone-CC/pipelines/Input"
	"github.com/dkruze/CS-Capstone-CC/pipelines/ML"
	"github.com/dkruze/CS-Capstone-CC/pkg/config"
)

func studyTable(t *testing.T, rows int) *features.Table {
	t.Helper()
	states := []string{"OH", "PA", "NY", "CA"}
	records := make([]input.InstitutionRecord, rows)
	for i := range records {
		records[i] = input.InstitutionRecord{
			Institution:    fmt.Sprintf("Institution %d", i),
			State:          states[i%len(states)],
			AdmissionRate:  fmt.Sprintf("%.2f", float64(i%100)/100),
			Degrees:        fmt.Sprintf("%d", i%4),
			TotalTuition:   fmt.Sprintf("%d", 5000+i*37),
			AdditionalFees: fmt.Sprintf("%d", 100+i%9),
		}
	}
	// sprinkle missing cells so imputation has work to do
	records[3].AdmissionRate = "NA"
	records[7].TotalTuition = ""

	table, err := features.BuildTable(records)
	require.NoError(t, err)
	require.NoError(t, table.ImputeMeans())
	return table
}

func studyConfig() *config.StudyConfig {
	return &config.StudyConfig{
		TrainSize: 60,
		TestSize:  20,
		CV:        ml.CVConfig{Folds: 3, Repeats: 2, TuneLength: 3, Seed: 3333},
		Services: []config.ServiceConfig{
			{Name: "github", PositiveCount: 20, LabelSeed: 1, SplitSeed: 935, TrainSeed: 3333},
			{Name: "google", PositiveCount: 30, LabelSeed: 2, SplitSeed: 936, TrainSeed: 3334},
		},
	}
}

func TestRun(t *testing.T) {
	t.Run("runs every service pipeline", func(t *testing.T) {
		table := studyTable(t, 80)
		result, err := Run(studyConfig(), table, nil)
		require.NoError(t, err)
		require.Empty(t, result.Errors)
		require.Len(t, result.Services, 2)

		for _, svc := range result.Services {
			assert.NotEmpty(t, svc.RunID)
			assert.Equal(t, 60, svc.TrainRows)
			assert.Equal(t, 20, svc.TestRows)

			c := svc.Confusion
			sum := c.TruePositives + c.TrueNegatives + c.FalsePositives + c.FalseNegatives
			assert.Equal(t, 20, sum)
			assert.GreaterOrEqual(t, c.Accuracy, 0.0)
			assert.LessOrEqual(t, c.Accuracy, 1.0)

			require.NotNil(t, svc.Sweep)
			assert.Len(t, svc.Sweep.Candidates, 3)
		}
	})

	t.Run("results are reproducible across runs", func(t *testing.T) {
		table := studyTable(t, 80)
		first, err := Run(studyConfig(), table, nil)
		require.NoError(t, err)
		second, err := Run(studyConfig(), table, nil)
		require.NoError(t, err)

		require.Len(t, second.Services, len(first.Services))
		for i := range first.Services {
			assert.Equal(t, first.Services[i].Confusion, second.Services[i].Confusion)
			assert.Equal(t, first.Services[i].Sweep, second.Services[i].Sweep)
		}
	})

	t.Run("one failing service never stops the others", func(t *testing.T) {
		table := studyTable(t, 80)
		cfg := studyConfig()
		// more positives than rows: label synthesis must fail
		cfg.Services[0].PositiveCount = 10_000

		result, err := Run(cfg, table, nil)
		require.NoError(t, err)
		require.Len(t, result.Services, 1)
		assert.Equal(t, "google", result.Services[0].Service)

		require.Contains(t, result.Errors, "github")
		var cfgErr *ml.ConfigurationError
		assert.ErrorAs(t, result.Errors["github"], &cfgErr)
	})
}
