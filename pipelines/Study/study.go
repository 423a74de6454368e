// Package study runs the adoption study: one parameterized pipeline,
// invoked once per modeled service. Each invocation synthesizes a label
// vector, resamples train/test sets, sweeps a decision tree under repeated
// cross-validation and evaluates it on the held-out set. Services share
// the immutable feature table but nothing else; every stage takes its own
// explicit seed, so services can run in any order (or concurrently)
// without perturbing each other's results.
package study

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkruze/CS-Capstone-CC/pipelines/Features"
	"github.com/dkruze/CS-Capstone-CC/pipelines/ML"
	"github.com/dkruze/CS-Capstone-CC/pkg/config"
	"github.com/dkruze/CS-Capstone-CC/utils"
)

// ServiceResult is the outcome of one service's pipeline.
type ServiceResult struct {
	RunID     string              `json:"run_id"`
	Service   string              `json:"service"`
	TrainRows int                 `json:"train_rows"`
	TestRows  int                 `json:"test_rows"`
	Sweep     *ml.SweepResult     `json:"sweep"`
	Confusion *ml.ConfusionResult `json:"confusion"`
	Duration  time.Duration       `json:"duration"`
}

// Result collects the per-service outcomes of a study run. A failed
// service appears in Errors and never stops the remaining services.
type Result struct {
	Services []ServiceResult
	Errors   map[string]error
}

// Run executes the study over an encoded, imputed feature table.
func Run(cfg *config.StudyConfig, table *features.Table, logger *utils.Logger) (*Result, error) {
	if logger == nil {
		logger = utils.NewLogger()
	}
	log := logger.WithComponent("study")

	featureNames := features.FeatureColumns()
	X, err := table.Matrix(featureNames)
	if err != nil {
		return nil, fmt.Errorf("failed to extract feature matrix: %w", err)
	}
	rows := table.Rows()
	log.Info("study started",
		utils.Int("rows", rows),
		utils.Int("services", len(cfg.Services)))

	result := &Result{Errors: make(map[string]error)}
	for _, svc := range cfg.Services {
		svcResult, err := runService(cfg, svc, featureNames, X, log)
		if err != nil {
			log.Error("service pipeline failed", err, utils.String("service", svc.Name))
			result.Errors[svc.Name] = fmt.Errorf("service %s: %w", svc.Name, err)
			continue
		}
		log.Info("service pipeline finished",
			utils.String("service", svc.Name),
			utils.String("run_id", svcResult.RunID),
			utils.Float("accuracy", svcResult.Confusion.Accuracy))
		result.Services = append(result.Services, *svcResult)
	}
	return result, nil
}

// runService is the single parameterized pipeline: synthesize, split,
// train, evaluate.
func runService(cfg *config.StudyConfig, svc config.ServiceConfig, featureNames []string, X [][]float64, log *utils.Logger) (*ServiceResult, error) {
	start := time.Now()

	labels, err := ml.SynthesizeLabels(len(X), svc.PositiveCount, svc.LabelSeed)
	if err != nil {
		return nil, err
	}
	ds, err := ml.NewDataset(featureNames, X, labels)
	if err != nil {
		return nil, err
	}

	trainSet, testSet, err := ml.Split(ds, cfg.TrainSize, cfg.TestSize, svc.SplitSeed)
	if err != nil {
		return nil, err
	}
	log.Debug("split drawn",
		utils.String("service", svc.Name),
		utils.Int("train_rows", trainSet.Rows()),
		utils.Int("test_rows", testSet.Rows()))

	cv := cfg.CV
	cv.Seed = svc.TrainSeed
	model, sweep, err := ml.TrainTree(trainSet, featureNames, cv)
	if err != nil {
		return nil, err
	}
	log.Debug("sweep complete",
		utils.String("service", svc.Name),
		utils.Float("best_min_gain", sweep.Best().MinGain),
		utils.Float("cv_accuracy", sweep.Best().MeanAccuracy))

	confusion, err := ml.EvaluateModel(model, testSet)
	if err != nil {
		return nil, err
	}

	return &ServiceResult{
		RunID:     uuid.New().String(),
		Service:   svc.Name,
		TrainRows: trainSet.Rows(),
		TestRows:  testSet.Rows(),
		Sweep:     sweep,
		Confusion: confusion,
		Duration:  time.Since(start),
	}, nil
}
