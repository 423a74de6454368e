// Command adoption runs the institutional cloud-service adoption study:
// it loads the institution dataset, prepares the feature table, fits one
// cross-validated decision tree per service and reports the confusion
// results.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dkruze/CS-Capstone-CC/pipelines/Features"
	"github.com/dkruze/CS-Capstone-CC/pipelines/Input"
	"github.com/dkruze/CS-Capstone-CC/pipelines/Output"
	"github.com/dkruze/CS-Capstone-CC/pipelines/Study"
	"github.com/dkruze/CS-Capstone-CC/pkg/config"
	"github.com/dkruze/CS-Capstone-CC/utils"
)

func main() {
	dataPath := flag.String("data", "", "path to the institution dataset CSV")
	configPath := flag.String("config", "", "path to a YAML study configuration (optional)")
	dbPath := flag.String("db", "", "path to the result database (empty disables persistence)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	if err := run(*dataPath, *configPath, *dbPath, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "adoption study failed: %v\n", err)
		os.Exit(1)
	}
}

func run(dataPath, configPath, dbPath, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cfg.DataPath == "" {
		return fmt.Errorf("no dataset given; pass -data or set ADOPTION_DATA")
	}

	logger := utils.NewLogger()
	logger.SetLevel(utils.ParseLogLevel(cfg.LogLevel))
	logger.SetFormat(cfg.LogFormat)
	log := logger.WithComponent("adoption")

	records, err := input.LoadCSV(cfg.DataPath, cfg.Columns)
	if err != nil {
		return err
	}
	log.Info("dataset loaded", utils.Int("rows", len(records)))

	table, err := features.BuildTable(records)
	if err != nil {
		return err
	}
	if err := table.ImputeMeans(); err != nil {
		return err
	}

	result, err := study.Run(cfg, table, logger)
	if err != nil {
		return err
	}

	for i := range result.Services {
		fmt.Println(output.Render(&result.Services[i]))
	}

	if dbPath != "" || cfg.DatabasePath != "" {
		if err := persist(cfg.DatabasePath, result, log); err != nil {
			// The study already completed; a bad result store only costs
			// the persisted copy.
			log.Error("failed to persist results", err)
		}
	}

	if len(result.Errors) > 0 {
		for _, err := range result.Errors {
			log.Error("service failed", err)
		}
		return fmt.Errorf("%d of %d service pipelines failed", len(result.Errors), len(cfg.Services))
	}
	return nil
}

func persist(path string, result *study.Result, log *utils.Logger) error {
	store, err := output.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	for i := range result.Services {
		if err := store.SaveResult(&result.Services[i]); err != nil {
			return err
		}
		log.Debug("run persisted", utils.String("run_id", result.Services[i].RunID))
	}
	return nil
}
