// Command combine runs the input-combination stage: it loads the staged
// tables a scenario selects, concatenates them into one unified table with
// provenance tags, and saves the result under a fresh run id.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"cprices/internal/concat"
	"cprices/internal/config"
	"cprices/internal/logging"
	"cprices/internal/storage"
	"cprices/pkg/dataset"
)

func main() {
	scenario := flag.String("scenario", "", "scenario config name, e.g. scenario_scan")
	configDir := flag.String("config", "", "config directory (defaults to discovery via CPRICES_CONFIG, ~/cprices/config, ./config)")
	flag.Parse()

	if *scenario == "" {
		slog.Error("missing required -scenario flag")
		os.Exit(1)
	}

	if err := run(context.Background(), *configDir, *scenario); err != nil {
		slog.Error("combine stage failed", "scenario", *scenario, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configDir, scenarioName string) error {
	dir := configDir
	if dir == "" {
		var err error
		dir, err = config.Dir()
		if err != nil {
			return err
		}
	}

	dev, err := config.LoadDev(dir)
	if err != nil {
		return err
	}
	logger, err := logging.Initialize(dev.Logging)
	if err != nil {
		return err
	}
	defer logging.Close()

	scenario, err := config.LoadScenario(dir, scenarioName)
	if err != nil {
		return err
	}
	logger.Info("starting combine stage",
		slog.String("scenario", scenario.Name),
		slog.Any("tag_names", scenario.TagNames))

	loader := storage.NewLoader(dev, logger)
	entries, err := loader.LoadStaged(ctx, scenario)
	if err != nil {
		return err
	}

	tables := make([]*dataset.Table, len(entries))
	keys := make([]concat.Key, len(entries))
	for i, e := range entries {
		tables[i] = e.Table
		parts := make([]any, len(e.Key))
		for j, p := range e.Key {
			parts[j] = p
		}
		keys[i] = concat.Key(parts)
	}

	unified, err := concat.Concat(
		concat.Tables(tables...),
		scenario.TagNames,
		concat.WithKeys(keys...),
		concat.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	logger.Info("combined staged tables",
		slog.Int("tables", len(tables)),
		slog.Int("rows", unified.NumRows()),
		slog.Int("columns", unified.NumColumns()))

	sink := storage.NewSink(dev.ProcessedDir, logger)
	runID, err := sink.Save(map[string]*dataset.Table{"combined": unified})
	if err != nil {
		return err
	}
	logger.Info("combine stage finished", slog.String("run_id", runID))
	return nil
}
