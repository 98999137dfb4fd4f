package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"cprices/internal/config"
	pkgerrors "cprices/internal/errors"
	"cprices/pkg/dataset"
)

// historicFile is the single conventional-data table currently staged.
const historicFile = "historic_201701_202001.csv"

// loadConcurrency bounds how many staged tables load at once.
const loadConcurrency = 4

// Entry is one staged table with its provenance key parts.
type Entry struct {
	Key   []string
	Table *dataset.Table
}

// Loader reads the staged tables a scenario selects.
type Loader struct {
	staged        string
	scannerTables map[string]string
	logger        *slog.Logger
}

// NewLoader creates a loader over the staged directory from the dev
// config.
func NewLoader(dev *config.DevConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		staged:        dev.StagedDir,
		scannerTables: dev.ScannerInputTables,
		logger:        logger,
	}
}

// tableSpec is one staged table to load: its key parts and how to read it.
type tableSpec struct {
	key  []string
	load func() (*dataset.Table, error)
}

// LoadStaged loads every table the scenario selects, concurrently, and
// returns them in deterministic order: web-scraped tables first (suppliers
// and items sorted), then scanner extracts (suppliers sorted), then the
// conventional historic table. Key parts are padded by repeating the last
// part so every key matches the scenario's tag-name arity.
func (l *Loader) LoadStaged(ctx context.Context, scenario *config.ScenarioConfig) ([]Entry, error) {
	if err := l.checkStagedDir(); err != nil {
		return nil, err
	}

	specs, err := l.specs(scenario)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, spec := range specs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := spec.load()
			if err != nil {
				return pkgerrors.Storage(fmt.Sprintf("load %v", spec.key), err)
			}
			l.logger.Debug("loaded staged table",
				slog.Any("key", spec.key),
				slog.Int("rows", t.NumRows()),
				slog.Int("columns", t.NumColumns()))
			entries[i] = Entry{Key: spec.key, Table: t}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (l *Loader) specs(scenario *config.ScenarioConfig) ([]tableSpec, error) {
	arity := len(scenario.TagNames)
	var specs []tableSpec

	webTypes, err := scenario.DeclaredTypes(config.SourceWebScraped)
	if err != nil {
		return nil, err
	}
	suppliers := sortedKeys(scenario.InputData.WebScraped)
	for _, supplier := range suppliers {
		items := append([]string(nil), scenario.InputData.WebScraped[supplier]...)
		sort.Strings(items)
		for _, item := range items {
			path := filepath.Join(l.staged, config.SourceWebScraped, supplier, item+".csv")
			key, err := fillKey([]string{config.SourceWebScraped, supplier, item}, arity)
			if err != nil {
				return nil, err
			}
			specs = append(specs, tableSpec{
				key:  key,
				load: func() (*dataset.Table, error) { return ReadCSV(path, webTypes) },
			})
		}
	}

	scanTypes, err := scenario.DeclaredTypes(config.SourceScanner)
	if err != nil {
		return nil, err
	}
	scanners := append([]string(nil), scenario.InputData.Scanner...)
	sort.Strings(scanners)
	for _, supplier := range scanners {
		path, ok := l.scannerTables[supplier]
		if !ok {
			return nil, pkgerrors.ConfigInvalid("scanner_input_tables",
				fmt.Sprintf("no workbook configured for supplier %q", supplier))
		}
		key, err := fillKey([]string{config.SourceScanner, supplier}, arity)
		if err != nil {
			return nil, err
		}
		specs = append(specs, tableSpec{
			key:  key,
			load: func() (*dataset.Table, error) { return ReadWorkbook(path, scanTypes) },
		})
	}

	if scenario.InputData.Conventional {
		convTypes, err := scenario.DeclaredTypes(config.SourceConventional)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(l.staged, config.SourceConventional, "local_collection", historicFile)
		key, err := fillKey([]string{config.SourceConventional, "local_collection"}, arity)
		if err != nil {
			return nil, err
		}
		specs = append(specs, tableSpec{
			key:  key,
			load: func() (*dataset.Table, error) { return ReadCSV(path, convTypes) },
		})
	}

	if len(specs) == 0 {
		return nil, pkgerrors.ConfigInvalid("input_data", "scenario selects no input tables")
	}
	return specs, nil
}

func (l *Loader) checkStagedDir() error {
	info, err := os.Stat(l.staged)
	if os.IsNotExist(err) {
		return pkgerrors.Storage("stat staged dir", fmt.Errorf("%s does not exist", l.staged))
	}
	if err != nil {
		return pkgerrors.Storage("stat staged dir", err)
	}
	if !info.IsDir() {
		return pkgerrors.Storage("stat staged dir", fmt.Errorf("%s is not a directory", l.staged))
	}
	return nil
}

// fillKey pads key parts by repeating the last part until the key matches
// the tag-name arity. Sources sit at different depths of the staged layout
// (web-scraped keys have three parts, conventional two), and the batch
// needs a uniform arity.
func fillKey(parts []string, arity int) ([]string, error) {
	if len(parts) > arity {
		return nil, pkgerrors.ArityMismatch(fmt.Sprintf(
			"key %v has %d parts but only %d tag names are configured", parts, len(parts), arity))
	}
	for len(parts) < arity {
		parts = append(parts, parts[len(parts)-1])
	}
	return parts, nil
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
