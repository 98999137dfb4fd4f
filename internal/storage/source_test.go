package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cprices/internal/config"
	pkgerrors "cprices/internal/errors"
)

func stageCSV(t *testing.T, staged string, parts []string, content string) {
	t.Helper()
	path := filepath.Join(append([]string{staged}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func stagedFixture(t *testing.T) (*config.DevConfig, *config.ScenarioConfig) {
	t.Helper()
	staged := t.TempDir()

	stageCSV(t, staged, []string{"web_scraped", "alpha", "bread.csv"}, "price:double\n1.5\n")
	stageCSV(t, staged, []string{"web_scraped", "alpha", "milk.csv"}, "price:double\n0.9\n")
	stageCSV(t, staged,
		[]string{"conventional", "local_collection", "historic_201701_202001.csv"},
		"price:double\n2.0\n2.5\n")

	workbook := filepath.Join(staged, "beta.xlsx")
	writeWorkbook(t, workbook,
		[]any{"price", "quantity"},
		[]any{3.5, 2},
	)

	dev := &config.DevConfig{
		StagedDir:          staged,
		ScannerInputTables: map[string]string{"beta": workbook},
	}
	scenario := &config.ScenarioConfig{
		Name: "scenario_test",
		InputData: config.InputData{
			WebScraped:   map[string][]string{"alpha": {"milk", "bread"}},
			Scanner:      []string{"beta"},
			Conventional: true,
		},
		TagNames: []string{"data_source", "supplier", "item"},
		ColumnTypes: map[string]map[string]string{
			"scanner": {"price": "double", "quantity": "long"},
		},
	}
	return dev, scenario
}

func TestLoadStaged(t *testing.T) {
	dev, scenario := stagedFixture(t)
	loader := NewLoader(dev, nil)

	entries, err := loader.LoadStaged(context.Background(), scenario)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Deterministic order: web-scraped (items sorted), scanner, then
	// conventional; keys padded to the tag-name arity.
	assert.Equal(t, []string{"web_scraped", "alpha", "bread"}, entries[0].Key)
	assert.Equal(t, []string{"web_scraped", "alpha", "milk"}, entries[1].Key)
	assert.Equal(t, []string{"scanner", "beta", "beta"}, entries[2].Key)
	assert.Equal(t, []string{"conventional", "local_collection", "local_collection"}, entries[3].Key)

	assert.Equal(t, 1, entries[0].Table.NumRows())
	assert.Equal(t, 2, entries[3].Table.NumRows())

	// Scanner extract got its declared types.
	quantity, ok := entries[2].Table.Column("quantity")
	require.True(t, ok)
	assert.Equal(t, []any{int64(2)}, quantity.Values)
}

func TestLoadStagedErrors(t *testing.T) {
	t.Run("missing staged dir", func(t *testing.T) {
		dev := &config.DevConfig{StagedDir: filepath.Join(t.TempDir(), "nope")}
		_, err := NewLoader(dev, nil).LoadStaged(context.Background(), &config.ScenarioConfig{
			InputData: config.InputData{Conventional: true},
			TagNames:  []string{"data_source"},
		})
		assert.ErrorIs(t, err, pkgerrors.ErrStorage)
	})

	t.Run("unconfigured scanner supplier", func(t *testing.T) {
		dev, scenario := stagedFixture(t)
		dev.ScannerInputTables = nil

		_, err := NewLoader(dev, nil).LoadStaged(context.Background(), scenario)
		assert.ErrorIs(t, err, pkgerrors.ErrConfigInvalid)
	})

	t.Run("missing staged table", func(t *testing.T) {
		dev, scenario := stagedFixture(t)
		scenario.InputData.WebScraped["alpha"] = append(scenario.InputData.WebScraped["alpha"], "cheese")

		_, err := NewLoader(dev, nil).LoadStaged(context.Background(), scenario)
		assert.ErrorIs(t, err, pkgerrors.ErrStorage)
	})

	t.Run("key longer than tag names", func(t *testing.T) {
		dev, scenario := stagedFixture(t)
		scenario.TagNames = []string{"data_source"}

		_, err := NewLoader(dev, nil).LoadStaged(context.Background(), scenario)
		assert.ErrorIs(t, err, pkgerrors.ErrArityMismatch)
	})
}
