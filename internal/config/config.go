package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	pkgerrors "cprices/internal/errors"
	"cprices/pkg/dataset"
)

// Source names recognised in scenario files.
const (
	SourceWebScraped   = "web_scraped"
	SourceScanner      = "scanner"
	SourceConventional = "conventional"
)

// EnvConfigDir overrides the config directory discovery when set.
const EnvConfigDir = "CPRICES_CONFIG"

// ScenarioConfig describes one pipeline scenario: which staged inputs to
// combine, the provenance tag-column names, and the declared column types
// per source.
type ScenarioConfig struct {
	Name string `yaml:"-"`

	InputData InputData `yaml:"input_data" validate:"required"`

	// TagNames are the provenance tag-column names, in output order. Their
	// count fixes the arity of every provenance key.
	TagNames []string `yaml:"tag_names" validate:"required,min=1,dive,required"`

	// ColumnTypes maps source -> column name -> declared type name, used
	// by the staged-data readers.
	ColumnTypes map[string]map[string]string `yaml:"column_types"`
}

// InputData selects the staged tables for a scenario.
type InputData struct {
	// WebScraped maps supplier -> items; each (supplier, item) pair is one
	// staged table.
	WebScraped map[string][]string `yaml:"web_scraped" validate:"omitempty,dive,min=1"`
	// Scanner lists the scanner suppliers; each is one extract workbook.
	Scanner []string `yaml:"scanner" validate:"omitempty,dive,required"`
	// Conventional includes the fixed historic table.
	Conventional bool `yaml:"conventional"`
}

// Empty reports whether the scenario selects no input at all.
func (d InputData) Empty() bool {
	return len(d.WebScraped) == 0 && len(d.Scanner) == 0 && !d.Conventional
}

// DevConfig holds environment-level settings shared by all scenarios.
type DevConfig struct {
	StagedDir    string `yaml:"staged_dir" envconfig:"STAGED_DIR" default:"staged"`
	ProcessedDir string `yaml:"processed_dir" envconfig:"PROCESSED_DIR" default:"processed"`

	// ScannerInputTables maps a scanner supplier to the workbook path of
	// its extract.
	ScannerInputTables map[string]string `yaml:"scanner_input_tables"`

	// StrataCols are the grouping columns carried through the pipeline.
	StrataCols []string `yaml:"strata_cols"`
	// ScannerDataColumns are the columns read from scanner extracts.
	ScannerDataColumns []string `yaml:"scanner_data_columns"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the slog setup.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"LOG_OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"LOG_FILE" default:"logs/cprices.log"`
}

// AddStrata extends the column-list attributes with extra strata columns,
// skipping any already present.
func (c *DevConfig) AddStrata(extra ...string) {
	for _, lists := range []*[]string{&c.StrataCols, &c.ScannerDataColumns} {
		for _, col := range extra {
			if !containsString(*lists, col) {
				*lists = append(*lists, col)
			}
		}
	}
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// Dir returns the config directory, discovered from $CPRICES_CONFIG, then
// ~/cprices/config, then ./config.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		loc := filepath.Join(home, "cprices", "config")
		if info, err := os.Stat(loc); err == nil && info.IsDir() {
			return loc, nil
		}
	}
	loc := filepath.Join(".", "config")
	if info, err := os.Stat(loc); err == nil && info.IsDir() {
		return loc, nil
	}
	return "", fmt.Errorf("no config directory found; set %s", EnvConfigDir)
}

// LoadScenario reads and validates <dir>/<name>.yaml.
func LoadScenario(dir, name string) (*ScenarioConfig, error) {
	path := filepath.Join(dir, name+".yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario config: %w", err)
	}

	var cfg ScenarioConfig
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return nil, pkgerrors.ConfigInvalid(name, err.Error())
	}
	cfg.Name = name

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the scenario declaratively plus the cross-field rules
// the struct tags cannot express.
func (c *ScenarioConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			f := verrs[0]
			return pkgerrors.ConfigInvalid(f.Namespace(), fmt.Sprintf("failed %q validation", f.Tag()))
		}
		return pkgerrors.ConfigInvalid(c.Name, err.Error())
	}

	if c.InputData.Empty() {
		return pkgerrors.ConfigInvalid("input_data", "scenario selects no input tables")
	}

	for source, columns := range c.ColumnTypes {
		switch source {
		case SourceWebScraped, SourceScanner, SourceConventional:
		default:
			return pkgerrors.ConfigInvalid("column_types",
				fmt.Sprintf("unknown source %q", source))
		}
		for column, typeName := range columns {
			if _, err := dataset.ParseType(typeName); err != nil {
				return pkgerrors.ConfigInvalid(
					fmt.Sprintf("column_types.%s.%s", source, column), err.Error())
			}
		}
	}
	return nil
}

// DeclaredTypes returns the declared column types for a source as parsed
// type tags.
func (c *ScenarioConfig) DeclaredTypes(source string) (map[string]dataset.Type, error) {
	declared := c.ColumnTypes[source]
	out := make(map[string]dataset.Type, len(declared))
	for column, typeName := range declared {
		t, err := dataset.ParseType(typeName)
		if err != nil {
			return nil, pkgerrors.ConfigInvalid(
				fmt.Sprintf("column_types.%s.%s", source, column), err.Error())
		}
		out[column] = t
	}
	return out, nil
}
