package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	pkgerrors "cprices/internal/errors"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// CPRICES_STAGED_DIR.
const EnvPrefix = "CPRICES"

// LoadDev reads <dir>/dev.yaml and applies CPRICES_* environment
// overrides. Environment values win over file values; envconfig defaults
// fill whatever neither sets.
func LoadDev(dir string) (*DevConfig, error) {
	var fileCfg DevConfig
	path := filepath.Join(dir, "dev.yaml")
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return nil, pkgerrors.ConfigInvalid("dev", err.Error())
		}
	case os.IsNotExist(err):
		// Optional file; environment and defaults cover everything.
	default:
		return nil, fmt.Errorf("failed to read dev config: %w", err)
	}

	var envCfg DevConfig
	if err := envconfig.Process(EnvPrefix, &envCfg); err != nil {
		return nil, fmt.Errorf("failed to load dev config from env: %w", err)
	}

	cfg := mergeDev(fileCfg, envCfg)
	return &cfg, nil
}

// mergeDev overlays env values (and envconfig defaults) onto the file
// config. An env value is only taken when its variable is actually set or
// the file left the field empty.
func mergeDev(file, env DevConfig) DevConfig {
	out := file

	pick := func(dst *string, envVar, envVal string) {
		if os.Getenv(EnvPrefix+"_"+envVar) != "" || *dst == "" {
			*dst = envVal
		}
	}
	pick(&out.StagedDir, "STAGED_DIR", env.StagedDir)
	pick(&out.ProcessedDir, "PROCESSED_DIR", env.ProcessedDir)
	pick(&out.Logging.Level, "LOG_LEVEL", env.Logging.Level)
	pick(&out.Logging.Output, "LOG_OUTPUT", env.Logging.Output)
	pick(&out.Logging.FilePath, "LOG_FILE", env.Logging.FilePath)

	return out
}
