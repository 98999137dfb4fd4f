// Package config loads and validates the pipeline configuration.
//
// Configuration is split the same way the pipeline's runs are:
//
//   - ScenarioConfig: one YAML file per scenario describing which staged
//     inputs to combine (sources, suppliers, items), the tag-column names
//     for provenance, and per-source declared column types.
//   - DevConfig: environment-level settings (staged/processed directories,
//     scanner table locations, logging) from dev.yaml with CPRICES_*
//     environment overrides taking precedence.
//
// The config directory is discovered from $CPRICES_CONFIG, then
// ~/cprices/config, then ./config.
//
// Scenario files are validated declaratively before a run starts, so the
// concatenation engine can assume well-formed tag names and keys.
package config
