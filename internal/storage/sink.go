package storage

import (
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"cprices/pkg/dataset"
)

// Sink persists output tables under a per-run directory.
type Sink struct {
	processed string
	logger    *slog.Logger
	now       func() time.Time
}

// NewSink creates a sink writing under the processed directory.
func NewSink(processed string, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{processed: processed, logger: logger, now: time.Now}
}

// Save writes every output table as <processed>/<run_id>/<name>.csv and
// returns the run id. The run id names the directory a user explores to
// inspect this run's outputs.
func (s *Sink) Save(tables map[string]*dataset.Table) (string, error) {
	runID := s.newRunID()
	dir := filepath.Join(s.processed, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name+".csv")
		if err := s.writeTable(path, tables[name]); err != nil {
			return "", err
		}
		s.logger.Info("wrote output table",
			slog.String("name", name),
			slog.String("path", path),
			slog.Int("rows", tables[name].NumRows()))
	}
	return runID, nil
}

func (s *Sink) writeTable(path string, t *dataset.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteCSV(file, t); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// newRunID builds the unique run identifier: current date, time and
// username plus a short random suffix so concurrent runs never collide.
func (s *Sink) newRunID() string {
	return fmt.Sprintf("%s_%s_%s",
		s.now().Format("20060102_150405"),
		currentUsername(),
		uuid.NewString()[:8])
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
