package sorter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mahyarmirrashed/extd/internal/config"
	"github.com/mahyarmirrashed/extd/internal/excluder"
	"github.com/mahyarmirrashed/extd/internal/utils"
)

// Outcome is the result of processing a single file.
type Outcome int

const (
	// Moved means the file was relocated into its category subfolder
	// (or would have been, in dry-run mode).
	Moved Outcome = iota
	// Skipped means the file was left in place: excluded, no extension,
	// or no category owns its extension.
	Skipped
	// Errored means an I/O failure or a destination collision; the file
	// stays where it is.
	Errored
)

// Report summarizes a single sort pass.
type Report struct {
	Moved   int
	Skipped int
	Errored int
	Elapsed time.Duration
}

// Sorter moves the regular files directly inside Root into category
// subfolders based on their extensions. It is synchronous and keeps no
// state between passes.
type Sorter struct {
	Root          string
	Rules         *Classifier
	Excluder      *excluder.Excluder
	DryRun        bool
	Notifications bool
	Log           log.FieldLogger
}

// New builds a Sorter from the given configuration. The logger is the
// sink for per-file events; pass nil to use the standard logger.
func New(cfg *config.Config, logger log.FieldLogger) (*Sorter, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	ex, err := excluder.New(cfg.Exclude, cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to compile exclude patterns: %w", err)
	}
	return &Sorter{
		Root:          cfg.Root,
		Rules:         NewClassifier(cfg.Categories),
		Excluder:      ex,
		DryRun:        cfg.DryRun,
		Notifications: cfg.Notifications,
		Log:           logger,
	}, nil
}

// Run performs one pass over the direct children of Root. A failure on an
// individual file is logged and counted but never aborts the pass; only a
// missing or unreadable root aborts, and that happens before any mutation.
func (s *Sorter) Run() (*Report, error) {
	start := time.Now()

	info, err := os.Stat(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", config.ErrRootMissing, s.Root)
		}
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", config.ErrNotDirectory, s.Root)
	}

	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("read root: %w", err)
	}

	s.Log.Infof("Sorting files by extension in %s", s.Root)

	report := &Report{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		switch s.SortFile(filepath.Join(s.Root, entry.Name())) {
		case Moved:
			report.Moved++
		case Skipped:
			report.Skipped++
		case Errored:
			report.Errored++
		}
	}

	report.Elapsed = time.Since(start)
	s.Log.Infof("Sorted %d file(s), skipped %d, errored %d in %s",
		report.Moved, report.Skipped, report.Errored, report.Elapsed)
	return report, nil
}

// SortFile classifies one file and moves it into its category subfolder.
// The path must point at a regular file directly under Root.
func (s *Sorter) SortFile(fullPath string) Outcome {
	filename := filepath.Base(fullPath)

	if s.Excluder.IsExcluded(fullPath) {
		s.Log.Debugf("Excluded: %s", fullPath)
		return Skipped
	}

	category, ok := s.Rules.Classify(filename)
	if !ok {
		s.Log.Debugf("No category for %s, leaving in place", filename)
		return Skipped
	}

	newPath := filepath.Join(s.Root, category, filename)
	relPath := category + "/" + filename

	if s.DryRun {
		out := fmt.Sprintf("[dry run] Would move %s -> %s", filename, relPath)
		s.Log.Info(out)
		utils.SendNotification(s.Notifications, "extd", out)
		return Moved
	}

	if err := os.MkdirAll(filepath.Dir(newPath), 0755); err != nil {
		return s.fail(fmt.Sprintf("Error creating folder for %s: %v", filename, err))
	}

	// Never overwrite: a name collision at the destination is an error.
	if _, err := os.Lstat(newPath); err == nil {
		return s.fail(fmt.Sprintf("Error moving %s: %s already exists", filename, relPath))
	}

	if err := os.Rename(fullPath, newPath); err != nil {
		return s.fail(fmt.Sprintf("Error moving %s: %v", filename, err))
	}

	out := fmt.Sprintf("Moved %s -> %s", filename, relPath)
	s.Log.Info(out)
	utils.SendNotification(s.Notifications, "extd", out)
	return Moved
}

func (s *Sorter) fail(out string) Outcome {
	s.Log.Error(out)
	utils.SendNotification(s.Notifications, "extd", out)
	return Errored
}
