package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrRootMissing is returned when the configured root does not exist.
	ErrRootMissing = errors.New("root directory does not exist")
	// ErrNotDirectory is returned when the configured root is not a directory.
	ErrNotDirectory = errors.New("root path is not a directory")
)

// Category maps a destination subfolder name to the extensions it owns.
// Categories are declared as a YAML sequence so their order is meaningful:
// when an extension appears in more than one category, the first one wins.
type Category struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
}

// Config holds the YAML configuration for extd.
type Config struct {
	Root          string        `yaml:"root"`          // Directory whose direct children get sorted
	LogLevel      string        `yaml:"log_level"`     // Logging level: debug, info, warn, error
	LogFile       string        `yaml:"log_file"`      // Optional log file; empty means stderr
	Categories    []Category    `yaml:"categories"`    // Ordered category -> extensions mapping
	Exclude       []string      `yaml:"exclude"`       // Glob patterns to leave alone
	DryRun        bool          `yaml:"dry_run"`       // If true, don't move files
	Watch         bool          `yaml:"watch"`         // If true, keep sorting after the initial pass
	Daemonize     bool          `yaml:"daemonize"`     // If true, detach and run watch mode as a daemon
	Notifications bool          `yaml:"notifications"` // If true, send desktop notifications
	Delay         time.Duration `yaml:"delay"`         // Settle time before processing watched files
}

// Default returns a configuration with the stock category set.
func Default() *Config {
	return &Config{
		Root:     ".",
		LogLevel: "info",
		Categories: []Category{
			{Name: "image", Extensions: []string{"jpg", "jpeg", "png", "gif", "webp", "bmp", "svg", "ico"}},
			{Name: "video", Extensions: []string{"mp4", "mov", "avi", "mkv", "webm"}},
			{Name: "audio", Extensions: []string{"mp3", "wav", "flac", "ogg", "m4a"}},
			{Name: "document", Extensions: []string{"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "md"}},
			{Name: "archive", Extensions: []string{"zip", "tar", "gz", "rar", "7z"}},
			{Name: "code", Extensions: []string{"go", "py", "js", "ts", "c", "cpp", "java", "sh"}},
			{Name: "data", Extensions: []string{"json", "yaml", "yml", "xml", "csv", "toml"}},
		},
	}
}

// Load reads and parses the YAML config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can actually drive a sort pass.
// It must be called before any filesystem mutation happens.
func (c *Config) Validate() error {
	info, err := os.Stat(c.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRootMissing, c.Root)
		}
		return fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, c.Root)
	}

	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("category %d has an empty name", i)
		}
		if strings.ContainsAny(cat.Name, `/\`) {
			return fmt.Errorf("category %q is not a valid directory name", cat.Name)
		}
		if len(cat.Extensions) == 0 {
			return fmt.Errorf("category %q has no extensions", cat.Name)
		}
		for _, ext := range cat.Extensions {
			if ext == "" || strings.HasPrefix(ext, ".") {
				return fmt.Errorf("category %q: extension %q must be non-empty without a leading dot", cat.Name, ext)
			}
		}
	}
	return nil
}
