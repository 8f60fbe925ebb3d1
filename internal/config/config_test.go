package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPreservesCategoryOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extd.yaml")
	content := `root: /tmp/downloads
log_level: debug
dry_run: true
exclude:
  - "*.part"
categories:
  - name: image
    extensions: [png, jpg]
  - name: vector
    extensions: [svg]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/downloads", cfg.Root)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, []string{"*.part"}, cfg.Exclude)

	require.Len(t, cfg.Categories, 2)
	assert.Equal(t, "image", cfg.Categories[0].Name)
	assert.Equal(t, []string{"png", "jpg"}, cfg.Categories[0].Extensions)
	assert.Equal(t, "vector", cfg.Categories[1].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: {broken"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestDefaultValidatesInCurrentDirectory(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".", cfg.Root)
	assert.NotEmpty(t, cfg.Categories)
	assert.NoError(t, cfg.Validate())
}

func TestValidateMissingRoot(t *testing.T) {
	cfg := Default()
	cfg.Root = filepath.Join(t.TempDir(), "nope")
	assert.ErrorIs(t, cfg.Validate(), ErrRootMissing)
}

func TestValidateRootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	cfg := Default()
	cfg.Root = file
	assert.ErrorIs(t, cfg.Validate(), ErrNotDirectory)
}

func TestValidateBadCategories(t *testing.T) {
	cases := []struct {
		name     string
		category Category
	}{
		{"empty name", Category{Name: "", Extensions: []string{"png"}}},
		{"name with slash", Category{Name: "a/b", Extensions: []string{"png"}}},
		{"no extensions", Category{Name: "image"}},
		{"leading dot", Category{Name: "image", Extensions: []string{".png"}}},
		{"empty extension", Category{Name: "image", Extensions: []string{""}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Root: t.TempDir(), Categories: []Category{tc.category}}
			assert.Error(t, cfg.Validate())
		})
	}
}
