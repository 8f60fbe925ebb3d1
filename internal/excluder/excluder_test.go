package excluder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExcludedByFilename(t *testing.T) {
	root := "/home/user/downloads"
	ex, err := New([]string{"*.tmp"}, root)
	require.NoError(t, err)

	assert.True(t, ex.IsExcluded(filepath.Join(root, "partial.tmp")))
	assert.False(t, ex.IsExcluded(filepath.Join(root, "done.png")))
}

func TestIsExcludedByRelativePath(t *testing.T) {
	root := "/home/user/downloads"
	ex, err := New([]string{"drafts/*"}, root)
	require.NoError(t, err)

	assert.True(t, ex.IsExcluded(filepath.Join(root, "drafts", "note.txt")))
	assert.False(t, ex.IsExcluded(filepath.Join(root, "note.txt")))
}

func TestNoPatterns(t *testing.T) {
	ex, err := New(nil, "/tmp")
	require.NoError(t, err)

	assert.False(t, ex.IsExcluded("/tmp/anything.png"))
}

func TestInvalidPattern(t *testing.T) {
	_, err := New([]string{"[unterminated"}, "/tmp")
	assert.Error(t, err)
}
