package sorter

import (
	"path/filepath"
	"strings"

	"github.com/mahyarmirrashed/extd/internal/config"
)

// Classifier resolves a file extension to its owning category.
// The index is built once from the configured categories and is immutable.
type Classifier struct {
	index map[string]string
}

// NewClassifier builds a Classifier from the ordered category list.
// If an extension appears in more than one category, the first category
// in configuration order owns it.
func NewClassifier(categories []config.Category) *Classifier {
	index := make(map[string]string)
	for _, cat := range categories {
		for _, ext := range cat.Extensions {
			ext = strings.ToLower(ext)
			if _, ok := index[ext]; !ok {
				index[ext] = cat.Name
			}
		}
	}
	return &Classifier{index: index}
}

// Classify returns the category owning the extension of filename.
// The second return is false when the filename has no extension or the
// extension is not mapped to any category.
func (c *Classifier) Classify(filename string) (string, bool) {
	ext := Extension(filename)
	if ext == "" {
		return "", false
	}
	category, ok := c.index[ext]
	return category, ok
}

// Extension returns the lower-cased text after the last dot of name,
// without the dot. Names without a dot have no extension.
func Extension(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
