package sorter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mahyarmirrashed/extd/internal/config"
)

func TestExtension(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"cat.png", "png"},
		{"CAT.PNG", "png"},
		{"archive.tar.gz", "gz"},
		{"README", ""},
		{".gitignore", "gitignore"},
		{"weird.", ""},
		{"/some/dir/photo.JPG", "jpg"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Extension(tc.name), "Extension(%q)", tc.name)
	}
}

func TestClassifyFirstCategoryWins(t *testing.T) {
	c := NewClassifier([]config.Category{
		{Name: "image", Extensions: []string{"png", "svg"}},
		{Name: "vector", Extensions: []string{"svg"}},
	})

	category, ok := c.Classify("logo.svg")
	assert.True(t, ok)
	assert.Equal(t, "image", category)
}

func TestClassifyUnknownExtension(t *testing.T) {
	c := NewClassifier([]config.Category{
		{Name: "image", Extensions: []string{"png"}},
	})

	_, ok := c.Classify("movie.mp4")
	assert.False(t, ok)

	_, ok = c.Classify("README")
	assert.False(t, ok)
}

func TestClassifyNormalizesConfiguredExtensions(t *testing.T) {
	c := NewClassifier([]config.Category{
		{Name: "image", Extensions: []string{"PNG"}},
	})

	category, ok := c.Classify("cat.png")
	assert.True(t, ok)
	assert.Equal(t, "image", category)
}
