package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Recipes, 5)
	assert.Len(t, c.Videos, 5)
	assert.Len(t, c.Articles, 4)
	assert.Contains(t, c.Articles[0].Body, "**Management Tips:**")
}

func TestFilters(t *testing.T) {
	c := MustDefault()

	menstrual := c.RecipesFor("Menstrual")
	require.Len(t, menstrual, 2)
	for _, r := range menstrual {
		assert.Equal(t, "Menstrual", r.Phase)
	}
	assert.Len(t, c.RecipesFor(""), 5)

	luteal := c.VideosFor("Luteal")
	require.Len(t, luteal, 2)
	assert.Equal(t, "PMS Relief & Sleep Meditation", luteal[0].Title)
	assert.Equal(t, "", luteal[1].Phase)

	assert.Len(t, c.ArticlesFor("Menopause"), 1)
	assert.Empty(t, c.ArticlesFor("Nutrition"))
	assert.Len(t, c.ArticlesFor(""), 4)
}

func TestDecodeRejectsIncompleteEntries(t *testing.T) {
	_, err := Decode(strings.NewReader("recipes:\n  - title: No id\n"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("recipes:\n  - id: x\n    title: y\n    colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("articles:\n  - id: a\n    title: A\n    body: text\n    category: PMS\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Articles, 1)
	assert.Equal(t, "PMS", c.Articles[0].Category)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
