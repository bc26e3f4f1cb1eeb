// Package catalog holds the built-in wellness content served when the
// content tables are empty and loaded by the seed-content command.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vanshika/arivai/internal/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Catalog is a set of recipes, meditation videos and articles.
type Catalog struct {
	Recipes  []domain.Recipe          `yaml:"recipes"`
	Videos   []domain.MeditationVideo `yaml:"videos"`
	Articles []domain.Article         `yaml:"articles"`
}

// Default returns the embedded catalog.
func Default() (Catalog, error) {
	return Decode(bytes.NewReader(defaultsYAML))
}

// MustDefault is Default for package-level initialisation.
func MustDefault() Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML catalog and rejects entries without an id or title.
func Decode(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	for _, rec := range c.Recipes {
		if rec.ID == "" || rec.Title == "" {
			return Catalog{}, fmt.Errorf("recipe %q: id and title are required", rec.Title)
		}
	}
	for _, v := range c.Videos {
		if v.ID == "" || v.Title == "" || v.URL == "" {
			return Catalog{}, fmt.Errorf("video %q: id, title and url are required", v.Title)
		}
	}
	for _, a := range c.Articles {
		if a.ID == "" || a.Title == "" || a.Body == "" {
			return Catalog{}, fmt.Errorf("article %q: id, title and body are required", a.Title)
		}
	}
	return c, nil
}

// RecipesFor returns recipes for phase, or all of them when phase is empty.
func (c Catalog) RecipesFor(phase string) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(c.Recipes))
	for _, r := range c.Recipes {
		if phase == "" || r.Phase == phase {
			out = append(out, r)
		}
	}
	return out
}

// VideosFor returns videos for phase. Videos without a phase suit every phase.
func (c Catalog) VideosFor(phase string) []domain.MeditationVideo {
	out := make([]domain.MeditationVideo, 0, len(c.Videos))
	for _, v := range c.Videos {
		if phase == "" || v.Phase == phase || v.Phase == "" {
			out = append(out, v)
		}
	}
	return out
}

// ArticlesFor returns articles in category, or all of them when category is empty.
func (c Catalog) ArticlesFor(category string) []domain.Article {
	out := make([]domain.Article, 0, len(c.Articles))
	for _, a := range c.Articles {
		if category == "" || a.Category == category {
			out = append(out, a)
		}
	}
	return out
}
