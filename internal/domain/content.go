package domain

// Recipe is a phase-aligned recipe.
type Recipe struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	ImageURL     string   `yaml:"imageUrl"`
	Ingredients  []string `yaml:"ingredients"`
	Instructions string   `yaml:"instructions"`
	Phase        string   `yaml:"phase"`
	Category     string   `yaml:"category"`
	PrepTime     int      `yaml:"prepTime"`
	Calories     int      `yaml:"calories"`
}

// MeditationVideo is a guided practice video. An empty Phase suits any phase.
type MeditationVideo struct {
	ID              string `yaml:"id"`
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	URL             string `yaml:"url"`
	ThumbnailURL    string `yaml:"thumbnailUrl"`
	Category        string `yaml:"category"`
	DurationSeconds int    `yaml:"durationSeconds"`
	Phase           string `yaml:"phase"`
}

// Article is an educational article.
type Article struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Summary  string `yaml:"summary"`
	Body     string `yaml:"body"`
	Category string `yaml:"category"`
	Phase    string `yaml:"phase"`
	ImageURL string `yaml:"imageUrl"`
}

// ContentFilter narrows content listings. Empty fields match everything.
type ContentFilter struct {
	Phase    string
	Category string
}
