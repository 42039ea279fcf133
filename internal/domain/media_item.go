package domain

// MediaItem is the primary item of a category: one show, movie, book,
// game, or manga in the shared catalog. List entries reference it by ID.
type MediaItem struct {
	Syncable
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	ReleaseYear int      `json:"release_year,omitempty"`

	// Units is the item's total progress length in the category's specific
	// unit (episodes, pages, chapters). Zero for movies and games.
	Units int `json:"units,omitempty"`

	// RuntimeMin is the runtime in minutes of one unit (an episode) or of
	// the whole item for movies. Unused for books, manga, and games.
	RuntimeMin int `json:"runtime_min,omitempty"`

	Genres []string `json:"genres,omitempty"`
	Labels []string `json:"labels,omitempty"`

	// Cast holds actor/voice-actor names for watch categories.
	Cast []string `json:"cast,omitempty"`

	// Network is the broadcaster or publisher, Platform the game platform,
	// Organization the studio or developer, Author the writer. Which of
	// these is populated depends on the category's roles.
	Network      string `json:"network,omitempty"`
	Platform     string `json:"platform,omitempty"`
	Organization string `json:"organization,omitempty"`
	Author       string `json:"author,omitempty"`

	// SubUnits breaks Units into seasons or volumes, e.g. episodes per
	// season for series. Ordered; the sum equals Units.
	SubUnits []int `json:"sub_units,omitempty"`
}
