// Package domain contains the core domain model for the MediaLog server.
package domain

// Category is one kind of tracked media. The set is closed and known at
// build time; new categories require a code change, not runtime registration.
type Category string

// Category constants for every tracked media kind.
const (
	CategorySeries Category = "series"
	CategoryAnime  Category = "anime"
	CategoryMovies Category = "movies"
	CategoryBooks  Category = "books"
	CategoryGames  Category = "games"
	CategoryManga  Category = "manga"
)

// Categories returns all categories in a stable order.
func Categories() []Category {
	return []Category{
		CategorySeries,
		CategoryAnime,
		CategoryMovies,
		CategoryBooks,
		CategoryGames,
		CategoryManga,
	}
}

// Valid returns true if the category is a recognized value.
func (c Category) Valid() bool {
	switch c {
	case CategorySeries, CategoryAnime, CategoryMovies, CategoryBooks, CategoryGames, CategoryManga:
		return true
	default:
		return false
	}
}

// Status is the position of a list entry in the user's workflow.
// Which statuses are valid depends on the category (watch categories use
// "watching", reading categories "reading", games "playing").
type Status string

// Status constants across all categories.
const (
	StatusWatching  Status = "watching"
	StatusReading   Status = "reading"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on_hold"
	StatusDropped   Status = "dropped"
	StatusPlanToDo  Status = "planned"
)

// Statuses returns the valid status set for the category, in display order.
func (c Category) Statuses() []Status {
	switch c {
	case CategoryBooks, CategoryManga:
		return []Status{StatusReading, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToDo}
	case CategoryGames:
		return []Status{StatusPlaying, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToDo}
	default:
		return []Status{StatusWatching, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToDo}
	}
}

// ValidStatus returns true if s is a valid status for the category.
func (c Category) ValidStatus(s Status) bool {
	for _, valid := range c.Statuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// HasRedo returns true if the category has a redo (rewatch/reread) concept.
// Games track playtime instead and have no redo counter.
func (c Category) HasRedo() bool {
	return c != CategoryGames
}

// HasSpecific returns true if the category has a cumulative progress unit
// (episodes, pages, chapters). Movies and games do not: a movie is watched
// or not, and games count playtime minutes directly.
func (c Category) HasSpecific() bool {
	switch c {
	case CategorySeries, CategoryAnime, CategoryBooks, CategoryManga:
		return true
	default:
		return false
	}
}

// SpecificUnit names the category's progress unit, or "" if none.
func (c Category) SpecificUnit() string {
	switch c {
	case CategorySeries, CategoryAnime:
		return "episodes"
	case CategoryBooks:
		return "pages"
	case CategoryManga:
		return "chapters"
	default:
		return ""
	}
}
