package registry

import (
	"github.com/medialog/medialog-server/internal/domain"
)

// Minutes-per-unit constants for categories without per-item runtimes.
const (
	minutesPerPage    = 2.0
	minutesPerChapter = 8.0
)

// categorySpecs is the static registration table. It replaces the runtime
// class scan of earlier designs: the category set is closed, so every
// (category, role) pair is enumerated here and nowhere else.
func categorySpecs() []CategorySpec {
	episodeRuntime := func(item *domain.MediaItem) float64 {
		return float64(item.RuntimeMin)
	}
	playtime := func(_ *domain.MediaItem, entry *domain.ListEntry) float64 {
		return float64(entry.PlaytimeMin)
	}

	return []CategorySpec{
		{
			Category: domain.CategorySeries,
			Roles: []domain.Role{
				domain.RolePrimaryItem, domain.RoleListEntry, domain.RoleGenreTag,
				domain.RoleCastMember, domain.RoleLabelTag, domain.RoleSubUnitCount,
				domain.RoleNetwork,
			},
			TimeRule: ItemAttributeRule(episodeRuntime),
		},
		{
			Category: domain.CategoryAnime,
			Roles: []domain.Role{
				domain.RolePrimaryItem, domain.RoleListEntry, domain.RoleGenreTag,
				domain.RoleCastMember, domain.RoleLabelTag, domain.RoleSubUnitCount,
				domain.RoleOrganization,
			},
			TimeRule: ItemAttributeRule(episodeRuntime),
		},
		{
			Category: domain.CategoryMovies,
			Roles: []domain.Role{
				domain.RolePrimaryItem, domain.RoleListEntry, domain.RoleGenreTag,
				domain.RoleCastMember, domain.RoleLabelTag, domain.RoleOrganization,
			},
			TimeRule: ItemAttributeRule(func(item *domain.MediaItem) float64 {
				return float64(item.RuntimeMin)
			}),
		},
		{
			Category: domain.CategoryBooks,
			Roles: []domain.Role{
				domain.RolePrimaryItem, domain.RoleListEntry, domain.RoleGenreTag,
				domain.RoleLabelTag, domain.RoleAuthor, domain.RoleNetwork,
			},
			TimeRule: ConstantRule(minutesPerPage),
		},
		{
			Category: domain.CategoryGames,
			Roles: []domain.Role{
				domain.RolePrimaryItem, domain.RoleListEntry, domain.RoleGenreTag,
				domain.RoleLabelTag, domain.RolePlatform, domain.RoleOrganization,
			},
			TimeRule: ComputedRule(playtime),
		},
		{
			Category: domain.CategoryManga,
			Roles: []domain.Role{
				domain.RolePrimaryItem, domain.RoleListEntry, domain.RoleGenreTag,
				domain.RoleLabelTag, domain.RoleAuthor, domain.RoleNetwork,
				domain.RoleSubUnitCount,
			},
			TimeRule: ConstantRule(minutesPerChapter),
		},
	}
}

// rolePrefixes maps each role to the short key-prefix segment used when
// deriving a descriptor's store prefix ("entry:anime:", "item:books:", ...).
var rolePrefixes = map[domain.Role]string{
	domain.RolePrimaryItem:  "item",
	domain.RoleListEntry:    "entry",
	domain.RoleGenreTag:     "genre",
	domain.RoleCastMember:   "cast",
	domain.RoleLabelTag:     "label",
	domain.RoleSubUnitCount: "subunit",
	domain.RoleNetwork:      "network",
	domain.RolePlatform:     "platform",
	domain.RoleOrganization: "org",
	domain.RoleAuthor:       "author",
}
