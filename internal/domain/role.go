package domain

// Role is a structural facet a category may expose. Not every category
// exposes every role: books have no cast, games have no network.
type Role string

// Role constants for every structural facet.
const (
	RolePrimaryItem  Role = "primary_item"
	RoleListEntry    Role = "list_entry"
	RoleGenreTag     Role = "genre_tag"
	RoleCastMember   Role = "cast_member"
	RoleLabelTag     Role = "label_tag"
	RoleSubUnitCount Role = "sub_unit_count"
	RoleNetwork      Role = "network"
	RolePlatform     Role = "platform"
	RoleOrganization Role = "organization"
	RoleAuthor       Role = "author"
)

// Roles returns all roles in a stable order.
func Roles() []Role {
	return []Role{
		RolePrimaryItem,
		RoleListEntry,
		RoleGenreTag,
		RoleCastMember,
		RoleLabelTag,
		RoleSubUnitCount,
		RoleNetwork,
		RolePlatform,
		RoleOrganization,
		RoleAuthor,
	}
}

// Valid returns true if the role is a recognized value.
func (r Role) Valid() bool {
	for _, valid := range Roles() {
		if r == valid {
			return true
		}
	}
	return false
}
