// Package registry indexes entity descriptors by (category, role) so the
// same code can operate over every category's schema without knowing the
// category list at compile time. The index is built once from a static
// registration table and is read-only afterwards, so it is shared without
// locking.
package registry

import (
	"github.com/medialog/medialog-server/internal/domain"
)

// Descriptor is the schema handle for one (category, role) pair. The
// concrete shape behind it is owned by the category; the registry only
// indexes the handle. KeyPrefix is the store prefix for rows of this
// facet, e.g. "entry:anime:".
type Descriptor struct {
	Category  domain.Category `json:"category"`
	Role      domain.Role     `json:"role"`
	Name      string          `json:"name"`
	KeyPrefix string          `json:"key_prefix"`
}

// TimeRule computes the minutes an entry's progress contributes to
// time_spent. The rule set is closed: a constant per unit, a per-item
// attribute, or a function of the linked item and entry. Rules are
// resolved once per category when the registry is built.
type TimeRule struct {
	kind    timeRuleKind
	perUnit float64
	attr    func(*domain.MediaItem) float64
	compute func(*domain.MediaItem, *domain.ListEntry) float64
}

type timeRuleKind int

const (
	timeRuleConstant timeRuleKind = iota
	timeRuleItemAttribute
	timeRuleComputed
)

// ConstantRule multiplies progress by a fixed minutes-per-unit value.
func ConstantRule(minutesPerUnit float64) TimeRule {
	return TimeRule{kind: timeRuleConstant, perUnit: minutesPerUnit}
}

// ItemAttributeRule multiplies progress by an attribute of the linked item,
// such as its episode runtime.
func ItemAttributeRule(attr func(*domain.MediaItem) float64) TimeRule {
	return TimeRule{kind: timeRuleItemAttribute, attr: attr}
}

// ComputedRule derives the contribution directly from the item and entry,
// bypassing the progress × multiplier form.
func ComputedRule(fn func(*domain.MediaItem, *domain.ListEntry) float64) TimeRule {
	return TimeRule{kind: timeRuleComputed, compute: fn}
}

// Minutes returns the entry's time contribution under this rule.
// A nil item contributes nothing for item-dependent rules.
func (r TimeRule) Minutes(item *domain.MediaItem, entry *domain.ListEntry) float64 {
	switch r.kind {
	case timeRuleConstant:
		return float64(entry.Progress) * r.perUnit
	case timeRuleItemAttribute:
		if item == nil {
			return 0
		}
		return float64(entry.Progress) * r.attr(item)
	case timeRuleComputed:
		return r.compute(item, entry)
	default:
		return 0
	}
}

// CategorySpec bundles the per-category behavior the registry resolves at
// build time: which roles the category exposes, how progress converts to
// time, whether redo counts apply, and the progress unit if any.
type CategorySpec struct {
	Category     domain.Category
	Roles        []domain.Role
	TimeRule     TimeRule
	HasRedo      bool
	SpecificUnit string
}

// HasSpecific reports whether the category has a cumulative progress unit.
func (s CategorySpec) HasSpecific() bool {
	return s.SpecificUnit != ""
}

// HasRole reports whether the category exposes the given role.
func (s CategorySpec) HasRole(role domain.Role) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}
