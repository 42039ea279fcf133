package registry

import (
	"fmt"
	"sync"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/errors"
)

// All is the sentinel for "every category" or "every role" in axis and
// matrix lookups.
var All = allValues{}

type allValues struct{}

type pairKey struct {
	category domain.Category
	role     domain.Role
}

// Registry answers (category, role) descriptor lookups. Build it once with
// New or use the process-wide Default; it is immutable afterwards.
type Registry struct {
	byPair map[pairKey]Descriptor
	specs  map[domain.Category]CategorySpec
}

// defaultRegistry memoizes the build; the registration table is static so
// one scan per process is enough.
var defaultRegistry = sync.OnceValue(New)

// Default returns the shared process-wide registry.
func Default() *Registry {
	return defaultRegistry()
}

// New builds a registry from the static registration table.
func New() *Registry {
	r := &Registry{
		byPair: make(map[pairKey]Descriptor),
		specs:  make(map[domain.Category]CategorySpec),
	}
	for _, spec := range categorySpecs() {
		// Resolve behavior flags once so hot paths read the spec instead
		// of re-deriving them from the enum.
		spec.HasRedo = spec.Category.HasRedo()
		spec.SpecificUnit = spec.Category.SpecificUnit()
		r.specs[spec.Category] = spec
		for _, role := range spec.Roles {
			d := Descriptor{
				Category:  spec.Category,
				Role:      role,
				Name:      fmt.Sprintf("%s/%s", spec.Category, role),
				KeyPrefix: fmt.Sprintf("%s:%s:", rolePrefixes[role], spec.Category),
			}
			r.byPair[pairKey{spec.Category, role}] = d
		}
	}
	return r
}

// Get returns the unique descriptor for a (category, role) pair. A miss is
// not an error: it means the category has no such facet.
func (r *Registry) Get(category domain.Category, role domain.Role) (Descriptor, bool) {
	d, ok := r.byPair[pairKey{category, role}]
	return d, ok
}

// Spec returns the per-category behavior bundle.
func (r *Registry) Spec(category domain.Category) (CategorySpec, bool) {
	s, ok := r.specs[category]
	return s, ok
}

// TimeRule returns the category's time rule, or a zero-contribution rule
// for unknown categories.
func (r *Registry) TimeRule(category domain.Category) TimeRule {
	if s, ok := r.specs[category]; ok {
		return s.TimeRule
	}
	return ConstantRule(0)
}

// ForAxis returns descriptors along one axis. Exactly one argument must be
// a single Category or Role (the fixed axis) and the other a slice of the
// opposite type or the All sentinel (the varying axis). Anything else is a
// caller bug and fails fast with a configuration error before any lookup.
// The result is ordered by the varying values; pairs the fixed value does
// not expose are skipped.
func (r *Registry) ForAxis(fixed, varying any) ([]Descriptor, error) {
	switch f := fixed.(type) {
	case domain.Category:
		roles, err := r.roleAxis(varying, f)
		if err != nil {
			return nil, err
		}
		out := make([]Descriptor, 0, len(roles))
		for _, role := range roles {
			if d, ok := r.Get(f, role); ok {
				out = append(out, d)
			}
		}
		return out, nil
	case domain.Role:
		categories, err := r.categoryAxis(varying)
		if err != nil {
			return nil, err
		}
		out := make([]Descriptor, 0, len(categories))
		for _, c := range categories {
			if d, ok := r.Get(c, f); ok {
				out = append(out, d)
			}
		}
		return out, nil
	default:
		return nil, errors.Configurationf(
			"registry: fixed axis must be a single Category or Role, got %T", fixed)
	}
}

// Matrix returns a Category → Role → Descriptor lookup. Each argument may
// be a single value, a slice, or the All sentinel; invalid argument types
// fail fast with a configuration error. Missing pairs are simply absent
// from the result.
func (r *Registry) Matrix(categories, roles any) (map[domain.Category]map[domain.Role]Descriptor, error) {
	cats, err := r.categoryValues(categories)
	if err != nil {
		return nil, err
	}
	rs, err := r.roleValues(roles)
	if err != nil {
		return nil, err
	}

	out := make(map[domain.Category]map[domain.Role]Descriptor, len(cats))
	for _, c := range cats {
		for _, role := range rs {
			d, ok := r.Get(c, role)
			if !ok {
				continue
			}
			if out[c] == nil {
				out[c] = make(map[domain.Role]Descriptor)
			}
			out[c][role] = d
		}
	}
	return out, nil
}

// RoleMap is the flat form of Matrix for one fixed category.
func (r *Registry) RoleMap(category domain.Category, roles any) (map[domain.Role]Descriptor, error) {
	rs, err := r.roleValues(roles)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Role]Descriptor, len(rs))
	for _, role := range rs {
		if d, ok := r.Get(category, role); ok {
			out[role] = d
		}
	}
	return out, nil
}

// CategoryMap is the flat form of Matrix for one fixed role.
func (r *Registry) CategoryMap(role domain.Role, categories any) (map[domain.Category]Descriptor, error) {
	cats, err := r.categoryValues(categories)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Category]Descriptor, len(cats))
	for _, c := range cats {
		if d, ok := r.Get(c, role); ok {
			out[c] = d
		}
	}
	return out, nil
}

// roleAxis interprets the varying side of ForAxis when the fixed side is a
// category. Single values are rejected: a single/single call is the
// classic misuse ForAxis exists to catch.
func (r *Registry) roleAxis(varying any, fixed domain.Category) ([]domain.Role, error) {
	switch v := varying.(type) {
	case []domain.Role:
		return v, nil
	case allValues:
		if s, ok := r.specs[fixed]; ok {
			return s.Roles, nil
		}
		return nil, nil
	case domain.Role, domain.Category, []domain.Category:
		return nil, errors.Configurationf(
			"registry: varying axis must be []Role or All when fixed is a Category, got %T", varying)
	default:
		return nil, errors.Configurationf(
			"registry: unsupported varying axis type %T", varying)
	}
}

// categoryAxis interprets the varying side of ForAxis when the fixed side
// is a role.
func (r *Registry) categoryAxis(varying any) ([]domain.Category, error) {
	switch v := varying.(type) {
	case []domain.Category:
		return v, nil
	case allValues:
		return domain.Categories(), nil
	case domain.Category, domain.Role, []domain.Role:
		return nil, errors.Configurationf(
			"registry: varying axis must be []Category or All when fixed is a Role, got %T", varying)
	default:
		return nil, errors.Configurationf(
			"registry: unsupported varying axis type %T", varying)
	}
}

// categoryValues widens a Matrix argument to a category list.
func (r *Registry) categoryValues(arg any) ([]domain.Category, error) {
	switch v := arg.(type) {
	case domain.Category:
		return []domain.Category{v}, nil
	case []domain.Category:
		return v, nil
	case allValues:
		return domain.Categories(), nil
	default:
		return nil, errors.Configurationf(
			"registry: categories must be Category, []Category, or All, got %T", arg)
	}
}

// roleValues widens a Matrix argument to a role list.
func (r *Registry) roleValues(arg any) ([]domain.Role, error) {
	switch v := arg.(type) {
	case domain.Role:
		return []domain.Role{v}, nil
	case []domain.Role:
		return v, nil
	case allValues:
		return domain.Roles(), nil
	default:
		return nil, errors.Configurationf(
			"registry: roles must be Role, []Role, or All, got %T", arg)
	}
}
