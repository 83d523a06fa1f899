// Package graph validates and indexes the raw variable graph: variable and
// collection lookups, per-collection expansion policies, and the canonical
// mode lists for the three independent mode dimensions.
package graph

import (
	"sort"

	"github.com/Legal-and-General/canopy-design-tokens/internal/figma"
)

// Designated collection names. Each mode dimension's legal values are exactly
// the modes declared on one of these collections.
const (
	CollectionColour   = "Colour"
	CollectionStatus   = "Status"
	CollectionThemes   = "Component themes"
	CollectionLink     = "Link"
	CollectionLinkMenu = "Link menu"
)

// Policy selects how the engine expands a collection's variables across mode
// dimensions. It is chosen once per collection at load time.
type Policy int

const (
	// PolicyStandard emits one token per declared mode, no cross product.
	PolicyStandard Policy = iota
	// PolicyTheme crosses the variable's own theme modes with the colour or
	// status dimension.
	PolicyTheme
	// PolicyLink crosses all theme modes with the colour or status dimension;
	// the variable itself declares only a single default mode.
	PolicyLink
)

// StructureError reports a raw graph missing one of its required top-level
// maps. It is fatal for the run.
type StructureError struct {
	Field string
}

func (e *StructureError) Error() string {
	return "graph: raw graph is missing " + e.Field
}

// ModeRef names one mode of a dimension. ModeID is empty for placeholder
// entries synthesized when the designated collection is absent; downstream
// resolution then falls back to each variable's first declared mode.
type ModeRef struct {
	Name   string
	ModeID string
}

// Dimensions holds the canonical mode lists for the three independent mode
// dimensions, in declaration order.
type Dimensions struct {
	Color  []ModeRef
	Status []ModeRef
	Theme  []ModeRef
}

// Placeholder mode names used when the designated collection is not present
// in the graph.
var (
	defaultColorModes  = []string{"Blue", "Teal", "Green", "Purple"}
	defaultStatusModes = []string{"Information", "Success", "Warning", "Error"}
	defaultThemeModes  = []string{"Neutral", "Subtle", "Bold", "Neutral-inverse"}
)

// Index is the loader's output: immutable lookup structures over the raw
// graph, consumed by the resolution engine.
type Index struct {
	Variables    map[string]figma.Variable
	Collections  map[string]figma.Collection
	ByCollection map[string][]string // collection id -> variable ids, sorted
	Policies     map[string]Policy   // collection id -> expansion policy
	Dimensions   Dimensions
}

// Load validates the raw graph and builds the index. It fails with a
// StructureError if either required top-level map is absent; there is no
// partial processing.
func Load(resp *figma.VariablesResponse) (*Index, error) {
	if resp == nil || resp.Meta == nil {
		return nil, &StructureError{Field: "meta"}
	}
	if resp.Meta.Variables == nil {
		return nil, &StructureError{Field: "meta.variables"}
	}
	if resp.Meta.VariableCollections == nil {
		return nil, &StructureError{Field: "meta.variableCollections"}
	}

	x := &Index{
		Variables:    resp.Meta.Variables,
		Collections:  resp.Meta.VariableCollections,
		ByCollection: make(map[string][]string),
		Policies:     make(map[string]Policy),
	}
	for id, v := range x.Variables {
		x.ByCollection[v.VariableCollectionID] = append(x.ByCollection[v.VariableCollectionID], id)
	}
	// Stable traversal order: by variable name, then id.
	for _, ids := range x.ByCollection {
		sort.Slice(ids, func(i, j int) bool {
			a, b := x.Variables[ids[i]], x.Variables[ids[j]]
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		})
	}
	for id, c := range x.Collections {
		x.Policies[id] = policyFor(c.Name)
	}
	x.Dimensions = Dimensions{
		Color:  x.dimension(CollectionColour, defaultColorModes),
		Status: x.dimension(CollectionStatus, defaultStatusModes),
		Theme:  x.dimension(CollectionThemes, defaultThemeModes),
	}
	return x, nil
}

func policyFor(collectionName string) Policy {
	switch collectionName {
	case CollectionThemes:
		return PolicyTheme
	case CollectionLink, CollectionLinkMenu:
		return PolicyLink
	default:
		return PolicyStandard
	}
}

// dimension sources a mode dimension from the designated collection, falling
// back to named placeholders with empty mode ids when it is absent.
func (x *Index) dimension(collectionName string, placeholders []string) []ModeRef {
	if c, ok := x.CollectionByName(collectionName); ok && len(c.Modes) > 0 {
		refs := make([]ModeRef, 0, len(c.Modes))
		for _, m := range c.Modes {
			refs = append(refs, ModeRef{Name: m.Name, ModeID: m.ModeID})
		}
		return refs
	}
	refs := make([]ModeRef, 0, len(placeholders))
	for _, name := range placeholders {
		refs = append(refs, ModeRef{Name: name})
	}
	return refs
}

// Variable looks up a variable by exact id.
func (x *Index) Variable(id string) (figma.Variable, bool) {
	v, ok := x.Variables[id]
	return v, ok
}

// Collection looks up a collection by exact id.
func (x *Index) Collection(id string) (figma.Collection, bool) {
	c, ok := x.Collections[id]
	return c, ok
}

// CollectionByName finds the first collection with the given display name,
// preferring the lowest id when names collide.
func (x *Index) CollectionByName(name string) (figma.Collection, bool) {
	var best figma.Collection
	found := false
	for _, c := range x.Collections {
		if c.Name != name {
			continue
		}
		if !found || c.ID < best.ID {
			best = c
			found = true
		}
	}
	return best, found
}

// SortedCollectionIDs returns every collection id ordered by display name,
// then id, for deterministic single-pass traversal.
func (x *Index) SortedCollectionIDs() []string {
	ids := make([]string, 0, len(x.Collections))
	for id := range x.Collections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := x.Collections[ids[i]], x.Collections[ids[j]]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return ids
}

// FirstModeID returns the first declared mode id carrying a value for v:
// the owning collection's declaration order when known, otherwise the
// lexicographically first key of the value map.
func (x *Index) FirstModeID(v figma.Variable) (string, bool) {
	if len(v.ValuesByMode) == 0 {
		return "", false
	}
	if c, ok := x.Collections[v.VariableCollectionID]; ok {
		for _, m := range c.Modes {
			if _, present := v.ValuesByMode[m.ModeID]; present {
				return m.ModeID, true
			}
		}
	}
	keys := make([]string, 0, len(v.ValuesByMode))
	for k := range v.ValuesByMode {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], true
}
