package tokens

import (
	"log"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Legal-and-General/canopy-design-tokens/internal/figma"
	"github.com/Legal-and-General/canopy-design-tokens/internal/graph"
)

// ModeContext carries up to three named mode ids, one per dimension. An alias
// chain is resolved under a single context: when the chain passes through a
// variable of a designated collection, the matching context mode is selected
// instead of that variable's first declared mode. Empty fields are unset.
type ModeContext struct {
	Theme  string
	Color  string
	Status string
}

type resolved struct {
	value any
	ok    bool
}

// Resolver follows alias chains to concrete values. Results are memoized per
// (variable id, mode context); resolution is deterministic, so repeated
// expansions of shared aliases hit the cache.
type Resolver struct {
	idx       *graph.Index
	cache     *lru.Cache[string, resolved]
	sortedIDs []string
}

func NewResolver(idx *graph.Index) *Resolver {
	cache, _ := lru.New[string, resolved](4096)
	ids := make([]string, 0, len(idx.Variables))
	for id := range idx.Variables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return &Resolver{idx: idx, cache: cache, sortedIDs: ids}
}

// Lookup finds a variable by alias id through three tiers:
//
//  1. exact id match;
//  2. the segment after the last ":" delimiter, for composite id formats;
//  3. any indexed id that is a suffix or prefix of the alias id.
//
// The third tier is a compatibility shim for id-format drift across API
// versions, not a primary path; hits are logged.
func (r *Resolver) Lookup(id string) (figma.Variable, bool) {
	if v, ok := r.idx.Variable(id); ok {
		return v, true
	}
	if i := strings.LastIndex(id, ":"); i >= 0 {
		if v, ok := r.idx.Variable(id[i+1:]); ok {
			return v, true
		}
	}
	for _, key := range r.sortedIDs {
		if strings.HasSuffix(id, key) || strings.HasSuffix(key, id) {
			log.Printf("tokens: fuzzy id match %q -> %q", id, key)
			return r.idx.Variables[key], true
		}
	}
	return figma.Variable{}, false
}

// Resolve follows the alias chain starting at id under the given mode context
// and returns the canonical concrete value, or ok=false when the chain cannot
// be traced (missing reference, cycle, or null value).
func (r *Resolver) Resolve(id string, mc ModeContext) (any, bool) {
	key := id + "\x00" + mc.Theme + "\x00" + mc.Color + "\x00" + mc.Status
	if hit, ok := r.cache.Get(key); ok {
		return hit.value, hit.ok
	}
	value, ok := r.resolve(id, mc, map[string]bool{})
	r.cache.Add(key, resolved{value: value, ok: ok})
	return value, ok
}

func (r *Resolver) resolve(id string, mc ModeContext, seen map[string]bool) (any, bool) {
	v, found := r.Lookup(id)
	if !found {
		return nil, false
	}
	if seen[v.ID] {
		// Cycle: aliases cannot resolve through a repeated node.
		return nil, false
	}
	seen[v.ID] = true

	modeID := r.selectMode(v, mc)
	if modeID == "" {
		return nil, false
	}
	raw := v.ValuesByMode[modeID]
	if raw == nil {
		return nil, false
	}
	if aliasID, isAlias := figma.AliasID(raw); isAlias {
		// The context is never reset mid-chain: a Component-themes alias can
		// cross into a Colour variable and still pick the right sibling mode.
		return r.resolve(aliasID, mc, seen)
	}
	// Conversion is keyed by the declared type of the variable holding the
	// concrete value, not the originating variable's type.
	return Convert(v.ResolvedType, raw)
}

// selectMode picks the mode id to read from the target variable: the context
// mode matching the target's owning collection when both are present,
// otherwise the target's first declared mode.
func (r *Resolver) selectMode(v figma.Variable, mc ModeContext) string {
	if c, ok := r.idx.Collection(v.VariableCollectionID); ok {
		switch c.Name {
		case graph.CollectionThemes:
			if mc.Theme != "" {
				return mc.Theme
			}
		case graph.CollectionColour:
			if mc.Color != "" {
				return mc.Color
			}
		case graph.CollectionStatus:
			if mc.Status != "" {
				return mc.Status
			}
		}
	}
	first, _ := r.idx.FirstModeID(v)
	return first
}
