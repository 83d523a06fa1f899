package tokens

import (
	"fmt"
	"log"
	"strings"

	"github.com/Legal-and-General/canopy-design-tokens/internal/figma"
	"github.com/Legal-and-General/canopy-design-tokens/internal/graph"
)

// Collections that appear in the output, keyed by display name. Link and
// Link menu variables are folded into Component themes before this filter
// applies; everything else outside the list is dropped after building.
var outputCollections = map[string]bool{
	graph.CollectionColour: true,
	graph.CollectionThemes: true,
	"Foundations":          true,
	"Layout":               true,
	"Typography":           true,
}

// Stats summarizes a build pass for the end-of-run report.
type Stats struct {
	Produced   int
	Skipped    int
	Unresolved int
	Overwrites int
	PerTree    map[string]int
}

// Builder runs the single-pass expansion over every variable in the graph.
type Builder struct {
	idx *graph.Index
	res *Resolver
}

func NewBuilder(idx *graph.Index) *Builder {
	return &Builder{idx: idx, res: NewResolver(idx)}
}

// Resolver exposes the builder's shared resolver (the renderers and tests
// resolve individual ids through the same memo cache).
func (b *Builder) Resolver() *Resolver { return b.res }

// Build expands every variable into its applicable mode combinations and
// returns one token tree per output collection. The only fatal condition is a
// reserved path segment; unresolved aliases and naming violations degrade to
// omitted tokens.
func (b *Builder) Build() (map[string]*Tree, Stats, error) {
	trees := map[string]*Tree{}
	stats := Stats{PerTree: map[string]int{}}
	tree := func(name string) *Tree {
		t, ok := trees[name]
		if !ok {
			t = NewTree()
			trees[name] = t
		}
		return t
	}

	for _, cid := range b.idx.SortedCollectionIDs() {
		c := b.idx.Collections[cid]
		policy := b.idx.Policies[cid]
		for _, vid := range b.idx.ByCollection[cid] {
			v := b.idx.Variables[vid]
			segs := Segments(v.Name)
			if len(segs) == 0 {
				stats.Skipped++
				continue
			}
			if strings.Contains(segs[len(segs)-1], " ") {
				log.Printf("tokens: skipping %q: final name segment contains a space", v.Name)
				stats.Skipped++
				continue
			}

			var err error
			switch policy {
			case graph.PolicyTheme:
				err = b.themeVariable(tree(graph.CollectionThemes), c, v, segs, &stats)
			case graph.PolicyLink:
				err = b.linkVariable(tree(graph.CollectionThemes), v, segs, &stats)
			default:
				err = b.standardVariable(tree(c.Name), c, v, segs, &stats)
			}
			if err != nil {
				return nil, stats, fmt.Errorf("tokens: variable %q: %w", v.Name, err)
			}
		}
	}

	for name, t := range trees {
		if !outputCollections[name] {
			delete(trees, name)
			continue
		}
		stats.Overwrites += t.Overwrites()
		stats.PerTree[name] = t.Len()
	}
	return trees, stats, nil
}

// standardVariable emits one token per declared mode. The mode display name
// becomes a trailing path segment only when the collection declares more than
// one mode; single-mode collections collapse to a single canonical value.
func (b *Builder) standardVariable(t *Tree, c figma.Collection, v figma.Variable, segs []string, stats *Stats) error {
	multiMode := len(c.Modes) > 1
	for _, m := range c.Modes {
		raw, present := v.ValuesByMode[m.ModeID]
		if !present || raw == nil {
			continue
		}
		value, ok := b.resolveRaw(v, raw, contextFor(c.Name, m.ModeID))
		if !ok {
			stats.Unresolved++
			continue
		}
		path := segs
		if multiMode {
			path = appendSegs(segs, m.Name)
		}
		if err := t.Insert(path, b.token(v, value)); err != nil {
			return err
		}
		stats.Produced++
	}
	return nil
}

// themeVariable expands a Component-themes variable: its own declared modes
// are theme modes, each crossed with the status dimension for status-flavored
// names, or the colour dimension otherwise.
func (b *Builder) themeVariable(t *Tree, c figma.Collection, v figma.Variable, segs []string, stats *Stats) error {
	expansion := b.expansionDim(v)
	for _, tm := range c.Modes {
		raw, present := v.ValuesByMode[tm.ModeID]
		if !present || raw == nil {
			continue
		}
		for _, em := range expansion {
			mc := ModeContext{Theme: tm.ModeID}
			b.setExpansionMode(&mc, v, em)
			value, ok := b.resolveRaw(v, raw, mc)
			if !ok {
				stats.Unresolved++
				continue
			}
			if err := t.Insert(appendSegs(segs, tm.Name, em.Name), b.token(v, value)); err != nil {
				return err
			}
			stats.Produced++
		}
	}
	return nil
}

// linkVariable expands a Link or Link-menu variable, which declares a single
// default mode but must appear under every theme x colour (or theme x status)
// combination used elsewhere. The outer loop runs over the theme dimension,
// not the variable's own modes.
func (b *Builder) linkVariable(t *Tree, v figma.Variable, segs []string, stats *Stats) error {
	modeID, ok := b.idx.FirstModeID(v)
	if !ok {
		return nil
	}
	raw := v.ValuesByMode[modeID]
	if raw == nil {
		return nil
	}
	expansion := b.expansionDim(v)
	for _, tm := range b.idx.Dimensions.Theme {
		for _, em := range expansion {
			mc := ModeContext{Theme: tm.ModeID}
			b.setExpansionMode(&mc, v, em)
			value, ok := b.resolveRaw(v, raw, mc)
			if !ok {
				stats.Unresolved++
				continue
			}
			if err := t.Insert(appendSegs(segs, tm.Name, em.Name), b.token(v, value)); err != nil {
				return err
			}
			stats.Produced++
		}
	}
	return nil
}

// expansionDim picks the second dimension for theme-bearing expansion: status
// for variables whose name marks them as status-flavored, colour otherwise.
func (b *Builder) expansionDim(v figma.Variable) []graph.ModeRef {
	if strings.Contains(strings.ToLower(v.Name), "status") {
		return b.idx.Dimensions.Status
	}
	return b.idx.Dimensions.Color
}

func (b *Builder) setExpansionMode(mc *ModeContext, v figma.Variable, em graph.ModeRef) {
	if strings.Contains(strings.ToLower(v.Name), "status") {
		mc.Status = em.ModeID
	} else {
		mc.Color = em.ModeID
	}
}

// resolveRaw resolves one raw value under a mode context: aliases go through
// the resolver, concrete values are converted under the variable's own type.
func (b *Builder) resolveRaw(v figma.Variable, raw any, mc ModeContext) (any, bool) {
	if aliasID, isAlias := figma.AliasID(raw); isAlias {
		return b.res.Resolve(aliasID, mc)
	}
	return Convert(v.ResolvedType, raw)
}

func (b *Builder) token(v figma.Variable, value any) Token {
	return Token{
		Value:       value,
		Type:        Kind(v.ResolvedType, v.Name),
		Description: strings.TrimSpace(v.Description),
	}
}

func contextFor(collectionName, modeID string) ModeContext {
	switch collectionName {
	case graph.CollectionColour:
		return ModeContext{Color: modeID}
	case graph.CollectionStatus:
		return ModeContext{Status: modeID}
	case graph.CollectionThemes:
		return ModeContext{Theme: modeID}
	default:
		return ModeContext{}
	}
}

func appendSegs(segs []string, extra ...string) []string {
	path := make([]string, 0, len(segs)+len(extra))
	path = append(path, segs...)
	return append(path, extra...)
}
