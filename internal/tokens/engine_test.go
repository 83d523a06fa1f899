package tokens

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Legal-and-General/canopy-design-tokens/internal/figma"
	"github.com/Legal-and-General/canopy-design-tokens/internal/graph"
)

func TestBuildColourTree(t *testing.T) {
	trees, stats, err := NewBuilder(loadIndex(t, colourMeta())).Build()
	require.NoError(t, err)
	require.Equal(t, 2, stats.Produced)

	tr := trees[graph.CollectionColour]
	require.NotNil(t, tr)
	b, err := tr.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t,
		`{"brand":{"tint":{"1":{
			"Blue":{"value":"#d2effb","type":"color"},
			"Green":{"value":"#dff6eb","type":"color"}}}}}`,
		string(b))
}

func TestBuildIsIdempotent(t *testing.T) {
	build := func() string {
		trees, _, err := NewBuilder(loadIndex(t, colourMeta())).Build()
		require.NoError(t, err)
		b, err := trees[graph.CollectionColour].MarshalJSON()
		require.NoError(t, err)
		return string(b)
	}
	require.Equal(t, build(), build())
}

func TestSingleModeCollectionOmitsModeSegment(t *testing.T) {
	meta := &figma.Meta{
		Variables: map[string]figma.Variable{
			"v": {ID: "v", Name: "spacer/size-1", VariableCollectionID: "c", ResolvedType: figma.TypeFloat,
				ValuesByMode: map[string]any{"m": 8.0}},
		},
		VariableCollections: map[string]figma.Collection{
			"c": {ID: "c", Name: "Layout", Modes: []figma.Mode{{ModeID: "m", Name: "Default"}}},
		},
	}
	trees, _, err := NewBuilder(loadIndex(t, meta)).Build()
	require.NoError(t, err)
	tok, ok := trees["Layout"].Lookup("spacer", "size-1")
	require.True(t, ok, "single-mode collections collapse to the bare name path")
	require.Equal(t, 8.0, tok.Value)
	require.Equal(t, "spacing", tok.Type)
}

func themedMeta() *figma.Meta {
	meta := colourMeta()
	// Two more colour modes so the colour dimension has four entries.
	col := meta.VariableCollections["c-col"]
	col.Modes = append(col.Modes, figma.Mode{ModeID: "m-teal", Name: "Teal"}, figma.Mode{ModeID: "m-purple", Name: "Purple"})
	meta.VariableCollections["c-col"] = col
	v := meta.Variables["VariableID:1:10"]
	v.ValuesByMode["m-teal"] = map[string]any{"r": 0.0, "g": 1.0, "b": 1.0}
	v.ValuesByMode["m-purple"] = map[string]any{"r": 1.0, "g": 0.0, "b": 1.0}
	meta.Variables["VariableID:1:10"] = v

	meta.VariableCollections["c-themes"] = figma.Collection{
		ID: "c-themes", Name: "Component themes", Modes: []figma.Mode{
			{ModeID: "t-neutral", Name: "Neutral"},
			{ModeID: "t-subtle", Name: "Subtle"},
			{ModeID: "t-bold", Name: "Bold"},
			{ModeID: "t-inverse", Name: "Neutral-inverse"},
		},
	}
	alias := map[string]any{"type": "VARIABLE_ALIAS", "id": "VariableID:1:10"}
	meta.Variables["VariableID:2:1"] = figma.Variable{
		ID: "VariableID:2:1", Name: "button/background", VariableCollectionID: "c-themes", ResolvedType: figma.TypeColor,
		ValuesByMode: map[string]any{"t-neutral": alias, "t-subtle": alias, "t-bold": alias, "t-inverse": alias},
	}
	return meta
}

func TestThemeExpansionCardinality(t *testing.T) {
	trees, _, err := NewBuilder(loadIndex(t, themedMeta())).Build()
	require.NoError(t, err)

	tr := trees[graph.CollectionThemes]
	require.NotNil(t, tr)
	// 4 theme modes x 4 colour modes.
	require.Equal(t, 16, tr.Len())

	tok, ok := tr.Lookup("button", "background", "Neutral", "Green")
	require.True(t, ok)
	require.Equal(t, "#dff6eb", tok.Value)
	tok, ok = tr.Lookup("button", "background", "Bold", "Blue")
	require.True(t, ok)
	require.Equal(t, "#d2effb", tok.Value)
}

func TestStatusFlavoredExpansion(t *testing.T) {
	meta := themedMeta()
	meta.VariableCollections["c-status"] = figma.Collection{
		ID: "c-status", Name: "Status", Modes: []figma.Mode{
			{ModeID: "s-ok", Name: "Success"},
			{ModeID: "s-err", Name: "Error"},
		},
	}
	meta.Variables["VariableID:3:1"] = figma.Variable{
		ID: "VariableID:3:1", Name: "status/indicator", VariableCollectionID: "c-status", ResolvedType: figma.TypeColor,
		ValuesByMode: map[string]any{
			"s-ok":  map[string]any{"r": 0.0, "g": 1.0, "b": 0.0},
			"s-err": map[string]any{"r": 1.0, "g": 0.0, "b": 0.0},
		},
	}
	meta.Variables["VariableID:2:2"] = figma.Variable{
		ID: "VariableID:2:2", Name: "banner/status/background", VariableCollectionID: "c-themes", ResolvedType: figma.TypeColor,
		ValuesByMode: map[string]any{
			"t-neutral": map[string]any{"type": "VARIABLE_ALIAS", "id": "VariableID:3:1"},
		},
	}
	trees, _, err := NewBuilder(loadIndex(t, meta)).Build()
	require.NoError(t, err)

	tr := trees[graph.CollectionThemes]
	tok, ok := tr.Lookup("banner", "status", "background", "Neutral", "Error")
	require.True(t, ok)
	require.Equal(t, "#ff0000", tok.Value)
	tok, ok = tr.Lookup("banner", "status", "background", "Neutral", "Success")
	require.True(t, ok)
	require.Equal(t, "#00ff00", tok.Value)
	// Status-flavored names never expand across the colour dimension.
	_, ok = tr.Lookup("banner", "status", "background", "Neutral", "Blue")
	require.False(t, ok)
}

func TestLinkExpansionRunsOverAllThemeModes(t *testing.T) {
	meta := themedMeta()
	meta.VariableCollections["c-link"] = figma.Collection{
		ID: "c-link", Name: "Link", Modes: []figma.Mode{{ModeID: "d", Name: "Default"}},
	}
	meta.Variables["VariableID:4:1"] = figma.Variable{
		ID: "VariableID:4:1", Name: "link/underline", VariableCollectionID: "c-link", ResolvedType: figma.TypeColor,
		ValuesByMode: map[string]any{"d": map[string]any{"type": "VARIABLE_ALIAS", "id": "VariableID:1:10"}},
	}
	trees, _, err := NewBuilder(loadIndex(t, meta)).Build()
	require.NoError(t, err)

	// Folded into the Component themes output, crossed theme x colour.
	tr := trees[graph.CollectionThemes]
	for _, theme := range []string{"Neutral", "Subtle", "Bold", "Neutral-inverse"} {
		tok, ok := tr.Lookup("link", "underline", theme, "Green")
		require.True(t, ok, "missing link token under theme %s", theme)
		require.Equal(t, "#dff6eb", tok.Value)
	}
	require.Nil(t, trees["Link"], "Link is not an output collection of its own")
}

func TestNamingViolationSkipped(t *testing.T) {
	meta := colourMeta()
	meta.Variables["bad"] = figma.Variable{
		ID: "bad", Name: "brand/bad name", VariableCollectionID: "c-col", ResolvedType: figma.TypeColor,
		ValuesByMode: map[string]any{"m-blue": map[string]any{"r": 0.0, "g": 0.0, "b": 0.0}},
	}
	trees, stats, err := NewBuilder(loadIndex(t, meta)).Build()
	require.NoError(t, err)
	require.Equal(t, 1, stats.Skipped)
	_, ok := trees[graph.CollectionColour].Lookup("brand", "bad name", "Blue")
	require.False(t, ok)
}

func TestUnresolvedAliasOmitted(t *testing.T) {
	meta := colourMeta()
	meta.Variables["dangling"] = figma.Variable{
		ID: "dangling", Name: "brand/dangling", VariableCollectionID: "c-col", ResolvedType: figma.TypeColor,
		ValuesByMode: map[string]any{"m-blue": map[string]any{"type": "VARIABLE_ALIAS", "id": "VariableID:404:404"}},
	}
	trees, stats, err := NewBuilder(loadIndex(t, meta)).Build()
	require.NoError(t, err)
	require.Equal(t, 1, stats.Unresolved)
	_, ok := trees[graph.CollectionColour].Lookup("brand", "dangling", "Blue")
	require.False(t, ok)
	// The rest of the run is unaffected.
	require.Equal(t, 2, stats.Produced)
}

func TestUnknownCollectionDroppedAfterProcessing(t *testing.T) {
	meta := colourMeta()
	meta.VariableCollections["c-prim"] = figma.Collection{
		ID: "c-prim", Name: "Primitives", Modes: []figma.Mode{{ModeID: "p", Name: "Default"}},
	}
	meta.Variables["prim"] = figma.Variable{
		ID: "prim", Name: "base/unit", VariableCollectionID: "c-prim", ResolvedType: figma.TypeFloat,
		ValuesByMode: map[string]any{"p": 4.0},
	}
	trees, stats, err := NewBuilder(loadIndex(t, meta)).Build()
	require.NoError(t, err)
	// Processed under the default policy, then dropped from the output map.
	require.Equal(t, 3, stats.Produced)
	require.Nil(t, trees["Primitives"])
}

func TestReservedSegmentIsFatal(t *testing.T) {
	meta := colourMeta()
	meta.Variables["evil"] = figma.Variable{
		ID: "evil", Name: "__proto__/pollution", VariableCollectionID: "c-col", ResolvedType: figma.TypeColor,
		ValuesByMode: map[string]any{"m-blue": map[string]any{"r": 0.0, "g": 0.0, "b": 0.0}},
	}
	_, _, err := NewBuilder(loadIndex(t, meta)).Build()
	require.Error(t, err)
	require.ErrorContains(t, err, "reserved path segment")
}
