package graph

import (
	"errors"
	"testing"

	"github.com/Legal-and-General/canopy-design-tokens/internal/figma"
)

func testGraph() *figma.VariablesResponse {
	return &figma.VariablesResponse{Meta: &figma.Meta{
		Variables: map[string]figma.Variable{
			"v2": {ID: "v2", Name: "brand/tint/2", VariableCollectionID: "c1", ResolvedType: figma.TypeColor, ValuesByMode: map[string]any{"m1": map[string]any{"r": 0.0, "g": 0.0, "b": 1.0}}},
			"v1": {ID: "v1", Name: "brand/tint/1", VariableCollectionID: "c1", ResolvedType: figma.TypeColor, ValuesByMode: map[string]any{"m1": map[string]any{"r": 1.0, "g": 0.0, "b": 0.0}}},
		},
		VariableCollections: map[string]figma.Collection{
			"c1": {ID: "c1", Name: "Colour", Modes: []figma.Mode{{ModeID: "m1", Name: "Blue"}, {ModeID: "m2", Name: "Green"}}},
			"c2": {ID: "c2", Name: "Component themes", Modes: []figma.Mode{{ModeID: "t1", Name: "Neutral"}}},
			"c3": {ID: "c3", Name: "Link", Modes: []figma.Mode{{ModeID: "d1", Name: "Default"}}},
		},
	}}
}

func TestLoadRejectsMissingStructure(t *testing.T) {
	cases := []*figma.VariablesResponse{
		nil,
		{},
		{Meta: &figma.Meta{VariableCollections: map[string]figma.Collection{}}},
		{Meta: &figma.Meta{Variables: map[string]figma.Variable{}}},
	}
	for i, resp := range cases {
		_, err := Load(resp)
		var se *StructureError
		if !errors.As(err, &se) {
			t.Fatalf("case %d: expected StructureError, got %v", i, err)
		}
	}
}

func TestLoadBuildsIndexes(t *testing.T) {
	x, err := Load(testGraph())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := x.ByCollection["c1"]; len(got) != 2 || got[0] != "v1" || got[1] != "v2" {
		t.Fatalf("ByCollection order = %v", got)
	}
	if x.Policies["c1"] != PolicyStandard || x.Policies["c2"] != PolicyTheme || x.Policies["c3"] != PolicyLink {
		t.Fatalf("policies = %v", x.Policies)
	}
}

func TestDimensionsFromDesignatedCollections(t *testing.T) {
	x, err := Load(testGraph())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(x.Dimensions.Color) != 2 || x.Dimensions.Color[0] != (ModeRef{Name: "Blue", ModeID: "m1"}) {
		t.Fatalf("color dimension = %v", x.Dimensions.Color)
	}
	if len(x.Dimensions.Theme) != 1 || x.Dimensions.Theme[0].ModeID != "t1" {
		t.Fatalf("theme dimension = %v", x.Dimensions.Theme)
	}
	// "Status" is absent: placeholder names with empty mode ids.
	if len(x.Dimensions.Status) != 4 {
		t.Fatalf("status placeholders = %v", x.Dimensions.Status)
	}
	for _, m := range x.Dimensions.Status {
		if m.ModeID != "" || m.Name == "" {
			t.Fatalf("placeholder entry = %+v", m)
		}
	}
}

func TestFirstModeIDUsesDeclarationOrder(t *testing.T) {
	x, err := Load(testGraph())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	v := figma.Variable{
		VariableCollectionID: "c1",
		// No value under m1: first declared mode with a value is m2.
		ValuesByMode: map[string]any{"m2": 1.0},
	}
	if id, ok := x.FirstModeID(v); !ok || id != "m2" {
		t.Fatalf("FirstModeID = %q, %v", id, ok)
	}
	// Unknown collection: lexicographically first key.
	v = figma.Variable{VariableCollectionID: "nope", ValuesByMode: map[string]any{"z": 1.0, "a": 2.0}}
	if id, ok := x.FirstModeID(v); !ok || id != "a" {
		t.Fatalf("FirstModeID fallback = %q, %v", id, ok)
	}
	if _, ok := x.FirstModeID(figma.Variable{}); ok {
		t.Fatal("empty value map should report no mode")
	}
}
