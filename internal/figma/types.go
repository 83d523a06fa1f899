// Package figma models the raw variable graph returned by the design tool's
// local-variables endpoint and the authenticated client that fetches it.
package figma

// Declared value types carried by a variable. The type is fixed across all of
// a variable's modes.
const (
	TypeColor   = "COLOR"
	TypeFloat   = "FLOAT"
	TypeString  = "STRING"
	TypeBoolean = "BOOLEAN"
)

// aliasMarker is the discriminator carried by raw values that reference
// another variable instead of holding a literal.
const aliasMarker = "VARIABLE_ALIAS"

// VariablesResponse is the top-level payload of the local-variables endpoint.
type VariablesResponse struct {
	Error  bool   `json:"error,omitempty"`
	Status int    `json:"status,omitempty"`
	Meta   *Meta  `json:"meta"`
	Msg    string `json:"message,omitempty"`
}

// Meta carries the two maps that make up the raw graph.
type Meta struct {
	Variables           map[string]Variable   `json:"variables"`
	VariableCollections map[string]Collection `json:"variableCollections"`
}

// Variable is a named, typed design value with per-mode raw values. A raw
// value is either a concrete literal (color object, number, string, bool) or
// an alias marker referencing another variable's id.
type Variable struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Key                  string         `json:"key,omitempty"`
	VariableCollectionID string         `json:"variableCollectionId"`
	ResolvedType         string         `json:"resolvedType"`
	Description          string         `json:"description,omitempty"`
	ValuesByMode         map[string]any `json:"valuesByMode"`
}

// Collection owns an ordered list of modes plus the variables that vary
// across them. A mode id is only meaningful relative to its owning collection.
type Collection struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Key           string `json:"key,omitempty"`
	Modes         []Mode `json:"modes"`
	DefaultModeID string `json:"defaultModeId,omitempty"`
}

// Mode is one named variant within a collection's dimension.
type Mode struct {
	ModeID string `json:"modeId"`
	Name   string `json:"name"`
}

// AliasID reports whether a raw value is an alias marker, and if so, the id
// of the referenced variable.
func AliasID(raw any) (string, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}
	if t, _ := m["type"].(string); t != aliasMarker {
		return "", false
	}
	id, _ := m["id"].(string)
	if id == "" {
		return "", false
	}
	return id, true
}

// ColorComponents extracts the 0-1 floating channel components from a raw
// COLOR literal. The alpha channel, when present, is ignored.
func ColorComponents(raw any) (r, g, b float64, ok bool) {
	m, okMap := raw.(map[string]any)
	if !okMap {
		return 0, 0, 0, false
	}
	r, okR := number(m["r"])
	g, okG := number(m["g"])
	b, okB := number(m["b"])
	if !okR || !okG || !okB {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

func number(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
