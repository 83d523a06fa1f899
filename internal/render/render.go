// Package render turns resolved token trees into the output artifacts
// consumed by downstream projects: per-collection stylesheets, a combined
// variable set, and a typed source module. Rendering is plain templating over
// fully resolved trees; no resolution happens here.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Legal-and-General/canopy-design-tokens/internal/jsonutil"
	"github.com/Legal-and-General/canopy-design-tokens/internal/tokens"
)

const header = "/* Generated by canopy-design-tokens. Do not edit by hand. */\n"

// Stylesheet renders one collection tree as CSS custom properties on :root.
func Stylesheet(collection string, tr *tokens.Tree) []byte {
	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteString(":root {\n")
	tr.Walk(func(path []string, tok tokens.Token) {
		fmt.Fprintf(&buf, "  --canopy-%s: %s;\n", ident(collection, path), cssValue(tok.Value))
	})
	buf.WriteString("}\n")
	return buf.Bytes()
}

// Combined renders every collection into a single SCSS variable set, grouped
// by collection in sorted order.
func Combined(trees map[string]*tokens.Tree) []byte {
	names := make([]string, 0, len(trees))
	for name := range trees {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteString(header)
	for _, name := range names {
		fmt.Fprintf(&buf, "\n// %s\n", name)
		trees[name].Walk(func(path []string, tok tokens.Token) {
			fmt.Fprintf(&buf, "$canopy-%s: %s;\n", ident(name, path), cssValue(tok.Value))
		})
	}
	return buf.Bytes()
}

// TypeScript renders the full token set as a typed constant module.
func TypeScript(trees map[string]*tokens.Tree) ([]byte, error) {
	payload := map[string]json.RawMessage{}
	for name, tr := range trees {
		b, err := tr.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("render: encode %s: %w", name, err)
		}
		payload[name] = b
	}
	body, err := jsonutil.MarshalNoEscapeIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: encode token set: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("// Generated by canopy-design-tokens. Do not edit by hand.\n\n")
	buf.WriteString("export const tokens = ")
	buf.Write(body)
	buf.WriteString(" as const;\n\nexport type Tokens = typeof tokens;\n")
	return buf.Bytes(), nil
}

// ident flattens a collection name and token path into a kebab-case variable
// identifier.
func ident(collection string, path []string) string {
	parts := append([]string{collection}, path...)
	for i, p := range parts {
		parts[i] = strings.Join(strings.Fields(strings.ToLower(p)), "-")
	}
	return strings.Join(parts, "-")
}

func cssValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
