// Package tokens is the resolution and expansion engine: it turns the indexed
// variable graph into per-collection trees of fully resolved tokens, combining
// independent mode dimensions and following alias chains under a mode context.
package tokens

import (
	"regexp"
	"strings"

	"github.com/Legal-and-General/canopy-design-tokens/internal/figma"
)

// Token is the terminal artifact: a concrete value plus advisory metadata.
type Token struct {
	Value       any    `json:"value"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Kind classifies a token from its variable's declared type and name. The
// classification is advisory metadata only; it never affects resolution.
func Kind(resolvedType, name string) string {
	n := strings.ToLower(name)
	switch resolvedType {
	case figma.TypeColor:
		return "color"
	case figma.TypeBoolean:
		return "boolean"
	case figma.TypeFloat:
		switch {
		case strings.Contains(n, "font") && strings.Contains(n, "size"):
			return "fontSizes"
		case strings.Contains(n, "space") || strings.Contains(n, "padding") || strings.Contains(n, "margin"):
			return "spacing"
		case strings.Contains(n, "border") && strings.Contains(n, "radius"):
			return "borderRadius"
		default:
			return "sizing"
		}
	case figma.TypeString:
		if strings.Contains(n, "font") && strings.Contains(n, "family") {
			return "fontFamilies"
		}
		return "other"
	default:
		return "other"
	}
}

var (
	sepRe    = regexp.MustCompile(`\s*/\s*`)
	hyphenRe = regexp.MustCompile(`\s*-\s*`)
)

// Segments splits a variable name into its path segments: path separators are
// normalized to "/", whitespace around separators and hyphens is collapsed,
// and empty segments are dropped.
func Segments(name string) []string {
	n := strings.ReplaceAll(name, "\\", "/")
	n = sepRe.ReplaceAllString(n, "/")
	n = hyphenRe.ReplaceAllString(n, "-")
	parts := strings.Split(n, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}
