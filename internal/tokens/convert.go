package tokens

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Legal-and-General/canopy-design-tokens/internal/figma"
)

// Convert turns a concrete (non-alias) raw value into its canonical token
// value, keyed by the declared type of the variable holding it. A nil raw
// value, or one that cannot be coerced, yields no value; the caller omits the
// token rather than failing the run.
func Convert(resolvedType string, raw any) (any, bool) {
	if raw == nil {
		return nil, false
	}
	switch resolvedType {
	case figma.TypeColor:
		r, g, b, ok := figma.ColorComponents(raw)
		if !ok {
			return nil, false
		}
		return hexColor(r, g, b), true
	case figma.TypeFloat:
		switch v := raw.(type) {
		case float64:
			return v, true
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, false
			}
			return f, true
		default:
			return nil, false
		}
	case figma.TypeString:
		if s, ok := raw.(string); ok {
			return s, true
		}
		return fmt.Sprintf("%v", raw), true
	case figma.TypeBoolean:
		switch v := raw.(type) {
		case bool:
			return v, true
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, false
			}
			return b, true
		case float64:
			return v != 0, true
		default:
			return nil, false
		}
	default:
		// Unknown declared types pass through unchanged.
		return raw, true
	}
}

// hexColor renders 0-1 channel components as a lowercase hex string, each
// channel scaled to 0-255, rounded and zero-padded.
func hexColor(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(r), channel(g), channel(b))
}

func channel(c float64) int {
	n := int(math.Round(c * 255))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}
