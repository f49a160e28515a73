package css

import (
	"strconv"
	"strings"
)

// ValueType discriminates the typed value variants a declaration can
// carry.
type ValueType int

const (
	// KeywordValue is a bare identifier (e.g. "bold", "flex").
	KeywordValue ValueType = iota
	// AutoValue is the "auto" keyword, split out because layout
	// consumers branch on it constantly.
	AutoValue
	// PxValue is an absolute length in pixels.
	PxValue
	// PercentValue is a percentage of a property-dependent reference.
	PercentValue
	// VwValue is a percentage of the viewport width.
	VwValue
	// VhValue is a percentage of the viewport height.
	VhValue
	// EmValue is a multiple of the element's font size.
	EmValue
	// RemValue is a multiple of the root font size.
	RemValue
	// ColorValue is an RGBA color.
	ColorValue
	// NumberValue is a bare unitless number.
	NumberValue
)

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Value is a parsed declaration value. Number carries the numeric
// component for length, percentage and number variants; Keyword and
// Color are used by their respective variants. Raw always preserves
// the source text.
type Value struct {
	Type    ValueType
	Number  float64
	Keyword string
	Color   Color
	Raw     string
}

// ParseValue parses a single declaration value. Unrecognized input
// degrades to a keyword carrying the raw text, never an error:
// consumers that cannot interpret it treat the property as unset.
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)

	if lower == "auto" {
		return Value{Type: AutoValue, Raw: raw}
	}

	if c, ok := parseColor(lower); ok {
		return Value{Type: ColorValue, Color: c, Raw: raw}
	}

	for _, u := range []struct {
		suffix string
		typ    ValueType
	}{
		// rem before em: "2rem" also ends in "em".
		{"rem", RemValue},
		{"em", EmValue},
		{"px", PxValue},
		{"vw", VwValue},
		{"vh", VhValue},
		{"%", PercentValue},
	} {
		if strings.HasSuffix(lower, u.suffix) {
			num := strings.TrimSuffix(lower, u.suffix)
			if f, err := strconv.ParseFloat(num, 64); err == nil {
				return Value{Type: u.typ, Number: f, Raw: raw}
			}
		}
	}

	if f, err := strconv.ParseFloat(lower, 64); err == nil {
		return Value{Type: NumberValue, Number: f, Raw: raw}
	}

	return Value{Type: KeywordValue, Keyword: lower, Raw: raw}
}

// Px returns the pixel magnitude for absolute lengths and 0 for
// everything else.
func (v Value) Px() float64 {
	if v.Type == PxValue {
		return v.Number
	}
	return 0
}

// String returns the source text of the value.
func (v Value) String() string {
	return v.Raw
}
