package css

import (
	"strconv"
	"strings"
)

// namedColors maps CSS color keywords to RGBA values. The basic CSS
// palette plus the extended names that show up in real stylesheets;
// unknown names simply stay keywords.
var namedColors = map[string]Color{
	"black":   {0, 0, 0, 255},
	"silver":  {192, 192, 192, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"white":   {255, 255, 255, 255},
	"maroon":  {128, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"purple":  {128, 0, 128, 255},
	"fuchsia": {255, 0, 255, 255},
	"green":   {0, 128, 0, 255},
	"lime":    {0, 255, 0, 255},
	"olive":   {128, 128, 0, 255},
	"yellow":  {255, 255, 0, 255},
	"navy":    {0, 0, 128, 255},
	"blue":    {0, 0, 255, 255},
	"teal":    {0, 128, 128, 255},
	"aqua":    {0, 255, 255, 255},

	"orange":      {255, 165, 0, 255},
	"brown":       {165, 42, 42, 255},
	"crimson":     {220, 20, 60, 255},
	"coral":       {255, 127, 80, 255},
	"gold":        {255, 215, 0, 255},
	"indigo":      {75, 0, 130, 255},
	"ivory":       {255, 255, 240, 255},
	"khaki":       {240, 230, 140, 255},
	"lavender":    {230, 230, 250, 255},
	"magenta":     {255, 0, 255, 255},
	"cyan":        {0, 255, 255, 255},
	"orchid":      {218, 112, 214, 255},
	"pink":        {255, 192, 203, 255},
	"plum":        {221, 160, 221, 255},
	"salmon":      {250, 128, 114, 255},
	"skyblue":     {135, 206, 235, 255},
	"slategray":   {112, 128, 144, 255},
	"tan":         {210, 180, 140, 255},
	"tomato":      {255, 99, 71, 255},
	"turquoise":   {64, 224, 208, 255},
	"violet":      {238, 130, 238, 255},
	"wheat":       {245, 222, 179, 255},
	"whitesmoke":  {245, 245, 245, 255},
	"transparent": {0, 0, 0, 0},
}

// parseColor recognizes named colors, #rgb / #rrggbb hex notation, and
// rgb()/rgba() functional notation. The input must already be
// lowercased.
func parseColor(s string) (Color, bool) {
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBColor(s)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if !okR || !okG || !okB {
			return Color{}, false
		}
		return Color{r * 17, g * 17, b * 17, 255}, true
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, false
		}
		return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
	}
	return Color{}, false
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}

func parseRGBColor(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close <= open {
		return Color{}, false
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, false
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return Color{}, false
		}
		channels[i] = uint8(n)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, false
		}
		alpha = uint8(a*255 + 0.5)
	}
	return Color{channels[0], channels[1], channels[2], alpha}, true
}
