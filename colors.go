package parley

import (
	"fmt"
	"strings"
)

// SGR style and color constructors. Each returns the full escape
// sequence, suitable for PaintText/PaintLine and the paint funnels.

var styleCodes = map[string]int{
	"reset":            0,
	"strong":           1,
	"faint":            2,
	"italic":           3,
	"underline":        4,
	"slow_blink":       5,
	"rapid_blink":      6,
	"reverse":          7,
	"conceal":          8,
	"strike":           9,
	"underline_double": 21,
	"reset_intensity":  22,
	"reset_italic":     23,
	"reset_underline":  24,
	"reset_blink":      25,
	"reset_reverse":    27,
	"reset_conceal":    28,
	"reset_strike":     29,
	"reset_fg_color":   39,
	"reset_bg_color":   48,
}

// Style returns the SGR sequence for a named style ("strong", "faint",
// "underline", ...). Unknown names yield an empty string.
func Style(name string) string {
	code, ok := styleCodes[name]
	if !ok {
		return ""
	}
	return GetControl('m', code)
}

// 4-bit table: [light][layer] with light dark=0/lite=1, layer fg=0/bg=1.
var basicCodes = map[string][2][2]int{
	"black":   {{30, 40}, {90, 100}},
	"red":     {{31, 41}, {91, 101}},
	"green":   {{32, 42}, {92, 102}},
	"yellow":  {{33, 43}, {93, 103}},
	"blue":    {{34, 44}, {94, 104}},
	"magenta": {{35, 45}, {95, 105}},
	"cyan":    {{36, 46}, {96, 106}},
	"white":   {{37, 47}, {97, 107}},
}

func basicCode(path string, layer int) (int, bool) {
	parts := strings.Split(path, ".")
	codes, ok := basicCodes[parts[0]]
	if !ok {
		return 0, false
	}
	light := 1
	for _, part := range parts[1:] {
		switch part {
		case "dark":
			light = 0
		case "lite":
			light = 1
		case "fg":
			layer = 0
		case "bg":
			layer = 1
		default:
			return 0, false
		}
	}
	return codes[light][layer], true
}

// ColorBasic returns a 4-bit color sequence from a path of the form
// "name[.dark|.lite][.fg|.bg]", defaulting to lite foreground.
//
//	ColorBasic("cyan")
//	ColorBasic("red.dark")
//	ColorBasic("yellow.lite.bg")
func ColorBasic(path string) string {
	code, ok := basicCode(path, 0)
	if !ok {
		return ""
	}
	return GetControl('m', code)
}

// ColorBasicBg is like ColorBasic but defaults to the background layer.
func ColorBasicBg(path string) string {
	code, ok := basicCode(path, 1)
	if !ok {
		return ""
	}
	return GetControl('m', code)
}

// ColorStandard returns an 8-bit foreground color sequence for a value
// in [0, 255].
func ColorStandard(part int) string {
	return GetControl('m', 38, 5, part)
}

// ColorStandardBg is the background variant of ColorStandard.
func ColorStandardBg(part int) string {
	return GetControl('m', 48, 5, part)
}

// ColorFull returns a 24-bit foreground color sequence.
func ColorFull(r, g, b int) string {
	return GetControl('m', 38, 2, r, g, b)
}

// ColorFullBg is the background variant of ColorFull.
func ColorFullBg(r, g, b int) string {
	return GetControl('m', 48, 2, r, g, b)
}

// ColorHex parses "#rrggbb" or "rrggbb" into a 24-bit foreground color.
// Malformed input yields an empty string.
func ColorHex(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return ""
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return ""
	}
	return ColorFull(r, g, b)
}
