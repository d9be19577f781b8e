// ABOUTME: Color token normalization to canonical lowercase #rrggbb
// ABOUTME: Understands hex, rgb(a), hsl(a) and CSS named colors; anything else is rejected quietly

package brand

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// colorTokenPattern finds color-looking tokens inside a CSS value
var colorTokenPattern = regexp.MustCompile(`(?i)#[0-9a-f]{3,8}\b|(?:rgba?|hsla?)\([^)]*\)|\b[a-z]{3,20}\b`)

// opaqueValuePattern strips url(...) and quoted strings so file names are not read as color names
var opaqueValuePattern = regexp.MustCompile(`(?i)url\([^)]*\)|"[^"]*"|'[^']*'`)

// ParseColor normalizes a single color token. Fully transparent colors and
// keywords such as inherit or currentColor are rejected.
func ParseColor(token string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(t, "#"):
		return parseHex(t)
	case strings.HasPrefix(t, "rgb"):
		return parseFunctional(t, "rgb")
	case strings.HasPrefix(t, "hsl"):
		return parseFunctional(t, "hsl")
	}

	if c, ok := colornames.Map[t]; ok {
		if c.A == 0 {
			return "", false
		}
		return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex(), true
	}
	return "", false
}

// ColorsInValue returns every parseable color in a CSS declaration value, in order
func ColorsInValue(value string) []string {
	var out []string
	value = opaqueValuePattern.ReplaceAllString(value, " ")
	for _, tok := range colorTokenPattern.FindAllString(value, -1) {
		if hex, ok := ParseColor(tok); ok {
			out = append(out, hex)
		}
	}
	return out
}

func parseHex(t string) (string, bool) {
	digits := t[1:]
	for _, r := range digits {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return "", false
		}
	}

	switch len(digits) {
	case 4:
		if digits[3] == '0' {
			return "", false
		}
		digits = digits[:3]
	case 8:
		if digits[6:] == "00" {
			return "", false
		}
		digits = digits[:6]
	case 3, 6:
	default:
		return "", false
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// parseFunctional handles both the legacy comma syntax and the space/slash syntax
func parseFunctional(t, kind string) (string, bool) {
	open := strings.IndexByte(t, '(')
	if open < 0 || !strings.HasSuffix(t, ")") {
		return "", false
	}
	args := t[open+1 : len(t)-1]

	alpha := ""
	if main, a, ok := strings.Cut(args, "/"); ok {
		args, alpha = main, strings.TrimSpace(a)
	}
	parts := strings.FieldsFunc(args, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	if len(parts) == 4 && alpha == "" {
		alpha = parts[3]
		parts = parts[:3]
	}
	if len(parts) != 3 {
		return "", false
	}
	if alpha != "" {
		a, ok := parseAlpha(alpha)
		if !ok || a == 0 {
			return "", false
		}
	}

	var c colorful.Color
	if kind == "rgb" {
		var ch [3]float64
		for i, p := range parts {
			v, ok := parseChannel(p)
			if !ok {
				return "", false
			}
			ch[i] = v
		}
		c = colorful.Color{R: ch[0], G: ch[1], B: ch[2]}
	} else {
		h, err := strconv.ParseFloat(strings.TrimSuffix(parts[0], "deg"), 64)
		if err != nil {
			return "", false
		}
		s, ok1 := parsePercent(parts[1])
		l, ok2 := parsePercent(parts[2])
		if !ok1 || !ok2 {
			return "", false
		}
		h = math.Mod(h, 360)
		if h < 0 {
			h += 360
		}
		c = colorful.Hsl(h, s, l)
	}
	return c.Clamped().Hex(), true
}

// parseChannel returns an rgb channel in [0,1] from "255" or "100%"
func parseChannel(p string) (float64, bool) {
	if strings.HasSuffix(p, "%") {
		return parsePercent(p)
	}
	v, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return 0, false
	}
	return clamp01(v / 255), true
}

// parsePercent accepts "50%" or a bare "50" and returns 0.5
func parsePercent(p string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
	if err != nil {
		return 0, false
	}
	return clamp01(v / 100), true
}

func parseAlpha(p string) (float64, bool) {
	if strings.HasSuffix(p, "%") {
		return parsePercent(p)
	}
	v, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return 0, false
	}
	return clamp01(v), true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// isNeutral reports near-white, near-black and gray colors
func isNeutral(hex string) bool {
	c, err := colorful.Hex(hex)
	if err != nil {
		return true
	}
	_, s, l := c.Hsl()
	return s < 0.12 || l > 0.96 || l < 0.04
}
