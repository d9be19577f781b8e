package brand

import (
	"regexp"
	"strings"

	"brandscout-api/core/domain"
)

var (
	cssCommentPattern  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	declarationPattern = regexp.MustCompile(`(?i)(--[a-z0-9_-]+|[a-z-]+)\s*:\s*([^;{}]+)`)
	colorProperties    = map[string]bool{
		"color":                 true,
		"background":            true,
		"background-color":      true,
		"background-image":      true,
		"border":                true,
		"border-color":          true,
		"border-top":            true,
		"border-bottom":         true,
		"border-left":           true,
		"border-right":          true,
		"border-top-color":      true,
		"border-bottom-color":   true,
		"border-left-color":     true,
		"border-right-color":    true,
		"outline":               true,
		"outline-color":         true,
		"fill":                  true,
		"stroke":                true,
		"accent-color":          true,
		"caret-color":           true,
		"text-decoration-color": true,
	}
	brandVariableHints = []string{"brand", "primary", "accent", "theme", "main", "key", "highlight", "secondary"}
)

type declaration struct {
	property string
	value    string
}

// scanDeclarations pulls property/value pairs out of a stylesheet or a style
// attribute. malformed reports unbalanced braces or an unterminated comment;
// whatever could be read is still returned.
func scanDeclarations(css string) (decls []declaration, malformed bool) {
	stripped := cssCommentPattern.ReplaceAllString(css, " ")
	if strings.Contains(stripped, "/*") || strings.Count(stripped, "{") != strings.Count(stripped, "}") {
		malformed = true
	}

	for _, m := range declarationPattern.FindAllStringSubmatch(stripped, -1) {
		decls = append(decls, declaration{
			property: strings.ToLower(m[1]),
			value:    strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[2]), "!important")),
		})
	}
	return decls, malformed
}

// classifyDeclaration decides whether a declaration carries brand color and
// which source it counts as. base is the source for plain color properties.
func classifyDeclaration(d declaration, base domain.ColorSource) (domain.ColorSource, bool) {
	if strings.HasPrefix(d.property, "--") {
		name := strings.ToLower(d.property)
		for _, hint := range brandVariableHints {
			if strings.Contains(name, hint) {
				return domain.ColorSourceStylesheetVariable, true
			}
		}
		return base, true
	}
	return base, colorProperties[d.property]
}
