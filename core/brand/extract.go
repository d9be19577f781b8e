package brand

import (
	"fmt"
	"sort"
	"strings"

	"brandscout-api/core/domain"
	"brandscout-api/core/htmldoc"
)

// prominentStyleSelector picks elements whose inline style is likely to carry brand color
const prominentStyleSelector = `header[style], nav[style], button[style], ` +
	`header [style], nav [style], [role="banner"][style], [role="banner"] [style], ` +
	`[class*="btn"][style], [class*="button"][style], [class*="brand"][style], ` +
	`[class*="navbar"][style], [class*="header"][style], [class*="hero"][style]`

var metaColorSources = map[string]domain.ColorSource{
	"theme-color":                   domain.ColorSourceThemeMeta,
	"msapplication-tilecolor":       domain.ColorSourceTileMeta,
	"msapplication-navbutton-color": domain.ColorSourceTileMeta,
}

// colorExtractor accumulates candidates in discovery order
type colorExtractor struct {
	candidates []domain.ColorCandidate
	warnings   []string
}

func (x *colorExtractor) add(hex string, source domain.ColorSource) {
	x.candidates = append(x.candidates, domain.NewColorCandidate(hex, source, len(x.candidates)))
}

// addCSS adds every color in value. Neutrals are dropped for CSS sources:
// every page declares white, black and grays.
func (x *colorExtractor) addCSS(value string, source domain.ColorSource) {
	for _, hex := range ColorsInValue(value) {
		if isNeutral(hex) {
			continue
		}
		x.add(hex, source)
	}
}

// extractColors scans meta tags, prominent inline styles and embedded stylesheets
func extractColors(doc *htmldoc.Document) ([]domain.ColorCandidate, []string) {
	x := &colorExtractor{}
	x.fromMeta(doc)
	x.fromInlineStyles(doc)
	x.fromStylesheets(doc)
	return x.candidates, x.warnings
}

func (x *colorExtractor) fromMeta(doc *htmldoc.Document) {
	for _, meta := range doc.Find("meta[name][content]") {
		name := strings.ToLower(strings.TrimSpace(meta.AttrOr("name", "")))
		source, ok := metaColorSources[name]
		if !ok {
			continue
		}
		content := meta.AttrOr("content", "")
		hex, ok := ParseColor(content)
		if !ok {
			x.warnings = append(x.warnings, fmt.Sprintf("ignored unrecognized %s value %q", name, content))
			continue
		}
		x.add(hex, source)
	}

	for _, link := range doc.Find("link[rel][color]") {
		if !hasToken(link.AttrOr("rel", ""), "mask-icon") {
			continue
		}
		if hex, ok := ParseColor(link.AttrOr("color", "")); ok {
			x.add(hex, domain.ColorSourceMaskIcon)
		}
	}
}

func (x *colorExtractor) fromInlineStyles(doc *htmldoc.Document) {
	for _, el := range doc.Find(prominentStyleSelector) {
		decls, _ := scanDeclarations(el.AttrOr("style", ""))
		for _, d := range decls {
			if _, ok := classifyDeclaration(d, domain.ColorSourceInlineStyle); ok {
				x.addCSS(d.value, domain.ColorSourceInlineStyle)
			}
		}
	}
}

func (x *colorExtractor) fromStylesheets(doc *htmldoc.Document) {
	malformed := 0
	for _, style := range doc.Find("style") {
		decls, bad := scanDeclarations(style.Text())
		if bad {
			malformed++
		}
		for _, d := range decls {
			if source, ok := classifyDeclaration(d, domain.ColorSourceStylesheet); ok {
				x.addCSS(d.value, source)
			}
		}
	}
	if malformed > 0 {
		x.warnings = append(x.warnings,
			fmt.Sprintf("%d embedded stylesheet(s) were malformed; colors were extracted best-effort", malformed))
	}
}

// rankColors sorts by source priority then discovery order, keeps the first
// occurrence of each hex and truncates to max
func rankColors(candidates []domain.ColorCandidate, max int) []domain.ColorCandidate {
	sorted := make([]domain.ColorCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].Order < sorted[j].Order
	})

	out := make([]domain.ColorCandidate, 0, max)
	seen := make(map[string]bool, len(sorted))
	for _, c := range sorted {
		if seen[c.Hex] {
			continue
		}
		seen[c.Hex] = true
		out = append(out, c)
		if len(out) == max {
			break
		}
	}
	return out
}

func hasTextualColor(candidates []domain.ColorCandidate) bool {
	for _, c := range candidates {
		if c.Source.IsTextual() {
			return true
		}
	}
	return false
}

func hasToken(list, token string) bool {
	for _, t := range strings.Fields(strings.ToLower(list)) {
		if t == token {
			return true
		}
	}
	return false
}
