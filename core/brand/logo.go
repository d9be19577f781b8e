package brand

import (
	"bytes"
	"encoding/base64"
	"sort"
	"strings"

	"github.com/dyatlov/go-opengraph/opengraph"

	"brandscout-api/core/domain"
	"brandscout-api/core/htmldoc"
	"brandscout-api/pkg/utils/parse"
)

// Logo confidence table. Candidates under minLogoScore are never surfaced.
const (
	scoreAppleTouchIcon = 90
	scoreIconLink       = 80
	scoreOpenGraph      = 60
	scoreLogoImage      = 40
	scoreLogoContext    = 35
	scoreInlineSVG      = 30
	scoreHeaderImage    = 20

	minLogoScore = 30

	// maxInlineSVGBytes keeps data URIs for inline logos reasonably small
	maxInlineSVGBytes = 64 << 10
)

// logoLocator collects logo candidates in discovery order
type logoLocator struct {
	doc        *htmldoc.Document
	candidates []domain.LogoCandidate
	seen       map[string]int
}

func newLogoLocator(doc *htmldoc.Document) *logoLocator {
	return &logoLocator{doc: doc, seen: make(map[string]int)}
}

// add resolves ref and records it; a URL found twice keeps its best score
func (l *logoLocator) add(ref string, method domain.LogoMethod, score int) {
	abs, ok := l.doc.Resolve(ref)
	if !ok {
		return
	}
	if i, dup := l.seen[abs]; dup {
		if score > l.candidates[i].Score {
			l.candidates[i].Score = score
			l.candidates[i].Method = method
		}
		return
	}
	l.seen[abs] = len(l.candidates)
	l.candidates = append(l.candidates, domain.LogoCandidate{
		URL:    abs,
		Method: method,
		Score:  score,
		Order:  len(l.candidates),
	})
}

// locateLogos returns every candidate, ranked. The first one clearing
// minLogoScore, if any, is the page's logo.
func locateLogos(doc *htmldoc.Document) []domain.LogoCandidate {
	l := newLogoLocator(doc)
	l.fromIconLinks()
	l.fromOpenGraph()
	l.fromImages()
	l.fromInlineSVG()
	return rankLogos(l.candidates)
}

func (l *logoLocator) fromIconLinks() {
	for _, link := range l.doc.Find("link[rel][href]") {
		href := link.AttrOr("href", "")
		for _, rel := range strings.Fields(strings.ToLower(link.AttrOr("rel", ""))) {
			switch rel {
			case "apple-touch-icon", "apple-touch-icon-precomposed":
				l.add(href, domain.LogoMethodAppleTouchIcon, scoreAppleTouchIcon)
			case "icon":
				l.add(href, domain.LogoMethodFavicon, scoreIconLink+iconSizeBonus(link.AttrOr("sizes", "")))
			}
		}
	}
}

// iconSizeBonus lets larger declared icons win within the icon tier without
// ever reaching the apple-touch-icon score
func iconSizeBonus(sizes string) int {
	size := parse.LargestIconSize(sizes)
	if size >= parse.AnySize {
		return 9
	}
	bonus := size / 32
	if bonus > 9 {
		bonus = 9
	}
	return bonus
}

func (l *logoLocator) fromOpenGraph() {
	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(bytes.NewReader(l.doc.Source())); err != nil {
		return
	}
	for _, img := range og.Images {
		ref := img.SecureURL
		if ref == "" {
			ref = img.URL
		}
		if ref != "" {
			l.add(ref, domain.LogoMethodOpenGraph, scoreOpenGraph)
		}
	}
}

func (l *logoLocator) fromImages() {
	for _, img := range l.doc.Find("img") {
		src := img.AttrOr("src", "")
		if src == "" {
			src = firstSrcsetURL(img.AttrOr("srcset", ""))
		}
		if src == "" {
			continue
		}

		switch {
		case hasLogoHint(img, "alt", "class", "id", "src", "title"):
			l.add(src, domain.LogoMethodImageHeuristic, scoreLogoImage)
		case inLogoContext(img):
			l.add(src, domain.LogoMethodImageHeuristic, scoreLogoContext)
		case inBanner(img):
			l.add(src, domain.LogoMethodImageHeuristic, scoreHeaderImage)
		}
	}
}

func (l *logoLocator) fromInlineSVG() {
	for _, svg := range l.doc.Find("svg") {
		if p, ok := svg.Parent(); ok && p.Tag() == "svg" {
			continue
		}
		if !hasLogoHint(svg, "class", "id", "aria-label") && !inLogoContext(svg) {
			continue
		}
		markup := svg.OuterHTML()
		if markup == "" || len(markup) > maxInlineSVGBytes {
			continue
		}
		if !strings.Contains(markup, "xmlns") {
			markup = strings.Replace(markup, "<svg", `<svg xmlns="http://www.w3.org/2000/svg"`, 1)
		}
		l.add("data:image/svg+xml;base64,"+base64.StdEncoding.EncodeToString([]byte(markup)),
			domain.LogoMethodInlineSVG, scoreInlineSVG)
	}
}

// rankLogos orders by score, then discovery order, and assigns 1-based ranks
func rankLogos(candidates []domain.LogoCandidate) []domain.LogoCandidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Order < candidates[j].Order
	})
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	return candidates
}

// bestLogo returns the top candidate when it clears the confidence bar
func bestLogo(ranked []domain.LogoCandidate) *domain.LogoCandidate {
	if len(ranked) == 0 || ranked[0].Score < minLogoScore {
		return nil
	}
	best := ranked[0]
	return &best
}

func hasLogoHint(e htmldoc.Element, attrs ...string) bool {
	for _, attr := range attrs {
		if strings.Contains(strings.ToLower(e.AttrOr(attr, "")), "logo") {
			return true
		}
	}
	return false
}

// inLogoContext reports a logo hint on an ancestor, or a home link inside the banner
func inLogoContext(e htmldoc.Element) bool {
	for p, ok := e.Parent(); ok; p, ok = p.Parent() {
		if p.Tag() == "body" || p.Tag() == "html" {
			break
		}
		if hasLogoHint(p, "class", "id", "aria-label", "title") {
			return true
		}
		if p.Tag() == "a" && isHomeLink(p.AttrOr("href", "")) && inBanner(p) {
			return true
		}
	}
	return false
}

func inBanner(e htmldoc.Element) bool {
	if _, ok := e.Closest("header"); ok {
		return true
	}
	_, ok := e.Closest(`[role="banner"]`)
	return ok
}

func isHomeLink(href string) bool {
	href = strings.TrimSpace(href)
	return href == "/" || href == "./" || href == "#" || strings.HasSuffix(href, "/index.html")
}

// firstSrcsetURL returns the URL of the first srcset entry
func firstSrcsetURL(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
