// ABOUTME: Logo domain models for candidate logos discovered on a page
// ABOUTME: Only the top-ranked candidate is surfaced in a brand result

package domain

// LogoMethod tags how a logo candidate was discovered
type LogoMethod string

const (
	LogoMethodAppleTouchIcon LogoMethod = "apple-touch-icon"
	LogoMethodFavicon        LogoMethod = "favicon-link"
	LogoMethodOpenGraph      LogoMethod = "og-image"
	LogoMethodImageHeuristic LogoMethod = "header-image"
	LogoMethodInlineSVG      LogoMethod = "inline-svg"
)

// LogoCandidate is a provisional logo
type LogoCandidate struct {
	// URL is absolute (http, https or a data:image URI for inline SVG)
	URL    string     `json:"url"`
	Method LogoMethod `json:"method"`

	// Score is the confidence used to order candidates
	Score int `json:"-"`

	// Rank is the 1-based position after ordering
	Rank int `json:"rank"`

	// Order is the discovery order, used as a tie-break
	Order int `json:"-"`
}
