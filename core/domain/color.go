// ABOUTME: Color domain models for brand color candidates and their sources
// ABOUTME: Each source carries a fixed priority used for ranking and deduplication

package domain

import "fmt"

// ColorSource tags where a color candidate was found
type ColorSource string

const (
	ColorSourceThemeMeta          ColorSource = "meta-theme-color"
	ColorSourceTileMeta           ColorSource = "meta-tile-color"
	ColorSourceMaskIcon           ColorSource = "mask-icon"
	ColorSourceInlineStyle        ColorSource = "inline-style"
	ColorSourceStylesheetVariable ColorSource = "stylesheet-variable"
	ColorSourceStylesheet         ColorSource = "stylesheet"
	ColorSourceImageSample        ColorSource = "image-sample"
)

// sourcePriority is the tie-break table; higher wins
var sourcePriority = map[ColorSource]int{
	ColorSourceThemeMeta:          100,
	ColorSourceTileMeta:           90,
	ColorSourceMaskIcon:           85,
	ColorSourceInlineStyle:        70,
	ColorSourceStylesheetVariable: 60,
	ColorSourceStylesheet:         50,
	ColorSourceImageSample:        10,
}

// Priority returns the fixed priority of the source. Unknown sources rank last.
func (s ColorSource) Priority() int {
	return sourcePriority[s]
}

// IsTextual reports whether the source came from markup or CSS rather than pixels
func (s ColorSource) IsTextual() bool {
	return s != ColorSourceImageSample
}

// ColorCandidate is a provisional brand color
type ColorCandidate struct {
	// Hex is the canonical lowercase #rrggbb form
	Hex      string      `json:"hex"`
	Source   ColorSource `json:"source"`
	Priority int         `json:"priority"`

	// Order is the discovery order within the page, used as the second sort key
	Order int `json:"-"`
}

// NewColorCandidate builds a candidate with the source's fixed priority
func NewColorCandidate(hex string, source ColorSource, order int) ColorCandidate {
	return ColorCandidate{
		Hex:      hex,
		Source:   source,
		Priority: source.Priority(),
		Order:    order,
	}
}

// RGBColor represents an RGB color value
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the canonical #rrggbb form
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
