// ABOUTME: Brand discovery result assembled from color and logo extraction
// ABOUTME: Warnings carry non-fatal extraction issues instead of failing the call

package domain

import "time"

// BrandDiscoveryResult is the structured output of brand discovery
type BrandDiscoveryResult struct {
	SourceURL string           `json:"sourceUrl"`
	FinalURL  string           `json:"finalUrl"`
	Colors    []ColorCandidate `json:"colors"`
	Logo      *LogoCandidate   `json:"logo"`
	Warnings  []string         `json:"warnings"`
	FetchedAt time.Time        `json:"fetchedAt"`
}
