// ABOUTME: Script discovery models describe the third-party script inventory of a page
// ABOUTME: Unrecognized scripts are kept in the inventory and flagged rather than dropped

package domain

import "time"

// ScriptCategory groups vendors by purpose
type ScriptCategory string

const (
	ScriptCategoryAnalytics   ScriptCategory = "analytics"
	ScriptCategoryTagManager  ScriptCategory = "tag-manager"
	ScriptCategoryAdvertising ScriptCategory = "advertising"
	ScriptCategorySupport     ScriptCategory = "support"
	ScriptCategoryPayments    ScriptCategory = "payments"
	ScriptCategoryMonitoring  ScriptCategory = "monitoring"
	ScriptCategoryConsent     ScriptCategory = "consent"
	ScriptCategoryCDN         ScriptCategory = "cdn"
	ScriptCategorySecurity    ScriptCategory = "security"
	ScriptCategoryMedia       ScriptCategory = "media"
	ScriptCategoryCommerce    ScriptCategory = "commerce"
	ScriptCategoryUnknown     ScriptCategory = "unknown"
)

// ScriptEntry is one <script> element found on the page
type ScriptEntry struct {
	// Src is the resolved absolute URL; empty for inline scripts
	Src    string `json:"src,omitempty"`
	Inline bool   `json:"inline"`

	Vendor     string         `json:"vendor,omitempty"`
	Category   ScriptCategory `json:"category"`
	Recognized bool           `json:"recognized"`

	// ThirdParty is true when Src is served from a different site than the page
	ThirdParty bool `json:"thirdParty"`

	Async     bool   `json:"async,omitempty"`
	Defer     bool   `json:"defer,omitempty"`
	Type      string `json:"type,omitempty"`
	Integrity bool   `json:"integrity,omitempty"`
}

// ScriptDiscoveryResult is the structured output of script discovery
type ScriptDiscoveryResult struct {
	SourceURL string        `json:"sourceUrl"`
	FinalURL  string        `json:"finalUrl"`
	Scripts   []ScriptEntry `json:"scripts"`
	FetchedAt time.Time     `json:"fetchedAt"`
}
