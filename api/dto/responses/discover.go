// ABOUTME: Response DTOs for the discovery endpoints
// ABOUTME: Mirrors the domain results with OpenAPI documentation attached

package responses

import "time"

// ColorResponse is one suggested brand color
type ColorResponse struct {
	Hex      string `json:"hex" doc:"Lowercase #rrggbb" example:"#0a66c2"`
	Source   string `json:"source" doc:"Where the color was found" enum:"meta-theme-color,meta-tile-color,mask-icon,inline-style,stylesheet-variable,stylesheet,image-sample"`
	Priority int    `json:"priority" doc:"Source priority; higher is more trustworthy"`
}

// LogoResponse is the best logo candidate
type LogoResponse struct {
	URL    string `json:"url" doc:"Absolute URL, or a data:image URI for inline SVG"`
	Method string `json:"method" doc:"How the logo was located" enum:"apple-touch-icon,favicon-link,og-image,header-image,inline-svg"`
	Rank   int    `json:"rank" doc:"1-based rank among all candidates"`
}

// BrandDiscoveryResponse is the body of a successful brand discovery
type BrandDiscoveryResponse struct {
	SourceURL string          `json:"sourceUrl" doc:"Normalized URL that was requested"`
	FinalURL  string          `json:"finalUrl" doc:"URL after redirects"`
	Colors    []ColorResponse `json:"colors" doc:"Up to five colors, most trustworthy first"`
	Logo      *LogoResponse   `json:"logo" doc:"Best logo candidate, or null"`
	Warnings  []string        `json:"warnings" doc:"Non-fatal extraction problems"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// ScriptResponse is one script element of the page
type ScriptResponse struct {
	Src        string `json:"src,omitempty" doc:"Resolved script URL; absent for inline scripts"`
	Inline     bool   `json:"inline"`
	Vendor     string `json:"vendor,omitempty" doc:"Recognized vendor name"`
	Category   string `json:"category" doc:"Vendor category, or unknown"`
	Recognized bool   `json:"recognized" doc:"Whether a vendor signature matched"`
	ThirdParty bool   `json:"thirdParty" doc:"Served from a different site than the page"`
	Async      bool   `json:"async,omitempty"`
	Defer      bool   `json:"defer,omitempty"`
	Type       string `json:"type,omitempty"`
	Integrity  bool   `json:"integrity,omitempty" doc:"Whether a subresource integrity hash is declared"`
}

// ScriptDiscoveryResponse is the body of a successful script discovery
type ScriptDiscoveryResponse struct {
	SourceURL string           `json:"sourceUrl"`
	FinalURL  string           `json:"finalUrl"`
	Scripts   []ScriptResponse `json:"scripts"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
