// ABOUTME: Public result types of the BrandScout library
// ABOUTME: Aliases of the core domain models so callers need only this package

package brandscout

import "brandscout-api/core/domain"

type (
	// BrandResult is the outcome of DiscoverBrand
	BrandResult = domain.BrandDiscoveryResult

	// ScriptResult is the outcome of DiscoverScripts
	ScriptResult = domain.ScriptDiscoveryResult

	// ColorCandidate is one suggested brand color
	ColorCandidate = domain.ColorCandidate

	// LogoCandidate is a located logo
	LogoCandidate = domain.LogoCandidate

	// ScriptEntry is one script element of a page
	ScriptEntry = domain.ScriptEntry
)
