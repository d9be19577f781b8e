// ABOUTME: Mappers for converting discovery results to API DTOs
// ABOUTME: Slices are always non-nil so clients see [] rather than null

package mappers

import (
	"brandscout-api/api/dto/responses"
	"brandscout-api/core/domain"
)

// ToBrandDiscoveryResponse converts a domain BrandDiscoveryResult
func ToBrandDiscoveryResponse(result *domain.BrandDiscoveryResult) *responses.BrandDiscoveryResponse {
	if result == nil {
		return nil
	}

	response := &responses.BrandDiscoveryResponse{
		SourceURL: result.SourceURL,
		FinalURL:  result.FinalURL,
		Colors:    make([]responses.ColorResponse, 0, len(result.Colors)),
		Warnings:  make([]string, 0, len(result.Warnings)),
		FetchedAt: result.FetchedAt,
	}

	for _, c := range result.Colors {
		response.Colors = append(response.Colors, responses.ColorResponse{
			Hex:      c.Hex,
			Source:   string(c.Source),
			Priority: c.Priority,
		})
	}
	response.Warnings = append(response.Warnings, result.Warnings...)

	if result.Logo != nil {
		response.Logo = &responses.LogoResponse{
			URL:    result.Logo.URL,
			Method: string(result.Logo.Method),
			Rank:   result.Logo.Rank,
		}
	}

	return response
}

// ToScriptDiscoveryResponse converts a domain ScriptDiscoveryResult
func ToScriptDiscoveryResponse(result *domain.ScriptDiscoveryResult) *responses.ScriptDiscoveryResponse {
	if result == nil {
		return nil
	}

	response := &responses.ScriptDiscoveryResponse{
		SourceURL: result.SourceURL,
		FinalURL:  result.FinalURL,
		Scripts:   make([]responses.ScriptResponse, 0, len(result.Scripts)),
		FetchedAt: result.FetchedAt,
	}

	for _, s := range result.Scripts {
		response.Scripts = append(response.Scripts, responses.ScriptResponse{
			Src:        s.Src,
			Inline:     s.Inline,
			Vendor:     s.Vendor,
			Category:   string(s.Category),
			Recognized: s.Recognized,
			ThirdParty: s.ThirdParty,
			Async:      s.Async,
			Defer:      s.Defer,
			Type:       s.Type,
			Integrity:  s.Integrity,
		})
	}

	return response
}
