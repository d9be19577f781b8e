package mappers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandscout-api/core/domain"
)

func TestToBrandDiscoveryResponse(t *testing.T) {
	fetched := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	result := &domain.BrandDiscoveryResult{
		SourceURL: "https://example.com",
		FinalURL:  "https://www.example.com/",
		Colors: []domain.ColorCandidate{
			domain.NewColorCandidate("#0a66c2", domain.ColorSourceThemeMeta, 0),
			domain.NewColorCandidate("#ff0000", domain.ColorSourceStylesheet, 1),
		},
		Logo:      &domain.LogoCandidate{URL: "https://www.example.com/touch.png", Method: domain.LogoMethodAppleTouchIcon, Rank: 1, Score: 90},
		Warnings:  []string{"something odd"},
		FetchedAt: fetched,
	}

	response := ToBrandDiscoveryResponse(result)

	require.NotNil(t, response)
	assert.Equal(t, "https://www.example.com/", response.FinalURL)
	require.Len(t, response.Colors, 2)
	assert.Equal(t, "#0a66c2", response.Colors[0].Hex)
	assert.Equal(t, "meta-theme-color", response.Colors[0].Source)
	assert.Equal(t, 100, response.Colors[0].Priority)
	require.NotNil(t, response.Logo)
	assert.Equal(t, "apple-touch-icon", response.Logo.Method)
	assert.Equal(t, 1, response.Logo.Rank)
	assert.Equal(t, []string{"something odd"}, response.Warnings)
	assert.Equal(t, fetched, response.FetchedAt)
}

func TestToBrandDiscoveryResponse_EmptyResultUsesEmptyArrays(t *testing.T) {
	response := ToBrandDiscoveryResponse(&domain.BrandDiscoveryResult{SourceURL: "https://example.com"})

	raw, err := json.Marshal(response)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, []interface{}{}, body["colors"])
	assert.Equal(t, []interface{}{}, body["warnings"])
	assert.Nil(t, body["logo"])
	assert.Contains(t, body, "logo")
}

func TestToScriptDiscoveryResponse(t *testing.T) {
	result := &domain.ScriptDiscoveryResult{
		SourceURL: "https://example.com",
		FinalURL:  "https://example.com",
		Scripts: []domain.ScriptEntry{
			{Src: "https://js.stripe.com/v3/", Vendor: "Stripe", Category: domain.ScriptCategoryPayments, Recognized: true, ThirdParty: true, Async: true},
			{Inline: true, Category: domain.ScriptCategoryUnknown},
		},
	}

	response := ToScriptDiscoveryResponse(result)

	require.Len(t, response.Scripts, 2)
	assert.Equal(t, "Stripe", response.Scripts[0].Vendor)
	assert.Equal(t, "payments", response.Scripts[0].Category)
	assert.True(t, response.Scripts[0].ThirdParty)
	assert.True(t, response.Scripts[1].Inline)
	assert.Equal(t, "unknown", response.Scripts[1].Category)
	assert.False(t, response.Scripts[1].Recognized)
}

func TestMappers_Nil(t *testing.T) {
	assert.Nil(t, ToBrandDiscoveryResponse(nil))
	assert.Nil(t, ToScriptDiscoveryResponse(nil))
}
