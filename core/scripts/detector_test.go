package scripts

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandscout-api/core/domain"
	"brandscout-api/core/htmldoc"
)

const pageURL = "https://shop.example.com/products/"

func detect(t *testing.T, markup string) []domain.ScriptEntry {
	t.Helper()
	doc := htmldoc.Parse([]byte(markup), "text/html", pageURL)
	return detectScripts(doc, pageURL, DefaultSignatures())
}

func TestDetectScripts_Inventory(t *testing.T) {
	entries := detect(t, `<html><head>
		<script async src="https://www.googletagmanager.com/gtag/js?id=G-ABC123"></script>
		<script>window.dataLayer = window.dataLayer || []; function gtag(){dataLayer.push(arguments);} gtag('js', new Date());</script>
		<script src="/static/app.js" defer type="module"></script>
		<script src="https://cdn.example.com/vendor.js" integrity="sha384-abc" crossorigin="anonymous"></script>
		<script src="https://tracker.unknown-vendor.io/t.js"></script>
		<script>console.log("hello")</script>
	</head><body></body></html>`)

	require.Len(t, entries, 6)

	ga := entries[0]
	assert.Equal(t, "https://www.googletagmanager.com/gtag/js?id=G-ABC123", ga.Src)
	assert.Equal(t, "Google Analytics", ga.Vendor)
	assert.Equal(t, domain.ScriptCategoryAnalytics, ga.Category)
	assert.True(t, ga.Recognized)
	assert.True(t, ga.ThirdParty)
	assert.True(t, ga.Async)
	assert.False(t, ga.Inline)

	inlineGA := entries[1]
	assert.True(t, inlineGA.Inline)
	assert.Empty(t, inlineGA.Src)
	assert.Equal(t, "Google Analytics", inlineGA.Vendor)
	assert.True(t, inlineGA.Recognized)

	app := entries[2]
	assert.Equal(t, "https://shop.example.com/static/app.js", app.Src)
	assert.False(t, app.Recognized)
	assert.Equal(t, domain.ScriptCategoryUnknown, app.Category)
	assert.False(t, app.ThirdParty)
	assert.True(t, app.Defer)
	assert.Equal(t, "module", app.Type)

	sameSite := entries[3]
	assert.False(t, sameSite.ThirdParty, "subdomain of the page's site is first-party")
	assert.True(t, sameSite.Integrity)

	unknown := entries[4]
	assert.Equal(t, "https://tracker.unknown-vendor.io/t.js", unknown.Src)
	assert.False(t, unknown.Recognized)
	assert.True(t, unknown.ThirdParty)
	assert.Equal(t, domain.ScriptCategoryUnknown, unknown.Category)

	plain := entries[5]
	assert.True(t, plain.Inline)
	assert.False(t, plain.Recognized)
	assert.Empty(t, plain.Vendor)
}

func TestDetectScripts_VendorSignatures(t *testing.T) {
	tests := []struct {
		src      string
		vendor   string
		category domain.ScriptCategory
	}{
		{"https://www.googletagmanager.com/gtm.js?id=GTM-XYZ", "Google Tag Manager", domain.ScriptCategoryTagManager},
		{"https://connect.facebook.net/en_US/fbevents.js", "Meta Pixel", domain.ScriptCategoryAdvertising},
		{"https://js.stripe.com/v3/", "Stripe", domain.ScriptCategoryPayments},
		{"https://www.google.com/recaptcha/api.js", "reCAPTCHA", domain.ScriptCategorySecurity},
		{"https://stats.somewhere.org/matomo.js", "Matomo", domain.ScriptCategoryAnalytics},
		{"https://cdn.jsdelivr.net/npm/alpinejs@3/dist/cdn.min.js", "jsDelivr", domain.ScriptCategoryCDN},
		{"//widget.intercom.io/widget/abc", "Intercom", domain.ScriptCategorySupport},
	}

	for _, tt := range tests {
		t.Run(tt.vendor, func(t *testing.T) {
			entries := detect(t, `<script src="`+tt.src+`"></script>`)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.vendor, entries[0].Vendor)
			assert.Equal(t, tt.category, entries[0].Category)
			assert.True(t, entries[0].Recognized)
		})
	}
}

func TestDetectScripts_HostMatchRespectsLabelBoundary(t *testing.T) {
	entries := detect(t, `<script src="https://evilgoogle-analytics.com/ga.js"></script>`)

	require.Len(t, entries, 1)
	assert.False(t, entries[0].Recognized)
}

func TestDetectScripts_PathRequiredWhenDeclared(t *testing.T) {
	entries := detect(t, `<script src="https://www.google.com/js/other.js"></script>`)

	require.Len(t, entries, 1)
	assert.False(t, entries[0].Recognized, "google.com alone is not reCAPTCHA")
}

func TestDetectScripts_UnresolvableSrcIsKept(t *testing.T) {
	entries := detect(t, `<script src="javascript:void(0)"></script>`)

	require.Len(t, entries, 1)
	assert.Equal(t, "javascript:void(0)", entries[0].Src)
	assert.False(t, entries[0].Inline)
	assert.False(t, entries[0].Recognized)
	assert.False(t, entries[0].ThirdParty)
}

func TestDetectScripts_EmptySrcIsInline(t *testing.T) {
	entries := detect(t, `<script src="  ">fbq('init', '123');</script>`)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].Inline)
	assert.Equal(t, "Meta Pixel", entries[0].Vendor)
}

func TestDetectScripts_NoScripts(t *testing.T) {
	entries := detect(t, `<html><body><p>static</p></body></html>`)

	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestDetectScripts_MalformedMarkup(t *testing.T) {
	entries := detect(t, `<div><script src="/a.js"><p>unclosed`)

	require.Len(t, entries, 1)
	assert.Equal(t, "https://shop.example.com/a.js", entries[0].Src)
}

func TestSite(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"www.example.com", "example.com"},
		{"a.b.example.co.uk", "example.co.uk"},
		{"Example.COM.", "example.com"},
		{"localhost", "localhost"},
		{"127.0.0.1", "127.0.0.1"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, site(tt.host))
		})
	}
}

func TestDetector_ThirdPartyWithoutPageURL(t *testing.T) {
	d := newDetector(DefaultSignatures(), nil)
	assert.False(t, d.isThirdParty("cdn.other.com"))

	page, _ := url.Parse("https://example.com")
	d = newDetector(DefaultSignatures(), page)
	assert.True(t, d.isThirdParty("cdn.other.com"))
	assert.False(t, d.isThirdParty("static.example.com"))
}

func TestDetectScripts_BaseHrefDoesNotChangeFirstParty(t *testing.T) {
	entries := detect(t, `<html><head>
		<base href="https://cdn.other.example/assets/">
		<script src="https://static.example.com/app.js"></script>
		<script src="bundle.js"></script>
	</head></html>`)

	require.Len(t, entries, 2)
	assert.False(t, entries[0].ThirdParty, "same-site script stays first-party")
	assert.Equal(t, "https://cdn.other.example/assets/bundle.js", entries[1].Src)
	assert.True(t, entries[1].ThirdParty, "relative src resolves against <base>")
}
