// ABOUTME: Script detector builds the script inventory of a parsed page
// ABOUTME: Every script element is reported; unmatched ones are flagged unrecognized

package scripts

import (
	"net/netip"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"brandscout-api/core/domain"
	"brandscout-api/core/htmldoc"
)

type detector struct {
	sigs     *Signatures
	pageSite string
}

func newDetector(sigs *Signatures, pageURL *url.URL) *detector {
	d := &detector{sigs: sigs}
	if pageURL != nil {
		d.pageSite = site(pageURL.Hostname())
	}
	return d
}

// detectScripts lists every <script> element of doc in document order.
// Third-party status is judged against pageURL, the page's final URL;
// <base href> only affects how relative src values resolve.
func detectScripts(doc *htmldoc.Document, pageURL string, sigs *Signatures) []domain.ScriptEntry {
	var page *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		page = u
	}
	d := newDetector(sigs, page)

	entries := make([]domain.ScriptEntry, 0)
	for _, el := range doc.Find("script") {
		entries = append(entries, d.entry(doc, el))
	}
	return entries
}

func (d *detector) entry(doc *htmldoc.Document, el htmldoc.Element) domain.ScriptEntry {
	entry := domain.ScriptEntry{
		Category:  domain.ScriptCategoryUnknown,
		Async:     el.HasAttr("async"),
		Defer:     el.HasAttr("defer"),
		Type:      strings.TrimSpace(el.AttrOr("type", "")),
		Integrity: strings.TrimSpace(el.AttrOr("integrity", "")) != "",
	}

	src, hasSrc := el.Attr("src")
	src = strings.TrimSpace(src)
	if !hasSrc || src == "" {
		entry.Inline = true
		if sig, ok := d.sigs.MatchInline(el.Text()); ok {
			entry.Vendor = sig.Vendor
			entry.Category = sig.Category
			entry.Recognized = true
		}
		return entry
	}

	resolved, ok := doc.Resolve(src)
	if !ok {
		// javascript:, data: and similar; reported as written
		entry.Src = src
		return entry
	}
	entry.Src = resolved

	u, err := url.Parse(resolved)
	if err != nil {
		return entry
	}
	entry.ThirdParty = d.isThirdParty(u.Hostname())
	if sig, ok := d.sigs.Match(u); ok {
		entry.Vendor = sig.Vendor
		entry.Category = sig.Category
		entry.Recognized = true
	}
	return entry
}

func (d *detector) isThirdParty(host string) bool {
	if d.pageSite == "" || host == "" {
		return false
	}
	return site(host) != d.pageSite
}

// site reduces a hostname to its registrable domain (eTLD+1).
// IP literals and single-label hosts are returned as-is.
func site(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return ""
	}
	if _, err := netip.ParseAddr(host); err == nil {
		return host
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}
