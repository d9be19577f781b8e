// ABOUTME: HTML parser adapter turning a raw response body into a queryable document
// ABOUTME: Parsing never fails and never fetches sub-resources or runs scripts

package htmldoc

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document is a best-effort tree over an untrusted page
type Document struct {
	doc    *goquery.Document
	base   *url.URL
	source []byte
}

// Parse builds a Document from body. contentType is used to pick the charset;
// pageURL is the final URL of the page and the fallback base for relative
// references. Malformed markup yields a best-effort tree, never an error.
func Parse(body []byte, contentType, pageURL string) *Document {
	source := toUTF8(body, contentType)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(source))
	if err != nil {
		// Only reader failures land here; an in-memory reader has none, but keep
		// the contract that parsing always succeeds.
		doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}

	d := &Document{doc: doc, source: source}
	d.base = d.resolveBase(pageURL)
	return d
}

// toUTF8 transcodes body using the Content-Type charset or a <meta charset> sniff
func toUTF8(body []byte, contentType string) []byte {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return body
	}
	converted, err := io.ReadAll(r)
	if err != nil {
		return body
	}
	return converted
}

// resolveBase honours <base href> when it resolves to an http(s) URL
func (d *Document) resolveBase(pageURL string) *url.URL {
	page, err := url.Parse(pageURL)
	if err != nil {
		page = &url.URL{}
	}

	href, ok := d.doc.Find("base[href]").First().Attr("href")
	if !ok {
		return page
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return page
	}
	base := page.ResolveReference(ref)
	if base.Scheme != "http" && base.Scheme != "https" {
		return page
	}
	return base
}

// BaseURL returns the URL relative references resolve against
func (d *Document) BaseURL() *url.URL {
	u := *d.base
	return &u
}

// Source returns the UTF-8 markup the tree was built from
func (d *Document) Source() []byte {
	return d.source
}

// Find returns every element matching a CSS selector. An invalid selector
// matches nothing.
func (d *Document) Find(selector string) []Element {
	return collect(d.doc.Find(selector))
}

// Resolve turns an href/src/content value into an absolute http(s) URL.
// data:image URIs pass through unchanged. Anything else reports false.
func (d *Document) Resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(ref), "data:image/") {
		return ref, true
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	abs := d.base.ResolveReference(u)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	if abs.Host == "" {
		return "", false
	}
	return abs.String(), true
}

// Element is a single node of the tree
type Element struct {
	sel *goquery.Selection
}

func collect(sel *goquery.Selection) []Element {
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, Element{sel: s})
	})
	return out
}

// Tag returns the lowercase element name
func (e Element) Tag() string {
	return goquery.NodeName(e.sel)
}

// Attr returns an attribute value and whether it was present
func (e Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// AttrOr returns an attribute value or def when absent
func (e Element) AttrOr(name, def string) string {
	return e.sel.AttrOr(name, def)
}

// HasAttr reports whether the attribute is present, even if empty
func (e Element) HasAttr(name string) bool {
	_, ok := e.sel.Attr(name)
	return ok
}

// Text returns the combined text content of the element and its descendants
func (e Element) Text() string {
	return e.sel.Text()
}

// OuterHTML renders the element. Rendering errors yield an empty string.
func (e Element) OuterHTML() string {
	out, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return ""
	}
	return out
}

// Find returns descendants matching selector
func (e Element) Find(selector string) []Element {
	return collect(e.sel.Find(selector))
}

// Parent returns the parent element, if any
func (e Element) Parent() (Element, bool) {
	p := e.sel.Parent()
	if p.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: p}, true
}

// Closest returns the nearest ancestor-or-self matching selector
func (e Element) Closest(selector string) (Element, bool) {
	c := e.sel.Closest(selector)
	if c.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: c}, true
}
