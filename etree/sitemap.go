// Package etree writes the flattened page directory as an XML sitemap.
package etree

import (
	"io"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docnav"
)

// SitemapNamespace is the sitemaps.org schema namespace.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapWriter writes sitemaps in reading order.
type SitemapWriter struct {
	// Indent is the number of spaces per indentation level. Zero writes
	// compact XML.
	Indent int
}

// NewSitemapWriter creates a new SitemapWriter with two-space indentation.
func NewSitemapWriter() *SitemapWriter {
	return &SitemapWriter{Indent: 2}
}

// WriteSitemap writes a <urlset> with one <url> per entry of dir. Routes are
// resolved against baseURL, which must be an absolute http(s) URL.
func (s *SitemapWriter) WriteSitemap(w io.Writer, baseURL string, dir *docnav.FlatDirectory) error {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return docnav.Errorf(docnav.EINVALID, "invalid base URL %q", baseURL)
	}
	// Resolve routes under the base path, not the host root.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", SitemapNamespace)

	for _, e := range dir.Entries() {
		ref := &url.URL{Path: strings.TrimPrefix(e.Route, "/")}
		loc := urlset.CreateElement("url").CreateElement("loc")
		loc.SetText(base.ResolveReference(ref).String())
	}

	if s.Indent > 0 {
		doc.Indent(s.Indent)
	}
	_, err = doc.WriteTo(w)
	return err
}
