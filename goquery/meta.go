package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docnav"
)

// Compile-time interface verification.
var _ docnav.MetaReader = (*MetaReader)(nil)

// MetaReader implements docnav.MetaReader for HTML pages.
type MetaReader struct{}

// NewMetaReader creates a new MetaReader.
func NewMetaReader() *MetaReader {
	return &MetaReader{}
}

// ReadMeta extracts the title and description of an HTML page.
// The title is taken from <title>, then og:title, then the first <h1>.
// The description is taken from meta description, then og:description.
func (r *MetaReader) ReadMeta(src []byte) (docnav.PageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(src))
	if err != nil {
		return docnav.PageMeta{}, docnav.Errorf(docnav.EINVALID, "failed to parse HTML: %v", err)
	}

	return docnav.PageMeta{
		Title: firstNonEmpty(
			collapse(doc.Find("head title").First().Text()),
			metaContent(doc, `meta[property="og:title"]`),
			collapse(doc.Find("h1").First().Text()),
		),
		Description: firstNonEmpty(
			metaContent(doc, `meta[name="description"]`),
			metaContent(doc, `meta[property="og:description"]`),
		),
	}, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return collapse(content)
}

// collapse trims s and folds internal whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
