// Package goldmark reads page metadata from Markdown and MDX files.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docnav"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Compile-time interface verification.
var _ docnav.MetaReader = (*MetaReader)(nil)

// MetaReader implements docnav.MetaReader for Markdown.
// Title and description come from YAML frontmatter; a missing title falls
// back to the text of the first level-one heading.
type MetaReader struct {
	md goldmark.Markdown
}

// NewMetaReader creates a new MetaReader.
func NewMetaReader() *MetaReader {
	return &MetaReader{md: goldmark.New()}
}

type frontmatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// ReadMeta extracts metadata from Markdown source.
func (r *MetaReader) ReadMeta(src []byte) (docnav.PageMeta, error) {
	head, body, ok := splitFrontmatter(src)

	var meta docnav.PageMeta
	if ok {
		var fm frontmatter
		if err := yaml.Unmarshal(head, &fm); err != nil {
			return docnav.PageMeta{}, docnav.Errorf(docnav.EINVALID, "invalid frontmatter: %v", err)
		}
		meta.Title = strings.TrimSpace(fm.Title)
		meta.Description = strings.TrimSpace(fm.Description)
	}

	if meta.Title == "" {
		meta.Title = r.firstHeading(body)
	}
	return meta, nil
}

// firstHeading returns the text of the first top-level H1, or "".
func (r *MetaReader) firstHeading(src []byte) string {
	doc := r.md.Parser().Parse(text.NewReader(src))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			return strings.TrimSpace(inlineText(h, src))
		}
	}
	return ""
}

func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

// splitFrontmatter separates a leading "---" delimited YAML block from the
// rest of the document.
func splitFrontmatter(src []byte) (head, body []byte, ok bool) {
	src = bytes.TrimPrefix(src, []byte("\ufeff"))
	first, rest, found := bytes.Cut(src, []byte("\n"))
	if !found || string(bytes.TrimRight(first, "\r")) != "---" {
		return nil, src, false
	}

	offset := 0
	for offset <= len(rest) {
		line, next, more := bytes.Cut(rest[offset:], []byte("\n"))
		if string(bytes.TrimRight(line, "\r")) == "---" {
			head = rest[:offset]
			if more {
				return head, next, true
			}
			return head, nil, true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return nil, src, false
}
