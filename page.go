package docnav

import (
	"context"
	"strings"
	"time"
)

// PageNode represents a page or section in the authored page tree.
// A node without a route is a section: it has no page of its own but its
// children are part of the tree.
type PageNode struct {
	Route       string      `json:"route,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Children    []*PageNode `json:"children,omitempty"`
}

// IsSection reports whether the node has no navigable page of its own.
func (n *PageNode) IsSection() bool {
	return n.Route == ""
}

// Validate returns an error if the node or any of its descendants contains
// invalid fields.
func (n *PageNode) Validate() error {
	if n.Route != "" && !strings.HasPrefix(n.Route, "/") {
		return Errorf(EINVALID, "page route %q must start with /", n.Route)
	}
	if n.Route == "" && len(n.Children) == 0 {
		return Errorf(EINVALID, "section %q has neither route nor children", n.Title)
	}
	for _, child := range n.Children {
		if child == nil {
			return Errorf(EINVALID, "page %q has a nil child", n.Route)
		}
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Tree is one snapshot of the page tree.
type Tree struct {
	// Version identifies the snapshot. Two trees with the same non-empty
	// version are treated as identical. May be empty.
	Version string      `json:"version,omitempty"`
	Pages   []*PageNode `json:"pages"`
}

// CountRoutes returns the number of nodes in the tree that carry a route.
func (t *Tree) CountRoutes() int {
	if t == nil {
		return 0
	}
	return countRoutes(t.Pages)
}

func countRoutes(nodes []*PageNode) int {
	var n int
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if !node.IsSection() {
			n++
		}
		n += countRoutes(node.Children)
	}
	return n
}

// TreeSource supplies snapshots of the page tree.
// Implementations must return a fresh tree on every call; callers may keep
// and read it while the source changes.
type TreeSource interface {
	LoadTree(ctx context.Context) (*Tree, error)
}

// TreeStore persists page tree snapshots.
type TreeStore interface {
	TreeSource

	// ReplaceTree replaces the stored tree with pages.
	// Returns EINVALID if any node is invalid.
	ReplaceTree(ctx context.Context, pages []*PageNode) error

	// FindPageByRoute retrieves a stored page without its children.
	// Returns ENOTFOUND if no page has the route.
	FindPageByRoute(ctx context.Context, route string) (*PageNode, error)

	// Revision returns the number of the stored tree and when it was
	// stored. Both are zero before the first ReplaceTree.
	Revision(ctx context.Context) (int, time.Time, error)
}

// PageMeta is the metadata a page file declares about itself.
type PageMeta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// MetaReader extracts page metadata from the raw contents of a page file.
type MetaReader interface {
	ReadMeta(src []byte) (PageMeta, error)
}
