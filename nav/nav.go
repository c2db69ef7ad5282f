// Package nav serves navigation answers from a page tree source, caching
// the flattened directory per tree version.
package nav

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docnav"
	"golang.org/x/sync/singleflight"
)

// Compile-time interface verification.
var _ docnav.NavigationService = (*Navigator)(nil)

// Navigator implements docnav.NavigationService.
// Fields must be set before the first call and not changed afterwards.
type Navigator struct {
	Source     docnav.TreeSource
	MainRoutes docnav.MainRoutes
	Policy     docnav.DuplicatePolicy

	// OnDuplicate is called once per duplicate route each time a new
	// tree version is flattened. Optional.
	OnDuplicate func(docnav.DuplicateRoute)

	mu      sync.Mutex
	version string
	dir     *docnav.FlatDirectory
	builds  int

	group singleflight.Group
}

// Navigate returns the navigation for route in the current tree.
func (n *Navigator) Navigate(ctx context.Context, route string) (*docnav.Navigation, error) {
	dir, version, err := n.Directory(ctx)
	if err != nil {
		return nil, err
	}
	return &docnav.Navigation{
		Route:          route,
		Result:         dir.Resolve(route),
		ShowNavigation: n.MainRoutes.ShouldShowNavigation(route),
		Version:        version,
	}, nil
}

// Directory loads the current tree and returns its flattened directory with
// the tree version. The directory is rebuilt only when the version changes.
func (n *Navigator) Directory(ctx context.Context) (*docnav.FlatDirectory, string, error) {
	if n.Source == nil {
		return nil, "", docnav.Errorf(docnav.EINTERNAL, "navigator has no tree source")
	}

	tree, err := n.Source.LoadTree(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load page tree: %w", err)
	}
	if tree == nil {
		tree = &docnav.Tree{}
	}

	version := tree.Version
	if version == "" {
		version = Fingerprint(tree.Pages)
	}

	if dir, ok := n.cached(version); ok {
		return dir, version, nil
	}

	v, _, _ := n.group.Do(version, func() (any, error) {
		if dir, ok := n.cached(version); ok {
			return dir, nil
		}
		dir, dups := docnav.Flatten(tree.Pages, n.Policy)
		if n.OnDuplicate != nil {
			for _, d := range dups {
				n.OnDuplicate(d)
			}
		}

		n.mu.Lock()
		n.version, n.dir = version, dir
		n.builds++
		n.mu.Unlock()
		return dir, nil
	})
	return v.(*docnav.FlatDirectory), version, nil
}

// Invalidate drops the cached directory. The next call rebuilds it.
func (n *Navigator) Invalidate() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.version, n.dir = "", nil
}

// Builds returns how many times a directory has been flattened.
func (n *Navigator) Builds() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.builds
}

func (n *Navigator) cached(version string) (*docnav.FlatDirectory, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dir == nil || n.version != version {
		return nil, false
	}
	return n.dir, true
}

// Fingerprint derives a version for a tree that carries none. Trees with
// the same structure and metadata have the same fingerprint.
func Fingerprint(pages []*docnav.PageNode) string {
	h := xxhash.New()
	writeNodes(h, pages)
	return "xx-" + strconv.FormatUint(h.Sum64(), 16)
}

func writeNodes(h *xxhash.Digest, nodes []*docnav.PageNode) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		// Length prefixes keep field boundaries unambiguous.
		for _, s := range []string{n.Route, n.Title, n.Description} {
			_, _ = h.WriteString(strconv.Itoa(len(s)))
			_, _ = h.WriteString(":")
			_, _ = h.WriteString(s)
		}
		_, _ = h.WriteString("{")
		writeNodes(h, n.Children)
		_, _ = h.WriteString("}")
	}
}
