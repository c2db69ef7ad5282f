package mock

import (
	"context"
	"time"

	"github.com/fwojciec/docnav"
)

// Compile-time interface verification.
var (
	_ docnav.TreeSource = (*TreeSource)(nil)
	_ docnav.TreeStore  = (*TreeStore)(nil)
)

// TreeSource is a mock implementation of docnav.TreeSource.
type TreeSource struct {
	LoadTreeFn func(ctx context.Context) (*docnav.Tree, error)
}

func (s *TreeSource) LoadTree(ctx context.Context) (*docnav.Tree, error) {
	return s.LoadTreeFn(ctx)
}

// TreeStore is a mock implementation of docnav.TreeStore.
type TreeStore struct {
	LoadTreeFn        func(ctx context.Context) (*docnav.Tree, error)
	ReplaceTreeFn     func(ctx context.Context, pages []*docnav.PageNode) error
	FindPageByRouteFn func(ctx context.Context, route string) (*docnav.PageNode, error)
	RevisionFn        func(ctx context.Context) (int, time.Time, error)
}

func (s *TreeStore) LoadTree(ctx context.Context) (*docnav.Tree, error) {
	return s.LoadTreeFn(ctx)
}

func (s *TreeStore) ReplaceTree(ctx context.Context, pages []*docnav.PageNode) error {
	return s.ReplaceTreeFn(ctx, pages)
}

func (s *TreeStore) FindPageByRoute(ctx context.Context, route string) (*docnav.PageNode, error) {
	return s.FindPageByRouteFn(ctx, route)
}

func (s *TreeStore) Revision(ctx context.Context) (int, time.Time, error) {
	return s.RevisionFn(ctx)
}
