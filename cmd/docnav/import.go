package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/docnav"
	locslog "github.com/fwojciec/docnav/slog"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	if deps.Store == nil {
		return docnav.Errorf(docnav.EINTERNAL, "no page tree store configured")
	}

	src, err := deps.Source(c.Dir)
	if err != nil {
		return err
	}

	tree, err := src.LoadTree(deps.Ctx)
	if err != nil {
		return err
	}

	// Duplicates are stored as authored; warn so authors can fix them.
	_, dups := docnav.Flatten(tree.Pages, deps.Policy)
	warn := locslog.DuplicateLogger(deps.logger())
	for _, d := range dups {
		warn(d)
	}

	if err := deps.Store.ReplaceTree(deps.Ctx, tree.Pages); err != nil {
		return err
	}

	revision, storedAt, err := deps.Store.Revision(deps.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d pages from %s (rev-%d, %s)\n",
		tree.CountRoutes(), c.Dir, revision, storedAt.Format(time.RFC3339))
	if len(dups) > 0 {
		fmt.Fprintf(deps.Stdout, "Warning: %d duplicate routes, keeping the %s occurrence\n", len(dups), deps.Policy)
	}
	return nil
}
