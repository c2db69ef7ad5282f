package main

import (
	"fmt"

	"github.com/fwojciec/docnav"
)

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	if deps.Store == nil {
		return docnav.Errorf(docnav.EINTERNAL, "no page tree store configured")
	}

	page, err := deps.Store.FindPageByRoute(deps.Ctx, c.Route)
	if err != nil {
		return err
	}

	title := page.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(deps.Stdout, "%s  %s\n", title, page.Route)
	if page.Description != "" {
		fmt.Fprintf(deps.Stdout, "  %s\n", page.Description)
	}
	return nil
}
