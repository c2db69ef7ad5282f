package main

import "fmt"

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	n, err := deps.Navigator(c.Dir)
	if err != nil {
		return err
	}

	dir, _, err := n.Directory(deps.Ctx)
	if err != nil {
		return err
	}

	if dir.Len() == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'docnav import' to store a pages directory.")
		return nil
	}

	for _, e := range dir.Entries() {
		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%d. %s  %s\n", e.Index, title, e.Route)
	}
	return nil
}
