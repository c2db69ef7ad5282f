package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/docnav"
)

// Run executes the tree command.
func (c *TreeCmd) Run(deps *Dependencies) error {
	src, err := deps.Source(c.Dir)
	if err != nil {
		return err
	}

	tree, err := src.LoadTree(deps.Ctx)
	if err != nil {
		return err
	}

	if len(tree.Pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'docnav import' to store a pages directory.")
		return nil
	}

	printNodes(deps.Stdout, tree.Pages, 0)
	return nil
}

func printNodes(w io.Writer, nodes []*docnav.PageNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		if n == nil {
			continue
		}
		switch {
		case n.IsSection():
			fmt.Fprintf(w, "%s[%s]\n", indent, n.Title)
		case n.Title == "":
			fmt.Fprintf(w, "%s%s\n", indent, n.Route)
		default:
			fmt.Fprintf(w, "%s%s  %s\n", indent, n.Title, n.Route)
		}
		printNodes(w, n.Children, depth+1)
	}
}
