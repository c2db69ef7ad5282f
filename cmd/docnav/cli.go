package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docnav"
	"github.com/fwojciec/docnav/etree"
	"github.com/fwojciec/docnav/nav"
	locslog "github.com/fwojciec/docnav/slog"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Store is the stored page tree. Nil when the command reads a
	// pages directory instead.
	Store docnav.TreeStore

	// Files opens a pages directory.
	Files func(dir string) docnav.TreeSource

	MainRoutes docnav.MainRoutes
	Policy     docnav.DuplicatePolicy
	Sitemaps   *etree.SitemapWriter
}

// Source returns the pages directory source for dir, or the stored tree
// when dir is empty.
func (d *Dependencies) Source(dir string) (docnav.TreeSource, error) {
	var src docnav.TreeSource
	switch {
	case dir != "" && d.Files != nil:
		src = d.Files(dir)
	case dir == "" && d.Store != nil:
		src = d.Store
	default:
		return nil, docnav.Errorf(docnav.EINTERNAL, "no page tree source configured")
	}
	return locslog.NewLoggingTreeSource(src, d.logger()), nil
}

// Navigator returns a navigator over the tree selected by dir.
func (d *Dependencies) Navigator(dir string) (*nav.Navigator, error) {
	src, err := d.Source(dir)
	if err != nil {
		return nil, err
	}
	return &nav.Navigator{
		Source:      src,
		MainRoutes:  d.MainRoutes,
		Policy:      d.Policy,
		OnDuplicate: locslog.DuplicateLogger(d.logger()),
	}, nil
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB         string `name:"db" help:"Database path (default: $DOCNAV_DB or ~/.docnav/docnav.db)"`
	MainRoutes string `name:"main-routes" env:"DOCNAV_MAIN_ROUTES" default:"/" help:"Comma separated routes that never show previous/next navigation"`
	Duplicates string `name:"duplicates" env:"DOCNAV_DUPLICATES" enum:"first,last" default:"first" help:"Which page wins when routes repeat (first, last)"`
	Verbose    bool   `short:"v" help:"Log debug output to stderr"`

	Import  ImportCmd  `cmd:"" help:"Read a pages directory and store its tree"`
	Tree    TreeCmd    `cmd:"" help:"Print the page tree"`
	List    ListCmd    `cmd:"" help:"Print pages in reading order"`
	Nav     NavCmd     `cmd:"" help:"Print previous/next navigation for a route"`
	Page    PageCmd    `cmd:"" help:"Print a stored page"`
	Sitemap SitemapCmd `cmd:"" help:"Write a sitemap.xml in reading order"`
}

// needsStore reports whether the named command reads or writes the database.
func (c *CLI) needsStore(cmd string) bool {
	switch cmd {
	case "import", "page":
		return true
	case "tree":
		return c.Tree.Dir == ""
	case "list":
		return c.List.Dir == ""
	case "nav":
		return c.Nav.Dir == ""
	case "sitemap":
		return c.Sitemap.Dir == ""
	}
	return false
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Dir string `arg:"" type:"existingdir" help:"Pages directory"`
}

// TreeCmd is the "tree" subcommand.
type TreeCmd struct {
	Dir string `short:"d" help:"Read this pages directory instead of the stored tree"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Dir string `short:"d" help:"Read this pages directory instead of the stored tree"`
}

// NavCmd is the "nav" subcommand.
type NavCmd struct {
	Route string `arg:"" help:"Route of the current page"`
	Dir   string `short:"d" help:"Read this pages directory instead of the stored tree"`
	JSON  bool   `name:"json" help:"Print JSON"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	Route string `arg:"" help:"Route of the page"`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	BaseURL string `arg:"" name:"base-url" help:"Site URL the routes are relative to"`
	Dir     string `short:"d" help:"Read this pages directory instead of the stored tree"`
}
