package main

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	n, err := deps.Navigator(c.Dir)
	if err != nil {
		return err
	}

	dir, _, err := n.Directory(deps.Ctx)
	if err != nil {
		return err
	}

	return deps.Sitemaps.WriteSitemap(deps.Stdout, c.BaseURL, dir)
}
