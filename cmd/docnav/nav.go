package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/docnav"
	locslog "github.com/fwojciec/docnav/slog"
)

// navOutput is the JSON document printed by "nav --json".
type navOutput struct {
	Navigation *docnav.Navigation `json:"navigation"`
	Pagination docnav.Pagination  `json:"pagination"`
}

// Run executes the nav command.
func (c *NavCmd) Run(deps *Dependencies) error {
	n, err := deps.Navigator(c.Dir)
	if err != nil {
		return err
	}
	svc := locslog.NewLoggingNavigationService(n, deps.logger())

	nav, err := svc.Navigate(deps.Ctx, c.Route)
	if err != nil {
		return err
	}
	p := docnav.BuildPagination(nav)

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(navOutput{Navigation: nav, Pagination: p})
	}

	switch {
	case !nav.ShowNavigation:
		fmt.Fprintf(deps.Stdout, "Navigation hidden on main route %s\n", c.Route)
	case nav.Result.IsEmpty():
		fmt.Fprintf(deps.Stdout, "No previous or next page for %s\n", c.Route)
	default:
		if p.Previous != nil {
			fmt.Fprintf(deps.Stdout, "<- %s  %s\n\n", p.Previous.Title, p.Previous.Href)
		}
		fmt.Fprintf(deps.Stdout, "%s\n%s\n", docnav.ContinueLearningTitle, docnav.ContinueLearningDescription)
		for _, link := range p.ContinueLearning {
			fmt.Fprintf(deps.Stdout, "  %s: %s  %s\n", link.TopTitle, link.Title, link.Href)
			if link.Description != "" {
				fmt.Fprintf(deps.Stdout, "    %s\n", link.Description)
			}
		}
	}
	return nil
}
