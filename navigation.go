package docnav

import (
	"context"
	"strings"
)

// NavigationResult holds the pages adjacent to a route in reading order.
// A nil field means there is no page in that direction.
type NavigationResult struct {
	Previous *FlatEntry `json:"previous"`
	Next     *FlatEntry `json:"next"`
}

// IsEmpty reports whether neither neighbor exists.
func (r NavigationResult) IsEmpty() bool {
	return r.Previous == nil && r.Next == nil
}

// Resolve returns the neighbors of route. A route that is not in the
// directory has no neighbors.
func (d *FlatDirectory) Resolve(route string) NavigationResult {
	e, ok := d.Lookup(route)
	if !ok {
		return NavigationResult{}
	}
	return NavigationResult{
		Previous: d.At(e.Index - 1),
		Next:     d.At(e.Index + 1),
	}
}

// DefaultMainRoutes are the hub routes excluded from pagination by default.
var DefaultMainRoutes = []string{"/"}

// MainRoutes is the set of hub and landing routes that never show
// previous/next navigation. The zero value excludes nothing.
type MainRoutes struct {
	routes map[string]struct{}
}

// NewMainRoutes returns a set holding routes.
func NewMainRoutes(routes ...string) MainRoutes {
	m := MainRoutes{routes: make(map[string]struct{}, len(routes))}
	for _, r := range routes {
		m.routes[r] = struct{}{}
	}
	return m
}

// ParseMainRoutes builds a set from a comma separated list of routes.
// Blank items are ignored.
func ParseMainRoutes(s string) MainRoutes {
	var routes []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			routes = append(routes, r)
		}
	}
	return NewMainRoutes(routes...)
}

// Contains reports whether route is a main route.
func (m MainRoutes) Contains(route string) bool {
	_, ok := m.routes[route]
	return ok
}

// ShouldShowNavigation reports whether a page at route renders
// previous/next navigation.
func (m MainRoutes) ShouldShowNavigation(route string) bool {
	return !m.Contains(route)
}

// Routes returns the member routes in no particular order.
func (m MainRoutes) Routes() []string {
	routes := make([]string, 0, len(m.routes))
	for r := range m.routes {
		routes = append(routes, r)
	}
	return routes
}

// Navigation is the answer to a navigation request for one route.
type Navigation struct {
	Route          string           `json:"route"`
	Result         NavigationResult `json:"result"`
	ShowNavigation bool             `json:"showNavigation"`

	// Version of the tree snapshot the answer was computed from.
	Version string `json:"version,omitempty"`
}

// NavigationService resolves navigation for the current page.
type NavigationService interface {
	// Navigate returns the navigation for route. A route outside the page
	// tree is not an error; it yields an empty result.
	Navigate(ctx context.Context, route string) (*Navigation, error)
}
