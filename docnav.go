// Package docnav provides the navigation model of a documentation site.
// It flattens a hierarchical page tree into reading order and resolves the
// previous and next page for any route, so pages can render pagination links.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goldmark/, goquery/).
package docnav
