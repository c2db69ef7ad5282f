package docnav

import (
	"encoding/json"
	"strings"
)

// FlatEntry is one page in reading order.
type FlatEntry struct {
	Route       string `json:"route"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Index       int    `json:"index"`
}

// FlatDirectory is the page tree flattened into reading order, indexed by route.
// It is built by Flatten and must not be modified afterwards.
type FlatDirectory struct {
	entries []*FlatEntry
	byRoute map[string]*FlatEntry
}

// Len returns the number of entries.
func (d *FlatDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns the entries in reading order.
func (d *FlatDirectory) Entries() []*FlatEntry {
	if d == nil {
		return nil
	}
	return append([]*FlatEntry(nil), d.entries...)
}

// At returns the entry at position i, or nil if i is out of range.
func (d *FlatDirectory) At(i int) *FlatEntry {
	if d == nil || i < 0 || i >= len(d.entries) {
		return nil
	}
	return d.entries[i]
}

// Lookup returns the entry for route.
func (d *FlatDirectory) Lookup(route string) (*FlatEntry, bool) {
	if d == nil {
		return nil, false
	}
	e, ok := d.byRoute[route]
	return e, ok
}

// MarshalJSON encodes the directory as its list of entries.
func (d *FlatDirectory) MarshalJSON() ([]byte, error) {
	entries := d.Entries()
	if entries == nil {
		entries = []*FlatEntry{}
	}
	return json.Marshal(entries)
}

// DuplicatePolicy decides which node wins when several nodes share a route.
type DuplicatePolicy int

const (
	// KeepFirst keeps the first node in reading order and drops the rest.
	KeepFirst DuplicatePolicy = iota

	// KeepLast keeps the last node in reading order. The entry takes the
	// reading position of that last node.
	KeepLast
)

// String returns the policy name as accepted by ParseDuplicatePolicy.
func (p DuplicatePolicy) String() string {
	if p == KeepLast {
		return "last"
	}
	return "first"
}

// ParseDuplicatePolicy parses "first" or "last".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return KeepFirst, nil
	case "last":
		return KeepLast, nil
	default:
		return KeepFirst, Errorf(EINVALID, "unknown duplicate policy %q (want first or last)", s)
	}
}

// DuplicateRoute reports a route carried by more than one node.
type DuplicateRoute struct {
	Route       string `json:"route"`
	Occurrences int    `json:"occurrences"`
	Kept        int    `json:"kept"` // index of the surviving entry
}

// Flatten walks pages depth-first in authored order and returns the
// directory of routed pages. A page comes before its children. Sections
// contribute only their children.
//
// Routes that appear more than once are resolved with policy and reported
// in the order they were first seen.
func Flatten(pages []*PageNode, policy DuplicatePolicy) (*FlatDirectory, []DuplicateRoute) {
	var routed []*PageNode
	routed = collectRouted(routed, pages)

	counts := make(map[string]int, len(routed))
	last := make(map[string]int, len(routed))
	var dupOrder []string
	for i, n := range routed {
		counts[n.Route]++
		if counts[n.Route] == 2 {
			dupOrder = append(dupOrder, n.Route)
		}
		last[n.Route] = i
	}

	d := &FlatDirectory{
		entries: make([]*FlatEntry, 0, len(counts)),
		byRoute: make(map[string]*FlatEntry, len(counts)),
	}
	for i, n := range routed {
		if _, ok := d.byRoute[n.Route]; ok {
			continue
		}
		if policy == KeepLast && last[n.Route] != i {
			continue
		}
		e := &FlatEntry{
			Route:       n.Route,
			Title:       n.Title,
			Description: n.Description,
			Index:       len(d.entries),
		}
		d.entries = append(d.entries, e)
		d.byRoute[e.Route] = e
	}

	var dups []DuplicateRoute
	for _, route := range dupOrder {
		dups = append(dups, DuplicateRoute{
			Route:       route,
			Occurrences: counts[route],
			Kept:        d.byRoute[route].Index,
		})
	}
	return d, dups
}

func collectRouted(dst []*PageNode, nodes []*PageNode) []*PageNode {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if !n.IsSection() {
			dst = append(dst, n)
		}
		dst = collectRouted(dst, n.Children)
	}
	return dst
}
