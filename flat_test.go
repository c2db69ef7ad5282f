package docnav_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/fwojciec/docnav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(route, title string, children ...*docnav.PageNode) *docnav.PageNode {
	return &docnav.PageNode{Route: route, Title: title, Children: children}
}

func section(title string, children ...*docnav.PageNode) *docnav.PageNode {
	return &docnav.PageNode{Title: title, Children: children}
}

func routes(d *docnav.FlatDirectory) []string {
	var out []string
	for _, e := range d.Entries() {
		out = append(out, e.Route)
	}
	return out
}

func sampleTree() []*docnav.PageNode {
	return []*docnav.PageNode{
		page("/a", "A"),
		page("/b", "B", page("/b/c", "C")),
		page("/d", "D"),
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	t.Run("walks depth-first in authored order", func(t *testing.T) {
		t.Parallel()

		d, dups := docnav.Flatten(sampleTree(), docnav.KeepFirst)

		assert.Equal(t, []string{"/a", "/b", "/b/c", "/d"}, routes(d))
		assert.Empty(t, dups)
	})

	t.Run("assigns contiguous indexes equal to position", func(t *testing.T) {
		t.Parallel()

		d, _ := docnav.Flatten(sampleTree(), docnav.KeepFirst)

		for i, e := range d.Entries() {
			assert.Equal(t, i, e.Index)
		}
	})

	t.Run("route index returns the listed entries", func(t *testing.T) {
		t.Parallel()

		d, _ := docnav.Flatten(sampleTree(), docnav.KeepFirst)

		for _, e := range d.Entries() {
			got, ok := d.Lookup(e.Route)
			require.True(t, ok)
			assert.Same(t, e, got)
		}
	})

	t.Run("length equals number of routed nodes", func(t *testing.T) {
		t.Parallel()

		pages := []*docnav.PageNode{
			section("Guides",
				page("/guides/install", "Install"),
				section("Advanced", page("/guides/advanced/tuning", "Tuning")),
			),
			page("/faq", "FAQ", page("/faq/billing", "")),
		}
		tree := &docnav.Tree{Pages: pages}

		d, _ := docnav.Flatten(pages, docnav.KeepFirst)

		assert.Equal(t, tree.CountRoutes(), d.Len())
		assert.Equal(t, []string{"/guides/install", "/guides/advanced/tuning", "/faq", "/faq/billing"}, routes(d))
	})

	t.Run("keeps siblings in authored order without sorting", func(t *testing.T) {
		t.Parallel()

		pages := []*docnav.PageNode{page("/z", "Z"), page("/m", "M"), page("/a", "A")}

		d, _ := docnav.Flatten(pages, docnav.KeepFirst)

		assert.Equal(t, []string{"/z", "/m", "/a"}, routes(d))
	})

	t.Run("copies metadata from nodes", func(t *testing.T) {
		t.Parallel()

		pages := []*docnav.PageNode{{Route: "/a", Title: "Alpha", Description: "First letter"}}

		d, _ := docnav.Flatten(pages, docnav.KeepFirst)
		pages[0].Title = "Mutated"

		e, ok := d.Lookup("/a")
		require.True(t, ok)
		assert.Equal(t, "Alpha", e.Title)
		assert.Equal(t, "First letter", e.Description)
	})

	t.Run("skips nil nodes", func(t *testing.T) {
		t.Parallel()

		pages := []*docnav.PageNode{nil, page("/a", "A", nil)}

		d, _ := docnav.Flatten(pages, docnav.KeepFirst)

		assert.Equal(t, []string{"/a"}, routes(d))
	})

	t.Run("empty tree yields empty directory", func(t *testing.T) {
		t.Parallel()

		d, dups := docnav.Flatten(nil, docnav.KeepFirst)

		require.NotNil(t, d)
		assert.Equal(t, 0, d.Len())
		assert.Empty(t, d.Entries())
		assert.Empty(t, dups)
		assert.Nil(t, d.At(0))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		first, _ := docnav.Flatten(sampleTree(), docnav.KeepFirst)
		second, _ := docnav.Flatten(sampleTree(), docnav.KeepFirst)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("handles large flat trees", func(t *testing.T) {
		t.Parallel()

		var pages []*docnav.PageNode
		for i := 0; i < 1000; i++ {
			pages = append(pages, page(fmt.Sprintf("/p%d", i), ""))
		}

		d, _ := docnav.Flatten(pages, docnav.KeepFirst)

		assert.Equal(t, 1000, d.Len())
		assert.Equal(t, "/p999", d.At(999).Route)
	})
}

func TestFlatten_Duplicates(t *testing.T) {
	t.Parallel()

	dupTree := func() []*docnav.PageNode {
		return []*docnav.PageNode{
			page("/a", "First A"),
			page("/b", "B"),
			page("/a", "Second A"),
			page("/c", "C"),
		}
	}

	t.Run("KeepFirst keeps the first occurrence", func(t *testing.T) {
		t.Parallel()

		d, dups := docnav.Flatten(dupTree(), docnav.KeepFirst)

		assert.Equal(t, []string{"/a", "/b", "/c"}, routes(d))
		e, _ := d.Lookup("/a")
		assert.Equal(t, "First A", e.Title)
		assert.Equal(t, 0, e.Index)
		assert.Equal(t, []docnav.DuplicateRoute{{Route: "/a", Occurrences: 2, Kept: 0}}, dups)
	})

	t.Run("KeepLast keeps the last occurrence at its position", func(t *testing.T) {
		t.Parallel()

		d, dups := docnav.Flatten(dupTree(), docnav.KeepLast)

		assert.Equal(t, []string{"/b", "/a", "/c"}, routes(d))
		e, _ := d.Lookup("/a")
		assert.Equal(t, "Second A", e.Title)
		assert.Equal(t, 1, e.Index)
		assert.Equal(t, []docnav.DuplicateRoute{{Route: "/a", Occurrences: 2, Kept: 1}}, dups)
	})

	t.Run("indexes stay contiguous under both policies", func(t *testing.T) {
		t.Parallel()

		for _, policy := range []docnav.DuplicatePolicy{docnav.KeepFirst, docnav.KeepLast} {
			d, _ := docnav.Flatten(dupTree(), policy)
			for i, e := range d.Entries() {
				assert.Equal(t, i, e.Index, "policy %s", policy)
				got, _ := d.Lookup(e.Route)
				assert.Same(t, e, got)
			}
		}
	})

	t.Run("reports each duplicated route once in first-seen order", func(t *testing.T) {
		t.Parallel()

		pages := []*docnav.PageNode{
			page("/x", ""), page("/y", ""), page("/y", ""), page("/x", ""), page("/x", ""),
		}

		_, dups := docnav.Flatten(pages, docnav.KeepFirst)

		require.Len(t, dups, 2)
		assert.Equal(t, "/x", dups[0].Route)
		assert.Equal(t, 3, dups[0].Occurrences)
		assert.Equal(t, "/y", dups[1].Route)
		assert.Equal(t, 2, dups[1].Occurrences)
	})

	t.Run("duplicates across nesting levels", func(t *testing.T) {
		t.Parallel()

		pages := []*docnav.PageNode{
			page("/guide", "Guide", page("/guide", "Nested Guide")),
		}

		d, dups := docnav.Flatten(pages, docnav.KeepFirst)

		assert.Equal(t, 1, d.Len())
		assert.Len(t, dups, 1)
	})
}

func TestParseDuplicatePolicy(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   string
		want docnav.DuplicatePolicy
	}{
		{"", docnav.KeepFirst},
		{"first", docnav.KeepFirst},
		{"LAST", docnav.KeepLast},
		{" last ", docnav.KeepLast},
	} {
		got, err := docnav.ParseDuplicatePolicy(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := docnav.ParseDuplicatePolicy("newest")
	assert.Equal(t, docnav.EINVALID, docnav.ErrorCode(err))
}

func TestFlatDirectory_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes entries in reading order", func(t *testing.T) {
		t.Parallel()

		d, _ := docnav.Flatten([]*docnav.PageNode{page("/a", "A"), page("/b", "")}, docnav.KeepFirst)

		b, err := json.Marshal(d)

		require.NoError(t, err)
		assert.JSONEq(t, `[{"route":"/a","title":"A","index":0},{"route":"/b","index":1}]`, string(b))
	})

	t.Run("encodes empty directory as empty array", func(t *testing.T) {
		t.Parallel()

		d, _ := docnav.Flatten(nil, docnav.KeepFirst)

		b, err := json.Marshal(d)

		require.NoError(t, err)
		assert.Equal(t, "[]", string(b))
	})
}
