package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docnav"
	"golang.org/x/sync/errgroup"
)

// Ensure TreeSource implements docnav.TreeSource at compile time.
var _ docnav.TreeSource = (*TreeSource)(nil)

// DefaultConcurrency is the number of page files read in parallel.
const DefaultConcurrency = 8

// TreeSource implements docnav.TreeSource over a pages directory laid out
// the way Nextra lays out its pages: one file per page, one directory per
// section, and an optional _meta file per directory giving order and titles.
type TreeSource struct {
	dir string

	// Readers maps a file extension (".md") to the reader of its metadata.
	// Only files with a registered extension are pages.
	Readers map[string]docnav.MetaReader

	// Concurrency limits parallel page reads. Defaults to DefaultConcurrency.
	Concurrency int

	// OnPageError is called with the slash path of a page whose metadata
	// could not be read. The page stays in the tree with its _meta title
	// and description. It may be called from several goroutines.
	OnPageError func(path string, err error)
}

// NewTreeSource creates a TreeSource rooted at dir.
func NewTreeSource(dir string, readers map[string]docnav.MetaReader) *TreeSource {
	return &TreeSource{dir: dir, Readers: readers}
}

// Dir returns the pages directory.
func (s *TreeSource) Dir() string {
	return s.dir
}

// LoadTree reads the pages directory and returns a fresh tree.
// The version changes whenever a page file or _meta file changes.
func (s *TreeSource) LoadTree(ctx context.Context) (*docnav.Tree, error) {
	info, err := os.Stat(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docnav.Errorf(docnav.ENOTFOUND, "pages directory %q not found", s.dir)
	} else if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, docnav.Errorf(docnav.EINVALID, "%q is not a directory", s.dir)
	}

	w := &walker{source: s, hash: xxhash.New()}
	pages, _, err := w.walkDir(ctx, ".", true)
	if err != nil {
		return nil, err
	}

	if err := w.readPages(ctx); err != nil {
		return nil, err
	}

	return &docnav.Tree{
		Version: "fs-" + strconv.FormatUint(w.hash.Sum64(), 16),
		Pages:   pages,
	}, nil
}

// pageJob is a page file whose metadata still has to be read into node.
type pageJob struct {
	rel       string
	path      string
	reader    docnav.MetaReader
	node      *docnav.PageNode
	metaTitle bool // title already set by _meta
	metaDesc  bool // description already set by _meta
}

type walker struct {
	source *TreeSource
	hash   *xxhash.Digest
	jobs   []*pageJob
}

// item is a name in a directory that can become a node: a page file, a
// subdirectory, or both when they share a name.
type item struct {
	key  string
	file string // page file name, if any
	dir  string // subdirectory name, if any
}

// walkDir builds the nodes of the directory rel (slash-separated, relative
// to the pages directory). Outside the root, an index page is returned
// separately because it is the page of the directory itself.
func (w *walker) walkDir(ctx context.Context, rel string, root bool) (nodes []*docnav.PageNode, index string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	abs := filepath.Join(w.source.dir, filepath.FromSlash(rel))
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read directory %q: %w", rel, err)
	}
	meta, err := readDirMeta(abs)
	if err != nil {
		return nil, "", err
	}
	w.hashBytes(rel+"/_meta", meta.raw)

	items := make(map[string]*item)
	var keys []string
	add := func(key string) *item {
		it, ok := items[key]
		if !ok {
			it = &item{key: key}
			items[key] = it
			keys = append(keys, key)
		}
		return it
	}

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			add(name).dir = name
			continue
		}
		ext := filepath.Ext(name)
		if _, ok := w.source.Readers[ext]; !ok {
			continue
		}
		key := strings.TrimSuffix(name, ext)
		if key == "index" && !root {
			if index == "" {
				index = name
			}
			continue
		}
		// Entries are sorted by name, so the first extension wins.
		if it := add(key); it.file == "" {
			it.file = name
		}
	}

	for _, key := range orderKeys(keys, meta) {
		entry, _ := meta.lookup(key)
		node, err := w.buildNode(ctx, rel, items[key], entry)
		if err != nil {
			return nil, "", err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, index, nil
}

// buildNode turns an item into a node. It returns nil for a directory that
// holds no pages.
func (w *walker) buildNode(ctx context.Context, rel string, it *item, entry metaEntry) (*docnav.PageNode, error) {
	node := &docnav.PageNode{Title: entry.Title, Description: entry.Description}
	file := it.file
	if file != "" {
		file = path.Join(rel, file)
	}

	if it.dir != "" {
		sub := path.Join(rel, it.dir)
		children, index, err := w.walkDir(ctx, sub, false)
		if err != nil {
			return nil, err
		}
		node.Children = children
		switch {
		case file == "" && index != "":
			file = path.Join(sub, index)
		case index != "":
			// Both guide.md and guide/index.md claim /guide. Keep the index
			// page as the first child so flattening reports the duplicate.
			dup := &docnav.PageNode{Route: routeFor(rel, it.key)}
			if err := w.addJob(path.Join(sub, index), dup, metaEntry{}); err != nil {
				return nil, err
			}
			node.Children = append([]*docnav.PageNode{dup}, node.Children...)
		}
		if node.Title == "" && file == "" {
			// A section keeps a readable label even without a page.
			node.Title = it.dir
		}
	}

	if file != "" {
		node.Route = routeFor(rel, it.key)
		if err := w.addJob(file, node, entry); err != nil {
			return nil, err
		}
	}

	if node.Route == "" && len(node.Children) == 0 {
		return nil, nil
	}
	return node, nil
}

func (w *walker) addJob(rel string, node *docnav.PageNode, entry metaEntry) error {
	abs := filepath.Join(w.source.dir, filepath.FromSlash(rel))
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	w.hashString(rel + "\x00" + strconv.FormatInt(info.Size(), 10) + "\x00" + strconv.FormatInt(info.ModTime().UnixNano(), 10))

	w.jobs = append(w.jobs, &pageJob{
		rel:       rel,
		path:      abs,
		reader:    w.source.Readers[filepath.Ext(rel)],
		node:      node,
		metaTitle: entry.Title != "",
		metaDesc:  entry.Description != "",
	})
	return nil
}

// readPages reads the metadata of every collected page in parallel.
// Each job writes only to its own node. Unreadable files fail the load;
// unparsable metadata is reported through OnPageError and skipped.
func (w *walker) readPages(ctx context.Context) error {
	limit := w.source.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, job := range w.jobs {
		job := job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(job.path)
			if err != nil {
				return fmt.Errorf("failed to read page %q: %w", job.rel, err)
			}
			meta, err := job.reader.ReadMeta(src)
			if err != nil {
				if w.source.OnPageError != nil {
					w.source.OnPageError(job.rel, err)
				}
				return nil
			}
			if !job.metaTitle {
				job.node.Title = meta.Title
			}
			if !job.metaDesc {
				job.node.Description = meta.Description
			}
			return nil
		})
	}
	return g.Wait()
}

func (w *walker) hashString(s string) {
	_, _ = w.hash.WriteString(s)
	_, _ = w.hash.WriteString("\n")
}

func (w *walker) hashBytes(label string, b []byte) {
	w.hashString(label + "\x00" + strconv.Itoa(len(b)))
	_, _ = w.hash.Write(b)
}

// orderKeys returns keys in _meta order followed by the remaining keys in
// alphabetical order, with an unlisted index page first. Hidden entries are
// dropped.
func orderKeys(keys []string, meta *dirMeta) []string {
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	ordered := make([]string, 0, len(keys))
	placed := make(map[string]bool, len(keys))
	for _, e := range meta.entries {
		if e.virtual() || !present[e.Key] {
			continue
		}
		placed[e.Key] = true
		if !e.hidden() {
			ordered = append(ordered, e.Key)
		}
	}

	var rest []string
	for _, k := range keys {
		if !placed[k] {
			rest = append(rest, k)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		if (rest[i] == "index") != (rest[j] == "index") {
			return rest[i] == "index"
		}
		return rest[i] < rest[j]
	})
	return append(ordered, rest...)
}

// routeFor returns the route of the page named key in directory rel.
func routeFor(rel, key string) string {
	if key == "index" {
		return path.Join("/", rel)
	}
	return path.Join("/", rel, key)
}
