package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/docnav"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docnav.TreeStore = (*PageService)(nil)

// PageService implements docnav.TreeStore using SQLite.
// Every ReplaceTree bumps a revision counter that becomes the tree version.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// ReplaceTree replaces the stored tree with pages in a single transaction.
func (s *PageService) ReplaceTree(ctx context.Context, pages []*docnav.PageNode) error {
	for _, p := range pages {
		if p == nil {
			return docnav.Errorf(docnav.EINVALID, "nil page in tree")
		}
		if err := p.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pages"); err != nil {
		return err
	}

	if err := insertPages(ctx, tx, sql.NullString{}, pages); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tree_revision (id, revision, updated_at)
		VALUES (1, 1, ?)
		ON CONFLICT(id) DO UPDATE SET revision = revision + 1, updated_at = excluded.updated_at
	`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}

// insertPages inserts nodes in reading order so rowid order matches it.
func insertPages(ctx context.Context, tx *sql.Tx, parentID sql.NullString, nodes []*docnav.PageNode) error {
	for i, n := range nodes {
		id := uuid.New().String()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pages (id, parent_id, route, title, description, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, parentID, n.Route, n.Title, n.Description, i); err != nil {
			return err
		}
		if err := insertPages(ctx, tx, sql.NullString{String: id, Valid: true}, n.Children); err != nil {
			return err
		}
	}
	return nil
}

// LoadTree rebuilds the stored tree. The version is "rev-<n>", where n is
// the number of ReplaceTree calls so far.
func (s *PageService) LoadTree(ctx context.Context) (*docnav.Tree, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var revision int
	err = tx.QueryRowContext(ctx, "SELECT revision FROM tree_revision WHERE id = 1").Scan(&revision)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, parent_id, route, title, description
		FROM pages
		ORDER BY position ASC, rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type row struct {
		id       string
		parentID sql.NullString
		node     *docnav.PageNode
	}
	var all []row
	byID := make(map[string]*docnav.PageNode)
	for rows.Next() {
		r := row{node: &docnav.PageNode{}}
		if err := rows.Scan(&r.id, &r.parentID, &r.node.Route, &r.node.Title, &r.node.Description); err != nil {
			return nil, err
		}
		all = append(all, r)
		byID[r.id] = r.node
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tree := &docnav.Tree{Version: "rev-" + strconv.Itoa(revision)}
	for _, r := range all {
		if !r.parentID.Valid {
			tree.Pages = append(tree.Pages, r.node)
			continue
		}
		parent, ok := byID[r.parentID.String]
		if !ok {
			return nil, fmt.Errorf("page %s references missing parent %s", r.id, r.parentID.String)
		}
		parent.Children = append(parent.Children, r.node)
	}
	return tree, nil
}

// FindPageByRoute retrieves the first stored page with route, in reading
// order. Children are not loaded.
func (s *PageService) FindPageByRoute(ctx context.Context, route string) (*docnav.PageNode, error) {
	if route == "" {
		return nil, docnav.Errorf(docnav.EINVALID, "page route required")
	}

	var page docnav.PageNode
	err := s.db.QueryRowContext(ctx, `
		SELECT route, title, description
		FROM pages
		WHERE route = ?
		ORDER BY rowid ASC
		LIMIT 1
	`, route).Scan(&page.Route, &page.Title, &page.Description)

	if err == sql.ErrNoRows {
		return nil, docnav.Errorf(docnav.ENOTFOUND, "page %q not found", route)
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Revision returns the current tree revision and when it was stored.
// Both are zero before the first ReplaceTree.
func (s *PageService) Revision(ctx context.Context) (int, time.Time, error) {
	var revision int
	var updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT revision, updated_at FROM tree_revision WHERE id = 1
	`).Scan(&revision, &updatedAt)
	if err == sql.ErrNoRows {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}

	t, err := parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return 0, time.Time{}, err
	}
	return revision, t, nil
}
