package main_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/docnav/cmd/docnav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedCommands = []string{"import", "tree", "list", "nav", "page", "sitemap"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		for _, cmd := range expectedCommands {
			assert.Contains(t, stdout.String(), cmd)
		}
	})

	t.Run("no arguments returns error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("unknown duplicates policy is rejected", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		err := m.Run(context.Background(), []string{"--duplicates", "newest", "list"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})

	t.Run("imports a pages directory and navigates the stored tree", func(t *testing.T) {
		t.Parallel()

		pages := t.TempDir()
		writePages(t, pages, map[string]string{
			"_meta.json":        `{"index": "Home", "guide": "Guide", "faq": "FAQ"}`,
			"index.md":          "# Welcome",
			"guide/index.md":    "---\ntitle: Guide Home\n---\n",
			"guide/install.md":  "# Install\n",
			"guide/advanced.md": "---\ndescription: Deep dive\n---\n# Advanced\n",
			"faq.html":          "<title>Questions</title>",
		})
		dbPath := filepath.Join(t.TempDir(), "test.db")
		ctx := context.Background()

		m := main.NewMain()
		m.DBPath = dbPath
		stdout := &bytes.Buffer{}
		err := m.Run(ctx, []string{"import", pages}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Imported 5 pages")
		assert.Contains(t, stdout.String(), "rev-1")

		m = main.NewMain()
		m.DBPath = dbPath
		stdout = &bytes.Buffer{}
		err = m.Run(ctx, []string{"list"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "0. Home  /\n1. Guide  /guide\n2. Advanced  /guide/advanced\n3. Install  /guide/install\n4. FAQ  /faq\n", stdout.String())

		m = main.NewMain()
		m.DBPath = dbPath
		stdout = &bytes.Buffer{}
		err = m.Run(ctx, []string{"nav", "/guide/install"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "<- Advanced  /guide/advanced")
		assert.Contains(t, stdout.String(), "Previous: Advanced  /guide/advanced")
		assert.Contains(t, stdout.String(), "Deep dive")
		assert.Contains(t, stdout.String(), "Next: FAQ  /faq")

		m = main.NewMain()
		m.DBPath = dbPath
		stdout = &bytes.Buffer{}
		err = m.Run(ctx, []string{"nav", "/"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Navigation hidden on main route /")

		m = main.NewMain()
		m.DBPath = dbPath
		stdout = &bytes.Buffer{}
		err = m.Run(ctx, []string{"page", "/guide/advanced"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "Advanced  /guide/advanced\n  Deep dive\n", stdout.String())
	})

	t.Run("reports a failure on stderr once", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "missing")
		m := main.NewMain()
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"list", "--dir", missing}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, 1, strings.Count(stderr.String(), "error:"))
		assert.Equal(t, fmt.Sprintf("error: pages directory %q not found\n", missing), stderr.String())
	})

	t.Run("logs pages with bad frontmatter and keeps them", func(t *testing.T) {
		t.Parallel()

		pages := t.TempDir()
		writePages(t, pages, map[string]string{
			"a.md": "# Alpha",
			"b.md": "---\ntitle: Setup: Linux\n---\n",
			"c.md": "# Gamma",
		})
		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"list", "--dir", pages}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "0. Alpha  /a\n1. (untitled)  /b\n2. Gamma  /c\n", stdout.String())
		assert.Contains(t, stderr.String(), "unreadable page metadata")
		assert.Contains(t, stderr.String(), "path=b.md")
	})

	t.Run("reads a pages directory without the database", func(t *testing.T) {
		t.Parallel()

		pages := t.TempDir()
		writePages(t, pages, map[string]string{
			"a.md": "# Alpha",
			"b.md": "# Beta",
		})
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "never-created", "test.db")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"nav", "--dir", pages, "--main-routes", "", "/a"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Next: Beta  /b")
		assert.Nil(t, m.DB)
	})
}

func writePages(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}
