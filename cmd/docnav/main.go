package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docnav"
	"github.com/fwojciec/docnav/etree"
	"github.com/fwojciec/docnav/fs"
	"github.com/fwojciec/docnav/goldmark"
	"github.com/fwojciec/docnav/goquery"
	locslog "github.com/fwojciec/docnav/slog"
	"github.com/fwojciec/docnav/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	// Run has already reported the error on stderr.
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Stored page tree, for end-to-end testing.
	PageService *sqlite.PageService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. A failure is written to
// stderr once and returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	err := m.run(ctx, args, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errorMessage(err))
	}
	return err
}

// errorMessage returns the message of an application error, or the full
// text of any other error.
func errorMessage(err error) string {
	var e *docnav.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func (m *Main) run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docnav"),
		kong.Description("Flatten a documentation page tree and resolve previous/next navigation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docnav --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	policy, err := docnav.ParseDuplicatePolicy(cli.Duplicates)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     logger,
		MainRoutes: docnav.ParseMainRoutes(cli.MainRoutes),
		Policy:     policy,
		Files: func(dir string) docnav.TreeSource {
			return newFileSource(dir, logger)
		},
		Sitemaps: etree.NewSitemapWriter(),
	}

	if cli.needsStore(commandName(kongCtx)) {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCNAV_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.PageService = sqlite.NewPageService(m.DB)
		deps.Store = m.PageService
	}

	return kongCtx.Run(deps)
}

// newFileSource reads a pages directory with the Markdown and HTML readers.
// Pages with unreadable metadata are logged and kept.
func newFileSource(dir string, logger *slog.Logger) docnav.TreeSource {
	markdown := goldmark.NewMetaReader()
	src := fs.NewTreeSource(dir, map[string]docnav.MetaReader{
		".md":   markdown,
		".mdx":  markdown,
		".html": goquery.NewMetaReader(),
	})
	src.OnPageError = locslog.PageErrorLogger(logger)
	return src
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// commandName returns the first word of the selected command, e.g. "nav".
func commandName(ctx *kong.Context) string {
	if fields := strings.Fields(ctx.Command()); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func defaultDBPath() string {
	if path := os.Getenv("DOCNAV_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docnav.db"
	}
	dir := filepath.Join(home, ".docnav")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docnav.db")
}
