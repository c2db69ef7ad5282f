package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docnav"
)

// Ensure LoggingTreeSource implements docnav.TreeSource.
var _ docnav.TreeSource = (*LoggingTreeSource)(nil)

// LoggingTreeSource wraps a TreeSource with debug logging.
type LoggingTreeSource struct {
	next   docnav.TreeSource
	logger *slog.Logger
}

// NewLoggingTreeSource creates a new LoggingTreeSource.
func NewLoggingTreeSource(next docnav.TreeSource, logger *slog.Logger) *LoggingTreeSource {
	return &LoggingTreeSource{next: next, logger: logger}
}

// LoadTree delegates to the wrapped source and logs the operation.
func (s *LoggingTreeSource) LoadTree(ctx context.Context) (tree *docnav.Tree, err error) {
	defer func(begin time.Time) {
		var version string
		if tree != nil {
			version = tree.Version
		}
		s.logger.Debug("load tree",
			"version", version,
			"routes", tree.CountRoutes(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadTree(ctx)
}

// DuplicateLogger returns a callback that logs duplicate routes as warnings.
// It is meant for nav.Navigator.OnDuplicate.
func DuplicateLogger(logger *slog.Logger) func(docnav.DuplicateRoute) {
	return func(d docnav.DuplicateRoute) {
		logger.Warn("duplicate route",
			"route", d.Route,
			"occurrences", d.Occurrences,
			"kept", d.Kept,
		)
	}
}

// PageErrorLogger returns a callback that logs pages whose metadata could
// not be read. It is meant for fs.TreeSource.OnPageError.
func PageErrorLogger(logger *slog.Logger) func(path string, err error) {
	return func(path string, err error) {
		logger.Warn("unreadable page metadata",
			"path", path,
			"err", err,
		)
	}
}
