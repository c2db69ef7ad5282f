package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docnav"
)

// Ensure LoggingNavigationService implements docnav.NavigationService.
var _ docnav.NavigationService = (*LoggingNavigationService)(nil)

// LoggingNavigationService wraps a NavigationService with debug logging.
type LoggingNavigationService struct {
	next   docnav.NavigationService
	logger *slog.Logger
}

// NewLoggingNavigationService creates a new LoggingNavigationService.
func NewLoggingNavigationService(next docnav.NavigationService, logger *slog.Logger) *LoggingNavigationService {
	return &LoggingNavigationService{next: next, logger: logger}
}

// Navigate delegates to the wrapped service and logs the resolved neighbors.
func (s *LoggingNavigationService) Navigate(ctx context.Context, route string) (nav *docnav.Navigation, err error) {
	defer func(begin time.Time) {
		var prev, next string
		var show bool
		if nav != nil {
			prev, next = routeOf(nav.Result.Previous), routeOf(nav.Result.Next)
			show = nav.ShowNavigation
		}
		s.logger.Debug("navigate",
			"route", route,
			"previous", prev,
			"next", next,
			"show", show,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, route)
}

func routeOf(e *docnav.FlatEntry) string {
	if e == nil {
		return ""
	}
	return e.Route
}
