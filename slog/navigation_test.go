package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/docnav"
	"github.com/fwojciec/docnav/mock"
	locslog "github.com/fwojciec/docnav/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingNavigationService_Navigate(t *testing.T) {
	t.Parallel()

	t.Run("logs resolved neighbors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.NavigationService{
			NavigateFn: func(ctx context.Context, route string) (*docnav.Navigation, error) {
				return &docnav.Navigation{
					Route: route,
					Result: docnav.NavigationResult{
						Previous: &docnav.FlatEntry{Route: "/a"},
						Next:     &docnav.FlatEntry{Route: "/c"},
					},
					ShowNavigation: true,
				}, nil
			},
		}

		svc := locslog.NewLoggingNavigationService(inner, debugLogger(&buf))
		nav, err := svc.Navigate(context.Background(), "/b")

		require.NoError(t, err)
		assert.Equal(t, "/b", nav.Route)
		output := buf.String()
		assert.Contains(t, output, "navigate")
		assert.Contains(t, output, "route=/b")
		assert.Contains(t, output, "previous=/a")
		assert.Contains(t, output, "next=/c")
		assert.Contains(t, output, "show=true")
	})

	t.Run("stays silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.NavigationService{
			NavigateFn: func(ctx context.Context, route string) (*docnav.Navigation, error) {
				return &docnav.Navigation{Route: route}, nil
			},
		}
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

		svc := locslog.NewLoggingNavigationService(inner, logger)
		_, err := svc.Navigate(context.Background(), "/b")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}
