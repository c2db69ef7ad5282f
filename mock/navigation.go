package mock

import (
	"context"

	"github.com/fwojciec/docnav"
)

var _ docnav.NavigationService = (*NavigationService)(nil)

// NavigationService is a mock implementation of docnav.NavigationService.
type NavigationService struct {
	NavigateFn func(ctx context.Context, route string) (*docnav.Navigation, error)
}

func (s *NavigationService) Navigate(ctx context.Context, route string) (*docnav.Navigation, error) {
	return s.NavigateFn(ctx, route)
}
