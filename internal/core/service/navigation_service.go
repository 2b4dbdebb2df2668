package service

import (
	"github.com/rs/zerolog"

	"github.com/buildlink/directory-system/internal/core/domain"
)

// NavigationService resolves the route tree clients should render for
// their current session. It deliberately does not consult the permission
// registry: route membership and resource-level permissions are
// independent authorities.
type NavigationService struct {
	logger zerolog.Logger
}

func NewNavigationService(logger zerolog.Logger) *NavigationService {
	return &NavigationService{logger: logger}
}

// Resolve returns the single active route tree for the session state.
func (s *NavigationService) Resolve(state domain.SessionState) domain.RouteTree {
	tree := domain.BuildRouteTree(state)
	if tree.View == domain.ViewAccessDenied {
		s.logger.Warn().
			Str("role", string(state.Role)).
			Msg("authenticated session with unrecognized role")
	}
	return tree
}
