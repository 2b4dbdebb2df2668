package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/service"
)

// NavigationHandler serves the route tree for the caller's session so
// clients render exactly what the server resolves.
type NavigationHandler struct {
	service *service.NavigationService
}

func NewNavigationHandler(service *service.NavigationService) *NavigationHandler {
	return &NavigationHandler{service: service}
}

type permissionsResponse struct {
	Role      string              `json:"role"`
	Resources []string            `json:"resources"`
	Actions   map[string][]string `json:"actions"`
}

// Routes handles GET /v1/navigation. Authentication is optional:
// unauthenticated callers receive the onboarding tree, and loading=true
// returns the blocking-spinner tree regardless of session.
//
// @Summary      Route tree for the current session
// @Tags         navigation
// @Produce      json
// @Param        loading  query     bool  false  "Session still bootstrapping"
// @Success      200      {object}  domain.RouteTree
// @Router       /v1/navigation [get]
func (h *NavigationHandler) Routes(c echo.Context) error {
	role, _ := c.Get("role").(string)
	state := domain.SessionState{
		IsLoading:       c.QueryParam("loading") == "true",
		IsAuthenticated: role != "",
		Role:            domain.Role(role),
	}
	return c.JSON(http.StatusOK, h.service.Resolve(state))
}

// Permissions handles GET /v1/permissions: the resources and actions the
// session role may use, straight from the registry.
//
// @Summary      Permission listing for the current session
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  permissionsResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/permissions [get]
func (h *NavigationHandler) Permissions(c echo.Context) error {
	role, _ := c.Get("role").(string)
	if role == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	r := domain.Role(role)
	resources := domain.RoleResources(r)
	actions := make(map[string][]string, len(resources))
	for _, res := range resources {
		actions[res] = domain.ResourceActions(r, res)
	}
	return c.JSON(http.StatusOK, permissionsResponse{
		Role:      role,
		Resources: resources,
		Actions:   actions,
	})
}
