package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

// ctxScope extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - dealer role requires a non-empty dealer_id; a token without it
//     cannot be scoped, so it is rejected with 401.
func ctxScope(c echo.Context) (ports.Scope, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return ports.Scope{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	dealerID, _ := c.Get("dealer_id").(string)
	if domain.Role(role) == domain.RoleDealer && dealerID == "" {
		return ports.Scope{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing dealer identity")
	}

	return ports.Scope{
		Role:     domain.Role(role),
		UserID:   userID,
		DealerID: dealerID,
	}, nil
}
