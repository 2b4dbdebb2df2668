package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/service"
)

func navGet(target, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	return c, rec
}

func TestRoutes_Anonymous(t *testing.T) {
	h := NewNavigationHandler(service.NewNavigationService(zerolog.Nop()))
	c, rec := navGet("/v1/navigation", "")

	if err := h.Routes(c); err != nil {
		t.Fatalf("Routes: %v", err)
	}
	var tree domain.RouteTree
	if err := json.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if tree.View != domain.ViewUnauthenticated {
		t.Errorf("view = %v, want unauthenticated", tree.View)
	}
	if tree.Initial != "login" {
		t.Errorf("initial = %q, want login", tree.Initial)
	}
}

func TestRoutes_DealerSession(t *testing.T) {
	h := NewNavigationHandler(service.NewNavigationService(zerolog.Nop()))
	c, rec := navGet("/v1/navigation", "dealer")

	if err := h.Routes(c); err != nil {
		t.Fatalf("Routes: %v", err)
	}
	var tree domain.RouteTree
	if err := json.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if tree.View != domain.ViewPartnerDealer {
		t.Errorf("view = %v, want partner_dealer", tree.View)
	}
	if len(tree.Drawer) != 23 {
		t.Errorf("drawer entries = %d, want 23", len(tree.Drawer))
	}
}

func TestRoutes_LoadingOverridesSession(t *testing.T) {
	h := NewNavigationHandler(service.NewNavigationService(zerolog.Nop()))
	c, rec := navGet("/v1/navigation?loading=true", "dealer")

	if err := h.Routes(c); err != nil {
		t.Fatalf("Routes: %v", err)
	}
	var tree domain.RouteTree
	if err := json.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if tree.View != domain.ViewLoading {
		t.Errorf("view = %v, want loading", tree.View)
	}
}

func TestPermissions_RequiresSession(t *testing.T) {
	h := NewNavigationHandler(service.NewNavigationService(zerolog.Nop()))
	c, _ := navGet("/v1/permissions", "")

	err := h.Permissions(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("err = %v, want 401 HTTPError", err)
	}
}

func TestPermissions_DealerListing(t *testing.T) {
	h := NewNavigationHandler(service.NewNavigationService(zerolog.Nop()))
	c, rec := navGet("/v1/permissions", "dealer")

	if err := h.Permissions(c); err != nil {
		t.Fatalf("Permissions: %v", err)
	}
	var resp permissionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Role != "dealer" {
		t.Errorf("role = %q, want dealer", resp.Role)
	}
	if len(resp.Resources) == 0 {
		t.Fatal("no resources listed for dealer")
	}
	actions, ok := resp.Actions[domain.ResourceOrders]
	if !ok {
		t.Fatalf("orders missing from actions map: %v", resp.Actions)
	}
	for _, a := range actions {
		if a == domain.ActionDelete {
			t.Error("dealer granted orders:delete through the listing")
		}
	}
}
