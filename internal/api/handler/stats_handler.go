package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildlink/directory-system/internal/core/ports"
)

// StatsHandler serves the dealer dashboard snapshot.
type StatsHandler struct {
	service ports.DealerService
}

func NewStatsHandler(service ports.DealerService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Dealer handles GET /v1/dealer/stats.
//
// @Summary      Dealer dashboard statistics
// @Tags         dealer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DealerStats
// @Failure      403  {object}  map[string]string
// @Router       /v1/dealer/stats [get]
func (h *StatsHandler) Dealer(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	stats, err := h.service.GetStats(c.Request().Context(), scope)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
