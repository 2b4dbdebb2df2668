package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

// OfferHandler handles HTTP requests for dealer offers.
type OfferHandler struct {
	service ports.DealerService
}

func NewOfferHandler(service ports.DealerService) *OfferHandler {
	return &OfferHandler{service: service}
}

type offerRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	DiscountPct float64   `json:"discount_pct" validate:"gte=0,lte=100"`
	ValidFrom   time.Time `json:"valid_from" validate:"required"`
	ValidUntil  time.Time `json:"valid_until" validate:"required,gtfield=ValidFrom"`
}

type listOffersResponse struct {
	Data       []*domain.Offer    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func (r offerRequest) toOffer() *domain.Offer {
	return &domain.Offer{
		Title:       r.Title,
		Description: r.Description,
		DiscountPct: r.DiscountPct,
		ValidFrom:   r.ValidFrom,
		ValidUntil:  r.ValidUntil,
	}
}

// List handles GET /v1/offers.
//
// @Summary      List offers
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Rows per page (max 100)"
// @Param        search  query     string  false  "Substring match on title/description"
// @Param        view    query     string  false  "Set to 'table' for the datatable envelope"
// @Success      200     {object}  listOffersResponse
// @Failure      403     {object}  map[string]string
// @Router       /v1/offers [get]
func (h *OfferHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	in := listInput(c)
	result, err := h.service.ListOffers(c.Request().Context(), scope, in)
	if err != nil {
		return err
	}

	if wantsTable(c) {
		view := tableView(offerColumns, func(o *domain.Offer) string { return o.ID }, result, in)
		return c.JSON(http.StatusOK, view)
	}
	return c.JSON(http.StatusOK, listOffersResponse{Data: result.Items, Pagination: toPagination(result)})
}

// Create handles POST /v1/offers.
//
// @Summary      Publish an offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      offerRequest  true  "Offer details"
// @Success      201   {object}  domain.Offer
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/offers [post]
func (h *OfferHandler) Create(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req offerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	offer, err := h.service.AddOffer(c.Request().Context(), scope, req.toOffer())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, offer)
}

// Update handles PUT /v1/offers/:id.
//
// @Summary      Update an offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Offer ID"
// @Param        body  body      offerRequest  true  "Offer details"
// @Success      200   {object}  domain.Offer
// @Failure      404   {object}  map[string]string
// @Router       /v1/offers/{id} [put]
func (h *OfferHandler) Update(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req offerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	offer, err := h.service.UpdateOffer(c.Request().Context(), scope, c.Param("id"), req.toOffer())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offer)
}

// Delete handles DELETE /v1/offers/:id.
//
// @Summary      Withdraw an offer
// @Tags         offers
// @Security     BearerAuth
// @Param        id  path  string  true  "Offer ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/offers/{id} [delete]
func (h *OfferHandler) Delete(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteOffer(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Like handles POST /v1/offers/:id/like. One like per user per offer.
//
// @Summary      Like an offer
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Offer ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/offers/{id}/like [post]
func (h *OfferHandler) Like(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	if err := h.service.LikeOffer(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "liked"})
}
