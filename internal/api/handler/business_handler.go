package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

// BusinessHandler handles HTTP requests for the business profile area
// shared by partners and dealers: works, events, gallery, notes, loyalty
// points, and profile statistics.
type BusinessHandler struct {
	service ports.BusinessService
}

func NewBusinessHandler(service ports.BusinessService) *BusinessHandler {
	return &BusinessHandler{service: service}
}

type workRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Year        int    `json:"year,omitempty" validate:"omitempty,gte=1900"`
}

type eventRequest struct {
	Title    string    `json:"title" validate:"required"`
	Venue    string    `json:"venue,omitempty"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

type galleryRequest struct {
	Caption  string `json:"caption,omitempty"`
	MediaURL string `json:"media_url" validate:"required,url"`
}

type noteRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body,omitempty"`
}

type loyaltyRequest struct {
	Points int64  `json:"points" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

type listWorksResponse struct {
	Data       []*domain.Work     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type listEventsResponse struct {
	Data       []*domain.Event    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type listGalleryResponse struct {
	Data       []*domain.GalleryItem `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

type listNotesResponse struct {
	Data       []*domain.Note     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type loyaltyResponse struct {
	Balance    int64                 `json:"balance"`
	Ledger     []*domain.LoyaltyEntry `json:"ledger"`
	Pagination paginationResponse    `json:"pagination"`
}

// ListWorks handles GET /v1/business/works.
//
// @Summary      List showcased works
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listWorksResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/business/works [get]
func (h *BusinessHandler) ListWorks(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	result, err := h.service.ListWorks(c.Request().Context(), scope, listInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listWorksResponse{Data: result.Items, Pagination: toPagination(result)})
}

// AddWork handles POST /v1/business/works.
//
// @Summary      Showcase a completed work
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      workRequest  true  "Work details"
// @Success      201   {object}  domain.Work
// @Failure      400   {object}  map[string]string
// @Router       /v1/business/works [post]
func (h *BusinessHandler) AddWork(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req workRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	work, err := h.service.AddWork(c.Request().Context(), scope, &domain.Work{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Year:        req.Year,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, work)
}

// ListEvents handles GET /v1/business/events.
//
// @Summary      List business events
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listEventsResponse
// @Router       /v1/business/events [get]
func (h *BusinessHandler) ListEvents(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	result, err := h.service.ListEvents(c.Request().Context(), scope, listInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEventsResponse{Data: result.Items, Pagination: toPagination(result)})
}

// AddEvent handles POST /v1/business/events.
//
// @Summary      Announce a business event
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventRequest  true  "Event details"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  map[string]string
// @Router       /v1/business/events [post]
func (h *BusinessHandler) AddEvent(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	event, err := h.service.AddEvent(c.Request().Context(), scope, &domain.Event{
		Title:    req.Title,
		Venue:    req.Venue,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// ListGallery handles GET /v1/business/gallery.
//
// @Summary      List gallery items
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listGalleryResponse
// @Router       /v1/business/gallery [get]
func (h *BusinessHandler) ListGallery(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	result, err := h.service.ListGallery(c.Request().Context(), scope, listInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listGalleryResponse{Data: result.Items, Pagination: toPagination(result)})
}

// AddGalleryItem handles POST /v1/business/gallery.
//
// @Summary      Add a gallery item
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      galleryRequest  true  "Media reference"
// @Success      201   {object}  domain.GalleryItem
// @Failure      400   {object}  map[string]string
// @Router       /v1/business/gallery [post]
func (h *BusinessHandler) AddGalleryItem(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req galleryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	item, err := h.service.AddGalleryItem(c.Request().Context(), scope, &domain.GalleryItem{
		Caption:  req.Caption,
		MediaURL: req.MediaURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// DeleteGalleryItem handles DELETE /v1/business/gallery/:id.
//
// @Summary      Remove a gallery item
// @Tags         business
// @Security     BearerAuth
// @Param        id  path  string  true  "Gallery item ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/business/gallery/{id} [delete]
func (h *BusinessHandler) DeleteGalleryItem(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteGalleryItem(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListOffers handles GET /v1/business/offers.
//
// @Summary      List the profile's offers
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listOffersResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/business/offers [get]
func (h *BusinessHandler) ListOffers(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	result, err := h.service.ListOffers(c.Request().Context(), scope, listInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listOffersResponse{Data: result.Items, Pagination: toPagination(result)})
}

// AddOffer handles POST /v1/business/offers.
//
// @Summary      Publish an offer on the profile
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      offerRequest  true  "Offer details"
// @Success      201   {object}  domain.Offer
// @Failure      400   {object}  map[string]string
// @Router       /v1/business/offers [post]
func (h *BusinessHandler) AddOffer(c echo.Context) error {
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

// ListNotes handles GET /v1/business/notes. Notes are private to the
// owning profile.
//
// @Summary      List private notes
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listNotesResponse
// @Router       /v1/business/notes [get]
func (h *BusinessHandler) ListNotes(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	result, err := h.service.ListNotes(c.Request().Context(), scope, listInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listNotesResponse{Data: result.Items, Pagination: toPagination(result)})
}

// AddNote handles POST /v1/business/notes.
//
// @Summary      Create a private note
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      noteRequest  true  "Note content"
// @Success      201   {object}  domain.Note
// @Failure      400   {object}  map[string]string
// @Router       /v1/business/notes [post]
func (h *BusinessHandler) AddNote(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	note, err := h.service.AddNote(c.Request().Context(), scope, &domain.Note{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, note)
}

// UpdateNote handles PUT /v1/business/notes/:id.
//
// @Summary      Update a private note
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Note ID"
// @Param        body  body      noteRequest  true  "Note content"
// @Success      200   {object}  domain.Note
// @Failure      404   {object}  map[string]string
// @Router       /v1/business/notes/{id} [put]
func (h *BusinessHandler) UpdateNote(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	note, err := h.service.UpdateNote(c.Request().Context(), scope, c.Param("id"), &domain.Note{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

// DeleteNote handles DELETE /v1/business/notes/:id.
//
// @Summary      Delete a private note
// @Tags         business
// @Security     BearerAuth
// @Param        id  path  string  true  "Note ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/business/notes/{id} [delete]
func (h *BusinessHandler) DeleteNote(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteNote(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Loyalty handles GET /v1/business/loyalty: the running balance plus a
// page of the ledger.
//
// @Summary      Loyalty balance and ledger
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  loyaltyResponse
// @Router       /v1/business/loyalty [get]
func (h *BusinessHandler) Loyalty(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	view, err := h.service.Loyalty(c.Request().Context(), scope, listInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loyaltyResponse{
		Balance:    view.Balance,
		Ledger:     view.Ledger.Items,
		Pagination: toPagination(&view.Ledger),
	})
}

// AddLoyaltyEntry handles POST /v1/business/loyalty.
//
// @Summary      Credit or debit loyalty points
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loyaltyRequest  true  "Points (negative to redeem) and reason"
// @Success      201   {object}  domain.LoyaltyEntry
// @Failure      400   {object}  map[string]string
// @Router       /v1/business/loyalty [post]
func (h *BusinessHandler) AddLoyaltyEntry(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req loyaltyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	entry, err := h.service.AddLoyaltyEntry(c.Request().Context(), scope, ports.LoyaltyInput{
		Points: req.Points,
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// Stats handles GET /v1/business/stats.
//
// @Summary      Business profile statistics
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.BusinessStats
// @Router       /v1/business/stats [get]
func (h *BusinessHandler) Stats(c echo.Context) error {
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
