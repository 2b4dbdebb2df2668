package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

// EnquiryHandler handles HTTP requests for customer enquiries.
type EnquiryHandler struct {
	service ports.DealerService
}

func NewEnquiryHandler(service ports.DealerService) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

type createEnquiryRequest struct {
	DealerID      string `json:"dealer_id" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	Subject       string `json:"subject" validate:"required"`
	Message       string `json:"message" validate:"required"`
	ProductID     string `json:"product_id,omitempty"`
}

type respondEnquiryRequest struct {
	Message string `json:"message" validate:"required"`
	Close   bool   `json:"close"`
}

type escalateEnquiryRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type listEnquiriesResponse struct {
	Data       []*domain.Enquiry  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /v1/enquiries.
//
// @Summary      List enquiries
// @Tags         enquiries
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Rows per page (max 100)"
// @Param        status  query     string  false  "Status filter (open/responded/escalated/closed)"
// @Param        search  query     string  false  "Substring match on reference/subject/customer"
// @Param        view    query     string  false  "Set to 'table' for the datatable envelope"
// @Success      200     {object}  listEnquiriesResponse
// @Failure      403     {object}  map[string]string
// @Router       /v1/enquiries [get]
func (h *EnquiryHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	in := listInput(c)
	result, err := h.service.ListEnquiries(c.Request().Context(), scope, in)
	if err != nil {
		return err
	}

	if wantsTable(c) {
		view := tableView(enquiryColumns, func(e *domain.Enquiry) string { return e.ID }, result, in)
		return c.JSON(http.StatusOK, view)
	}
	return c.JSON(http.StatusOK, listEnquiriesResponse{Data: result.Items, Pagination: toPagination(result)})
}

// Get handles GET /v1/enquiries/:id.
//
// @Summary      Get one enquiry with its response thread
// @Tags         enquiries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Enquiry ID"
// @Success      200  {object}  domain.Enquiry
// @Failure      404  {object}  map[string]string
// @Router       /v1/enquiries/{id} [get]
func (h *EnquiryHandler) Get(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	enquiry, err := h.service.GetEnquiry(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enquiry)
}

// Create handles POST /v1/enquiries. Any authenticated caller may raise
// an enquiry against a dealer.
//
// @Summary      Raise an enquiry against a dealer
// @Tags         enquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEnquiryRequest  true  "Enquiry details"
// @Success      201   {object}  domain.Enquiry
// @Failure      400   {object}  map[string]string
// @Router       /v1/enquiries [post]
func (h *EnquiryHandler) Create(c echo.Context) error {
	if _, err := ctxScope(c); err != nil {
		return err
	}

	var req createEnquiryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	enquiry, err := h.service.CreateEnquiry(c.Request().Context(), req.DealerID, &domain.Enquiry{
		DealerID:      req.DealerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Subject:       req.Subject,
		Message:       req.Message,
		ProductID:     req.ProductID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, enquiry)
}

// Respond handles POST /v1/enquiries/:id/respond.
//
// @Summary      Reply to an enquiry
// @Tags         enquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Enquiry ID"
// @Param        body  body      respondEnquiryRequest  true  "Reply message; set close=true to close the thread"
// @Success      200   {object}  domain.Enquiry
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/enquiries/{id}/respond [post]
func (h *EnquiryHandler) Respond(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req respondEnquiryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	enquiry, err := h.service.RespondToEnquiry(c.Request().Context(), scope, ports.RespondInput{
		EnquiryID: c.Param("id"),
		Message:   req.Message,
		Close:     req.Close,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enquiry)
}

// Escalate handles POST /v1/enquiries/:id/escalate. The escalation is
// processed asynchronously; replies per dealer keep their order.
//
// @Summary      Escalate an enquiry to the admin queue
// @Tags         enquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Enquiry ID"
// @Param        body  body      escalateEnquiryRequest  true  "Escalation reason"
// @Success      202   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/enquiries/{id}/escalate [post]
func (h *EnquiryHandler) Escalate(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req escalateEnquiryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.service.SendEnquiryToAdmin(c.Request().Context(), scope, c.Param("id"), req.Reason); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "escalation queued"})
}
