package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

// FeedbackHandler handles HTTP requests for dealer feedback.
type FeedbackHandler struct {
	service ports.DealerService
}

func NewFeedbackHandler(service ports.DealerService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type reportFeedbackRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type listFeedbacksResponse struct {
	Data       []*domain.Feedback `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /v1/feedbacks.
//
// @Summary      List feedback entries
// @Tags         feedbacks
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Rows per page (max 100)"
// @Param        search  query     string  false  "Substring match on customer/comment"
// @Param        view    query     string  false  "Set to 'table' for the datatable envelope"
// @Success      200     {object}  listFeedbacksResponse
// @Failure      403     {object}  map[string]string
// @Router       /v1/feedbacks [get]
func (h *FeedbackHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	in := listInput(c)
	result, err := h.service.ListFeedbacks(c.Request().Context(), scope, in)
	if err != nil {
		return err
	}

	if wantsTable(c) {
		view := tableView(feedbackColumns, func(f *domain.Feedback) string { return f.ID }, result, in)
		return c.JSON(http.StatusOK, view)
	}
	return c.JSON(http.StatusOK, listFeedbacksResponse{Data: result.Items, Pagination: toPagination(result)})
}

// Report handles POST /v1/feedbacks/:id/report. Dealers flag abusive
// entries for admin review; the entry itself is never edited.
//
// @Summary      Report a feedback entry
// @Tags         feedbacks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Feedback ID"
// @Param        body  body      reportFeedbackRequest  true  "Report reason"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/feedbacks/{id}/report [post]
func (h *FeedbackHandler) Report(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req reportFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.service.ReportFeedback(c.Request().Context(), scope, c.Param("id"), req.Reason); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "reported"})
}
