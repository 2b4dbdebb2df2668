package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buildlink/directory-system/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func toPagination[T any](r *ports.ListResult[T]) paginationResponse {
	return paginationResponse{
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}

// listInput parses the common list query parameters. Invalid numbers and
// dates are ignored; the service applies defaults and caps.
func listInput(c echo.Context) ports.ListInput {
	in := ports.ListInput{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sort_by"),
		SortAsc:  c.QueryParam("sort_order") == "asc",
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		in.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		in.Limit = limit
	}
	if from, err := time.Parse(time.RFC3339, c.QueryParam("date_from")); err == nil {
		in.DateFrom = from
	}
	if to, err := time.Parse(time.RFC3339, c.QueryParam("date_to")); err == nil {
		in.DateTo = to
	}
	return in
}

// wantsTable reports whether the caller asked for the datatable-shaped
// response (column metadata plus formatted rows) instead of raw records.
func wantsTable(c echo.Context) bool {
	return c.QueryParam("view") == "table"
}
