package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
	"github.com/buildlink/directory-system/pkg/datatable"
)

// tableView shapes a paged service result into the datatable envelope:
// column metadata plus formatted rows, with the controlled sort and
// search state reflecting the request.
func tableView[T any](cols []datatable.Column[T], rowID func(T) string, res *ports.ListResult[T], in ports.ListInput) datatable.View {
	tbl := datatable.New(cols, rowID)
	if res.Limit > 0 {
		tbl.SetPageSize(res.Limit)
	}
	tbl.SetRows(res.Items, res.Total)
	tbl.SetPage(res.Page)
	tbl.SetSearch(in.Search)
	if in.SortBy != "" {
		tbl.ToggleSort(in.SortBy)
		if !in.SortAsc {
			tbl.ToggleSort(in.SortBy)
		}
	}
	return tbl.Render()
}

var productColumns = []datatable.Column[*domain.Product]{
	{ID: "name", Label: "Product", Align: datatable.AlignLeft, Sortable: true,
		Format: func(p *domain.Product) string { return p.Name }},
	{ID: "category", Label: "Category", Align: datatable.AlignLeft,
		Format: func(p *domain.Product) string { return p.Category }},
	{ID: "price", Label: "Price", Align: datatable.AlignRight, Sortable: true,
		Format: func(p *domain.Product) string { return fmt.Sprintf("%.2f %s", p.Price, p.Currency) }},
	{ID: "in_stock", Label: "In Stock", Align: datatable.AlignCenter,
		Format: func(p *domain.Product) string { return strconv.FormatBool(p.InStock) }},
}

var enquiryColumns = []datatable.Column[*domain.Enquiry]{
	{ID: "reference", Label: "Reference", Align: datatable.AlignLeft,
		Format: func(e *domain.Enquiry) string { return e.Reference }},
	{ID: "customer", Label: "Customer", Align: datatable.AlignLeft,
		Format: func(e *domain.Enquiry) string { return e.CustomerName }},
	{ID: "subject", Label: "Subject", Align: datatable.AlignLeft,
		Format: func(e *domain.Enquiry) string { return e.Subject }},
	{ID: "status", Label: "Status", Align: datatable.AlignCenter,
		Format: func(e *domain.Enquiry) string { return string(e.Status) }},
	{ID: "created_at", Label: "Received", Align: datatable.AlignRight, Sortable: true,
		Format: func(e *domain.Enquiry) string { return e.CreatedAt.Format(time.RFC3339) }},
}

var feedbackColumns = []datatable.Column[*domain.Feedback]{
	{ID: "customer", Label: "Customer", Align: datatable.AlignLeft,
		Format: func(f *domain.Feedback) string { return f.CustomerName }},
	{ID: "rating", Label: "Rating", Align: datatable.AlignCenter, Sortable: true,
		Format: func(f *domain.Feedback) string { return strconv.Itoa(f.Rating) }},
	{ID: "comment", Label: "Comment", Align: datatable.AlignLeft,
		Format: func(f *domain.Feedback) string { return f.Comment }},
	{ID: "reported", Label: "Reported", Align: datatable.AlignCenter,
		Format: func(f *domain.Feedback) string { return strconv.FormatBool(f.Reported) }},
}

var offerColumns = []datatable.Column[*domain.Offer]{
	{ID: "title", Label: "Offer", Align: datatable.AlignLeft, Sortable: true,
		Format: func(o *domain.Offer) string { return o.Title }},
	{ID: "discount", Label: "Discount", Align: datatable.AlignRight,
		Format: func(o *domain.Offer) string { return fmt.Sprintf("%.1f%%", o.DiscountPct) }},
	{ID: "valid_until", Label: "Valid Until", Align: datatable.AlignRight,
		Format: func(o *domain.Offer) string { return o.ValidUntil.Format("2006-01-02") }},
	{ID: "likes", Label: "Likes", Align: datatable.AlignRight, Sortable: true,
		Format: func(o *domain.Offer) string { return strconv.FormatInt(o.Likes, 10) }},
}
