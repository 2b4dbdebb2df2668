// Package datatable implements a generic, controlled table engine used to
// shape list responses: column metadata, sorting, pagination, row
// selection, and loading/empty presentation states.
package datatable

import (
	"fmt"
	"time"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Column describes one table column over rows of type T. Format renders
// the cell value; nil formats to an empty cell.
type Column[T any] struct {
	ID       string
	Label    string
	Align    Align
	Sortable bool
	Format   func(T) string
}

// Sort is the controlled sort state: one column, one direction.
type Sort struct {
	Column    string `json:"column"`
	Ascending bool   `json:"ascending"`
}

// Pagination is the page window reported to clients. Total is the count
// across all pages, not just the loaded rows.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	Pages    int   `json:"pages"`
}

// Table holds the controlled state for one rendered table. It is not
// safe for concurrent use; each request builds its own instance.
type Table[T any] struct {
	columns  []Column[T]
	rows     []T
	rowID    func(T) string
	sort     Sort
	search   string
	onSearch func(string)
	debounce *Debouncer
	page     int
	pageSize int
	total    int64
	loading  bool
	selected map[string]bool
}

const defaultPageSize = 20

// New builds a table over the given columns. rowID keys row selection;
// when nil, rows are keyed by their position.
func New[T any](columns []Column[T], rowID func(T) string) *Table[T] {
	return &Table[T]{
		columns:  columns,
		rowID:    rowID,
		debounce: NewDebouncer(0),
		page:     1,
		pageSize: defaultPageSize,
		selected: make(map[string]bool),
	}
}

// SetRows replaces the loaded page of rows and the total count, and
// clears the loading state.
func (t *Table[T]) SetRows(rows []T, total int64) {
	t.rows = rows
	t.total = total
	t.loading = false
}

func (t *Table[T]) SetLoading(loading bool) {
	t.loading = loading
}

// ToggleSort sorts by the given column, flipping direction when the
// column is already active. Unknown or non-sortable columns are ignored.
func (t *Table[T]) ToggleSort(columnID string) {
	col, ok := t.column(columnID)
	if !ok || !col.Sortable {
		return
	}
	if t.sort.Column == columnID {
		t.sort.Ascending = !t.sort.Ascending
		return
	}
	t.sort = Sort{Column: columnID, Ascending: true}
}

func (t *Table[T]) Sort() Sort { return t.sort }

// OnSearch registers fn to receive the search term once input settles.
// A non-positive delay uses DefaultDebounce.
func (t *Table[T]) OnSearch(delay time.Duration, fn func(string)) {
	t.onSearch = fn
	t.debounce = NewDebouncer(delay)
}

// SetSearch records the controlled search term. The registered search
// callback, if any, fires through the debouncer so keystroke-rate calls
// collapse into one.
func (t *Table[T]) SetSearch(term string) {
	t.search = term
	if t.onSearch == nil {
		return
	}
	fn := t.onSearch
	t.debounce.Do(func() { fn(term) })
}

func (t *Table[T]) Search() string { return t.search }

// SetPage moves the window to the given 1-based page, clamped to valid
// bounds.
func (t *Table[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if pages := t.pages(); pages > 0 && page > pages {
		page = pages
	}
	t.page = page
}

func (t *Table[T]) SetPageSize(size int) {
	if size < 1 {
		size = defaultPageSize
	}
	t.pageSize = size
	t.SetPage(t.page)
}

func (t *Table[T]) Page() Pagination {
	return Pagination{Page: t.page, PageSize: t.pageSize, Total: t.total, Pages: t.pages()}
}

// ToggleSelect flips the selection of one row by key.
func (t *Table[T]) ToggleSelect(id string) {
	if t.selected[id] {
		delete(t.selected, id)
		return
	}
	t.selected[id] = true
}

// SelectAll marks every loaded row selected.
func (t *Table[T]) SelectAll() {
	for i, row := range t.rows {
		t.selected[t.keyOf(row, i)] = true
	}
}

func (t *Table[T]) ClearSelection() {
	t.selected = make(map[string]bool)
}

// Selected returns the selected row keys in load order.
func (t *Table[T]) Selected() []string {
	out := make([]string, 0, len(t.selected))
	for i, row := range t.rows {
		if key := t.keyOf(row, i); t.selected[key] {
			out = append(out, key)
		}
	}
	return out
}

// ColumnMeta is the serializable description of one column.
type ColumnMeta struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Align    Align  `json:"align"`
	Sortable bool   `json:"sortable"`
}

// Row is one rendered row: its selection key plus formatted cells in
// column order.
type Row struct {
	ID       string   `json:"id"`
	Cells    []string `json:"cells"`
	Selected bool     `json:"selected,omitempty"`
}

// View is the full render state sent to clients. Skeleton and Empty are
// mutually exclusive: a loading table shows placeholders, a loaded table
// with no rows shows the empty state.
type View struct {
	Columns    []ColumnMeta `json:"columns"`
	Rows       []Row        `json:"rows"`
	Sort       Sort         `json:"sort"`
	Search     string       `json:"search,omitempty"`
	Pagination Pagination   `json:"pagination"`
	Skeleton   bool         `json:"skeleton"`
	Empty      bool         `json:"empty"`
}

// Render materializes the current state.
func (t *Table[T]) Render() View {
	v := View{
		Columns:    make([]ColumnMeta, 0, len(t.columns)),
		Sort:       t.sort,
		Search:     t.search,
		Pagination: t.Page(),
		Skeleton:   t.loading,
		Empty:      !t.loading && len(t.rows) == 0,
	}
	for _, col := range t.columns {
		v.Columns = append(v.Columns, ColumnMeta{ID: col.ID, Label: col.Label, Align: col.Align, Sortable: col.Sortable})
	}
	if v.Skeleton {
		return v
	}
	v.Rows = make([]Row, 0, len(t.rows))
	for i, row := range t.rows {
		key := t.keyOf(row, i)
		cells := make([]string, 0, len(t.columns))
		for _, col := range t.columns {
			if col.Format == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, col.Format(row))
		}
		v.Rows = append(v.Rows, Row{ID: key, Cells: cells, Selected: t.selected[key]})
	}
	return v
}

func (t *Table[T]) column(id string) (Column[T], bool) {
	for _, col := range t.columns {
		if col.ID == id {
			return col, true
		}
	}
	var zero Column[T]
	return zero, false
}

func (t *Table[T]) keyOf(row T, index int) string {
	if t.rowID != nil {
		return t.rowID(row)
	}
	return fmt.Sprintf("%d", index)
}

func (t *Table[T]) pages() int {
	if t.total <= 0 || t.pageSize <= 0 {
		return 0
	}
	return int((t.total + int64(t.pageSize) - 1) / int64(t.pageSize))
}
