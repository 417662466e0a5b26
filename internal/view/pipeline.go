package view

// State is the complete user-controlled state of one view, as plain data.
type State struct {
	Query   string      `json:"query"`
	Filters FilterState `json:"filters"`
	Sort    SortState   `json:"sort"`
	Page    PageState   `json:"page"`
}

// NewState returns the state of a freshly mounted view.
func NewState(pageSize int) State {
	return State{
		Filters: FilterState{},
		Page:    NewPageState(pageSize),
	}
}

// Clone returns a copy that shares nothing mutable with s.
func (s State) Clone() State {
	s.Filters = s.Filters.Clone()
	return s
}

// Config describes how to run the pipeline over items of type T.
type Config[T any] struct {
	Schema     *Schema[T]
	SearchKeys []string
	Filters    []FilterSpec

	// Threshold is the search strictness, used as given: 0 requires an
	// exact substring match. Callers wanting fuzzy search pass
	// DefaultThreshold or a configured value.
	Threshold float64

	// PageWindow is how many page links show either side of the current
	// page. 0 shows only the current, first and last pages.
	PageWindow int

	// Index, when set, must have been built from the items passed to Run.
	Index *Index[T]
}

// Result is the view model of one pipeline run.
type Result[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`

	// VisibleIDs are the ids of the filtered, sorted collection before
	// pagination, the domain of selection and bulk actions.
	VisibleIDs []string `json:"visibleIds"`

	Pages []PageLink `json:"pages"`
	Chips []Chip     `json:"chips,omitempty"`
	State State      `json:"state"`
}

// Ordered runs search, filter and sort, returning every matching item.
func Ordered[T any](items []T, st State, cfg Config[T]) []T {
	var matched []T
	if cfg.Index != nil {
		matched = cfg.Index.Search(st.Query, cfg.Threshold)
	} else {
		matched = Search(items, st.Query, cfg.SearchKeys, cfg.Schema, cfg.Threshold)
	}
	matched = Filter(matched, st.Filters, cfg.Filters, cfg.Schema)
	return Sort(matched, st.Sort, cfg.Schema)
}

// Run executes search, filter, sort and paginate. The returned State has
// its page clamped to the result.
func Run[T any](items []T, st State, cfg Config[T]) Result[T] {
	ordered := Ordered(items, st, cfg)
	page := Paginate(ordered, st.Page.CurrentPage, st.Page.ItemsPerPage)

	st = st.Clone()
	st.Page = PageState{CurrentPage: page.Meta.Page, ItemsPerPage: page.Meta.PageSize}

	return Result[T]{
		Items:      page.Items,
		Meta:       page.Meta,
		VisibleIDs: cfg.Schema.IDs(ordered),
		Pages:      PageWindow(page.Meta.Page, page.Meta.TotalPages, cfg.PageWindow),
		Chips:      st.Filters.Chips(cfg.Filters),
		State:      st,
	}
}

// Render runs the pipeline with the controller's state and records the
// result on the controller.
func Render[T any](c *Controller, items []T, cfg Config[T]) Result[T] {
	var res Result[T]
	c.observeRun(func(st State) (PageMeta, []string) {
		res = Run(items, st, cfg)
		return res.Meta, res.VisibleIDs
	})
	return res
}
