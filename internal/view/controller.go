package view

import (
	"context"
	"sync"
)

// Controller is the event layer for one mounted view. It owns the view's
// State, SelectionSet and Dispatcher, applies user events to them, and
// records what the pipeline last produced so page navigation can clamp
// and selection can be pruned. Safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	defaults   State
	state      State
	querySeq   uint64
	meta       PageMeta
	selection  *SelectionSet
	dispatcher *Dispatcher
}

// NewController mounts a view with the given default state.
func NewController(defaults State, d *Dispatcher) *Controller {
	if d == nil {
		d = NewDispatcher(0)
	}
	return &Controller{
		defaults:   defaults.Clone(),
		state:      defaults.Clone(),
		selection:  NewSelectionSet(),
		dispatcher: d,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Meta returns the page metadata of the last observed run.
func (c *Controller) Meta() PageMeta {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meta
}

// Observe records a pipeline run: the clamped page and the visible ids.
// Selected ids that are no longer visible are dropped, and a pending
// action is discarded once any of its ids is hidden.
func (c *Controller) Observe(meta PageMeta, visible []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observe(meta, visible)
}

// observeRun runs the pipeline on the current state and records its
// result under one lock, so events arriving mid-run apply after it.
func (c *Controller) observeRun(run func(State) (PageMeta, []string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observe(run(c.state.Clone()))
}

func (c *Controller) observe(meta PageMeta, visible []string) {
	c.meta = meta
	c.state.Page = PageState{CurrentPage: meta.Page, ItemsPerPage: meta.PageSize}
	c.selection.SetVisible(visible)
	if p, ok := c.dispatcher.Pending(); ok && !c.selection.AllVisible(p.IDs) {
		c.dispatcher.Discard()
	}
}

// SetQuery sets the search query and returns to page 1. Queries carry a
// sequence number; one older than the last applied is dropped and false
// is returned, so the last query typed wins. A zero seq always applies.
func (c *Controller) SetQuery(q string, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != 0 {
		if seq < c.querySeq {
			return false
		}
		c.querySeq = seq
	}
	c.state.Query = q
	c.state.Page.CurrentPage = 1
	return true
}

// SetFilter sets one filter; an empty value removes it. Returns to page 1.
func (c *Controller) SetFilter(key string, v FilterValue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filters = c.state.Filters.With(key, v)
	c.state.Page.CurrentPage = 1
}

// ClearFilter removes one filter.
func (c *Controller) ClearFilter(key string) {
	c.SetFilter(key, FilterValue{})
}

// ClearFilters removes every filter.
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filters = FilterState{}
	c.state.Page.CurrentPage = 1
}

// ToggleSort applies a sort-header click on key.
func (c *Controller) ToggleSort(key string) SortState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = c.state.Sort.Toggle(key)
	return c.state.Sort
}

// SetSort replaces the sort.
func (c *Controller) SetSort(s SortState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = SortBy(s.Key, s.Direction)
}

// ClearSort restores the original order.
func (c *Controller) ClearSort() {
	c.SetSort(SortState{})
}

// GoToPage moves to page n, clamped to the last observed page count.
func (c *Controller) GoToPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Page = c.state.Page.GoTo(n, c.totalPages())
}

// NextPage moves forward one page if there is one.
func (c *Controller) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Page = c.state.Page.GoTo(c.state.Page.CurrentPage+1, c.totalPages())
}

// PrevPage moves back one page if there is one.
func (c *Controller) PrevPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Page = c.state.Page.GoTo(c.state.Page.CurrentPage-1, c.totalPages())
}

// FirstPage moves to page 1.
func (c *Controller) FirstPage() {
	c.GoToPage(1)
}

// LastPage moves to the last observed page.
func (c *Controller) LastPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Page = c.state.Page.GoTo(c.totalPages(), c.totalPages())
}

// SetPageSize changes the page size and returns to page 1. Non-positive
// sizes are ignored.
func (c *Controller) SetPageSize(n int) {
	if n < 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Page = c.state.Page.WithPageSize(n)
}

func (c *Controller) totalPages() int {
	return max(c.meta.TotalPages, 1)
}

// Toggle flips the selection of id if it is visible.
func (c *Controller) Toggle(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Toggle(id)
}

// SelectAll selects every visible id.
func (c *Controller) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.SelectAll(c.selection.Visible())
}

// DeselectAll clears the selection.
func (c *Controller) DeselectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.DeselectAll()
}

// Selection returns a copy of the selection.
func (c *Controller) Selection() SelectionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Snapshot()
}

// Actions returns the bulk actions offered by this view.
func (c *Controller) Actions() []Action {
	return c.dispatcher.Actions()
}

// Pending returns the bulk action awaiting confirmation, if any.
func (c *Controller) Pending() (Pending, bool) {
	return c.dispatcher.Pending()
}

// Dispatch applies the bulk action key to the selection.
// See Dispatcher.Dispatch.
func (c *Controller) Dispatch(ctx context.Context, key string) (DispatchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatcher.Dispatch(ctx, key, c.selection)
}

// Confirm runs the pending destructive action.
func (c *Controller) Confirm(ctx context.Context, token string) (DispatchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatcher.Confirm(ctx, token, c.selection)
}

// Cancel drops the pending destructive action.
func (c *Controller) Cancel(token string) (DispatchResult, error) {
	return c.dispatcher.Cancel(token)
}

// Reset restores the mount-time state, clears the selection and drops
// any pending action.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.defaults.Clone()
	c.querySeq = 0
	c.meta = PageMeta{}
	c.selection.DeselectAll()
	c.dispatcher.Discard()
}
