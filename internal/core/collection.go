package core

import (
	"io"
	"slices"
	"time"

	"github.com/JonMunkholm/dashboard/internal/export"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// ViewOptions are the pipeline defaults shared by every collection.
// Threshold and PageWindow are used as given; a zero Threshold means
// exact substring search.
type ViewOptions struct {
	PageSize       int
	Threshold      float64
	PageWindow     int
	ConfirmTTL     time.Duration
	IndexCacheSize int
}

// Collection is a registered, renderable collection. It hides the item
// type so the transport layers can treat every collection alike.
type Collection interface {
	Info() CollectionInfo
	Len() int
	Version() uint64

	// DefaultState is the state of a freshly mounted view.
	DefaultState() view.State

	// NewController mounts a view over this collection with its bulk
	// actions.
	NewController() *view.Controller

	// Render runs the pipeline with ctl's state and returns the page.
	Render(ctl *view.Controller) ViewResult

	// Export writes every item matching st, in st's order, to w. When ids
	// is non-empty only those items are written. It returns the number of
	// items written.
	Export(w io.Writer, f export.Format, st view.State, ids []string, opts export.Options) (int, error)

	// IndexBuilds reports how many search indexes have been built.
	IndexBuilds() uint64
}

type collection[T any] struct {
	info    CollectionInfo
	schema  *view.Schema[T]
	store   *store[T]
	actions []view.Action
	indexes *view.IndexCache[T]
	opts    ViewOptions
}

func newCollection[T any](info CollectionInfo, schema *view.Schema[T], st *store[T], actions []view.Action, opts ViewOptions) (*collection[T], error) {
	indexes, err := view.NewIndexCache[T](opts.IndexCacheSize)
	if err != nil {
		return nil, err
	}

	info.Actions = make([]ActionInfo, len(actions))
	for i, a := range actions {
		info.Actions[i] = ActionInfo{Key: a.Key, Label: a.Label, Destructive: a.Destructive}
	}

	return &collection[T]{
		info:    info,
		schema:  schema,
		store:   st,
		actions: actions,
		indexes: indexes,
		opts:    opts,
	}, nil
}

// Info describes the collection. Select and checkbox filters declared
// without options offer the distinct values currently present.
func (c *collection[T]) Info() CollectionInfo {
	info := c.info
	items, _ := c.store.Snapshot()
	info.Filters = make([]view.FilterSpec, len(c.info.Filters))
	for i, spec := range c.info.Filters {
		if len(spec.Options) == 0 && (spec.Type == view.FilterSelect || spec.Type == view.FilterCheckbox) {
			spec.Options = c.distinct(items, spec.Key)
		}
		info.Filters[i] = spec
	}
	return info
}

func (c *collection[T]) Len() int            { return c.store.Len() }
func (c *collection[T]) Version() uint64     { return c.store.Version() }
func (c *collection[T]) IndexBuilds() uint64 { return c.indexes.Builds() }

func (c *collection[T]) DefaultState() view.State {
	return view.NewState(c.opts.PageSize)
}

func (c *collection[T]) NewController() *view.Controller {
	return view.NewController(c.DefaultState(), view.NewDispatcher(c.opts.ConfirmTTL, c.actions...))
}

// config builds the pipeline config for a snapshot, reusing the cached
// search index for its version.
func (c *collection[T]) config(items []T, version uint64) view.Config[T] {
	index := c.indexes.Get(c.info.Key, version, func() *view.Index[T] {
		return view.NewIndex(items, c.schema, c.info.SearchKeys)
	})
	return view.Config[T]{
		Schema:     c.schema,
		SearchKeys: c.info.SearchKeys,
		Filters:    c.info.Filters,
		Threshold:  c.opts.Threshold,
		PageWindow: c.opts.PageWindow,
		Index:      index,
	}
}

func (c *collection[T]) Render(ctl *view.Controller) ViewResult {
	items, version := c.store.Snapshot()
	res := view.Render(ctl, items, c.config(items, version))

	rows := make([]Row, len(res.Items))
	for i, item := range res.Items {
		rows[i] = Row{ID: c.schema.ID(item), Cells: c.cells(item)}
	}

	out := ViewResult{
		Collection: c.info.Key,
		Rows:       rows,
		Meta:       res.Meta,
		Pages:      res.Pages,
		Chips:      res.Chips,
		VisibleIDs: res.VisibleIDs,
		State:      res.State,
		Selection:  ctl.Selection(),
	}
	if p, ok := ctl.Pending(); ok {
		out.Pending = &PendingInfo{
			Token:  p.Token,
			Action: p.Action.Key,
			Label:  p.Action.Label,
			Prompt: p.Prompt(),
			Count:  len(p.IDs),
		}
	}
	return out
}

func (c *collection[T]) Export(w io.Writer, f export.Format, st view.State, ids []string, opts export.Options) (int, error) {
	items, version := c.store.Snapshot()
	ordered := view.Ordered(items, st, c.config(items, version))
	if len(ids) > 0 {
		want := idSet(ids)
		ordered = slices.DeleteFunc(slices.Clone(ordered), func(item T) bool {
			_, ok := want[c.schema.ID(item)]
			return !ok
		})
	}

	if len(opts.Columns) == 0 {
		opts.Columns = c.info.Columns
	}
	if err := export.Write(w, f, ordered, opts, c.cell); err != nil {
		return 0, err
	}
	return len(ordered), nil
}

func (c *collection[T]) cell(item T, key string) string {
	f, ok := c.schema.Field(key)
	if !ok {
		return ""
	}
	return f.String(item)
}

func (c *collection[T]) distinct(items []T, key string) []view.Option {
	f, ok := c.schema.Field(key)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var values []string
	for _, item := range items {
		for _, v := range f.Values(item) {
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				values = append(values, v)
			}
		}
	}
	slices.Sort(values)

	opts := make([]view.Option, len(values))
	for i, v := range values {
		opts[i] = view.Option{Value: v, Label: v}
	}
	return opts
}

func (c *collection[T]) cells(item T) map[string]string {
	out := make(map[string]string, len(c.info.Columns))
	for _, col := range c.info.Columns {
		out[col.Key] = c.cell(item, col.Key)
	}
	return out
}
