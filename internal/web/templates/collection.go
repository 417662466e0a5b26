package templates

import (
	"context"
	"slices"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/export"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// CollectionView is everything a collection page shows.
type CollectionView struct {
	Info      core.CollectionInfo
	Result    core.ViewResult
	PageSizes []int
}

// CollectionPage renders a collection with its toolbar inside the layout.
func CollectionPage(sidebar SidebarParams, v CollectionView) templ.Component {
	return Layout(v.Info.Label, sidebar, CollectionTable(v))
}

// CollectionTable renders the view itself. HTMX requests swap it in place.
func CollectionTable(v CollectionView) templ.Component {
	return component(func(ctx context.Context, p *page) {
		key := v.Info.Key
		res := v.Result

		p.raw(`<div id="collection"`)
		p.attr("data-collection", key)
		p.raw(`>`)

		// Search
		p.raw(`<form method="post"`)
		p.attr("action", api(key, "query"))
		p.raw(`><input type="search" name="query" placeholder="Search…"`)
		p.attr("value", res.State.Query)
		p.raw(`> <button>Search</button></form>`)

		filters(p, key, v.Info.Filters, res.State.Filters)
		chips(p, key, res.Chips)

		if res.Pending != nil {
			p.render(ctx, ConfirmDialog(key, *res.Pending))
		}
		bulkBar(p, key, v.Info.Actions, res.Selection)

		table(p, v)

		p.render(ctx, Pagination(key, res.Meta, res.Pages, v.PageSizes))

		p.raw(`<p>Export: `)
		for _, f := range export.Formats {
			p.raw(`<a`)
			p.attr("href", api(key, "export")+"?format="+string(f))
			p.raw(`>`)
			p.text(string(f))
			p.raw(`</a> `)
		}
		p.raw(`</p></div>`)
	})
}

func filters(p *page, key string, specs []view.FilterSpec, state view.FilterState) {
	if len(specs) == 0 {
		return
	}
	p.raw(`<details><summary>Filters</summary>`)
	for _, spec := range specs {
		current := state[spec.Key]
		p.raw(`<form method="post" class="inline"`)
		p.attr("action", api(key, "filter"))
		p.raw(`><input type="hidden" name="key"`)
		p.attr("value", spec.Key)
		p.raw(`><label>`)
		p.text(spec.Label)
		p.raw(` `)

		switch spec.Type {
		case view.FilterSelect:
			p.raw(`<select name="value"><option value="">All</option>`)
			for _, o := range spec.Options {
				p.raw(`<option`)
				p.attr("value", o.Value)
				if current.Value == o.Value {
					p.raw(` selected`)
				}
				p.raw(`>`)
				p.text(o.Label)
				p.raw(`</option>`)
			}
			p.raw(`</select>`)
		case view.FilterCheckbox:
			for _, o := range spec.Options {
				p.raw(`<label><input type="checkbox" name="values"`)
				p.attr("value", o.Value)
				if slices.Contains(current.Values, o.Value) {
					p.raw(` checked`)
				}
				p.raw(`>`)
				p.text(o.Label)
				p.raw(`</label> `)
			}
		default:
			placeholder := ""
			if spec.Type == view.FilterDate {
				placeholder = "2024-01-01..2024-12-31"
			}
			p.raw(`<input type="text" name="value"`)
			p.attr("value", current.Value)
			p.attr("placeholder", placeholder)
			p.raw(`>`)
		}
		p.raw(`</label> <button>Apply</button></form> `)
	}
	p.raw(`</details>`)
}

func chips(p *page, key string, active []view.Chip) {
	if len(active) == 0 {
		return
	}
	p.raw(`<p>`)
	for _, c := range active {
		p.raw(`<form method="post" class="inline"`)
		p.attr("action", api(key, "filter"))
		p.raw(`><input type="hidden" name="key"`)
		p.attr("value", c.Key)
		p.raw(`><span class="chip">`)
		p.text(c.Label + ": " + c.Value)
		p.raw(` <button aria-label="Remove filter">×</button></span></form>`)
	}
	p.raw(`<form method="post" class="inline"`)
	p.attr("action", api(key, "filter"))
	p.raw(`><input type="hidden" name="clear" value="all"><button>Clear all</button></form></p>`)
}

func bulkBar(p *page, key string, actions []core.ActionInfo, sel view.SelectionSnapshot) {
	p.raw(`<p><form method="post" class="inline"`)
	p.attr("action", api(key, "selection/all"))
	p.raw(`><button>Select all</button></form> <form method="post" class="inline"`)
	p.attr("action", api(key, "selection/none"))
	p.raw(`><button>Select none</button></form> `)
	p.rawf(`<span>%d of %d selected</span>`, sel.Count, sel.Total)
	if sel.Count == 0 {
		p.raw(`</p>`)
		return
	}
	for _, a := range actions {
		p.raw(` <form method="post" class="inline"`)
		p.attr("action", api(key, "bulk"))
		p.raw(`><input type="hidden" name="action"`)
		p.attr("value", a.Key)
		p.raw(`><button>`)
		p.text(a.Label)
		p.raw(`</button></form>`)
	}
	p.raw(`</p>`)
}

func table(p *page, v CollectionView) {
	key := v.Info.Key
	res := v.Result
	selected := make(map[string]bool, len(res.Selection.IDs))
	for _, id := range res.Selection.IDs {
		selected[id] = true
	}

	p.raw(`<table><thead><tr><th></th>`)
	for _, col := range v.Info.Columns {
		p.raw(`<th><form method="post" class="inline"`)
		p.attr("action", api(key, "sort"))
		p.raw(`><input type="hidden" name="key"`)
		p.attr("value", col.Key)
		p.raw(`><button>`)
		p.text(col.Label)
		if res.State.Sort.Key == col.Key {
			if res.State.Sort.Direction == view.Desc {
				p.raw(` ▼`)
			} else {
				p.raw(` ▲`)
			}
		}
		p.raw(`</button></form></th>`)
	}
	p.raw(`</tr></thead><tbody>`)

	if len(res.Rows) == 0 {
		p.rawf(`<tr><td colspan="%d">No results found.</td></tr>`, len(v.Info.Columns)+1)
	}
	for _, row := range res.Rows {
		p.raw(`<tr><td><form method="post" class="inline"`)
		p.attr("action", api(key, "selection/toggle"))
		p.raw(`><input type="hidden" name="id"`)
		p.attr("value", row.ID)
		if selected[row.ID] {
			p.raw(`><button aria-label="Deselect">☑</button></form></td>`)
		} else {
			p.raw(`><button aria-label="Select">☐</button></form></td>`)
		}
		for _, col := range v.Info.Columns {
			p.raw(`<td>`)
			p.text(row.Cells[col.Key])
			p.raw(`</td>`)
		}
		p.raw(`</tr>`)
	}
	p.raw(`</tbody></table>`)
}

// Pagination renders "Showing X to Y of Z", the page bar and the page
// size picker.
func Pagination(key string, meta view.PageMeta, links []view.PageLink, sizes []int) templ.Component {
	return component(func(_ context.Context, p *page) {
		p.raw(`<div class="pager">`)
		p.rawf(`<span>Showing %d to %d of %d</span>`, meta.StartItem, meta.EndItem, meta.TotalItems)

		pageButton(p, key, meta.Page-1, "Previous", !meta.HasPrevPage)
		for _, l := range links {
			if l.Ellipsis {
				p.raw(`<span>…</span>`)
				continue
			}
			if l.Current {
				p.rawf(`<strong>%d</strong> `, l.Number)
				continue
			}
			pageButton(p, key, l.Number, itoa(l.Number), false)
		}
		pageButton(p, key, meta.Page+1, "Next", !meta.HasNextPage)

		p.raw(`<form method="post" class="inline"`)
		p.attr("action", api(key, "page-size"))
		p.raw(`><select name="size">`)
		for _, n := range sizes {
			p.rawf(`<option value="%d"`, n)
			if n == meta.PageSize {
				p.raw(` selected`)
			}
			p.rawf(`>%d per page</option>`, n)
		}
		p.raw(`</select> <button>Apply</button></form></div>`)
	})
}

func pageButton(p *page, key string, n int, label string, disabled bool) {
	p.raw(`<form method="post" class="inline"`)
	p.attr("action", api(key, "page"))
	p.raw(`><input type="hidden" name="page"`)
	p.attr("value", itoa(n))
	p.raw(`><button`)
	if disabled {
		p.raw(` disabled`)
	}
	p.raw(`>`)
	p.text(label)
	p.raw(`</button></form>`)
}

// ConfirmDialog asks the user to confirm a destructive bulk action.
func ConfirmDialog(key string, pending core.PendingInfo) templ.Component {
	return component(func(_ context.Context, p *page) {
		p.raw(`<div class="confirm" role="alertdialog"><p>`)
		p.text(pending.Prompt)
		p.raw(`</p>`)
		for _, step := range []struct{ path, label string }{
			{"bulk/confirm", "Confirm"},
			{"bulk/cancel", "Cancel"},
		} {
			p.raw(`<form method="post" class="inline"`)
			p.attr("action", api(key, step.path))
			p.raw(`><input type="hidden" name="token"`)
			p.attr("value", pending.Token)
			p.raw(`><button>`)
			p.text(step.label)
			p.raw(`</button></form> `)
		}
		p.raw(`</div>`)
	})
}

func api(key, path string) string {
	return "/api/" + key + "/" + path
}
