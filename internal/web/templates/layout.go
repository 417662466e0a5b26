package templates

import (
	"context"

	"github.com/a-h/templ"
)

// NavItem is one collection link in the sidebar.
type NavItem struct {
	Key   string
	Label string
	Group string
	Count int
}

// SidebarParams selects the highlighted navigation entry.
type SidebarParams struct {
	Items      []NavItem
	ActivePage string
}

const styles = `body{font-family:system-ui,sans-serif;margin:0;display:flex;color:#1f2937}
nav{width:14rem;min-height:100vh;background:#111827;color:#e5e7eb;padding:1rem}
nav a{color:inherit;text-decoration:none;display:block;padding:.35rem .5rem;border-radius:.25rem}
nav a.active{background:#3f51b5}
nav h3{font-size:.7rem;text-transform:uppercase;color:#9ca3af;margin:1rem 0 .25rem}
main{flex:1;padding:1.5rem}
table{border-collapse:collapse;width:100%}
th,td{border-bottom:1px solid #e5e7eb;padding:.4rem;text-align:left;font-size:.9rem}
th{background:#3f51b5;color:#fff}
.chip{display:inline-block;background:#e0e7ff;border-radius:1rem;padding:.1rem .6rem;margin-right:.3rem}
.alert{background:#fee2e2;border:1px solid #fca5a5;padding:.75rem;border-radius:.25rem}
.confirm{background:#fef3c7;border:1px solid #fcd34d;padding:.75rem;border-radius:.25rem}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(12rem,1fr));gap:1rem}
.card{border:1px solid #e5e7eb;border-radius:.5rem;padding:1rem}
.pager a,.pager span{margin-right:.4rem}
form.inline{display:inline}`

// Layout wraps body in the page chrome with the collection sidebar.
func Layout(title string, sidebar SidebarParams, body templ.Component) templ.Component {
	return component(func(ctx context.Context, p *page) {
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		p.text(title)
		p.raw(` | Dashboard</title><style>`)
		p.raw(styles)
		p.raw(`</style></head><body><nav><a href="/"`)
		if sidebar.ActivePage == "dashboard" {
			p.attr("class", "active")
		}
		p.raw(`>Dashboard</a>`)

		group := ""
		for _, item := range sidebar.Items {
			if item.Group != group {
				group = item.Group
				p.raw(`<h3>`)
				p.text(group)
				p.raw(`</h3>`)
			}
			p.raw(`<a`)
			p.attr("href", "/"+item.Key)
			if sidebar.ActivePage == item.Key {
				p.attr("class", "active")
			}
			p.raw(`>`)
			p.text(item.Label)
			p.rawf(` (%d)</a>`, item.Count)
		}
		p.raw(`</nav><main><h1>`)
		p.text(title)
		p.raw(`</h1>`)
		p.render(ctx, body)
		p.raw(`</main></body></html>`)
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(_ context.Context, p *page) {
		p.raw(`<div class="alert" role="alert"><strong>`)
		p.text(message)
		p.raw(`</strong>`)
		if action != "" {
			p.raw(`<p>`)
			p.text(action)
			p.raw(`</p>`)
		}
		p.raw(`<small>Error code: `)
		p.text(code)
		p.raw(`</small></div>`)
	})
}

// ErrorPage renders an error as a full page.
func ErrorPage(sidebar SidebarParams, message, action, code string) templ.Component {
	return Layout("Something went wrong", sidebar, ErrorAlert(message, action, code))
}
