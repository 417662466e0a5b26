package templates

import (
	"context"
	"fmt"
	"slices"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/dashboard/internal/core"
)

// Dashboard renders the statistics overview.
func Dashboard(sidebar SidebarParams, stats core.DashboardStats) templ.Component {
	body := component(func(ctx context.Context, p *page) {
		p.raw(`<section class="cards">`)
		card(p, "Users", fmt.Sprintf("%d", stats.TotalUsers), fmt.Sprintf("%d active", stats.ActiveUsers))
		card(p, "Assets", fmt.Sprintf("%d", stats.TotalAssets), fmt.Sprintf("$%.2f total value", stats.AssetValue))
		card(p, "Library", fmt.Sprintf("%d", stats.TotalLibraryItems), FormatBytes(stats.StorageUsedBytes)+" used")
		p.raw(`</section>`)

		breakdown(p, "Assets by status", stats.AssetsByStatus)
		breakdown(p, "Library by type", stats.LibraryByType)

		p.raw(`<h2>Recent activity</h2>`)
		if len(stats.RecentActivity) == 0 {
			p.raw(`<p>No activity yet.</p>`)
			return
		}
		p.raw(`<table><thead><tr><th>When</th><th>User</th><th>Action</th><th>Item</th></tr></thead><tbody>`)
		for _, a := range stats.RecentActivity {
			p.raw(`<tr><td>`)
			p.text(a.Timestamp.Format("2006-01-02 15:04"))
			p.raw(`</td><td>`)
			p.text(a.User)
			p.raw(`</td><td>`)
			p.text(a.Action)
			p.raw(`</td><td>`)
			p.text(a.Item)
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)
	})
	return Layout("Dashboard", sidebar, body)
}

func card(p *page, title, value, detail string) {
	p.raw(`<div class="card"><h3>`)
	p.text(title)
	p.raw(`</h3><p style="font-size:1.8rem;margin:.25rem 0">`)
	p.text(value)
	p.raw(`</p><small>`)
	p.text(detail)
	p.raw(`</small></div>`)
}

func breakdown(p *page, title string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	p.raw(`<h2>`)
	p.text(title)
	p.raw(`</h2><p>`)
	for _, k := range keys {
		p.raw(`<span class="chip">`)
		p.text(k)
		p.rawf(`: %d</span>`, counts[k])
	}
	p.raw(`</p>`)
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
