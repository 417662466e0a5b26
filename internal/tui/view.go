package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// maxCellWidth truncates long cells so a page fits a normal terminal.
const maxCellWidth = 28

const (
	menuHelp    = "↑/↓ move • enter select • esc back • q quit"
	tableHelp   = "↑/↓ move • space select • a all • x none • / search • f filter • F clear filters • 1-9 sort • 0 unsort • n/p page • g/G first/last • +/- page size • b actions • r reset • q menu"
	inputHelp   = "enter apply • esc cancel"
	confirmHelp = "y confirm • n cancel"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	help := tableHelp
	switch m.mode {
	case modeMenu:
		m.viewMenu(&b)
		help = menuHelp
	case modeSearch, modeFilter:
		m.viewTable(&b)
		help = inputHelp
	case modeConfirm:
		m.viewTable(&b)
		help = confirmHelp
	default:
		m.viewTable(&b)
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		msg := core.MapError(m.err)
		b.WriteString(m.styles.err.Render(fmt.Sprintf("%s (%s). %s", msg.Message, msg.Code, msg.Action)))
		b.WriteString("\n")
	case m.mode == modeConfirm:
		b.WriteString(m.styles.prompt.Render(m.status + " [y/n]"))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.styles.status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.subtle.Render(help))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewMenu(b *strings.Builder) {
	b.WriteString(m.styles.title.Render(m.menu.Title))
	b.WriteString("\n\n")
	for i, item := range m.menu.Items {
		label := item.Label
		if item.Submenu != nil && item.Label != backLabel {
			label += " ->"
		}
		if i == m.cursor {
			b.WriteString(m.styles.cursor.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
}

func (m *Model) viewTable(b *strings.Builder) {
	info := m.coll.Info()
	res := m.result
	meta := res.Meta

	b.WriteString(m.styles.title.Render(info.Label))
	b.WriteString(m.styles.subtle.Render(fmt.Sprintf("  page %d of %d · %s", meta.Page, meta.TotalPages, countItems(meta.TotalItems))))
	b.WriteString("\n")

	switch {
	case m.mode == modeSearch || m.mode == modeFilter:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case res.State.Query != "":
		fmt.Fprintf(b, "Search: %s\n", res.State.Query)
	}
	if len(res.Chips) > 0 {
		chips := make([]string, len(res.Chips))
		for i, c := range res.Chips {
			chips[i] = c.Label + ": " + c.Value
		}
		fmt.Fprintf(b, "Filters: %s\n", strings.Join(chips, " · "))
	}

	if len(res.Rows) == 0 {
		b.WriteString(m.styles.subtle.Render("No matching items"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable(info, res))
		b.WriteString("\n")
	}

	b.WriteString(m.renderPager(res))
	if n := res.Selection.Count; n > 0 {
		b.WriteString(m.styles.selected.Render(fmt.Sprintf("  %d selected", n)))
	}
	b.WriteString("\n")
}

func (m *Model) renderTable(info core.CollectionInfo, res core.ViewResult) string {
	headers := []string{"Sel"}
	for i, col := range info.Columns {
		label := fmt.Sprintf("%d %s", i+1, col.Label)
		if res.State.Sort.Key == col.Key {
			label += sortArrow(res.State.Sort.Direction)
		}
		headers = append(headers, label)
	}

	selected := make(map[string]bool, len(res.Selection.IDs))
	for _, id := range res.Selection.IDs {
		selected[id] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.styles.border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return m.styles.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for i, r := range res.Rows {
		mark := "[ ]"
		if selected[r.ID] {
			mark = "[x]"
		}
		if i == m.row {
			mark = "›" + mark
		} else {
			mark = " " + mark
		}
		cells := []string{mark}
		for _, col := range info.Columns {
			cells = append(cells, truncate(r.Cells[col.Key], maxCellWidth))
		}
		t.Row(cells...)
	}
	return t.String()
}

func (m *Model) renderPager(res core.ViewResult) string {
	parts := make([]string, 0, len(res.Pages))
	for _, p := range res.Pages {
		switch {
		case p.Ellipsis:
			parts = append(parts, "…")
		case p.Current:
			parts = append(parts, m.styles.current.Render(fmt.Sprintf("[%d]", p.Number)))
		default:
			parts = append(parts, fmt.Sprint(p.Number))
		}
	}
	meta := res.Meta
	return fmt.Sprintf("%s  showing %d-%d of %d · %d per page",
		strings.Join(parts, " "), meta.StartItem, meta.EndItem, meta.TotalItems, meta.PageSize)
}

func sortArrow(d view.Direction) string {
	if d == view.Desc {
		return " ▼"
	}
	return " ▲"
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
