// Package tui is a terminal browser for the dashboard collections.
//
// It drives the same view.Controller as the web sessions: every key press
// is one view event, and the table is re-rendered from the controller's
// state after each event.
package tui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/view"
)

type mode int

const (
	modeMenu mode = iota
	modeTable
	modeSearch
	modeFilter
	modeConfirm
)

// Options configure a Model.
type Options struct {
	// PageSizes are the page sizes cycled with + and -.
	PageSizes []int

	// Collection opens straight into a collection instead of the menu.
	Collection string
}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx     context.Context
	service *core.Service
	opts    Options
	styles  styles

	mode   mode
	root   *Menu
	menu   *Menu
	cursor int

	coll   core.Collection
	ctls   map[string]*view.Controller
	ctl    *view.Controller
	result core.ViewResult
	row    int

	input     textinput.Model
	seq       uint64
	prevQuery string
	token     string

	status string
	err    error
}

// New creates a browser over service. Bulk actions run with ctx, so the
// actor recorded in the activity log is the one attached to it.
func New(ctx context.Context, service *core.Service, opts Options) (*Model, error) {
	m := &Model{
		ctx:     ctx,
		service: service,
		opts:    opts,
		styles:  defaultStyles(),
		ctls:    make(map[string]*view.Controller),
		input:   textinput.New(),
	}
	m.input.CharLimit = 200
	m.root = buildMenuTree(m)
	m.menu = m.root

	if opts.Collection != "" {
		if _, err := service.Collection(opts.Collection); err != nil {
			return nil, err
		}
		m.open(opts.Collection)
	}
	return m, nil
}

// Run shows m on the terminal until the user quits or ctx is done.
func Run(ctx context.Context, m *Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bulkMsg:
		m.handleBulk(msg)
		return m, nil

	case ErrMsg:
		m.setErr(msg.Err)
		return m, nil

	case DoneMsg:
		m.setStatus(string(msg))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeMenu:
			return m, m.updateMenu(msg)
		case modeTable:
			return m, m.updateTable(msg)
		case modeSearch, modeFilter:
			return m, m.updateInput(msg)
		case modeConfirm:
			return m, m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu.Items)-1 {
			m.cursor++
		}
	case "q", "esc":
		switch {
		case m.menu.Parent != nil:
			m.menu, m.cursor = m.menu.Parent, 0
		case m.menu != m.root, m.coll != nil && msg.String() == "esc":
			m.closeMenu()
		case msg.String() == "q":
			return tea.Quit
		}
	case "enter":
		item := m.menu.Items[m.cursor]
		switch {
		case item.Label == backLabel && item.Submenu == nil:
			m.closeMenu()
		case item.Submenu != nil:
			m.menu, m.cursor = item.Submenu, 0
		case item.Action != nil:
			return item.Action()
		}
	}
	return nil
}

func (m *Model) updateTable(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	rows := m.result.Rows

	switch key {
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
		return nil
	case "down", "j":
		if m.row < len(rows)-1 {
			m.row++
		}
		return nil
	case "q", "esc":
		m.root = buildMenuTree(m)
		m.menu, m.cursor, m.mode = m.root, 0, modeMenu
		return nil
	case "/":
		m.prevQuery = m.result.State.Query
		return m.startInput(modeSearch, "/ ", m.result.State.Query)
	case "f":
		return m.startInput(modeFilter, "filter key=value: ", "")
	case "b":
		if len(m.coll.Info().Actions) == 0 {
			return nil
		}
		m.menu, m.cursor, m.mode = buildActionMenu(m), 0, modeMenu
		return nil

	case " ":
		if len(rows) > 0 {
			m.ctl.Toggle(rows[m.row].ID)
		}
	case "a":
		m.ctl.SelectAll()
	case "x":
		m.ctl.DeselectAll()
	case "n", "right":
		m.ctl.NextPage()
	case "p", "left":
		m.ctl.PrevPage()
	case "g", "home":
		m.ctl.FirstPage()
	case "G", "end":
		m.ctl.LastPage()
	case "+":
		m.stepPageSize(1)
	case "-":
		m.stepPageSize(-1)
	case "0":
		m.ctl.ClearSort()
	case "F":
		m.ctl.ClearFilters()
	case "r":
		m.ctl.Reset()
		m.setStatus("View reset")
	default:
		cols := m.coll.Info().Columns
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(cols) {
			return nil
		}
		m.ctl.ToggleSort(cols[n-1].Key)
	}
	m.refresh()
	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.input.Blur()
		if m.mode == modeFilter {
			m.applyFilter(m.input.Value())
		}
		m.mode = modeTable
		return nil
	case "esc":
		m.input.Blur()
		if m.mode == modeSearch {
			m.setQuery(m.prevQuery)
		}
		m.mode = modeTable
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.setQuery(m.input.Value())
	}
	return cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	token := m.token
	switch msg.String() {
	case "y", "Y", "enter":
		m.token, m.mode = "", modeTable
		ctl, ctx := m.ctl, m.ctx
		return func() tea.Msg {
			res, err := ctl.Confirm(ctx, token)
			return bulkMsg{res: res, err: err}
		}
	case "n", "N", "esc":
		m.token, m.mode = "", modeTable
		res, err := m.ctl.Cancel(token)
		m.handleBulk(bulkMsg{res: res, err: err})
	}
	return nil
}

// open shows the collection under key, keeping its view state from any
// earlier visit.
func (m *Model) open(key string) tea.Cmd {
	c, err := m.service.Collection(key)
	if err != nil {
		m.setErr(err)
		return nil
	}
	ctl, ok := m.ctls[key]
	if !ok {
		ctl = c.NewController()
		m.ctls[key] = ctl
	}

	m.coll, m.ctl = c, ctl
	m.row, m.mode = 0, modeTable
	m.status, m.err = "", nil
	m.refresh()
	return nil
}

func (m *Model) closeMenu() {
	m.menu, m.cursor = m.root, 0
	if m.coll != nil {
		m.mode = modeTable
	}
}

// dispatch runs a bulk action on the selection in the background.
func (m *Model) dispatch(key string) tea.Cmd {
	m.closeMenu()
	ctl, ctx := m.ctl, m.ctx
	return func() tea.Msg {
		res, err := ctl.Dispatch(ctx, key)
		return bulkMsg{res: res, err: err}
	}
}

func (m *Model) handleBulk(msg bulkMsg) {
	m.refresh()
	if msg.err != nil {
		m.setErr(msg.err)
		return
	}

	switch msg.res.Outcome {
	case view.OutcomePending:
		m.token, m.mode = msg.res.Token, modeConfirm
		m.setStatus(msg.res.Prompt)
	case view.OutcomeCancelled:
		m.setStatus("Cancelled: " + msg.res.Label)
	default:
		m.setStatus(fmt.Sprintf("%s: %s", msg.res.Label, countItems(len(msg.res.IDs))))
	}
}

func (m *Model) startInput(md mode, prompt, value string) tea.Cmd {
	m.mode = md
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) setQuery(q string) {
	m.seq++
	m.ctl.SetQuery(q, m.seq)
	m.refresh()
}

func (m *Model) applyFilter(raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	key, v, err := core.ParseFilter(m.coll.Info(), raw)
	if err != nil {
		m.setErr(err)
		return
	}
	m.ctl.SetFilter(key, v)
	m.refresh()
	m.setStatus("Filtered by " + key)
}

// stepPageSize moves to the next (d=1) or previous (d=-1) page size.
func (m *Model) stepPageSize(d int) {
	sizes := m.opts.PageSizes
	if len(sizes) == 0 {
		return
	}
	i := slices.Index(sizes, m.result.Meta.PageSize) + d
	if i < 0 || i >= len(sizes) {
		return
	}
	m.ctl.SetPageSize(sizes[i])
}

func (m *Model) refresh() {
	if m.coll == nil {
		return
	}
	m.result = m.coll.Render(m.ctl)
	if m.row >= len(m.result.Rows) {
		m.row = max(len(m.result.Rows)-1, 0)
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.err = s, nil
}

func (m *Model) setErr(err error) {
	m.status, m.err = "", err
}

func countItems(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}
