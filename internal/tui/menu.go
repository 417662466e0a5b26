package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

// MenuItem is one entry of a Menu. Selecting it opens Submenu or runs
// Action. An item labelled "Back" returns to the parent menu, or to the
// open collection when the menu has no parent.
type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func() tea.Cmd
}

// Menu is a titled list of items.
type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

const backLabel = "Back"

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == backLabel {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

// buildMenuTree lists every collection, grouped as registered.
func buildMenuTree(m *Model) *Menu {
	root := &Menu{Title: "Collections"}

	for _, info := range m.service.ListCollections() {
		key := info.Key
		c, err := m.service.Collection(key)
		if err != nil {
			continue
		}
		root.Items = append(root.Items, MenuItem{
			Label: fmt.Sprintf("%s (%d)", info.Label, c.Len()),
			Action: func() tea.Cmd {
				return m.open(key)
			},
		})
	}
	root.Items = append(root.Items, MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})

	linkParents(root, nil)
	return root
}

// buildActionMenu lists the bulk actions of the open collection.
func buildActionMenu(m *Model) *Menu {
	info := m.coll.Info()
	menu := &Menu{Title: fmt.Sprintf("%s: %d selected", info.Label, m.result.Selection.Count)}

	for _, a := range info.Actions {
		key, label := a.Key, a.Label
		if a.Destructive {
			label += " (confirm)"
		}
		menu.Items = append(menu.Items, MenuItem{
			Label:  label,
			Action: func() tea.Cmd { return m.dispatch(key) },
		})
	}
	menu.Items = append(menu.Items, MenuItem{Label: backLabel})

	linkParents(menu, nil)
	return menu
}
