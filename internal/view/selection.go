package view

// CheckState is the tri-state of a "select all" checkbox.
type CheckState string

const (
	Unchecked     CheckState = "unchecked"
	Checked       CheckState = "checked"
	Indeterminate CheckState = "indeterminate"
)

// SelectionSet tracks selected identifiers within the visible (filtered)
// collection. The selection is always a subset of the visible ids:
// replacing the visible set prunes selections that are no longer shown.
// The zero value is an empty selection. Not safe for concurrent use.
type SelectionSet struct {
	visible  []string
	shown    map[string]struct{}
	selected map[string]struct{}
}

// NewSelectionSet returns an empty selection.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{}
}

// SetVisible replaces the visible ids and drops selected ids that are no
// longer among them. It returns how many were dropped.
func (s *SelectionSet) SetVisible(ids []string) int {
	s.visible = append(s.visible[:0:0], ids...)
	s.shown = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.shown[id] = struct{}{}
	}

	pruned := 0
	for id := range s.selected {
		if _, ok := s.shown[id]; !ok {
			delete(s.selected, id)
			pruned++
		}
	}
	return pruned
}

// Visible returns the visible ids in display order.
func (s *SelectionSet) Visible() []string {
	return s.visible
}

// AllVisible reports whether every id in ids is visible.
func (s *SelectionSet) AllVisible(ids []string) bool {
	for _, id := range ids {
		if _, ok := s.shown[id]; !ok {
			return false
		}
	}
	return true
}

// SelectAll makes ids the visible set and selects exactly those ids.
func (s *SelectionSet) SelectAll(ids []string) {
	s.SetVisible(ids)
	s.selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.selected[id] = struct{}{}
	}
}

// DeselectAll clears the selection.
func (s *SelectionSet) DeselectAll() {
	clear(s.selected)
}

// Toggle flips id and returns whether it is now selected. Ids outside the
// visible set are ignored.
func (s *SelectionSet) Toggle(id string) bool {
	if _, ok := s.shown[id]; !ok {
		return false
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false
	}
	if s.selected == nil {
		s.selected = make(map[string]struct{})
	}
	s.selected[id] = struct{}{}
	return true
}

// IsSelected reports whether id is selected.
func (s *SelectionSet) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Count returns the number of selected ids.
func (s *SelectionSet) Count() int {
	return len(s.selected)
}

// Total returns the number of visible ids.
func (s *SelectionSet) Total() int {
	return len(s.visible)
}

// IsIndeterminate reports whether some but not all visible ids are
// selected.
func (s *SelectionSet) IsIndeterminate() bool {
	n := s.Count()
	return n > 0 && n < s.Total()
}

// State returns the select-all checkbox state.
func (s *SelectionSet) State() CheckState {
	switch n := s.Count(); {
	case n == 0:
		return Unchecked
	case n < s.Total():
		return Indeterminate
	default:
		return Checked
	}
}

// IDs returns the selected ids in display order.
func (s *SelectionSet) IDs() []string {
	ids := make([]string, 0, len(s.selected))
	for _, id := range s.visible {
		if _, ok := s.selected[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectionSnapshot is a read-only copy of a selection for rendering.
type SelectionSnapshot struct {
	IDs   []string   `json:"ids"`
	Count int        `json:"count"`
	Total int        `json:"total"`
	State CheckState `json:"state"`
}

// Snapshot copies the selection.
func (s *SelectionSet) Snapshot() SelectionSnapshot {
	return SelectionSnapshot{
		IDs:   s.IDs(),
		Count: s.Count(),
		Total: s.Total(),
		State: s.State(),
	}
}
