package orbit

import "strings"

// FilterAll is the filter value that selects every item.
const FilterAll = "all"

// maxCompare is the size limit of the comparison set.
const maxCompare = 2

// Mode is the hover dimension of the view state machine. Pause is tracked
// independently and may co-occur with either mode.
type Mode uint8

const (
	ModeIdle     Mode = iota // no card under the pointer
	ModeHovering             // a card is highlighted
)

// ViewState is the ephemeral filter and selection state of one viewer. It is
// created on mount, mutated by the Controller and discarded on unmount.
//
// The active subset is recomputed synchronously by every mutation that can
// change it, so readers never observe a half-applied filter.
type ViewState struct {
	items  []Item
	filter string
	search string // lower-cased

	active    []Item
	activeIdx map[string]int // id -> index in active

	hovered  string
	selected string
	paused   bool
	cursor   int
	compare  []string
}

// NewViewState creates a state over items with the "all" filter. The slice is
// retained but never modified.
func NewViewState(items []Item) *ViewState {
	s := &ViewState{
		items:     items,
		filter:    FilterAll,
		activeIdx: make(map[string]int, len(items)),
	}
	s.recompute()
	return s
}

// Items returns the full collection in original order. The returned slice
// MUST NOT be mutated.
func (s *ViewState) Items() []Item { return s.items }

// Active returns the active subset in original order. The returned slice
// MUST NOT be mutated.
func (s *ViewState) Active() []Item { return s.active }

// Len returns the size of the active subset.
func (s *ViewState) Len() int { return len(s.active) }

// Empty reports whether the active subset has no items.
func (s *ViewState) Empty() bool { return len(s.active) == 0 }

// Filter returns the current category filter ("all" when unfiltered).
func (s *ViewState) Filter() string { return s.filter }

// Search returns the current (lower-cased) search query.
func (s *ViewState) Search() string { return s.search }

// Hovered returns the hovered item id, or "" when none.
func (s *ViewState) Hovered() string { return s.hovered }

// Selected returns the selected item id, or "" when none.
func (s *ViewState) Selected() string { return s.selected }

// Paused reports whether ambient rotation is explicitly paused.
func (s *ViewState) Paused() bool { return s.paused }

// Cursor returns the keyboard cursor index into the active subset.
func (s *ViewState) Cursor() int { return s.cursor }

// Compare returns the ids in the comparison set. MUST NOT be mutated.
func (s *ViewState) Compare() []string { return s.compare }

// Mode returns ModeHovering while an item is hovered.
func (s *ViewState) Mode() Mode {
	if s.hovered != "" {
		return ModeHovering
	}
	return ModeIdle
}

// IsActive reports whether id is in the active subset.
func (s *ViewState) IsActive(id string) bool {
	_, ok := s.activeIdx[id]
	return ok
}

// IndexOf returns the position of id in the active subset.
func (s *ViewState) IndexOf(id string) (int, bool) {
	i, ok := s.activeIdx[id]
	return i, ok
}

// Lookup returns the active item with the given id.
func (s *ViewState) Lookup(id string) (Item, bool) {
	i, ok := s.activeIdx[id]
	if !ok {
		return Item{}, false
	}
	return s.active[i], true
}

// CursorItem returns the item under the keyboard cursor.
func (s *ViewState) CursorItem() (Item, bool) {
	if s.cursor < 0 || s.cursor >= len(s.active) {
		return Item{}, false
	}
	return s.active[s.cursor], true
}

// SetFilter replaces the category filter. "" is treated as "all". It
// reports whether the filter changed. Hover, selection and comparison
// entries that leave the active subset are cleared.
func (s *ViewState) SetFilter(category string) bool {
	if category == "" {
		category = FilterAll
	}
	if category == s.filter {
		return false
	}
	s.filter = category
	s.recompute()
	return true
}

// SetSearch replaces the search query, applied after the category filter.
// It reports whether the query changed.
func (s *ViewState) SetSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == s.search {
		return false
	}
	s.search = q
	s.recompute()
	return true
}

// SetItems swaps the underlying collection, keeping filter, search, hover
// and selection where the ids survive.
func (s *ViewState) SetItems(items []Item) {
	s.items = items
	s.recompute()
}

// SetHovered highlights id. An id outside the active subset is ignored and
// false is returned; "" clears the hover.
func (s *ViewState) SetHovered(id string) bool {
	if id != "" && !s.IsActive(id) {
		return false
	}
	if s.hovered == id {
		return false
	}
	s.hovered = id
	return true
}

// SetSelected selects id. An id outside the active subset is ignored and
// false is returned; "" clears the selection.
func (s *ViewState) SetSelected(id string) bool {
	if id != "" && !s.IsActive(id) {
		return false
	}
	if s.selected == id {
		return false
	}
	s.selected = id
	return true
}

// SetPaused sets the explicit pause flag and reports whether it changed.
func (s *ViewState) SetPaused(paused bool) bool {
	if s.paused == paused {
		return false
	}
	s.paused = paused
	return true
}

// MoveCursor moves the cursor by delta, wrapping at both ends of the active
// subset. It returns the new cursor. With an empty subset the cursor stays 0.
func (s *ViewState) MoveCursor(delta int) int {
	n := len(s.active)
	if n == 0 {
		s.cursor = 0
		return 0
	}
	s.cursor = ((s.cursor+delta)%n + n) % n
	return s.cursor
}

// SetCursor places the cursor on the active item id.
func (s *ViewState) SetCursor(id string) bool {
	i, ok := s.activeIdx[id]
	if !ok {
		return false
	}
	s.cursor = i
	return true
}

// ToggleCompare adds id to the comparison set, or removes it when present.
// Adding to a full set is ignored. It reports whether the set changed.
func (s *ViewState) ToggleCompare(id string) bool {
	for i, c := range s.compare {
		if c == id {
			s.compare = append(s.compare[:i], s.compare[i+1:]...)
			return true
		}
	}
	if !s.IsActive(id) || len(s.compare) >= maxCompare {
		return false
	}
	s.compare = append(s.compare, id)
	return true
}

// ClearCompare empties the comparison set.
func (s *ViewState) ClearCompare() bool {
	if len(s.compare) == 0 {
		return false
	}
	s.compare = s.compare[:0]
	return true
}

// recompute rebuilds the active subset and drops references that left it.
func (s *ViewState) recompute() {
	s.active = make([]Item, 0, len(s.items))
	clear(s.activeIdx)
	for i := range s.items {
		it := &s.items[i]
		if s.filter != FilterAll && !it.HasCategory(s.filter) {
			continue
		}
		if !it.matches(s.search) {
			continue
		}
		if _, dup := s.activeIdx[it.ID]; dup {
			continue
		}
		s.activeIdx[it.ID] = len(s.active)
		s.active = append(s.active, *it)
	}

	if s.hovered != "" && !s.IsActive(s.hovered) {
		s.hovered = ""
	}
	if s.selected != "" && !s.IsActive(s.selected) {
		s.selected = ""
	}
	kept := s.compare[:0]
	for _, id := range s.compare {
		if s.IsActive(id) {
			kept = append(kept, id)
		}
	}
	s.compare = kept

	if s.cursor >= len(s.active) {
		s.cursor = max(len(s.active)-1, 0)
	}
}
