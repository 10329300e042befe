package orbit

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testItems returns n items; the first na are tagged "a", the rest "b".
func testItems(na, nb int) []Item {
	items := make([]Item, 0, na+nb)
	for i := 0; i < na+nb; i++ {
		cat := "a"
		if i >= na {
			cat = "b"
		}
		items = append(items, Item{
			ID:         fmt.Sprint(i + 1),
			Title:      fmt.Sprintf("Project %d", i+1),
			Categories: []string{cat},
			Images:     []string{fmt.Sprintf("/img/%d.jpg", i+1)},
		})
	}
	return items
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestViewStateAllPreservesOrder(t *testing.T) {
	items := testItems(4, 6)
	s := NewViewState(items)

	assert.Equal(t, FilterAll, s.Filter())
	if diff := cmp.Diff(ids(items), ids(s.Active())); diff != "" {
		t.Errorf("active mismatch (-want +got):\n%s", diff)
	}

	s.SetFilter("b")
	s.SetFilter(FilterAll)
	if diff := cmp.Diff(items, s.Active()); diff != "" {
		t.Errorf("active after round trip (-want +got):\n%s", diff)
	}
}

func TestViewStateFilterByCategory(t *testing.T) {
	items := testItems(4, 6)
	s := NewViewState(items)

	require.True(t, s.SetFilter("b"))
	assert.Equal(t, 6, s.Len())
	for _, it := range s.Active() {
		assert.True(t, it.HasCategory("b"))
	}
	assert.Equal(t, []string{"5", "6", "7", "8", "9", "10"}, ids(s.Active()))

	assert.False(t, s.SetFilter("b"), "same filter reports no change")
}

func TestViewStateFilterDoesNotMutateItems(t *testing.T) {
	items := testItems(2, 2)
	before := append([]Item(nil), items...)
	s := NewViewState(items)
	s.SetFilter("a")
	s.SetSearch("project 1")
	assert.Equal(t, before, items)
}

func TestViewStateEmptyFilterMeansAll(t *testing.T) {
	s := NewViewState(testItems(1, 1))
	s.SetFilter("a")
	s.SetFilter("")
	assert.Equal(t, FilterAll, s.Filter())
	assert.Equal(t, 2, s.Len())
}

func TestViewStateUnknownCategoryIsEmpty(t *testing.T) {
	s := NewViewState(testItems(2, 2))
	s.SetFilter("nope")
	assert.True(t, s.Empty())
	_, ok := s.CursorItem()
	assert.False(t, ok)
}

func TestViewStateSelectionClearedByFilter(t *testing.T) {
	s := NewViewState(testItems(4, 6))
	require.True(t, s.SetSelected("2"))
	s.SetFilter("b")
	assert.Equal(t, "", s.Selected())

	require.True(t, s.SetSelected("7"))
	s.SetFilter(FilterAll)
	assert.Equal(t, "7", s.Selected(), "selection survives a widening filter")
}

func TestViewStateHoverClearedByFilter(t *testing.T) {
	s := NewViewState(testItems(4, 6))
	require.True(t, s.SetHovered("3"))
	assert.Equal(t, ModeHovering, s.Mode())

	s.SetFilter("b")
	assert.Equal(t, "", s.Hovered())
	assert.Equal(t, ModeIdle, s.Mode())
}

func TestViewStateIgnoresInactiveIDs(t *testing.T) {
	s := NewViewState(testItems(2, 2))
	s.SetFilter("a")
	assert.False(t, s.SetHovered("4"))
	assert.False(t, s.SetSelected("4"))
	assert.False(t, s.SetSelected("missing"))
	assert.Equal(t, "", s.Hovered())
	assert.Equal(t, "", s.Selected())
}

func TestViewStatePauseIndependentOfHover(t *testing.T) {
	s := NewViewState(testItems(2, 0))
	s.SetHovered("1")
	assert.True(t, s.SetPaused(true))
	assert.False(t, s.SetPaused(true))
	s.SetHovered("")
	assert.True(t, s.Paused())
}

func TestViewStateCursorWraps(t *testing.T) {
	s := NewViewState(testItems(3, 0))
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, 2, s.MoveCursor(-1))
	assert.Equal(t, 0, s.MoveCursor(1))
	assert.Equal(t, 1, s.MoveCursor(4))
}

func TestViewStateCursorClampedByFilter(t *testing.T) {
	s := NewViewState(testItems(2, 6))
	s.MoveCursor(7)
	s.SetFilter("a")
	assert.Equal(t, 1, s.Cursor())

	s.SetFilter("none")
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, 0, s.MoveCursor(1))
}

func TestViewStateSearch(t *testing.T) {
	items := []Item{
		{ID: "1", Title: "Harbour Tower", Location: "Dubai", Categories: []string{"commercial"}, Images: []string{"a"}},
		{ID: "2", Title: "Garden Villa", Location: "Riyadh", Categories: []string{"residential"}, Images: []string{"b"}},
		{ID: "3", Title: "Oasis Mall", Location: "Dubai", Description: "A retail garden", Categories: []string{"commercial"}, Images: []string{"c"}},
	}
	s := NewViewState(items)

	assert.True(t, s.SetSearch("  DUBAI "))
	assert.Equal(t, "dubai", s.Search())
	assert.Equal(t, []string{"1", "3"}, ids(s.Active()))

	s.SetSearch("garden")
	assert.Equal(t, []string{"2", "3"}, ids(s.Active()))

	s.SetFilter("commercial")
	assert.Equal(t, []string{"3"}, ids(s.Active()))

	s.SetSearch("residential")
	assert.True(t, s.Empty())

	s.SetFilter(FilterAll)
	assert.Equal(t, []string{"2"}, ids(s.Active()), "search matches categories")
}

func TestViewStateCompareLimit(t *testing.T) {
	s := NewViewState(testItems(4, 0))
	assert.True(t, s.ToggleCompare("1"))
	assert.True(t, s.ToggleCompare("2"))
	assert.False(t, s.ToggleCompare("3"), "third id is ignored")
	assert.Equal(t, []string{"1", "2"}, s.Compare())

	assert.True(t, s.ToggleCompare("1"))
	assert.Equal(t, []string{"2"}, s.Compare())
	assert.True(t, s.ClearCompare())
	assert.Empty(t, s.Compare())
	assert.False(t, s.ClearCompare())
}

func TestViewStateCompareDroppedByFilter(t *testing.T) {
	s := NewViewState(testItems(2, 2))
	s.ToggleCompare("1")
	s.ToggleCompare("3")
	s.SetFilter("b")
	assert.Equal(t, []string{"3"}, s.Compare())
}

func TestViewStateActiveSliceStable(t *testing.T) {
	s := NewViewState(testItems(2, 2))
	held := s.Active()
	s.SetFilter("b")
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(held))
}

func TestViewStateSetItemsKeepsSurvivors(t *testing.T) {
	s := NewViewState(testItems(2, 2))
	s.SetSelected("2")
	s.SetHovered("4")

	s.SetItems(testItems(3, 0))
	assert.Equal(t, "2", s.Selected())
	assert.Equal(t, "", s.Hovered())
	assert.Equal(t, 3, s.Len())
}
