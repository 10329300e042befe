package orbit

// Controller binds pointer and keyboard commands to ViewState transitions.
// It has no network or persistence side effects: navigation is recorded on
// the Navigator and handed to OnNavigate.
//
// All methods run on the game thread.
type Controller struct {
	// OnNavigate is called with a clicked item and its detail path.
	OnNavigate func(it Item, path string)
	// OnSelect is called when the selection changes. ok is false when the
	// selection was cleared.
	OnSelect func(it Item, ok bool)
	// OnReset is called when Escape resets the view.
	OnReset func()
	// OnEvent receives every view event.
	OnEvent func(ViewEvent)

	state      *ViewState
	nav        *Navigator
	categories []Category
}

// NewController returns a controller over state. nav may be nil, in which
// case a navigator starting at "/" is created.
func NewController(state *ViewState, nav *Navigator, categories []Category) *Controller {
	if nav == nil {
		nav = NewNavigator("/")
	}
	return &Controller{state: state, nav: nav, categories: categories}
}

// State returns the controlled view state.
func (c *Controller) State() *ViewState { return c.state }

// Navigator returns the navigator clicks are recorded on.
func (c *Controller) Navigator() *Navigator { return c.nav }

// Categories returns the filter options cycled by Up and Down.
func (c *Controller) Categories() []Category { return c.categories }

// SetCategories replaces the filter options.
func (c *Controller) SetCategories(categories []Category) {
	c.categories = categories
}

func (c *Controller) emit(evt ViewEvent) {
	if c.OnEvent != nil {
		c.OnEvent(evt)
	}
}

// HoverEnter highlights the card id. Entering a card while another is
// highlighted emits a leave for the previous one first.
func (c *Controller) HoverEnter(id string) bool {
	prev := c.state.Hovered()
	if !c.state.SetHovered(id) {
		return false
	}
	if prev != "" {
		c.emit(ViewEvent{Type: EventHoverLeave, ItemID: prev})
	}
	if id != "" {
		c.emit(ViewEvent{Type: EventHoverEnter, ItemID: id})
	}
	return true
}

// HoverLeave clears the highlight when it is on id. An empty id clears any
// highlight.
func (c *Controller) HoverLeave(id string) bool {
	prev := c.state.Hovered()
	if prev == "" || (id != "" && id != prev) {
		return false
	}
	c.state.SetHovered("")
	c.emit(ViewEvent{Type: EventHoverLeave, ItemID: prev})
	return true
}

// Select selects the active item id and moves the cursor onto it.
func (c *Controller) Select(id string) bool {
	if !c.state.SetSelected(id) {
		return false
	}
	if id == "" {
		c.deselected()
		return true
	}
	c.state.SetCursor(id)
	it, _ := c.state.Lookup(id)
	c.emit(ViewEvent{Type: EventSelect, ItemID: id})
	if c.OnSelect != nil {
		c.OnSelect(it, true)
	}
	return true
}

// Deselect clears the selection.
func (c *Controller) Deselect() bool {
	if !c.state.SetSelected("") {
		return false
	}
	c.deselected()
	return true
}

func (c *Controller) deselected() {
	c.emit(ViewEvent{Type: EventDeselect})
	if c.OnSelect != nil {
		c.OnSelect(Item{}, false)
	}
}

// Click selects the card id and requests navigation to its detail page.
// Clicks on ids outside the active subset are ignored.
func (c *Controller) Click(id string) bool {
	it, ok := c.state.Lookup(id)
	if !ok {
		return false
	}
	c.Select(id)
	path := c.nav.Navigate(it)
	c.emit(ViewEvent{Type: EventNavigate, ItemID: id, Path: path})
	if c.OnNavigate != nil {
		c.OnNavigate(it, path)
	}
	return true
}

// ContainerEnter pauses ambient rotation while the pointer is over the view.
func (c *Controller) ContainerEnter() bool {
	return c.setPaused(true)
}

// ContainerLeave resumes ambient rotation.
func (c *Controller) ContainerLeave() bool {
	return c.setPaused(false)
}

// TogglePause flips the pause flag.
func (c *Controller) TogglePause() bool {
	return c.setPaused(!c.state.Paused())
}

func (c *Controller) setPaused(paused bool) bool {
	if !c.state.SetPaused(paused) {
		return false
	}
	if paused {
		c.emit(ViewEvent{Type: EventPause})
	} else {
		c.emit(ViewEvent{Type: EventResume})
	}
	return true
}

// SetFilter applies a category filter ("all" or "" for none) and emits
// leave and deselect events for references the new subset drops.
func (c *Controller) SetFilter(category string) bool {
	snap := c.snapshot()
	if !c.state.SetFilter(category) {
		return false
	}
	c.emit(ViewEvent{Type: EventFilter, Category: c.state.Filter()})
	c.reconcile(snap)
	return true
}

// SetSearch applies a search query with the same clearing rules as
// SetFilter.
func (c *Controller) SetSearch(query string) bool {
	snap := c.snapshot()
	if !c.state.SetSearch(query) {
		return false
	}
	c.emit(ViewEvent{Type: EventSearch, Query: c.state.Search()})
	c.reconcile(snap)
	return true
}

// SetItems swaps the collection, keeping the categories in sync with it.
func (c *Controller) SetItems(items []Item, categories []Category) {
	snap := c.snapshot()
	c.state.SetItems(items)
	if categories != nil {
		c.categories = categories
	}
	c.reconcile(snap)
}

// ToggleCompare adds or removes id from the comparison set.
func (c *Controller) ToggleCompare(id string) bool {
	if !c.state.ToggleCompare(id) {
		return false
	}
	c.emit(ViewEvent{Type: EventCompare, ItemID: id})
	return true
}

type stateSnapshot struct {
	hovered  string
	selected string
	compare  int
}

func (c *Controller) snapshot() stateSnapshot {
	return stateSnapshot{
		hovered:  c.state.Hovered(),
		selected: c.state.Selected(),
		compare:  len(c.state.Compare()),
	}
}

// reconcile emits events for references cleared by a subset change.
func (c *Controller) reconcile(snap stateSnapshot) {
	if snap.hovered != "" && c.state.Hovered() == "" {
		c.emit(ViewEvent{Type: EventHoverLeave, ItemID: snap.hovered})
	}
	if snap.selected != "" && c.state.Selected() == "" {
		c.deselected()
	}
	if snap.compare != len(c.state.Compare()) {
		c.emit(ViewEvent{Type: EventCompare})
	}
}

// HandleKey applies a keyboard command and reports whether anything changed.
func (c *Controller) HandleKey(k Key) bool {
	switch k {
	case KeyLeft:
		return c.moveCursor(-1)
	case KeyRight:
		return c.moveCursor(1)
	case KeyUp:
		return c.cycleFilter(-1)
	case KeyDown:
		return c.cycleFilter(1)
	case KeySpace:
		it, ok := c.state.CursorItem()
		if !ok {
			return false
		}
		if c.state.Selected() == it.ID {
			return c.Deselect()
		}
		return c.Select(it.ID)
	case KeyEnter:
		it, ok := c.state.CursorItem()
		if !ok {
			return false
		}
		return c.ToggleCompare(it.ID)
	case KeyEscape:
		return c.Escape()
	case KeyPause:
		return c.TogglePause()
	}
	return false
}

func (c *Controller) moveCursor(delta int) bool {
	if c.state.Empty() {
		return false
	}
	prev := c.state.Cursor()
	return c.state.MoveCursor(delta) != prev
}

// cycleFilter steps through "all" followed by each category, wrapping.
func (c *Controller) cycleFilter(delta int) bool {
	n := len(c.categories) + 1
	if n == 1 {
		return false
	}
	cur := 0
	for i, cat := range c.categories {
		if cat.ID == c.state.Filter() {
			cur = i + 1
			break
		}
	}
	next := ((cur+delta)%n + n) % n
	if next == 0 {
		return c.SetFilter(FilterAll)
	}
	return c.SetFilter(c.categories[next-1].ID)
}

// Escape clears hover, selection, search, the category filter and
// comparison, resumes rotation and asks for a camera reset.
func (c *Controller) Escape() bool {
	changed := c.HoverLeave("")
	if c.Deselect() {
		changed = true
	}
	if c.SetSearch("") {
		changed = true
	}
	if c.SetFilter(FilterAll) {
		changed = true
	}
	if c.state.ClearCompare() {
		c.emit(ViewEvent{Type: EventCompare})
		changed = true
	}
	if c.setPaused(false) {
		changed = true
	}
	if c.OnReset != nil {
		c.OnReset()
	}
	return changed
}
