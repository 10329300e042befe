package orbit

// ProjectPath returns the detail page path for an item: "/project/{slug}",
// falling back to the id when the item has no slug.
func ProjectPath(it Item) string {
	key := it.Slug
	if key == "" {
		key = it.ID
	}
	return "/project/" + key
}

// Navigator tracks the current and previous page path. It is owned by one
// viewer; the core never routes, it only records what was requested.
type Navigator struct {
	current  string
	previous string
}

// NewNavigator returns a navigator starting at path.
func NewNavigator(path string) *Navigator {
	return &Navigator{current: path}
}

// Visit records a move to path. It reports whether the page changed, which
// callers use as the signal to restore or reset scroll position.
func (n *Navigator) Visit(path string) bool {
	if path == n.current {
		return false
	}
	n.previous = n.current
	n.current = path
	return true
}

// Navigate visits the detail page of it and returns its path.
func (n *Navigator) Navigate(it Item) string {
	path := ProjectPath(it)
	n.Visit(path)
	return path
}

// Current returns the current path.
func (n *Navigator) Current() string { return n.current }

// Previous returns the path before the last page change, or "".
func (n *Navigator) Previous() string { return n.previous }
