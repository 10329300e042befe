package orbit

// Gallery is the lightbox state for one item's images: which item is open
// and which image is shown. Next and Prev wrap around.
type Gallery struct {
	item  Item
	index int
	open  bool
}

// Open shows it starting at image index. An out-of-range index starts at the
// first image. Items without images are not opened.
func (g *Gallery) Open(it Item, index int) bool {
	if len(it.Images) == 0 {
		return false
	}
	if index < 0 || index >= len(it.Images) {
		index = 0
	}
	g.item = it
	g.index = index
	g.open = true
	return true
}

// Close hides the gallery.
func (g *Gallery) Close() {
	g.open = false
	g.item = Item{}
	g.index = 0
}

// IsOpen reports whether an item is shown.
func (g *Gallery) IsOpen() bool { return g.open }

// Item returns the open item.
func (g *Gallery) Item() (Item, bool) { return g.item, g.open }

// Index returns the position of the shown image.
func (g *Gallery) Index() int { return g.index }

// Current returns the shown image reference, or "" when closed.
func (g *Gallery) Current() string {
	if !g.open {
		return ""
	}
	return g.item.Images[g.index]
}

// Next advances to the following image, wrapping to the first.
func (g *Gallery) Next() string {
	if !g.open {
		return ""
	}
	g.index = (g.index + 1) % len(g.item.Images)
	return g.Current()
}

// Prev moves to the preceding image, wrapping to the last.
func (g *Gallery) Prev() string {
	if !g.open {
		return ""
	}
	n := len(g.item.Images)
	g.index = (g.index - 1 + n) % n
	return g.Current()
}
