package orbit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGalleryWraps(t *testing.T) {
	var g Gallery
	it := Item{ID: "1", Images: []string{"a", "b", "c"}}

	assert.True(t, g.Open(it, 0))
	assert.Equal(t, "a", g.Current())
	assert.Equal(t, "c", g.Prev())
	assert.Equal(t, "a", g.Next())
	assert.Equal(t, "b", g.Next())
	assert.Equal(t, "c", g.Next())
	assert.Equal(t, "a", g.Next())
}

func TestGalleryOpenClamps(t *testing.T) {
	var g Gallery
	it := Item{ID: "1", Images: []string{"a", "b"}}
	g.Open(it, 1)
	assert.Equal(t, "b", g.Current())
	g.Open(it, 5)
	assert.Equal(t, 0, g.Index())
}

func TestGalleryClosed(t *testing.T) {
	var g Gallery
	assert.False(t, g.Open(Item{ID: "empty"}, 0))
	assert.False(t, g.IsOpen())
	assert.Equal(t, "", g.Current())
	assert.Equal(t, "", g.Next())
	assert.Equal(t, "", g.Prev())

	g.Open(Item{ID: "1", Images: []string{"a"}}, 0)
	g.Close()
	_, ok := g.Item()
	assert.False(t, ok)
}
