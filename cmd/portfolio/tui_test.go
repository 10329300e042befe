package main

import (
	"context"
	"image"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/orbit"
	"github.com/phanxgames/orbit/catalog"
)

func newTestTUI(t *testing.T) tuiModel {
	t.Helper()
	fetch := orbit.FetcherFunc(func(context.Context, string) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	})
	cat := catalog.Sample()
	v, err := orbit.NewViewer(cat.Items, orbit.Config{ReducedMotion: true}, fetch,
		orbit.WithCategories(cat.Categories),
		orbit.WithLoaderOptions(orbit.WithTextureFunc(nil)))
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return newTUIModel(v)
}

func send(m tuiModel, msgs ...tea.Msg) tuiModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(tuiModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTUIKeysDriveViewer(t *testing.T) {
	m := newTestTUI(t)
	state := m.v.State()

	m = send(m, tea.KeyMsg{Type: tea.KeyRight}, tickMsg{})
	assert.Equal(t, 1, state.Cursor())

	m = send(m, tea.KeyMsg{Type: tea.KeyDown}, tickMsg{})
	assert.Equal(t, "interior", state.Filter())

	m = send(m, tea.KeyMsg{Type: tea.KeySpace}, tickMsg{})
	it, ok := state.CursorItem()
	require.True(t, ok)
	assert.Equal(t, it.ID, state.Selected())

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc}, tickMsg{})
	assert.Empty(t, state.Selected())
	assert.Contains(t, m.View(), "Interior")
}

func TestTUISearch(t *testing.T) {
	m := newTestTUI(t)

	m = send(m, runes("/"), runes("elf"), runes("a"))
	assert.True(t, m.searching)
	assert.Contains(t, m.View(), "search: elfa")
	assert.Empty(t, m.v.State().Search(), "query applies on enter")

	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, "elf", m.v.State().Search())
	assert.Equal(t, 1, m.v.State().Len())

	m = send(m, tickMsg{})
	assert.Contains(t, m.View(), "Mr. Kh. Elfaky")
	assert.Contains(t, m.View(), "1/1")
}

func TestTUIEmptyState(t *testing.T) {
	m := newTestTUI(t)
	m = send(m, runes("/"), runes("no such project"), tea.KeyMsg{Type: tea.KeyEnter}, tickMsg{})
	assert.Contains(t, m.View(), "No projects match")
	assert.Contains(t, m.View(), "0/0")
}

func TestTUIQuit(t *testing.T) {
	m := newTestTUI(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
