package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/orbit"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the catalog in the terminal",
	Long: `A terminal fallback for the carousel. Left and right move between projects,
up and down cycle categories, / searches, space selects, enter compares,
escape resets and q quits.`,
	RunE: runTUI,
}

const tuiFPS = 30

func runTUI(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	// The terminal never draws images, so only check that they load.
	v, err := orbit.NewViewer(cat.Items, cfg.Config, cat.Fetcher(),
		orbit.WithLogger(logger),
		orbit.WithContext(cmd.Context()),
		orbit.WithCategories(cat.Categories),
		orbit.WithLoaderOptions(orbit.WithTextureFunc(nil)))
	if err != nil {
		return err
	}
	defer v.Close()

	_, err = tea.NewProgram(newTUIModel(v), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/tuiFPS, func(t time.Time) tea.Msg { return tickMsg(t) })
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8C872"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#8A8A8A"))
	activeTab     = tabStyle.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3C3C50"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).BorderForeground(lipgloss.Color("#5A5A70"))
	selectedCard  = cardStyle.BorderForeground(lipgloss.Color("#E8C872"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	comparedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#72C8E8"))
)

// tuiModel drives a viewer from terminal keys. The viewer ticks at tuiFPS;
// keys are queued and applied on the next tick.
type tuiModel struct {
	v         *orbit.Viewer
	width     int
	searching bool
	query     string
}

func newTUIModel(v *orbit.Viewer) tuiModel {
	return tuiModel{v: v, width: 80}
}

func (m tuiModel) Init() tea.Cmd { return tick() }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.v.Update(1.0 / tuiFPS)
		return m, tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.searching = true
			m.query = m.v.State().Search()
		default:
			if k, ok := terminalKey(msg.String()); ok {
				m.v.FeedKey(k)
			}
		}
	}
	return m, nil
}

func (m tuiModel) updateSearch(msg tea.KeyMsg) tuiModel {
	switch msg.Type {
	case tea.KeyEnter:
		m.v.Controller().SetSearch(m.query)
		m.searching = false
	case tea.KeyEsc:
		m.searching = false
		m.query = m.v.State().Search()
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	}
	return m
}

func terminalKey(s string) (orbit.Key, bool) {
	if s == " " {
		return orbit.KeySpace, true
	}
	return orbit.ParseKey(s)
}

func (m tuiModel) View() string {
	state := m.v.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render("PORTFOLIO"))
	b.WriteString("  ")
	b.WriteString(m.tabs())
	b.WriteString("\n")
	if m.searching {
		fmt.Fprintf(&b, "search: %s▏\n", m.query)
	} else if q := state.Search(); q != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("search: %q", q)) + "\n")
	}
	b.WriteString("\n")

	if it, ok := state.CursorItem(); ok {
		b.WriteString(m.card(it, it.ID == state.Selected()))
		b.WriteString("\n")
		b.WriteString(m.strip())
	} else {
		b.WriteString(dimStyle.Render("No projects match the current filter."))
	}
	b.WriteString("\n\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("←/→ move  ↑/↓ category  / search  space select  enter compare  p pause  esc reset  q quit"))
	return b.String()
}

func (m tuiModel) tabs() string {
	filter := m.v.State().Filter()
	tab := func(id, name string) string {
		if id == filter {
			return activeTab.Render(name)
		}
		return tabStyle.Render(name)
	}
	parts := []string{tab(orbit.FilterAll, "All")}
	for _, c := range m.v.Controller().Categories() {
		parts = append(parts, tab(c.ID, c.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m tuiModel) card(it orbit.Item, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCard
	}
	width := min(m.width-4, 72)
	if width < 20 {
		width = 20
	}

	var lines []string
	lines = append(lines, titleStyle.Render(it.Title))
	meta := []string{}
	for _, s := range []string{it.Location, string(it.Status), strings.Join(it.Categories, ", ")} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	lines = append(lines, dimStyle.Render(strings.Join(meta, " · ")))
	if it.Summary != "" {
		lines = append(lines, "", it.Summary)
	}
	if a, ok := m.v.Loader().Lookup(it.Cover()); ok && a.Status == orbit.AssetFailed {
		lines = append(lines, "", dimStyle.Render("cover image unavailable"))
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// strip lists the titles around the cursor, wrapping like the carousel.
func (m tuiModel) strip() string {
	state := m.v.State()
	active := state.Active()
	n := len(active)
	span := min(n, 5)
	compared := make(map[string]bool)
	for _, id := range state.Compare() {
		compared[id] = true
	}

	var parts []string
	for off := -(span / 2); off < span-span/2; off++ {
		it := active[((state.Cursor()+off)%n+n)%n]
		label := it.Title
		if len([]rune(label)) > 18 {
			label = string([]rune(label)[:17]) + "…"
		}
		switch {
		case off == 0:
			label = cursorStyle.Render(label)
		case compared[it.ID]:
			label = comparedStyle.Render(label)
		default:
			label = dimStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, dimStyle.Render("  |  "))
}

func (m tuiModel) status() string {
	state := m.v.State()
	p := m.v.Loader().Progress()
	pos := 0
	if !state.Empty() {
		pos = state.Cursor() + 1
	}
	fields := []string{
		fmt.Sprintf("%d/%d", pos, state.Len()),
		fmt.Sprintf("images %d/%d", p.Loaded, p.Total),
	}
	if p.Failed > 0 {
		fields = append(fields, fmt.Sprintf("%d failed", p.Failed))
	}
	if state.Paused() {
		fields = append(fields, "paused")
	}
	if n := len(state.Compare()); n > 0 {
		fields = append(fields, fmt.Sprintf("comparing %d", n))
	}
	return strings.Join(fields, " · ")
}
