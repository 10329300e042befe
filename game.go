package orbit

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the initial window size. Zero means 1280x720.
	Width, Height int
	// ShowFPS draws the FPS and TPS counters in the top-left corner.
	ShowFPS bool
	// ClearColor fills the screen before each frame.
	ClearColor Color
}

// keyBindings maps Ebitengine keys to controller keys, in polling order.
var keyBindings = []struct {
	key ebiten.Key
	k   Key
}{
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyP, KeyPause},
}

var (
	outlineCursor   = color.RGBA{R: 0xd9, G: 0xc9, B: 0xa3, A: 0xff}
	outlineSelected = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	outlineCompare  = color.RGBA{R: 0x6b, G: 0x8f, B: 0x71, A: 0xff}
	progressTrack   = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	progressFill    = color.RGBA{R: 0xd9, G: 0xc9, B: 0xa3, A: 0xff}
)

// minFacing keeps edge-on cards from collapsing to a line.
const minFacing = 0.15

// game adapts a Viewer to ebiten.Game.
type game struct {
	viewer *Viewer
	cfg    RunConfig
	width  int
	height int
}

// Run opens a window and drives v until the window is closed or v is
// closed. It does not close v.
func Run(v *Viewer, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.Title == "" {
		cfg.Title = "orbit"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if v.perf.Sampler == nil {
		v.perf.Sampler = ebiten.ActualFPS
	}

	g := &game{viewer: v, cfg: cfg}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// Update polls input and advances the viewer one tick.
func (g *game) Update() error {
	v := g.viewer
	if v.Closed() {
		return ebiten.Termination
	}
	x, y := ebiten.CursorPosition()
	v.FeedPointer(float64(x), float64(y), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			v.FeedKey(b.k)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		v.sound.SetEnabled(!v.sound.Enabled())
	}
	v.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw renders the card frames back-to-front, the load progress bar and the
// optional FPS counter, then captures queued screenshots.
func (g *game) Draw(screen *ebiten.Image) {
	v := g.viewer
	screen.Fill(g.cfg.ClearColor.RGBA())

	if v.Empty() {
		ebitenutil.DebugPrintAt(screen, "No projects match the current filter.",
			g.width/2-110, g.height/2)
	}
	placeholder := v.loader.Placeholder()
	for i := range v.Frames() {
		drawCard(screen, &v.frames[i], placeholder)
	}
	if v.gallery.IsOpen() {
		g.drawGallery(screen)
	}

	if p := v.loader.Progress(); !p.Done() {
		w := float32(g.width) * 0.3
		x := (float32(g.width) - w) / 2
		y := float32(g.height) - 24
		vector.DrawFilledRect(screen, x, y, w, 4, progressTrack, false)
		vector.DrawFilledRect(screen, x, y, w*float32(p.Settled()), 4, progressFill, false)
	}

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	v.flushScreenshots(screen)
}

func drawCard(screen *ebiten.Image, f *CardFrame, placeholder *ebiten.Image) {
	img := placeholder
	if f.Asset.Ready() && f.Asset.Texture != nil {
		img = f.Asset.Texture
	}
	b := img.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())
	if sw == 0 || sh == 0 {
		return
	}

	facing := math.Max(math.Abs(f.Facing), minFacing)
	w := f.Rect.Width * facing
	h := f.Rect.Height

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/sw, h/sh)
	op.GeoM.Translate(f.Rect.X+(f.Rect.Width-w)/2, f.Rect.Y)
	if f.Detail == DetailLow {
		op.Filter = ebiten.FilterNearest
	} else {
		op.Filter = ebiten.FilterLinear
	}
	if f.Facing < 0 {
		op.ColorScale.Scale(0.5, 0.5, 0.5, 1)
	}
	screen.DrawImage(img, op)

	x := float32(f.Rect.X + (f.Rect.Width-w)/2)
	y := float32(f.Rect.Y)
	switch {
	case f.Selected:
		vector.StrokeRect(screen, x, y, float32(w), float32(h), 3, outlineSelected, true)
	case f.Compared:
		vector.StrokeRect(screen, x, y, float32(w), float32(h), 2, outlineCompare, true)
	case f.Cursor:
		vector.StrokeRect(screen, x, y, float32(w), float32(h), 1, outlineCursor, true)
	}
}

func (g *game) drawGallery(screen *ebiten.Image) {
	v := g.viewer
	vector.DrawFilledRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{A: 0xe0}, false)

	placeholder := v.loader.Placeholder()
	img := placeholder
	if a, ok := v.loader.Lookup(v.gallery.Current()); ok && a.Ready() && a.Texture != nil {
		img = a.Texture
	}
	b := img.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())
	maxW, maxH := float64(g.width)*0.8, float64(g.height)*0.8
	dw, dh := maxW, maxH
	if img != placeholder {
		s := math.Min(maxW/sw, maxH/sh)
		dw, dh = sw*s, sh*s
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dw/sw, dh/sh)
	op.GeoM.Translate((float64(g.width)-dw)/2, (float64(g.height)-dh)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)

	it, _ := v.gallery.Item()
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%s  %d/%d", it.Title, v.gallery.Index()+1, len(it.Images)),
		16, g.height-40)
}

// Layout tracks the window size and keeps the viewer viewport in sync.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.viewer.SetViewport(Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}
