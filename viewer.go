package orbit

import (
	"cmp"
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CardFrame is the render tuple for one card in one tick.
type CardFrame struct {
	Item Item
	Slot LayoutSlot
	// Screen is the projected centre of the card.
	Screen Vec2
	// Rect is the screen-space card rectangle, hover scale included. Hit
	// tests use it.
	Rect Rect
	// Depth is the camera-space depth; larger is farther.
	Depth float64
	// Scale is the perspective size in pixels of one world unit.
	Scale float64
	// HoverScale is the current hover tween value (1 when not hovered).
	HoverScale float64
	// Facing is the cosine between the card normal and the view direction:
	// 1 faces the camera, -1 faces away.
	Facing   float64
	Hovered  bool
	Selected bool
	Cursor   bool
	Compared bool
	Paused   bool
	Detail   Detail
	Asset    *Asset
}

// hoverAnim is the scale tween of one card.
type hoverAnim struct {
	scale  float64
	target float64
	tween  *TweenGroup
}

// ViewerOption configures a Viewer.
type ViewerOption func(*viewerOptions)

type viewerOptions struct {
	logger      *zap.Logger
	ctx         context.Context
	sink        EventSink
	navigate    func(Item, string)
	categories  []Category
	viewport    Rect
	loaderOpts  []LoaderOption
	startPath   string
	perfSampler func() float64
	tones       TonePlayer
}

// WithLogger sets the logger for the viewer and its asset loader.
func WithLogger(logger *zap.Logger) ViewerOption {
	return func(o *viewerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithContext sets the parent context of the asset loader.
func WithContext(ctx context.Context) ViewerOption {
	return func(o *viewerOptions) { o.ctx = ctx }
}

// WithEventSink forwards view events to sink.
func WithEventSink(sink EventSink) ViewerOption {
	return func(o *viewerOptions) { o.sink = sink }
}

// WithNavigate sets the callback invoked with a clicked item and its path.
func WithNavigate(fn func(it Item, path string)) ViewerOption {
	return func(o *viewerOptions) { o.navigate = fn }
}

// WithCategories sets the filter options. By default they are derived from
// the items.
func WithCategories(categories []Category) ViewerOption {
	return func(o *viewerOptions) { o.categories = categories }
}

// WithViewport sets the initial screen-space viewport.
func WithViewport(r Rect) ViewerOption {
	return func(o *viewerOptions) { o.viewport = r }
}

// WithLoaderOptions passes options through to the asset loader.
func WithLoaderOptions(opts ...LoaderOption) ViewerOption {
	return func(o *viewerOptions) { o.loaderOpts = append(o.loaderOpts, opts...) }
}

// WithStartPath sets the navigator's initial path.
func WithStartPath(path string) ViewerOption {
	return func(o *viewerOptions) { o.startPath = path }
}

// WithTonePlayer enables feedback tones played through p. Without it the
// viewer is silent.
func WithTonePlayer(p TonePlayer) ViewerOption {
	return func(o *viewerOptions) { o.tones = p }
}

// WithFPSSampler replaces frame counting in the performance monitor.
func WithFPSSampler(fn func() float64) ViewerOption {
	return func(o *viewerOptions) { o.perfSampler = fn }
}

// Viewer is the per-tick core of a carousel: it owns the view state,
// controller, asset loader, camera, sound and performance monitor of one
// mount and emits the ordered card frames a render adapter draws.
//
// A Viewer is not safe for concurrent use. Call every method from the game
// thread.
type Viewer struct {
	cfg    Config
	logger *zap.Logger
	sink   EventSink

	state      *ViewState
	controller *Controller
	nav        *Navigator
	loader     *AssetLoader
	camera     *Camera
	perf       *PerformanceMonitor
	sound      *SoundManager
	gallery    Gallery
	// galleryRefs are the lightbox images requested since it opened.
	galleryRefs map[string]bool

	slots  []LayoutSlot
	frames []CardFrame
	hover  map[string]*hoverAnim

	pointer        pointerState
	dragDeadZone   float64
	realPointer    pointerSample
	hasRealPointer bool
	realKeys       []Key
	injectQueue    []syntheticEvent

	script          *ScriptRunner
	screenshotQueue []string
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	postMu sync.Mutex
	posted []func()

	tick          uint64
	reducedMotion bool
	debug         bool
	closed        bool
}

// NewViewer validates items and creates a viewer over them with cfg. Zero
// config fields take their defaults. The returned error is a
// *ValidationError when the collection breaks its invariants.
func NewViewer(items []Item, cfg Config, fetcher Fetcher, opts ...ViewerOption) (*Viewer, error) {
	if err := ValidateItems(items); err != nil {
		return nil, err
	}
	o := viewerOptions{
		logger:    zap.NewNop(),
		ctx:       context.Background(),
		viewport:  Rect{Width: 1280, Height: 720},
		startPath: "/",
	}
	for _, opt := range opts {
		opt(&o)
	}
	cfg = cfg.withDefaults()

	v := &Viewer{
		cfg:           cfg,
		logger:        o.logger,
		sink:          o.sink,
		state:         NewViewState(items),
		nav:           NewNavigator(o.startPath),
		camera:        newCamera(o.viewport, cfg.CameraDistance, cfg.FOV),
		perf:          NewPerformanceMonitor(cfg.LowFPS),
		sound:         NewSoundManager(o.tones, cfg.Sound && !cfg.ReducedMotion, o.logger),
		galleryRefs:   make(map[string]bool),
		hover:         make(map[string]*hoverAnim),
		dragDeadZone:  defaultDragDeadZone,
		ScreenshotDir: "screenshots",
		reducedMotion: cfg.ReducedMotion,
		debug:         cfg.Debug,
	}
	v.perf.Sampler = o.perfSampler

	loaderOpts := []LoaderOption{
		WithLoaderLogger(o.logger),
		WithConcurrency(cfg.Concurrency),
		WithStagger(cfg.Stagger),
	}
	v.loader = NewAssetLoader(o.ctx, fetcher, append(loaderOpts, o.loaderOpts...)...)

	categories := o.categories
	if categories == nil {
		categories = CategoriesOf(items)
	}
	v.controller = NewController(v.state, v.nav, categories)
	v.controller.OnNavigate = o.navigate
	v.controller.OnEvent = v.emit
	v.controller.OnSelect = v.onSelect
	v.controller.OnReset = v.onReset

	v.logger.Debug("viewer created",
		zap.Int("items", len(items)),
		zap.Stringer("layout", cfg.Layout),
		zap.Float64("radius", cfg.Radius))
	return v, nil
}

// Config returns the effective configuration.
func (v *Viewer) Config() Config { return v.cfg }

// State returns the view state.
func (v *Viewer) State() *ViewState { return v.state }

// Controller returns the interaction controller.
func (v *Viewer) Controller() *Controller { return v.controller }

// Navigator returns the navigator that records clicked detail pages.
func (v *Viewer) Navigator() *Navigator { return v.nav }

// Loader returns the asset loader.
func (v *Viewer) Loader() *AssetLoader { return v.loader }

// Camera returns the camera.
func (v *Viewer) Camera() *Camera { return v.camera }

// Performance returns the performance monitor.
func (v *Viewer) Performance() *PerformanceMonitor { return v.perf }

// Sound returns the feedback tone manager.
func (v *Viewer) Sound() *SoundManager { return v.sound }

// Gallery returns the lightbox state.
func (v *Viewer) Gallery() *Gallery { return &v.gallery }

// Frames returns the card frames of the last tick, back-to-front. The slice
// is reused by the next Update.
func (v *Viewer) Frames() []CardFrame { return v.frames }

// Empty reports whether the active subset has no items. An empty viewer is
// a valid state, not an error.
func (v *Viewer) Empty() bool { return v.state.Empty() }

// Tick returns the number of Update calls that ran.
func (v *Viewer) Tick() uint64 { return v.tick }

// ReducedMotion reports whether ambient rotation and hover tweens are
// currently disabled, by configuration or by low frame rate.
func (v *Viewer) ReducedMotion() bool { return v.reducedMotion }

// Closed reports whether Close has been called.
func (v *Viewer) Closed() bool { return v.closed }

// Viewport returns the screen-space viewport.
func (v *Viewer) Viewport() Rect { return v.camera.Viewport }

// SetViewport resizes the camera viewport.
func (v *Viewer) SetViewport(r Rect) {
	v.camera.Viewport = r
}

// SetItems swaps the collection, keeping filter, search, hover and
// selection where the ids survive. categories replaces the filter options;
// nil derives them from items. Cached images no longer referenced by any
// item are released.
func (v *Viewer) SetItems(items []Item, categories []Category) error {
	if err := ValidateItems(items); err != nil {
		return err
	}
	if categories == nil {
		categories = CategoriesOf(items)
	}
	v.controller.SetItems(items, categories)

	keep := make(map[string]bool, len(items))
	for i := range items {
		keep[items[i].Cover()] = true
	}
	if it, ok := v.gallery.Item(); ok {
		if v.state.IsActive(it.ID) {
			keep[v.gallery.Current()] = true
		} else {
			v.gallery.Close()
		}
	}
	released := v.loader.Retain(keep)
	v.logger.Info("collection replaced",
		zap.Int("items", len(items)),
		zap.Int("active", v.state.Len()),
		zap.Int("released", released))
	return nil
}

// OpenGallery opens the lightbox on the active item id at image index.
func (v *Viewer) OpenGallery(id string, index int) bool {
	it, ok := v.state.Lookup(id)
	if !ok {
		return false
	}
	return v.gallery.Open(it, index)
}

// Close stops the viewer: no further frames are emitted and outstanding
// image loads are cancelled. Close is idempotent.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.loader.Close()
	if err := v.sound.Close(); err != nil {
		v.logger.Warn("closing sound", zap.Error(err))
	}
	v.frames = nil
	v.hover = nil
	v.postMu.Lock()
	v.posted = nil
	v.postMu.Unlock()
	v.logger.Debug("viewer closed", zap.Uint64("ticks", v.tick))
}

func (v *Viewer) emit(evt ViewEvent) {
	evt.Tick = v.tick
	if v.debug {
		v.logger.Debug("view event",
			zap.Stringer("type", evt.Type),
			zap.String("item", evt.ItemID))
	}
	v.sound.Event(evt)
	if v.sink != nil {
		v.sink.EmitEvent(evt)
	}
}

// onSelect focuses the camera on the selected card or resets it.
func (v *Viewer) onSelect(it Item, ok bool) {
	duration := v.focusDuration()
	if !ok {
		v.camera.Reset(duration, defaultEase)
		return
	}
	i, found := v.state.IndexOf(it.ID)
	if !found {
		return
	}
	slot := Slot(v.cfg.Layout, i, v.state.Len(), v.cfg.Radius)
	v.camera.FocusOn(slot.Position, v.cfg.CameraDistance*0.6, duration, defaultEase)
}

func (v *Viewer) onReset() {
	v.gallery.Close()
	v.camera.Reset(v.focusDuration(), defaultEase)
}

func (v *Viewer) focusDuration() float32 {
	if v.reducedMotion {
		return 0
	}
	return float32(v.cfg.FocusDuration.Seconds())
}

// rotating reports whether ambient rotation runs this tick.
func (v *Viewer) rotating() bool {
	return !v.reducedMotion &&
		!v.state.Paused() &&
		v.state.Hovered() == "" &&
		!v.camera.Focused() &&
		!v.pointer.dragging
}

// Update advances the viewer by dt seconds: drain image loads, apply queued
// input, step animation and the camera, then lay out and emit card frames.
// It does nothing once the viewer is closed.
func (v *Viewer) Update(dt float64) {
	if v.closed {
		return
	}
	v.tick++

	v.loader.Update()
	v.runPosted()
	if v.script != nil {
		v.script.step(v)
	}
	v.processInput()

	if v.perf.Update(dt) {
		v.logger.Info("frame rate threshold crossed",
			zap.Float64("fps", v.perf.FPS()),
			zap.Bool("low", v.perf.Low()))
	}
	v.reducedMotion = v.cfg.ReducedMotion || v.perf.Low()

	rotating := v.rotating()
	if rotating {
		v.camera.Rotate(v.cfg.RotationSpeed * dt)
	}
	v.sound.Update(dt, rotating, v.tick)
	v.camera.update(float32(dt))

	var stats debugStats
	var t0 time.Time
	if v.debug {
		t0 = time.Now()
	}

	n := v.state.Len()
	v.slots = AppendLayout(v.slots[:0], v.cfg.Layout, n, v.cfg.Radius)
	v.updateHover(float32(dt))

	if v.debug {
		t1 := time.Now()
		stats.layoutTime = t1.Sub(t0)
		t0 = t1
	}

	stats.requested = v.emitFrames()

	if v.debug {
		t1 := time.Now()
		stats.emitTime = t1.Sub(t0)
		t0 = t1
	}

	slices.SortStableFunc(v.frames, func(a, b CardFrame) int {
		return cmp.Compare(b.Depth, a.Depth)
	})

	if v.debug {
		stats.sortTime = time.Since(t0)
		stats.frames = len(v.frames)
		stats.progress = v.loader.Progress()
		v.debugLog(stats)
	}
}

// Post queues fn to run on the game thread at the start of the next Update.
// It is safe to call from any goroutine; functions posted after Close never
// run.
func (v *Viewer) Post(fn func()) {
	v.postMu.Lock()
	v.posted = append(v.posted, fn)
	v.postMu.Unlock()
}

func (v *Viewer) runPosted() {
	v.postMu.Lock()
	fns := v.posted
	v.posted = nil
	v.postMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// updateHover retargets and advances the hover scale tweens.
func (v *Viewer) updateHover(dt float32) {
	hovered := v.state.Hovered()
	if hovered != "" {
		if _, ok := v.hover[hovered]; !ok {
			v.hover[hovered] = &hoverAnim{scale: 1, target: 1}
		}
	}
	duration := float32(v.cfg.HoverDuration.Seconds())
	if v.reducedMotion {
		duration = 0
	}
	for id, a := range v.hover {
		target := 1.0
		if id == hovered {
			target = v.cfg.HoverScale
		}
		if target != a.target {
			a.target = target
			a.tween = TweenValue(&a.scale, target, duration, defaultEase)
		}
		a.tween.Update(dt)
		if id != hovered && (a.tween == nil || a.tween.Done) {
			delete(v.hover, id)
		}
	}
}

func (v *Viewer) hoverScale(id string) float64 {
	if a, ok := v.hover[id]; ok {
		return a.scale
	}
	return 1
}

// emitFrames projects every active item and requests its cover image. It
// returns the number of requests made.
func (v *Viewer) emitFrames() int {
	v.frames = v.frames[:0]
	active := v.state.Active()
	hovered, selected := v.state.Hovered(), v.state.Selected()
	cursor := v.state.Cursor()
	paused := v.state.Paused()
	compare := v.state.Compare()
	lowPerf := v.perf.Low()

	requested := 0
	for i := range active {
		it := &active[i]
		slot := v.slots[i]
		screen, scale, depth, ok := v.camera.Project(slot.Position)
		if !ok {
			continue
		}
		hs := v.hoverScale(it.ID)
		w := v.cfg.CardWidth * scale * hs
		h := v.cfg.CardHeight * scale * hs
		rect := Rect{X: screen.X - w/2, Y: screen.Y - h/2, Width: w, Height: h}

		detail := DetailLow
		if !lowPerf {
			detail = v.camera.Detail(depth, v.cfg.LODHigh, v.cfg.LODMedium)
		}
		priority := PriorityLow
		switch {
		case it.ID == hovered || it.ID == selected:
			priority = PriorityHigh
		case v.camera.Visible(rect):
			priority = detail.Priority()
		}
		asset := v.loader.Request(it.Cover(), priority)
		requested++

		v.frames = append(v.frames, CardFrame{
			Item:       *it,
			Slot:       slot,
			Screen:     screen,
			Rect:       rect,
			Depth:      depth,
			Scale:      scale,
			HoverScale: hs,
			Facing:     math.Cos(slot.Yaw + v.camera.Yaw),
			Hovered:    it.ID == hovered,
			Selected:   it.ID == selected,
			Cursor:     i == cursor,
			Compared:   slices.Contains(compare, it.ID),
			Paused:     paused,
			Detail:     detail,
			Asset:      asset,
		})
	}

	if src := v.gallery.Current(); src != "" {
		v.loader.Request(src, PriorityHigh)
		v.galleryRefs[src] = true
		requested++
	} else if len(v.galleryRefs) > 0 {
		v.releaseGallery()
	}
	return requested
}

// releaseGallery evicts the lightbox images that are not also card covers.
func (v *Viewer) releaseGallery() {
	covers := make(map[string]bool, len(v.state.Items()))
	for _, it := range v.state.Items() {
		covers[it.Cover()] = true
	}
	for src := range v.galleryRefs {
		if !covers[src] {
			v.loader.Release(src)
		}
		delete(v.galleryRefs, src)
	}
}
