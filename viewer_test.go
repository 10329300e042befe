package orbit

import (
	"context"
	"errors"
	"image"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 64

func newTestViewer(t *testing.T, items []Item, cfg Config, opts ...ViewerOption) *Viewer {
	t.Helper()
	opts = append([]ViewerOption{WithLoaderOptions(WithTextureFunc(nil))}, opts...)
	v, err := NewViewer(items, cfg, instantFetcher(nil), opts...)
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return v
}

func stillConfig() Config {
	cfg := DefaultConfig()
	cfg.ReducedMotion = true
	return cfg
}

func frameFor(t *testing.T, v *Viewer, id string) CardFrame {
	t.Helper()
	for _, f := range v.Frames() {
		if f.Item.ID == id {
			return f
		}
	}
	t.Fatalf("no frame for item %q", id)
	return CardFrame{}
}

func TestNewViewerRejectsInvalidItems(t *testing.T) {
	items := testItems(2, 0)
	items[1].Images = nil
	items = append(items, Item{ID: "1", Images: []string{"x"}})

	_, err := NewViewer(items, DefaultConfig(), instantFetcher(nil))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 2)
	assert.ErrorIs(t, err, ErrNoImages)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestViewerEmitsFramesBackToFront(t *testing.T) {
	v := newTestViewer(t, testItems(5, 5), stillConfig())
	v.Update(testDT)

	frames := v.Frames()
	require.Len(t, frames, 10)
	for i := 1; i < len(frames); i++ {
		assert.GreaterOrEqual(t, frames[i-1].Depth, frames[i].Depth)
	}
	for _, f := range frames {
		require.NotNil(t, f.Asset)
		assert.Equal(t, f.Item.Cover(), f.Asset.URL)
		assert.True(t, f.Slot.Valid)
		assert.Equal(t, 1.0, f.HoverScale)
		assert.Greater(t, f.Scale, 0.0)
	}
}

func TestViewerFilterNarrowsFrames(t *testing.T) {
	v := newTestViewer(t, testItems(4, 6), stillConfig())
	v.Controller().SetFilter("b")
	v.Update(testDT)
	assert.Len(t, v.Frames(), 6)

	v.Controller().SetFilter("none")
	v.Update(testDT)
	assert.True(t, v.Empty())
	assert.Empty(t, v.Frames())
}

func TestViewerHoverAndClick(t *testing.T) {
	var navigated []string
	var events []ViewEvent
	v := newTestViewer(t, testItems(1, 0), stillConfig(),
		WithNavigate(func(it Item, path string) { navigated = append(navigated, path) }),
		WithEventSink(EventSinkFunc(func(e ViewEvent) { events = append(events, e) })))
	v.Update(testDT)

	f := frameFor(t, v, "1")
	v.InjectMove(f.Screen.X, f.Screen.Y)
	v.Update(testDT)

	assert.Equal(t, "1", v.State().Hovered())
	assert.True(t, v.State().Paused(), "entering the view pauses rotation")
	f = frameFor(t, v, "1")
	assert.True(t, f.Hovered)
	assert.True(t, f.Paused)
	assert.Equal(t, v.Config().HoverScale, f.HoverScale)

	v.InjectClick(f.Screen.X, f.Screen.Y)
	v.Update(testDT)
	v.Update(testDT)
	assert.Equal(t, "1", v.State().Selected())
	assert.Equal(t, []string{"/project/1"}, navigated)

	var types []EventType
	for _, e := range events {
		types = append(types, e.Type)
		assert.NotZero(t, e.Tick)
	}
	assert.Equal(t, []EventType{EventPause, EventHoverEnter, EventSelect, EventNavigate}, types)
}

func TestViewerPointerLeavesView(t *testing.T) {
	v := newTestViewer(t, testItems(1, 0), stillConfig())
	v.Update(testDT)
	f := frameFor(t, v, "1")

	v.FeedPointer(f.Screen.X, f.Screen.Y, false)
	v.Update(testDT)
	require.Equal(t, "1", v.State().Hovered())

	v.FeedPointer(-10, -10, false)
	v.Update(testDT)
	assert.Equal(t, "", v.State().Hovered())
	assert.False(t, v.State().Paused())
}

func TestViewerDragRotates(t *testing.T) {
	v := newTestViewer(t, testItems(1, 0), stillConfig())
	v.Update(testDT)

	v.InjectDrag(100, 100, 300, 100, 5)
	for v.Injecting() {
		v.Update(testDT)
	}
	assert.InDelta(t, 1.5, v.Camera().Yaw, 1e-9)
	assert.False(t, v.Dragging())
	assert.Equal(t, "", v.State().Selected(), "a drag is not a click")
}

func TestViewerAmbientRotation(t *testing.T) {
	v := newTestViewer(t, testItems(3, 0), DefaultConfig())
	v.Update(testDT)
	yaw := v.Camera().Yaw
	assert.InDelta(t, v.Config().RotationSpeed*testDT, yaw, 1e-12)

	v.Controller().TogglePause()
	v.Update(testDT)
	assert.Equal(t, yaw, v.Camera().Yaw, "paused")

	v.Controller().TogglePause()
	v.Controller().HoverEnter("2")
	v.Update(testDT)
	assert.Equal(t, yaw, v.Camera().Yaw, "hovered")
}

func TestViewerHoverTween(t *testing.T) {
	v := newTestViewer(t, testItems(2, 0), DefaultConfig())
	v.Controller().HoverEnter("1")
	v.Update(testDT)
	s := frameFor(t, v, "1").HoverScale
	assert.Greater(t, s, 1.0)
	assert.Less(t, s, v.Config().HoverScale)

	for i := 0; i < 64; i++ {
		v.Update(testDT)
	}
	assert.InDelta(t, v.Config().HoverScale, frameFor(t, v, "1").HoverScale, 1e-6)

	v.Controller().HoverLeave("1")
	for i := 0; i < 64; i++ {
		v.Update(testDT)
	}
	assert.InDelta(t, 1, frameFor(t, v, "1").HoverScale, 1e-6)
	assert.Empty(t, v.hover)
}

func TestViewerLowFrameRateReducesMotion(t *testing.T) {
	v := newTestViewer(t, testItems(2, 0), DefaultConfig(),
		WithFPSSampler(func() float64 { return 10 }))
	for i := 0; i < 64; i++ {
		v.Update(testDT)
	}
	assert.True(t, v.ReducedMotion())
	assert.True(t, v.Performance().Low())

	yaw := v.Camera().Yaw
	v.Update(testDT)
	assert.Equal(t, yaw, v.Camera().Yaw)
	for _, f := range v.Frames() {
		assert.Equal(t, DetailLow, f.Detail)
	}
}

func TestViewerDeduplicatesSharedCovers(t *testing.T) {
	var calls atomic.Int32
	f := FetcherFunc(func(ctx context.Context, url string) (image.Image, error) {
		calls.Add(1)
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	})
	items := []Item{
		{ID: "1", Images: []string{"/shared.jpg"}},
		{ID: "2", Images: []string{"/shared.jpg"}},
	}
	v, err := NewViewer(items, stillConfig(), f, WithLoaderOptions(WithTextureFunc(nil)))
	require.NoError(t, err)
	defer v.Close()

	require.Eventually(t, func() bool {
		v.Update(testDT)
		return v.Loader().Progress().Loaded == 1
	}, 2*time.Second, time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Same(t, v.Frames()[0].Asset, v.Frames()[1].Asset)
}

func TestViewerSetItemsReleasesImages(t *testing.T) {
	v := newTestViewer(t, testItems(4, 0), stillConfig())
	v.Controller().Select("4")
	v.Update(testDT)
	require.Equal(t, 4, v.Loader().Progress().Total)

	require.NoError(t, v.SetItems(testItems(2, 0), nil))
	assert.Equal(t, 2, v.Loader().Progress().Total)
	assert.Equal(t, "", v.State().Selected())

	v.Update(testDT)
	assert.Len(t, v.Frames(), 2)

	bad := testItems(1, 0)
	bad[0].Images = nil
	assert.ErrorIs(t, v.SetItems(bad, nil), ErrNoImages)
	assert.Equal(t, 2, v.State().Len(), "rejected collection is not applied")
}

func TestViewerCloseStopsTicks(t *testing.T) {
	v := newTestViewer(t, testItems(3, 0), stillConfig())
	v.Update(testDT)
	tick := v.Tick()

	v.Close()
	v.Close()
	assert.True(t, v.Closed())
	assert.True(t, v.Loader().Closed())
	assert.Empty(t, v.Frames())

	v.Update(testDT)
	assert.Equal(t, tick, v.Tick())
	assert.Empty(t, v.Frames())
}

func TestViewerSelectFocusesCamera(t *testing.T) {
	v := newTestViewer(t, testItems(3, 0), stillConfig())
	v.Controller().Select("2")
	v.Update(testDT)

	f := frameFor(t, v, "2")
	c := v.Viewport()
	assert.InDelta(t, c.Center().X, f.Screen.X, 1e-3)
	assert.InDelta(t, c.Center().Y, f.Screen.Y, 1e-3)

	v.InjectKey(KeyEscape)
	v.Update(testDT)
	assert.Equal(t, Vec3{}, v.Camera().Target)
	assert.False(t, v.Camera().Focused())
}

func TestViewerGalleryKeys(t *testing.T) {
	items := testItems(1, 0)
	items[0].Images = []string{"a", "b", "c"}
	v := newTestViewer(t, items, stillConfig())

	require.True(t, v.OpenGallery("1", 0))
	assert.False(t, v.OpenGallery("missing", 0))

	v.InjectKey(KeyRight)
	v.InjectKey(KeyRight)
	v.Update(testDT)
	v.Update(testDT)
	assert.Equal(t, "c", v.Gallery().Current())
	assert.Equal(t, 0, v.State().Cursor(), "gallery consumes arrows")

	_, ok := v.Loader().Lookup("c")
	assert.True(t, ok, "gallery image is requested")

	v.InjectKey(KeyEscape)
	v.Update(testDT)
	assert.False(t, v.Gallery().IsOpen())

	for _, src := range []string{"b", "c"} {
		_, ok = v.Loader().Lookup(src)
		assert.False(t, ok, "gallery image %s is released on close", src)
	}
	_, ok = v.Loader().Lookup("a")
	assert.True(t, ok, "cover stays cached")
}

func TestViewerSetItemsKeepsDeclaredCategories(t *testing.T) {
	declared := []Category{{ID: "b", Name: "Bravo Projects"}, {ID: "a", Name: "Alpha Projects"}}
	v := newTestViewer(t, testItems(2, 2), stillConfig(), WithCategories(declared))

	require.NoError(t, v.SetItems(testItems(3, 3), declared))
	assert.Equal(t, declared, v.Controller().Categories())

	v.InjectKey(KeyDown)
	v.Update(testDT)
	assert.Equal(t, "b", v.State().Filter(), "declared order survives the swap")

	require.NoError(t, v.SetItems(testItems(1, 1), nil))
	assert.Equal(t, []Category{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}, v.Controller().Categories())
}

func TestViewerPlaysTones(t *testing.T) {
	spy := &toneSpy{}
	v := newTestViewer(t, testItems(3, 0), DefaultConfig(), WithTonePlayer(spy))
	require.True(t, v.Sound().Enabled())

	v.Controller().HoverEnter("1")
	v.Controller().Click("2")
	v.Update(testDT)
	assert.Equal(t, []Tone{ToneHover, ToneClick}, spy.tones)
	assert.Equal(t, []float64{hoverVolume, selectVolume}, spy.volumes)

	v.Sound().SetEnabled(false)
	v.Controller().HoverEnter("3")
	assert.Len(t, spy.tones, 2)
}

func TestViewerReducedMotionIsSilent(t *testing.T) {
	spy := &toneSpy{}
	v := newTestViewer(t, testItems(3, 0), stillConfig(), WithTonePlayer(spy))
	assert.False(t, v.Sound().Enabled())

	v.Controller().HoverEnter("1")
	v.Controller().Click("1")
	assert.Empty(t, spy.tones)
}

func TestViewerFacing(t *testing.T) {
	v := newTestViewer(t, testItems(4, 0), func() Config {
		cfg := stillConfig()
		cfg.Layout = LayoutRing
		return cfg
	}())
	v.Update(testDT)
	// Ring slot 1 sits on +Z, facing the camera; slot 3 faces away.
	assert.InDelta(t, 1, frameFor(t, v, "2").Facing, 1e-9)
	assert.InDelta(t, -1, frameFor(t, v, "4").Facing, 1e-9)
	assert.InDelta(t, 0, math.Abs(frameFor(t, v, "1").Facing), 1e-9)
}

func TestViewerPostRunsOnUpdate(t *testing.T) {
	v := newTestViewer(t, testItems(2, 0), stillConfig())

	done := make(chan struct{})
	go func() {
		defer close(done)
		v.Post(func() {
			require.NoError(t, v.SetItems(testItems(5, 0), nil))
		})
	}()
	<-done

	assert.Equal(t, 2, v.State().Len(), "posted work waits for Update")
	v.Update(testDT)
	assert.Equal(t, 5, v.State().Len())

	ran := false
	v.Post(func() { ran = true })
	v.Close()
	v.Update(testDT)
	assert.False(t, ran, "work posted before Close is dropped")
}
