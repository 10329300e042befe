package orbit

import "testing"

func TestInjectClick(t *testing.T) {
	v := newTestViewer(t, testItems(1, 0), stillConfig())
	v.Update(testDT)
	f := frameFor(t, v, "1")

	var clicked []string
	v.Controller().OnNavigate = func(it Item, path string) { clicked = append(clicked, it.ID) }

	v.InjectClick(f.Screen.X, f.Screen.Y)
	if len(v.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(v.injectQueue))
	}

	// Tick 1: press
	v.Update(testDT)
	if len(v.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after tick 1, got %d", len(v.injectQueue))
	}
	if len(clicked) != 0 {
		t.Error("click should not fire on press tick")
	}

	// Tick 2: release fires the click
	v.Update(testDT)
	if v.Injecting() {
		t.Fatalf("expected empty queue after tick 2, got %d", len(v.injectQueue))
	}
	if len(clicked) != 1 || clicked[0] != "1" {
		t.Errorf("clicked = %v, want [1]", clicked)
	}
}

func TestInjectClickOffCard(t *testing.T) {
	v := newTestViewer(t, testItems(1, 0), stillConfig())
	v.Update(testDT)

	v.InjectClick(5, 5)
	v.Update(testDT)
	v.Update(testDT)
	if v.State().Selected() != "" {
		t.Errorf("Selected = %q, want none", v.State().Selected())
	}
}

func TestInjectPressOnCardReleaseElsewhere(t *testing.T) {
	v := newTestViewer(t, testItems(1, 0), stillConfig())
	v.Update(testDT)
	f := frameFor(t, v, "1")

	v.InjectPress(f.Screen.X, f.Screen.Y)
	v.InjectRelease(f.Screen.X+1, f.Screen.Y)
	v.Update(testDT)
	v.Update(testDT)
	if v.State().Selected() != "1" {
		t.Error("release within the dead zone over the same card should click")
	}
}

func TestInjectDragQueue(t *testing.T) {
	v := newTestViewer(t, testItems(1, 0), stillConfig())

	v.InjectDrag(10, 10, 200, 200, 5)
	if len(v.injectQueue) != 5 {
		t.Fatalf("expected 5 queued events, got %d", len(v.injectQueue))
	}
	if v.injectQueue[0].kind != injectPress || v.injectQueue[4].kind != injectRelease {
		t.Error("drag must start with a press and end with a release")
	}
	mid := v.injectQueue[2]
	if mid.kind != injectMove || mid.x != 105 || mid.y != 105 {
		t.Errorf("middle event = %+v, want move to (105, 105)", mid)
	}

	v2 := newTestViewer(t, testItems(1, 0), stillConfig())
	v2.InjectDrag(0, 0, 1, 1, 0)
	if len(v2.injectQueue) != 2 {
		t.Errorf("minimum drag should queue 2 events, got %d", len(v2.injectQueue))
	}
}

func TestInjectSkipsPolledPointer(t *testing.T) {
	v := newTestViewer(t, testItems(1, 0), stillConfig())
	v.Update(testDT)
	f := frameFor(t, v, "1")

	v.InjectMove(5, 5)
	v.FeedPointer(f.Screen.X, f.Screen.Y, false)
	v.Update(testDT)
	if v.State().Hovered() != "" {
		t.Error("polled pointer should be ignored while an injected event is consumed")
	}

	v.FeedPointer(f.Screen.X, f.Screen.Y, false)
	v.Update(testDT)
	if v.State().Hovered() != "1" {
		t.Error("polled pointer should apply once the queue is empty")
	}
}

func TestInjectKey(t *testing.T) {
	v := newTestViewer(t, testItems(3, 0), stillConfig())
	v.InjectKey(KeyRight)
	v.InjectKey(KeyRight)
	v.Update(testDT)
	if got := v.State().Cursor(); got != 1 {
		t.Fatalf("cursor after one tick = %d, want 1", got)
	}
	v.Update(testDT)
	if got := v.State().Cursor(); got != 2 {
		t.Errorf("cursor after two ticks = %d, want 2", got)
	}
}
