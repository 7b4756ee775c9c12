package viewport_test

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"

	"github.com/example/imagine/internal/scroll"
	"github.com/example/imagine/internal/viewport"
)

type fakeDecoder struct {
	sizes map[string]image.Point
	calls []string
}

func (d *fakeDecoder) Decode(id string) (*image.RGBA, error) {
	d.calls = append(d.calls, id)
	sz, ok := d.sizes[id]
	if !ok {
		return nil, errors.New("no such asset")
	}
	return image.NewRGBA(image.Rect(0, 0, sz.X, sz.Y)), nil
}

type fakeDispatcher struct{ ids []string }

func (d *fakeDispatcher) Dispatch(id string) { d.ids = append(d.ids, id) }

// recordingAdapter accepts every offset as-is and records the calls.
type recordingAdapter struct {
	size   viewport.Size
	offset vec.Vec2
	calls  []string
}

func (a *recordingAdapter) ViewportSize() viewport.Size { return a.size }
func (a *recordingAdapter) ScrollOffset() vec.Vec2      { return a.offset }
func (a *recordingAdapter) ScrollTo(axis viewport.Axis, v float64) {
	a.calls = append(a.calls, axis.String())
	if axis == viewport.Horizontal {
		a.offset.X = v
	} else {
		a.offset.Y = v
	}
}

func newHarness() (*viewport.Controller, *scroll.Container, *fakeDispatcher) {
	dec := &fakeDecoder{sizes: map[string]image.Point{
		"wide.png":  {X: 2400, Y: 800},
		"small.png": {X: 100, Y: 50},
	}}
	disp := &fakeDispatcher{}
	sc := scroll.New(viewport.Size{W: 1200, H: 800})
	c := viewport.NewController(
		viewport.WithDecoder(dec),
		viewport.WithDispatcher(disp),
		viewport.WithScrollAdapter(sc),
	)
	return c, sc, disp
}

func TestNewControllerDefaults(t *testing.T) {
	c := viewport.NewController()
	if diff := cmp.Diff(viewport.DefaultState(), c.State()); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}
	if c.Image() == nil {
		t.Errorf("Image() returned nil")
	}
	// Without an adapter every event is still safe.
	c.Handle(viewport.ZoomEvent{Delta: 0.5})
	c.Handle(viewport.PanEvent{Delta: vec.Vec2{X: 3}})
}

func TestOpenFitsAndDispatches(t *testing.T) {
	c, sc, disp := newHarness()
	c.Handle(viewport.OpenEvent{Path: "wide.png"})

	want := viewport.State{
		Zoom:      0.5,
		MinZoom:   0.1,
		Center:    vec.Vec2{X: 600, Y: 200},
		AssetSize: viewport.Size{W: 2400, H: 800},
		AssetID:   "wide.png",
	}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"wide.png"}, disp.ids); diff != "" {
		t.Errorf("dispatch mismatch (-want +got):\n%s", diff)
	}
	if got := sc.ContentSize(); got != (viewport.Size{W: 1200, H: 400}) {
		t.Errorf("content size = %v", got)
	}
	if got := sc.ScrollOffset(); got != (vec.Vec2{X: 0, Y: -200}) {
		t.Errorf("offset = %v, want (0,-200)", got)
	}
}

func TestOpenDecodeFailure(t *testing.T) {
	c, _, disp := newHarness()
	c.Handle(viewport.OpenEvent{Path: "wide.png"})
	c.Handle(viewport.OpenEvent{Path: "missing.png"})

	s := c.State()
	if s.AssetID != "missing.png" || s.AssetSize != (viewport.Size{}) {
		t.Fatalf("state = %+v, want empty asset missing.png", s)
	}
	if s.Zoom != 1 || s.MinZoom != 0.2 {
		t.Errorf("zoom/min = %v/%v, want defaults", s.Zoom, s.MinZoom)
	}
	if b := c.Image().Bounds(); !b.Empty() {
		t.Errorf("image bounds = %v, want empty", b)
	}
	if len(disp.ids) != 2 {
		t.Errorf("dispatched %v, want both loads", disp.ids)
	}
}

func TestZoomAtCursorPushesOffset(t *testing.T) {
	c, sc, _ := newHarness()
	c.Handle(viewport.OpenEvent{Path: "wide.png"})
	c.Handle(viewport.CursorEvent{Pos: vec.Vec2{X: 600, Y: 400}})
	c.Handle(viewport.ZoomEvent{Delta: 0.5})

	s := c.State()
	if s.Zoom != 1 {
		t.Fatalf("zoom = %v, want 1", s.Zoom)
	}
	if s.Center != (vec.Vec2{X: 1200, Y: 400}) {
		t.Errorf("center = %v, want (1200,400)", s.Center)
	}
	if got := sc.ScrollOffset(); got != (vec.Vec2{X: 600, Y: 0}) {
		t.Errorf("offset = %v, want (600,0)", got)
	}
}

func TestZoomBelowFloorLeavesAdapter(t *testing.T) {
	dec := &fakeDecoder{sizes: map[string]image.Point{"wide.png": {X: 2400, Y: 800}}}
	a := &recordingAdapter{size: viewport.Size{W: 1200, H: 800}}
	c := viewport.NewController(viewport.WithDecoder(dec), viewport.WithScrollAdapter(a))
	c.Handle(viewport.OpenEvent{Path: "wide.png"})

	before := c.State()
	a.calls = nil
	c.Handle(viewport.ZoomEvent{Delta: -0.45})
	if len(a.calls) != 0 {
		t.Errorf("adapter was moved: %v", a.calls)
	}
	if diff := cmp.Diff(before, c.State()); diff != "" {
		t.Errorf("state changed (-want +got):\n%s", diff)
	}
}

func TestPanSyncsCenter(t *testing.T) {
	c, sc, _ := newHarness()
	c.Handle(viewport.OpenEvent{Path: "wide.png"})
	c.Handle(viewport.CursorEvent{Pos: vec.Vec2{X: 600, Y: 400}})
	c.Handle(viewport.ZoomEvent{Delta: 0.5})

	c.Handle(viewport.PanEvent{Delta: vec.Vec2{X: -100, Y: 30}})
	if got := sc.ScrollOffset(); got != (vec.Vec2{X: 500, Y: 0}) {
		t.Fatalf("offset = %v, want (500,0)", got)
	}
	if got := c.State().Center; got != (vec.Vec2{X: 1100, Y: 400}) {
		t.Errorf("center = %v, want (1100,400)", got)
	}

	c.Handle(viewport.WheelEvent{Delta: vec.Vec2{X: 0, Y: 2000}})
	if got := c.State().Center; got != (vec.Vec2{X: 1100, Y: 400}) {
		t.Errorf("vertical wheel moved a pinned axis: center %v", got)
	}
}

func TestWheelZoomScalesWithZoom(t *testing.T) {
	c, _, _ := newHarness()
	c.Handle(viewport.OpenEvent{Path: "wide.png"})
	c.Handle(viewport.WheelEvent{Delta: vec.Vec2{Y: -100}, Zoom: true})

	want := 0.6
	if got := c.State().Zoom; math.Abs(got-want) > 1e-12 {
		t.Errorf("zoom = %v, want %v", got, want)
	}
}

func TestLockedCenterSurvivesResize(t *testing.T) {
	c, _, _ := newHarness()
	c.Handle(viewport.OpenEvent{Path: "small.png"})
	c.Handle(viewport.CursorEvent{Pos: vec.Vec2{X: 10, Y: 10}})
	c.Handle(viewport.ZoomEvent{Delta: -4})
	c.Handle(viewport.ResizeEvent{Size: viewport.Size{W: 1600, H: 900}})

	s := c.State()
	if !s.Fits(viewport.Size{W: 1600, H: 900}) {
		t.Fatalf("precondition: image should fit")
	}
	if s.Center != s.ImageCenter() {
		t.Errorf("center = %v, want image center %v", s.Center, s.ImageCenter())
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	c, _, _ := newHarness()
	c.Handle(viewport.OpenEvent{Path: "wide.png"})
	c.Handle(viewport.ZoomEvent{Delta: 1})
	once := c.State()
	c.Sync()
	c.Sync()
	if diff := cmp.Diff(once, c.State()); diff != "" {
		t.Errorf("repeated sync changed state (-want +got):\n%s", diff)
	}
}

func TestRefitRestoresFitWithoutDecoding(t *testing.T) {
	dec := &fakeDecoder{sizes: map[string]image.Point{"wide.png": {X: 2400, Y: 800}}}
	sc := scroll.New(viewport.Size{W: 1200, H: 800})
	c := viewport.NewController(viewport.WithDecoder(dec), viewport.WithScrollAdapter(sc))
	c.Handle(viewport.OpenEvent{Path: "wide.png"})
	fitted := c.State()
	c.Handle(viewport.ZoomEvent{Delta: 1})
	c.Handle(viewport.PanEvent{Delta: vec.Vec2{X: 300}})
	c.Handle(viewport.RefitEvent{})

	if diff := cmp.Diff(fitted, c.State()); diff != "" {
		t.Errorf("refit state mismatch (-want +got):\n%s", diff)
	}
	if len(dec.calls) != 1 {
		t.Errorf("decoder called %d times, want 1", len(dec.calls))
	}
}
