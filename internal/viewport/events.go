package viewport

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// Event is an already-decoded input primitive.
type Event interface {
	fmt.Stringer
	event()
}

// OpenEvent asks for a new asset to be loaded and fitted.
type OpenEvent struct{ Path string }

// RefitEvent fits the loaded asset to the viewport again.
type RefitEvent struct{}

// ZoomEvent carries a zoom increment from a gesture or key press.
type ZoomEvent struct{ Delta float64 }

// WheelEvent carries a wheel movement in pixels. With Zoom set it is treated
// as a ctrl-modified wheel and zooms instead of scrolling.
type WheelEvent struct {
	Delta vec.Vec2
	Zoom  bool
}

// CursorEvent reports a pointer move in viewport coordinates.
type CursorEvent struct{ Pos vec.Vec2 }

// ResizeEvent reports a new viewport size.
type ResizeEvent struct{ Size Size }

// PanEvent moves the view by a pixel delta, as a drag or key press does.
type PanEvent struct{ Delta vec.Vec2 }

func (OpenEvent) event()   {}
func (RefitEvent) event()  {}
func (ZoomEvent) event()   {}
func (WheelEvent) event()  {}
func (CursorEvent) event() {}
func (ResizeEvent) event() {}
func (PanEvent) event()    {}

func (e OpenEvent) String() string  { return fmt.Sprintf("open %q", e.Path) }
func (RefitEvent) String() string   { return "refit" }
func (e ZoomEvent) String() string  { return fmt.Sprintf("zoom %+g", e.Delta) }
func (e WheelEvent) String() string { return fmt.Sprintf("wheel (%g,%g) zoom=%v", e.Delta.X, e.Delta.Y, e.Zoom) }
func (e CursorEvent) String() string {
	return fmt.Sprintf("cursor (%g,%g)", e.Pos.X, e.Pos.Y)
}
func (e ResizeEvent) String() string { return fmt.Sprintf("resize %gx%g", e.Size.W, e.Size.H) }
func (e PanEvent) String() string    { return fmt.Sprintf("pan (%g,%g)", e.Delta.X, e.Delta.Y) }

// Handle applies one input event and then reconciles the center with the
// scroll adapter, which may have moved on its own.
func (c *Controller) Handle(ev Event) {
	viewport := c.viewport()
	switch ev := ev.(type) {
	case OpenEvent:
		c.FitToWindow(ev.Path, viewport)
	case RefitEvent:
		c.Refit(viewport)
	case ZoomEvent:
		c.ZoomBy(ev.Delta, viewport)
	case WheelEvent:
		if ev.Zoom {
			c.ZoomBy(-ev.Delta.Y*c.wheelZoomFactor*c.state.Zoom, viewport)
		} else {
			c.pan(ev.Delta)
		}
	case CursorEvent:
		c.SetCursorPosition(ev.Pos)
	case ResizeEvent:
		if r, ok := c.scroll.(Resizer); ok {
			r.SetViewportSize(ev.Size)
		}
	case PanEvent:
		c.pan(ev.Delta)
	}
	c.Sync()
}

func (c *Controller) pan(delta vec.Vec2) {
	if p, ok := c.scroll.(Panner); ok && finiteVec(delta) {
		p.ScrollBy(delta)
	}
}

func (c *Controller) viewport() Size {
	if c.scroll == nil {
		return Size{}
	}
	return c.scroll.ViewportSize()
}
