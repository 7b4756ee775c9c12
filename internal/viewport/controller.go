package viewport

import (
	"image"
	"log"

	"seehuhn.de/go/geom/vec"
)

const defaultWheelZoomFactor = 0.002

// Decoder turns an asset identifier into RGBA pixels.
type Decoder interface {
	Decode(id string) (*image.RGBA, error)
}

// Dispatcher starts background work for a freshly loaded asset. Dispatch
// must not block.
type Dispatcher interface {
	Dispatch(assetID string)
}

// ScrollAdapter is the scrollable container that stores the pixel offset of
// the visible region.
type ScrollAdapter interface {
	ViewportSize() Size
	ScrollOffset() vec.Vec2
	ScrollTo(axis Axis, value float64)
}

// ContentSizer is implemented by adapters that need the scaled image size to
// bound their offsets.
type ContentSizer interface {
	SetContentSize(size Size)
}

// Panner is implemented by adapters that can scroll by a relative amount.
type Panner interface {
	ScrollBy(delta vec.Vec2)
}

// Resizer is implemented by adapters whose viewport size is set from outside.
type Resizer interface {
	SetViewportSize(size Size)
}

// Controller applies the view transitions to a single State and keeps the
// scroll adapter in step with it. It is used from one goroutine.
type Controller struct {
	state   State
	image   *image.RGBA
	decoder Decoder
	ocr     Dispatcher
	scroll  ScrollAdapter

	wheelZoomFactor float64
}

// Option configures a Controller.
type Option func(*Controller)

// WithDecoder sets the image decoder used by FitToWindow.
func WithDecoder(d Decoder) Option { return func(c *Controller) { c.decoder = d } }

// WithDispatcher sets the background worker notified after each load.
func WithDispatcher(d Dispatcher) Option { return func(c *Controller) { c.ocr = d } }

// WithScrollAdapter sets the scroll container the controller pushes to.
func WithScrollAdapter(a ScrollAdapter) Option { return func(c *Controller) { c.scroll = a } }

// WithWheelZoomFactor sets how strongly a ctrl-wheel pixel changes the zoom,
// relative to the current zoom.
func WithWheelZoomFactor(f float64) Option {
	return func(c *Controller) {
		if f > 0 && finite(f) {
			c.wheelZoomFactor = f
		}
	}
}

// NewController creates a Controller holding the default state.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		state:           DefaultState(),
		image:           emptyImage(),
		wheelZoomFactor: defaultWheelZoomFactor,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns a copy of the current view state.
func (c *Controller) State() State { return c.state }

// Image returns the pixels of the loaded asset. It is never nil.
func (c *Controller) Image() *image.RGBA { return c.image }

// FitToWindow decodes path and fits it to viewport. A decode failure leaves
// the viewer usable with an empty image.
func (c *Controller) FitToWindow(path string, viewport Size) {
	if !viewport.Valid() {
		log.Printf("fit %s: invalid viewport %vx%v", path, viewport.W, viewport.H)
		return
	}
	img := emptyImage()
	if c.decoder != nil {
		decoded, err := c.decoder.Decode(path)
		if err != nil {
			log.Printf("fit %s: %v", path, err)
		} else if decoded != nil {
			img = decoded
		}
	}
	b := img.Bounds()
	next, push := Fit(c.state, path, Size{W: float64(b.Dx()), H: float64(b.Dy())}, viewport)
	c.state = next
	c.image = img
	c.apply(push)
	if c.ocr != nil && path != "" {
		c.ocr.Dispatch(path)
	}
}

// Refit fits the loaded asset to viewport again without decoding it.
func (c *Controller) Refit(viewport Size) {
	next, push := Fit(c.state, c.state.AssetID, c.state.AssetSize, viewport)
	if !push.OK {
		return
	}
	c.state = next
	c.apply(push)
}

// ZoomBy changes the zoom by delta, anchored at the last cursor position.
// Calls that would go below the zoom floor are ignored.
func (c *Controller) ZoomBy(delta float64, viewport Size) {
	next, push := Zoom(c.state, delta, viewport)
	if !push.OK {
		return
	}
	c.state = next
	c.apply(push)
}

// SetCursorPosition records the cursor position used to anchor zooming.
func (c *Controller) SetCursorPosition(pos vec.Vec2) {
	c.state = SetCursor(c.state, pos)
}

// SyncCenterFromScrollOffset makes the scroll offset the source of the
// view center.
func (c *Controller) SyncCenterFromScrollOffset(offset vec.Vec2, viewport Size) {
	c.state = SyncFromScroll(c.state, offset, viewport)
}

// Sync reconciles the center with the scroll adapter's current offset.
func (c *Controller) Sync() {
	if c.scroll == nil {
		return
	}
	c.SyncCenterFromScrollOffset(c.scroll.ScrollOffset(), c.scroll.ViewportSize())
}

func (c *Controller) apply(push Push) {
	if c.scroll == nil || !push.OK {
		return
	}
	if cs, ok := c.scroll.(ContentSizer); ok {
		cs.SetContentSize(c.state.ScaledSize())
	}
	c.scroll.ScrollTo(Horizontal, push.Offset.X)
	c.scroll.ScrollTo(Vertical, push.Offset.Y)
}

func emptyImage() *image.RGBA {
	return image.NewRGBA(image.Rectangle{})
}
