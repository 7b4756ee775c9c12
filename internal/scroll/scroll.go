// Package scroll implements a two-axis scroll container that stores the
// pixel offset of the visible region of a larger content area.
package scroll

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/example/imagine/internal/viewport"
)

// Container keeps a scroll offset bounded by its content and viewport
// sizes. On an axis where the content fits, the offset is pinned to the
// value that centers the content.
//
// A Container is not safe for concurrent use.
type Container struct {
	offset   vec.Vec2
	viewport viewport.Size
	content  viewport.Size

	anim *panAnim
}

// New returns a Container with the given viewport size and no content.
func New(size viewport.Size) *Container {
	c := &Container{viewport: size}
	c.clamp()
	return c
}

// ViewportSize returns the size of the visible region.
func (c *Container) ViewportSize() viewport.Size { return c.viewport }

// ContentSize returns the size of the scrollable content.
func (c *Container) ContentSize() viewport.Size { return c.content }

// ScrollOffset returns the top-left corner of the visible region in content
// coordinates.
func (c *Container) ScrollOffset() vec.Vec2 { return c.offset }

// SetViewportSize changes the visible size and re-bounds the offset.
func (c *Container) SetViewportSize(size viewport.Size) {
	c.viewport = size
	c.clamp()
}

// SetContentSize changes the content size and re-bounds the offset.
func (c *Container) SetContentSize(size viewport.Size) {
	c.content = size
	c.clamp()
}

// ScrollTo moves one axis to value, bounded by the content.
func (c *Container) ScrollTo(axis viewport.Axis, value float64) {
	if math.IsNaN(value) {
		return
	}
	c.anim = nil
	switch axis {
	case viewport.Horizontal:
		c.offset.X = clampAxis(value, c.content.W, c.viewport.W)
	case viewport.Vertical:
		c.offset.Y = clampAxis(value, c.content.H, c.viewport.H)
	}
}

// ScrollBy moves the offset by delta, bounded by the content.
func (c *Container) ScrollBy(delta vec.Vec2) {
	c.anim = nil
	c.offset = c.offset.Add(delta)
	c.clamp()
}

// Bounds returns the smallest and largest offsets currently allowed.
func (c *Container) Bounds() (lo, hi vec.Vec2) {
	lo.X, hi.X = axisRange(c.content.W, c.viewport.W)
	lo.Y, hi.Y = axisRange(c.content.H, c.viewport.H)
	return lo, hi
}

func (c *Container) clamp() {
	c.offset.X = clampAxis(c.offset.X, c.content.W, c.viewport.W)
	c.offset.Y = clampAxis(c.offset.Y, c.content.H, c.viewport.H)
}

func axisRange(content, view float64) (lo, hi float64) {
	if content <= view {
		centered := (content - view) / 2
		return centered, centered
	}
	return 0, content - view
}

func clampAxis(v, content, view float64) float64 {
	lo, hi := axisRange(content, view)
	return math.Max(lo, math.Min(v, hi))
}
