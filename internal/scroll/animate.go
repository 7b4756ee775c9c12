package scroll

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"seehuhn.de/go/geom/vec"
)

// panAnim holds the tweens of an animated pan.
type panAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	target vec.Vec2
	doneX  bool
	doneY  bool
}

// AnimateBy starts a smooth pan by delta over duration seconds. The target
// is bounded when the animation starts. A non-positive duration scrolls
// immediately.
func (c *Container) AnimateBy(delta vec.Vec2, duration float32) {
	if duration <= 0 {
		c.ScrollBy(delta)
		return
	}
	from := c.offset
	if c.anim != nil {
		// Chain onto the pending target so repeated key presses accumulate.
		from = c.anim.target
	}
	to := from.Add(delta)
	to.X = clampAxis(to.X, c.content.W, c.viewport.W)
	to.Y = clampAxis(to.Y, c.content.H, c.viewport.H)
	c.anim = &panAnim{
		tweenX: gween.New(float32(c.offset.X), float32(to.X), duration, ease.OutCubic),
		tweenY: gween.New(float32(c.offset.Y), float32(to.Y), duration, ease.OutCubic),
		target: to,
	}
}

// Animating reports whether a pan animation is in progress.
func (c *Container) Animating() bool { return c.anim != nil }

// Step advances the pan animation by dt seconds and reports whether it is
// still running.
func (c *Container) Step(dt float32) bool {
	a := c.anim
	if a == nil {
		return false
	}
	if !a.doneX {
		val, done := a.tweenX.Update(dt)
		c.offset.X = float64(val)
		a.doneX = done
	}
	if !a.doneY {
		val, done := a.tweenY.Update(dt)
		c.offset.Y = float64(val)
		a.doneY = done
	}
	if a.doneX && a.doneY {
		c.offset = a.target
		c.anim = nil
	}
	c.clamp()
	return c.anim != nil
}
