// Package viewport holds the view state of the image viewer and the
// transitions that fit, zoom and pan it.
package viewport

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

const (
	defaultZoom    = 1.0
	defaultMinZoom = 0.2

	// minZoomDivisor relates the fit zoom to the zoom floor.
	minZoomDivisor = 5.0
)

// Axis identifies one of the two scroll directions.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Size is a width and height in pixels.
type Size struct {
	W, H float64
}

// Half returns the half extent of s as a vector.
func (s Size) Half() vec.Vec2 {
	return vec.Vec2{X: s.W / 2, Y: s.H / 2}
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return !(s.W > 0) || !(s.H > 0)
}

// Valid reports whether both dimensions are positive and finite.
func (s Size) Valid() bool {
	return !s.Empty() && finite(s.W) && finite(s.H)
}

// Scale multiplies both dimensions by f.
func (s Size) Scale(f float64) Size {
	return Size{W: s.W * f, H: s.H * f}
}

// Fits reports whether s fits inside outer on both axes.
func (s Size) Fits(outer Size) bool {
	return s.W <= outer.W && s.H <= outer.H
}

// State is the authoritative description of the current view. It is a plain
// value; two states compare equal with == when nothing changed.
type State struct {
	// Zoom maps image pixels to viewport pixels.
	Zoom float64
	// MinZoom is the hard floor for Zoom, derived when an asset is fitted.
	MinZoom float64
	// Center is the point, in scaled image coordinates, shown at the
	// geometric center of the viewport.
	Center vec.Vec2
	// CursorPos is the last cursor position in viewport coordinates.
	CursorPos vec.Vec2
	// AssetSize is the pixel size of the loaded image.
	AssetSize Size
	// AssetID identifies the loaded image, usually its source path.
	AssetID string
}

// DefaultState returns the state of a view with nothing loaded.
func DefaultState() State {
	return State{
		Zoom:    defaultZoom,
		MinZoom: defaultMinZoom,
	}
}

// Same reports whether s shows the same asset at the same zoom and center as
// prev. Consumers repaint when it returns false.
func (s State) Same(prev State) bool {
	return s.AssetID == prev.AssetID && s.Zoom == prev.Zoom && s.Center == prev.Center
}

// ScaledSize returns the asset size multiplied by the current zoom.
func (s State) ScaledSize() Size {
	return s.AssetSize.Scale(s.Zoom)
}

// ImageCenter returns the geometric center of the scaled image.
func (s State) ImageCenter() vec.Vec2 {
	return s.ScaledSize().Half()
}

// Fits reports whether the scaled image fits entirely inside viewport, in
// which case the view is locked to the image center.
func (s State) Fits(viewport Size) bool {
	return s.ScaledSize().Fits(viewport)
}

// Origin returns the viewport position of the scaled image's top-left corner.
func (s State) Origin(viewport Size) vec.Vec2 {
	return viewport.Half().Sub(s.Center)
}

// ImagePoint maps a viewport position to unscaled image coordinates.
func (s State) ImagePoint(viewport Size, pos vec.Vec2) vec.Vec2 {
	return pos.Sub(s.Origin(viewport)).Mul(1 / s.Zoom)
}

// ViewPoint maps unscaled image coordinates to a viewport position.
func (s State) ViewPoint(viewport Size, p vec.Vec2) vec.Vec2 {
	return p.Mul(s.Zoom).Add(s.Origin(viewport))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v vec.Vec2) bool {
	return finite(v.X) && finite(v.Y)
}
