package viewport

import "seehuhn.de/go/geom/vec"

// Push is an instruction to move the scroll adapter. It is only meaningful
// when OK is set.
type Push struct {
	Offset vec.Vec2
	OK     bool
}

func pushFor(s State, viewport Size) Push {
	return Push{Offset: s.Center.Sub(viewport.Half()), OK: true}
}

// Fit loads an asset of the given size into the view, scaling it so it is
// fully visible and centered. Any previous zoom or pan is discarded. A
// zero-sized asset, the decode failure placeholder, gets the default zoom.
func Fit(s State, assetID string, asset Size, viewport Size) (State, Push) {
	if !viewport.Valid() {
		return s, Push{}
	}
	next := s
	next.AssetID = assetID
	next.AssetSize = asset
	if !asset.Valid() {
		next.AssetSize = Size{}
		next.Zoom = defaultZoom
		next.MinZoom = defaultZoom / minZoomDivisor
		next.Center = vec.Vec2{}
		return next, pushFor(next, viewport)
	}
	fit := min(viewport.W/asset.W, viewport.H/asset.H)
	next.Zoom = fit
	next.MinZoom = fit / minZoomDivisor
	next.Center = next.ImageCenter()
	return next, pushFor(next, viewport)
}

// Zoom changes the zoom by delta. The call is rejected, returning s and no
// push, when the result would fall below the zoom floor. When the rescaled
// image still overflows the viewport the image point under the cursor keeps
// its viewport position; otherwise the view snaps to the image center.
func Zoom(s State, delta float64, viewport Size) (State, Push) {
	if !finite(delta) || !viewport.Valid() {
		return s, Push{}
	}
	z0 := s.Zoom
	z1 := z0 + delta
	if z1 < s.MinZoom || !(z1 > 0) {
		return s, Push{}
	}
	next := s
	next.Zoom = z1
	if next.Fits(viewport) {
		next.Center = next.ImageCenter()
		return next, pushFor(next, viewport)
	}
	// p is the cursor's point in z0-scaled image space; after rescaling it
	// sits at p*z1/z0, so the center moves by the same amount.
	p := s.Center.Sub(viewport.Half()).Add(s.CursorPos)
	next.Center = s.Center.Add(p.Mul(z1/z0 - 1))
	return next, pushFor(next, viewport)
}

// SetCursor records the last cursor position in viewport coordinates.
func SetCursor(s State, pos vec.Vec2) State {
	if !finiteVec(pos) {
		return s
	}
	s.CursorPos = pos
	return s
}

// SyncFromScroll derives the center from the scroll adapter's offset.
func SyncFromScroll(s State, offset vec.Vec2, viewport Size) State {
	if !viewport.Valid() || !finiteVec(offset) {
		return s
	}
	s.Center = offset.Add(viewport.Half())
	return s
}
