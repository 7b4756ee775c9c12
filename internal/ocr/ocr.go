// Package ocr runs text recognition on a loaded image in a separate process
// and keeps the recognised boxes for display.
package ocr

import (
	"context"
	"errors"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrUnsupportedSource is returned for identifiers that do not name a file
// the recognizer can read.
var ErrUnsupportedSource = errors.New("ocr: source is not a file")

// Box is one recognised piece of text. Polygon is in unscaled image
// coordinates.
type Box struct {
	Polygon    []vec.Vec2
	Text       string
	Confidence float64
}

// Bounds returns the axis-aligned bounding box of the polygon. LLx/LLy hold
// the minimum corner and URx/URy the maximum, in image coordinates.
func (b Box) Bounds() rect.Rect {
	if len(b.Polygon) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, p := range b.Polygon {
		r.LLx = math.Min(r.LLx, p.X)
		r.LLy = math.Min(r.LLy, p.Y)
		r.URx = math.Max(r.URx, p.X)
		r.URy = math.Max(r.URy, p.Y)
	}
	return r
}

// Contains reports whether p lies inside the bounding box.
func (b Box) Contains(p vec.Vec2) bool {
	r := b.Bounds()
	return len(b.Polygon) > 0 && p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

// Result is delivered once per dispatched asset.
type Result struct {
	AssetID string
	Boxes   []Box
	Err     error
}

// Recognizer extracts text boxes from the image file at path.
type Recognizer interface {
	Recognize(ctx context.Context, path string) ([]Box, error)
}
