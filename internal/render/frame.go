// Package render composes viewer frames from the view state.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"

	"github.com/example/imagine/internal/ocr"
	"github.com/example/imagine/internal/theme"
	"github.com/example/imagine/internal/viewport"
)

const (
	// StatusHeight is the height of the status bar below the image area.
	StatusHeight = 20

	checkerSize = 8
	textPadding = 6
)

var statusFace font.Face = basicfont.Face7x13

// Frame is everything needed to draw one frame.
type Frame struct {
	State viewport.State
	Image *image.RGBA
	Theme *theme.Theme

	Boxes []ocr.Box
	// Hover is the index of the highlighted box, or -1.
	Hover int

	// Message is appended to the status line.
	Message string
}

// Viewport returns the size of the image area inside a window of the given
// size.
func Viewport(window image.Point) viewport.Size {
	return viewport.Size{W: float64(max(window.X, 0)), H: float64(max(window.Y-StatusHeight, 0))}
}

// StatusLine summarises s for the status bar.
func StatusLine(s viewport.State) string {
	if s.AssetID == "" {
		return fmt.Sprintf("no image  %.0f%%", s.Zoom*100)
	}
	return fmt.Sprintf("%s  %dx%d  %.0f%%", s.AssetID, int(s.AssetSize.W), int(s.AssetSize.H), s.Zoom*100)
}

// Draw renders f into dst. It returns the context error when ctx is
// cancelled part way, leaving dst partially drawn.
func Draw(ctx context.Context, dst *image.RGBA, f Frame) error {
	th := f.Theme
	if th == nil {
		th = theme.Default()
	}
	b := dst.Bounds()
	view := Viewport(b.Size())
	area := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+int(view.H))
	canvas := dst.SubImage(area).(*image.RGBA)

	draw.Draw(canvas, area, image.NewUniform(th.Background), image.Point{}, draw.Src)
	if err := ctx.Err(); err != nil {
		return err
	}

	if f.Image != nil && !f.Image.Bounds().Empty() && f.State.Zoom > 0 {
		drawImage(canvas, f.Image, f.State, view, th)
	} else if f.State.AssetID != "" {
		drawCentered(canvas, "cannot display "+f.State.AssetID, th.Foreground)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, box := range f.Boxes {
		col, thick := th.OCRBox, 1
		if i == f.Hover {
			col, thick = th.OCRBoxHover, 2
		}
		strokeRect(canvas, boxRect(box, f.State, view).Add(area.Min), col, thick)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	status := StatusLine(f.State)
	if f.Message != "" {
		status += "  " + f.Message
	}
	drawStatus(dst, image.Rect(b.Min.X, area.Max.Y, b.Max.X, b.Max.Y), status, th)
	return nil
}

// ImageRect returns the viewport rectangle covered by the scaled image.
func ImageRect(s viewport.State, view viewport.Size) image.Rectangle {
	o := s.Origin(view)
	sz := s.ScaledSize()
	return image.Rect(
		int(math.Floor(o.X)), int(math.Floor(o.Y)),
		int(math.Ceil(o.X+sz.W)), int(math.Ceil(o.Y+sz.H)),
	)
}

func drawImage(canvas, img *image.RGBA, s viewport.State, view viewport.Size, th *theme.Theme) {
	area := canvas.Bounds()
	target := ImageRect(s, view).Add(area.Min).Intersect(area)
	drawCheckerboard(canvas, target, checkerSize, th.CheckerLight, th.CheckerDark)

	ib := img.Bounds()
	o := s.Origin(view)
	z := s.Zoom
	m := f64.Aff3{
		z, 0, o.X + float64(area.Min.X) - z*float64(ib.Min.X),
		0, z, o.Y + float64(area.Min.Y) - z*float64(ib.Min.Y),
	}
	var interp xdraw.Interpolator = xdraw.ApproxBiLinear
	if z >= 1 {
		interp = xdraw.NearestNeighbor
	}
	interp.Transform(canvas, m, img, ib, xdraw.Over, nil)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.SetRGBA(x, y, light)
			} else {
				dst.SetRGBA(x, y, dark)
			}
		}
	}
}

func boxRect(box ocr.Box, s viewport.State, view viewport.Size) image.Rectangle {
	r := box.Bounds()
	p0 := s.ViewPoint(view, vec.Vec2{X: r.LLx, Y: r.LLy})
	p1 := s.ViewPoint(view, vec.Vec2{X: r.URx, Y: r.URy})
	return image.Rect(
		int(math.Floor(p0.X)), int(math.Floor(p0.Y)),
		int(math.Ceil(p1.X)), int(math.Ceil(p1.Y)),
	)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.RGBA, thick int) {
	if r.Empty() {
		return
	}
	src := image.NewUniform(col)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
		image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+thick, r.Min.X+thick, r.Max.Y-thick),
		image.Rect(r.Max.X-thick, r.Min.Y+thick, r.Max.X, r.Max.Y-thick),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Over)
	}
}

func drawStatus(dst *image.RGBA, bar image.Rectangle, text string, th *theme.Theme) {
	draw.Draw(dst, bar, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	m := statusFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	d := &font.Drawer{Dst: dst.SubImage(bar).(*image.RGBA), Src: image.NewUniform(th.StatusText), Face: statusFace}
	d.Dot = fixed.P(bar.Min.X+textPadding, bar.Min.Y+(bar.Dy()-ascent-descent)/2+ascent)
	d.DrawString(text)
}

func drawCentered(dst *image.RGBA, text string, col color.RGBA) {
	b := dst.Bounds()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: statusFace}
	w := d.MeasureString(text).Ceil()
	ascent := statusFace.Metrics().Ascent.Ceil()
	d.Dot = fixed.P(b.Min.X+(b.Dx()-w)/2, b.Min.Y+(b.Dy()+ascent)/2)
	d.DrawString(text)
}
