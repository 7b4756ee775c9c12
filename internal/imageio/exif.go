package imageio

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Metadata holds the EXIF fields the viewer shows. Files without EXIF data
// get the zero value with Orientation 1.
type Metadata struct {
	CameraMake   string
	CameraModel  string
	Taken        time.Time
	FNumber      string
	ExposureTime string
	// Orientation is the EXIF orientation tag, 1 through 8.
	Orientation int
}

// Fields returns the populated metadata as display label/value pairs.
func (m Metadata) Fields() map[string]string {
	out := make(map[string]string)
	if m.CameraMake != "" {
		out["Camera Make"] = m.CameraMake
	}
	if m.CameraModel != "" {
		out["Camera Model"] = m.CameraModel
	}
	if !m.Taken.IsZero() {
		out["Taken"] = m.Taken.Format(time.DateTime)
	}
	if m.FNumber != "" {
		out["F-Number"] = m.FNumber
	}
	if m.ExposureTime != "" {
		out["Exposure Time"] = m.ExposureTime
	}
	if m.Orientation > 1 {
		out["Orientation"] = fmt.Sprint(m.Orientation)
	}
	return out
}

// readMetadata extracts EXIF metadata; absence of EXIF is not an error.
func readMetadata(path string) Metadata {
	meta := Metadata{Orientation: 1}
	f, err := os.Open(path)
	if err != nil {
		return meta
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil || x == nil {
		return meta
	}
	if tag, err := x.Get(exif.Make); err == nil {
		meta.CameraMake, _ = tag.StringVal()
	}
	if tag, err := x.Get(exif.Model); err == nil {
		meta.CameraModel, _ = tag.StringVal()
	}
	if t, err := x.DateTime(); err == nil {
		meta.Taken = t
	}
	if tag, err := x.Get(exif.FNumber); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			meta.FNumber = fmt.Sprintf("f/%.1f", float64(num)/float64(den))
		}
	}
	if tag, err := x.Get(exif.ExposureTime); err == nil {
		if num, den, err := tag.Rat2(0); err == nil {
			meta.ExposureTime = fmt.Sprintf("%d/%d s", num, den)
		}
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if o, err := tag.Int(0); err == nil && o >= 1 && o <= 8 {
			meta.Orientation = o
		}
	}
	return meta
}

// orient returns src transformed so that an image stored with the given
// EXIF orientation displays upright.
func orient(src *image.RGBA, orientation int) *image.RGBA {
	if orientation <= 1 || orientation > 8 {
		return src
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dw, dh := w, h
	if orientation >= 5 {
		dw, dh = h, w
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			var dx, dy int
			switch orientation {
			case 2:
				dx, dy = w-1-sx, sy
			case 3:
				dx, dy = w-1-sx, h-1-sy
			case 4:
				dx, dy = sx, h-1-sy
			case 5:
				dx, dy = sy, sx
			case 6:
				dx, dy = h-1-sy, sx
			case 7:
				dx, dy = h-1-sy, w-1-sx
			case 8:
				dx, dy = sy, w-1-sx
			}
			s := src.PixOffset(sx+src.Rect.Min.X, sy+src.Rect.Min.Y)
			d := dst.PixOffset(dx, dy)
			copy(dst.Pix[d:d+4], src.Pix[s:s+4])
		}
	}
	return dst
}
