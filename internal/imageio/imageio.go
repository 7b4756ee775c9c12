// Package imageio resolves asset identifiers to RGBA pixels. An identifier
// is a file path, "clipboard:" or a live capture source understood by
// package capture.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/example/imagine/internal/capture"
	"github.com/example/imagine/internal/clipboard"
)

// ClipboardID is the identifier of the image held by the system clipboard.
const ClipboardID = "clipboard:"

var extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// ErrEmptyID is returned when no identifier was given.
var ErrEmptyID = errors.New("empty asset identifier")

// Seams replaced in tests.
var (
	readClipboardFn = clipboard.ReadImage
	grabFn          = capture.Grab
)

// Image is a decoded asset.
type Image struct {
	RGBA   *image.RGBA
	Width  int
	Height int
	// Format is the registered decoder name ("png", "jpeg", ...) or the
	// source kind for live images.
	Format string
	Meta   Metadata
}

// DecodeError reports a failure to turn an identifier into pixels.
type DecodeError struct {
	ID  string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.ID, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// Extensions returns the file extensions that can be decoded, lower case
// with the leading dot.
func Extensions() []string {
	return append([]string(nil), extensions...)
}

// Supported reports whether path has a decodable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// IsFile reports whether id names a file rather than a clipboard or live
// source.
func IsFile(id string) bool {
	return id != "" && id != ClipboardID && !capture.IsSource(id)
}

// Decoder loads assets. The zero value is ready to use.
type Decoder struct {
	// IgnoreOrientation leaves EXIF-rotated photos as stored.
	IgnoreOrientation bool
}

// Decode returns the pixels of id.
func (d Decoder) Decode(id string) (*image.RGBA, error) {
	img, err := d.Load(id)
	if err != nil {
		return nil, err
	}
	return img.RGBA, nil
}

// Load decodes id along with its format and metadata. Errors are
// *DecodeError.
func (d Decoder) Load(id string) (*Image, error) {
	img, err := d.load(id)
	if err != nil {
		return nil, &DecodeError{ID: id, Err: err}
	}
	b := img.RGBA.Bounds()
	img.Width, img.Height = b.Dx(), b.Dy()
	return img, nil
}

func (d Decoder) load(id string) (*Image, error) {
	switch {
	case id == "":
		return nil, ErrEmptyID
	case id == ClipboardID:
		src, err := readClipboardFn()
		if err != nil {
			return nil, err
		}
		return &Image{RGBA: toRGBA(src), Format: "clipboard"}, nil
	case capture.IsSource(id):
		src, err := capture.ParseSource(id)
		if err != nil {
			return nil, err
		}
		rgba, err := grabFn(src)
		if err != nil {
			return nil, err
		}
		return &Image{RGBA: rgba, Format: "capture"}, nil
	}
	return d.loadFile(id)
}

func (d Decoder) loadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	meta := readMetadata(path)
	rgba := toRGBA(src)
	if !d.IgnoreOrientation {
		rgba = orient(rgba, meta.Orientation)
	}
	return &Image{RGBA: rgba, Format: format, Meta: meta}, nil
}

// toRGBA converts src to a zero-origin RGBA image.
func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
