package imageio

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/imagine/internal/capture"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "asset.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPNG(t *testing.T) {
	path := writePNG(t, 40, 30)
	img, err := Decoder{}.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Width != 40 || img.Height != 30 || img.Format != "png" {
		t.Errorf("got %dx%d %s", img.Width, img.Height, img.Format)
	}
	if img.Meta.Orientation != 1 {
		t.Errorf("orientation = %d, want 1", img.Meta.Orientation)
	}
	if got := img.RGBA.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	junk := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"", filepath.Join(t.TempDir(), "missing.png"), junk} {
		_, err := Decoder{}.Decode(id)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("Decode(%q) error %v is not a DecodeError", id, err)
			continue
		}
		if de.ID != id {
			t.Errorf("DecodeError.ID = %q, want %q", de.ID, id)
		}
	}
	if _, err := (Decoder{}).Decode(""); !errors.Is(err, ErrEmptyID) {
		t.Errorf("expected ErrEmptyID, got %v", err)
	}
}

func TestClipboardSource(t *testing.T) {
	orig := readClipboardFn
	t.Cleanup(func() { readClipboardFn = orig })

	readClipboardFn = func() (image.Image, error) {
		return image.NewGray(image.Rect(5, 5, 15, 10)), nil
	}
	img, err := Decoder{}.Load(ClipboardID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.RGBA.Bounds() != image.Rect(0, 0, 10, 5) || img.Format != "clipboard" {
		t.Errorf("got %v %s", img.RGBA.Bounds(), img.Format)
	}

	boom := errors.New("empty clipboard")
	readClipboardFn = func() (image.Image, error) { return nil, boom }
	if _, err := (Decoder{}).Decode(ClipboardID); !errors.Is(err, boom) {
		t.Errorf("expected wrapped clipboard error, got %v", err)
	}
}

func TestCaptureSource(t *testing.T) {
	orig := grabFn
	t.Cleanup(func() { grabFn = orig })

	var got capture.Source
	grabFn = func(src capture.Source) (*image.RGBA, error) {
		got = src
		return image.NewRGBA(image.Rect(0, 0, 8, 6)), nil
	}
	img, err := Decoder{}.Load("x11:window:0x10")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(capture.Source{Kind: capture.Window, Window: 0x10}, got); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
	if img.Width != 8 || img.Height != 6 {
		t.Errorf("size = %dx%d", img.Width, img.Height)
	}
	if _, err := (Decoder{}).Decode("x11:nonsense"); !errors.Is(err, capture.ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
}

func TestSupported(t *testing.T) {
	for _, p := range []string{"a.png", "b.JPG", "c.jpeg", "d.gif", "e.bmp", "f.tiff", "g.TIF", "h.webp"} {
		if !Supported(p) {
			t.Errorf("Supported(%q) = false", p)
		}
	}
	for _, p := range []string{"a.txt", "b", "c.png.bak"} {
		if Supported(p) {
			t.Errorf("Supported(%q) = true", p)
		}
	}
	exts := Extensions()
	exts[0] = "mutated"
	if Extensions()[0] == "mutated" {
		t.Errorf("Extensions returned shared slice")
	}
}

func TestIsFile(t *testing.T) {
	tests := map[string]bool{
		"photo.jpg":    true,
		"/tmp/a b.png": true,
		"":             false,
		"clipboard:":   false,
		"x11:root":     false,
		"portal:":      false,
	}
	for id, want := range tests {
		if got := IsFile(id); got != want {
			t.Errorf("IsFile(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestOrient(t *testing.T) {
	// 3x2 source with distinct red values per pixel:
	//   0 1 2
	//   3 4 5
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetRGBA(x, y, color.RGBA{R: uint8(y*3 + x), A: 255})
		}
	}
	rows := func(img *image.RGBA) [][]uint8 {
		b := img.Bounds()
		out := make([][]uint8, b.Dy())
		for y := range out {
			for x := 0; x < b.Dx(); x++ {
				out[y] = append(out[y], img.RGBAAt(x, y).R)
			}
		}
		return out
	}
	tests := []struct {
		orientation int
		want        [][]uint8
	}{
		{1, [][]uint8{{0, 1, 2}, {3, 4, 5}}},
		{2, [][]uint8{{2, 1, 0}, {5, 4, 3}}},
		{3, [][]uint8{{5, 4, 3}, {2, 1, 0}}},
		{4, [][]uint8{{3, 4, 5}, {0, 1, 2}}},
		{5, [][]uint8{{0, 3}, {1, 4}, {2, 5}}},
		{6, [][]uint8{{3, 0}, {4, 1}, {5, 2}}},
		{7, [][]uint8{{5, 2}, {4, 1}, {3, 0}}},
		{8, [][]uint8{{2, 5}, {1, 4}, {0, 3}}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, rows(orient(src, tt.orientation))); diff != "" {
			t.Errorf("orientation %d mismatch (-want +got):\n%s", tt.orientation, diff)
		}
	}
}

func TestMetadataFields(t *testing.T) {
	m := Metadata{CameraModel: "X100", FNumber: "f/2.0", Orientation: 6}
	want := map[string]string{"Camera Model": "X100", "F-Number": "f/2.0", "Orientation": "6"}
	if diff := cmp.Diff(want, m.Fields()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if len((Metadata{Orientation: 1}).Fields()) != 0 {
		t.Errorf("empty metadata produced fields")
	}
}
