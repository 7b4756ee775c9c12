//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"
)

func resetInit(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	initErr = nil
	t.Cleanup(func() {
		initOnce = sync.Once{}
		initErr = nil
	})
}

func TestWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	resetInit(t)

	if err := WriteText("hello world"); !errors.Is(err, errNoDisplay) {
		t.Fatalf("WriteText: expected errNoDisplay, got %v", err)
	}
	if _, err := ReadImage(); !errors.Is(err, errNoDisplay) {
		t.Fatalf("ReadImage: expected errNoDisplay, got %v", err)
	}
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	img, err := decodeImage(buf.Bytes())
	if err != nil {
		t.Fatalf("decodeImage: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if _, err := decodeImage(nil); !errors.Is(err, errNoImage) {
		t.Errorf("expected errNoImage, got %v", err)
	}
	if _, err := decodeImage([]byte("not a png")); err == nil {
		t.Errorf("expected decode error")
	}
}

func TestTrimText(t *testing.T) {
	got, err := trimText([]byte("copied\x00"))
	if err != nil || got != "copied" {
		t.Errorf("trimText = %q, %v", got, err)
	}
	if _, err := trimText([]byte{0}); !errors.Is(err, errNoText) {
		t.Errorf("expected errNoText, got %v", err)
	}
}
