// Package clipboard reads images and text from the system clipboard and
// publishes recognised text back to it.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // clipboard images are exchanged as PNG
	"os"
)

var (
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errNoImage   = errors.New("clipboard does not contain image data")
	errNoText    = errors.New("clipboard does not contain text data")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, errNoImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clipboard image: %w", err)
	}
	return img, nil
}

func trimText(data []byte) (string, error) {
	// Some applications include a trailing NUL in STRING responses.
	data = bytes.TrimRight(data, "\x00")
	if len(data) == 0 {
		return "", errNoText
	}
	return string(data), nil
}
