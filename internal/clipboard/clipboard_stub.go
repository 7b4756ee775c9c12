//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard access is not supported on this platform")

func ReadImage() (image.Image, error) { return nil, errUnsupported }

func ReadText() (string, error) { return "", errUnsupported }

func WriteText(string) error { return errUnsupported }
