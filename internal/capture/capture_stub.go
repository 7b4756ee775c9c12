//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("live capture is not supported on this platform")

type unsupportedBackend struct{}

func newBackend() platformBackend { return unsupportedBackend{} }

func (unsupportedBackend) Monitors() ([]MonitorInfo, error)   { return nil, errUnsupported }
func (unsupportedBackend) Windows() ([]WindowInfo, error)     { return nil, errUnsupported }
func (unsupportedBackend) Root() (*image.RGBA, error)         { return nil, errUnsupported }
func (unsupportedBackend) Window(uint32) (*image.RGBA, error) { return nil, errUnsupported }
func (unsupportedBackend) Portal() (*image.RGBA, error)       { return nil, errUnsupported }
