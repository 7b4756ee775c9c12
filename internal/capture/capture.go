// Package capture grabs live pixels from the display server so they can be
// opened like any image file.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"
)

// Identifier prefixes recognised by ParseSource.
const (
	X11Prefix    = "x11:"
	PortalPrefix = "portal:"
)

// Kind selects what a Source captures.
type Kind int

const (
	Root Kind = iota
	Window
	Monitor
	Portal
)

// Source describes one live capture target.
type Source struct {
	Kind    Kind
	Window  uint32
	Monitor int
}

// String returns the identifier that ParseSource turns back into s.
func (s Source) String() string {
	switch s.Kind {
	case Window:
		return fmt.Sprintf("%swindow:0x%x", X11Prefix, s.Window)
	case Monitor:
		return fmt.Sprintf("%smonitor:%d", X11Prefix, s.Monitor)
	case Portal:
		return PortalPrefix
	default:
		return X11Prefix + "root"
	}
}

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// WindowInfo describes a top-level window available for capture.
type WindowInfo struct {
	ID     uint32
	Title  string
	Rect   image.Rectangle
	Active bool
}

type platformBackend interface {
	Monitors() ([]MonitorInfo, error)
	Windows() ([]WindowInfo, error)
	Root() (*image.RGBA, error)
	Window(id uint32) (*image.RGBA, error)
	Portal() (*image.RGBA, error)
}

var backend = newBackend()

var (
	// ErrUnknownSource is returned for identifiers this package cannot parse.
	ErrUnknownSource = errors.New("unknown capture source")
	errNoMonitors    = errors.New("no monitors available")
)

// IsSource reports whether id names a live capture target rather than a file.
func IsSource(id string) bool {
	return strings.HasPrefix(id, X11Prefix) || strings.HasPrefix(id, PortalPrefix)
}

// ParseSource parses identifiers such as "x11:root", "x11:window:0x3a00007",
// "x11:monitor:1" and "portal:".
func ParseSource(id string) (Source, error) {
	if strings.HasPrefix(id, PortalPrefix) {
		return Source{Kind: Portal}, nil
	}
	rest, ok := strings.CutPrefix(id, X11Prefix)
	if !ok {
		return Source{}, fmt.Errorf("%w: %q", ErrUnknownSource, id)
	}
	kind, arg, _ := strings.Cut(rest, ":")
	switch kind {
	case "root", "":
		return Source{Kind: Root}, nil
	case "window":
		wid, err := parseWindowID(arg)
		if err != nil {
			return Source{}, err
		}
		return Source{Kind: Window, Window: wid}, nil
	case "monitor":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < 0 {
			return Source{}, fmt.Errorf("invalid monitor index %q", arg)
		}
		return Source{Kind: Monitor, Monitor: n}, nil
	}
	return Source{}, fmt.Errorf("%w: %q", ErrUnknownSource, id)
}

// Grab captures the pixels of src.
func Grab(src Source) (*image.RGBA, error) {
	switch src.Kind {
	case Root:
		return backend.Root()
	case Window:
		img, err := backend.Window(src.Window)
		if err != nil {
			return nil, fmt.Errorf("capture window 0x%x: %w", src.Window, err)
		}
		return img, nil
	case Monitor:
		return grabMonitor(src.Monitor)
	case Portal:
		return backend.Portal()
	}
	return nil, fmt.Errorf("%w: kind %d", ErrUnknownSource, src.Kind)
}

// Monitors lists the connected monitors.
func Monitors() ([]MonitorInfo, error) { return backend.Monitors() }

// Windows lists the top-level windows, topmost first.
func Windows() ([]WindowInfo, error) { return backend.Windows() }

func grabMonitor(index int) (*image.RGBA, error) {
	monitors, err := backend.Monitors()
	if err != nil {
		return nil, fmt.Errorf("capture monitor %d: %w", index, err)
	}
	for _, m := range monitors {
		if m.Index != index {
			continue
		}
		root, err := backend.Root()
		if err != nil {
			return nil, fmt.Errorf("capture monitor %d: %w", index, err)
		}
		return cropToRect(root, m.Rect)
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return nil, fmt.Errorf("monitor %d not found (have %d)", index, len(monitors))
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}

func parseWindowID(val string) (uint32, error) {
	v := strings.TrimSpace(val)
	base := 10
	if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
		v, base = v[2:], 16
	}
	parsed, err := strconv.ParseUint(v, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q", val)
	}
	return uint32(parsed), nil
}
