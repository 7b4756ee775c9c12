//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

type x11Backend struct{}

func newBackend() platformBackend {
	return x11Backend{}
}

func connect() (*xgb.Conn, *xproto.SetupInfo, *xproto.ScreenInfo, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect X server: %w", err)
	}
	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, nil, nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, nil, nil, fmt.Errorf("xproto screen unavailable")
	}
	return conn, setup, screen, nil
}

func (x11Backend) Root() (*image.RGBA, error) {
	conn, setup, screen, err := connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return grabDrawable(conn, setup, xproto.Drawable(screen.Root), "root window")
}

func (x11Backend) Window(id uint32) (*image.RGBA, error) {
	conn, setup, _, err := connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return grabDrawable(conn, setup, xproto.Drawable(id), "window")
}

func (x11Backend) Portal() (*image.RGBA, error) {
	return portalScreenshot()
}

func grabDrawable(conn *xgb.Conn, setup *xproto.SetupInfo, d xproto.Drawable, kind string) (*image.RGBA, error) {
	geom, err := xproto.GetGeometry(conn, d).Reply()
	if err != nil {
		return nil, fmt.Errorf("%s geometry: %w", kind, err)
	}
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, d, 0, 0, geom.Width, geom.Height, ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("%s pixels: %w", kind, err)
	}
	return zpixmapToRGBA(setup.PixmapFormats, reply, int(geom.Width), int(geom.Height), kind)
}

func (x11Backend) Monitors() ([]MonitorInfo, error) {
	conn, _, screen, err := connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, screen.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primary := randr.Output(0)
	if p, err := randr.GetOutputPrimary(conn, screen.Root).Reply(); err == nil {
		primary = p.Output
	}
	var monitors []MonitorInfo
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		x, y := int(crtc.X), int(crtc.Y)
		monitors = append(monitors, MonitorInfo{
			Index:   len(monitors),
			Name:    strings.TrimSpace(string(info.Name)),
			Rect:    image.Rect(x, y, x+int(crtc.Width), y+int(crtc.Height)),
			Primary: output == primary,
		})
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return monitors, nil
}

func (x11Backend) Windows() ([]WindowInfo, error) {
	conn, _, screen, err := connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	root := screen.Root
	ids, err := clientList(conn, root)
	if err != nil {
		return nil, err
	}
	active := activeWindow(conn, root)
	windows := make([]WindowInfo, 0, len(ids))
	// The stacking list is bottom-to-top.
	for i := len(ids) - 1; i >= 0; i-- {
		win := ids[i]
		rect, err := windowRect(conn, root, win)
		if err != nil {
			continue
		}
		title := readProperty(conn, win, "_NET_WM_NAME", "UTF8_STRING")
		if title == "" {
			title = readProperty(conn, win, "WM_NAME", "")
		}
		windows = append(windows, WindowInfo{
			ID:     uint32(win),
			Title:  title,
			Rect:   rect,
			Active: uint32(win) == active,
		})
	}
	return windows, nil
}

func clientList(conn *xgb.Conn, root xproto.Window) ([]xproto.Window, error) {
	var reply *xproto.GetPropertyReply
	for _, name := range []string{"_NET_CLIENT_LIST_STACKING", "_NET_CLIENT_LIST"} {
		atom, err := internAtom(conn, name)
		if err != nil {
			return nil, err
		}
		reply, err = xproto.GetProperty(conn, false, root, atom, xproto.AtomWindow, 0, 1<<16).Reply()
		if err == nil && reply.Format == 32 && reply.ValueLen > 0 {
			break
		}
		reply = nil
	}
	if reply == nil {
		return nil, fmt.Errorf("window manager does not publish a client list")
	}
	ids := make([]xproto.Window, 0, reply.ValueLen)
	for i := 0; i < int(reply.ValueLen); i++ {
		ids = append(ids, xproto.Window(xgb.Get32(reply.Value[i*4:])))
	}
	return ids, nil
}

func activeWindow(conn *xgb.Conn, root xproto.Window) uint32 {
	atom, err := internAtom(conn, "_NET_ACTIVE_WINDOW")
	if err != nil {
		return 0
	}
	reply, err := xproto.GetProperty(conn, false, root, atom, xproto.AtomWindow, 0, 1).Reply()
	if err != nil || reply.Format != 32 || reply.ValueLen == 0 {
		return 0
	}
	return xgb.Get32(reply.Value)
}

func windowRect(conn *xgb.Conn, root, win xproto.Window) (image.Rectangle, error) {
	geo, err := xproto.GetGeometry(conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	trans, err := xproto.TranslateCoordinates(conn, win, root, 0, 0).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	x, y := int(trans.DstX), int(trans.DstY)
	return image.Rect(x, y, x+int(geo.Width), y+int(geo.Height)), nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

// readProperty reads a text property; an empty typeName means STRING.
func readProperty(conn *xgb.Conn, win xproto.Window, name, typeName string) string {
	atom, err := internAtom(conn, name)
	if err != nil {
		return ""
	}
	typ := xproto.Atom(xproto.AtomString)
	if typeName != "" {
		if typ, err = internAtom(conn, typeName); err != nil {
			return ""
		}
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, typ, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}
