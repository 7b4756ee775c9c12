//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalMethod    = "org.freedesktop.portal.Screenshot.Screenshot"
	portalResponse  = "org.freedesktop.portal.Request.Response"
	portalTimeout   = 2 * time.Minute
	portalCancelled = uint32(1)
)

var portalHandleToken = func() string {
	return fmt.Sprintf("imagine%d", time.Now().UnixNano())
}

// portalScreenshot asks the desktop portal for a screenshot and loads the
// file it hands back. The portal may show its own dialog.
func portalScreenshot() (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer conn.Close()

	sigc := make(chan *dbus.Signal, 4)
	conn.Signal(sigc)
	defer conn.RemoveSignal(sigc)

	var handle dbus.ObjectPath
	obj := conn.Object(portalDest, portalPath)
	if err := obj.Call(portalMethod, 0, "", portalOptions()).Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", err)
	}
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	timeout := time.After(portalTimeout)
	for {
		select {
		case sig := <-sigc:
			if sig == nil || sig.Path != handle || sig.Name != portalResponse {
				continue
			}
			path, err := portalResult(sig.Body)
			if err != nil {
				return nil, err
			}
			return loadPortalFile(path)
		case <-timeout:
			return nil, fmt.Errorf("portal screenshot: no response after %v", portalTimeout)
		}
	}
}

func portalOptions() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"interactive":  dbus.MakeVariant(false),
		"modal":        dbus.MakeVariant(false),
	}
}

// portalResult extracts the file path from a Response signal body.
func portalResult(body []interface{}) (string, error) {
	if len(body) < 2 {
		return "", fmt.Errorf("portal screenshot: malformed response")
	}
	if code, ok := body[0].(uint32); ok && code != 0 {
		if code == portalCancelled {
			return "", errors.New("portal screenshot cancelled")
		}
		return "", fmt.Errorf("portal screenshot failed with code %d", code)
	}
	res, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", fmt.Errorf("portal screenshot: malformed results")
	}
	v, ok := res["uri"]
	if !ok {
		return "", fmt.Errorf("portal screenshot: response missing image uri")
	}
	uri, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("portal screenshot: uri is %T", v.Value())
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", fmt.Errorf("portal screenshot: unsupported uri %q", uri)
	}
	return u.Path, nil
}

func loadPortalFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		f.Close()
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("remove %s: %v", path, err)
		}
	}()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
