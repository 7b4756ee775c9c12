//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const (
	urgencyNormal   = byte(1)
	urgencyCritical = byte(2)
)

// Notify sends a desktop notification over the org.freedesktop.Notifications D-Bus interface.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, hints(opts), int32(opts.timeout().Milliseconds()))
	return call.Err
}

func hints(opts Options) map[string]dbus.Variant {
	urgency := urgencyNormal
	if opts.Urgent {
		urgency = urgencyCritical
	}
	return map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgency)}
}
