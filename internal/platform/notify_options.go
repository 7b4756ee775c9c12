// Package platform delivers desktop notifications through the host's
// notification service.
package platform

import "time"

// AppName identifies the sender to the notification service.
const AppName = "Imagine"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Urgent marks failures so the notification center can keep them visible.
	Urgent bool
	// Timeout is how long the notification stays up; zero uses DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}
