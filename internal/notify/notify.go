// Package notify turns viewer events into desktop notifications.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/imagine/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventOpen emits a notification when an image has been loaded.
	EventOpen Event = "open"
	// EventDecodeError emits a notification when an image cannot be decoded.
	EventDecodeError Event = "decode_error"
	// EventOCR emits a notification when text recognition finishes.
	EventOCR Event = "ocr"
)

// previewSize bounds the longer side of the icon attached to open
// notifications.
const previewSize = 128

// Seam replaced in tests.
var sendFn = platform.Notify

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Events: map[Event]EventPreference{
			EventOpen:        {Template: "Opened %s"},
			EventDecodeError: {Template: "Could not open %s"},
			EventOCR:         {Template: "Recognised %s"},
		},
	}
}

// LoadPreferences reads configuration from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("IMAGINE_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	apply("IMAGINE_NOTIFY_OPEN_TEXT", EventOpen)
	apply("IMAGINE_NOTIFY_DECODE_ERROR_TEXT", EventDecodeError)
	apply("IMAGINE_NOTIFY_OCR_TEXT", EventOCR)
	return prefs
}

// Notifier sends OS-level notifications based on the configured preferences.
// A nil Notifier sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Opened announces a loaded image, attaching a small preview when img is
// not empty.
func (n *Notifier) Opened(assetID string, img image.Image) {
	if !n.enabledFor(EventOpen) {
		return
	}
	opts := platform.Options{}
	if img != nil && !img.Bounds().Empty() {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventOpen, assetID, opts)
}

// DecodeFailed announces an image that could not be loaded.
func (n *Notifier) DecodeFailed(assetID string) {
	n.dispatch(EventDecodeError, assetID, platform.Options{Urgent: true})
}

// Recognised announces finished text recognition.
func (n *Notifier) Recognised(assetID string, boxes int) {
	detail := fmt.Sprintf("%d text boxes in %s", boxes, assetID)
	if boxes == 1 {
		detail = fmt.Sprintf("1 text box in %s", assetID)
	}
	n.dispatch(EventOCR, detail, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := sendFn(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// createPreview writes a thumbnail of img to a temporary PNG.
func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "imagine-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, thumbnail(img, previewSize)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}

func thumbnail(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}
	if w >= h {
		w, h = limit, max(1, h*limit/w)
	} else {
		w, h = max(1, w*limit/h), limit
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
