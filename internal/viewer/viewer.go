// Package viewer runs the image window: it turns window events into view
// changes and paints frames in the background.
package viewer

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/imagine/internal/config"
	"github.com/example/imagine/internal/imageio"
	"github.com/example/imagine/internal/notify"
	"github.com/example/imagine/internal/ocr"
	"github.com/example/imagine/internal/platform"
	"github.com/example/imagine/internal/render"
	"github.com/example/imagine/internal/theme"
	"github.com/example/imagine/internal/viewport"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// tickInterval is the delay between animation steps.
const tickInterval = 16 * time.Millisecond

type tickEvent struct{}

type paintJob struct {
	frame render.Frame
	size  image.Point
}

// Viewer holds the configuration of the image window.
type Viewer struct {
	asset      string
	windowName string
	view       config.View
	theme      *theme.Theme
	decoder    viewport.Decoder
	recognizer ocr.Recognizer
	notifier   *notify.Notifier

	onClose   func()
	closeOnce sync.Once
}

// Option modifies a Viewer during creation.
type Option func(*Viewer)

// WithAsset sets the asset opened when the window first appears.
func WithAsset(id string) Option { return func(v *Viewer) { v.asset = id } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(v *Viewer) { v.windowName = title } }

// WithView sets the interaction settings.
func WithView(view config.View) Option { return func(v *Viewer) { v.view = view } }

// WithTheme sets the colors used to draw the window.
func WithTheme(th *theme.Theme) Option {
	return func(v *Viewer) {
		if th != nil {
			v.theme = th
		}
	}
}

// WithDecoder replaces the image decoder.
func WithDecoder(d viewport.Decoder) Option {
	return func(v *Viewer) {
		if d != nil {
			v.decoder = d
		}
	}
}

// WithRecognizer enables text recognition for every opened file.
func WithRecognizer(r ocr.Recognizer) Option { return func(v *Viewer) { v.recognizer = r } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(v *Viewer) { v.notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(v *Viewer) { v.onClose = fn } }

// New creates a Viewer with the provided options.
func New(opts ...Option) *Viewer {
	v := &Viewer{
		view:    config.New().View,
		theme:   theme.Default(),
		decoder: imageio.Decoder{},
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

func (v *Viewer) notifyClose() {
	v.closeOnce.Do(func() {
		if v.onClose != nil {
			v.onClose()
		}
	})
}

func (v *Viewer) title() string {
	if v.windowName != "" {
		return v.windowName
	}
	if v.asset == "" {
		return platform.AppName
	}
	return platform.AppName + " - " + v.asset
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() { driver.Main(v.Main) }

// Main runs the event loop on s.
func (v *Viewer) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  v.view.Width,
		Height: v.view.Height + render.StatusHeight,
		Title:  v.title(),
	})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer v.notifyClose()

	snd := &sender{send: w.Send}
	defer snd.Stop()

	var disp viewport.Dispatcher
	if v.recognizer != nil {
		worker := ocr.NewWorker(v.recognizer, ocr.WithDeliver(func(r ocr.Result) { snd.Send(r) }))
		defer worker.Close()
		disp = worker
	}
	sess := newSession(v.decoder, disp, v.view, v.theme, v.notifier)

	frames := newPainter(func(ctx context.Context, job paintJob) { drawFrame(ctx, s, w, job) })
	defer frames.Stop()

	var ticking bool
	var lastTick time.Time
	scheduleTick := func() {
		time.AfterFunc(tickInterval, func() { snd.Send(tickEvent{}) })
	}
	handle := func(o outcome) bool {
		switch o {
		case outcomeQuit:
			return false
		case outcomeAnimate:
			if !ticking {
				ticking = true
				lastTick = time.Now()
				scheduleTick()
			}
			w.Send(paint.Event{})
		case outcomeRedraw:
			w.Send(paint.Event{})
		}
		return true
	}

	opened := false
	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			handle(sess.resize(image.Pt(e.WidthPx, e.HeightPx)))
			if !opened && e.WidthPx > 0 && e.HeightPx > 0 {
				opened = true
				if v.asset != "" {
					handle(sess.open(v.asset))
				}
			}
		case paint.Event:
			frames.Submit(paintJob{frame: sess.frame(), size: sess.window})
		case tickEvent:
			now := time.Now()
			running := sess.tick(float32(now.Sub(lastTick).Seconds()))
			lastTick = now
			if running {
				scheduleTick()
			} else {
				ticking = false
			}
			w.Send(paint.Event{})
		case ocr.Result:
			handle(sess.ocrResult(e))
		case mouse.Event:
			handle(sess.mouse(e))
		case key.Event:
			if !handle(sess.key(e)) {
				return
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, job paintJob) {
	if job.size.X <= 0 || job.size.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(job.size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if err := render.Draw(ctx, b.RGBA(), job.frame); err != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
