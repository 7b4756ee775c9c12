package viewer

import (
	"fmt"
	"image"
	"log"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"seehuhn.de/go/geom/vec"

	"github.com/example/imagine/internal/clipboard"
	"github.com/example/imagine/internal/config"
	"github.com/example/imagine/internal/imageio"
	"github.com/example/imagine/internal/notify"
	"github.com/example/imagine/internal/ocr"
	"github.com/example/imagine/internal/render"
	"github.com/example/imagine/internal/scroll"
	"github.com/example/imagine/internal/theme"
	"github.com/example/imagine/internal/viewport"
)

// outcome tells the event loop what to do after an input.
type outcome int

const (
	outcomeNone outcome = iota
	outcomeRedraw
	// outcomeAnimate redraws and keeps ticking the pan animation.
	outcomeAnimate
	outcomeQuit
)

// session is the window-independent part of the viewer. It is used from
// the event loop goroutine only.
type session struct {
	ctrl     *viewport.Controller
	scroll   *scroll.Container
	overlay  ocr.Overlay
	decoder  viewport.Decoder
	notifier *notify.Notifier
	view     config.View
	theme    *theme.Theme

	writeText func(string) error

	window   image.Point
	hover    int
	dragging bool
	last     vec.Vec2
	message  string
}

func newSession(dec viewport.Decoder, disp viewport.Dispatcher, view config.View, th *theme.Theme, n *notify.Notifier) *session {
	s := &session{
		scroll:    scroll.New(viewport.Size{}),
		decoder:   dec,
		notifier:  n,
		view:      view,
		theme:     th,
		writeText: clipboard.WriteText,
		hover:     -1,
	}
	opts := []viewport.Option{
		viewport.WithDecoder(s),
		viewport.WithScrollAdapter(s.scroll),
		viewport.WithWheelZoomFactor(view.WheelZoom),
	}
	if disp != nil {
		opts = append(opts, viewport.WithDispatcher(disp))
	}
	s.ctrl = viewport.NewController(opts...)
	return s
}

// Decode loads id through the configured decoder and reports the outcome.
// The controller calls it while fitting a new asset.
func (s *session) Decode(id string) (*image.RGBA, error) {
	img, err := s.decoder.Decode(id)
	if err != nil {
		s.message = "cannot open " + id
		go s.notifier.DecodeFailed(id)
		return nil, err
	}
	s.message = ""
	go s.notifier.Opened(id, img)
	return img, nil
}

func (s *session) open(id string) outcome {
	s.overlay.Reset(id)
	s.hover = -1
	s.ctrl.Handle(viewport.OpenEvent{Path: id})
	return outcomeRedraw
}

func (s *session) resize(window image.Point) outcome {
	s.window = window
	s.ctrl.Handle(viewport.ResizeEvent{Size: render.Viewport(window)})
	return outcomeRedraw
}

func (s *session) viewportSize() viewport.Size { return render.Viewport(s.window) }

func (s *session) key(e key.Event) outcome {
	if e.Direction == key.DirRelease {
		return outcomeNone
	}
	zoom := s.ctrl.State().Zoom
	switch lookupAction(e) {
	case actionZoomIn:
		s.ctrl.Handle(viewport.ZoomEvent{Delta: s.view.KeyZoom * zoom})
	case actionZoomOut:
		s.ctrl.Handle(viewport.ZoomEvent{Delta: -s.view.KeyZoom * zoom})
	case actionRefit:
		s.ctrl.Handle(viewport.RefitEvent{})
	case actionPanLeft:
		return s.pan(vec.Vec2{X: -s.view.PanStep})
	case actionPanRight:
		return s.pan(vec.Vec2{X: s.view.PanStep})
	case actionPanUp:
		return s.pan(vec.Vec2{Y: -s.view.PanStep})
	case actionPanDown:
		return s.pan(vec.Vec2{Y: s.view.PanStep})
	case actionCopyText:
		s.copyText()
	case actionPaste:
		return s.open(imageio.ClipboardID)
	case actionQuit:
		return outcomeQuit
	default:
		return outcomeNone
	}
	return outcomeRedraw
}

func (s *session) pan(delta vec.Vec2) outcome {
	if s.view.SmoothPan && s.view.PanDuration > 0 {
		s.scroll.AnimateBy(delta, float32(s.view.PanDuration))
		return outcomeAnimate
	}
	s.ctrl.Handle(viewport.PanEvent{Delta: delta})
	return outcomeRedraw
}

// tick advances a running pan animation by dt seconds and reports whether
// it is still running.
func (s *session) tick(dt float32) bool {
	running := s.scroll.Step(dt)
	s.ctrl.Sync()
	return running
}

func (s *session) copyText() {
	text := s.overlay.Text()
	if text == "" {
		s.message = "no text to copy"
		return
	}
	if err := s.writeText(text); err != nil {
		log.Printf("copy text: %v", err)
		s.message = "copy failed"
		return
	}
	s.message = "text copied"
}

func (s *session) mouse(e mouse.Event) outcome {
	pos := vec.Vec2{X: float64(e.X), Y: float64(e.Y)}
	switch {
	case isWheel(e.Button):
		if e.Direction == mouse.DirRelease {
			return outcomeNone
		}
		s.ctrl.Handle(viewport.CursorEvent{Pos: pos})
		s.ctrl.Handle(viewport.WheelEvent{
			Delta: wheelDelta(e.Button, s.view.WheelStep),
			Zoom:  e.Modifiers&key.ModControl != 0,
		})
		return outcomeRedraw
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		s.dragging = true
		s.last = pos
		return outcomeNone
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		s.dragging = false
		return outcomeNone
	}

	s.ctrl.Handle(viewport.CursorEvent{Pos: pos})
	if s.dragging {
		s.ctrl.Handle(viewport.PanEvent{Delta: s.last.Sub(pos)})
		s.last = pos
		s.updateHover(pos)
		return outcomeRedraw
	}
	if s.updateHover(pos) {
		return outcomeRedraw
	}
	return outcomeNone
}

func (s *session) updateHover(pos vec.Vec2) bool {
	hover := -1
	if len(s.overlay.Boxes()) > 0 {
		hover = s.overlay.Hit(s.ctrl.State().ImagePoint(s.viewportSize(), pos))
	}
	changed := hover != s.hover
	s.hover = hover
	return changed
}

// ocrResult installs a recognition result when it belongs to the asset on
// screen.
func (s *session) ocrResult(r ocr.Result) outcome {
	current := s.ctrl.State().AssetID
	if r.AssetID != current {
		return outcomeNone
	}
	if r.Err != nil {
		log.Printf("ocr %s: %v", r.AssetID, r.Err)
		s.message = "text recognition failed"
		return outcomeRedraw
	}
	s.overlay.Accept(r, current)
	s.message = fmt.Sprintf("%d text boxes", len(r.Boxes))
	if len(r.Boxes) == 1 {
		s.message = "1 text box"
	}
	go s.notifier.Recognised(r.AssetID, len(r.Boxes))
	return outcomeRedraw
}

func (s *session) frame() render.Frame {
	return render.Frame{
		State:   s.ctrl.State(),
		Image:   s.ctrl.Image(),
		Theme:   s.theme,
		Boxes:   s.overlay.Boxes(),
		Hover:   s.hover,
		Message: s.message,
	}
}

func isWheel(b mouse.Button) bool {
	switch b {
	case mouse.ButtonWheelUp, mouse.ButtonWheelDown, mouse.ButtonWheelLeft, mouse.ButtonWheelRight:
		return true
	}
	return false
}

func wheelDelta(b mouse.Button, step float64) vec.Vec2 {
	switch b {
	case mouse.ButtonWheelUp:
		return vec.Vec2{Y: -step}
	case mouse.ButtonWheelDown:
		return vec.Vec2{Y: step}
	case mouse.ButtonWheelLeft:
		return vec.Vec2{X: -step}
	case mouse.ButtonWheelRight:
		return vec.Vec2{X: step}
	}
	return vec.Vec2{}
}
