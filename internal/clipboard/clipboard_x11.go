//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the clipboard is driven directly over the X11 protocol.

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		owner, initErr = newSelectionOwner()
	})
	return initErr
}

// ReadImage returns the image currently held by the clipboard.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := readSelection(owner.atoms, owner.atoms.png)
	if err != nil {
		return nil, err
	}
	return decodeImage(data)
}

// ReadText returns the UTF-8 text currently held by the clipboard.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := readSelection(owner.atoms, owner.atoms.utf8)
	if err != nil {
		if data, err = readSelection(owner.atoms, xproto.AtomString); err != nil {
			return "", err
		}
	}
	return trimText(data)
}

// WriteText replaces the clipboard contents with text.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.own([]byte(text))
}

type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func internAtoms(conn *xgb.Conn) (atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "image/png", "IMAGINE_CLIPBOARD"}
	vals := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atoms{}, fmt.Errorf("intern %s: %w", name, err)
		}
		vals[i] = reply.Atom
	}
	return atoms{clipboard: vals[0], targets: vals[1], utf8: vals[2], png: vals[3], property: vals[4]}, nil
}

// reply returns the property contents that answer a request for target, or
// false when target cannot be served.
func (a atoms) reply(target xproto.Atom, text []byte) (typ xproto.Atom, format byte, data []byte, ok bool) {
	switch {
	case target == a.targets:
		return xproto.AtomAtom, 32, encodeAtoms([]xproto.Atom{a.targets, a.utf8, xproto.AtomString}), true
	case (target == a.utf8 || target == xproto.AtomString) && len(text) > 0:
		return target, 8, text, true
	}
	return 0, 0, nil, false
}

func encodeAtoms(list []xproto.Atom) []byte {
	buf := make([]byte, 4*len(list))
	for i, t := range list {
		xgb.Put32(buf[i*4:], uint32(t))
	}
	return buf
}

// selectionOwner holds the CLIPBOARD selection for text written by this
// process and answers requests for it from other clients.
type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu   sync.RWMutex
	text []byte
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, win, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	a, err := internAtoms(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: win, atoms: a}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) own(text []byte) error {
	o.mu.Lock()
	o.text = append([]byte(nil), text...)
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.text = nil
			o.mu.Unlock()
		}
	}
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	o.mu.RLock()
	text := o.text
	o.mu.RUnlock()

	if typ, format, data, ok := o.atoms.reply(e.Target, text); ok {
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, typ, format, uint32(len(data))/uint32(format/8), data)
	} else {
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// readSelection converts the clipboard to target on a private connection and
// returns the transferred bytes.
func readSelection(a atoms, target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, win, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, win)

	if err := xproto.ConvertSelectionChecked(conn, win, a.clipboard, target, a.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, xerr := conn.WaitForEvent()
		if xerr != nil {
			return nil, xerr
		}
		if ev == nil {
			return nil, fmt.Errorf("clipboard connection closed")
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard target unavailable")
		}
		reply, err := xproto.GetProperty(conn, true, win, e.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
