//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func testAtoms() atoms {
	return atoms{clipboard: 300, targets: 301, utf8: 302, png: 303, property: 304}
}

func TestReplyTargets(t *testing.T) {
	a := testAtoms()
	typ, format, data, ok := a.reply(a.targets, nil)
	if !ok || typ != xproto.AtomAtom || format != 32 {
		t.Fatalf("reply = %v, %d, ok=%v", typ, format, ok)
	}
	var got []xproto.Atom
	for i := 0; i+4 <= len(data); i += 4 {
		got = append(got, xproto.Atom(xgb.Get32(data[i:])))
	}
	want := []xproto.Atom{a.targets, a.utf8, xproto.AtomString}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestReplyText(t *testing.T) {
	a := testAtoms()
	for _, target := range []xproto.Atom{a.utf8, xproto.AtomString} {
		typ, format, data, ok := a.reply(target, []byte("copied"))
		if !ok || typ != target || format != 8 || string(data) != "copied" {
			t.Errorf("reply(%d) = %v, %d, %q, ok=%v", target, typ, format, data, ok)
		}
	}
}

func TestReplyRefused(t *testing.T) {
	a := testAtoms()
	if _, _, _, ok := a.reply(a.utf8, nil); ok {
		t.Errorf("empty text should not be served")
	}
	if _, _, _, ok := a.reply(a.png, []byte("copied")); ok {
		t.Errorf("png target should not be served")
	}
}
