package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/imagine/internal/imageio"
	"github.com/example/imagine/internal/viewport"
)

// decodeFn is replaced in tests.
var decodeFn = imageio.Decoder{}.Decode

type fitCmd struct {
	file string
	size string
	*root
	fs *flag.FlagSet
}

func (f *fitCmd) FlagSet() *flag.FlagSet {
	return f.fs
}

func parseFitCmd(args []string, r *root) (*fitCmd, error) {
	fs := flag.NewFlagSet("fit", flag.ExitOnError)
	c := &fitCmd{root: r.subcommand("fit"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image to fit")
	fs.StringVar(&c.size, "size", "", "viewport size as WxH (default from the [view] config)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() == 1 {
		c.file = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (f *fitCmd) Run() error {
	view := viewport.Size{W: float64(f.config.View.Width), H: float64(f.config.View.Height)}
	if f.size != "" {
		var err error
		if view, err = parseSize(f.size); err != nil {
			return err
		}
	}
	img, err := decodeFn(f.file)
	if err != nil {
		return err
	}
	b := img.Bounds()
	s, push := viewport.Fit(viewport.DefaultState(), f.file, viewport.Size{W: float64(b.Dx()), H: float64(b.Dy())}, view)
	if !push.OK {
		return fmt.Errorf("cannot fit into %gx%g", view.W, view.H)
	}
	w := f.out()
	fmt.Fprintf(w, "size %dx%d\n", b.Dx(), b.Dy())
	fmt.Fprintf(w, "zoom %g\n", s.Zoom)
	fmt.Fprintf(w, "min_zoom %g\n", s.MinZoom)
	fmt.Fprintf(w, "center %g,%g\n", s.Center.X, s.Center.Y)
	fmt.Fprintf(w, "offset %g,%g\n", push.Offset.X, push.Offset.Y)
	return nil
}

var errBadSize = errors.New("size must be WxH with positive numbers")

func parseSize(s string) (viewport.Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return viewport.Size{}, fmt.Errorf("%q: %w", s, errBadSize)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	if err != nil {
		return viewport.Size{}, fmt.Errorf("%q: %w", s, errBadSize)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if err != nil {
		return viewport.Size{}, fmt.Errorf("%q: %w", s, errBadSize)
	}
	size := viewport.Size{W: w, H: h}
	if !size.Valid() {
		return viewport.Size{}, fmt.Errorf("%q: %w", s, errBadSize)
	}
	return size, nil
}
