package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"gopkg.in/yaml.v3"

	"github.com/example/imagine/internal/ocr"
)

// recognizeFn is replaced in tests.
var recognizeFn = ocr.RecognizeFile

type pointState struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type boxState struct {
	Text       string       `yaml:"text"`
	Confidence float64      `yaml:"confidence"`
	Polygon    []pointState `yaml:"polygon"`
}

type ocrState struct {
	File  string     `yaml:"file"`
	Boxes []boxState `yaml:"boxes"`
}

type ocrCmd struct {
	file   string
	format string
	*root
	fs *flag.FlagSet
}

func (o *ocrCmd) FlagSet() *flag.FlagSet {
	return o.fs
}

func parseOCRCmd(args []string, r *root) (*ocrCmd, error) {
	fs := flag.NewFlagSet("ocr", flag.ExitOnError)
	c := &ocrCmd{root: r.subcommand("ocr"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to recognise")
	fs.StringVar(&c.format, "format", "text", "output format: text or yaml")
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
	if c.format != "text" && c.format != "yaml" {
		return nil, fmt.Errorf("unknown format %q: use text or yaml", c.format)
	}
	return c, nil
}

func (o *ocrCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res := recognizeFn(ctx, o.recognizer(), o.file)
	if res.Err != nil {
		return fmt.Errorf("failed to recognise %s: %w", o.file, res.Err)
	}
	if o.format == "yaml" {
		return o.writeYAML(res)
	}
	var overlay ocr.Overlay
	overlay.Accept(res, o.file)
	if text := overlay.Text(); text != "" {
		fmt.Fprintln(o.out(), text)
	}
	return nil
}

func (o *ocrCmd) writeYAML(res ocr.Result) error {
	state := ocrState{File: res.AssetID, Boxes: make([]boxState, 0, len(res.Boxes))}
	for _, b := range res.Boxes {
		bs := boxState{Text: b.Text, Confidence: b.Confidence}
		for _, p := range b.Polygon {
			bs.Polygon = append(bs.Polygon, pointState{X: p.X, Y: p.Y})
		}
		state.Boxes = append(state.Boxes, bs)
	}
	enc := yaml.NewEncoder(o.out())
	enc.SetIndent(2)
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
