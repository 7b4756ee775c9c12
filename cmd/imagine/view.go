package main

import (
	"flag"
	"fmt"

	"github.com/example/imagine/internal/imageio"
	"github.com/example/imagine/internal/viewer"
)

type viewCmd struct {
	file string
	*root
	fs *flag.FlagSet
}

func (v *viewCmd) FlagSet() *flag.FlagSet {
	return v.fs
}

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	c := &viewCmd{root: r.subcommand("view"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file, capture source or clipboard: to open")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch {
	case fs.NArg() > 1:
		return nil, &UsageError{of: c}
	case fs.NArg() == 1 && c.file != "":
		return nil, fmt.Errorf("give the image either with -file or as an argument, not both")
	case fs.NArg() == 1:
		c.file = fs.Arg(0)
	}
	return c, nil
}

func (v *viewCmd) Run() error {
	opts := []viewer.Option{
		viewer.WithAsset(v.file),
		viewer.WithTitle(windowTitle(titleOptions{File: v.file})),
		viewer.WithView(v.config.View),
		viewer.WithTheme(v.activeTheme),
		viewer.WithDecoder(imageio.Decoder{}),
		viewer.WithNotifier(v.notifier),
	}
	if !v.noOCR {
		opts = append(opts, viewer.WithRecognizer(v.recognizer()))
	}
	viewer.New(opts...).Run()
	return nil
}
