package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/example/imagine/internal/imageio"
)

// loadFn is replaced in tests.
var loadFn = imageio.Decoder{}.Load

type infoCmd struct {
	file string
	*root
	fs *flag.FlagSet
}

func (i *infoCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInfoCmd(args []string, r *root) (*infoCmd, error) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	c := &infoCmd{root: r.subcommand("info"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image to describe")
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

func (i *infoCmd) Run() error {
	img, err := loadFn(i.file)
	if err != nil {
		return err
	}
	w := i.out()
	fmt.Fprintf(w, "file: %s\n", i.file)
	if img.Format != "" {
		fmt.Fprintf(w, "format: %s\n", img.Format)
	}
	fmt.Fprintf(w, "size: %dx%d\n", img.Width, img.Height)

	fields := img.Meta.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", k, fields[k])
	}
	return nil
}
