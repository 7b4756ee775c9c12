package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/example/imagine/internal/capture"
	"github.com/example/imagine/internal/imageio"
)

// Seams replaced in tests.
var (
	monitorsFn = capture.Monitors
	windowsFn  = capture.Windows
)

type sourcesCmd struct {
	*root
	fs *flag.FlagSet
}

func (s *sourcesCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSourcesCmd(args []string, r *root) (*sourcesCmd, error) {
	fs := flag.NewFlagSet("sources", flag.ExitOnError)
	cmd := &sourcesCmd{root: r.subcommand("sources"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (s *sourcesCmd) Run() error {
	w := s.out()
	monitors, err := monitorsFn()
	if err != nil {
		return fmt.Errorf("failed to list monitors: %w", err)
	}
	windows, err := windowsFn()
	if err != nil {
		// Monitors are still useful without a window manager.
		log.Printf("list windows: %v", err)
	}

	fmt.Fprintf(w, "%s\tentire screen\n", capture.Source{Kind: capture.Root})
	for _, m := range monitors {
		marker := ""
		if m.Primary {
			marker = " (primary)"
		}
		src := capture.Source{Kind: capture.Monitor, Monitor: m.Index}
		fmt.Fprintf(w, "%s\t%s %dx%d+%d+%d%s\n", src, m.Name, m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y, marker)
	}
	for _, win := range windows {
		marker := " "
		if win.Active {
			marker = "*"
		}
		src := capture.Source{Kind: capture.Window, Window: win.ID}
		fmt.Fprintf(w, "%s\t%s%s\n", src, marker, win.Title)
	}
	fmt.Fprintf(w, "%s\tdesktop portal screenshot\n", capture.Source{Kind: capture.Portal})
	fmt.Fprintf(w, "%s\timage on the clipboard\n", imageio.ClipboardID)
	return nil
}
