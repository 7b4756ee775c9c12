package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/imagine/internal/imageio"
	"github.com/example/imagine/internal/platform"
)

type titleOptions struct {
	File   string
	Extras []string
}

func windowTitle(opts titleOptions) string {
	parts := []string{platform.AppName}

	file := strings.TrimSpace(opts.File)
	if file != "" {
		if imageio.IsFile(file) {
			file = filepath.Base(file)
		}
		parts = append(parts, file)
	}

	extras := make([]string, 0, len(opts.Extras)+2)

	if strings.TrimSpace(version) != "" {
		extras = append(extras, fmt.Sprintf("v%s", strings.TrimSpace(version)))
	}

	if strings.TrimSpace(commit) != "" {
		extras = append(extras, fmt.Sprintf("commit %s", strings.TrimSpace(commit)))
	}

	if len(opts.Extras) > 0 {
		extras = append(extras, opts.Extras...)
	}

	if len(extras) > 0 {
		parts = append(parts, extras...)
	}

	return strings.Join(parts, " - ")
}
