package ocr

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	DefaultCommand = "python3"
	DefaultScript  = "scripts/get_text.py"
)

var executableFn = os.Executable

// LocateScript resolves a relative script path. The working directory is
// tried first, then the directory holding the executable and its parent, so
// an installed binary finds the script shipped beside it. The path is
// returned unchanged when no candidate exists.
func LocateScript(script string) string {
	if script == "" || filepath.IsAbs(script) {
		return script
	}
	if _, err := os.Stat(script); err == nil {
		return script
	}
	exe, err := executableFn()
	if err != nil {
		return script
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	for _, base := range []string{dir, filepath.Dir(dir)} {
		candidate := filepath.Join(base, script)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return script
}

// CommandRecognizer runs an external program as "Command Script path" and
// parses its standard output.
type CommandRecognizer struct {
	Command string
	Script  string
}

// Recognize runs the recognizer on path. Cancelling ctx kills the process.
func (c CommandRecognizer) Recognize(ctx context.Context, path string) ([]Box, error) {
	name := c.Command
	if name == "" {
		name = DefaultCommand
	}
	var args []string
	if c.Script != "" {
		args = append(args, c.Script)
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ocr %s: %w: %s", path, err, msg)
		}
		return nil, fmt.Errorf("ocr %s: %w", path, err)
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		log.Printf("ocr %s: %s", path, msg)
	}
	boxes, err := Parse(&stdout)
	if err != nil {
		return nil, fmt.Errorf("ocr %s: %w", path, err)
	}
	return boxes, nil
}
