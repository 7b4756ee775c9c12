package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/imagine/internal/config"
	"github.com/example/imagine/internal/notify"
	"github.com/example/imagine/internal/ocr"
	"github.com/example/imagine/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	stdout      io.Writer
	notifier    *notify.Notifier
	config      *config.Config
	openAlerts  bool
	errorAlerts bool
	ocrAlerts   bool
	noOCR       bool
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:     program,
		stdout:      r.stdout,
		notifier:    r.notifier,
		config:      r.config,
		openAlerts:  r.openAlerts,
		errorAlerts: r.errorAlerts,
		ocrAlerts:   r.ocrAlerts,
		noOCR:       r.noOCR,
		themeName:   r.themeName,
		activeTheme: r.activeTheme,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("imagine", flag.ExitOnError),
		program:  "imagine",
		stdout:   os.Stdout,
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.openAlerts, "notify-open", cfg.Notify.Open, "show a desktop notification after opening an image")
	r.fs.BoolVar(&r.errorAlerts, "notify-decode-error", cfg.Notify.DecodeError, "show a desktop notification when an image cannot be opened")
	r.fs.BoolVar(&r.ocrAlerts, "notify-ocr", cfg.Notify.OCR, "show a desktop notification when text recognition finishes")
	r.fs.BoolVar(&r.noOCR, "no-ocr", !cfg.OCR.Enabled, "disable text recognition")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventOpen, r.openAlerts)
		r.notifier.Enable(notify.EventDecodeError, r.errorAlerts)
		r.notifier.Enable(notify.EventOCR, r.ocrAlerts)
	}

	t, themeErr := r.config.ResolveTheme(r.themeName)
	if themeErr != nil {
		name := r.config.ThemeName(r.themeName)
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, themeErr)
		}
		t = theme.Default()
	}
	r.activeTheme = t

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "view":
		cmd, err = parseViewCmd(subArgs, r)
	case "fit":
		cmd, err = parseFitCmd(subArgs, r)
	case "ocr":
		cmd, err = parseOCRCmd(subArgs, r)
	case "info":
		cmd, err = parseInfoCmd(subArgs, r)
	case "sources":
		cmd, err = parseSourcesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		if strings.HasPrefix(cmdName, "-") {
			err = &UsageError{of: r}
			break
		}
		// A bare path opens the viewer.
		cmd, err = parseViewCmd(r.fs.Args(), r)
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) recognizer() ocr.Recognizer {
	return ocr.CommandRecognizer{Command: r.config.OCRCommand(), Script: ocr.LocateScript(r.config.OCR.Script)}
}

func (r *root) out() io.Writer {
	if r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
