package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/imagine/internal/theme"
)

// Environment variables that override the configuration file.
const (
	EnvTheme      = "IMAGINE_THEME"
	EnvOCRCommand = "IMAGINE_OCR_COMMAND"
)

// View holds the interaction settings of the viewer window.
type View struct {
	WheelZoom   float64 // zoom change per ctrl-wheel pixel, relative to the zoom
	WheelStep   float64 // pixels scrolled per wheel notch
	KeyZoom     float64 // zoom change per key press, relative to the zoom
	PanStep     float64 // pixels panned per arrow key press
	SmoothPan   bool
	PanDuration float64 // seconds
	Width       int
	Height      int
}

// OCR holds the text recognition settings.
type OCR struct {
	Enabled bool
	Command string
	Script  string
}

// Notify holds notification settings.
type Notify struct {
	Open        bool
	DecodeError bool
	OCR         bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	OpenDir string
	View    View
	OCR     OCR
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		View: View{
			WheelZoom:   0.002,
			WheelStep:   50,
			KeyZoom:     0.25,
			PanStep:     80,
			SmoothPan:   true,
			PanDuration: 0.15,
			Width:       1200,
			Height:      800,
		},
		OCR: OCR{
			Enabled: true,
			Command: "python3",
			Script:  "scripts/get_text.py",
		},
		Notify: Notify{DecodeError: true},
		Themes: make(map[string]*theme.Theme),
	}
}

// ThemeName returns the theme to use: flag, then environment, then the
// configuration file. An empty result means the built-in default.
func (c *Config) ThemeName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvTheme); env != "" {
		return env
	}
	return c.Theme
}

// ResolveTheme returns the named theme from the [theme.*] sections or the
// theme loader.
func (c *Config) ResolveTheme(flagValue string) (*theme.Theme, error) {
	name := c.ThemeName(flagValue)
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	return theme.NewLoader().Load(name)
}

// OCRCommand returns the recognizer program, honouring the environment
// override.
func (c *Config) OCRCommand() string {
	if env := os.Getenv(EnvOCRCommand); env != "" {
		return env
	}
	return c.OCR.Command
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.OpenDir != "" {
		fmt.Fprintf(&sb, "open_dir = %s\n", c.OpenDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[view]\n")
	fmt.Fprintf(&sb, "wheel_zoom = %g\n", c.View.WheelZoom)
	fmt.Fprintf(&sb, "wheel_step = %g\n", c.View.WheelStep)
	fmt.Fprintf(&sb, "key_zoom = %g\n", c.View.KeyZoom)
	fmt.Fprintf(&sb, "pan_step = %g\n", c.View.PanStep)
	fmt.Fprintf(&sb, "smooth_pan = %v\n", c.View.SmoothPan)
	fmt.Fprintf(&sb, "pan_duration = %g\n", c.View.PanDuration)
	fmt.Fprintf(&sb, "width = %d\n", c.View.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.View.Height)
	sb.WriteString("\n")

	sb.WriteString("[ocr]\n")
	fmt.Fprintf(&sb, "enabled = %v\n", c.OCR.Enabled)
	fmt.Fprintf(&sb, "command = %s\n", c.OCR.Command)
	fmt.Fprintf(&sb, "script = %s\n", c.OCR.Script)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "open = %v\n", c.Notify.Open)
	fmt.Fprintf(&sb, "decode_error = %v\n", c.Notify.DecodeError)
	fmt.Fprintf(&sb, "ocr = %v\n", c.Notify.OCR)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		sb.WriteString(c.Themes[name].Format())
		sb.WriteString("\n")
	}

	return sb.String()
}
