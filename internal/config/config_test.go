package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
open_dir = /tmp/pictures

[view]
wheel_zoom = 0.004
wheel_step = 30
key_zoom = 0.5
smooth_pan = false
pan_duration = 0
width = 640
height = 480

[ocr]
enabled = false
command = "/usr/bin/python3"

[notify]
open = true
decode_error = false
ocr = true

[theme.my_custom_theme]
Background = #111111
statustext: #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" || cfg.OpenDir != "/tmp/pictures" {
		t.Errorf("root = %q %q", cfg.Theme, cfg.OpenDir)
	}
	wantView := View{
		WheelZoom: 0.004, WheelStep: 30, KeyZoom: 0.5, PanStep: 80,
		SmoothPan: false, PanDuration: 0, Width: 640, Height: 480,
	}
	if diff := cmp.Diff(wantView, cfg.View); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
	wantOCR := OCR{Enabled: false, Command: "/usr/bin/python3", Script: "scripts/get_text.py"}
	if diff := cmp.Diff(wantOCR, cfg.OCR); diff != "" {
		t.Errorf("ocr mismatch (-want +got):\n%s", diff)
	}
	if want := (Notify{Open: true, DecodeError: false, OCR: true}); cfg.Notify != want {
		t.Errorf("notify = %+v, want %+v", cfg.Notify, want)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background != (color.RGBA{0x11, 0x11, 0x11, 0xFF}) {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
	if th.StatusText != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("case-insensitive key not applied: %+v", th.StatusText)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"bad bool":      "[notify]\nopen = maybe\n",
		"bad number":    "[view]\nwheel_zoom = fast\n",
		"zero zoom":     "[view]\nkey_zoom = 0\n",
		"negative size": "[view]\nwidth = -5\n",
		"bad color":     "[theme.x]\nBackground = blue\n",
	}
	for name, input := range tests {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
open_dir = /home/user/pics

[view]
pan_step = 120
smooth_pan = false

[notify]
open = true

[theme.custom]
Name = custom
Background = #000000
OCRBox = #FF000080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}
	if diff := cmp.Diff(cfg, cfg2); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvPrecedence(t *testing.T) {
	cfg := New()
	cfg.Theme = "light"
	t.Setenv(EnvTheme, "")
	if got := cfg.ThemeName(""); got != "light" {
		t.Errorf("config theme = %q", got)
	}
	t.Setenv(EnvTheme, "high_contrast")
	if got := cfg.ThemeName(""); got != "high_contrast" {
		t.Errorf("env theme = %q", got)
	}
	if got := cfg.ThemeName("default"); got != "default" {
		t.Errorf("flag theme = %q", got)
	}

	t.Setenv(EnvOCRCommand, "")
	if got := cfg.OCRCommand(); got != "python3" {
		t.Errorf("ocr command = %q", got)
	}
	t.Setenv(EnvOCRCommand, "/opt/ocr/bin/python")
	if got := cfg.OCRCommand(); got != "/opt/ocr/bin/python" {
		t.Errorf("ocr command override = %q", got)
	}
}

func TestResolveThemePrefersConfigSections(t *testing.T) {
	t.Setenv(EnvTheme, "")
	cfg, err := Parse(strings.NewReader("theme = mine\n[theme.mine]\nName = Mine\n"))
	if err != nil {
		t.Fatal(err)
	}
	th, err := cfg.ResolveTheme("")
	if err != nil || th.Name != "Mine" {
		t.Errorf("ResolveTheme = %v, %v", th, err)
	}
	th, err = cfg.ResolveTheme("high_contrast")
	if err != nil || th.Name != "High Contrast" {
		t.Errorf("ResolveTheme(high_contrast) = %v, %v", th, err)
	}
}

func TestLoaderSaveAndLoad(t *testing.T) {
	home := t.TempDir()
	l := &Loader{Version: "v1.0.0", Home: home}
	if p := l.GetConfigPath(); p != "" {
		t.Fatalf("unexpected config %q", p)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(New(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	cfg.View.KeyZoom = 0.1
	path, err := l.Save(cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(home, ".config", "imagine", "config.rc"); path != want {
		t.Errorf("saved to %q, want %q", path, want)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.View.KeyZoom != 0.1 {
		t.Errorf("key_zoom = %v", loaded.View.KeyZoom)
	}
}

func TestLoaderOverridePath(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(override, []byte("theme = light\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{Version: "dev", OverridePath: override, Home: dir}
	if got := l.GetConfigPath(); got != override {
		t.Errorf("path = %q, want %q", got, override)
	}
	cfg, err := l.Load()
	if err != nil || cfg.Theme != "light" {
		t.Errorf("Load = %+v, %v", cfg, err)
	}
}
