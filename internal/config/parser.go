package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/imagine/internal/theme"
)

// Parse reads configuration from an io.Reader. Keys missing from the input
// keep their defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				// Start with defaults so missing keys are fine
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		// Key = Value or Key: Value
		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "":
			setRootField(cfg, key, value)
		case section == "view":
			err = setViewField(&cfg.View, key, value)
		case section == "ocr":
			err = setOCRField(&cfg.OCR, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "open_dir":
		cfg.OpenDir = value
	}
}

func setViewField(v *View, key, value string) error {
	switch strings.ToLower(key) {
	case "wheel_zoom":
		return parsePositive(key, value, &v.WheelZoom)
	case "wheel_step":
		return parsePositive(key, value, &v.WheelStep)
	case "key_zoom":
		return parsePositive(key, value, &v.KeyZoom)
	case "pan_step":
		return parsePositive(key, value, &v.PanStep)
	case "pan_duration":
		var d float64
		if err := parseFloat(key, value, &d); err != nil {
			return err
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
		v.PanDuration = d
	case "smooth_pan":
		return parseBool(key, value, &v.SmoothPan)
	case "width":
		return parseDimension(key, value, &v.Width)
	case "height":
		return parseDimension(key, value, &v.Height)
	}
	return nil
}

func setOCRField(o *OCR, key, value string) error {
	switch strings.ToLower(key) {
	case "enabled":
		return parseBool(key, value, &o.Enabled)
	case "command":
		o.Command = value
	case "script":
		o.Script = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	switch strings.ToLower(key) {
	case "open":
		return parseBool(key, value, &n.Open)
	case "decode_error":
		return parseBool(key, value, &n.DecodeError)
	case "ocr":
		return parseBool(key, value, &n.OCR)
	}
	return nil
}

func parseBool(key, value string, dst *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	*dst = b
	return nil
}

func parseFloat(key, value string, dst *float64) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	*dst = f
	return nil
}

func parsePositive(key, value string, dst *float64) error {
	var f float64
	if err := parseFloat(key, value, &f); err != nil {
		return err
	}
	if !(f > 0) {
		return fmt.Errorf("%s must be positive", key)
	}
	*dst = f
	return nil
}

func parseDimension(key, value string, dst *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n <= 0 {
		return fmt.Errorf("%s must be positive", key)
	}
	*dst = n
	return nil
}
