package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"
)

var rgbaType = reflect.TypeOf(color.RGBA{})

// Parse reads a theme definition, one "Key: #RRGGBB" or "Key: #RRGGBBAA"
// pair per line. Keys missing from the input keep their Default value and
// unknown keys are ignored.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	val := reflect.ValueOf(t).Elem()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := set(val, key, value); err != nil {
			return nil, err
		}
	}
	return t, scanner.Err()
}

// Set assigns one key of t, as a theme file line would. Keys match field
// names case-insensitively.
func (t *Theme) Set(key, value string) error {
	return set(reflect.ValueOf(t).Elem(), key, value)
}

func set(val reflect.Value, key, value string) error {
	if strings.EqualFold(key, "Name") {
		val.FieldByName("Name").SetString(value)
		return nil
	}
	field := val.FieldByNameFunc(func(name string) bool { return strings.EqualFold(name, key) })
	if !field.IsValid() || field.Type() != rgbaType {
		return nil
	}
	col, err := ParseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	field.Set(reflect.ValueOf(col))
	return nil
}

// Format returns t in the theme file format, Name first and then every color
// in declaration order.
func (t *Theme) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", t.Name)
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type != rgbaType {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", typ.Field(i).Name, Hex(val.Field(i).Interface().(color.RGBA)))
	}
	return sb.String()
}

// ParseColor parses #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("color must start with #")
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex length")
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, err
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
