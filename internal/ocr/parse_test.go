package ocr

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Box
	}{
		{
			line: "(10,20),(110,20),(110,45),(10,45);Hello;0.97",
			want: Box{
				Polygon:    []vec.Vec2{{X: 10, Y: 20}, {X: 110, Y: 20}, {X: 110, Y: 45}, {X: 10, Y: 45}},
				Text:       "Hello",
				Confidence: 0.97,
			},
		},
		{
			line: "([1, 2]-[3, 4]),([5,6]-[7,8]);a;b;c; 0.5 ",
			want: Box{
				Polygon:    []vec.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}, {X: 7, Y: 8}},
				Text:       "a;b;c",
				Confidence: 0.5,
			},
		},
		{
			line: "(0.5,-3),(2,7);;1",
			want: Box{Polygon: []vec.Vec2{{X: 0.5, Y: -3}, {X: 2, Y: 7}}, Confidence: 1},
		},
	}
	for _, tt := range tests {
		got, err := ParseLine(tt.line)
		if err != nil {
			t.Errorf("ParseLine(%q): %v", tt.line, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, line := range []string{
		"no separators",
		"(1,2);only one",
		"(1,2,3);text;0.5",
		";text;0.5",
		"(1,2);text;high",
	} {
		if _, err := ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q) succeeded", line)
		}
	}
}

func TestParse(t *testing.T) {
	out := "(0,0),(10,10);one;0.9\r\n\n(0,20),(10,30);two;0.8\n"
	boxes, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(boxes) != 2 || boxes[0].Text != "one" || boxes[1].Text != "two" {
		t.Fatalf("boxes = %+v", boxes)
	}

	_, err = Parse(strings.NewReader("(0,0),(1,1);ok;1\ngarbage\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected line 2 error, got %v", err)
	}
}

func TestBoxBounds(t *testing.T) {
	b := Box{Polygon: []vec.Vec2{{X: 5, Y: 9}, {X: -1, Y: 3}, {X: 4, Y: 12}}}
	want := rect.Rect{LLx: -1, LLy: 3, URx: 5, URy: 12}
	if diff := cmp.Diff(want, b.Bounds()); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
	if !b.Contains(vec.Vec2{X: 0, Y: 3}) || b.Contains(vec.Vec2{X: 6, Y: 5}) {
		t.Errorf("Contains gave wrong answer")
	}
	if (Box{}).Contains(vec.Vec2{}) {
		t.Errorf("empty box contains origin")
	}
}
