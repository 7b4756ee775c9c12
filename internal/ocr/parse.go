package ocr

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

var numberRE = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseLine parses one line of recognizer output:
//
//	(x,y),(x,y),(x,y),(x,y);text;confidence
//
// Coordinates are read pairwise from the first field, so bracketed forms
// such as ([x,y]-[x,y]) are accepted too. The text may itself contain
// semicolons.
func ParseLine(line string) (Box, error) {
	first := strings.Index(line, ";")
	last := strings.LastIndex(line, ";")
	if first < 0 || first == last {
		return Box{}, fmt.Errorf("want points;text;confidence, got %q", line)
	}
	nums := numberRE.FindAllString(line[:first], -1)
	if len(nums) == 0 || len(nums)%2 != 0 {
		return Box{}, fmt.Errorf("odd or empty coordinate list %q", line[:first])
	}
	poly := make([]vec.Vec2, 0, len(nums)/2)
	for i := 0; i < len(nums); i += 2 {
		x, err := strconv.ParseFloat(nums[i], 64)
		if err != nil {
			return Box{}, err
		}
		y, err := strconv.ParseFloat(nums[i+1], 64)
		if err != nil {
			return Box{}, err
		}
		poly = append(poly, vec.Vec2{X: x, Y: y})
	}
	conf, err := strconv.ParseFloat(strings.TrimSpace(line[last+1:]), 64)
	if err != nil {
		return Box{}, fmt.Errorf("confidence: %w", err)
	}
	return Box{Polygon: poly, Text: line[first+1 : last], Confidence: conf}, nil
}

// Parse reads recognizer output, one box per line. Blank lines are skipped.
func Parse(r io.Reader) ([]Box, error) {
	var boxes []Box
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		b, err := ParseLine(line)
		if err != nil {
			return boxes, fmt.Errorf("line %d: %w", n, err)
		}
		boxes = append(boxes, b)
	}
	return boxes, sc.Err()
}
