package ocr

import (
	"sort"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// Overlay holds the text boxes shown over the current asset. It is used
// from the UI goroutine only.
type Overlay struct {
	assetID string
	boxes   []Box
}

// Reset drops all boxes and starts waiting for results for assetID.
func (o *Overlay) Reset(assetID string) {
	o.assetID = assetID
	o.boxes = nil
}

// AssetID returns the asset whose results are accepted.
func (o *Overlay) AssetID() string { return o.assetID }

// Accept stores r if it belongs to current and carries no error. It
// reports whether the boxes were replaced.
func (o *Overlay) Accept(r Result, current string) bool {
	if r.AssetID != current || r.Err != nil {
		return false
	}
	o.assetID = current
	o.boxes = append([]Box(nil), r.Boxes...)
	return true
}

// Boxes returns the stored boxes.
func (o *Overlay) Boxes() []Box { return o.boxes }

// Text returns the recognised text in reading order: lines top to bottom,
// boxes on a line left to right.
func (o *Overlay) Text() string {
	if len(o.boxes) == 0 {
		return ""
	}
	boxes := append([]Box(nil), o.boxes...)
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].Bounds().LLy < boxes[j].Bounds().LLy
	})

	var lines [][]Box
	var lineBottom float64
	for _, b := range boxes {
		r := b.Bounds()
		mid := (r.LLy + r.URy) / 2
		if len(lines) > 0 && mid <= lineBottom {
			last := len(lines) - 1
			lines[last] = append(lines[last], b)
			lineBottom = max(lineBottom, r.URy)
			continue
		}
		lines = append(lines, []Box{b})
		lineBottom = r.URy
	}

	var sb strings.Builder
	for i, line := range lines {
		sort.SliceStable(line, func(a, b int) bool {
			return line[a].Bounds().LLx < line[b].Bounds().LLx
		})
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, b := range line {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.Text)
		}
	}
	return sb.String()
}

// Hit returns the index of the smallest box containing p, given in image
// coordinates, or -1.
func (o *Overlay) Hit(p vec.Vec2) int {
	best, bestArea := -1, 0.0
	for i, b := range o.boxes {
		if !b.Contains(p) {
			continue
		}
		r := b.Bounds()
		area := (r.URx - r.LLx) * (r.URy - r.LLy)
		if best < 0 || area < bestArea {
			best, bestArea = i, area
		}
	}
	return best
}
