// Package rawbox parses the handful of ad-hoc JSON box encodings vision
// models tend to emit: one parser per known wire shape plus a combinator
// that tries each until one validates. Not used by the core pipeline (which
// only ever sees already-normalized geometry.NormBox values) — this is for
// collaborators.AIProvider implementations and cmd/markerclean's flag that
// accepts raw AI-style JSON from a file.
package rawbox

import (
	"encoding/json"

	"github.com/markerclean/engine/internal/geometry"
)

// cornersArray encoding: [xmin, ymin, xmax, ymax].
type cornersArray [4]float64

// bbox2D encoding: {"bbox_2d": [xmin, ymin, xmax, ymax]}.
type bbox2D struct {
	Bbox2D [4]float64 `json:"bbox_2d"`
}

// cornersSplit encoding: {"ymin": [...], "xmin": [...], "ymax": [...], "xmax": [...]}
// with each a single-element array, as some vision models emit per-axis lists.
type cornersSplit struct {
	YMin []float64 `json:"ymin"`
	XMin []float64 `json:"xmin"`
	YMax []float64 `json:"ymax"`
	XMax []float64 `json:"xmax"`
}

// ParseAny tries each known encoding in turn and returns the first that
// validates, normalizing coordinate scale as it goes. Reports false if no
// encoding matched or the result is degenerate.
func ParseAny(raw []byte) (geometry.NormBox, bool) {
	if box, ok := parseCornersArray(raw); ok {
		return box, true
	}
	if box, ok := parseBbox2D(raw); ok {
		return box, true
	}
	if box, ok := parseCornersSplit(raw); ok {
		return box, true
	}
	return geometry.NormBox{}, false
}

func parseCornersArray(raw []byte) (geometry.NormBox, bool) {
	var arr cornersArray
	if err := json.Unmarshal(raw, &arr); err != nil {
		return geometry.NormBox{}, false
	}
	return boxFromCorners(arr[0], arr[1], arr[2], arr[3])
}

func parseBbox2D(raw []byte) (geometry.NormBox, bool) {
	var v bbox2D
	if err := json.Unmarshal(raw, &v); err != nil {
		return geometry.NormBox{}, false
	}
	if v.Bbox2D == ([4]float64{}) {
		return geometry.NormBox{}, false
	}
	return boxFromCorners(v.Bbox2D[0], v.Bbox2D[1], v.Bbox2D[2], v.Bbox2D[3])
}

func parseCornersSplit(raw []byte) (geometry.NormBox, bool) {
	var v cornersSplit
	if err := json.Unmarshal(raw, &v); err != nil {
		return geometry.NormBox{}, false
	}
	if len(v.XMin) == 0 || len(v.YMin) == 0 || len(v.XMax) == 0 || len(v.YMax) == 0 {
		return geometry.NormBox{}, false
	}
	return boxFromCorners(v.XMin[0], v.YMin[0], v.XMax[0], v.YMax[0])
}

// boxFromCorners auto-detects 0-1000 vs 0-1 coordinate scale by magnitude:
// any value > 2 and <= 1005 implies the box is in 0-1000 units.
func boxFromCorners(xmin, ymin, xmax, ymax float64) (geometry.NormBox, bool) {
	if degenerate(xmin, ymin, xmax, ymax) {
		return geometry.NormBox{}, false
	}
	if needsDivideBy1000(xmin, ymin, xmax, ymax) {
		xmin, ymin, xmax, ymax = xmin/1000, ymin/1000, xmax/1000, ymax/1000
	}
	return geometry.NormBox{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}.Normalize(), true
}

func needsDivideBy1000(vals ...float64) bool {
	for _, v := range vals {
		if v > 2 && v <= 1005 {
			return true
		}
	}
	return false
}

func degenerate(vals ...float64) bool {
	for _, v := range vals {
		if v < 0 || v > 1005 {
			return true
		}
	}
	return false
}
