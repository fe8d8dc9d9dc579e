package structure

import (
	"fmt"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/nbt"
)

// Waypoint is a journeymap waypoint file.
type Waypoint struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	R          int    `json:"r"`
	G          int    `json:"g"`
	B          int    `json:"b"`
	Enable     bool   `json:"enable"`
	Type       string `json:"type"`
	Origin     string `json:"origin"`
	Dimensions []int  `json:"dimensions"`
	Persistent bool   `json:"persistent"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Z          int    `json:"z"`
}

// NewWaypoint fills a waypoint from the template. The id is "<name>_<x>,<y>,<z>".
func NewWaypoint(tmpl Template, name string, x, y, z int, dims []int) Waypoint {
	return Waypoint{
		ID:         fmt.Sprintf("%s_%d,%d,%d", name, x, y, z),
		Name:       name,
		Icon:       tmpl.Icon,
		R:          tmpl.R,
		G:          tmpl.G,
		B:          tmpl.B,
		Enable:     tmpl.Enable,
		Type:       tmpl.Type,
		Origin:     tmpl.Origin,
		Dimensions: append([]int(nil), dims...),
		Persistent: tmpl.Persistent,
		X:          x,
		Y:          y,
		Z:          z,
	}
}

// BoundingBox is a structure extent as stored in the BB field:
// min x, min y, min z, max x, max y, max z.
type BoundingBox [6]int

// ParseBoundingBox reads the BB entry of a structure start. Recent worlds store it as
// an IntArray, older ones as a list of Int.
//
// Returns:
//   - BoundingBox: Parsed box
//   - error: errs.ErrMissingField if there is no BB entry, errs.ErrTypeMismatch if it is
//     not a list of six integers
func ParseBoundingBox(start *nbt.Compound) (BoundingBox, error) {
	v, ok := start.Get("BB")
	if !ok {
		return BoundingBox{}, fmt.Errorf("%w: %q", errs.ErrMissingField, "BB")
	}

	ints, ok := nbt.AsInts(v)
	if !ok || len(ints) < 6 {
		return BoundingBox{}, fmt.Errorf("%w: BB is %s with %d values", errs.ErrTypeMismatch, v.Type(), len(ints))
	}

	var bb BoundingBox
	for i := range bb {
		bb[i] = int(ints[i])
	}

	return bb, nil
}

// Midpoint returns the centre of the box, truncated toward zero.
func (bb BoundingBox) Midpoint() (x, y, z int) {
	return (bb[0] + bb[3]) / 2, (bb[1] + bb[4]) / 2, (bb[2] + bb[5]) / 2
}

// TopCorners returns the four horizontal corners of the box at its highest y.
func (bb BoundingBox) TopCorners() [4][3]int {
	y := max(bb[1], bb[4])

	return [4][3]int{
		{bb[0], y, bb[2]},
		{bb[0], y, bb[5]},
		{bb[3], y, bb[2]},
		{bb[3], y, bb[5]},
	}
}

// Waypoints applies rule to a bounding box.
func (r Rule) Waypoints(tmpl Template, bb BoundingBox, dims []int) []Waypoint {
	if len(r.Dimensions) > 0 {
		dims = r.Dimensions
	}

	switch r.Kind {
	case KindMidpoint:
		x, y, z := bb.Midpoint()
		return []Waypoint{NewWaypoint(tmpl, r.Name, x, y, z, dims)}
	case KindCorners:
		corners := bb.TopCorners()
		out := make([]Waypoint, 0, len(corners))
		for _, c := range corners {
			out = append(out, NewWaypoint(tmpl, r.Name, c[0], c[1], c[2], dims))
		}

		return out
	default:
		return nil
	}
}
