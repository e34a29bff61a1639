package figure

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GroupSummary describes the valid points of one group.
type GroupSummary struct {
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Points   int    `json:"points"`
	Skipped  int    `json:"skipped"`
	Centroid Point  `json:"centroid"`
	Min      Point  `json:"min"`
	Max      Point  `json:"max"`
}

// Summarize returns one summary per group, in group order. Groups with no
// valid points report zero centroid and bounds.
func Summarize(f *Figure) []GroupSummary {
	out := make([]GroupSummary, 0, len(f.Groups))
	for _, g := range f.Groups {
		valid := g.ValidPoints()
		s := GroupSummary{
			Label:   g.Label,
			Kind:    g.Kind.String(),
			Points:  len(valid),
			Skipped: len(g.Points) - len(valid),
		}
		if len(valid) > 0 {
			xs, ys, zs := axes(valid)
			s.Centroid = Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil), Z: stat.Mean(zs, nil)}
			s.Min = Point{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)}
			s.Max = Point{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)}
		}
		out = append(out, s)
	}
	return out
}

// Bounds returns the axis-aligned box around every valid point of f.
// ok is false when f has no valid points.
func Bounds(f *Figure) (lo, hi Point, ok bool) {
	var all []Point
	for _, g := range f.Groups {
		all = append(all, g.ValidPoints()...)
	}
	if len(all) == 0 {
		return Point{}, Point{}, false
	}
	xs, ys, zs := axes(all)
	lo = Point{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)}
	hi = Point{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)}
	return lo, hi, true
}

func axes(points []Point) (xs, ys, zs []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	zs = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	return xs, ys, zs
}
