// Package figure turns a loaded capture Table into a renderer-neutral 3D
// scatter description: one point group per marker plus one for the vehicle.
//
// Preparation truncates the table to MaxPoints rows, keeps every Interval-th
// row of what remains and copies the layout's columns out verbatim. No
// scaling, filtering or validation is applied to the coordinates; cells that
// are missing or non-numeric arrive as NaN and renderers skip them.
package figure

import (
	"fmt"
	"math"

	"github.com/banshee-data/rovplot/internal/capture"
	"github.com/banshee-data/rovplot/internal/layout"
	"github.com/banshee-data/rovplot/internal/monitoring"
)

const (
	// DefaultMaxPoints caps the rows considered for plotting.
	DefaultMaxPoints = 3000
	// DefaultInterval keeps one row in fifty of the truncated table.
	DefaultInterval = 50
	// DefaultTitle is the figure title.
	DefaultTitle = "3D Plot of Multiple Markers and BlueROV Positions"
)

// Kind distinguishes marker groups from the vehicle group.
type Kind int

const (
	KindMarker Kind = iota
	KindVehicle
)

func (k Kind) String() string {
	switch k {
	case KindMarker:
		return "marker"
	case KindVehicle:
		return "vehicle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Symbol is the glyph drawn for each point of a group.
type Symbol string

const (
	SymbolCircle   Symbol = "circle"
	SymbolTriangle Symbol = "triangle"
	SymbolRect     Symbol = "rect"
)

// ParseSymbol maps a configured glyph name to a Symbol.
func ParseSymbol(name string) (Symbol, error) {
	switch s := Symbol(name); s {
	case SymbolCircle, SymbolTriangle, SymbolRect:
		return s, nil
	default:
		return "", fmt.Errorf("unknown symbol %q (want circle, triangle or rect)", name)
	}
}

// Style is how a group is drawn. Color is a CSS colour name or #rrggbb.
type Style struct {
	Color  string
	Symbol Symbol
	Size   float64
}

// DefaultMarkerStyle draws markers as small black circles.
func DefaultMarkerStyle() Style {
	return Style{Color: "black", Symbol: SymbolCircle, Size: 5}
}

// DefaultVehicleStyle draws the vehicle as larger blue triangles.
func DefaultVehicleStyle() Style {
	return Style{Color: "blue", Symbol: SymbolTriangle, Size: 10}
}

// Point is one 3D sample.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Valid reports whether every coordinate is finite.
func (p Point) Valid() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Group is one plotted series.
type Group struct {
	Label  string
	Kind   Kind
	Style  Style
	Points []Point
}

// ValidPoints returns the points with finite coordinates.
func (g Group) ValidPoints() []Point {
	out := make([]Point, 0, len(g.Points))
	for _, p := range g.Points {
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

// Figure is a complete, renderer-neutral 3D scatter plot.
type Figure struct {
	Title      string
	XLabel     string
	YLabel     string
	ZLabel     string
	ShowLegend bool
	// Rows is the number of table rows that survived truncation and subsampling.
	Rows   int
	Groups []Group
}

// Options controls preparation.
type Options struct {
	MaxPoints    int
	Interval     int
	Title        string
	MarkerStyle  Style
	VehicleStyle Style
	// ShowLegend is off by default; labels are still attached to every group.
	ShowLegend bool
}

// DefaultOptions returns the standard plotting options.
func DefaultOptions() Options {
	return Options{
		MaxPoints:    DefaultMaxPoints,
		Interval:     DefaultInterval,
		Title:        DefaultTitle,
		MarkerStyle:  DefaultMarkerStyle(),
		VehicleStyle: DefaultVehicleStyle(),
	}
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.MaxPoints < 0 {
		return fmt.Errorf("max points must be non-negative, got %d", o.MaxPoints)
	}
	if o.Interval < 1 {
		return fmt.Errorf("interval must be at least 1, got %d", o.Interval)
	}
	return nil
}

// Prepare builds the figure for t using the column layout l.
func Prepare(t *capture.Table, l layout.Layout, o Options) (*Figure, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("no table to plot")
	}
	if need := l.MaxColumn() + 1; t.NumColumns() < need {
		return nil, fmt.Errorf("table has %d columns, layout needs %d", t.NumColumns(), need)
	}

	sampled := t.Head(o.MaxPoints).Every(o.Interval)

	fig := &Figure{
		Title:      o.Title,
		XLabel:     "X Position",
		YLabel:     "Y Position",
		ZLabel:     "Z Position",
		ShowLegend: o.ShowLegend,
		Rows:       sampled.Len(),
		Groups:     make([]Group, 0, len(l.Markers)+1),
	}
	for _, m := range l.Markers {
		fig.Groups = append(fig.Groups, Group{
			Label:  m.Name,
			Kind:   KindMarker,
			Style:  o.MarkerStyle,
			Points: Extract(sampled, m),
		})
	}
	fig.Groups = append(fig.Groups, Group{
		Label:  l.Vehicle.Name,
		Kind:   KindVehicle,
		Style:  o.VehicleStyle,
		Points: Extract(sampled, l.Vehicle),
	})

	monitoring.Debugf("prepared %d groups from %d of %d rows (max %d, interval %d)",
		len(fig.Groups), fig.Rows, t.Len(), o.MaxPoints, o.Interval)
	return fig, nil
}

// Extract reads triple's columns from every row of t, in row order.
func Extract(t *capture.Table, triple layout.Triple) []Point {
	points := make([]Point, t.Len())
	for i := range points {
		points[i] = Point{
			X: t.Float(i, triple.X),
			Y: t.Float(i, triple.Y),
			Z: t.Float(i, triple.Z),
		}
	}
	return points
}

// Lookup returns the group labelled label, if any.
func (f *Figure) Lookup(label string) (Group, bool) {
	for _, g := range f.Groups {
		if g.Label == label {
			return g, true
		}
	}
	return Group{}, false
}
