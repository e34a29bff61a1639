// Package layout describes where coordinates live in a motion-capture row.
//
// Capture files carry no usable column names, so every coordinate is
// addressed by position. A Layout names each X/Y/Z column triple once so
// the marker pattern is data rather than repeated literals.
package layout

import "fmt"

// Default column positions for the rig's TSV export.
const (
	VehicleColumn        = 2
	FirstMarkerColumn    = 30
	MarkerColumnSpacing  = 4
	MarkerCount          = 14
	VehicleName          = "BlueROV Position"
	markerNameFormat     = "Marker %d"
	coordinatesPerTriple = 3
)

// Triple maps a named point to the 0-indexed columns holding its X, Y and Z.
type Triple struct {
	Name string
	X    int
	Y    int
	Z    int
}

// Columns returns the triple's column indices in X, Y, Z order.
func (t Triple) Columns() [3]int {
	return [3]int{t.X, t.Y, t.Z}
}

// Consecutive returns a triple whose X/Y/Z occupy first, first+1, first+2.
func Consecutive(name string, first int) Triple {
	return Triple{Name: name, X: first, Y: first + 1, Z: first + 2}
}

// Layout is the full column schema: one vehicle triple plus the marker triples
// in plotting order.
type Layout struct {
	Vehicle Triple
	Markers []Triple
}

// MarkerTriples generates count consecutive triples starting at first, each
// offset by spacing columns from the previous. Names are "Marker 1".."Marker n".
func MarkerTriples(first, spacing, count int) []Triple {
	if count <= 0 {
		return nil
	}
	markers := make([]Triple, count)
	for i := range markers {
		markers[i] = Consecutive(fmt.Sprintf(markerNameFormat, i+1), first+i*spacing)
	}
	return markers
}

// Default returns the layout of the rig's export: the vehicle at columns 2-4
// and 14 markers at (30,31,32), (34,35,36) ... (82,83,84).
func Default() Layout {
	return Layout{
		Vehicle: Consecutive(VehicleName, VehicleColumn),
		Markers: MarkerTriples(FirstMarkerColumn, MarkerColumnSpacing, MarkerCount),
	}
}

// MaxColumn returns the highest column index referenced by the layout.
func (l Layout) MaxColumn() int {
	highest := -1
	for _, t := range l.triples() {
		for _, c := range t.Columns() {
			if c > highest {
				highest = c
			}
		}
	}
	return highest
}

// Validate rejects negative columns, unnamed triples and columns claimed twice.
func (l Layout) Validate() error {
	if len(l.Markers) == 0 {
		return fmt.Errorf("layout has no marker triples")
	}
	owner := make(map[int]string, (len(l.Markers)+1)*coordinatesPerTriple)
	for _, t := range l.triples() {
		if t.Name == "" {
			return fmt.Errorf("triple at columns %v has no name", t.Columns())
		}
		for _, c := range t.Columns() {
			if c < 0 {
				return fmt.Errorf("%s: negative column %d", t.Name, c)
			}
			if prev, ok := owner[c]; ok {
				return fmt.Errorf("%s: column %d already used by %s", t.Name, c, prev)
			}
			owner[c] = t.Name
		}
	}
	return nil
}

func (l Layout) triples() []Triple {
	all := make([]Triple, 0, len(l.Markers)+1)
	all = append(all, l.Markers...)
	return append(all, l.Vehicle)
}
