package figure

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/rovplot/internal/capture"
	"github.com/banshee-data/rovplot/internal/layout"
	"github.com/banshee-data/rovplot/internal/testutil"
)

func sentinelTable(rows int) *capture.Table {
	return capture.NewTable(testutil.Header(testutil.CaptureColumns), testutil.SentinelRows(rows, testutil.CaptureColumns))
}

func TestPrepare_SingleRowSentinels(t *testing.T) {
	fig, err := Prepare(sentinelTable(1), layout.Default(), DefaultOptions())
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	if len(fig.Groups) != 15 {
		t.Fatalf("expected 15 groups, got %d", len(fig.Groups))
	}

	for i, m := range layout.Default().Markers {
		g := fig.Groups[i]
		if g.Label != m.Name {
			t.Errorf("group %d label = %q, want %q", i, g.Label, m.Name)
		}
		want := []Point{{
			X: testutil.SentinelValue(0, m.X),
			Y: testutil.SentinelValue(0, m.Y),
			Z: testutil.SentinelValue(0, m.Z),
		}}
		if diff := cmp.Diff(want, g.Points); diff != "" {
			t.Errorf("%s points mismatch (-want +got):\n%s", g.Label, diff)
		}
	}

	vehicle := fig.Groups[14]
	want := []Point{{X: 2.5, Y: 3.5, Z: 4.5}}
	if diff := cmp.Diff(want, vehicle.Points); diff != "" {
		t.Errorf("vehicle points mismatch (-want +got):\n%s", diff)
	}
	if vehicle.Kind != KindVehicle || vehicle.Label != "BlueROV Position" {
		t.Errorf("vehicle group = %+v", vehicle)
	}
}

func TestPrepare_Styles(t *testing.T) {
	fig, err := Prepare(sentinelTable(3), layout.Default(), DefaultOptions())
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	marker := fig.Groups[0].Style
	vehicle := fig.Groups[len(fig.Groups)-1].Style
	for _, g := range fig.Groups[:14] {
		if g.Style != marker || g.Kind != KindMarker {
			t.Errorf("%s: marker groups should share one style, got %+v", g.Label, g.Style)
		}
	}
	if marker.Symbol != SymbolCircle || vehicle.Symbol != SymbolTriangle {
		t.Errorf("symbols = %q/%q, want circle/triangle", marker.Symbol, vehicle.Symbol)
	}
	if marker.Color == vehicle.Color {
		t.Errorf("marker and vehicle share colour %q", marker.Color)
	}
	if vehicle.Size <= marker.Size {
		t.Errorf("vehicle size %v should exceed marker size %v", vehicle.Size, marker.Size)
	}
	if fig.ShowLegend {
		t.Error("legend should be hidden by default")
	}
	if fig.Title != DefaultTitle || fig.XLabel != "X Position" || fig.YLabel != "Y Position" || fig.ZLabel != "Z Position" {
		t.Errorf("unexpected labels: %q %q %q %q", fig.Title, fig.XLabel, fig.YLabel, fig.ZLabel)
	}
}

func TestPrepare_RowCounts(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		maxPoints int
		interval  int
		wantRows  int
	}{
		{name: "fewer rows than max", rows: 120, maxPoints: 3000, interval: 50, wantRows: 3},
		{name: "truncated to max", rows: 5000, maxPoints: 3000, interval: 50, wantRows: 60},
		{name: "program default max", rows: 1000, maxPoints: 500, interval: 50, wantRows: 10},
		{name: "partial last block", rows: 1000, maxPoints: 501, interval: 50, wantRows: 11},
		{name: "interval one", rows: 7, maxPoints: 3000, interval: 1, wantRows: 7},
		{name: "zero max", rows: 7, maxPoints: 0, interval: 50, wantRows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.MaxPoints = tt.maxPoints
			opts.Interval = tt.interval

			fig, err := Prepare(sentinelTable(tt.rows), layout.Default(), opts)
			if err != nil {
				t.Fatalf("Prepare failed: %v", err)
			}
			if fig.Rows != tt.wantRows {
				t.Errorf("Rows = %d, want %d", fig.Rows, tt.wantRows)
			}
			for _, g := range fig.Groups {
				if len(g.Points) != tt.wantRows {
					t.Errorf("%s has %d points, want %d", g.Label, len(g.Points), tt.wantRows)
				}
			}
		})
	}
}

func TestPrepare_KeepsEveryIntervalRow(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxPoints = 120

	fig, err := Prepare(sentinelTable(200), layout.Default(), opts)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	vehicle, ok := fig.Lookup("BlueROV Position")
	if !ok {
		t.Fatal("vehicle group missing")
	}
	var gotX []float64
	for _, p := range vehicle.Points {
		gotX = append(gotX, p.X)
	}
	want := []float64{testutil.SentinelValue(0, 2), testutil.SentinelValue(50, 2), testutil.SentinelValue(100, 2)}
	if diff := cmp.Diff(want, gotX); diff != "" {
		t.Errorf("vehicle X mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepare_NonNumericPassesThrough(t *testing.T) {
	rows := testutil.SentinelRows(2, testutil.CaptureColumns)
	rows[0][2] = ""
	rows[0][31] = "NaN"
	rows[0][32] = "occluded"
	table := capture.NewTable(testutil.Header(testutil.CaptureColumns), rows)

	opts := DefaultOptions()
	opts.Interval = 1
	fig, err := Prepare(table, layout.Default(), opts)
	if err != nil {
		t.Fatalf("non-numeric cells should not fail preparation: %v", err)
	}

	vehicle, _ := fig.Lookup("BlueROV Position")
	if !math.IsNaN(vehicle.Points[0].X) || vehicle.Points[0].Valid() {
		t.Errorf("missing vehicle X should be NaN, got %+v", vehicle.Points[0])
	}
	if !vehicle.Points[1].Valid() {
		t.Errorf("second row should be intact, got %+v", vehicle.Points[1])
	}

	marker, _ := fig.Lookup("Marker 1")
	if len(marker.ValidPoints()) != 1 {
		t.Errorf("expected one valid marker point, got %d", len(marker.ValidPoints()))
	}
}

func TestPrepare_Errors(t *testing.T) {
	narrow := capture.NewTable(testutil.Header(40), testutil.SentinelRows(3, 40))

	tests := []struct {
		name    string
		table   *capture.Table
		layout  layout.Layout
		mutate  func(*Options)
		wantErr string
	}{
		{name: "too few columns", table: narrow, layout: layout.Default(), wantErr: "layout needs 85"},
		{name: "nil table", table: nil, layout: layout.Default(), wantErr: "no table"},
		{name: "bad interval", table: sentinelTable(1), layout: layout.Default(), mutate: func(o *Options) { o.Interval = 0 }, wantErr: "interval"},
		{name: "negative max", table: sentinelTable(1), layout: layout.Default(), mutate: func(o *Options) { o.MaxPoints = -1 }, wantErr: "max points"},
		{name: "invalid layout", table: sentinelTable(1), layout: layout.Layout{}, wantErr: "invalid layout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.mutate != nil {
				tt.mutate(&opts)
			}
			_, err := Prepare(tt.table, tt.layout, opts)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindMarker.String() != "marker" || KindVehicle.String() != "vehicle" {
		t.Errorf("unexpected names %q %q", KindMarker, KindVehicle)
	}
	if Kind(7).String() != "Kind(7)" {
		t.Errorf("unknown kind = %q", Kind(7))
	}
}

func TestParseSymbol(t *testing.T) {
	for _, name := range []string{"circle", "triangle", "rect"} {
		got, err := ParseSymbol(name)
		if err != nil || string(got) != name {
			t.Errorf("ParseSymbol(%q) = %q, %v", name, got, err)
		}
	}
	if _, err := ParseSymbol("star"); err == nil {
		t.Error("expected error for unknown symbol")
	}
}
