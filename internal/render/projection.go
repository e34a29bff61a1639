package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/rovplot/internal/figure"
)

// View is the camera for the static projection. Angles are in degrees and
// follow the usual 3D-axes convention: elevation above the X-Y plane and
// azimuth about the Z axis.
type View struct {
	Elevation float64
	Azimuth   float64
	Width     vg.Length
	Height    vg.Length
}

// DefaultView looks down 30° from an azimuth of -60°.
func DefaultView() View {
	return View{Elevation: 30, Azimuth: -60, Width: 8 * vg.Inch, Height: 7 * vg.Inch}
}

// PNG writes a static image of fig as seen from v.
func PNG(w io.Writer, fig *figure.Figure, v View) error {
	p, err := Projection(fig, v)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(v.Width, v.Height, "png")
	if err != nil {
		return fmt.Errorf("png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// Projection builds the gonum plot: every group projected orthographically
// through v, plus the three axis edges of the data's bounding box.
func Projection(fig *figure.Figure, v View) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Title
	p.HideAxes()

	lo, hi, ok := figure.Bounds(fig)
	if !ok {
		hi = figure.Point{X: 1, Y: 1, Z: 1}
	}
	cam := newCamera(v, lo, hi)

	if err := addAxisEdges(p, cam, fig); err != nil {
		return nil, err
	}

	for _, g := range fig.Groups {
		valid := g.ValidPoints()
		if len(valid) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(valid))
		for i, pt := range valid {
			xys[i].X, xys[i].Y = cam.project(cam.unit(pt))
		}

		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g.Label, err)
		}
		s.GlyphStyle.Color = ParseColor(g.Style.Color)
		s.GlyphStyle.Shape = glyph(g.Style.Symbol)
		s.GlyphStyle.Radius = vg.Points(math.Max(g.Style.Size, 1) / 2)
		p.Add(s)
		if fig.ShowLegend {
			p.Legend.Add(g.Label, s)
		}
	}
	return p, nil
}

func addAxisEdges(p *plot.Plot, cam camera, fig *figure.Figure) error {
	origin := [3]float64{0, 0, 0}
	ox, oy := cam.project(origin)
	ends := [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	names := []string{fig.XLabel, fig.YLabel, fig.ZLabel}

	labels := plotter.XYLabels{XYs: make(plotter.XYs, len(ends)), Labels: names}
	for i, end := range ends {
		ex, ey := cam.project(end)
		edge, err := plotter.NewLine(plotter.XYs{{X: ox, Y: oy}, {X: ex, Y: ey}})
		if err != nil {
			return fmt.Errorf("axis edge: %w", err)
		}
		edge.Color = color.Gray{Y: 128}
		edge.Width = vg.Points(0.75)
		p.Add(edge)
		labels.XYs[i] = plotter.XY{X: ex, Y: ey}
	}

	l, err := plotter.NewLabels(labels)
	if err != nil {
		return fmt.Errorf("axis labels: %w", err)
	}
	p.Add(l)
	return nil
}

// camera maps data into the unit cube spanned by the bounding box and then
// onto the screen plane with a 2x3 rotation.
type camera struct {
	rot  *mat.Dense
	lo   [3]float64
	span [3]float64
}

func newCamera(v View, lo, hi figure.Point) camera {
	el := v.Elevation * math.Pi / 180
	az := v.Azimuth * math.Pi / 180
	rot := mat.NewDense(2, 3, []float64{
		-math.Sin(az), math.Cos(az), 0,
		-math.Sin(el) * math.Cos(az), -math.Sin(el) * math.Sin(az), math.Cos(el),
	})

	c := camera{rot: rot, lo: [3]float64{lo.X, lo.Y, lo.Z}}
	for i, d := range [3]float64{hi.X - lo.X, hi.Y - lo.Y, hi.Z - lo.Z} {
		if d <= 0 {
			d = 1
		}
		c.span[i] = d
	}
	return c
}

func (c camera) unit(p figure.Point) [3]float64 {
	v := [3]float64{p.X, p.Y, p.Z}
	for i := range v {
		v[i] = (v[i] - c.lo[i]) / c.span[i]
	}
	return v
}

func (c camera) project(u [3]float64) (x, y float64) {
	var out mat.VecDense
	out.MulVec(c.rot, mat.NewVecDense(3, u[:]))
	return out.AtVec(0), out.AtVec(1)
}

func glyph(s figure.Symbol) draw.GlyphDrawer {
	switch s {
	case figure.SymbolTriangle:
		return draw.TriangleGlyph{}
	case figure.SymbolRect:
		return draw.BoxGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}

// ParseColor accepts an SVG colour name or #rgb/#rrggbb. Unknown values
// fall back to black.
func ParseColor(s string) color.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c
	}
	hex := strings.TrimPrefix(s, "#")
	if hex == s {
		return color.Black
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
