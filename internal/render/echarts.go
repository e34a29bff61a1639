// Package render draws prepared figures. HTML produces an interactive
// go-echarts 3D scatter page; PNG produces a static projection with gonum/plot.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	"github.com/banshee-data/rovplot/internal/figure"
	"github.com/banshee-data/rovplot/internal/monitoring"
)

// PageOptions sizes the HTML page. Empty fields use the defaults.
type PageOptions struct {
	Width  string
	Height string
	// AssetsHost overrides where echarts.min.js and echarts-gl are loaded from.
	AssetsHost string
}

func (o PageOptions) withDefaults() PageOptions {
	if o.Width == "" {
		o.Width = "1100px"
	}
	if o.Height == "" {
		o.Height = "800px"
	}
	return o
}

// HTML renders fig as a standalone go-echarts page.
func HTML(w io.Writer, fig *figure.Figure, o PageOptions) error {
	if err := Scatter3D(fig, o).Render(w); err != nil {
		return fmt.Errorf("render 3d scatter: %w", err)
	}
	return nil
}

// Scatter3D builds the go-echarts chart for fig: one series per group, with
// the group's colour, symbol and symbol size.
func Scatter3D(fig *figure.Figure, o PageOptions) *charts.Scatter3D {
	o = o.withDefaults()

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  fig.Title,
			Width:      o.Width,
			Height:     o.Height,
			ChartID:    chartID(),
			AssetsHost: o.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title, Subtitle: fmt.Sprintf("rows=%d groups=%d", fig.Rows, len(fig.Groups))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(fig.ShowLegend)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Show: opts.Bool(true), Name: fig.XLabel}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Show: opts.Bool(true), Name: fig.YLabel}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Show: opts.Bool(true), Name: fig.ZLabel}),
	)

	for _, g := range fig.Groups {
		data := seriesData(g)
		if skipped := len(g.Points) - len(data); skipped > 0 {
			monitoring.Debugf("%s: omitted %d points with missing coordinates", g.Label, skipped)
		}
		scatter.AddSeries(g.Label, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: g.Style.Color}),
			withSymbol(g.Style),
		)
	}
	return scatter
}

// seriesData converts the group's valid points. NaN cannot be encoded as
// JSON, so points with a missing coordinate are left out.
func seriesData(g figure.Group) []opts.Chart3DData {
	valid := g.ValidPoints()
	data := make([]opts.Chart3DData, 0, len(valid))
	for _, p := range valid {
		data = append(data, opts.Chart3DData{Value: []interface{}{p.X, p.Y, p.Z}})
	}
	return data
}

func withSymbol(s figure.Style) charts.SeriesOpts {
	return func(series *charts.SingleSeries) {
		series.Symbol = string(s.Symbol)
		if s.Size > 0 {
			series.SymbolSize = s.Size
		}
	}
}

// chartID is used as a JavaScript identifier in the rendered page, so the
// UUID's dashes are dropped.
func chartID() string {
	return "rovplot_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
