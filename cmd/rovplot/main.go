// Command rovplot plots a motion-capture TSV export as a 3D scatter of the
// rig's optical markers and the BlueROV's position.
//
// Usage:
//
//	go run ./cmd/rovplot [flags]
//
// With no flags it reads circle.tsv from the working directory, plots at
// most 500 rows and serves the figure on localhost:8080 until interrupted.
//
// Flags:
//
//	-file        Capture file (default: circle.tsv)
//	-config      JSON config file (see config/rovplot.defaults.json)
//	-max-points  Rows considered for plotting (default: 500)
//	-listen      Viewer address; empty disables the viewer (default: localhost:8080)
//	-html        Also write the interactive figure to this path
//	-png         Also write a static projection to this path
//	-v           Verbose diagnostics
//	-version     Print version and exit
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/rovplot/internal/capture"
	"github.com/banshee-data/rovplot/internal/config"
	"github.com/banshee-data/rovplot/internal/figure"
	"github.com/banshee-data/rovplot/internal/fsutil"
	"github.com/banshee-data/rovplot/internal/layout"
	"github.com/banshee-data/rovplot/internal/monitoring"
	"github.com/banshee-data/rovplot/internal/render"
	"github.com/banshee-data/rovplot/internal/security"
	"github.com/banshee-data/rovplot/internal/version"
	"github.com/banshee-data/rovplot/internal/viewer"
)

// outputs are the optional files written alongside (or instead of) the viewer.
type outputs struct {
	HTML string
	PNG  string
}

func main() {
	configPath := flag.String("config", "", "JSON config file (optional)")
	file := flag.String("file", "circle.tsv", "Capture TSV file to plot")
	maxPoints := flag.Int("max-points", 500, "Rows considered for plotting before subsampling")
	listen := flag.String("listen", "localhost:8080", "Viewer listen address; empty disables the viewer")
	htmlOut := flag.String("html", "", "Write the interactive figure to this path")
	pngOut := flag.String("png", "", "Write a static projection to this path")
	verbose := flag.Bool("v", false, "Verbose diagnostics")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	monitoring.SetVerbose(*verbose)

	cfg := config.EmptyPlotConfig()
	if *configPath != "" {
		loaded, err := config.LoadPlotConfig(fsutil.OSFileSystem{}, *configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
		log.Printf("Loaded config from %s", *configPath)
	}

	// Flags given explicitly on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.File = file
		case "max-points":
			cfg.MaxPoints = maxPoints
		case "listen":
			cfg.Listen = listen
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	for _, p := range []string{*htmlOut, *pngOut} {
		if p == "" {
			continue
		}
		if err := security.ValidateOutputPath(p); err != nil {
			log.Fatalf("Invalid output path: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, outputs{HTML: *htmlOut, PNG: *pngOut}, fsutil.OSFileSystem{}); err != nil {
		log.Fatalf("rovplot: %v", err)
	}
}

// run loads the capture, prepares the figure, writes any requested files and
// then serves the figure until ctx is done. An export with no data rows is
// reported and skipped without error.
func run(ctx context.Context, cfg *config.PlotConfig, out outputs, fsys fsutil.FileSystem) error {
	loader := capture.NewLoader(fsys, capture.Options{
		SkipLines: cfg.GetSkipLines(),
		Stride:    cfg.GetLoadStride(),
	})

	path := cfg.GetFile()
	table, err := loader.Load(path)
	if errors.Is(err, capture.ErrNoData) {
		log.Printf("Nothing to plot in %s", path)
		return nil
	}
	if err != nil {
		return err
	}

	opts, err := figureOptions(cfg)
	if err != nil {
		return err
	}
	fig, err := figure.Prepare(table, columnLayout(cfg), opts)
	if err != nil {
		return fmt.Errorf("prepare figure: %w", err)
	}
	for _, s := range figure.Summarize(fig) {
		monitoring.Debugf("%s: %d points (%d skipped), centroid (%.3f, %.3f, %.3f)",
			s.Label, s.Points, s.Skipped, s.Centroid.X, s.Centroid.Y, s.Centroid.Z)
	}

	view := render.DefaultView()
	view.Elevation = cfg.GetViewElevation()
	view.Azimuth = cfg.GetViewAzimuth()

	if out.HTML != "" {
		var buf bytes.Buffer
		if err := render.HTML(&buf, fig, render.PageOptions{}); err != nil {
			return err
		}
		if err := fsutil.WriteTo(fsys, out.HTML, &buf); err != nil {
			return err
		}
		log.Printf("Wrote %s", out.HTML)
	}
	if out.PNG != "" {
		var buf bytes.Buffer
		if err := render.PNG(&buf, fig, view); err != nil {
			return err
		}
		if err := fsutil.WriteTo(fsys, out.PNG, &buf); err != nil {
			return err
		}
		log.Printf("Wrote %s", out.PNG)
	}

	addr := cfg.GetListen()
	if addr == "" {
		return nil
	}
	srv := viewer.NewServer(viewer.Config{
		Address: addr,
		Figure:  fig,
		View:    view,
		Source:  path,
	})
	return srv.Start(ctx)
}

func columnLayout(cfg *config.PlotConfig) layout.Layout {
	return layout.Layout{
		Vehicle: layout.Consecutive(cfg.GetVehicleName(), cfg.GetVehicleColumn()),
		Markers: layout.MarkerTriples(cfg.GetFirstMarkerColumn(), cfg.GetMarkerColumnSpacing(), cfg.GetMarkerCount()),
	}
}

func figureOptions(cfg *config.PlotConfig) (figure.Options, error) {
	markerSymbol, err := figure.ParseSymbol(cfg.GetMarkerSymbol())
	if err != nil {
		return figure.Options{}, fmt.Errorf("marker_symbol: %w", err)
	}
	vehicleSymbol, err := figure.ParseSymbol(cfg.GetVehicleSymbol())
	if err != nil {
		return figure.Options{}, fmt.Errorf("vehicle_symbol: %w", err)
	}

	return figure.Options{
		MaxPoints:  cfg.GetMaxPoints(),
		Interval:   cfg.GetInterval(),
		Title:      cfg.GetTitle(),
		ShowLegend: cfg.GetShowLegend(),
		MarkerStyle: figure.Style{
			Color:  cfg.GetMarkerColor(),
			Symbol: markerSymbol,
			Size:   cfg.GetMarkerSize(),
		},
		VehicleStyle: figure.Style{
			Color:  cfg.GetVehicleColor(),
			Symbol: vehicleSymbol,
			Size:   cfg.GetVehicleSize(),
		},
	}, nil
}
