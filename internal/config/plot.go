// Package config loads the optional rovplot JSON configuration.
//
// Every field is a pointer so that a partial file only overrides what it
// names; the Get* methods supply the defaults for everything else.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/rovplot/internal/fsutil"
)

// DefaultConfigPath is the path to the checked-in defaults file.
const DefaultConfigPath = "config/rovplot.defaults.json"

// PlotConfig is the root configuration.
type PlotConfig struct {
	// Input
	File       *string `json:"file,omitempty"`
	SkipLines  *int    `json:"skip_lines,omitempty"`
	LoadStride *int    `json:"load_stride,omitempty"`

	// Column layout
	VehicleColumn       *int    `json:"vehicle_column,omitempty"`
	VehicleName         *string `json:"vehicle_name,omitempty"`
	FirstMarkerColumn   *int    `json:"first_marker_column,omitempty"`
	MarkerColumnSpacing *int    `json:"marker_column_spacing,omitempty"`
	MarkerCount         *int    `json:"marker_count,omitempty"`

	// Plot
	MaxPoints     *int     `json:"max_points,omitempty"`
	Interval      *int     `json:"interval,omitempty"`
	Title         *string  `json:"title,omitempty"`
	ShowLegend    *bool    `json:"show_legend,omitempty"`
	MarkerColor   *string  `json:"marker_color,omitempty"`
	MarkerSymbol  *string  `json:"marker_symbol,omitempty"`
	MarkerSize    *float64 `json:"marker_size,omitempty"`
	VehicleColor  *string  `json:"vehicle_color,omitempty"`
	VehicleSymbol *string  `json:"vehicle_symbol,omitempty"`
	VehicleSize   *float64 `json:"vehicle_size,omitempty"`

	// Static projection camera, degrees
	ViewElevation *float64 `json:"view_elevation,omitempty"`
	ViewAzimuth   *float64 `json:"view_azimuth,omitempty"`

	// Viewer
	Listen *string `json:"listen,omitempty"`
}

// EmptyPlotConfig returns a PlotConfig with all fields unset, so every
// getter returns its default.
func EmptyPlotConfig() *PlotConfig {
	return &PlotConfig{}
}

// LoadPlotConfig loads a PlotConfig from a JSON file on fsys (the OS
// filesystem when nil). The file must have a .json extension and be under 1MB.
func LoadPlotConfig(fsys fsutil.FileSystem, path string) (*PlotConfig, error) {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPlotConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root. Panics if the file
// cannot be loaded; intended for test setup.
func MustLoadDefaultConfig() *PlotConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	}
	fsys := fsutil.OSFileSystem{}
	for _, path := range candidates {
		if !fsys.Exists(path) {
			continue
		}
		if cfg, err := LoadPlotConfig(fsys, path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the fields that are set.
func (c *PlotConfig) Validate() error {
	if c.SkipLines != nil && *c.SkipLines < 0 {
		return fmt.Errorf("skip_lines must be non-negative, got %d", *c.SkipLines)
	}
	if c.LoadStride != nil && *c.LoadStride < 1 {
		return fmt.Errorf("load_stride must be at least 1, got %d", *c.LoadStride)
	}
	if c.Interval != nil && *c.Interval < 1 {
		return fmt.Errorf("interval must be at least 1, got %d", *c.Interval)
	}
	if c.MaxPoints != nil && *c.MaxPoints < 0 {
		return fmt.Errorf("max_points must be non-negative, got %d", *c.MaxPoints)
	}
	if c.VehicleColumn != nil && *c.VehicleColumn < 0 {
		return fmt.Errorf("vehicle_column must be non-negative, got %d", *c.VehicleColumn)
	}
	if c.FirstMarkerColumn != nil && *c.FirstMarkerColumn < 0 {
		return fmt.Errorf("first_marker_column must be non-negative, got %d", *c.FirstMarkerColumn)
	}
	if c.MarkerColumnSpacing != nil && *c.MarkerColumnSpacing < 3 {
		return fmt.Errorf("marker_column_spacing must be at least 3, got %d", *c.MarkerColumnSpacing)
	}
	if c.MarkerCount != nil && *c.MarkerCount < 1 {
		return fmt.Errorf("marker_count must be at least 1, got %d", *c.MarkerCount)
	}
	if c.ViewElevation != nil && (*c.ViewElevation < -90 || *c.ViewElevation > 90) {
		return fmt.Errorf("view_elevation must be between -90 and 90, got %f", *c.ViewElevation)
	}
	return nil
}

// GetFile returns the input path or the default.
func (c *PlotConfig) GetFile() string {
	if c.File == nil || *c.File == "" {
		return "circle.tsv"
	}
	return *c.File
}

// GetSkipLines returns the skip_lines value or the default.
func (c *PlotConfig) GetSkipLines() int {
	if c.SkipLines == nil {
		return 12
	}
	return *c.SkipLines
}

// GetLoadStride returns the load_stride value or the default.
func (c *PlotConfig) GetLoadStride() int {
	if c.LoadStride == nil {
		return 10
	}
	return *c.LoadStride
}

// GetVehicleColumn returns the vehicle_column value or the default.
func (c *PlotConfig) GetVehicleColumn() int {
	if c.VehicleColumn == nil {
		return 2
	}
	return *c.VehicleColumn
}

// GetVehicleName returns the vehicle_name value or the default.
func (c *PlotConfig) GetVehicleName() string {
	if c.VehicleName == nil || *c.VehicleName == "" {
		return "BlueROV Position"
	}
	return *c.VehicleName
}

// GetFirstMarkerColumn returns the first_marker_column value or the default.
func (c *PlotConfig) GetFirstMarkerColumn() int {
	if c.FirstMarkerColumn == nil {
		return 30
	}
	return *c.FirstMarkerColumn
}

// GetMarkerColumnSpacing returns the marker_column_spacing value or the default.
func (c *PlotConfig) GetMarkerColumnSpacing() int {
	if c.MarkerColumnSpacing == nil {
		return 4
	}
	return *c.MarkerColumnSpacing
}

// GetMarkerCount returns the marker_count value or the default.
func (c *PlotConfig) GetMarkerCount() int {
	if c.MarkerCount == nil {
		return 14
	}
	return *c.MarkerCount
}

// GetMaxPoints returns the max_points value or the program default of 500.
func (c *PlotConfig) GetMaxPoints() int {
	if c.MaxPoints == nil {
		return 500
	}
	return *c.MaxPoints
}

// GetInterval returns the interval value or the default.
func (c *PlotConfig) GetInterval() int {
	if c.Interval == nil {
		return 50
	}
	return *c.Interval
}

// GetTitle returns the title value or the default.
func (c *PlotConfig) GetTitle() string {
	if c.Title == nil || *c.Title == "" {
		return "3D Plot of Multiple Markers and BlueROV Positions"
	}
	return *c.Title
}

// GetShowLegend returns the show_legend value or the default.
func (c *PlotConfig) GetShowLegend() bool {
	if c.ShowLegend == nil {
		return false
	}
	return *c.ShowLegend
}

// GetMarkerColor returns the marker_color value or the default.
func (c *PlotConfig) GetMarkerColor() string {
	if c.MarkerColor == nil || *c.MarkerColor == "" {
		return "black"
	}
	return *c.MarkerColor
}

// GetMarkerSymbol returns the marker_symbol value or the default.
func (c *PlotConfig) GetMarkerSymbol() string {
	if c.MarkerSymbol == nil || *c.MarkerSymbol == "" {
		return "circle"
	}
	return *c.MarkerSymbol
}

// GetMarkerSize returns the marker_size value or the default.
func (c *PlotConfig) GetMarkerSize() float64 {
	if c.MarkerSize == nil {
		return 5
	}
	return *c.MarkerSize
}

// GetVehicleColor returns the vehicle_color value or the default.
func (c *PlotConfig) GetVehicleColor() string {
	if c.VehicleColor == nil || *c.VehicleColor == "" {
		return "blue"
	}
	return *c.VehicleColor
}

// GetVehicleSymbol returns the vehicle_symbol value or the default.
func (c *PlotConfig) GetVehicleSymbol() string {
	if c.VehicleSymbol == nil || *c.VehicleSymbol == "" {
		return "triangle"
	}
	return *c.VehicleSymbol
}

// GetVehicleSize returns the vehicle_size value or the default.
func (c *PlotConfig) GetVehicleSize() float64 {
	if c.VehicleSize == nil {
		return 10
	}
	return *c.VehicleSize
}

// GetViewElevation returns the view_elevation value or the default.
func (c *PlotConfig) GetViewElevation() float64 {
	if c.ViewElevation == nil {
		return 30
	}
	return *c.ViewElevation
}

// GetViewAzimuth returns the view_azimuth value or the default.
func (c *PlotConfig) GetViewAzimuth() float64 {
	if c.ViewAzimuth == nil {
		return -60
	}
	return *c.ViewAzimuth
}

// GetListen returns the viewer listen address. An explicit empty string
// disables the viewer.
func (c *PlotConfig) GetListen() string {
	if c.Listen == nil {
		return "localhost:8080"
	}
	return *c.Listen
}
