// Package testutil provides shared test utilities and fixtures.
//
// Most helpers build synthetic motion-capture TSV exports: a block of
// metadata lines, a header row and data rows whose cells hold sentinel
// values that encode their own row and column, so tests can assert that a
// value travelled through loading and extraction untouched.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// MetadataLines is the number of leading lines the rig's exporter writes
// before the header row.
const MetadataLines = 12

// CaptureColumns is the column count of a full export row (vehicle plus
// 14 markers, up to column 84 inclusive).
const CaptureColumns = 85

var metadataKeys = []string{
	"NO_OF_FRAMES", "NO_OF_CAMERAS", "NO_OF_MARKERS", "FREQUENCY",
	"NO_OF_ANALOG", "ANALOG_FREQUENCY", "DESCRIPTION", "TIME_STAMP",
	"DATA_INCLUDED", "MARKER_NAMES", "TRAJECTORY_TYPES", "EVENT",
}

// Metadata returns n metadata lines in the exporter's KEY<TAB>value form.
func Metadata(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		key := metadataKeys[i%len(metadataKeys)]
		lines[i] = fmt.Sprintf("%s\t%d", key, i)
	}
	return lines
}

// Header returns numCols column names. The first five follow the exporter's
// frame/time/vehicle naming; the rest are generic.
func Header(numCols int) []string {
	base := []string{"Frame", "Time", "BlueROV X", "BlueROV Y", "BlueROV Z"}
	header := make([]string, numCols)
	for i := range header {
		if i < len(base) {
			header[i] = base[i]
			continue
		}
		header[i] = fmt.Sprintf("Col %d", i)
	}
	return header
}

// SentinelValue is the value stored at (row, col) by SentinelRow.
func SentinelValue(row, col int) float64 {
	return float64(row)*1000 + float64(col) + 0.5
}

// SentinelRow returns the data row at index row with numCols sentinel cells.
func SentinelRow(row, numCols int) []string {
	cells := make([]string, numCols)
	for col := range cells {
		cells[col] = strconv.FormatFloat(SentinelValue(row, col), 'f', -1, 64)
	}
	return cells
}

// SentinelRows returns n consecutive sentinel rows starting at index 0.
func SentinelRows(n, numCols int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = SentinelRow(i, numCols)
	}
	return rows
}

// CaptureTSV assembles a capture export from metadata lines, a header and rows.
func CaptureTSV(metadata []string, header []string, rows [][]string) []byte {
	var b strings.Builder
	for _, line := range metadata {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if header != nil {
		b.WriteString(strings.Join(header, "\t"))
		b.WriteByte('\n')
	}
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// SyntheticCapture returns a full export with dataRows sentinel rows.
func SyntheticCapture(dataRows int) []byte {
	return CaptureTSV(Metadata(MetadataLines), Header(CaptureColumns), SentinelRows(dataRows, CaptureColumns))
}

// WriteCapture writes data to name inside a fresh temp dir and returns the path.
func WriteCapture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write capture fixture: %v", err)
	}
	return path
}

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
