// Package capture loads motion-capture TSV exports into Tables.
//
// An export starts with a fixed block of metadata lines, followed by a
// header row and tab-separated data rows. The loader skips the metadata
// block by position and thins the rows by a fixed stride.
package capture

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/rovplot/internal/fsutil"
	"github.com/banshee-data/rovplot/internal/monitoring"
)

// ErrNoData reports an export with no data rows after the header. It is the
// only load failure callers are expected to recover from.
var ErrNoData = errors.New("capture: no data")

const (
	// DefaultSkipLines is the number of metadata lines the exporter writes.
	DefaultSkipLines = 12
	// DefaultStride keeps one data row in ten at load time.
	DefaultStride = 10
)

// Options controls how an export is read.
type Options struct {
	// SkipLines physical lines are discarded before the header row,
	// regardless of their content.
	SkipLines int
	// Stride keeps rows 0, Stride, 2*Stride ... of the data rows.
	Stride int
}

// DefaultOptions returns the options matching the rig's exporter.
func DefaultOptions() Options {
	return Options{SkipLines: DefaultSkipLines, Stride: DefaultStride}
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.SkipLines < 0 {
		return fmt.Errorf("skip lines must be non-negative, got %d", o.SkipLines)
	}
	if o.Stride < 1 {
		return fmt.Errorf("stride must be at least 1, got %d", o.Stride)
	}
	return nil
}

// Loader reads exports from a FileSystem.
type Loader struct {
	fs   fsutil.FileSystem
	opts Options
}

// NewLoader creates a loader. A nil fs reads from the OS filesystem.
func NewLoader(fs fsutil.FileSystem, opts Options) *Loader {
	if fs == nil {
		fs = fsutil.OSFileSystem{}
	}
	return &Loader{fs: fs, opts: opts}
}

// Load opens path and reads it with Read. Open failures are returned as-is
// (wrapped); an empty export is logged and reported as ErrNoData.
func (l *Loader) Load(path string) (*Table, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	t, err := l.Read(f)
	if errors.Is(err, ErrNoData) {
		monitoring.Logf("Error reading capture %s: %v", path, err)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("read capture %s: %w", path, err)
	}
	monitoring.Logf("Loaded %d rows x %d columns from %s", t.Len(), t.NumColumns(), path)
	return t, nil
}

// Read parses an export from r.
func (l *Loader) Read(r io.Reader) (*Table, error) {
	if err := l.opts.Validate(); err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	for skipped := 0; skipped < l.opts.SkipLines; skipped++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("skip metadata line %d: %w", skipped+1, err)
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = '\t'
	// Strict quoting: an unterminated quote is a parse error rather than a
	// field that swallows the rest of the file.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no header after %d metadata lines", ErrNoData, l.opts.SkipLines)
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	monitoring.Logf("Columns in the dataset (%d): %s", len(header), strings.Join(header, ", "))

	var rows [][]string
	for index := 0; ; index++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse data row %d: %w", index+1, err)
		}
		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line+l.opts.SkipLines, len(header), len(record))
		}
		if index%l.opts.Stride != 0 {
			continue
		}
		if len(record) < len(header) {
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: header has no data rows", ErrNoData)
	}
	return NewTable(header, rows), nil
}
