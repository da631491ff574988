// Package export writes match history, MMR history and timelines to CSV
// or JSON for use outside the app.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kwpid/HighCard-V2/internal/storage/models"
)

// Format represents the export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Options holds configuration for file export operations.
type Options struct {
	Format     Format
	FilePath   string
	PrettyJSON bool
	Overwrite  bool
}

// Exporter writes export payloads to a file per its options.
type Exporter struct {
	opts Options
}

// NewExporter creates a new Exporter with the given options.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// ExportMatches writes the match history to the configured file.
func (e *Exporter) ExportMatches(matches []*models.Match) error {
	return e.write(func(w io.Writer) error {
		return WriteMatches(w, matches, e.opts.Format, e.opts.PrettyJSON)
	})
}

// ExportMMRHistory writes rating history points to the configured file.
func (e *Exporter) ExportMMRHistory(entries []*models.MMRHistoryEntry) error {
	return e.write(func(w io.Writer) error {
		return WriteMMRHistory(w, entries, e.opts.Format, e.opts.PrettyJSON)
	})
}

func (e *Exporter) write(fn func(io.Writer) error) error {
	if e.opts.FilePath == "" {
		return fmt.Errorf("no file path configured")
	}

	if !e.opts.Overwrite {
		if _, err := os.Stat(e.opts.FilePath); err == nil {
			return fmt.Errorf("file already exists: %s", e.opts.FilePath)
		}
	}

	if dir := filepath.Dir(e.opts.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(e.opts.FilePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return fn(f)
}

func writeJSON(w io.Writer, data any, pretty bool) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}
