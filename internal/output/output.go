// Package output renders a results.Table in the format chosen with
// --output: plain rows on stdout (default), a pretty table, or a CSV file
// under the results directory.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/brogergvhs/docscrape/internal/results"
	"github.com/brogergvhs/docscrape/internal/ui"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	FormatDefault = ""
	FormatPretty  = "pretty"
	FormatFile    = "file"
)

// Formats lists the values accepted by --output.
func Formats() []string {
	return []string{FormatPretty, FormatFile}
}

// Validate rejects formats Control does not know.
func Validate(format string) error {
	if format == FormatDefault || slices.Contains(Formats(), format) {
		return nil
	}
	return fmt.Errorf("unknown output format %q (available: %s)", format, strings.Join(Formats(), ", "))
}

type Options struct {
	Format string
	// Mode names the CSV file.
	Mode           string
	ResultsDir     string
	DateTimeFormat string

	Out io.Writer
	Log *ui.Logger
	Now func() time.Time
}

// Control writes t according to opts.Format and returns the CSV path for
// the file format.
func Control(t *results.Table, opts Options) (string, error) {
	if t.Empty() {
		return "", nil
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	switch opts.Format {
	case FormatDefault:
		return "", defaultOutput(t, out)
	case FormatPretty:
		prettyOutput(t, out)
		return "", nil
	case FormatFile:
		return fileOutput(t, opts)
	default:
		return "", Validate(opts.Format)
	}
}

func defaultOutput(t *results.Table, out io.Writer) error {
	for _, r := range t.Records() {
		if _, err := fmt.Fprintln(out, strings.Join(r, " ")); err != nil {
			return err
		}
	}
	return nil
}

func prettyOutput(t *results.Table, out io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(toRow(t.Header))

	for _, r := range t.Rows {
		tw.AppendRow(toRow(r))
	}

	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Render()
}

func toRow(r results.Row) table.Row {
	row := make(table.Row, len(r))
	for i, v := range r {
		row[i] = v
	}
	return row
}

func fileOutput(t *results.Table, opts Options) (string, error) {
	if err := os.MkdirAll(opts.ResultsDir, 0755); err != nil {
		return "", err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	layout := opts.DateTimeFormat
	if layout == "" {
		layout = "2006-01-02_15-04-05"
	}

	name := fmt.Sprintf("%s_%s.csv", opts.Mode, now().Format(layout))
	path := filepath.Join(opts.ResultsDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(t.Records()); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", err
	}

	opts.Log.Infof("results file saved: %s", path)
	return path, nil
}
