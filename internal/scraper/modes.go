package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/brogergvhs/docscrape/internal/results"
)

type routine func(s *Scraper, ctx context.Context) (*results.Table, error)

var modes = []struct {
	name string
	run  routine
	desc string
}{
	{"whats-new", (*Scraper).WhatsNew, "Collect the \"What's New\" articles"},
	{"latest-versions", (*Scraper).LatestVersions, "List documentation versions and their status"},
	{"download", (*Scraper).Download, "Download the A4 PDF documentation archive"},
	{"pep", (*Scraper).PEP, "Count PEPs by status"},
}

func ModeNames() []string {
	names := make([]string, 0, len(modes))
	for _, m := range modes {
		names = append(names, m.name)
	}
	return names
}

// ModeDescription returns the one-line help for a mode.
func ModeDescription(name string) string {
	for _, m := range modes {
		if m.name == name {
			return m.desc
		}
	}
	return ""
}

// Run dispatches to the routine registered for mode. A nil table means there
// is nothing to output.
func (s *Scraper) Run(ctx context.Context, mode string) (*results.Table, error) {
	for _, m := range modes {
		if m.name == mode {
			return m.run(s, ctx)
		}
	}

	return nil, fmt.Errorf("unknown mode %q (available: %s)", mode, strings.Join(ModeNames(), ", "))
}
