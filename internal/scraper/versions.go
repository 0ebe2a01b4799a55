package scraper

import (
	"context"
	"errors"
	"regexp"

	"github.com/brogergvhs/docscrape/internal/htmlutil"
	"github.com/brogergvhs/docscrape/internal/results"
)

const allVersionsMarker = "All versions"

var versionRe = regexp.MustCompile(`Python (?P<version>\d\.\d+) \((?P<status>.*)\)`)

// ParseVersionLink splits "Python 3.10 (stable)" into "3.10" and "stable".
// Text that does not match is returned whole as the version.
func ParseVersionLink(text string) (version, status string) {
	m := versionRe.FindStringSubmatch(text)
	if m == nil {
		return text, ""
	}

	return m[versionRe.SubexpIndex("version")], m[versionRe.SubexpIndex("status")]
}

// LatestVersions lists the documentation versions from the sidebar.
func (s *Scraper) LatestVersions(ctx context.Context) (*results.Table, error) {
	page := s.fetch.Get(ctx, s.cfg.DocsURL)
	if !page.OK() {
		return nil, nil
	}

	sidebar, err := htmlutil.FindTag(page.Doc.Selection, "div", htmlutil.Attr("class", "sphinxsidebarwrapper"))
	if err != nil {
		return nil, err
	}

	ul, err := htmlutil.FindTag(sidebar, "ul", htmlutil.TextContains(allVersionsMarker))
	if errors.Is(err, htmlutil.ErrTagNotFound) {
		return nil, &htmlutil.EmptyResponseError{Marker: allVersionsMarker}
	}
	if err != nil {
		return nil, err
	}

	table := results.New("Documentation link", "Version", "Status")
	for _, a := range nodes(ul.Find("a")) {
		link, _ := a.Attr("href")
		version, status := ParseVersionLink(htmlutil.Text(a))

		if err := table.Append(link, version, status); err != nil {
			return nil, err
		}
	}

	return table, nil
}
