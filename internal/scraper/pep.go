package scraper

import (
	"context"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/docscrape/internal/htmlutil"
	"github.com/brogergvhs/docscrape/internal/results"
	"github.com/brogergvhs/docscrape/internal/selection"
	"golang.org/x/net/html"
)

func isStatusTerm(n *html.Node) bool {
	return n.Data == "dt" && strings.Contains(htmlutil.GetText(n), "Status")
}

// PEP visits every PEP in the numerical index and counts the statuses shown
// on their own pages.
func (s *Scraper) PEP(ctx context.Context) (*results.Table, error) {
	page := s.fetch.Get(ctx, s.cfg.PEPURL)
	if !page.OK() {
		return nil, nil
	}

	section, err := htmlutil.FindTag(page.Doc.Selection, "section", htmlutil.Attr("id", "numerical-index"))
	if err != nil {
		return nil, err
	}

	rows := nodes(section.Find("tr"))
	if len(rows) > 0 {
		rows = rows[1:]
	}

	rows, err = selection.Filter(rows, s.Selection.Range, s.Selection.List)
	if err != nil {
		return nil, err
	}

	var observed []string
	seenOn := make(map[string][]string)
	ph := s.pm.Register("pep", len(rows))
	defer ph.MarkDone()

	for _, tr := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		status, pepURL, listed, ok, err := s.pepStatus(ctx, tr)
		ph.Increment()
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		s.checkListedStatus(pepURL, listed, status)
		observed = append(observed, status)
		seenOn[status] = append(seenOn[status], pepURL)
	}

	tally, unknown := FoldStatuses(s.cfg.PEPStatuses, observed)
	for _, status := range slices.Compact(slices.Sorted(slices.Values(unknown))) {
		for _, u := range seenOn[status] {
			s.log.Warnf("unknown status %q on %s", status, u)
		}
	}

	return tally.Table(), nil
}

// pepStatus follows one index row to its PEP page. ok is false when the
// page could not be loaded.
func (s *Scraper) pepStatus(ctx context.Context, tr *goquery.Selection) (status, pepURL, listed string, ok bool, err error) {
	abbr, err := htmlutil.FindTag(tr, "td")
	if err != nil {
		return "", "", "", false, err
	}

	cell, err := htmlutil.NextSibling(abbr, "")
	if err != nil {
		return "", "", "", false, err
	}

	a, err := htmlutil.FindTag(cell, "a")
	if err != nil {
		return "", "", "", false, err
	}

	href, _ := a.Attr("href")
	pepURL, err = resolve(s.cfg.PEPURL, href)
	if err != nil {
		return "", "", "", false, err
	}

	page := s.fetch.Get(ctx, pepURL)
	if !page.OK() {
		return "", pepURL, "", false, nil
	}

	dl, err := htmlutil.FindTag(page.Doc.Selection, "dl")
	if err != nil {
		return "", "", "", false, err
	}

	dt, err := htmlutil.FindFunc(dl, isStatusTerm)
	if err != nil {
		return "", "", "", false, err
	}

	dd, err := htmlutil.NextSibling(dt, "")
	if err != nil {
		return "", "", "", false, err
	}

	return htmlutil.Text(dd), pepURL, htmlutil.Text(abbr), true, nil
}

// checkListedStatus warns when the status letter in the index abbreviation
// (the "F" of "SF") disagrees with the status on the PEP page.
func (s *Scraper) checkListedStatus(pepURL, abbr, status string) {
	letter := ""
	if len(abbr) > 1 {
		letter = abbr[1:2]
	}

	expected, ok := s.cfg.ExpectedStatus[letter]
	if !ok || slices.Contains(expected, status) {
		return
	}

	s.log.Warnf("mismatched status for %s: page says %q, index expects one of %s",
		pepURL, status, strings.Join(expected, ", "))
}
