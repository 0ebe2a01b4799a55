package scraper

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/docscrape/internal/config"
	"github.com/brogergvhs/docscrape/internal/downloader"
	"github.com/brogergvhs/docscrape/internal/fetch"
	"github.com/brogergvhs/docscrape/internal/ui"
)

// Selection limits the index entries processed by whats-new and pep.
type Selection struct {
	Range string
	List  string
}

type Scraper struct {
	cfg   *config.Config
	fetch *fetch.Fetcher
	dl    *downloader.Downloader
	log   *ui.Logger
	pm    *ui.MPBProgressManager

	Selection Selection
}

func New(
	cfg *config.Config,
	f *fetch.Fetcher,
	dl *downloader.Downloader,
	log *ui.Logger,
	pm *ui.MPBProgressManager,
) *Scraper {
	return &Scraper{
		cfg:   cfg,
		fetch: f,
		dl:    dl,
		log:   log,
		pm:    pm,
	}
}

func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("base url %q: %w", base, err)
	}

	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("link %q: %w", ref, err)
	}

	return b.ResolveReference(r).String(), nil
}

func nodes(sel *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}
