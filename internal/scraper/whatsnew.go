package scraper

import (
	"context"

	"github.com/brogergvhs/docscrape/internal/htmlutil"
	"github.com/brogergvhs/docscrape/internal/results"
	"github.com/brogergvhs/docscrape/internal/selection"
)

// WhatsNew collects one row per "What's New" article: its URL, title and
// the editor/author block.
func (s *Scraper) WhatsNew(ctx context.Context) (*results.Table, error) {
	indexURL, err := resolve(s.cfg.DocsURL, "whatsnew/")
	if err != nil {
		return nil, err
	}

	page := s.fetch.Get(ctx, indexURL)
	if !page.OK() {
		return nil, nil
	}

	section, err := htmlutil.FindTag(page.Doc.Selection, "section", htmlutil.Attr("id", "what-s-new-in-python"))
	if err != nil {
		return nil, err
	}

	wrapper, err := htmlutil.FindTag(section, "div", htmlutil.Attr("class", "toctree-wrapper"))
	if err != nil {
		return nil, err
	}

	items, err := selection.Filter(nodes(wrapper.Find("li.toctree-l1")), s.Selection.Range, s.Selection.List)
	if err != nil {
		return nil, err
	}

	table := results.New("Article link", "Title", "Editor, author")
	ph := s.pm.Register("whats-new", len(items))
	defer ph.MarkDone()

	for _, li := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a, err := htmlutil.FindTag(li, "a")
		if err != nil {
			return nil, err
		}

		href, _ := a.Attr("href")
		link, err := resolve(indexURL, href)
		if err != nil {
			s.log.Warnf("skipping article: %v", err)
			ph.Increment()
			continue
		}

		article := s.fetch.Get(ctx, link)
		if !article.OK() {
			ph.Increment()
			continue
		}

		h1, err := htmlutil.FindTag(article.Doc.Selection, "h1")
		if err != nil {
			return nil, err
		}

		dl, err := htmlutil.FindTag(article.Doc.Selection, "dl")
		if err != nil {
			return nil, err
		}

		if err := table.Append(link, htmlutil.Text(h1), htmlutil.Text(dl)); err != nil {
			return nil, err
		}
		ph.Increment()
	}

	return table, nil
}
