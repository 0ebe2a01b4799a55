package scraper

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/brogergvhs/docscrape/internal/downloader"
	"github.com/brogergvhs/docscrape/internal/htmlutil"
	"github.com/brogergvhs/docscrape/internal/results"
	"github.com/brogergvhs/docscrape/internal/ui"
	"github.com/brogergvhs/docscrape/internal/util"
)

var pdfA4Re = regexp.MustCompile(`.+pdf-a4\.zip$`)

// Download saves the A4 PDF archive into the downloads directory. It has
// nothing to output and always returns a nil table.
func (s *Scraper) Download(ctx context.Context) (*results.Table, error) {
	downloadsURL, err := resolve(s.cfg.DocsURL, "download.html")
	if err != nil {
		return nil, err
	}

	page := s.fetch.Get(ctx, downloadsURL)
	if !page.OK() {
		return nil, nil
	}

	content, err := htmlutil.FindTag(page.Doc.Selection, "div", htmlutil.Attr("role", "main"))
	if err != nil {
		return nil, err
	}

	table, err := htmlutil.FindTag(content, "table", htmlutil.Attr("class", "docutils"))
	if err != nil {
		return nil, err
	}

	a, err := htmlutil.FindTag(table, "a", htmlutil.AttrMatch("href", pdfA4Re))
	if err != nil {
		return nil, err
	}

	href, _ := a.Attr("href")
	archiveURL, err := resolve(downloadsURL, href)
	if err != nil {
		return nil, err
	}

	name, err := downloader.FileName(archiveURL)
	if err != nil {
		return nil, err
	}

	archivePath := filepath.Join(s.cfg.DownloadsDir(), name)
	n, err := s.dl.Save(ctx, archiveURL, archivePath)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", archiveURL, err)
	}

	s.fetch.Stats().BytesDownloaded.Add(n)
	s.log.Infof("archive downloaded and saved: %s", archivePath)

	info, err := util.InspectZip(archivePath)
	if err != nil {
		s.log.Warnf("archive %s is not a readable zip: %v", archivePath, err)
		return nil, nil
	}
	s.log.Infof("archive holds %d files, %s uncompressed", info.Files, ui.HumanSize(info.Size))

	return nil, nil
}
