// Package fetch loads HTML pages through the cached session and parses them.
// A page that cannot be loaded is not an error for the caller: Get logs the
// failure and hands back a Page carrying it, so a routine can skip one entry
// and keep going.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/brogergvhs/docscrape/internal/httpcache"
	"github.com/brogergvhs/docscrape/internal/ui"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

type FetchError struct {
	URL string
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Page struct {
	URL string
	Doc *goquery.Document
	Err error
}

func (p Page) OK() bool {
	return p.Err == nil && p.Doc != nil
}

type Fetcher struct {
	session *resty.Client
	log     *ui.Logger
	stats   *ui.Stats
}

func New(session *resty.Client, log *ui.Logger, stats *ui.Stats) *Fetcher {
	if stats == nil {
		stats = &ui.Stats{}
	}

	return &Fetcher{session: session, log: log, stats: stats}
}

func (f *Fetcher) Stats() *ui.Stats {
	return f.stats
}

// Get never returns a nil Doc together with a nil Err.
func (f *Fetcher) Get(ctx context.Context, url string) Page {
	page := f.get(ctx, url)
	if page.Err != nil {
		f.stats.FetchErrors.Add(1)
		f.log.Errorf("failed to load page %s: %v", url, page.Err)
	}

	return page
}

func (f *Fetcher) get(ctx context.Context, url string) Page {
	resp, err := f.session.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8").
		Get(url)
	if err != nil {
		return Page{URL: url, Err: &FetchError{URL: url, Err: err}}
	}

	if !resp.IsSuccess() {
		return Page{URL: url, Err: &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", resp.Status()),
		}}
	}

	f.stats.PagesFetched.Add(1)
	if resp.Header().Get(httpcache.XFromCache) != "" {
		f.stats.CacheHits.Add(1)
	}

	body, err := decode(resp.Body(), resp.Header().Get("Content-Type"))
	if err != nil {
		return Page{URL: url, Err: &FetchError{URL: url, Err: err}}
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return Page{URL: url, Err: &FetchError{URL: url, Err: fmt.Errorf("parse: %w", err)}}
	}

	if raw := resp.RawResponse; raw != nil && raw.Request != nil {
		doc.Url = raw.Request.URL
	}

	return Page{URL: url, Doc: doc}
}

// decode converts body to UTF-8 using the Content-Type header and, failing
// that, the first KiB of the document.
func decode(body []byte, contentType string) (io.Reader, error) {
	peek := body
	if len(peek) > 1024 {
		peek = peek[:1024]
	}

	e, name, _ := charset.DetermineEncoding(peek, contentType)
	if name == "utf-8" {
		return bytes.NewReader(body), nil
	}

	out, _, err := transform.Bytes(e.NewDecoder(), body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return bytes.NewReader(out), nil
}
