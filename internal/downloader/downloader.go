package downloader

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/docscrape/internal/ui"
	"github.com/brogergvhs/docscrape/internal/util"

	"github.com/go-resty/resty/v2"
)

type Downloader struct {
	client *resty.Client
	log    *ui.Logger
	pm     *ui.MPBProgressManager
}

func New(c *resty.Client, log *ui.Logger, pm *ui.MPBProgressManager) *Downloader {
	return &Downloader{
		client: c,
		log:    log,
		pm:     pm,
	}
}

// FileName returns the last path segment of rawURL.
func FileName(rawURL string) (string, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return "", err
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("no file name in %s", rawURL)
	}

	return name, nil
}

// Save streams url into dest, replacing any existing file. Bytes go to
// dest+".part" first and are renamed into place once complete.
func (d *Downloader) Save(ctx context.Context, url, dest string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, err
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "application/zip,application/octet-stream;q=0.9,*/*;q=0.8").
		SetHeader("Cache-Control", "no-store").
		Get(url)
	if err != nil {
		return 0, err
	}

	body := resp.RawBody()
	if body == nil {
		return 0, fmt.Errorf("empty response for %s", url)
	}

	defer func() {
		_ = body.Close()
	}()

	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d", resp.StatusCode())
	}

	if ct := resp.Header().Get("Content-Type"); strings.HasPrefix(ct, "text/html") {
		return 0, fmt.Errorf("unexpected MIME: %s", ct)
	}

	partial := dest + util.PartialSuffix
	f, err := os.Create(partial)
	if err != nil {
		return 0, err
	}

	ph := d.pm.RegisterBytes(filepath.Base(dest), resp.RawResponse.ContentLength)
	written, err := copyWithProgress(f, body, ph.SetCurrent)
	ph.MarkDone()

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(partial)
		return written, err
	}

	if cl := resp.RawResponse.ContentLength; cl > 0 && written != cl {
		_ = os.Remove(partial)
		return written, fmt.Errorf("short body: got %d of %d bytes", written, cl)
	}

	if err := os.Rename(partial, dest); err != nil {
		_ = os.Remove(partial)
		return written, err
	}

	d.log.Debugf("saved %s (%s)", dest, ui.HumanSize(written))
	return written, nil
}
