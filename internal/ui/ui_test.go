package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineRe = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}:\d{2} - \[(DEBUG|INFO|WARN|ERROR)\] - .+$`)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(LogOptions{Console: &buf})
	require.NoError(t, err)

	log.Infof("parser started\n")
	log.Debugf("hidden without --debug")
	log.Errorf("failed to load page %s: %v", "https://peps.python.org/pep-0008/", "HTTP 500")
	require.NoError(t, log.Close())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Regexp(t, lineRe, string(l))
	}
	assert.Contains(t, string(lines[0]), "[INFO] - parser started")
	assert.Contains(t, string(lines[1]), "[ERROR] - failed to load page https://peps.python.org/pep-0008/: HTTP 500")
}

func TestLoggerWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, err := NewLogger(LogOptions{Debug: true, Dir: dir, Console: &bytes.Buffer{}})
	require.NoError(t, err)

	log.Debugf("cache hit %s", "https://docs.python.org/3/")
	require.NoError(t, log.Close())

	b, err := os.ReadFile(filepath.Join(dir, "parser.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "[DEBUG] - cache hit https://docs.python.org/3/")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *Logger
	assert.NotPanics(t, func() {
		log.Infof("x")
		log.Warnf("x")
		_ = log.Close()
	})
	NopLogger().Errorf("discarded")
}

func TestProgressDisabled(t *testing.T) {
	pm := NewProgressManager(false)
	h := pm.Register("pep", 3)
	h.Increment()
	h.Increment()
	h.MarkDone()
	h.Increment()
	assert.EqualValues(t, 2, h.Current())
	pm.Close()

	var nilPM *MPBProgressManager
	nilPM.RegisterBytes("archive", -1).SetCurrent(10)
	nilPM.Close()
}

func TestProgressCloseDoesNotHang(t *testing.T) {
	pm := NewProgressManagerTo(true, &bytes.Buffer{})
	pages := pm.Register("whats-new", 10)
	pages.Increment()
	pages.MarkDone()

	downloads := pm.Register("download", 3)
	downloads.Increment()
	downloads.Increment()
	downloads.Increment()
	downloads.MarkDone()

	sized := pm.RegisterBytes("python-docs-html.zip", 8192)
	sized.SetCurrent(1024)
	sized.MarkDone()

	archive := pm.RegisterBytes("python-docs-pdf-a4.zip", 0)
	archive.SetCurrent(4096)
	archive.MarkDone()

	done := make(chan struct{})
	go func() {
		pm.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("progress manager did not finish")
	}
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", HumanSize(512))
	assert.Equal(t, "1.50 KB", HumanSize(1536))
	assert.Equal(t, "12.00 MB", HumanSize(12*1024*1024))
	assert.Equal(t, "2.00 GB", HumanSize(2*1024*1024*1024))
}

func TestStatsSummary(t *testing.T) {
	var s Stats
	s.PagesFetched.Add(5)
	s.CacheHits.Add(3)
	s.FetchErrors.Add(1)
	s.BytesDownloaded.Add(2048)
	assert.Equal(t, "pages: 5 (cached: 3), fetch errors: 1, downloaded: 2.00 KB", s.Summary())
}
