package downloader

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/brogergvhs/docscrape/internal/ui"
	"github.com/brogergvhs/docscrape/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "https://docs.python.org/3/archives/python-3.13-docs-pdf-a4.zip", want: "python-3.13-docs-pdf-a4.zip"},
		{url: "https://docs.python.org/3/archives/a.zip?x=1", want: "a.zip"},
		{url: "https://docs.python.org/", wantErr: true},
		{url: "archives/a.zip", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := FileName(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveWritesBodyAndReplaces(t *testing.T) {
	payload := bytes.Repeat([]byte("PK\x03\x04docs"), 20_000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "downloads", "python-docs-pdf-a4.zip")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, os.WriteFile(dest, []byte("stale"), 0644))

	d := New(util.NewSession(util.SessionOptions{}), ui.NopLogger(), nil)
	n, err := d.Save(context.Background(), srv.URL+"/python-docs-pdf-a4.zip", dest)
	require.NoError(t, err)
	assert.EqualValues(t, len(payload), n)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = os.Stat(dest + util.PartialSuffix)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "a.zip")
	d := New(util.NewSession(util.SessionOptions{}), ui.NopLogger(), nil)
	_, err := d.Save(context.Background(), srv.URL+"/a.zip", dest)
	require.Error(t, err)

	_, err = os.Stat(dest)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCopyWithProgress(t *testing.T) {
	var seen []int64
	var dst bytes.Buffer

	n, err := copyWithProgress(&dst, bytes.NewReader(make([]byte, 70*1024)), func(done int64) {
		seen = append(seen, done)
	})
	require.NoError(t, err)
	assert.EqualValues(t, 70*1024, n)
	require.NotEmpty(t, seen)
	assert.EqualValues(t, 70*1024, seen[len(seen)-1])
}
