package httpcache

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache", "parser_cache.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := openStore(t)

	_, ok, err := s.Get("https://docs.python.org/3/")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("https://docs.python.org/3/", Entry{
		StatusCode: 200,
		Header:     http.Header{"Content-Type": {"text/html; charset=utf-8"}},
		Body:       []byte("<html></html>"),
	}))
	require.NoError(t, s.Set("https://peps.python.org/", Entry{StatusCode: 200, Body: []byte("peps")}))

	e, ok, err := s.Get("https://docs.python.org/3/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 200, e.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", e.Header.Get("Content-Type"))
	assert.Equal(t, "<html></html>", string(e.Body))
	assert.False(t, e.StoredAt.IsZero())

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Erase("https://peps.python.org/"))
	n, _ = s.Count()
	assert.Equal(t, 1, n)

	require.NoError(t, s.Clear())
	n, _ = s.Count()
	assert.Equal(t, 0, n)
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Set("u", Entry{StatusCode: 200, Body: []byte("old")}))
	require.NoError(t, s.Set("u", Entry{StatusCode: 200, Body: []byte("new")}))

	e, ok, err := s.Get("u")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", string(e.Body))
}

func TestTransportServesRepeatedGetsFromCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("body of " + r.URL.Path))
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(openStore(t), nil, nil, nil)}

	get := func(path string) (*http.Response, string) {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, string(b)
	}

	resp, body := get("/whatsnew/")
	assert.Equal(t, "body of /whatsnew/", body)
	assert.Empty(t, resp.Header.Get(XFromCache))

	resp, body = get("/whatsnew/")
	assert.Equal(t, "body of /whatsnew/", body)
	assert.Equal(t, "1", resp.Header.Get(XFromCache))
	assert.EqualValues(t, 1, hits.Load())

	resp, _ = get("/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = get("/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.EqualValues(t, 3, hits.Load(), "error responses are not cached")
}

func TestTransportWithoutStorePassesThrough(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil, nil, nil, nil)}
	for range 2 {
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.EqualValues(t, 2, hits.Load())
}

func TestTransportHonoursNoStore(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("archive"))
	}))
	defer srv.Close()

	store := openStore(t)
	client := &http.Client{Transport: NewTransport(store, nil, nil, nil)}
	for range 2 {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/python-docs-pdf-a4.zip", nil)
		require.NoError(t, err)
		req.Header.Set("Cache-Control", "no-store")
		resp, err := client.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.EqualValues(t, 2, hits.Load())
	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}
