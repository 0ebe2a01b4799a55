package httpcache

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// XFromCache is set on responses served from the store.
const XFromCache = "X-From-Cache"

// Transport serves GET requests from a Store and records successful network
// responses into it. Only cache misses wait on the limiter.
type Transport struct {
	store   Store
	base    http.RoundTripper
	limiter *rate.Limiter
	log     interface{ Debugf(string, ...any) }
}

func NewTransport(store Store, base http.RoundTripper, limiter *rate.Limiter, log interface{ Debugf(string, ...any) }) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &Transport{
		store:   store,
		base:    base,
		limiter: limiter,
		log:     log,
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	key := req.URL.String()
	cacheable := t.store != nil && req.Method == http.MethodGet &&
		req.Header.Get("Range") == "" && !bypass(req.Header.Get("Cache-Control"))

	if cacheable {
		e, ok, err := t.store.Get(key)
		if err != nil {
			t.debugf("cache read %s: %v\n", key, err)
		}
		if ok {
			t.debugf("cache hit %s\n", key)
			return cachedResponse(req, e), nil
		}
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil || !cacheable || resp.StatusCode != http.StatusOK {
		return resp, err
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	if err := t.store.Set(key, Entry{StatusCode: resp.StatusCode, Header: resp.Header.Clone(), Body: body}); err != nil {
		t.debugf("cache write %s: %v\n", key, err)
	}

	return resp, nil
}

// bypass reports whether the request asked not to be stored or served from
// the store.
func bypass(cacheControl string) bool {
	for _, d := range strings.Split(cacheControl, ",") {
		switch strings.ToLower(strings.TrimSpace(d)) {
		case "no-store", "no-cache":
			return true
		}
	}
	return false
}

func (t *Transport) debugf(format string, args ...any) {
	if t.log != nil {
		t.log.Debugf(format, args...)
	}
}

func cachedResponse(req *http.Request, e Entry) *http.Response {
	header := e.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Set(XFromCache, "1")
	header.Set("Content-Length", strconv.Itoa(len(e.Body)))

	return &http.Response{
		Status:        strconv.Itoa(e.StatusCode) + " " + http.StatusText(e.StatusCode),
		StatusCode:    e.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}
