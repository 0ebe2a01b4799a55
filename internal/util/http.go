package util

import (
	"net/http"
	"time"

	"github.com/brogergvhs/docscrape/internal/httpcache"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type Logger interface {
	Debugf(string, ...any)
	Warnf(string, ...any)
	Errorf(string, ...any)
}

type SessionOptions struct {
	Timeout   time.Duration
	UserAgent string
	Retries   int
	// RetryWait is the base backoff between retries.
	RetryWait time.Duration
	// RequestsPerSecond limits network requests; cache hits are free. Zero
	// disables limiting.
	RequestsPerSecond float64
	CloudflareBypass  bool
	// Cache is optional; without it every request hits the network.
	Cache     httpcache.Store
	Transport http.RoundTripper
	Logger    Logger
}

// NewSession builds the client every page and archive request goes through:
// resty -> response cache (+ rate limit on misses) -> UA/debug -> network.
func NewSession(opts SessionOptions) *resty.Client {
	var baseTransport http.RoundTripper
	if opts.Transport != nil {
		baseTransport = opts.Transport
	} else {
		baseTransport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			ForceAttemptHTTP2:   true,
		}
	}

	if opts.CloudflareBypass {
		baseTransport = cloudflarebp.AddCloudFlareByPass(baseTransport)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	var debugLog interface{ Debugf(string, ...any) }
	if opts.Logger != nil {
		debugLog = opts.Logger
	}

	transport := httpcache.NewTransport(opts.Cache, roundTripper{
		base: baseTransport,
		ua:   opts.UserAgent,
		log:  debugLog,
	}, limiter, debugLog)

	client := resty.New().
		SetTransport(transport).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	if opts.RetryWait > 0 {
		client.SetRetryWaitTime(opts.RetryWait)
	}

	if opts.Logger != nil {
		client.SetLogger(opts.Logger)
		opts.Logger.Debugf("HTTP session initialized (timeout=%s, retries=%d, rps=%g, cache=%t)\n",
			opts.Timeout, opts.Retries, opts.RequestsPerSecond, opts.Cache != nil)
	}

	return client
}

type roundTripper struct {
	base http.RoundTripper
	ua   string
	log  interface{ Debugf(string, ...any) }
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.ua != "" {
		req.Header.Set("User-Agent", rt.ua)
	}

	if rt.log != nil {
		rt.log.Debugf("HTTP %s %s", req.Method, req.URL.String())
	}

	return rt.base.RoundTrip(req)
}

func PickUserAgent(override string) string {
	if override != "" {
		return override
	}

	return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
}
