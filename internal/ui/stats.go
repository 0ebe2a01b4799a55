package ui

import (
	"fmt"
	"sync/atomic"
)

// Stats accumulates counters for the end-of-run summary.
type Stats struct {
	PagesFetched    atomic.Int64
	CacheHits       atomic.Int64
	FetchErrors     atomic.Int64
	BytesDownloaded atomic.Int64
}

func (s *Stats) Summary() string {
	return fmt.Sprintf("pages: %d (cached: %d), fetch errors: %d, downloaded: %s",
		s.PagesFetched.Load(), s.CacheHits.Load(), s.FetchErrors.Load(), HumanSize(s.BytesDownloaded.Load()))
}

func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for v := n / unit; v >= unit && exp < 2; v /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
