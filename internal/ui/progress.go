package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type MPBProgressManager struct {
	p *mpb.Progress
}

// NewProgressManager renders bars to stdout; a disabled manager hands out
// handles that do nothing.
func NewProgressManager(enabled bool) *MPBProgressManager {
	return NewProgressManagerTo(enabled, os.Stdout)
}

// NewProgressManagerTo renders bars to out.
func NewProgressManagerTo(enabled bool, out io.Writer) *MPBProgressManager {
	if !enabled {
		return &MPBProgressManager{}
	}

	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &MPBProgressManager{p: p}
}

func (pm *MPBProgressManager) Close() {
	if pm == nil || pm.p == nil {
		return
	}
	pm.p.Wait()
}

// Register adds a bar counting processed pages.
func (pm *MPBProgressManager) Register(prefix string, total int) *ProgressHandle {
	h := &ProgressHandle{prefix: prefix, total: int64(total), start: time.Now()}
	if pm == nil || pm.p == nil {
		return h
	}

	h.bar = pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(prefix+"  "),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d pages", decor.WCSyncWidth),
			h.elapsedDecorator(),
		),
	)
	h.setTotal()
	return h
}

// RegisterBytes adds a bar counting downloaded bytes. A total <= 0 means
// the size is unknown until MarkDone.
func (pm *MPBProgressManager) RegisterBytes(prefix string, total int64) *ProgressHandle {
	h := &ProgressHandle{prefix: prefix, total: max(0, total), start: time.Now()}
	if pm == nil || pm.p == nil {
		return h
	}

	h.bar = pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(prefix+"  "),
		),
		mpb.AppendDecorators(
			decor.Counters(decor.SizeB1024(0), "% .1f / % .1f", decor.WCSyncWidth),
			h.elapsedDecorator(),
		),
	)
	h.setTotal()
	return h
}

type ProgressHandle struct {
	prefix string
	bar    *mpb.Bar

	total   int64
	current atomic.Int64

	start   time.Time
	elapsed atomic.Int64

	final atomic.Bool
}

func (h *ProgressHandle) elapsedDecorator() decor.Decorator {
	return decor.Any(func(_ decor.Statistics) string {
		if h.final.Load() {
			return fmt.Sprintf(" | %ds", h.elapsed.Load())
		}

		return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
	})
}

// setTotal applies the known total without arming auto-completion, so
// MarkDone can still finish a bar that stopped short.
func (h *ProgressHandle) setTotal() {
	if h.total > 0 {
		h.bar.SetTotal(h.total, false)
	}
}

func (h *ProgressHandle) Increment() {
	if h.final.Load() {
		return
	}

	h.current.Add(1)
	if h.bar != nil {
		h.bar.Increment()
	}
}

// SetCurrent moves the bar to an absolute position.
func (h *ProgressHandle) SetCurrent(n int64) {
	if h.final.Load() {
		return
	}

	h.current.Store(n)
	if h.bar != nil {
		h.bar.SetCurrent(n)
	}
}

func (h *ProgressHandle) Current() int64 {
	return h.current.Load()
}

// MarkDone completes the bar at its current position. Safe to call twice.
func (h *ProgressHandle) MarkDone() {
	if h.final.Swap(true) {
		return
	}

	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	if h.bar != nil {
		h.bar.SetTotal(-1, true)
	}
}
