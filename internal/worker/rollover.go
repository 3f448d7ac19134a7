// Package worker runs the background day-rollover watcher.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/snackdash/snackdash/internal/logger"
	"github.com/snackdash/snackdash/internal/save"
)

// RolloverFunc is invoked with the new local date (yyyy-MM-dd) when the
// calendar day changes. The callback owns its own idempotence; the worker
// may fire for a date the session has already handled.
type RolloverFunc func(ctx context.Context, today string)

// RolloverWorker polls the local date on a fixed interval and fires the
// callback when it changes. Polling instead of a computed midnight timer
// keeps wall-clock jumps (suspend/resume, manual clock changes) from
// silently skipping a day.
type RolloverWorker struct {
	interval time.Duration
	onChange RolloverFunc
	now      func() time.Time

	quit chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// NewRolloverWorker creates a worker that polls every interval.
func NewRolloverWorker(interval time.Duration, onChange RolloverFunc) *RolloverWorker {
	return &RolloverWorker{
		interval: interval,
		onChange: onChange,
		now:      time.Now,
		quit:     make(chan struct{}),
	}
}

// Start begins polling. The baseline date is captured at start, so a
// rollover that happened before Start is the loader's problem, not the
// worker's.
func (w *RolloverWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		last := w.now().Format(save.DateLayout)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				today := w.now().Format(save.DateLayout)
				if today == last {
					continue
				}
				logger.FromContext(ctx).Info("Day rollover detected", "from", last, "to", today)
				last = today
				w.onChange(ctx, today)
			case <-w.quit:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts polling and waits for the poll goroutine to exit. Safe to call
// more than once.
func (w *RolloverWorker) Stop() {
	w.once.Do(func() { close(w.quit) })
	w.wg.Wait()
}
