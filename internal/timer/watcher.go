package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
)

// Viewer exposes the state the watcher inspects.
type Viewer interface {
	TimerView() View
}

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets how often the watcher checks the stall.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithNudgeCooldown sets the minimum time between "customer waiting"
// nudges.
func WithNudgeCooldown(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.nudgeCooldown = d
	}
}

// WithLowTimeThreshold sets the remaining seconds that trigger the
// low-time warning.
func WithLowTimeThreshold(secs int) WatcherOption {
	return func(w *Watcher) {
		w.lowTime = secs
	}
}

// Watcher looks at the stall on a slower cycle than the scheduler and
// nudges the player: a customer waiting with no accepted order, or the
// round clock running low.
type Watcher struct {
	view          Viewer
	notifier      domain.Notifier
	log           *logger.Logger
	interval      time.Duration
	nudgeCooldown time.Duration
	lowTime       int

	lastNudge   time.Time
	warnedLow   bool
	wasAccepted bool
}

// NewWatcher creates a watcher with the given dependencies.
func NewWatcher(view Viewer, notifier domain.Notifier, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		view:          view,
		notifier:      notifier,
		log:           log,
		interval:      2 * time.Second,
		nudgeCooldown: 15 * time.Second,
		lowTime:       10,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the watcher loop. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Debug("watcher started (interval=%s)", w.interval)
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watcher stopped")
			return
		case now := <-ticker.C:
			w.check(ctx, now, w.view.TimerView())
		}
	}
}

// check runs one inspection cycle.
func (w *Watcher) check(ctx context.Context, now time.Time, v View) {
	if !v.Accepted || !w.wasAccepted {
		// Each accepted order gets its own low-time warning.
		w.warnedLow = false
	}
	w.wasAccepted = v.Accepted

	if !v.Playing || v.Paused {
		return
	}

	if v.Accepted {
		if !w.warnedLow && v.TimeRemaining > 0 && v.TimeRemaining <= w.lowTime {
			w.warnedLow = true
			msg := fmt.Sprintf("Nhanh lên, còn %d giây!", v.TimeRemaining)
			if err := w.notifier.NotifyUrgent(ctx, msg); err != nil {
				w.log.Error("watcher: low time notify: %v", err)
			}
		}
		return
	}

	if v.QueueLen > 0 && now.Sub(w.lastNudge) >= w.nudgeCooldown {
		w.lastNudge = now
		msg := "Có khách đang chờ. Gõ \"accept\" để nhận đơn."
		if v.QueueLen > 1 {
			msg = fmt.Sprintf("%d khách đang chờ. Gõ \"accept\" để nhận đơn tiếp theo.", v.QueueLen)
		}
		if err := w.notifier.Notify(ctx, msg); err != nil {
			w.log.Error("watcher: nudge notify: %v", err)
		}
	}
}
