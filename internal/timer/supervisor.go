package timer

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
)

// Target is the engine surface the supervisor drives.
type Target interface {
	TimerView() View
	DecrementTime() bool
	SpawnCustomerWithOrder() bool
	EndGame() bool
}

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often the supervisor polls the scheduler.
// It should be well below the lane intervals.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithCountdownInterval sets the round clock granularity.
func WithCountdownInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.countdownEvery = d
	}
}

// WithSpawnInterval sets the time between customer arrivals.
func WithSpawnInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.spawnEvery = d
	}
}

// WithEffectHook registers a callback run after each applied effect, for
// example to repaint the UI.
func WithEffectHook(fn func(Effect)) Option {
	return func(s *Supervisor) {
		s.hook = fn
	}
}

// WithWatcher enables the stall watcher with the given options.
func WithWatcher(opts ...WatcherOption) Option {
	return func(s *Supervisor) {
		s.watch = true
		s.watcherOpts = opts
	}
}

// Supervisor runs the scheduler against the engine in the background.
// After Stop returns, no effect can reach the engine.
type Supervisor struct {
	target         Target
	notifier       domain.Notifier
	log            *logger.Logger
	tickInterval   time.Duration
	countdownEvery time.Duration
	spawnEvery     time.Duration
	hook           func(Effect)

	watch       bool
	watcherOpts []WatcherOption

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a supervisor with the given dependencies and options.
func New(target Target, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		target:         target,
		notifier:       notifier,
		log:            log,
		tickInterval:   100 * time.Millisecond,
		countdownEvery: DefaultCountdownInterval,
		spawnEvery:     DefaultSpawnInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the background loop. Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("timer supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	sched := NewScheduler(s.countdownEvery, s.spawnEvery)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(childCtx, sched)
	}()

	if s.watch {
		w := NewWatcher(s.target, s.notifier, s.log, s.watcherOpts...)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			w.Run(childCtx)
		}()
	}

	s.log.Info("timer supervisor started (tick=%s, spawn=%s)", s.tickInterval, s.spawnEvery)
}

// Stop shuts the supervisor down and waits for its goroutines to exit.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Info("timer supervisor stopped")
}

func (s *Supervisor) loop(ctx context.Context, sched *Scheduler) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, eff := range sched.Tick(now, s.target.TimerView()) {
				// Re-check so a Stop racing with a tick drops the rest.
				if ctx.Err() != nil {
					return
				}
				s.apply(ctx, eff)
			}
		}
	}
}

// apply runs one effect against the engine.
func (s *Supervisor) apply(ctx context.Context, eff Effect) {
	switch eff {
	case EffectDecrement:
		s.target.DecrementTime()
	case EffectSpawn:
		if s.target.SpawnCustomerWithOrder() {
			s.log.Debug("supervisor: customer arrived")
		}
	case EffectTimeUp:
		if s.target.EndGame() {
			if err := s.notifier.NotifyUrgent(ctx, "Hết giờ! Quán đóng cửa ván này."); err != nil {
				s.log.Error("supervisor: notifying time up: %v", err)
			}
		}
	}
	if s.hook != nil {
		s.hook(eff)
	}
}
