package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/vintagevendor/internal/logger"
)

// mockNotifier collects notifications for testing.
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	urgent   []string
}

func (m *mockNotifier) Notify(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockNotifier) NotifyUrgent(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urgent = append(m.urgent, msg)
	return nil
}

func (m *mockNotifier) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages), len(m.urgent)
}

// fakeStall is a minimal Target with a round clock and a queue.
type fakeStall struct {
	mu      sync.Mutex
	view    View
	spawns  int
	ends    int
	applied int
}

func (f *fakeStall) TimerView() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

func (f *fakeStall) DecrementTime() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied++
	if f.view.TimeRemaining > 0 {
		f.view.TimeRemaining--
	}
	return true
}

func (f *fakeStall) SpawnCustomerWithOrder() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied++
	f.spawns++
	f.view.QueueLen++
	return true
}

func (f *fakeStall) EndGame() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied++
	if !f.view.Playing {
		return false
	}
	f.ends++
	f.view.Playing = false
	return true
}

func (f *fakeStall) stats() (spawns, ends, applied, remaining int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.spawns, f.ends, f.applied, f.view.TimeRemaining
}

func TestSupervisorRunsRoundToTimeUp(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	stall := &fakeStall{view: View{Playing: true, Accepted: true, TimeRemaining: 3}}
	notifier := &mockNotifier{}

	sup := New(stall, notifier, log,
		WithTickInterval(5*time.Millisecond),
		WithCountdownInterval(20*time.Millisecond),
		WithSpawnInterval(time.Hour),
	)
	sup.Start(context.Background())
	defer sup.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ends, _, _ := stall.stats(); ends > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	spawns, ends, _, remaining := stall.stats()
	if ends != 1 {
		t.Fatalf("expected one EndGame, got %d", ends)
	}
	if remaining != 0 {
		t.Fatalf("expected clock at 0, got %d", remaining)
	}
	if spawns != 1 {
		t.Fatalf("expected the opening spawn only, got %d", spawns)
	}
	if _, urgent := notifier.counts(); urgent != 1 {
		t.Fatalf("expected one time-up notification, got %d", urgent)
	}
}

func TestSupervisorStopPreventsFurtherEffects(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	stall := &fakeStall{view: View{Playing: true, Accepted: true, TimeRemaining: 1000}}

	var hookMu sync.Mutex
	hooked := 0
	sup := New(stall, &mockNotifier{}, log,
		WithTickInterval(2*time.Millisecond),
		WithCountdownInterval(2*time.Millisecond),
		WithSpawnInterval(time.Hour),
		WithEffectHook(func(Effect) {
			hookMu.Lock()
			hooked++
			hookMu.Unlock()
		}),
	)
	sup.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	sup.Stop()

	_, _, before, _ := stall.stats()
	if before == 0 {
		t.Fatal("expected some effects before Stop")
	}
	time.Sleep(50 * time.Millisecond)
	if _, _, after, _ := stall.stats(); after != before {
		t.Fatalf("effects applied after Stop: %d -> %d", before, after)
	}

	hookMu.Lock()
	defer hookMu.Unlock()
	if hooked != before {
		t.Fatalf("hook ran %d times for %d effects", hooked, before)
	}
}

func TestSupervisorDoubleStartStop(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	sup := New(&fakeStall{}, &mockNotifier{}, log, WithTickInterval(5*time.Millisecond))

	sup.Stop() // not running: no-op
	sup.Start(context.Background())
	sup.Start(context.Background())
	sup.Stop()
	sup.Stop()
}

func TestSupervisorParentContextCancel(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	stall := &fakeStall{view: View{Playing: true, Accepted: true, TimeRemaining: 1000}}
	ctx, cancel := context.WithCancel(context.Background())

	sup := New(stall, &mockNotifier{}, log,
		WithTickInterval(2*time.Millisecond),
		WithCountdownInterval(2*time.Millisecond),
	)
	sup.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()
	sup.Stop() // must return once the loop sees the cancellation

	_, _, before, _ := stall.stats()
	time.Sleep(20 * time.Millisecond)
	if _, _, after, _ := stall.stats(); after != before {
		t.Fatal("effects applied after cancellation")
	}
}
