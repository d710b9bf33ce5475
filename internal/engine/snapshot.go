package engine

import (
	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/timer"
)

// Snapshot is a point-in-time copy of engine state for renderers.
// Mutating it never affects the engine.
type Snapshot struct {
	State           domain.GameState
	Paused          bool
	Score           int
	CustomersServed int
	Combo           int
	TimeRemaining   int
	SessionCoins    int
	Accepted        bool
	Customers       []domain.Customer
	QueueCapacity   int

	Progress domain.SaveRecord
}

// Head returns the customer being served, if any.
func (s Snapshot) Head() (domain.Customer, bool) {
	if len(s.Customers) == 0 {
		return domain.Customer{}, false
	}
	return s.Customers[0], true
}

// Snapshot returns a deep copy of session and durable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		State:           e.state,
		Paused:          e.paused,
		Score:           e.score,
		CustomersServed: e.customersServed,
		Combo:           e.combo,
		TimeRemaining:   e.timeRemaining,
		SessionCoins:    e.sessionCoins,
		Accepted:        e.accepted,
		Customers:       e.queue.Snapshot(),
		QueueCapacity:   e.queue.Cap(),
		Progress:        e.rec.Clone(),
	}
}

// TimerView reports what the scheduler needs to decide which lanes run.
func (e *Engine) TimerView() timer.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return timer.View{
		Playing:       e.state == domain.StatePlaying,
		Paused:        e.paused,
		Accepted:      e.accepted,
		QueueFull:     e.queue.Full(),
		QueueLen:      e.queue.Len(),
		TimeRemaining: e.timeRemaining,
	}
}
