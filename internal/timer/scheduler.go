// Package timer drives the round clock and customer arrivals. Scheduler
// decides, for a given instant and engine view, which effects are due;
// Supervisor runs it on a real ticker and applies the effects.
package timer

import "time"

// Default lane intervals.
const (
	DefaultCountdownInterval = 1 * time.Second
	DefaultSpawnInterval     = 8 * time.Second
)

// View is the slice of engine state the scheduler reads.
type View struct {
	Playing       bool
	Paused        bool
	Accepted      bool
	QueueFull     bool
	QueueLen      int
	TimeRemaining int
}

// Effect is an action the scheduler wants applied to the engine.
type Effect int

const (
	EffectDecrement Effect = iota
	EffectSpawn
	EffectTimeUp
)

// String returns a human-readable effect name.
func (e Effect) String() string {
	switch e {
	case EffectDecrement:
		return "decrement"
	case EffectSpawn:
		return "spawn"
	case EffectTimeUp:
		return "time_up"
	default:
		return "unknown"
	}
}

// lane is one periodic timer that only runs while its condition holds.
// Any change of the condition re-arms it, so an interval started under an
// old condition never fires.
type lane struct {
	interval time.Duration
	active   bool
	next     time.Time
}

// step updates the lane and reports whether it fires at now.
func (l *lane) step(now time.Time, active bool) (fired, armed bool) {
	if active != l.active {
		l.active = active
		if active {
			l.next = now.Add(l.interval)
			return false, true
		}
		return false, false
	}
	if !active || now.Before(l.next) {
		return false, false
	}
	l.next = l.next.Add(l.interval)
	if !l.next.After(now) {
		// Fell behind by more than one interval; skip missed beats.
		l.next = now.Add(l.interval)
	}
	return true, false
}

// Scheduler is a pure decision function over time. It is not safe for
// concurrent use; the Supervisor owns it.
type Scheduler struct {
	countdown  lane
	spawn      lane
	timeUpSent bool
}

// NewScheduler creates a scheduler. Non-positive intervals use defaults.
func NewScheduler(countdownEvery, spawnEvery time.Duration) *Scheduler {
	if countdownEvery <= 0 {
		countdownEvery = DefaultCountdownInterval
	}
	if spawnEvery <= 0 {
		spawnEvery = DefaultSpawnInterval
	}
	return &Scheduler{
		countdown: lane{interval: countdownEvery},
		spawn:     lane{interval: spawnEvery},
	}
}

// Tick returns the effects due at now, in application order.
//
// The countdown lane runs while playing, not paused and an order is
// accepted. The spawn lane runs while playing, not paused and the queue
// has room; it also spawns at once when it arms on an empty queue.
// EffectTimeUp is emitted once when an accepted round is seen at zero.
func (s *Scheduler) Tick(now time.Time, v View) []Effect {
	var out []Effect
	running := v.Playing && !v.Paused

	if !v.Playing || v.TimeRemaining > 0 {
		s.timeUpSent = false
	}
	if running && v.Accepted && v.TimeRemaining == 0 && !s.timeUpSent {
		s.timeUpSent = true
		out = append(out, EffectTimeUp)
	}

	if fired, _ := s.countdown.step(now, running && v.Accepted && v.TimeRemaining > 0); fired {
		out = append(out, EffectDecrement)
	}

	fired, armed := s.spawn.step(now, running && !v.QueueFull)
	if fired || (armed && v.QueueLen == 0) {
		out = append(out, EffectSpawn)
	}
	return out
}
