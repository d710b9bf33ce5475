package engine

import (
	"cmp"
	"math"
	"slices"

	"github.com/hammamikhairi/vintagevendor/internal/customer"
	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/order"
	"github.com/hammamikhairi/vintagevendor/internal/serve"
)

const (
	recentLimit  = 3
	sodaBottleID = "soda_chai"
)

// ServeOutcome describes what a Serve call did.
type ServeOutcome struct {
	// Applied is false when there was no customer to serve.
	Applied bool
	OK      bool
	Missing []string
	Extra   []string
	Points  int
	Coins   int // credited on success, deducted on failure
}

// StartGame begins a round. It reconciles energy first (day rollover or
// elapsed-time regeneration), then spends one energy. Returns false when
// no energy is left.
func (e *Engine) StartGame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reconcileEnergy(e.clock.Now())
	// Level and exp carry over between rounds.
	if e.rec.Energy <= 0 {
		e.log.Info("cannot start: no energy left")
		return false
	}
	e.rec.Energy--

	e.resetSession()
	e.state = domain.StatePlaying
	e.startedAt = e.clock.Now()
	e.rotation = e.catalog.IDs()
	e.rec.Stats.CoinsEarnedThisSession = 0

	e.log.Info("round started (%s, %ds, energy %d/%d)",
		e.rec.Settings.Difficulty, e.timeRemaining, e.rec.Energy, e.rec.MaxEnergy)
	e.autosave()
	return true
}

// SpawnCustomerWithOrder adds a customer with a fresh order at the tail of
// the queue. The dish comes from the round-robin rotation, steering away
// from recently served and currently queued dishes. No-op when full.
func (e *Engine) SpawnCustomerWithOrder() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != domain.StatePlaying {
		e.log.Debug("spawn skipped: not playing")
		return false
	}
	if e.queue.Full() {
		e.log.Debug("spawn skipped: queue full")
		return false
	}
	all := e.catalog.IDs()
	if len(all) == 0 {
		e.log.Warn("spawn skipped: empty catalog")
		return false
	}

	// Drop rotation entries no longer on the menu.
	onMenu := make(map[string]bool, len(all))
	for _, id := range all {
		onMenu[id] = true
	}
	rot := e.rotation[:0:0]
	for _, id := range e.rotation {
		if onMenu[id] {
			rot = append(rot, id)
		}
	}
	if len(rot) == 0 {
		rot = all
	}
	forced := rot[0]
	e.rotation = append(rot[1:], forced)

	exclude := append([]string(nil), e.recent...)
	for _, id := range e.queue.ItemIDs() {
		if !contains(exclude, id) {
			exclude = append(exclude, id)
		}
	}

	custSeed, orderSeed := e.nextSeeds()
	c := customer.New(custSeed)
	c.Order = e.orders.Generate(order.Options{
		Difficulty:    e.rec.Settings.Difficulty,
		Seed:          orderSeed,
		Exclude:       exclude,
		Archetype:     c.Archetype,
		ForceRecipeID: forced,
	})
	e.queue.Push(c)

	if first := c.Order.FirstItemID(); first != "" {
		next := []string{first}
		for _, id := range e.recent {
			if id != first {
				next = append(next, id)
			}
		}
		e.recent = next[:min(recentLimit, len(next))]
	}

	e.log.Debug("customer %s (%s) ordered %s, total %d", c.ID, c.Archetype, c.Order.FirstItemID(), c.Order.TotalPrice)
	return true
}

// nextSeeds derives per-spawn seeds from the engine seed. Both are nil
// when the engine is unseeded.
func (e *Engine) nextSeeds() (*int64, *int64) {
	if e.seed == nil {
		return nil, nil
	}
	base := *e.seed + e.spawnCount*16
	e.spawnCount++
	custSeed, orderSeed := base, base+8
	return &custSeed, &orderSeed
}

// AcceptOrder marks the head customer's order as being prepared and
// restarts the round timer. The countdown only runs while accepted.
func (e *Engine) AcceptOrder() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != domain.StatePlaying || e.accepted || e.queue.Len() == 0 {
		return false
	}
	e.accepted = true
	e.resetRoundTimerLocked()
	return true
}

// Serve checks the selected ingredient ids against the head order and
// applies a correct or wrong serve. The selection must match the order's
// combined ingredient set exactly. A correct serve leaves the customer in
// place; call FinalizeServeCurrentCustomerCorrect once feedback is shown.
// Outside a running round it does nothing.
func (e *Engine) Serve(selected []string) ServeOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != domain.StatePlaying {
		return ServeOutcome{}
	}
	head, ok := e.queue.Head()
	if !ok {
		return ServeOutcome{}
	}

	res := serve.Validate(serve.Combined(head.Order), serve.ProvidedFromSelection(selected))
	out := ServeOutcome{Applied: true, OK: res.OK, Missing: res.Missing, Extra: res.Extra}
	if out.OK {
		out.Points = e.serveCorrectLocked()
		out.Coins = head.Order.TotalPrice
		return out
	}
	out.Coins = e.serveWrongLocked(len(out.Missing))
	return out
}

// ServeCurrentCustomerCorrect credits score, coins, exp and stats for the
// head order. The customer stays in the queue.
func (e *Engine) ServeCurrentCustomerCorrect() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != domain.StatePlaying || e.queue.Len() == 0 {
		return false
	}
	e.serveCorrectLocked()
	return true
}

func (e *Engine) serveCorrectLocked() int {
	head, _ := e.queue.Head()
	o := head.Order

	points := 0
	for _, item := range o.Items {
		points += serve.Score(item, e.timeRemaining, e.combo)
	}
	e.score += points
	e.customersServed++
	e.combo++

	e.rec.Coins += o.TotalPrice
	e.sessionCoins += o.TotalPrice
	e.addExpLocked(max(1, len(o.Items)))

	st := &e.rec.Stats
	st.CustomerTypeCounts[head.Archetype]++
	for _, item := range o.Items {
		st.ItemSoldCounts[item.ID]++
		if item.ID == sodaBottleID {
			st.TotalSodaChaiSold++
		}
	}

	e.log.Info("served %s: +%d points, +%d coins, combo %d", head.ID, points, o.TotalPrice, e.combo)
	return points
}

// FinalizeServeCurrentCustomerCorrect removes the served head customer.
func (e *Engine) FinalizeServeCurrentCustomerCorrect() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.queue.PopHead(); !ok {
		return false
	}
	e.accepted = false
	return true
}

// ServeCurrentCustomerWrong penalizes a wrong serve. The customer stays
// for a retry with less patience. missing > 0 counts as a possible
// out-of-stock.
func (e *Engine) ServeCurrentCustomerWrong(missing int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != domain.StatePlaying || e.queue.Len() == 0 {
		return false
	}
	e.serveWrongLocked(missing)
	return true
}

func (e *Engine) serveWrongLocked(missing int) int {
	head, _ := e.queue.Head()
	penalty := serve.Penalty(head.Order.TotalPrice)

	e.queue.UpdateHead(func(c *domain.Customer) {
		c.Patience = max(0, c.Patience-e.tuning.PatienceLoss)
		if c.Patience <= e.tuning.AngryPatience {
			c.Mood = domain.MoodAngry
		} else {
			c.Mood = domain.MoodImpatient
		}
	})
	e.combo = 0
	e.rec.Coins = max(0, e.rec.Coins-penalty)
	e.sessionCoins = max(0, e.sessionCoins-penalty)
	e.score = max(0, e.score-e.tuning.WrongServeScorePenalty)

	e.rec.Stats.WrongServeCount++
	e.rec.Stats.OutOfStockCount += max(0, min(1, missing))

	e.log.Info("wrong serve for %s: -%d coins", head.ID, penalty)
	return penalty
}

// EndGame closes the round: high score and coin watermarks, a leaderboard
// row scored by the coins earned this round, and a stats snapshot.
func (e *Engine) EndGame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != domain.StatePlaying {
		return false
	}
	duration := 0
	if !e.startedAt.IsZero() {
		duration = max(0, int(math.Round(e.clock.Now().Sub(e.startedAt).Seconds())))
	}

	e.rec.HighScore = max(e.rec.HighScore, e.score)
	e.rec.HighCoins = max(e.rec.HighCoins, e.sessionCoins)
	e.rec.TotalGamesPlayed++
	e.rec.Leaderboard = insertRanked(e.rec.Leaderboard, domain.LeaderboardEntry{
		PlayerName:      e.rec.PlayerName,
		Score:           e.sessionCoins,
		Duration:        duration,
		CustomersServed: e.customersServed,
	})
	e.rec.Stats.CoinsEarnedThisSession = e.sessionCoins

	e.state = domain.StateGameOver
	e.paused = false
	e.accepted = false
	e.queue.Clear()

	e.log.Info("round over: score %d, %d coins, %d served in %ds", e.score, e.sessionCoins, e.customersServed, duration)
	e.autosave()
	return true
}

// DecrementTime ticks the round timer down by one second, floor zero.
// No-op while paused.
func (e *Engine) DecrementTime() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.paused {
		return false
	}
	e.timeRemaining = max(0, e.timeRemaining-1)
	return true
}

// ResetRoundTimer sets the timer to the difficulty base minus a per-level
// reduction, floored.
func (e *Engine) ResetRoundTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetRoundTimerLocked()
}

func (e *Engine) resetRoundTimerLocked() {
	base := e.rec.Settings.Difficulty.RoundSeconds()
	e.timeRemaining = max(e.tuning.MinRoundSeconds, base-e.rec.Level*e.tuning.TimerReductionPerLevel)
}

// PauseGame pauses a running round.
func (e *Engine) PauseGame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != domain.StatePlaying || e.paused {
		return false
	}
	e.paused = true
	return true
}

// ResumeGame clears the pause flag.
func (e *Engine) ResumeGame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.paused {
		return false
	}
	e.paused = false
	return true
}

// ResetGame returns to the menu, dropping the session and the per-recipe
// free hints.
func (e *Engine) ResetGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetSession()
	e.rec.Hints.RecipeFreeUsed = make(map[string]bool)
}

// insertRanked adds entry, sorts by score descending (stable for ties)
// and renumbers ranks 1..n.
func insertRanked(list []domain.LeaderboardEntry, entry domain.LeaderboardEntry) []domain.LeaderboardEntry {
	out := append(append([]domain.LeaderboardEntry(nil), list...), entry)
	slices.SortStableFunc(out, func(a, b domain.LeaderboardEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
