package engine

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
)

const maxHintPicks = 3

// milestone is a journal entry template.
type milestone struct {
	day   int
	title string
}

var milestones = []milestone{
	{1, "Mở stall"},
	{3, "Mua radio cũ"},
	{7, "Decor bằng lồng đèn"},
	{10, "Khách VIP ghé"},
	{20, "Mở rộng bàn"},
}

// hintCategories is the order in which hint picks favor shelf categories.
var hintCategories = []recipe.Category{recipe.CategoryBase, recipe.CategoryLiquid, recipe.CategoryTopping}

// RefreshEnergy reconciles energy with the wall clock. Calling it again
// within the same regeneration tick changes nothing.
func (e *Engine) RefreshEnergy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reconcileEnergy(e.clock.Now())
}

// reconcileEnergy applies a day rollover if the calendar day changed,
// otherwise whole elapsed regeneration ticks. Caller holds mu.
func (e *Engine) reconcileEnergy(now time.Time) {
	today := now.Format(dateLayout)
	if e.rec.LastEnergyResetDate != today {
		e.rollDay(now, today)
		return
	}

	interval := e.tuning.EnergyInterval
	last := e.rec.LastEnergyAt
	if last.IsZero() {
		e.rec.LastEnergyAt = now
		return
	}
	ticks := int(now.Sub(last) / interval)
	if ticks <= 0 {
		return
	}
	e.rec.Energy = min(e.rec.MaxEnergy, e.rec.Energy+ticks)
	// Advance by whole ticks only so partial progress carries over.
	e.rec.LastEnergyAt = last.Add(time.Duration(ticks) * interval)
	e.log.Debug("energy +%d -> %d/%d", ticks, e.rec.Energy, e.rec.MaxEnergy)
}

// rollDay starts a new calendar day: full energy, fresh daily hints, one
// more journey day and a journal recompute.
func (e *Engine) rollDay(now time.Time, today string) {
	e.rec.Energy = e.rec.MaxEnergy
	e.rec.LastEnergyResetDate = today
	e.rec.LastEnergyAt = now
	e.rec.Hints.DailyFree = e.tuning.DailyFreeHints
	e.rec.Hints.LastResetDate = today
	e.rec.JourneyDay++
	e.rec.Journal = e.recomputeJournal(today)
	e.log.Info("new day %s: journey day %d", today, e.rec.JourneyDay)
}

// recomputeJournal upgrades milestones reached by journey day or coins.
// Achieved entries never revert.
func (e *Engine) recomputeJournal(today string) []domain.JournalEntry {
	out := make([]domain.JournalEntry, 0, len(milestones))
	for _, m := range milestones {
		reached := e.rec.JourneyDay >= m.day || e.rec.Coins >= e.tuning.JournalCoinThreshold
		if existing, ok := findJournal(e.rec.Journal, m); ok {
			existing.Achieved = existing.Achieved || reached
			out = append(out, existing)
			continue
		}
		out = append(out, domain.JournalEntry{
			ID:       journalID(m.day),
			Day:      m.day,
			Title:    m.title,
			Achieved: reached,
			Date:     today,
		})
	}
	return out
}

func findJournal(list []domain.JournalEntry, m milestone) (domain.JournalEntry, bool) {
	for _, j := range list {
		if j.Day == m.day && j.Title == m.title {
			return j, true
		}
	}
	return domain.JournalEntry{}, false
}

func journalID(day int) string {
	return "journal_" + strconv.Itoa(day)
}

// GetRecipeHint reveals up to three ingredient ids of a recipe. It spends,
// in order, the recipe's one-time free hint, a daily free hint, then a
// hint token. Returns false for unknown recipes or when nothing is left.
func (e *Engine) GetRecipeHint(recipeID string) ([]string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, ok := e.catalog.Lookup(recipeID)
	if !ok {
		return nil, false
	}

	h := &e.rec.Hints
	switch {
	case !h.RecipeFreeUsed[recipeID]:
		h.RecipeFreeUsed[recipeID] = true
	case h.DailyFree > 0:
		h.DailyFree--
	case h.Tokens > 0:
		h.Tokens--
	default:
		e.log.Debug("no hints left for %s", recipeID)
		return nil, false
	}

	ids := def.IngredientIDs()
	var picks []string
	for _, cat := range hintCategories {
		for _, id := range ids {
			if c, ok := recipe.CategoryOf(id); ok && c == cat {
				picks = append(picks, id)
				break
			}
		}
	}
	for _, id := range ids {
		if len(picks) >= maxHintPicks {
			break
		}
		if !contains(picks, id) {
			picks = append(picks, id)
		}
	}
	return picks[:min(maxHintPicks, len(picks))], true
}

// ResetDailyHints refills the daily free hints once per calendar day.
func (e *Engine) ResetDailyHints() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	today := e.today()
	if e.rec.Hints.LastResetDate == today {
		return false
	}
	e.rec.Hints.DailyFree = e.tuning.DailyFreeHints
	e.rec.Hints.LastResetDate = today
	return true
}

// UpdateSettings applies the non-nil fields of p. Invalid difficulties
// are ignored and volumes are clamped to [0,1].
func (e *Engine) UpdateSettings(p domain.SettingsPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.rec.Settings
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.SoundVolume != nil {
		s.SoundVolume = clampUnit(*p.SoundVolume)
	}
	if p.MusicVolume != nil {
		s.MusicVolume = clampUnit(*p.MusicVolume)
	}
	if p.Vibration != nil {
		s.Vibration = *p.Vibration
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.Difficulty != nil {
		if p.Difficulty.Valid() {
			s.Difficulty = *p.Difficulty
		} else {
			e.log.Warn("ignoring unknown difficulty %q", *p.Difficulty)
		}
	}
	if p.AutoSave != nil {
		s.AutoSave = *p.AutoSave
	}
}

// SetPlayerName renames the player for future leaderboard rows.
func (e *Engine) SetPlayerName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if name != "" {
		e.rec.PlayerName = name
	}
}

// AddCoins credits coins. Negative amounts are ignored.
func (e *Engine) AddCoins(amount int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rec.Coins += max(0, amount)
}

// AddExp credits experience, levelling up as many times as it overflows.
func (e *Engine) AddExp(amount int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.addExpLocked(amount)
}

func (e *Engine) addExpLocked(amount int) {
	threshold := e.tuning.LevelThreshold
	next := e.rec.Exp + max(0, amount)
	if up := next / threshold; up > 0 {
		e.rec.Level += up
		e.log.Info("level up: %d", e.rec.Level)
	}
	e.rec.Exp = next % threshold
}

// ConsumeEnergy spends energy, floor zero.
func (e *Engine) ConsumeEnergy(amount int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rec.Energy = max(0, e.rec.Energy-max(0, amount))
}

// RestoreEnergy adds energy up to the cap.
func (e *Engine) RestoreEnergy(amount int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rec.Energy = min(e.rec.MaxEnergy, e.rec.Energy+max(0, amount))
}

// AddCollectible stores a keepsake. Duplicate ids are ignored.
func (e *Engine) AddCollectible(c domain.Collectible) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c.ID == "" {
		c.ID = "collectible_" + uuid.NewString()
	}
	for _, have := range e.rec.Collectibles {
		if have.ID == c.ID {
			return false
		}
	}
	if c.ObtainedAt.IsZero() {
		c.ObtainedAt = e.clock.Now()
	}
	e.rec.Collectibles = append(e.rec.Collectibles, c)
	return true
}

// GrantReward is called back once an external rewarded interaction
// completes. It returns the amount granted, or 0 for unknown kinds.
func (e *Engine) GrantReward(kind domain.RewardKind) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch kind {
	case domain.RewardEnergy:
		before := e.rec.Energy
		e.rec.Energy = min(e.rec.MaxEnergy, e.rec.Energy+e.tuning.RewardEnergy)
		e.rec.LastEnergyAt = e.clock.Now()
		e.log.Info("reward: energy %d -> %d", before, e.rec.Energy)
		return e.rec.Energy - before
	case domain.RewardHint:
		e.rec.Hints.Tokens++
		e.log.Info("reward: hint token (%d)", e.rec.Hints.Tokens)
		return 1
	case domain.RewardCurrency:
		amount := max(e.tuning.MinCurrencyReward, e.sessionCoins)
		e.rec.Coins += amount
		e.log.Info("reward: +%d coins", amount)
		return amount
	}
	e.log.Warn("unknown reward kind %s", kind)
	return 0
}

func clampUnit(v float64) float64 {
	return max(0, min(1, v))
}
