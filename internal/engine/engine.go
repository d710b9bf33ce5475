// Package engine implements the stall's progression store: the session
// state machine (menu, playing, game over) and the durable economy of
// coins, levels, energy, hints, journal and leaderboard.
//
// Every action is safe against stale calls. An action whose precondition
// does not hold (empty queue, no energy, full queue) does nothing and
// reports false; game rules never surface as errors.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/vintagevendor/internal/config"
	"github.com/hammamikhairi/vintagevendor/internal/customer"
	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
	"github.com/hammamikhairi/vintagevendor/internal/order"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
)

// dateLayout keys calendar days for energy and hint resets.
const dateLayout = "2006-01-02"

// Option configures the engine.
type Option func(*Engine)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c domain.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithSeed makes customer and order generation reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = &seed
	}
}

// WithTuning replaces the whole balance block.
func WithTuning(t config.Tuning) Option {
	return func(e *Engine) {
		e.tuning = t
	}
}

// WithQueueCapacity sets how many customers may wait at once.
func WithQueueCapacity(n int) Option {
	return func(e *Engine) {
		e.tuning.QueueCapacity = n
	}
}

// WithEnergyInterval sets the time needed to regenerate one energy.
func WithEnergyInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.tuning.EnergyInterval = d
	}
}

// WithMaxEnergy sets the energy cap.
func WithMaxEnergy(n int) Option {
	return func(e *Engine) {
		e.tuning.MaxEnergy = n
	}
}

// WithPlayerName sets the name used on fresh saves and leaderboard rows.
func WithPlayerName(name string) Option {
	return func(e *Engine) {
		e.playerName = name
	}
}

// Engine owns all game state. A mutex serializes the UI goroutine and the
// timer supervisor; callers only ever see deep-copied snapshots.
type Engine struct {
	mu sync.Mutex

	catalog *recipe.Catalog
	orders  *order.Generator
	store   domain.ProgressStore
	log     *logger.Logger
	clock   domain.Clock
	tuning  config.Tuning

	seed       *int64
	spawnCount int64
	playerName string

	// Durable.
	rec domain.SaveRecord

	// Session only, never persisted.
	state           domain.GameState
	paused          bool
	score           int
	customersServed int
	combo           int
	timeRemaining   int
	startedAt       time.Time
	sessionCoins    int
	accepted        bool
	queue           *customer.Queue
	recent          []string
	rotation        []string
}

// New creates an engine with a fresh save record. Call Load to restore a
// persisted one. store may be nil, in which case Save and Load are no-ops.
func New(catalog *recipe.Catalog, store domain.ProgressStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog:    catalog,
		orders:     order.NewGenerator(catalog, log),
		store:      store,
		log:        log,
		clock:      domain.RealClock{},
		tuning:     config.DefaultTuning(),
		playerName: "Player",
	}
	for _, opt := range opts {
		opt(e)
	}

	e.queue = customer.NewQueue(e.tuning.QueueCapacity)
	e.rec = e.freshRecord()
	e.resetSession()
	return e
}

// freshRecord is the save of a first launch. The reset date is left empty
// so the first StartGame counts as day one of the journey.
func (e *Engine) freshRecord() domain.SaveRecord {
	return domain.SaveRecord{
		Version:      domain.SaveRecordVersion,
		PlayerID:     "player_" + uuid.NewString(),
		PlayerName:   e.playerName,
		Settings:     domain.DefaultSettings(),
		Level:        1,
		Energy:       e.tuning.MaxEnergy,
		MaxEnergy:    e.tuning.MaxEnergy,
		LastEnergyAt: e.clock.Now(),
		Stats:        domain.NewStats(),
		Hints: domain.HintState{
			DailyFree:      e.tuning.DailyFreeHints,
			RecipeFreeUsed: make(map[string]bool),
		},
	}
}

// resetSession clears every session-only field. Caller holds mu (or is New).
func (e *Engine) resetSession() {
	e.state = domain.StateMenu
	e.paused = false
	e.score = 0
	e.customersServed = 0
	e.combo = 0
	e.timeRemaining = e.rec.Settings.Difficulty.RoundSeconds()
	e.startedAt = time.Time{}
	e.sessionCoins = 0
	e.accepted = false
	e.queue.Clear()
	e.recent = nil
	e.rotation = nil
}

// Tuning returns the balance the engine runs on.
func (e *Engine) Tuning() config.Tuning {
	return e.tuning
}

// Catalog returns the recipe catalog the engine serves from.
func (e *Engine) Catalog() *recipe.Catalog {
	return e.catalog
}

// Save writes the durable record through the progress store.
func (e *Engine) Save(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	e.mu.Lock()
	rec := e.rec.Clone()
	e.mu.Unlock()

	if err := e.store.Save(ctx, &rec); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	e.log.Debug("progress saved for %s", rec.PlayerID)
	return nil
}

// Load restores the durable record and resets the session. A store with
// nothing saved yet leaves the fresh record in place.
func (e *Engine) Load(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	rec, err := e.store.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		e.log.Info("no saved progress, starting fresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading progress: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.rec = e.normalize(*rec)
	e.resetSession()
	e.log.Info("loaded progress for %s: level %d, %d coins", e.rec.PlayerName, e.rec.Level, e.rec.Coins)
	return nil
}

// normalize repairs records written by older or hand-edited saves.
func (e *Engine) normalize(rec domain.SaveRecord) domain.SaveRecord {
	rec.Version = domain.SaveRecordVersion
	if rec.PlayerID == "" {
		rec.PlayerID = "player_" + uuid.NewString()
	}
	if rec.PlayerName == "" {
		rec.PlayerName = e.playerName
	}
	if !rec.Settings.Difficulty.Valid() {
		rec.Settings.Difficulty = domain.DifficultyMedium
	}
	if rec.Settings.Language == "" {
		rec.Settings.Language = domain.LangVietnamese
	}
	if rec.Level < 1 {
		rec.Level = 1
	}
	if rec.MaxEnergy <= 0 {
		rec.MaxEnergy = e.tuning.MaxEnergy
	}
	rec.Energy = max(0, min(rec.Energy, rec.MaxEnergy))
	rec.Coins = max(0, rec.Coins)
	if rec.Stats.CustomerTypeCounts == nil || rec.Stats.ItemSoldCounts == nil {
		fresh := domain.NewStats()
		if rec.Stats.CustomerTypeCounts == nil {
			rec.Stats.CustomerTypeCounts = fresh.CustomerTypeCounts
		}
		if rec.Stats.ItemSoldCounts == nil {
			rec.Stats.ItemSoldCounts = fresh.ItemSoldCounts
		}
	}
	if rec.Hints.RecipeFreeUsed == nil {
		rec.Hints.RecipeFreeUsed = make(map[string]bool)
	}
	return rec
}

// autosave persists at lifecycle points when the player opted in.
// Failures are logged only. Caller holds mu.
func (e *Engine) autosave() {
	if e.store == nil || !e.rec.Settings.AutoSave {
		return
	}
	rec := e.rec.Clone()
	if err := e.store.Save(context.Background(), &rec); err != nil {
		e.log.Warn("autosave failed: %v", err)
	}
}

func (e *Engine) today() string {
	return e.clock.Now().Format(dateLayout)
}
