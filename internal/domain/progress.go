package domain

import "time"

// GameState is the top-level screen state of a play session.
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StateGameOver
)

// String returns a human-readable game state.
func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Language selects the front-end string table.
type Language string

const (
	LangVietnamese Language = "vi"
	LangEnglish    Language = "en"
)

// Settings is the external-facing configuration owned by the engine.
type Settings struct {
	Language      Language   `json:"language"`
	SoundVolume   float64    `json:"soundVolume"`
	MusicVolume   float64    `json:"musicVolume"`
	Vibration     bool       `json:"vibration"`
	Notifications bool       `json:"notifications"`
	Difficulty    Difficulty `json:"difficulty"`
	AutoSave      bool       `json:"autoSave"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Language:      LangVietnamese,
		SoundVolume:   0.7,
		MusicVolume:   0.5,
		Vibration:     true,
		Notifications: true,
		Difficulty:    DifficultyMedium,
		AutoSave:      true,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left alone.
type SettingsPatch struct {
	Language      *Language
	SoundVolume   *float64
	MusicVolume   *float64
	Vibration     *bool
	Notifications *bool
	Difficulty    *Difficulty
	AutoSave      *bool
}

// Stats are aggregate, append-mostly counters.
type Stats struct {
	CustomerTypeCounts     map[Archetype]int `json:"customerTypeCounts"`
	ItemSoldCounts         map[string]int    `json:"itemSoldCounts"`
	WrongServeCount        int               `json:"wrongServeCount"`
	OutOfStockCount        int               `json:"outOfStockCount"`
	TotalSodaChaiSold      int               `json:"totalSodaChaiSold"`
	CoinsEarnedThisSession int               `json:"coinsEarnedThisSession"`
	Notes                  []string          `json:"randomNotes"`
}

// NewStats returns zeroed stats with every archetype present.
func NewStats() Stats {
	counts := make(map[Archetype]int, len(Archetypes))
	for _, a := range Archetypes {
		counts[a] = 0
	}
	return Stats{
		CustomerTypeCounts: counts,
		ItemSoldCounts:     make(map[string]int),
	}
}

// Clone returns a deep copy of the stats.
func (s Stats) Clone() Stats {
	out := s
	out.CustomerTypeCounts = make(map[Archetype]int, len(s.CustomerTypeCounts))
	for k, v := range s.CustomerTypeCounts {
		out.CustomerTypeCounts[k] = v
	}
	out.ItemSoldCounts = make(map[string]int, len(s.ItemSoldCounts))
	for k, v := range s.ItemSoldCounts {
		out.ItemSoldCounts[k] = v
	}
	out.Notes = append([]string(nil), s.Notes...)
	return out
}

// JournalEntry is a milestone. Achieved never reverts to pending.
type JournalEntry struct {
	ID       string `json:"id"`
	Day      int    `json:"day"`
	Title    string `json:"title"`
	Achieved bool   `json:"achieved"`
	Date     string `json:"date"`
}

// LeaderboardEntry is one finished session. Rank is 1-based.
type LeaderboardEntry struct {
	Rank            int    `json:"rank"`
	PlayerName      string `json:"playerName"`
	Score           int    `json:"score"`
	Duration        int    `json:"duration"` // seconds
	CustomersServed int    `json:"customersServed"`
}

// CollectibleKind classifies collectibles.
type CollectibleKind string

const (
	CollectibleLixi    CollectibleKind = "lixi"
	CollectibleVintage CollectibleKind = "vintage_item"
	CollectibleRecipe  CollectibleKind = "recipe"
)

// Collectible is an owned keepsake.
type Collectible struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Kind        CollectibleKind `json:"type"`
	Rarity      string          `json:"rarity"`
	Description string          `json:"description"`
	ObtainedAt  time.Time       `json:"obtainedAt"`
}

// RewardKind is what an external rewarded interaction grants.
type RewardKind int

const (
	RewardUnknown RewardKind = iota
	RewardEnergy
	RewardHint
	RewardCurrency
)

// String returns a human-readable reward kind.
func (k RewardKind) String() string {
	switch k {
	case RewardEnergy:
		return "energy"
	case RewardHint:
		return "hint"
	case RewardCurrency:
		return "currency"
	default:
		return "unknown"
	}
}

// RewardFromString converts "energy", "hint", "currency" (or "coins").
func RewardFromString(s string) RewardKind {
	switch s {
	case "energy":
		return RewardEnergy
	case "hint":
		return RewardHint
	case "currency", "coins", "money":
		return RewardCurrency
	}
	return RewardUnknown
}

// SaveRecordVersion is the current persisted layout version.
const SaveRecordVersion = 1

// SaveRecord holds exactly the account-durable fields. Session fields
// (queue, score, timer) are never persisted.
type SaveRecord struct {
	Version             int                `json:"version"`
	PlayerID            string             `json:"playerId"`
	PlayerName          string             `json:"playerName"`
	HighScore           int                `json:"highScore"`
	HighCoins           int                `json:"highCoins"`
	TotalGamesPlayed    int                `json:"totalGamesPlayed"`
	Leaderboard         []LeaderboardEntry `json:"leaderboard"`
	Settings            Settings           `json:"settings"`
	Collectibles        []Collectible      `json:"collectibles"`
	Coins               int                `json:"coins"`
	Level               int                `json:"level"`
	Exp                 int                `json:"exp"`
	Energy              int                `json:"energy"`
	MaxEnergy           int                `json:"maxEnergy"`
	LastEnergyAt        time.Time          `json:"lastEnergyAt"`
	LastEnergyResetDate string             `json:"lastEnergyResetDate"`
	JourneyDay          int                `json:"journeyDay"`
	Journal             []JournalEntry     `json:"journal"`
	Stats               Stats              `json:"stats"`
	Hints               HintState          `json:"hints"`
}

// Clone returns a deep copy of the record.
func (r SaveRecord) Clone() SaveRecord {
	out := r
	out.Leaderboard = append([]LeaderboardEntry(nil), r.Leaderboard...)
	out.Collectibles = append([]Collectible(nil), r.Collectibles...)
	out.Journal = append([]JournalEntry(nil), r.Journal...)
	out.Stats = r.Stats.Clone()
	out.Hints = r.Hints.Clone()
	return out
}

// HintState tracks the three hint budgets.
type HintState struct {
	Tokens         int             `json:"hintTokens"`
	DailyFree      int             `json:"dailyFreeHints"`
	LastResetDate  string          `json:"lastHintResetDate"`
	RecipeFreeUsed map[string]bool `json:"recipeFreeHintUsed"`
}

// Clone returns a deep copy of the hint state.
func (h HintState) Clone() HintState {
	out := h
	out.RecipeFreeUsed = make(map[string]bool, len(h.RecipeFreeUsed))
	for k, v := range h.RecipeFreeUsed {
		out.RecipeFreeUsed[k] = v
	}
	return out
}
