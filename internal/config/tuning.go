package config

import "time"

// Tuning holds the economy balance numbers the engine runs on.
type Tuning struct {
	// Energy
	MaxEnergy      int           `yaml:"max_energy" json:"max_energy"`
	EnergyInterval time.Duration `yaml:"energy_interval" json:"energy_interval"`
	RewardEnergy   int           `yaml:"reward_energy" json:"reward_energy"`

	// Hints
	DailyFreeHints int `yaml:"daily_free_hints" json:"daily_free_hints"`

	// Progression
	LevelThreshold       int `yaml:"level_threshold" json:"level_threshold"`
	JournalCoinThreshold int `yaml:"journal_coin_threshold" json:"journal_coin_threshold"`
	MinCurrencyReward    int `yaml:"min_currency_reward" json:"min_currency_reward"`

	// Round pacing
	QueueCapacity          int           `yaml:"queue_capacity" json:"queue_capacity"`
	SpawnInterval          time.Duration `yaml:"spawn_interval" json:"spawn_interval"`
	TimerReductionPerLevel int           `yaml:"timer_reduction_per_level" json:"timer_reduction_per_level"`
	MinRoundSeconds        int           `yaml:"min_round_seconds" json:"min_round_seconds"`

	// Wrong serves
	WrongServeScorePenalty int `yaml:"wrong_serve_score_penalty" json:"wrong_serve_score_penalty"`
	PatienceLoss           int `yaml:"patience_loss" json:"patience_loss"`
	AngryPatience          int `yaml:"angry_patience" json:"angry_patience"`
}

// DefaultTuning returns the standard balance.
func DefaultTuning() Tuning {
	return Tuning{
		MaxEnergy:              5,
		EnergyInterval:         10 * time.Minute,
		RewardEnergy:           5,
		DailyFreeHints:         3,
		LevelThreshold:         10,
		JournalCoinThreshold:   2_200_000,
		MinCurrencyReward:      1000,
		QueueCapacity:          5,
		SpawnInterval:          8 * time.Second,
		TimerReductionPerLevel: 5,
		MinRoundSeconds:        20,
		WrongServeScorePenalty: 50,
		PatienceLoss:           20,
		AngryPatience:          20,
	}
}

// CasualTuning returns an easier balance for relaxed play.
func CasualTuning() Tuning {
	t := DefaultTuning()
	t.MaxEnergy = 8
	t.EnergyInterval = 5 * time.Minute
	t.DailyFreeHints = 5
	t.SpawnInterval = 10 * time.Second
	t.WrongServeScorePenalty = 25
	t.PatienceLoss = 10
	return t
}

// HardTuning returns a stricter balance for experienced players.
func HardTuning() Tuning {
	t := DefaultTuning()
	t.MaxEnergy = 3
	t.EnergyInterval = 15 * time.Minute
	t.DailyFreeHints = 1
	t.SpawnInterval = 6 * time.Second
	t.MinRoundSeconds = 15
	t.WrongServeScorePenalty = 100
	t.PatienceLoss = 30
	return t
}

// TuningPreset returns the named preset ("default", "casual", "hard").
func TuningPreset(name string) (Tuning, bool) {
	switch name {
	case "", "default", "normal":
		return DefaultTuning(), true
	case "casual":
		return CasualTuning(), true
	case "hard":
		return HardTuning(), true
	}
	return Tuning{}, false
}

// fillZero copies every unset field from d.
func (t *Tuning) fillZero(d Tuning) {
	if t.MaxEnergy == 0 {
		t.MaxEnergy = d.MaxEnergy
	}
	if t.EnergyInterval == 0 {
		t.EnergyInterval = d.EnergyInterval
	}
	if t.RewardEnergy == 0 {
		t.RewardEnergy = d.RewardEnergy
	}
	if t.DailyFreeHints == 0 {
		t.DailyFreeHints = d.DailyFreeHints
	}
	if t.LevelThreshold == 0 {
		t.LevelThreshold = d.LevelThreshold
	}
	if t.JournalCoinThreshold == 0 {
		t.JournalCoinThreshold = d.JournalCoinThreshold
	}
	if t.MinCurrencyReward == 0 {
		t.MinCurrencyReward = d.MinCurrencyReward
	}
	if t.QueueCapacity == 0 {
		t.QueueCapacity = d.QueueCapacity
	}
	if t.SpawnInterval == 0 {
		t.SpawnInterval = d.SpawnInterval
	}
	if t.TimerReductionPerLevel == 0 {
		t.TimerReductionPerLevel = d.TimerReductionPerLevel
	}
	if t.MinRoundSeconds == 0 {
		t.MinRoundSeconds = d.MinRoundSeconds
	}
	if t.WrongServeScorePenalty == 0 {
		t.WrongServeScorePenalty = d.WrongServeScorePenalty
	}
	if t.PatienceLoss == 0 {
		t.PatienceLoss = d.PatienceLoss
	}
	if t.AngryPatience == 0 {
		t.AngryPatience = d.AngryPatience
	}
}
