package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Game state at window end
	Score     int `csv:"score"`
	EvilCount int `csv:"evil"`
	GoodCount int `csv:"good"`

	// Events during window
	EvilSpawns int `csv:"evil_spawns"`
	GoodSpawns int `csv:"good_spawns"`
	EvilDeaths int `csv:"evil_deaths"`
	GoodDeaths int `csv:"good_deaths"`

	// Combat
	EvilHits       int     `csv:"evil_hits"`
	GoodHits       int     `csv:"good_hits"`
	EvilKills      int     `csv:"evil_kills"`
	GoodKills      int     `csv:"good_kills"`
	EvilDamage     float64 `csv:"evil_damage"`
	GoodDamage     float64 `csv:"good_damage"`
	EvilKillPerHit float64 `csv:"evil_kill_per_hit"`
	ScoreEvents    int     `csv:"score_events"`

	// Arbitration
	BehaviorChanges int `csv:"behavior_changes"`
	Fallbacks       int `csv:"fallbacks"`

	// Active behavior counts at window end
	IdleCount         int `csv:"idle"`
	MoveToOriginCount int `csv:"move_to_origin"`
	WanderCount       int `csv:"wander"`
	ChaseCount        int `csv:"chase"`
	FleeCount         int `csv:"flee"`
	AttackCount       int `csv:"attack"`
	DeadCount         int `csv:"dead"`

	// Health distribution (sampled at window end, living units only)
	EvilHealthMean float64 `csv:"evil_health_mean"`
	EvilHealthP10  float64 `csv:"evil_health_p10"`
	EvilHealthP50  float64 `csv:"evil_health_p50"`
	EvilHealthP90  float64 `csv:"evil_health_p90"`
	GoodHealthMean float64 `csv:"good_health_mean"`
	GoodHealthP10  float64 `csv:"good_health_p10"`
	GoodHealthP50  float64 `csv:"good_health_p50"`
	GoodHealthP90  float64 `csv:"good_health_p90"`

	PlayerHealth float64 `csv:"player_health"`
	PlayerMana   int     `csv:"player_mana"`
}

// Percentile returns the p-quantile (0..1) of sorted values using the empirical
// distribution: the smallest value whose cumulative share reaches p.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeHealthStats calculates mean and percentiles for health values.
func ComputeHealthStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("score", s.Score),
		slog.Int("evil", s.EvilCount),
		slog.Int("good", s.GoodCount),
		slog.Int("evil_kills", s.EvilKills),
		slog.Int("good_kills", s.GoodKills),
		slog.Float64("evil_damage", s.EvilDamage),
		slog.Float64("good_damage", s.GoodDamage),
		slog.Int("behavior_changes", s.BehaviorChanges),
		slog.Float64("player_health", s.PlayerHealth),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"score", s.Score,
		"evil", s.EvilCount,
		"good", s.GoodCount,
		"evil_spawns", s.EvilSpawns,
		"good_spawns", s.GoodSpawns,
		"evil_deaths", s.EvilDeaths,
		"good_deaths", s.GoodDeaths,
		"evil_hits", s.EvilHits,
		"good_hits", s.GoodHits,
		"evil_kills", s.EvilKills,
		"good_kills", s.GoodKills,
		"evil_damage", s.EvilDamage,
		"good_damage", s.GoodDamage,
		"behavior_changes", s.BehaviorChanges,
		"fallbacks", s.Fallbacks,
		"wander", s.WanderCount,
		"chase", s.ChaseCount,
		"flee", s.FleeCount,
		"attack", s.AttackCount,
		"evil_health_mean", s.EvilHealthMean,
		"good_health_mean", s.GoodHealthMean,
		"player_health", s.PlayerHealth,
		"player_mana", s.PlayerMana,
	)
}
