package main

import (
	"log"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/darkarts/config"
	"github.com/pthm-cable/darkarts/game"
	"github.com/pthm-cable/darkarts/telemetry"
)

// FitnessEvaluator runs headless battles and scores how close they land to the
// target game length.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	configPath  string
	targetSec   float64
	statsWindow float64

	// Best run tracking
	mu           sync.Mutex
	bestFitness  float64
	bestVeterans []telemetry.Veteran
	lastSurvival float64 // mean survival seconds from the most recent Evaluate call
	lastQuality  float64 // quality from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, configPath string, targetSec float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		configPath:  configPath,
		targetSec:   targetSec,
		statsWindow: 10.0,
		bestFitness: math.Inf(1),
	}
}

// BestVeterans returns the veteran table from the best evaluation.
func (fe *FitnessEvaluator) BestVeterans() []telemetry.Veteran {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestVeterans
}

// LastResult returns the mean survival and quality of the most recent evaluation.
func (fe *FitnessEvaluator) LastResult() (survivalSec, quality float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvival, fe.lastQuality
}

// runResult holds the results from a single battle.
type runResult struct {
	survivalSec float64                 // sim-seconds until game over, or the cap
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
	veterans    []telemetry.Veteran
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness  float64
	survival float64
	quality  float64
	veterans []telemetry.Veteran
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runBattle(x, s)
			if err != nil {
				log.Printf("seed %d: %v", s, err)
				results[idx] = seedResult{fitness: math.Inf(1)}
				return
			}
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness:  fe.computeFitness(result.survivalSec, quality),
				survival: result.survivalSec,
				quality:  quality,
				veterans: result.veterans,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalSurvival, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedVeterans []telemetry.Veteran

	for _, r := range results {
		totalFitness += r.fitness
		totalSurvival += r.survival
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedVeterans = r.veterans
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestVeterans = bestSeedVeterans
	}
	fe.lastSurvival = totalSurvival / n
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runBattle executes a single headless battle with the autopilot summoning.
// Runs until game over or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runBattle(x []float64, seed int64) (*runResult, error) {
	// Every run gets its own config; profiles are mutated in place.
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return nil, err
	}
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Config:         cfg,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	pilot := game.NewAutopilot(g.SummonableUnits())
	for g.Tick() < fe.maxTicks && !g.IsGameOver() {
		pilot.Step(g)
		g.UpdateHeadless()
	}

	result.survivalSec = float64(g.Tick()) * cfg.Physics.DT
	result.veterans = g.Veterans(10)
	return result, nil
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: relErr² - 0.2 × quality, where relErr is the relative miss of the
// target game length. Length dominates; quality separates configs of similar length.
func (fe *FitnessEvaluator) computeFitness(survivalSec, quality float64) float64 {
	relErr := (survivalSec - fe.targetSec) / fe.targetSec
	return relErr*relErr - 0.2*quality
}

// Quality component weights.
const (
	qualityWeightKills     = 0.5
	qualityWeightStability = 0.3
	qualityWeightHealth    = 0.2

	qualityWarmupWindows = 1 // skip first N windows (warmup)
)

// computeQuality computes battle quality ∈ [0, 1] from window stats: steady kills,
// a stable enemy count and a player that is pressed but not overrun.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	kills := make([]float64, 0, len(valid))
	enemies := make([]float64, 0, len(valid))
	var healthSum float64
	for _, w := range valid {
		kills = append(kills, float64(w.EvilKills))
		enemies = append(enemies, float64(w.GoodCount))
		// Player health near half is the most interesting place to be.
		healthSum += math.Exp(-math.Pow((w.PlayerHealth-50)/30, 2))
	}

	killScore := 1 - math.Exp(-stat.Mean(kills, nil)/2)

	stabilityScore := 0.0
	if mean, std := stat.MeanStdDev(enemies, nil); mean > 0 && !math.IsNaN(std) {
		cv := std / mean
		stabilityScore = math.Exp(-cv * cv)
	}

	healthScore := healthSum / float64(len(valid))

	quality := qualityWeightKills*killScore +
		qualityWeightStability*stabilityScore +
		qualityWeightHealth*healthScore

	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
