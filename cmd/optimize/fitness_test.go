package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/darkarts/config"
	"github.com/pthm-cable/darkarts/telemetry"
)

func TestComputeFitness(t *testing.T) {
	fe := &FitnessEvaluator{targetSec: 100}

	tests := []struct {
		name     string
		survival float64
		quality  float64
		want     float64
	}{
		{"on target", 100, 0, 0},
		{"on target with quality", 100, 1, -0.2},
		{"half length", 50, 0, 0.25},
		{"double length", 200, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fe.computeFitness(tt.survival, tt.quality)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("computeFitness(%v, %v) = %v, want %v", tt.survival, tt.quality, got, tt.want)
			}
		})
	}
}

func TestComputeQualityBounds(t *testing.T) {
	if q := computeQuality(nil); q != 0 {
		t.Errorf("quality of no windows = %v, want 0", q)
	}

	windows := make([]telemetry.WindowStats, 6)
	for i := range windows {
		windows[i] = telemetry.WindowStats{EvilKills: 4, GoodCount: 5, PlayerHealth: 50}
	}
	q := computeQuality(windows)
	if q <= 0.8 || q > 1 {
		t.Errorf("steady battle quality = %v, want in (0.8, 1]", q)
	}
}

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], def[i])
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()

	values := []float64{2.5, 80, 100, 0.8, 12, 1000, 7}
	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	want := []float64{2.5, 80, 100, 0.8, 12, 100, 7} // player mana clamped to its spec max
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s = %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}
