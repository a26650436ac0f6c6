package components

import (
	"testing"
	"time"
)

// fixedRNG returns the same draw every time.
type fixedRNG struct {
	f float32
	n int
}

func (r fixedRNG) Float32() float32 { return r.f }
func (r fixedRNG) Intn(int) int     { return r.n }

func TestTimer_JustFinishedOnce(t *testing.T) {
	timer := NewTimer(300 * time.Millisecond)

	steps := []struct {
		dt   time.Duration
		want bool
	}{
		{100 * time.Millisecond, false},
		{100 * time.Millisecond, false},
		{100 * time.Millisecond, true},
		{100 * time.Millisecond, false},
	}
	for i, s := range steps {
		if got := timer.Tick(s.dt); got != s.want {
			t.Errorf("tick %d: got %v, want %v", i, got, s.want)
		}
	}
	if !timer.Finished() {
		t.Error("timer should stay finished")
	}
}

func TestTimer_Saturates(t *testing.T) {
	tests := []struct {
		name        string
		duration    time.Duration
		dt          time.Duration
		wantElapsed time.Duration
		wantDone    bool
	}{
		{"overshoot clamps to duration", time.Second, 5 * time.Second, time.Second, true},
		{"huge delta", time.Second, time.Duration(1<<63 - 1), time.Second, true},
		{"negative delta ignored", time.Second, -time.Second, 0, false},
		{"zero duration finishes", 0, 0, 0, true},
		{"negative duration clamps", -time.Second, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := NewTimer(tt.duration)
			done := timer.Tick(tt.dt)
			if done != tt.wantDone {
				t.Errorf("Tick = %v, want %v", done, tt.wantDone)
			}
			if timer.Elapsed != tt.wantElapsed {
				t.Errorf("Elapsed = %v, want %v", timer.Elapsed, tt.wantElapsed)
			}
		})
	}
}

func TestTimer_Reset(t *testing.T) {
	timer := NewTimer(time.Second)
	timer.Tick(time.Second)

	timer.Reset(2 * time.Second)
	if timer.Finished() {
		t.Error("reset timer should not be finished")
	}
	if timer.Elapsed != 0 || timer.Duration != 2*time.Second {
		t.Errorf("after reset = %v/%v, want 0/2s", timer.Elapsed, timer.Duration)
	}
	if timer.Tick(time.Second) {
		t.Error("finished halfway")
	}
	if !timer.Tick(time.Second) {
		t.Error("did not finish after full duration")
	}
}

func TestJittered(t *testing.T) {
	tests := []struct {
		name   string
		base   time.Duration
		jitter time.Duration
		draw   float32
		want   time.Duration
	}{
		{"no jitter", time.Second, 0, 0.9, time.Second},
		{"half draw", 1500 * time.Millisecond, 750 * time.Millisecond, 0.5, 1875 * time.Millisecond},
		{"zero draw", time.Second, time.Second, 0, time.Second},
		{"negative base", -time.Second, 0, 0.5, 0},
		{"negative jitter", time.Second, -time.Second, 0.5, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jittered(tt.base, tt.jitter, fixedRNG{f: tt.draw})
			if got != tt.want {
				t.Errorf("Jittered = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJitteredAmount(t *testing.T) {
	if got := JitteredAmount(10, 5, fixedRNG{f: 0.5}); got != 12.5 {
		t.Errorf("JitteredAmount = %v, want 12.5", got)
	}
	if got := JitteredAmount(10, 5, nil); got != 10 {
		t.Errorf("JitteredAmount without rng = %v, want 10", got)
	}
}

func TestTimerString(t *testing.T) {
	timer := NewTimer(2 * time.Second)
	timer.Tick(500 * time.Millisecond)
	if got := timer.String(); got != "500ms/2s" {
		t.Errorf("String = %q, want 500ms/2s", got)
	}
}
