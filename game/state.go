package game

import (
	"time"

	"github.com/pthm-cable/darkarts/components"
	"github.com/pthm-cable/darkarts/config"
	"github.com/pthm-cable/darkarts/telemetry"
)

// State holds the scoring and game-over rules.
type State struct {
	Score    int
	GameOver bool

	scorePerKill int
	endTimer     components.Timer
}

// NewState returns a fresh state.
func NewState(cfg config.GameConfig) State {
	return State{
		scorePerKill: cfg.ScorePerKill,
		endTimer:     components.NewTimer(config.Seconds(cfg.EndScreenDelay)),
	}
}

// Apply folds one event into the state. Score stops counting once the game is over.
func (s *State) Apply(e telemetry.Event) {
	if e.Type == telemetry.EventScore && !s.GameOver {
		s.Score += s.scorePerKill
	}
}

// SetGameOver ends the game. Repeated calls are no-ops.
func (s *State) SetGameOver() {
	s.GameOver = true
}

// Update advances the end screen timer while the game is over.
func (s *State) Update(dt time.Duration) {
	if s.GameOver {
		s.endTimer.Tick(dt)
	}
}

// EndScreenReady reports whether the end screen delay has elapsed.
func (s *State) EndScreenReady() bool {
	return s.GameOver && s.endTimer.Finished()
}

// Reset clears score and game over.
func (s *State) Reset() {
	s.Score = 0
	s.GameOver = false
	s.endTimer.Reset(s.endTimer.Duration)
}
