package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/darkarts/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the battlefield state at one tick.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	WorldWidth  float32 `json:"world_width"`
	WorldHeight float32 `json:"world_height"`

	Tick     int32 `json:"tick"`
	Score    int   `json:"score"`
	GameOver bool  `json:"game_over"`

	Units []UnitState `json:"units"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// UnitState holds one unit's observable state.
type UnitState struct {
	ID       uint32                  `json:"id"`
	Profile  string                  `json:"profile"`
	Team     string                  `json:"team"`
	X        float32                 `json:"x"`
	Y        float32                 `json:"y"`
	VelX     float32                 `json:"vel_x"`
	VelY     float32                 `json:"vel_y"`
	Health   float32                 `json:"health"`
	Behavior components.BehaviorKind `json:"behavior"`

	Lifetime *LifetimeStatsJSON `json:"lifetime,omitempty"`
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	SpawnTick       int32   `json:"spawn_tick"`
	SurvivalTimeSec float32 `json:"survival_time_sec"`
	Hits            int     `json:"hits"`
	Kills           int     `json:"kills"`
	DamageDealt     float32 `json:"damage_dealt"`
	DamageTaken     float32 `json:"damage_taken"`
	BehaviorChanges int     `json:"behavior_changes"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		SpawnTick:       ls.SpawnTick,
		SurvivalTimeSec: ls.SurvivalTimeSec,
		Hits:            ls.Hits,
		Kills:           ls.Kills,
		DamageDealt:     ls.DamageDealt,
		DamageTaken:     ls.DamageTaken,
		BehaviorChanges: ls.BehaviorChanges,
	}
}

// SaveSnapshot writes a snapshot to dir and returns the file path.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
