package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/darkarts/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:     SnapshotVersion,
		RNGSeed:     42,
		WorldWidth:  1920,
		WorldHeight: 1080,
		Tick:        1000,
		Score:       30,
		Units: []UnitState{
			{
				ID:       1,
				Profile:  "warrior",
				Team:     components.TeamEvil.String(),
				X:        150,
				Y:        -250,
				VelX:     0.5,
				VelY:     -0.3,
				Health:   75,
				Behavior: components.BehaviorAttack,
				Lifetime: &LifetimeStatsJSON{
					SpawnTick:   100,
					Kills:       3,
					DamageDealt: 42,
				},
			},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkKillStreak,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != snapshot.RNGSeed {
		t.Errorf("RNGSeed mismatch: got %d, want %d", loaded.RNGSeed, snapshot.RNGSeed)
	}
	if loaded.Score != 30 {
		t.Errorf("Score mismatch: got %d, want 30", loaded.Score)
	}
	if len(loaded.Units) != 1 {
		t.Fatalf("Units count mismatch: got %d, want 1", len(loaded.Units))
	}
	if loaded.Units[0].Behavior != components.BehaviorAttack {
		t.Errorf("Behavior mismatch: got %v, want attack", loaded.Units[0].Behavior)
	}
	if loaded.Units[0].Lifetime == nil || loaded.Units[0].Lifetime.Kills != 3 {
		t.Errorf("Lifetime not restored: %+v", loaded.Units[0].Lifetime)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkKillStreak {
		t.Errorf("Bookmark not restored: %+v", loaded.Bookmark)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:  SnapshotVersion,
		Tick:     5000,
		Bookmark: &Bookmark{Type: BookmarkArmyCollapse, Tick: 5000},
	}
	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_5000_army_collapse.json"); path != want {
		t.Errorf("Path mismatch: got %s, want %s", path, want)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_3000.json"); path != want {
		t.Errorf("Path mismatch: got %s, want %s", path, want)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil manager is a no-op
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := int32(1); i <= 2; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 600, Score: int(i) * 10}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkStalemate, Tick: 1200}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 3 { // header + 2 rows
		t.Errorf("telemetry.csv has %d lines, want 3", lines)
	}
}
