package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_KillStreak(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), EvilKills: 1, EvilCount: 5, GoodCount: 3})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, EvilKills: 6, EvilCount: 5, GoodCount: 3})
	if !hasBookmark(bookmarks, BookmarkKillStreak) {
		t.Error("expected kill_streak bookmark")
	}
}

func TestBookmarkDetector_EnemySurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), GoodCount: 2, EvilCount: 5})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 2400, GoodCount: 8, EvilCount: 5})
	if !hasBookmark(bookmarks, BookmarkEnemySurge) {
		t.Error("expected enemy_surge bookmark")
	}

	// Minimum was reset to 8, so 9 is not a surge
	bookmarks = bd.Check(WindowStats{WindowEndTick: 3000, GoodCount: 9, EvilCount: 5})
	if hasBookmark(bookmarks, BookmarkEnemySurge) {
		t.Error("enemy_surge should not repeat right after triggering")
	}
}

func TestBookmarkDetector_ArmyCollapse(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), EvilCount: 10, GoodCount: 4})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 2400, EvilCount: 3, GoodCount: 4})
	if !hasBookmark(bookmarks, BookmarkArmyCollapse) {
		t.Error("expected army_collapse bookmark")
	}
}

func TestBookmarkDetector_PlayerCritical(t *testing.T) {
	bd := NewBookmarkDetector(10)

	tests := []struct {
		health float64
		want   bool
	}{
		{100, false},
		{20, true},
		{15, false}, // already flagged
		{60, false}, // recovered
		{10, true},  // flagged again
		{0, false},  // dead player is game over, not danger
	}
	for i, tt := range tests {
		got := hasBookmark(bd.Check(WindowStats{WindowEndTick: int32(i), PlayerHealth: tt.health}), BookmarkPlayerCritical)
		if got != tt.want {
			t.Errorf("step %d health %.0f: got %v, want %v", i, tt.health, got, tt.want)
		}
	}
}

func TestBookmarkDetector_Stalemate(t *testing.T) {
	bd := NewBookmarkDetector(10)

	triggered := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{
			WindowEndTick: int32(i * 600),
			EvilCount:     6,
			GoodCount:     4,
		})
		if hasBookmark(bookmarks, BookmarkStalemate) {
			triggered++
		}
	}
	if triggered != 1 {
		t.Errorf("stalemate triggered %d times, want exactly 1", triggered)
	}
}
