package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkKillStreak     BookmarkType = "kill_streak"
	BookmarkEnemySurge     BookmarkType = "enemy_surge"
	BookmarkArmyCollapse   BookmarkType = "army_collapse"
	BookmarkPlayerCritical BookmarkType = "player_critical"
	BookmarkStalemate      BookmarkType = "stalemate"
)

// Health at or below which the player is considered in danger.
const criticalPlayerHealth = 25

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments of a battle from window stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentGoodMin     int
	recentEvilPeak    int
	playerCritical    bool
	stalemateWindows  int
	haveFirstGoodMark bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stalemate detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Player danger does not need history
	if b := bd.checkPlayerCritical(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkKillStreak(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkEnemySurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkArmyCollapse(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStalemate(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if stats.GoodCount < bd.recentGoodMin || !bd.haveFirstGoodMark {
		bd.recentGoodMin = stats.GoodCount
		bd.haveFirstGoodMark = true
	}
	if stats.EvilCount > bd.recentEvilPeak {
		bd.recentEvilPeak = stats.EvilCount
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkKillStreak(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	kills := make([]float64, len(history))
	for i, h := range history {
		kills[i] = float64(h.EvilKills)
	}
	avg := stat.Mean(kills, nil)

	if stats.EvilKills >= 3 && float64(stats.EvilKills) > avg*2 {
		return &Bookmark{
			Type:        BookmarkKillStreak,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d kills in window, average %.1f", stats.EvilKills, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkEnemySurge(stats WindowStats) *Bookmark {
	threshold := max(bd.recentGoodMin*2, 6)
	if stats.GoodCount < threshold {
		return nil
	}

	oldMin := bd.recentGoodMin
	bd.recentGoodMin = stats.GoodCount
	return &Bookmark{
		Type:        BookmarkEnemySurge,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Enemy count rose from %d to %d", oldMin, stats.GoodCount),
	}
}

func (bd *BookmarkDetector) checkArmyCollapse(stats WindowStats) *Bookmark {
	if bd.recentEvilPeak < 4 {
		return nil
	}

	drop := 1.0 - float64(stats.EvilCount)/float64(bd.recentEvilPeak)
	if drop <= 0.5 {
		return nil
	}

	oldPeak := bd.recentEvilPeak
	bd.recentEvilPeak = stats.EvilCount
	return &Bookmark{
		Type:        BookmarkArmyCollapse,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Army fell %.0f%% from peak %d to %d", drop*100, oldPeak, stats.EvilCount),
	}
}

func (bd *BookmarkDetector) checkPlayerCritical(stats WindowStats) *Bookmark {
	if stats.PlayerHealth > criticalPlayerHealth {
		bd.playerCritical = false
		return nil
	}
	if stats.PlayerHealth <= 0 || bd.playerCritical {
		return nil
	}

	bd.playerCritical = true
	return &Bookmark{
		Type:        BookmarkPlayerCritical,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Player health down to %.0f", stats.PlayerHealth),
	}
}

func (bd *BookmarkDetector) checkStalemate(stats WindowStats) *Bookmark {
	if stats.EvilCount < 2 || stats.GoodCount < 2 || stats.EvilKills+stats.GoodKills > 0 {
		bd.stalemateWindows = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	evil := make([]float64, len(history))
	good := make([]float64, len(history))
	for i, h := range history {
		evil[i] = float64(h.EvilCount)
		good[i] = float64(h.GoodCount)
	}
	evilMean, evilVar := stat.PopMeanVariance(evil, nil)
	goodMean, goodVar := stat.PopMeanVariance(good, nil)

	// Squared coefficient of variation below 0.04 (CV < 20%)
	if evilMean > 0 && goodMean > 0 &&
		evilVar/(evilMean*evilMean) < 0.04 && goodVar/(goodMean*goodMean) < 0.04 {
		bd.stalemateWindows++
	} else {
		bd.stalemateWindows = 0
	}

	if bd.stalemateWindows == 5 { // trigger exactly once per stalemate
		return &Bookmark{
			Type:        BookmarkStalemate,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("No kills with %d evil and %d good units holding for 5 windows", stats.EvilCount, stats.GoodCount),
		}
	}
	return nil
}
