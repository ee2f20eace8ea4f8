package program_test

import (
	"testing"
	"time"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
)

var streakToday = time.Date(2026, 4, 20, 18, 0, 0, 0, time.Local)

func dayKey(offset int) string {
	return program.DateKey(streakToday.AddDate(0, 0, offset))
}

// scoring85 skips protein: 30 water + 10 before meals + 25 veggies + 10 fats + 10 window.
func scoring85() model.DailyLog {
	return model.DailyLog{Water: 3, WaterBeforeMeals: 3, Veggies: true, FatsCount: 1, EatingWindowHours: 10}
}

// scoring50 drinks nothing, goes over the fat limit and eats for 14 hours.
func scoring50() model.DailyLog {
	return model.DailyLog{WaterBeforeMeals: 3, Veggies: true, Protein: true, FatsCount: 5, EatingWindowHours: 14}
}

func TestStreakEmptyHistory(t *testing.T) {
	t.Parallel()
	if got := program.Streak(program.History{}, streakToday); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := program.Streak(nil, streakToday); got != 0 {
		t.Fatalf("expected 0 for nil history, got %d", got)
	}
}

func TestStreakTodayOnly(t *testing.T) {
	t.Parallel()
	history := program.History{dayKey(0): scoring85()}
	if got := program.Streak(history, streakToday); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestStreakStopsAtLowScore(t *testing.T) {
	t.Parallel()
	if program.Score(scoring85()) != 85 || program.Score(scoring50()) != 50 {
		t.Fatalf("fixture scores drifted: %d, %d", program.Score(scoring85()), program.Score(scoring50()))
	}
	history := program.History{dayKey(-5): scoring50()}
	for i := 0; i >= -4; i-- {
		history[dayKey(i)] = scoring85()
	}
	history[dayKey(-6)] = scoring85()
	if got := program.Streak(history, streakToday); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestStreakStopsAtGap(t *testing.T) {
	t.Parallel()
	history := program.History{
		dayKey(0):  scoring85(),
		dayKey(-1): scoring85(),
		dayKey(-3): scoring85(),
		dayKey(-4): scoring85(),
	}
	if got := program.Streak(history, streakToday); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestStreakRequiresToday(t *testing.T) {
	t.Parallel()
	history := program.History{
		dayKey(0):  scoring50(),
		dayKey(-1): scoring85(),
		dayKey(-2): scoring85(),
	}
	if got := program.Streak(history, streakToday); got != 0 {
		t.Fatalf("expected 0 when today is not compliant, got %d", got)
	}
}

func TestStreakCappedAtLookback(t *testing.T) {
	t.Parallel()
	history := program.History{}
	for i := 0; i < 45; i++ {
		history[dayKey(-i)] = scoring85()
	}
	if got := program.Streak(history, streakToday); got != program.StreakLookback {
		t.Fatalf("expected cap %d, got %d", program.StreakLookback, got)
	}
	if got := program.LongestRun(history); got != 45 {
		t.Fatalf("expected uncapped longest run 45, got %d", got)
	}
}

func TestLongestRunFindsHistoricalRun(t *testing.T) {
	t.Parallel()
	history := program.History{
		dayKey(-10): scoring85(),
		dayKey(-9):  scoring85(),
		dayKey(-8):  scoring85(),
		dayKey(-7):  scoring50(),
		dayKey(-1):  scoring85(),
		dayKey(0):   scoring85(),
		"not-a-date": scoring85(),
	}
	if got := program.LongestRun(history); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := program.LongestRun(program.History{}); got != 0 {
		t.Fatalf("expected 0 for empty history, got %d", got)
	}
}
