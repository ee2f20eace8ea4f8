package service_test

import (
	"errors"
	"testing"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
	"github.com/omriBer/diet/internal/service"
)

func perfectDay() service.DailyLogUpdate {
	return service.DailyLogUpdate{
		Water:             ptr(3.0),
		WaterBeforeMeals:  ptr(3),
		Veggies:           ptr(true),
		Protein:           ptr(true),
		FatsCount:         ptr(1),
		EatingWindowHours: ptr(10.0),
	}
}

func TestTodaySummaryBeforeSetup(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.TodaySummary(db, testNow); !errors.Is(err, program.ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM daily_logs`).Scan(&n); err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if n != 0 {
		t.Fatalf("no log may be created before onboarding, got %d", n)
	}
}

func TestTodaySummaryFreshDay(t *testing.T) {
	t.Parallel()
	db := startedDB(t, 14)
	defer db.Close()

	status, err := service.TodaySummary(db, testNow)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if status.Date != "2026-04-20" || status.Name != "דנה" {
		t.Fatalf("unexpected header: %+v", status)
	}
	if status.Position != (program.Position{Day: 15, Week: 3}) {
		t.Fatalf("expected day 15 week 3, got %+v", status.Position)
	}
	if status.Rule.Week != 3 || status.Rule.Phase.Family() != program.PhaseCleanse {
		t.Fatalf("expected week 3 cleanse rule, got week %d phase %q", status.Rule.Week, status.Rule.Phase)
	}
	if !status.LogCreated {
		t.Fatalf("first view must create today's log")
	}
	if !status.ShowsSlipCheck || status.CanSelectTrack {
		t.Fatalf("unexpected gates: slip=%v track=%v", status.ShowsSlipCheck, status.CanSelectTrack)
	}
	if status.Score != 10 || status.Streak != 0 || !status.NeedsRescue {
		t.Fatalf("unexpected fresh-day scoring: score=%d streak=%d rescue=%v", status.Score, status.Streak, status.NeedsRescue)
	}
	if len(status.Breakdown) != 8 {
		t.Fatalf("expected 8 criteria, got %d", len(status.Breakdown))
	}
	if status.Tip == "" {
		t.Fatalf("expected a tip")
	}

	again, err := service.TodaySummary(db, testNow)
	if err != nil {
		t.Fatalf("today again: %v", err)
	}
	if again.LogCreated {
		t.Fatalf("second view must reuse the log")
	}
}

func TestTodaySummaryStreak(t *testing.T) {
	t.Parallel()
	db := startedDB(t, 14)
	defer db.Close()

	for _, offset := range []int{0, -1, -2, -4} {
		date := program.DateKey(testNow.AddDate(0, 0, offset))
		if _, err := service.UpdateDailyLog(db, date, perfectDay()); err != nil {
			t.Fatalf("log %s: %v", date, err)
		}
	}

	status, err := service.TodaySummary(db, testNow)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if status.Score != 100 || status.NeedsRescue {
		t.Fatalf("expected perfect day, got score=%d rescue=%v", status.Score, status.NeedsRescue)
	}
	if status.Streak != 3 {
		t.Fatalf("expected streak 3 (gap at -3), got %d", status.Streak)
	}
}

func TestTodaySummaryShowsChosenTrack(t *testing.T) {
	t.Parallel()
	db := startedDB(t, 60)
	defer db.Close()

	if err := service.SetTrack(db, model.TrackCleanse, testNow, false); err != nil {
		t.Fatalf("set track: %v", err)
	}
	status, err := service.TodaySummary(db, testNow)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if !status.CanSelectTrack {
		t.Fatalf("expected track selection in week %d", status.Position.Week)
	}
	if status.Track == nil || status.Track.ID != model.TrackCleanse {
		t.Fatalf("expected cleanse track, got %+v", status.Track)
	}
}
