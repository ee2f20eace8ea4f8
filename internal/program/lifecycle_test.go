package program_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
)

func TestEnsureTodayCreatesDefaults(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 6, 1, 9, 0, 0, 0, time.Local)
	history := program.History{}

	got := program.EnsureToday(history, today)
	want := model.DailyLog{Date: "2026-06-01"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected default log (-want +got):\n%s", diff)
	}
	if len(history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history))
	}
}

func TestEnsureTodayIdempotent(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 6, 1, 9, 0, 0, 0, time.Local)
	history := program.History{}
	first := program.EnsureToday(history, today)

	first.Water = 2.5
	first.Veggies = true
	history[first.Date] = first

	second := program.EnsureToday(history, today)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second call changed the record (-want +got):\n%s", diff)
	}
	third := program.EnsureToday(history, today.Add(3*time.Hour))
	if diff := cmp.Diff(second, third); diff != "" {
		t.Fatalf("third call changed the record (-want +got):\n%s", diff)
	}
	if len(history) != 1 {
		t.Fatalf("expected a single record per date, got %d", len(history))
	}
}

func TestEnsureTodayNilHistory(t *testing.T) {
	t.Parallel()
	got := program.EnsureToday(nil, time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local))
	if got.Date != "2026-06-01" || program.Score(got) != 10 {
		t.Fatalf("expected a fresh default record, got %+v", got)
	}
}
