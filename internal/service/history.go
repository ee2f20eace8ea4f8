package service

import (
	"database/sql"
	"time"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
)

// DefaultHistoryDays is how many recent days the history view lists.
const DefaultHistoryDays = 14

type HistoryDay struct {
	Date     string          `json:"date"`
	Weekday  time.Weekday    `json:"weekday"`
	Score    int             `json:"score"`
	Verdict  program.Verdict `json:"verdict"`
	TreatDay bool            `json:"treat_day"`
	Log      model.DailyLog  `json:"log"`
}

type HistoryReport struct {
	Days          []HistoryDay `json:"days"`
	CurrentStreak int          `json:"current_streak"`
	LongestRun    int          `json:"longest_run"`
}

func RecentHistory(db *sql.DB, now time.Time, limit int) (*HistoryReport, error) {
	logs, err := ListRecentLogs(db, limit)
	if err != nil {
		return nil, err
	}
	all, err := LoadHistory(db, "", "")
	if err != nil {
		return nil, err
	}

	report := &HistoryReport{
		Days:          make([]HistoryDay, 0, len(logs)),
		CurrentStreak: program.Streak(all, now),
		LongestRun:    program.LongestRun(all),
	}
	for _, l := range logs {
		day := HistoryDay{
			Date:     l.Date,
			Score:    program.Score(l),
			TreatDay: l.TreatDay,
			Log:      l,
		}
		day.Verdict = program.VerdictFor(day.Score)
		if d, err := program.ParseDateKey(l.Date, now.Location()); err == nil {
			day.Weekday = d.Weekday()
		}
		report.Days = append(report.Days, day)
	}
	return report, nil
}
