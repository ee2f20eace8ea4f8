package service

import (
	"database/sql"
	"time"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
)

type TodayStatus struct {
	Date           string              `json:"date"`
	Name           string              `json:"name"`
	Position       program.Position    `json:"position"`
	Rule           program.WeekRule    `json:"rule"`
	Track          *program.TrackInfo  `json:"track,omitempty"`
	CanSelectTrack bool                `json:"can_select_track"`
	ShowsSlipCheck bool                `json:"shows_slip_check"`
	Log            model.DailyLog      `json:"log"`
	LogCreated     bool                `json:"-"`
	Score          int                 `json:"score"`
	Breakdown      []program.Criterion `json:"breakdown"`
	Streak         int                 `json:"streak"`
	NeedsRescue    bool                `json:"needs_rescue"`
	Tip            string              `json:"tip"`
}

// TodaySummary builds the dashboard for the day containing now. Viewing a day
// creates its log. Before onboarding it returns program.ErrNotStarted.
func TodaySummary(db *sql.DB, now time.Time) (*TodayStatus, error) {
	settings, pos, err := ProgramPosition(db, now)
	if err != nil {
		return nil, err
	}
	date := program.DateKey(now)
	log, created, err := EnsureDailyLog(db, date)
	if err != nil {
		return nil, err
	}
	history, err := LoadHistory(db, program.DateKey(now.AddDate(0, 0, -(program.StreakLookback-1))), date)
	if err != nil {
		return nil, err
	}

	status := &TodayStatus{
		Date:           date,
		Name:           settings.Name,
		Position:       pos,
		Rule:           program.Lookup(pos.Week),
		CanSelectTrack: pos.CanSelectTrack(),
		ShowsSlipCheck: pos.ShowsSlipCheck(),
		Log:            log,
		LogCreated:     created,
		Score:          program.Score(log),
		Breakdown:      program.Breakdown(log),
		Streak:         program.Streak(history, now),
		NeedsRescue:    program.NeedsRescue(log),
		Tip:            program.TipOfTheDay(now),
	}
	if pos.CanSelectTrack() && settings.Track != model.TrackUnset {
		if t, ok := program.Track(settings.Track); ok {
			status.Track = &t
		}
	}
	return status, nil
}
