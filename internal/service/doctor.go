package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
)

type DoctorReport struct {
	InvalidDateKeys   []string `json:"invalid_date_keys,omitempty"`
	FutureLogs        []string `json:"future_logs,omitempty"`
	OverfilledCounter []string `json:"overfilled_counters,omitempty"`
	StartDateProblem  string   `json:"start_date_problem,omitempty"`
	EarlyTrack        bool     `json:"early_track,omitempty"`
	FixedRows         int      `json:"fixed_rows,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return len(r.InvalidDateKeys) == 0 && len(r.FutureLogs) == 0 && len(r.OverfilledCounter) == 0 &&
		r.StartDateProblem == "" && !r.EarlyTrack
}

// RunDoctor inspects stored data for values the app itself never writes.
// With fix, counters above their cap are clamped and a track chosen before
// track selection opened is cleared.
func RunDoctor(db *sql.DB, fix bool, now time.Time) (DoctorReport, error) {
	report := DoctorReport{}
	today := program.DateKey(now)

	rows, err := db.Query(`SELECT date, water_before_meals FROM daily_logs ORDER BY date ASC`)
	if err != nil {
		return report, fmt.Errorf("doctor log query: %w", err)
	}
	for rows.Next() {
		var date string
		var before int
		if err := rows.Scan(&date, &before); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor log scan: %w", err)
		}
		if _, err := program.ParseDateKey(date, now.Location()); err != nil {
			report.InvalidDateKeys = append(report.InvalidDateKeys, date)
			continue
		}
		if date > today {
			report.FutureLogs = append(report.FutureLogs, date)
		}
		if before > MaxWaterBeforeMeals {
			report.OverfilledCounter = append(report.OverfilledCounter, date)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return report, fmt.Errorf("doctor log iterate: %w", err)
	}
	_ = rows.Close()

	settings, err := GetSettings(db)
	if err != nil {
		return report, err
	}
	pos, err := program.ResolveDate(settings.StartDate, now)
	switch {
	case err == nil:
		if settings.StartDate > today {
			report.StartDateProblem = fmt.Sprintf("start date %s is in the future", settings.StartDate)
		}
		if settings.Track != model.TrackUnset && !pos.CanSelectTrack() {
			report.EarlyTrack = true
		}
	case settings.HasStarted():
		report.StartDateProblem = err.Error()
	}

	if !fix || (len(report.OverfilledCounter) == 0 && !report.EarlyTrack) {
		return report, nil
	}
	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("doctor fix begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, date := range report.OverfilledCounter {
		if _, err := tx.Exec(`UPDATE daily_logs SET water_before_meals = ?, updated_at = CURRENT_TIMESTAMP WHERE date = ?`, MaxWaterBeforeMeals, date); err != nil {
			return report, fmt.Errorf("doctor fix log %s: %w", date, err)
		}
		report.FixedRows++
	}
	if report.EarlyTrack {
		if _, err := tx.Exec(`UPDATE program_settings SET track = '', updated_at = CURRENT_TIMESTAMP WHERE id = 1`); err != nil {
			return report, fmt.Errorf("doctor fix track: %w", err)
		}
		report.FixedRows++
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("doctor fix commit: %w", err)
	}
	return report, nil
}
