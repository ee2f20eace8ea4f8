package service

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
)

// ExportSettings mirrors the user_settings object of the blob document, where
// an unset start date or track is null.
type ExportSettings struct {
	Name      string  `json:"name"`
	StartDate *string `json:"start_date"`
	Track     *string `json:"track"`
}

type ExportData struct {
	Settings ExportSettings            `json:"user_settings"`
	Logs     map[string]model.DailyLog `json:"daily_logs"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
	// Now is the moment start dates and track choices are checked against.
	// Zero means time.Now().
	Now time.Time
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ParseImportMode(value string) (ImportMode, error) {
	switch m := ImportMode(strings.TrimSpace(strings.ToLower(value))); m {
	case ImportModeFail, ImportModeSkip, ImportModeMerge, ImportModeReplace:
		return m, nil
	case "":
		return ImportModeMerge, nil
	default:
		return "", fmt.Errorf("invalid import mode %q (use fail, skip, merge, or replace)", value)
	}
}

func ExportDataSnapshot(db *sql.DB) (*ExportData, error) {
	settings, err := GetSettings(db)
	if err != nil {
		return nil, err
	}
	out := &ExportData{
		Settings: ExportSettings{Name: settings.Name},
		Logs:     map[string]model.DailyLog{},
	}
	if settings.StartDate != "" {
		start := settings.StartDate
		out.Settings.StartDate = &start
	}
	if settings.Track != model.TrackUnset {
		track := string(settings.Track)
		out.Settings.Track = &track
	}

	history, err := LoadHistory(db, "", "")
	if err != nil {
		return nil, fmt.Errorf("export daily logs: %w", err)
	}
	for date, log := range history {
		out.Logs[date] = log
	}
	return out, nil
}

func ImportDataSnapshot(db *sql.DB, data *ExportData) (ImportReport, error) {
	return ImportDataSnapshotWithOptions(db, data, ImportOptions{Mode: ImportModeMerge})
}

// ImportDataSnapshotWithOptions loads a blob document in one transaction.
// Logs with a bad date key or out-of-range values are skipped with a warning,
// as are a future start date and a track chosen before week 9.
func ImportDataSnapshotWithOptions(db *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	if data == nil {
		return report, fmt.Errorf("import data is required")
	}
	mode := normalizeImportMode(opts.Mode)
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace {
		if err := clearUserData(tx); err != nil {
			return report, err
		}
	}

	if err := importSettings(tx, data.Settings, mode, now, &report); err != nil {
		return report, err
	}

	dates := make([]string, 0, len(data.Logs))
	for date := range data.Logs {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		log := data.Logs[date]
		key, err := validateDate("log date", date)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("daily_logs[%q]: %v", date, err))
			report.Conflicts++
			continue
		}
		log.Date = key
		if err := validateDailyLog(log); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("daily_logs[%q]: %v", date, err))
			report.Conflicts++
			continue
		}
		if log.WaterBeforeMeals > MaxWaterBeforeMeals {
			report.Warnings = append(report.Warnings, fmt.Sprintf("daily_logs[%q]: water before meals %d above %d", date, log.WaterBeforeMeals, MaxWaterBeforeMeals))
		}

		var exists int
		if err := tx.QueryRow(`SELECT COUNT(1) FROM daily_logs WHERE date = ?`, key).Scan(&exists); err != nil {
			return report, fmt.Errorf("lookup daily log %s: %w", key, err)
		}
		if exists > 0 {
			switch mode {
			case ImportModeFail:
				report.Conflicts++
				return report, fmt.Errorf("import conflict for daily log %s", key)
			case ImportModeSkip:
				report.Skipped++
				continue
			case ImportModeMerge, ImportModeReplace:
				if !opts.DryRun {
					if err := updateLogTx(tx, log); err != nil {
						return report, err
					}
				}
				report.Updated++
				continue
			}
		}
		if !opts.DryRun {
			if err := insertLogTx(tx, log); err != nil {
				return report, err
			}
		}
		report.Inserted++
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import tx: %w", err)
	}
	return report, nil
}

func importSettings(tx *sql.Tx, in ExportSettings, mode ImportMode, now time.Time, report *ImportReport) error {
	var start string
	if in.StartDate != nil && strings.TrimSpace(*in.StartDate) != "" {
		v, err := validateStartDate(*in.StartDate, now)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("user_settings: %v", err))
		} else {
			start = v
		}
	}

	var currentStart sql.NullString
	if err := tx.QueryRow(`SELECT start_date FROM program_settings WHERE id = 1`).Scan(&currentStart); err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("lookup program settings: %w", err)
	}
	if mode == ImportModeReplace {
		currentStart = sql.NullString{}
	}

	track := model.TrackUnset
	if in.Track != nil {
		id, err := model.ParseTrackID(*in.Track)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("user_settings: %v", err))
		} else {
			track = id
		}
	}
	if track != model.TrackUnset {
		effective := start
		if effective == "" {
			effective = currentStart.String
		}
		pos, err := program.ResolveDate(effective, now)
		switch {
		case err != nil:
			report.Warnings = append(report.Warnings, fmt.Sprintf("user_settings: track %s dropped: %v", track, err))
			track = model.TrackUnset
		case !pos.CanSelectTrack():
			report.Warnings = append(report.Warnings, fmt.Sprintf("user_settings: track %s dropped: tracks can be chosen from week %d (week %d)", track, program.TrackSelectionWeek, pos.Week))
			track = model.TrackUnset
		}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" && start == "" && track == model.TrackUnset {
		return nil
	}

	if currentStart.Valid && currentStart.String != "" {
		switch mode {
		case ImportModeFail:
			if start != "" && start != currentStart.String {
				report.Conflicts++
				return fmt.Errorf("import conflict for start date: have %s, got %s", currentStart.String, start)
			}
		case ImportModeSkip:
			report.Skipped++
			return nil
		}
	}

	var startArg any
	if start != "" {
		startArg = start
	}
	if _, err := tx.Exec(`
INSERT INTO program_settings(id, name, start_date, track, updated_at)
VALUES(1, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  name=CASE WHEN excluded.name = '' THEN program_settings.name ELSE excluded.name END,
  start_date=COALESCE(excluded.start_date, program_settings.start_date),
  track=CASE WHEN excluded.track = '' THEN program_settings.track ELSE excluded.track END,
  updated_at=excluded.updated_at
`, name, startArg, string(track)); err != nil {
		return fmt.Errorf("import program settings: %w", err)
	}
	report.Updated++
	return nil
}

func insertLogTx(tx *sql.Tx, log model.DailyLog) error {
	_, err := tx.Exec(`
INSERT INTO daily_logs(date, water_l, water_before_meals, veggies, protein, eating_window_h, fats_count, treat_day, slip, notes, completed, first_meal, last_meal)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, log.Date, log.Water, log.WaterBeforeMeals, boolToInt(log.Veggies), boolToInt(log.Protein), log.EatingWindowHours, log.FatsCount,
		boolToInt(log.TreatDay), boolToInt(log.Slip), log.Notes, boolToInt(log.Completed), log.FirstMeal, log.LastMeal)
	if err != nil {
		return fmt.Errorf("import daily log %s: %w", log.Date, err)
	}
	return nil
}

func updateLogTx(tx *sql.Tx, log model.DailyLog) error {
	_, err := tx.Exec(`
UPDATE daily_logs SET
  water_l = ?, water_before_meals = ?, veggies = ?, protein = ?, eating_window_h = ?, fats_count = ?,
  treat_day = ?, slip = ?, notes = ?, completed = ?, first_meal = ?, last_meal = ?, updated_at = CURRENT_TIMESTAMP
WHERE date = ?
`, log.Water, log.WaterBeforeMeals, boolToInt(log.Veggies), boolToInt(log.Protein), log.EatingWindowHours, log.FatsCount,
		boolToInt(log.TreatDay), boolToInt(log.Slip), log.Notes, boolToInt(log.Completed), log.FirstMeal, log.LastMeal, log.Date)
	if err != nil {
		return fmt.Errorf("merge daily log %s: %w", log.Date, err)
	}
	return nil
}

func normalizeImportMode(mode ImportMode) ImportMode {
	switch mode {
	case ImportModeFail, ImportModeSkip, ImportModeMerge, ImportModeReplace:
		return mode
	default:
		return ImportModeMerge
	}
}

func clearUserData(tx *sql.Tx) error {
	stmts := []string{
		`DELETE FROM daily_logs`,
		`UPDATE program_settings SET name = '', start_date = NULL, track = '', updated_at = CURRENT_TIMESTAMP WHERE id = 1`,
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return fmt.Errorf("clear user data: %w", err)
		}
	}
	return nil
}
