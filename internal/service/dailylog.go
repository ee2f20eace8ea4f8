package service

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
)

// MaxWaterBeforeMeals caps the "two glasses before a meal" counter.
const MaxWaterBeforeMeals = 6

const mealTimeLayout = "15:04"

const dailyLogColumns = `date, water_l, water_before_meals, veggies, protein, eating_window_h, fats_count, treat_day, slip, notes, completed, first_meal, last_meal, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDailyLog(row rowScanner) (model.DailyLog, error) {
	var l model.DailyLog
	var veggies, protein, treat, slip, completed int
	err := row.Scan(&l.Date, &l.Water, &l.WaterBeforeMeals, &veggies, &protein, &l.EatingWindowHours,
		&l.FatsCount, &treat, &slip, &l.Notes, &completed, &l.FirstMeal, &l.LastMeal, &l.UpdatedAt)
	if err != nil {
		return l, err
	}
	l.Veggies = veggies == 1
	l.Protein = protein == 1
	l.TreatDay = treat == 1
	l.Slip = slip == 1
	l.Completed = completed == 1
	return l, nil
}

// EnsureDailyLog returns the log for date, creating a zero-valued row the
// first time. created reports whether this call inserted it.
func EnsureDailyLog(db *sql.DB, date string) (log model.DailyLog, created bool, err error) {
	date, err = validateDate("log date", date)
	if err != nil {
		return model.DailyLog{}, false, err
	}
	res, err := db.Exec(`INSERT INTO daily_logs(date) VALUES(?) ON CONFLICT(date) DO NOTHING`, date)
	if err != nil {
		return model.DailyLog{}, false, fmt.Errorf("ensure daily log %s: %w", date, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.DailyLog{}, false, fmt.Errorf("ensure daily log %s: %w", date, err)
	}
	log, err = scanDailyLog(db.QueryRow(`SELECT `+dailyLogColumns+` FROM daily_logs WHERE date = ?`, date))
	if err != nil {
		return model.DailyLog{}, false, fmt.Errorf("load daily log %s: %w", date, err)
	}
	return log, n > 0, nil
}

// GetDailyLog returns nil when no log exists for date.
func GetDailyLog(db *sql.DB, date string) (*model.DailyLog, error) {
	date, err := validateDate("log date", date)
	if err != nil {
		return nil, err
	}
	log, err := scanDailyLog(db.QueryRow(`SELECT `+dailyLogColumns+` FROM daily_logs WHERE date = ?`, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get daily log %s: %w", date, err)
	}
	return &log, nil
}

// DailyLogUpdate carries the fields a user changed; nil fields are left alone.
type DailyLogUpdate struct {
	Water             *float64
	WaterBeforeMeals  *int
	Veggies           *bool
	Protein           *bool
	EatingWindowHours *float64
	FatsCount         *int
	TreatDay          *bool
	Slip              *bool
	Notes             *string
	Completed         *bool
	FirstMeal         *string
	LastMeal          *string
}

func (u DailyLogUpdate) Empty() bool {
	return u == DailyLogUpdate{}
}

// UpdateDailyLog applies u to the log for date, creating the log if needed.
// When both meal times are known and no explicit window is given, the eating
// window is derived from them.
func UpdateDailyLog(db *sql.DB, date string, u DailyLogUpdate) (model.DailyLog, error) {
	log, _, err := EnsureDailyLog(db, date)
	if err != nil {
		return log, err
	}
	if err := applyUpdate(&log, u); err != nil {
		return log, err
	}
	if err := validateDailyLog(log); err != nil {
		return log, err
	}
	if err := saveDailyLog(db, log); err != nil {
		return log, err
	}
	return log, nil
}

func applyUpdate(log *model.DailyLog, u DailyLogUpdate) error {
	if u.Water != nil {
		log.Water = *u.Water
	}
	if u.WaterBeforeMeals != nil {
		log.WaterBeforeMeals = *u.WaterBeforeMeals
	}
	if u.Veggies != nil {
		log.Veggies = *u.Veggies
	}
	if u.Protein != nil {
		log.Protein = *u.Protein
	}
	if u.EatingWindowHours != nil {
		log.EatingWindowHours = *u.EatingWindowHours
	}
	if u.FatsCount != nil {
		log.FatsCount = *u.FatsCount
	}
	if u.TreatDay != nil {
		log.TreatDay = *u.TreatDay
	}
	if u.Slip != nil {
		log.Slip = *u.Slip
	}
	if u.Notes != nil {
		log.Notes = strings.TrimSpace(*u.Notes)
	}
	if u.Completed != nil {
		log.Completed = *u.Completed
	}
	if u.FirstMeal != nil {
		v, err := normalizeMealTime("first meal", *u.FirstMeal)
		if err != nil {
			return err
		}
		log.FirstMeal = v
	}
	if u.LastMeal != nil {
		v, err := normalizeMealTime("last meal", *u.LastMeal)
		if err != nil {
			return err
		}
		log.LastMeal = v
	}
	mealsChanged := u.FirstMeal != nil || u.LastMeal != nil
	if mealsChanged && u.EatingWindowHours == nil && log.FirstMeal != "" && log.LastMeal != "" {
		log.EatingWindowHours = EatingWindowFromMeals(log.FirstMeal, log.LastMeal)
	}
	return nil
}

func validateDailyLog(log model.DailyLog) error {
	if err := validateNonNegativeFloat("water", log.Water); err != nil {
		return err
	}
	if err := validateNonNegativeInt("water before meals", log.WaterBeforeMeals); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("eating window", log.EatingWindowHours); err != nil {
		return err
	}
	if log.EatingWindowHours > 24 {
		return fmt.Errorf("eating window must be <= 24 hours")
	}
	if err := validateNonNegativeInt("fats", log.FatsCount); err != nil {
		return err
	}
	return nil
}

func normalizeMealTime(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	t, err := time.Parse(mealTimeLayout, value)
	if err != nil {
		return "", fmt.Errorf("invalid %s time %q (expected HH:MM)", name, value)
	}
	return t.Format(mealTimeLayout), nil
}

// EatingWindowFromMeals returns the hours between two HH:MM meal times,
// rounded to a quarter hour. A last meal earlier than the first is read as
// past midnight.
func EatingWindowFromMeals(first, last string) float64 {
	f, err1 := time.Parse(mealTimeLayout, first)
	l, err2 := time.Parse(mealTimeLayout, last)
	if err1 != nil || err2 != nil {
		return 0
	}
	d := l.Sub(f)
	if d < 0 {
		d += 24 * time.Hour
	}
	return math.Round(d.Hours()*4) / 4
}

func saveDailyLog(db *sql.DB, log model.DailyLog) error {
	_, err := db.Exec(`
UPDATE daily_logs SET
  water_l = ?, water_before_meals = ?, veggies = ?, protein = ?, eating_window_h = ?, fats_count = ?,
  treat_day = ?, slip = ?, notes = ?, completed = ?, first_meal = ?, last_meal = ?, updated_at = CURRENT_TIMESTAMP
WHERE date = ?
`, log.Water, log.WaterBeforeMeals, boolToInt(log.Veggies), boolToInt(log.Protein), log.EatingWindowHours, log.FatsCount,
		boolToInt(log.TreatDay), boolToInt(log.Slip), log.Notes, boolToInt(log.Completed), log.FirstMeal, log.LastMeal, log.Date)
	if err != nil {
		return fmt.Errorf("save daily log %s: %w", log.Date, err)
	}
	return nil
}

// AdjustWaterBeforeMeals steps the pre-meal water counter, staying within
// 0..MaxWaterBeforeMeals.
func AdjustWaterBeforeMeals(db *sql.DB, date string, delta int) (model.DailyLog, error) {
	log, _, err := EnsureDailyLog(db, date)
	if err != nil {
		return log, err
	}
	v := min(max(log.WaterBeforeMeals+delta, 0), MaxWaterBeforeMeals)
	return UpdateDailyLog(db, date, DailyLogUpdate{WaterBeforeMeals: &v})
}

// AdjustFats steps the fat-portion counter, never below zero.
func AdjustFats(db *sql.DB, date string, delta int) (model.DailyLog, error) {
	log, _, err := EnsureDailyLog(db, date)
	if err != nil {
		return log, err
	}
	v := max(log.FatsCount+delta, 0)
	return UpdateDailyLog(db, date, DailyLogUpdate{FatsCount: &v})
}

func CompleteDay(db *sql.DB, date string) (model.DailyLog, error) {
	done := true
	return UpdateDailyLog(db, date, DailyLogUpdate{Completed: &done})
}

// LoadHistory returns the logs dated within [from, to]. Empty bounds are open.
func LoadHistory(db *sql.DB, from, to string) (program.History, error) {
	query := `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE 1=1`
	args := make([]any, 0, 2)
	if from != "" {
		query += ` AND date >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND date <= ?`
		args = append(args, to)
	}
	rows, err := db.Query(query+` ORDER BY date ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("load log history: %w", err)
	}
	defer rows.Close()

	history := program.History{}
	for rows.Next() {
		log, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log history: %w", err)
		}
		history[log.Date] = log
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log history: %w", err)
	}
	return history, nil
}

// ListRecentLogs returns up to limit logs, newest first.
func ListRecentLogs(db *sql.DB, limit int) ([]model.DailyLog, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be > 0")
	}
	rows, err := db.Query(`SELECT `+dailyLogColumns+` FROM daily_logs ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.DailyLog, 0, limit)
	for rows.Next() {
		log, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recent log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent logs: %w", err)
	}
	return logs, nil
}
