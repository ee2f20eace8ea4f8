package leptin

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omriBer/diet/internal/app"
	"github.com/omriBer/diet/internal/db"
	"github.com/omriBer/diet/internal/program"
	"github.com/omriBer/diet/internal/service"
)

var hebrewWeekdays = [...]string{"ראשון", "שני", "שלישי", "רביעי", "חמישי", "שישי", "שבת"}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	logger.Debug("opening database", zap.String("path", path))
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

// currentTime is time.Now in the configured timezone.
func currentTime(sqldb *sql.DB) (time.Time, error) {
	loc, err := service.Location(sqldb)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

// targetDay resolves an optional --date flag to a moment on that day. Past
// days resolve to noon so they sit safely inside the calendar day.
func targetDay(sqldb *sql.DB, date string) (time.Time, error) {
	now, err := currentTime(sqldb)
	if err != nil {
		return time.Time{}, err
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return now, nil
	}
	d, err := program.ParseDateKey(date, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	if program.DateKey(d) > program.DateKey(now) {
		return time.Time{}, fmt.Errorf("--date %s is in the future", date)
	}
	return d.Add(12 * time.Hour), nil
}

func notStartedHint(err error) error {
	if errors.Is(err, program.ErrNotStarted) {
		return fmt.Errorf("%w; run 'leptin setup' first", err)
	}
	return err
}

func parseDelta(value string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "up", "+":
		return 1, nil
	case "down", "-":
		return -1, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid step %q (use up, down, or a signed number)", value)
	}
	return v, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func scoreIcon(score int) string {
	switch program.VerdictFor(score) {
	case program.VerdictExcellent:
		return "🏆"
	case program.VerdictGood:
		return "✅"
	default:
		return "⚠️"
	}
}

func verdictMessage(v program.Verdict) string {
	switch v {
	case program.VerdictExcellent:
		return "🏆 יום מעולה!"
	case program.VerdictGood:
		return "👍 יום טוב!"
	default:
		return "💪 מחר יום חדש!"
	}
}

func checkMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func progressBar(score int) string {
	filled := score / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
