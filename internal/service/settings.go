package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
)

// DefaultDisplayName is used when onboarding leaves the name blank.
const DefaultDisplayName = "אלוף"

func GetSettings(db *sql.DB) (model.ProgramSettings, error) {
	var s model.ProgramSettings
	var start sql.NullString
	var track string
	err := db.QueryRow(`SELECT name, start_date, track, updated_at FROM program_settings WHERE id = 1`).
		Scan(&s.Name, &start, &track, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.ProgramSettings{}, nil
	}
	if err != nil {
		return model.ProgramSettings{}, fmt.Errorf("get program settings: %w", err)
	}
	s.StartDate = start.String
	s.Track = model.TrackID(track)
	return s, nil
}

// ProgramPosition loads the settings and resolves today's place in the
// program. It returns program.ErrNotStarted before onboarding.
func ProgramPosition(db *sql.DB, now time.Time) (model.ProgramSettings, program.Position, error) {
	s, err := GetSettings(db)
	if err != nil {
		return s, program.Position{}, err
	}
	pos, err := program.ResolveDate(s.StartDate, now)
	return s, pos, err
}

type SetupInput struct {
	Name      string
	StartDate string
}

// SetupProgram records the onboarding answers. The start date defaults to
// today and may not lie in the future.
func SetupProgram(db *sql.DB, in SetupInput, now time.Time) (model.ProgramSettings, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultDisplayName
	}
	start := strings.TrimSpace(in.StartDate)
	if start == "" {
		start = program.DateKey(now)
	}
	start, err := validateStartDate(start, now)
	if err != nil {
		return model.ProgramSettings{}, err
	}
	if err := writeSettings(db, name, start); err != nil {
		return model.ProgramSettings{}, err
	}
	return GetSettings(db)
}

type UpdateSettingsInput struct {
	Name      *string
	StartDate *string
}

func UpdateSettings(db *sql.DB, in UpdateSettingsInput, now time.Time) (model.ProgramSettings, error) {
	current, err := GetSettings(db)
	if err != nil {
		return current, err
	}
	name := current.Name
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	start := current.StartDate
	if in.StartDate != nil {
		start, err = validateStartDate(*in.StartDate, now)
		if err != nil {
			return current, err
		}
	}
	if err := writeSettings(db, name, start); err != nil {
		return current, err
	}
	return GetSettings(db)
}

// ErrTrackChosen is returned when a different track is already saved and the
// caller did not ask to replace it.
var ErrTrackChosen = errors.New("track already chosen")

// SetTrack stores the maintenance track. Tracks open up in week 9. Replacing a
// saved track needs force.
func SetTrack(db *sql.DB, id model.TrackID, now time.Time, force bool) error {
	if id == model.TrackUnset {
		return fmt.Errorf("track is required")
	}
	if _, ok := program.Track(id); !ok {
		return fmt.Errorf("unknown track %q", id)
	}
	settings, pos, err := ProgramPosition(db, now)
	if err != nil {
		return err
	}
	if !force && settings.Track != model.TrackUnset && settings.Track != id {
		return fmt.Errorf("%w: %s", ErrTrackChosen, settings.Track)
	}
	if !pos.CanSelectTrack() {
		return fmt.Errorf("tracks can be chosen from week %d (currently week %d)", program.TrackSelectionWeek, pos.Week)
	}
	if _, err := db.Exec(`UPDATE program_settings SET track = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`, string(id)); err != nil {
		return fmt.Errorf("set track: %w", err)
	}
	return nil
}

func validateStartDate(value string, now time.Time) (string, error) {
	value, err := validateDate("start date", value)
	if err != nil {
		return "", err
	}
	if value > program.DateKey(now) {
		return "", fmt.Errorf("start date %s is in the future", value)
	}
	return value, nil
}

func writeSettings(db *sql.DB, name, start string) error {
	var startArg any
	if start != "" {
		startArg = start
	}
	_, err := db.Exec(`
INSERT INTO program_settings(id, name, start_date, updated_at)
VALUES(1, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  start_date=excluded.start_date,
  updated_at=excluded.updated_at
`, name, startArg)
	if err != nil {
		return fmt.Errorf("save program settings: %w", err)
	}
	return nil
}
