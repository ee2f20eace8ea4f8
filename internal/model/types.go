package model

import (
	"fmt"
	"strings"
	"time"
)

type TrackID string

const (
	TrackUnset    TrackID = ""
	TrackFast     TrackID = "fast"
	TrackCleanse  TrackID = "cleanse"
	TrackModerate TrackID = "moderate"
)

func ParseTrackID(value string) (TrackID, error) {
	switch id := TrackID(strings.TrimSpace(strings.ToLower(value))); id {
	case TrackFast, TrackCleanse, TrackModerate, TrackUnset:
		return id, nil
	default:
		return TrackUnset, fmt.Errorf("unknown track %q (use fast, cleanse, or moderate)", value)
	}
}

// ProgramSettings is the single per-user settings record.
type ProgramSettings struct {
	Name      string    `json:"name"`
	StartDate string    `json:"start_date,omitempty"`
	Track     TrackID   `json:"track,omitempty"`
	UpdatedAt time.Time `json:"-"`
}

func (s ProgramSettings) HasStarted() bool {
	return strings.TrimSpace(s.StartDate) != ""
}

// DailyLog is one calendar day of tracked behaviour, keyed by Date (YYYY-MM-DD).
type DailyLog struct {
	Date              string    `json:"-"`
	Water             float64   `json:"water"`
	WaterBeforeMeals  int       `json:"water_before"`
	Veggies           bool      `json:"veggies"`
	Protein           bool      `json:"protein"`
	EatingWindowHours float64   `json:"window"`
	FatsCount         int       `json:"fats"`
	TreatDay          bool      `json:"treat"`
	Slip              bool      `json:"slip"`
	Notes             string    `json:"notes,omitempty"`
	Completed         bool      `json:"done"`
	FirstMeal         string    `json:"first_meal,omitempty"`
	LastMeal          string    `json:"last_meal,omitempty"`
	UpdatedAt         time.Time `json:"-"`
}
