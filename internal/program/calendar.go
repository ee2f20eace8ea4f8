package program

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DaysPerWeek        = 7
	ProgramWeeks       = 13
	TrackSelectionWeek = 9
	slipTrackingWeek   = 3

	dateLayout = "2006-01-02"
)

var (
	ErrNotStarted       = errors.New("program has not started")
	ErrInvalidStartDate = errors.New("invalid start date")
)

// Position is where "now" falls in the program. Day 1 is the start date itself.
type Position struct {
	Day  int `json:"day"`
	Week int `json:"week"`
}

func (p Position) CanSelectTrack() bool {
	return p.Week >= TrackSelectionWeek
}

// ShowsSlipCheck reports whether forbidden-food tracking applies this week.
func (p Position) ShowsSlipCheck() bool {
	return p.Week >= slipTrackingWeek
}

func Resolve(start, now time.Time) Position {
	day := calendarDaysBetween(start, now) + 1
	return Position{Day: day, Week: weekOfDay(day)}
}

// ResolveDate parses a YYYY-MM-DD start date and resolves it against now. On a
// missing or malformed date it still returns the first-day position, alongside
// ErrNotStarted or ErrInvalidStartDate, so callers may choose to ignore the error.
func ResolveDate(startDate string, now time.Time) (Position, error) {
	startDate = strings.TrimSpace(startDate)
	if startDate == "" {
		return Position{Day: 1, Week: 1}, ErrNotStarted
	}
	start, err := time.ParseInLocation(dateLayout, startDate, now.Location())
	if err != nil {
		return Position{Day: 1, Week: 1}, fmt.Errorf("%w %q (expected YYYY-MM-DD)", ErrInvalidStartDate, startDate)
	}
	return Resolve(start, now), nil
}

func weekOfDay(day int) int {
	week := floorDiv(day-1, DaysPerWeek) + 1
	if week < 1 {
		return 1
	}
	if week > ProgramWeeks {
		return ProgramWeeks
	}
	return week
}

// calendarDaysBetween counts calendar dates from a to b, each read in its own
// location. Dates are compared at UTC midnight so DST transitions do not skew it.
func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
