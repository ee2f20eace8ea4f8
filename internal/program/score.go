package program

import "github.com/omriBer/diet/internal/model"

const (
	MaxScore        = 100
	StreakThreshold = 70
	RescueThreshold = 60

	excellentScore = 80
)

// Criterion is one line of the daily score: the points it is worth and
// whether the log earned them. The slip penalty carries negative points.
type Criterion struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Points int    `json:"points"`
	Earned bool   `json:"earned"`
}

// Breakdown evaluates every scoring check against log, in display order.
func Breakdown(log model.DailyLog) []Criterion {
	return []Criterion{
		{Key: "water_2l", Label: "water >= 2L", Points: 20, Earned: log.Water >= 2},
		{Key: "water_3l", Label: "water >= 3L", Points: 10, Earned: log.Water >= 3},
		{Key: "water_before", Label: "water before 3 meals", Points: 10, Earned: log.WaterBeforeMeals >= 3},
		{Key: "veggies", Label: "50% cleansing veggies", Points: 25, Earned: log.Veggies},
		{Key: "protein", Label: "protein every meal", Points: 15, Earned: log.Protein},
		{Key: "fats", Label: "fats <= 3 portions", Points: 10, Earned: log.FatsCount <= 3},
		{Key: "window", Label: "eating window <= 12h", Points: 10, Earned: log.EatingWindowHours > 0 && log.EatingWindowHours <= 12},
		{Key: "slip", Label: "forbidden food without treat day", Points: -20, Earned: log.Slip && !log.TreatDay},
	}
}

// Score returns the day's compliance score, clamped to [0, 100].
func Score(log model.DailyLog) int {
	total := 0
	for _, c := range Breakdown(log) {
		if c.Earned {
			total += c.Points
		}
	}
	return clamp(total, 0, MaxScore)
}

func NeedsRescue(log model.DailyLog) bool {
	return log.Slip || Score(log) < RescueThreshold
}

type Verdict string

const (
	VerdictExcellent Verdict = "excellent"
	VerdictGood      Verdict = "good"
	VerdictTomorrow  Verdict = "tomorrow"
)

func VerdictFor(score int) Verdict {
	switch {
	case score >= excellentScore:
		return VerdictExcellent
	case score >= RescueThreshold:
		return VerdictGood
	default:
		return VerdictTomorrow
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
