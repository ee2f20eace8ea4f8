package program

import (
	"sort"
	"time"

	"github.com/omriBer/diet/internal/model"
)

const StreakLookback = 30

// History maps YYYY-MM-DD date keys to that day's log.
type History map[string]model.DailyLog

// Streak counts consecutive qualifying days ending at today, looking back at
// most StreakLookback days. A missing or low-scoring today yields 0.
func Streak(history History, today time.Time) int {
	streak := 0
	for i := 0; i < StreakLookback; i++ {
		log, ok := history[DateKey(today.AddDate(0, 0, -i))]
		if !ok || Score(log) < StreakThreshold {
			break
		}
		streak++
	}
	return streak
}

// LongestRun is the longest run of consecutive qualifying dates anywhere in
// history. Unlike Streak it is not capped and need not reach today.
func LongestRun(history History) int {
	dates := make([]time.Time, 0, len(history))
	for key, log := range history {
		d, err := time.Parse(dateLayout, key)
		if err != nil || Score(log) < StreakThreshold {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 0, 0
	for i, d := range dates {
		if i > 0 && calendarDaysBetween(dates[i-1], d) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
