package program

import (
	"time"

	"github.com/omriBer/diet/internal/model"
)

func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, key, loc)
}

func NewDailyLog(date string) model.DailyLog {
	return model.DailyLog{Date: date}
}

// EnsureToday returns today's log, inserting a zero-valued one into history
// the first time. Existing records are returned untouched. A nil history gets
// nothing inserted.
func EnsureToday(history History, today time.Time) model.DailyLog {
	key := DateKey(today)
	if log, ok := history[key]; ok {
		if log.Date == "" {
			log.Date = key
		}
		return log
	}
	log := NewDailyLog(key)
	if history != nil {
		history[key] = log
	}
	return log
}
