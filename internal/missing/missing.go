// Package missing finds calendar days in a period with no daily note.
package missing

import (
	"time"

	"github.com/avolkov/recap/internal/model"
)

// Reasons attached to a missing day, by weekday kind.
const (
	ReasonWorkday = "No daily note"
	ReasonWeekend = "Weekend/Holiday"
)

// IsWorkday reports whether t falls on a working day (Monday through Friday).
func IsWorkday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Find walks every calendar day from start to end inclusive and returns the
// days with no matching note, oldest first. The full sequence is always
// returned; truncating for display is the renderer's concern.
func Find(start, end time.Time, notes []model.Note) []model.MissingDay {
	have := make(map[string]bool, len(notes))
	for _, n := range notes {
		have[n.Date.Format(model.DayFormat)] = true
	}

	var days []model.MissingDay
	last := model.DayOf(end)
	for d := model.DayOf(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		if have[d.Format(model.DayFormat)] {
			continue
		}
		reason := ReasonWeekend
		if IsWorkday(d) {
			reason = ReasonWorkday
		}
		days = append(days, model.MissingDay{Date: d, Reason: reason})
	}
	return days
}
