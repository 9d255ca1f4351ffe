// Package period resolves the inclusive date range a recap run covers.
package period

import (
	"time"

	"github.com/avolkov/recap/internal/model"
)

// lookbackDays is how far a first-ever run reaches back when the vault
// holds no notes at all.
const lookbackDays = 7

// Resolve determines the period a run starting at now must cover.
//
// A re-run on the same calendar day reuses the previous run's period start,
// so regenerating a report never shrinks the window the user already saw.
// On a later day the start is the previous run's own date: the boundary day
// is re-included so nothing written on the cutoff day is ever dropped. With
// no history the period reaches back to the oldest known note, or
// lookbackDays when there are none. The end is always now.
func Resolve(now time.Time, lastRun *model.RunRecord, notes []model.Note) model.Period {
	if lastRun != nil {
		if runDate, err := model.ParseDay(lastRun.RunDate); err == nil {
			if model.SameDay(runDate, now) {
				if start, err := model.ParseDay(lastRun.PeriodStart); err == nil {
					return model.Period{Start: start, End: now}
				}
			}
			return model.Period{Start: runDate, End: now}
		}
	}

	if len(notes) > 0 {
		oldest := notes[0].Date
		for _, n := range notes[1:] {
			if n.Date.Before(oldest) {
				oldest = n.Date
			}
		}
		return model.Period{Start: oldest, End: now}
	}

	return model.Period{Start: now.AddDate(0, 0, -lookbackDays), End: now}
}

// Select returns the paths of the notes whose date falls inside p,
// preserving input order.
func Select(p model.Period, notes []model.Note) []string {
	var paths []string
	for _, n := range notes {
		if p.Contains(n.Date) {
			paths = append(paths, n.Path)
		}
	}
	return paths
}
