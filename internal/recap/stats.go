package recap

import (
	"context"
	"fmt"

	"github.com/avolkov/recap/internal/missing"
	"github.com/avolkov/recap/internal/model"
	"github.com/avolkov/recap/internal/period"
)

// Stats summarizes the vault and the run history.
type Stats struct {
	NoteCount   int      `json:"note_count"`
	OldestNote  string   `json:"oldest_note,omitempty"`
	NewestNote  string   `json:"newest_note,omitempty"`
	RunCount    int      `json:"run_count"`
	LastRunDate string   `json:"last_run_date,omitempty"`
	LastRunTime string   `json:"last_run_time,omitempty"`
	Sections    []string `json:"sections,omitempty"`
	MissingDays int      `json:"missing_days"`
}

// Stats collects statistics over the vault and history, including the
// missing-day count of the period the next run would cover.
func (r *Runner) Stats(ctx context.Context) (*Stats, error) {
	settings, err := r.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	notes, err := r.Notes.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		NoteCount: len(notes),
		RunCount:  len(settings.History),
		Sections:  settings.Sections,
	}
	if settings.LastRun != nil {
		st.LastRunDate = settings.LastRun.RunDate
		st.LastRunTime = settings.LastRun.RunTime
	}
	if len(notes) > 0 {
		oldest, newest := notes[0].Date, notes[0].Date
		for _, n := range notes[1:] {
			if n.Date.Before(oldest) {
				oldest = n.Date
			}
			if n.Date.After(newest) {
				newest = n.Date
			}
		}
		st.OldestNote = oldest.Format(model.DayFormat)
		st.NewestNote = newest.Format(model.DayFormat)
	}

	p := period.Resolve(r.clock(), settings.LastRun, notes)
	st.MissingDays = len(missing.Find(p.Start, p.End, notes))

	return st, nil
}
