// Package recap orchestrates a single report-generation run.
package recap

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/avolkov/recap/internal/changes"
	"github.com/avolkov/recap/internal/missing"
	"github.com/avolkov/recap/internal/model"
	"github.com/avolkov/recap/internal/period"
	"github.com/avolkov/recap/internal/report"
	"github.com/avolkov/recap/internal/store"
)

// Runner wires the vault and settings stores to the pure report logic.
// A zero Now uses the wall clock.
type Runner struct {
	Notes    store.NoteStore
	Reports  store.ReportStore
	Settings store.SettingsStore
	Now      func() time.Time
}

func (r *Runner) clock() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run executes one aggregation run and returns the produced report filename.
// History is persisted only after the report write succeeds, so a failed run
// leaves no partial state behind.
func (r *Runner) Run(ctx context.Context) (string, error) {
	now := r.clock()

	settings, err := r.Settings.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}
	notes, err := r.Notes.ListNotes(ctx)
	if err != nil {
		return "", err
	}

	p := period.Resolve(now, settings.LastRun, notes)
	included := period.Select(p, notes)

	content := report.Generate(notes, included, p, settings.LastRun, settings.Sections)
	content += report.RenderMissingDays(missing.Find(p.Start, p.End, notes))

	filename, err := r.Reports.SaveOrUpdateToday(ctx, now, content)
	if err != nil {
		return "", err
	}

	rec := model.RunRecord{
		RunDate:       now.Format(model.DayFormat),
		RunTime:       now.Format("15:04"),
		PeriodStart:   p.Start.Format(model.DayFormat),
		IncludedPaths: included,
		NoteMtimes:    r.collectMtimes(ctx, included),
	}
	settings.History = append(settings.History, rec)
	settings.LastRun = &settings.History[len(settings.History)-1]
	if err := r.Settings.Save(ctx, settings); err != nil {
		return "", fmt.Errorf("save history: %w", err)
	}

	return filename, nil
}

// MissingPreview returns the missing days of the period the next run would
// cover, untruncated.
func (r *Runner) MissingPreview(ctx context.Context) ([]model.MissingDay, error) {
	settings, err := r.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	notes, err := r.Notes.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	p := period.Resolve(r.clock(), settings.LastRun, notes)
	return missing.Find(p.Start, p.End, notes), nil
}

// ModifiedNote pairs a note path with its current mtime.
type ModifiedNote struct {
	Path  string `json:"path"`
	Mtime int64  `json:"mtime"`
}

// Status returns the notes changed since the last run recorded their
// mtimes, sorted by path. With no history every note counts as modified.
func (r *Runner) Status(ctx context.Context) ([]ModifiedNote, error) {
	settings, err := r.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	notes, err := r.Notes.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	current := make(map[string]int64, len(notes))
	for _, n := range notes {
		mt, err := r.Notes.ModifiedTime(ctx, n.Path)
		if err != nil {
			return nil, err
		}
		if mt != 0 {
			current[n.Path] = mt
		}
	}

	var previous map[string]int64
	if settings.LastRun != nil {
		previous = settings.LastRun.NoteMtimes
	}

	modified := changes.Detect(current, previous)
	out := make([]ModifiedNote, 0, len(modified))
	for path, mt := range modified {
		out = append(out, ModifiedNote{Path: path, Mtime: mt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *Runner) collectMtimes(ctx context.Context, paths []string) map[string]int64 {
	mtimes := make(map[string]int64, len(paths))
	for _, p := range paths {
		mt, err := r.Notes.ModifiedTime(ctx, p)
		if err != nil || mt == 0 {
			continue
		}
		mtimes[p] = mt
	}
	return mtimes
}
