package recap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/avolkov/recap/internal/model"
	"github.com/avolkov/recap/internal/store"
)

type fakeNotes struct {
	notes  []model.Note
	mtimes map[string]int64
	err    error
}

func (f *fakeNotes) ListNotes(ctx context.Context) ([]model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.notes, nil
}

func (f *fakeNotes) ModifiedTime(ctx context.Context, path string) (int64, error) {
	return f.mtimes[path], nil
}

type fakeReports struct {
	saved    []string
	contents []string
	err      error
}

func (f *fakeReports) FindReportForDate(ctx context.Context, day time.Time) (string, error) {
	return "", nil
}

func (f *fakeReports) SaveOrUpdateToday(ctx context.Context, now time.Time, content string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	name := now.Format("2006-01-02_15-04") + "_Recap.md"
	f.saved = append(f.saved, name)
	f.contents = append(f.contents, content)
	return name, nil
}

type fakeSettings struct {
	state model.Settings
	saves int
}

func (f *fakeSettings) Load(ctx context.Context) (model.Settings, error) {
	return f.state, nil
}

func (f *fakeSettings) Save(ctx context.Context, s model.Settings) error {
	f.state = s
	f.saves++
	return nil
}

func (f *fakeSettings) Close() error { return nil }

func dailyNote(date, path, body string) model.Note {
	d, err := model.ParseDay(date)
	if err != nil {
		panic(err)
	}
	return model.Note{
		Date:    d,
		Path:    path,
		Content: "---\ntype: daily\ndate: " + date + "\n---\n\n" + body,
	}
}

func at(t *testing.T, s string) func() time.Time {
	t.Helper()
	now, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return func() time.Time { return now }
}

func TestRun_ProducesReportAndRecord(t *testing.T) {
	ctx := context.Background()
	notes := &fakeNotes{
		notes: []model.Note{
			dailyNote("2024-01-10", "b.md", "## Plan\n- later"),
			dailyNote("2024-01-08", "a.md", "## Plan\n- earlier"),
		},
		mtimes: map[string]int64{"a.md": 100, "b.md": 200},
	}
	reports := &fakeReports{}
	settings := &fakeSettings{state: model.Settings{Sections: []string{"Plan"}}}

	runner := &Runner{Notes: notes, Reports: reports, Settings: settings, Now: at(t, "2024-01-10 14:30")}
	filename, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if filename != "2024-01-10_14-30_Recap.md" {
		t.Errorf("unexpected filename %q", filename)
	}

	content := reports.contents[0]
	if !strings.Contains(content, "## Plan") {
		t.Error("expected Plan section in report")
	}
	if !strings.Contains(content, "- earlier") || !strings.Contains(content, "- later") {
		t.Error("expected both notes aggregated")
	}
	if !strings.Contains(content, "## Missing Days") {
		t.Error("expected missing-days listing (Jan 9 has no note)")
	}

	if len(settings.state.History) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(settings.state.History))
	}
	rec := settings.state.History[0]
	if rec.RunDate != "2024-01-10" || rec.RunTime != "14:30" {
		t.Errorf("unexpected run stamp %s %s", rec.RunDate, rec.RunTime)
	}
	if rec.PeriodStart != "2024-01-08" {
		t.Errorf("expected period start at oldest note, got %s", rec.PeriodStart)
	}
	if len(rec.IncludedPaths) != 2 {
		t.Errorf("expected both paths included, got %v", rec.IncludedPaths)
	}
	if rec.NoteMtimes["b.md"] != 200 {
		t.Errorf("expected recorded mtimes, got %v", rec.NoteMtimes)
	}
	if settings.state.LastRun == nil || settings.state.LastRun.RunDate != "2024-01-10" {
		t.Error("expected LastRun updated")
	}
}

func TestRun_SameDayRerunKeepsPeriod(t *testing.T) {
	ctx := context.Background()
	notes := &fakeNotes{notes: []model.Note{dailyNote("2024-01-15", "a.md", "## Plan\n- x")}}
	reports := &fakeReports{}
	settings := &fakeSettings{state: model.Settings{
		Sections: []string{"Plan"},
		History: []model.RunRecord{
			{RunDate: "2024-01-15", RunTime: "09:00", PeriodStart: "2024-01-10"},
		},
	}}
	settings.state.LastRun = &settings.state.History[0]

	runner := &Runner{Notes: notes, Reports: reports, Settings: settings, Now: at(t, "2024-01-15 17:00")}
	if _, err := runner.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	rec := settings.state.History[len(settings.state.History)-1]
	if rec.PeriodStart != "2024-01-10" {
		t.Errorf("expected preserved period start 2024-01-10, got %s", rec.PeriodStart)
	}
	if !strings.Contains(reports.contents[0], "**Period:** 2024-01-10 - 2024-01-15") {
		t.Error("expected original period in the report header")
	}
	if !strings.Contains(reports.contents[0], "*Previous report: 2024-01-15 09:00*") {
		t.Error("expected previous report line")
	}
}

func TestRun_VaultNotConfigured(t *testing.T) {
	ctx := context.Background()
	notes := &fakeNotes{err: store.ErrVaultNotConfigured}
	settings := &fakeSettings{}

	runner := &Runner{Notes: notes, Reports: &fakeReports{}, Settings: settings, Now: at(t, "2024-01-15 09:00")}
	_, err := runner.Run(ctx)
	if !errors.Is(err, store.ErrVaultNotConfigured) {
		t.Fatalf("expected ErrVaultNotConfigured, got %v", err)
	}
	if settings.saves != 0 {
		t.Error("expected no history mutation on failure")
	}
}

func TestRun_ReportWriteFailureLeavesHistoryUntouched(t *testing.T) {
	ctx := context.Background()
	notes := &fakeNotes{notes: []model.Note{dailyNote("2024-01-15", "a.md", "## Plan\n- x")}}
	reports := &fakeReports{err: errors.New("disk full")}
	settings := &fakeSettings{}

	runner := &Runner{Notes: notes, Reports: reports, Settings: settings, Now: at(t, "2024-01-15 09:00")}
	if _, err := runner.Run(ctx); err == nil {
		t.Fatal("expected error from report write")
	}
	if settings.saves != 0 {
		t.Error("expected no history mutation when the report write fails")
	}
}

func TestRun_EmptyVaultStillProducesReport(t *testing.T) {
	ctx := context.Background()
	reports := &fakeReports{}
	settings := &fakeSettings{}

	runner := &Runner{Notes: &fakeNotes{}, Reports: reports, Settings: settings, Now: at(t, "2024-01-15 09:00")}
	if _, err := runner.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(reports.contents[0], "*No daily notes found or no matching sections*") {
		t.Error("expected placeholder for empty vault")
	}
	// Lookback period: 7 days, all missing.
	if !strings.Contains(reports.contents[0], "## Missing Days") {
		t.Error("expected missing days for the lookback window")
	}
	rec := settings.state.History[0]
	if rec.PeriodStart != "2024-01-08" {
		t.Errorf("expected 7-day lookback start, got %s", rec.PeriodStart)
	}
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	notes := &fakeNotes{
		notes: []model.Note{
			dailyNote("2024-01-14", "a.md", ""),
			dailyNote("2024-01-15", "b.md", ""),
			dailyNote("2024-01-15", "c.md", ""),
		},
		mtimes: map[string]int64{"a.md": 100, "b.md": 250, "c.md": 300},
	}
	settings := &fakeSettings{state: model.Settings{
		History: []model.RunRecord{{
			RunDate: "2024-01-15", RunTime: "09:00", PeriodStart: "2024-01-10",
			NoteMtimes: map[string]int64{"a.md": 100, "b.md": 200},
		}},
	}}
	settings.state.LastRun = &settings.state.History[0]

	runner := &Runner{Notes: notes, Reports: &fakeReports{}, Settings: settings, Now: at(t, "2024-01-15 17:00")}
	got, err := runner.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 modified notes, got %v", got)
	}
	if got[0].Path != "b.md" || got[1].Path != "c.md" {
		t.Errorf("expected b.md and c.md, got %v", got)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	notes := &fakeNotes{notes: []model.Note{
		dailyNote("2024-01-10", "b.md", ""),
		dailyNote("2024-01-08", "a.md", ""),
	}}
	settings := &fakeSettings{state: model.Settings{
		Sections: []string{"Plan"},
		History:  []model.RunRecord{{RunDate: "2024-01-09", RunTime: "09:00", PeriodStart: "2024-01-08"}},
	}}
	settings.state.LastRun = &settings.state.History[0]

	runner := &Runner{Notes: notes, Reports: &fakeReports{}, Settings: settings, Now: at(t, "2024-01-10 12:00")}
	st, err := runner.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.NoteCount != 2 || st.RunCount != 1 {
		t.Errorf("unexpected counts %+v", st)
	}
	if st.OldestNote != "2024-01-08" || st.NewestNote != "2024-01-10" {
		t.Errorf("unexpected note range %+v", st)
	}
	if st.LastRunDate != "2024-01-09" {
		t.Errorf("unexpected last run %+v", st)
	}
	// Period is Jan 9 (last run date) through Jan 10; Jan 9 has no note.
	if st.MissingDays != 1 {
		t.Errorf("expected 1 missing day, got %d", st.MissingDays)
	}
}
