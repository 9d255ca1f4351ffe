// Package model defines the core recap data types.
package model

import (
	"fmt"
	"strings"
	"time"
)

// DayFormat is the wire format for calendar dates in run records.
const DayFormat = "2006-01-02"

// Note represents one dated daily note read from the vault.
type Note struct {
	Date      time.Time `json:"date"`
	Path      string    `json:"path"`
	Content   string    `json:"content"`
	IsWorkday bool      `json:"is_workday"`
}

// RunRecord captures one completed recap run.
type RunRecord struct {
	ID            string           `json:"id"`
	RunDate       string           `json:"run_date"`     // YYYY-MM-DD
	RunTime       string           `json:"run_time"`     // HH:mm
	PeriodStart   string           `json:"period_start"` // YYYY-MM-DD
	IncludedPaths []string         `json:"included_paths,omitempty"`
	NoteMtimes    map[string]int64 `json:"note_mtimes,omitempty"`
}

// Settings is the persisted state: configured section names plus the
// append-only run history. LastRun always points at the final history
// element, or is nil when history is empty.
type Settings struct {
	LastRun  *RunRecord  `json:"last_run"`
	History  []RunRecord `json:"history"`
	Sections []string    `json:"sections"`
}

// Period is an inclusive date range of notes considered for a run.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the period, compared at calendar
// day granularity and inclusive on both ends.
func (p Period) Contains(t time.Time) bool {
	d := DayOf(t)
	return !d.Before(DayOf(p.Start)) && !d.After(DayOf(p.End))
}

// MissingDay is a calendar day within a period that has no daily note.
type MissingDay struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

// DayOf truncates t to its calendar day, dropping time of day and location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

var dateLayouts = []string{
	DayFormat,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses the date formats daily-note frontmatter uses: a plain
// day, a day with a time, or a full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
