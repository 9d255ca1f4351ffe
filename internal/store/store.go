// Package store provides the vault and settings storage behind the recap core.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/avolkov/recap/internal/model"
)

// ErrVaultNotConfigured is returned when no vault directory has been set.
var ErrVaultNotConfigured = errors.New("vault is not configured: set --vault, $RECAP_VAULT, or the config file")

// NoteStore lists the daily notes a run aggregates.
type NoteStore interface {
	// ListNotes returns every recognized daily note, newest first.
	ListNotes(ctx context.Context) ([]model.Note, error)

	// ModifiedTime returns a note's mtime in unix milliseconds, or 0 when
	// the file no longer exists.
	ModifiedTime(ctx context.Context, path string) (int64, error)
}

// ReportStore persists generated recap reports.
type ReportStore interface {
	// FindReportForDate returns the path of a recap generated on the given
	// day, or "" when none exists.
	FindReportForDate(ctx context.Context, day time.Time) (string, error)

	// SaveOrUpdateToday writes the recap for now's calendar day, replacing
	// any recap already generated that day, and returns its filename.
	SaveOrUpdateToday(ctx context.Context, now time.Time, content string) (string, error)
}

// SettingsStore persists the configured sections and the run history.
type SettingsStore interface {
	Load(ctx context.Context) (model.Settings, error)
	Save(ctx context.Context, s model.Settings) error
	Close() error
}
