package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/avolkov/recap/internal/missing"
	"github.com/avolkov/recap/internal/model"
	"github.com/avolkov/recap/internal/note"
)

// reportSuffix marks recap report files so they can be told apart from
// daily notes sharing the same date in their name.
const reportSuffix = "Recap"

// Vault reads daily notes from and writes recap reports into a single
// directory of markdown files.
type Vault struct {
	dir string
}

// NewVault returns a Vault rooted at dir. The directory is validated on
// first use: operations fail with ErrVaultNotConfigured while dir is empty.
func NewVault(dir string) *Vault {
	return &Vault{dir: dir}
}

// ListNotes reads every markdown file in the vault and returns the ones
// whose frontmatter marks them as daily notes, newest first. Files without
// a recognizable frontmatter or with an unparseable date are skipped.
func (v *Vault) ListNotes(ctx context.Context) ([]model.Note, error) {
	entries, err := v.readDir()
	if err != nil {
		return nil, err
	}

	var notes []model.Note
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		path := filepath.Join(v.dir, e.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read note %s: %w", e.Name(), err)
		}
		content := string(b)

		fm := note.ParseFrontmatter(content)
		if !note.IsDailyNote(fm) {
			continue
		}
		date, err := model.ParseDate(note.Date(fm))
		if err != nil {
			continue
		}

		notes = append(notes, model.Note{
			Date:      date,
			Path:      path,
			Content:   content,
			IsWorkday: missing.IsWorkday(date),
		})
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[j].Date.Before(notes[i].Date)
	})
	return notes, nil
}

// ModifiedTime returns the mtime of a note file in unix milliseconds, or 0
// when the file is gone.
func (v *Vault) ModifiedTime(ctx context.Context, path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("stat note: %w", err)
	}
	return info.ModTime().UnixMilli(), nil
}

// FindReportForDate scans the vault for a recap file generated on the given
// calendar day.
func (v *Vault) FindReportForDate(ctx context.Context, day time.Time) (string, error) {
	entries, err := v.readDir()
	if err != nil {
		return "", err
	}

	prefix := day.Format(model.DayFormat)
	for _, e := range entries {
		name := e.Name()
		if strings.Contains(name, prefix) && strings.Contains(name, reportSuffix) && strings.HasSuffix(name, ".md") {
			return filepath.Join(v.dir, name), nil
		}
	}
	return "", nil
}

// SaveOrUpdateToday deletes any recap already generated on now's calendar
// day and writes a fresh one named YYYY-MM-DD_HH-mm_Recap.md. Two recaps
// for the same day never coexist.
func (v *Vault) SaveOrUpdateToday(ctx context.Context, now time.Time, content string) (string, error) {
	existing, err := v.FindReportForDate(ctx, now)
	if err != nil {
		return "", err
	}
	if existing != "" {
		if err := os.Remove(existing); err != nil {
			return "", fmt.Errorf("delete report: %w", err)
		}
	}

	name := now.Format("2006-01-02_15-04") + "_" + reportSuffix + ".md"
	if err := os.WriteFile(filepath.Join(v.dir, name), []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return name, nil
}

func (v *Vault) readDir() ([]os.DirEntry, error) {
	if v.dir == "" {
		return nil, ErrVaultNotConfigured
	}
	entries, err := os.ReadDir(v.dir)
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}
	return entries, nil
}
