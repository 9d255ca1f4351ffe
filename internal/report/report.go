// Package report renders the cumulative recap markdown.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avolkov/recap/internal/model"
	"github.com/avolkov/recap/internal/note"
)

const (
	reportTitle = "# Work Recap Report"
	placeholder = "*No daily notes found or no matching sections*"

	// dayHeading formats the per-day list items inside a section.
	dayHeading = "Monday, January 2, 2006"

	indent = "  "

	// maxMissingDays caps the rendered missing-day listing at three weeks.
	maxMissingDays = 21
)

// Generate renders the recap body: a header block, then one "## " block per
// section with every contributing day's content grouped under it in
// chronological order. Sections where no included day contributed anything
// are omitted; when nothing contributed at all a single placeholder line is
// emitted instead.
func Generate(notes []model.Note, includedPaths []string, p model.Period, lastRun *model.RunRecord, sectionNames []string) string {
	var b strings.Builder
	writeHeader(&b, p, lastRun)
	b.WriteString("---\n\n")

	included := filterByPath(notes, includedPaths)
	sort.Slice(included, func(i, j int) bool {
		return included[i].Date.Before(included[j].Date)
	})

	configured := len(sectionNames) > 0
	titles := sectionNames
	if !configured {
		titles = discoverTitles(included)
	}

	extracted := make([]map[string]string, len(included))
	for i, n := range included {
		if configured {
			sections, err := note.ExtractOnly(n.Content, sectionNames)
			if err != nil {
				sections = nil
			}
			extracted[i] = sections
		} else {
			extracted[i] = note.ExtractSections(n.Content)
		}
	}

	wrote := false
	for _, title := range titles {
		var body strings.Builder
		for i, n := range included {
			if !note.HasContent(extracted[i], title) {
				continue
			}
			body.WriteString("- " + n.Date.Format(dayHeading) + "\n")
			body.WriteString(indentLines(note.Content(extracted[i], title)) + "\n")
		}
		if body.Len() == 0 {
			continue
		}
		b.WriteString("## " + title + "\n\n")
		b.WriteString(body.String())
		b.WriteString("\n")
		wrote = true
	}

	if !wrote {
		b.WriteString(placeholder + "\n\n")
	}

	return b.String()
}

// RenderMissingDays renders the trailing missing-day listing. An empty list
// renders nothing. Longer lists keep only the most recent maxMissingDays
// entries, with a notice stating the full count.
func RenderMissingDays(days []model.MissingDay) string {
	if len(days) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Missing Days\n\n")

	shown := days
	if len(days) > maxMissingDays {
		fmt.Fprintf(&b, "*Showing last %d days of %d missing days*\n\n", maxMissingDays, len(days))
		shown = days[len(days)-maxMissingDays:]
	}

	for _, d := range shown {
		fmt.Fprintf(&b, "- %s %s\n", d.Date.Format(dayHeading), d.Reason)
	}
	b.WriteString("\n")

	return b.String()
}

func writeHeader(b *strings.Builder, p model.Period, lastRun *model.RunRecord) {
	b.WriteString(reportTitle + "\n\n")
	fmt.Fprintf(b, "**Generated:** %s\n\n", p.End.Format("2006-01-02 15:04"))
	fmt.Fprintf(b, "**Period:** %s - %s\n\n",
		p.Start.Format(model.DayFormat), p.End.Format(model.DayFormat))
	if lastRun != nil {
		fmt.Fprintf(b, "*Previous report: %s %s*\n\n", lastRun.RunDate, lastRun.RunTime)
	}
}

func filterByPath(notes []model.Note, paths []string) []model.Note {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[p] = true
	}
	var out []model.Note
	for _, n := range notes {
		if want[n.Path] {
			out = append(out, n)
		}
	}
	return out
}

// discoverTitles is the fallback when no sections are configured: the union
// of every section title across the included notes, in first-seen order.
func discoverTitles(included []model.Note) []string {
	var titles []string
	seen := make(map[string]bool)
	for _, n := range included {
		for _, title := range note.SectionOrder(n.Content) {
			if !seen[title] {
				seen[title] = true
				titles = append(titles, title)
			}
		}
	}
	return titles
}

func indentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
