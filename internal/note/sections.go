package note

import (
	"errors"
	"strings"
)

// ErrNoSections is returned by ExtractOnly when no section names are given.
// Falling back to every section is a configuration-level decision; this
// primitive never does it on its own.
var ErrNoSections = errors.New("no sections specified for extraction")

const headingMarker = "## "

// ExtractSections splits note content into sections keyed by their "## "
// headings. A section's body runs until the next heading or end of text and
// is trimmed of surrounding whitespace; internal blank lines are kept. Text
// before the first heading is dropped, and a repeated title keeps only its
// last occurrence.
func ExtractSections(text string) map[string]string {
	sections := make(map[string]string)

	var title string
	var body []string
	flush := func() {
		if title != "" {
			sections[title] = strings.TrimSpace(strings.Join(body, "\n"))
		}
	}

	for _, line := range strings.Split(stripFrontmatter(text), "\n") {
		if strings.HasPrefix(line, headingMarker) {
			flush()
			title = strings.TrimSpace(line[len(headingMarker):])
			body = nil
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}

// SectionOrder returns the section titles of text in order of first
// appearance, without duplicates.
func SectionOrder(text string) []string {
	var order []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(stripFrontmatter(text), "\n") {
		if !strings.HasPrefix(line, headingMarker) {
			continue
		}
		title := strings.TrimSpace(line[len(headingMarker):])
		if title != "" && !seen[title] {
			seen[title] = true
			order = append(order, title)
		}
	}
	return order
}

// ExtractOnly returns only the named sections of text. Names missing from
// the document are silently omitted; an empty name list is an error.
func ExtractOnly(text string, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return nil, ErrNoSections
	}

	all := ExtractSections(text)
	out := make(map[string]string)
	for _, name := range names {
		if body, ok := all[name]; ok {
			out[name] = body
		}
	}
	return out, nil
}

// HasContent reports whether the named section exists and has non-blank content.
func HasContent(sections map[string]string, name string) bool {
	return strings.TrimSpace(sections[name]) != ""
}

// Content returns the named section's body, or "" when absent.
func Content(sections map[string]string, name string) string {
	return sections[name]
}
