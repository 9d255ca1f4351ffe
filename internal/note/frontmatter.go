// Package note parses the structure of daily-note markdown: the leading
// frontmatter block and the heading-delimited sections.
package note

import "strings"

const (
	delimiter = "---"

	// TypeDaily is the frontmatter type marker that identifies a daily note.
	TypeDaily = "daily"

	fieldType = "type"
	fieldDate = "date"
)

// ParseFrontmatter extracts the key/value header block at the start of text.
// A block is a "---" line, zero or more "key: value" lines, and a closing
// "---" line. Only the first colon separates key from value; colon-free
// lines are skipped. Returns nil when no block exists or the block holds no
// parseable keys.
func ParseFrontmatter(text string) map[string]string {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != delimiter {
		return nil
	}

	fm := make(map[string]string)
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == delimiter {
			if len(fm) == 0 {
				return nil
			}
			return fm
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(key) == "" {
			continue
		}
		fm[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	// No closing delimiter.
	return nil
}

// IsDailyNote reports whether a parsed frontmatter identifies a daily note:
// type "daily" plus a non-empty date field.
func IsDailyNote(fm map[string]string) bool {
	return fm != nil && fm[fieldType] == TypeDaily && fm[fieldDate] != ""
}

// Date returns the raw date field of a frontmatter map, or "".
func Date(fm map[string]string) string {
	return fm[fieldDate]
}

// stripFrontmatter removes a leading frontmatter block, parseable or not,
// so section splitting sees only the document body.
func stripFrontmatter(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != delimiter {
		return text
	}
	for i, line := range lines[1:] {
		if strings.TrimRight(line, "\r") == delimiter {
			return strings.Join(lines[i+2:], "\n")
		}
	}
	return text
}
