package spinner

import (
	"fmt"
	"strings"

	"github.com/desertthunder/ytspin/internal/shared"
)

const (
	// TitleDelimiter separates title templates: one per line.
	TitleDelimiter = "\n"
	// DescriptionDelimiter separates description templates when it appears on its own line.
	DescriptionDelimiter = "---"
)

// SplitEntries splits text into trimmed, non-blank entries.
//
// "\n" and "\r\n" split on every line break. A rule such as "---" or "===" (three or more of one of - = * _ ~ #)
// splits only on lines whose trimmed content equals it. Any other delimiter splits wherever it occurs.
// Delimiters that are empty or whitespace-only fail with [shared.ErrInvalidArgument].
func SplitEntries(text, delimiter string) ([]string, error) {
	var raw []string
	switch {
	case delimiter == TitleDelimiter || delimiter == "\r\n":
		raw = strings.Split(text, TitleDelimiter)
	case strings.TrimSpace(delimiter) == "":
		return nil, fmt.Errorf("%w: empty or whitespace-only delimiter %q", shared.ErrInvalidArgument, delimiter)
	case isRule(strings.TrimSpace(delimiter)):
		raw = splitOnMarker(text, strings.TrimSpace(delimiter))
	default:
		raw = strings.Split(text, delimiter)
	}

	entries := make([]string, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// isRule reports whether s is a horizontal rule: three or more repeats of one rule character.
func isRule(s string) bool {
	if len(s) < 3 || !strings.ContainsRune("-=*_~#", rune(s[0])) {
		return false
	}
	return strings.Count(s, s[:1]) == len(s)
}

// splitOnMarker groups lines into entries separated by marker lines.
func splitOnMarker(text, marker string) []string {
	var (
		entries []string
		current []string
	)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == marker {
			entries = append(entries, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	return append(entries, strings.Join(current, "\n"))
}

// Count returns the number of non-blank entries in text.
func Count(text, delimiter string) (int, error) {
	entries, err := SplitEntries(text, delimiter)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// ExpandBatch splits text with delimiter and expands each entry once, preserving input order.
func ExpandBatch(text, delimiter string, src Source) ([]string, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil randomness source", shared.ErrInvalidArgument)
	}

	entries, err := SplitEntries(text, delimiter)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(entries))
	for i, entry := range entries {
		s, err := Parse(entry).Expand(src)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseBatch splits text with delimiter and parses every entry.
func ParseBatch(text, delimiter string) ([]Template, error) {
	entries, err := SplitEntries(text, delimiter)
	if err != nil {
		return nil, err
	}

	templates := make([]Template, len(entries))
	for i, entry := range entries {
		templates[i] = Parse(entry)
	}
	return templates, nil
}
