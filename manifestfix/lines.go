package manifestfix

import (
	"regexp"
	"strings"
)

var (
	separatorLineRe = regexp.MustCompile(`^(---|\.\.\.)\s*$`)
	listItemRe      = regexp.MustCompile(`^(\s*)-(\s+)?(.*)$`)
	blockScalarRe   = regexp.MustCompile(`:\s*[|>][-+]?\s*$`)
)

// normalizeTabs replaces every leading tab in each line with two spaces, per
// the data model invariant that tabs are normalized before any scanning.
func normalizeTabs(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = normalizeTabsInLine(line)
	}

	return strings.Join(lines, "\n")
}

func normalizeTabsInLine(line string) string {
	var sb strings.Builder

	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		if line[i] == '\t' {
			sb.WriteString("  ")
		} else {
			sb.WriteByte(' ')
		}

		i++
	}

	sb.WriteString(line[i:])

	return sb.String()
}

// indentOf returns the count of leading spaces in line.
func indentOf(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}

	return n
}

// isBlank reports whether line contains only whitespace.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isComment reports whether line's first non-blank character is '#'.
func isComment(line string) bool {
	trimmed := strings.TrimSpace(line)

	return strings.HasPrefix(trimmed, "#")
}

// isSeparator reports whether line is a bare document separator or end
// marker ("---" or "...").
func isSeparator(line string) bool {
	return separatorLineRe.MatchString(strings.TrimRight(line, " "))
}

// isListItem reports whether line (after its indent) starts with "-".
func isListItem(line string) bool {
	trimmed := strings.TrimLeft(line, " ")

	return strings.HasPrefix(trimmed, "-")
}

// listItemParts splits a list-item line into its indent and the rest after
// the dash and its spacer, with ok=true; ok is false if it is not a list
// item.
func listItemParts(line string) (indent string, rest string, ok bool) {
	m := listItemRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}

	return m[1], m[3], true
}

// withIndent rebuilds a line at the given indent level, preserving its
// trimmed content.
func withIndent(n int, trimmed string) string {
	return strings.Repeat(" ", n) + trimmed
}
