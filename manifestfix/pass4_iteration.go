package manifestfix

import (
	"regexp"
	"strconv"
	"strings"
)

// PassValidationIteration is the contractual name of Pass 4.
const PassValidationIteration = "Validation Iteration"

const confIterationFix = 0.75

// parseErrorPositionRe matches the "[line:col] message" prefix goccy/go-yaml
// syntax errors render, e.g. "syntax error: [4:10] mapping value is not
// allowed in this context".
var parseErrorPositionRe = regexp.MustCompile(`\[(\d+):(\d+)\]\s*(.*)`)

// pass4ValidationIteration attempts to parse the text as a multi-document
// stream; on failure it reads the error's line, column, and message and
// applies one targeted fix, then retries, bounded by opts.MaxIterations.
func pass4ValidationIteration(text string, log *changeLog, opts Options) string {
	for iter := 0; iter < opts.MaxIterations; iter++ {
		err := firstParseError(text)
		if err == nil {
			return text
		}

		line, _, msg, ok := parseErrorPosition(err.Error())
		if !ok {
			return text
		}

		fixed, changed := applyIterationFix(text, line, msg, log)
		if !changed {
			return text
		}

		text = fixed
	}

	return text
}

func firstParseError(text string) error {
	for _, seg := range splitDocuments(text) {
		if strings.TrimSpace(seg) == "" {
			continue
		}

		if err := parseSegment(seg); err != nil {
			return err
		}
	}

	return nil
}

func parseErrorPosition(msg string) (line, col int, message string, ok bool) {
	m := parseErrorPositionRe.FindStringSubmatch(msg)
	if m == nil {
		return 0, 0, "", false
	}

	line, _ = strconv.Atoi(m[1])
	col, _ = strconv.Atoi(m[2])

	return line, col, strings.TrimSpace(m[3]), true
}

// applyIterationFix applies the single pattern-driven fix the parser error
// at the given line implies.
func applyIterationFix(text string, errLine int, msg string, log *changeLog) (string, bool) {
	lines := strings.Split(text, "\n")
	idx := errLine - 1

	if idx < 0 || idx >= len(lines) {
		return text, false
	}

	switch {
	case strings.Contains(msg, "block sequence entries are not allowed") || strings.Contains(msg, "expected <block end>"):
		return reindentShallowLine(lines, idx, log)
	case strings.Contains(msg, "mapping value is not allowed in this context"):
		return insertColonSpace(lines, idx, log)
	case strings.Contains(msg, "could not find end character of single-quotated text"):
		return closeQuoteAt(lines, idx, '\'', log)
	case strings.Contains(msg, "could not find end character of double-quotated text"):
		return closeQuoteAt(lines, idx, '"', log)
	default:
		return text, false
	}
}

// reindentShallowLine re-indents errLine to prevIndent+2 when it is
// shallower than the previous non-blank line's indent and is not itself a
// list item.
func reindentShallowLine(lines []string, idx int, log *changeLog) (string, bool) {
	if isListItem(lines[idx]) {
		return strings.Join(lines, "\n"), false
	}

	prevIdx := idx - 1
	for prevIdx >= 0 && (isBlank(lines[prevIdx]) || isComment(lines[prevIdx])) {
		prevIdx--
	}

	if prevIdx < 0 {
		return strings.Join(lines, "\n"), false
	}

	prevIndent := indentOf(lines[prevIdx])
	curIndent := indentOf(lines[idx])

	if curIndent >= prevIndent {
		return strings.Join(lines, "\n"), false
	}

	fixed := withIndent(prevIndent+2, strings.TrimLeft(lines[idx], " "))
	log.addf(idx+1, lines[idx], fixed, "re-indented line rejected by the parser", CategorySyntax, SeverityError, confIterationFix)
	lines[idx] = fixed

	return strings.Join(lines, "\n"), true
}

// insertColonSpace inserts a space after the first colon on the line if it
// is immediately followed by a non-space character.
func insertColonSpace(lines []string, idx int, log *changeLog) (string, bool) {
	line := lines[idx]

	ci := strings.IndexByte(line, ':')
	if ci < 0 || ci == len(line)-1 || line[ci+1] == ' ' {
		return strings.Join(lines, "\n"), false
	}

	fixed := line[:ci+1] + " " + line[ci+1:]
	log.addf(idx+1, line, fixed, "inserted space after colon the parser rejected", CategorySyntax, SeverityError, confIterationFix)
	lines[idx] = fixed

	return strings.Join(lines, "\n"), true
}

// closeQuoteAt appends the given quote character to the line if it has an
// odd, unbalanced count of it.
func closeQuoteAt(lines []string, idx int, quote byte, log *changeLog) (string, bool) {
	line := lines[idx]
	if strings.Count(line, string(quote))%2 == 0 {
		return strings.Join(lines, "\n"), false
	}

	fixed := line + string(quote)
	log.addf(idx+1, line, fixed, "closed quote the parser reported as unterminated", CategorySyntax, SeverityError, confIterationFix)
	lines[idx] = fixed

	return strings.Join(lines, "\n"), true
}
