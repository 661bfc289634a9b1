package manifestfix

import (
	"strconv"
	"strings"

	"go.kubefix.dev/manifestfix/kb"
)

// PassSemanticValidation is the contractual name of Pass 3.
const PassSemanticValidation = "Semantic Validation"

const (
	confTypeCoercion  = 0.88
	confDuplicateKey  = 0.97
	confNestedColon   = 0.9
)

// pass3SemanticValidation performs line-local, type-aware repairs that
// require a parseable-shaped baseline: nested colon inference, numeric and
// boolean coercion, and duplicate-key removal. It runs its own
// indent/key-stack and block-scalar mask, independent of Pass 1's.
func pass3SemanticValidation(text string, log *changeLog, opts Options) string {
	lines := strings.Split(text, "\n")
	mask := buildBlockScalarMask(lines)

	lines = nestedColonInference(lines, mask, log)
	mask = buildBlockScalarMask(lines)

	for i := range lines {
		if mask.at(i) || isBlank(lines[i]) || isComment(lines[i]) || isSeparator(lines[i]) {
			continue
		}

		lines[i] = coerceTypedValue(lines[i], i+1, log)
	}

	lines = removeDuplicateKeys(lines, mask, log)

	return strings.Join(lines, "\n")
}

// nestedColonInference turns an indented "word value" (not a list item), or
// a "- word value" list item, into "word: value" / "- word: value".
func nestedColonInference(lines []string, mask *blockScalarMask, log *changeLog) []string {
	for i := range lines {
		if mask.at(i) || isBlank(lines[i]) || isComment(lines[i]) || isSeparator(lines[i]) {
			continue
		}

		line := lines[i]
		indent := indentOf(line)

		if isListItem(line) {
			dashIndent, rest, ok := listItemParts(line)
			if !ok {
				continue
			}

			fields := strings.Fields(rest)
			if len(fields) != 2 || strings.Contains(rest, ":") {
				continue
			}

			fixed := dashIndent + "- " + fields[0] + ": " + fields[1]
			log.addf(i+1, line, fixed, "inferred colon for nested list-item pair", CategorySyntax, SeverityWarning, confNestedColon)
			lines[i] = fixed

			continue
		}

		if indent == 0 || strings.Contains(line, ":") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}

		fixed := withIndent(indent, fields[0]+": "+fields[1])
		log.addf(i+1, line, fixed, "inferred colon for nested key/value pair", CategorySyntax, SeverityWarning, confNestedColon)
		lines[i] = fixed
	}

	return lines
}

// coerceTypedValue applies numeric and boolean coercion for a single line
// based on its key: listed kb.NumericFields/kb.BooleanFields first, then the
// kb.NumericPatterns regex fallback.
func coerceTypedValue(line string, lineNo int, log *changeLog) string {
	p := parseLineShape(line)
	if !p.matched || !p.hasColon {
		return line
	}

	key := p.token
	value := strings.TrimSpace(p.rest)

	if value == "" {
		return line
	}

	if kb.BooleanFields[key] {
		if b, ok := coerceBoolLiteral(value); ok {
			return rewriteValue(p, lineNo, value, strconv.FormatBool(b), "coerced boolean field "+key, log)
		}
	}

	if kb.NumericFields[key] {
		if n, ok := coerceNumericLiteral(value); ok {
			return rewriteValue(p, lineNo, value, strconv.Itoa(n), "coerced numeric field "+key, log)
		}

		return line
	}

	if matchesNumericPattern(key) {
		if n, ok := coerceNumericLiteral(value); ok {
			return rewriteValue(p, lineNo, value, strconv.Itoa(n), "inferred numeric type from key pattern", log)
		}
	}

	return line
}

func rewriteValue(p parsedLine, lineNo int, original, replacement, reason string, log *changeLog) string {
	p.rest = " " + replacement
	fixed := p.rebuild()
	log.addf(lineNo, original, replacement, reason, CategoryType, SeverityWarning, confTypeCoercion)

	return fixed
}

func coerceBoolLiteral(value string) (bool, bool) {
	unquoted := strings.Trim(value, `"'`)

	b, ok := kb.BooleanStrings[strings.ToLower(unquoted)]
	if !ok {
		switch unquoted {
		case "true":
			b, ok = true, true
		case "false":
			b, ok = false, true
		}
	}

	if !ok {
		return false, false
	}

	// Already the canonical bare literal: report no coercion so a
	// second run over already-fixed text doesn't re-log a no-op change.
	if strconv.FormatBool(b) == value {
		return b, false
	}

	return b, true
}

func coerceNumericLiteral(value string) (int, bool) {
	unquoted := strings.Trim(value, `"'`)

	if n, ok := parseIntLoose(unquoted); ok {
		return n, unquoted != value || isQuoted(value)
	}

	if n, ok := kb.WordToNumber[strings.ToLower(unquoted)]; ok {
		return n, true
	}

	if n, ok := kb.CompoundWordNumbers[strings.ToLower(unquoted)]; ok {
		return n, true
	}

	return 0, false
}

func isQuoted(value string) bool {
	return len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[0] == value[len(value)-1]
}

func matchesNumericPattern(key string) bool {
	for _, re := range kb.NumericPatterns {
		if re.MatchString(key) {
			return true
		}
	}

	return false
}

// removeDuplicateKeys walks the buffer with a stack of per-indent key sets,
// dropping every second-and-later occurrence of a key at the same indent
// within the same block. A document separator resets the stack; a new list
// item clears the current level's set.
func removeDuplicateKeys(lines []string, mask *blockScalarMask, log *changeLog) []string {
	type level struct {
		indent int
		seen   map[string]bool
	}

	var stack []level
	var kept []string

	for i, line := range lines {
		if mask.at(i) || isBlank(line) || isComment(line) {
			kept = append(kept, line)

			continue
		}

		if isSeparator(line) {
			stack = nil
			kept = append(kept, line)

			continue
		}

		indent := indentOf(line)

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}

		if isListItem(line) {
			stack = append(stack, level{indent: indent, seen: map[string]bool{}})
			kept = append(kept, line)

			continue
		}

		p := parseLineShape(line)
		if !p.matched || !p.hasColon {
			kept = append(kept, line)

			continue
		}

		if len(stack) == 0 || stack[len(stack)-1].indent != indent {
			stack = append(stack, level{indent: indent, seen: map[string]bool{}})
		}

		cur := &stack[len(stack)-1]
		if cur.seen[p.token] {
			log.addf(i+1, line, removedMarker, "removed duplicate key "+p.token+" at the same indent", CategorySemantic, SeverityWarning, confDuplicateKey)

			continue
		}

		cur.seen[p.token] = true
		kept = append(kept, line)
	}

	return kept
}
