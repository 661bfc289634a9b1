package manifestfix

import (
	"regexp"
	"strconv"
	"strings"

	"go.kubefix.dev/manifestfix/kb"
)

// PassSyntaxNormalization is the contractual name of Pass 1.
const PassSyntaxNormalization = "Syntax Normalization"

// Canonical per-substep confidence values, named after the sub-step that
// assigns them.
const (
	confKnownKeyColon    = 0.99
	confFuzzyTypo        = 0.95
	confBareKey          = 0.93
	confAggressiveParent = 0.92
	confWordNumber       = 0.89
	confUnclosedQuote    = 0.80
	confKindNormalize    = 0.90
	confSpacing          = 0.60
	confBoolQuote        = 0.85
)

var (
	boolLiteralRe = regexp.MustCompile(`(?i)^(yes|no|on|off)$`)

	// lineShapeRe splits a line into indent, an optional "- " list marker,
	// the first whitespace-delimited token, an optional colon, and
	// everything after it.
	lineShapeRe = regexp.MustCompile(`^(\s*)(-\s+)?([^\s:]+)(:)?(.*)$`)

	colonNoSpaceRe = regexp.MustCompile(`:(\S)`)
	dashNoSpaceRe  = regexp.MustCompile(`^(\s*)-([^\s-].*)$`)
	urlSchemeRe    = regexp.MustCompile(`https?://`)

	// topLevelRewrites are explicit indent-0 substitutions, applied before
	// the general fuzzy matcher gets a chance.
	topLevelRewrites = map[string]string{
		"meta":     "metadata",
		"metdata":  "metadata",
		"medatada": "metadata",
	}

	// forcedIndentKeys maps a known key to the indent level pass one forces
	// it to when it differs, except for the level1HoistExempt carve-out.
	forcedIndentKeys = map[string]int{
		"apiVersion": 0, "kind": 0, "metadata": 0, "spec": 0,
		"status": 0, "data": 0, "binaryData": 0,
		"replicas": 2, "selector": 2, "template": 2, "type": 2,
	}

	// level1HoistExempt lists the keys "forced indentation" deliberately
	// leaves at indent 0 so Pass 2 can recognize and hoist them instead of
	// Pass 1 falsely grafting them under the preceding block.
	level1HoistExempt = map[string]bool{
		"replicas": true, "selector": true, "template": true, "type": true,
	}

	// colonHintParents are parent keys under which a bare "word value" line
	// is assumed to mean "word: value".
	colonHintParents = map[string]bool{
		"labels": true, "annotations": true, "data": true, "env": true,
		"ports": true, "matchLabels": true, "selector": true,
		"resources": true, "limits": true, "requests": true,
	}
)

type parsedLine struct {
	indent     string
	dash       string
	token      string
	hasColon   bool
	rest       string
	matched    bool
}

func parseLineShape(line string) parsedLine {
	m := lineShapeRe.FindStringSubmatch(line)
	if m == nil {
		return parsedLine{}
	}

	return parsedLine{
		indent:   m[1],
		dash:     m[2],
		token:    m[3],
		hasColon: m[4] == ":",
		rest:     m[5],
		matched:  true,
	}
}

func (p parsedLine) rebuild() string {
	colon := ""
	if p.hasColon {
		colon = ":"
	}

	return p.indent + p.dash + p.token + colon + p.rest
}

// pass1SyntaxNormalization repairs keys, colons, spacing, quotes, tabs,
// booleans, and indentation line by line, then runs a series of full-buffer
// structural sweeps.
func pass1SyntaxNormalization(text string, log *changeLog, opts Options) string {
	lines := strings.Split(text, "\n")
	mask := buildBlockScalarMask(lines)
	stack := &indentStack{}

	for i := range lines {
		if mask.at(i) {
			continue
		}

		line := lines[i]
		if isBlank(line) || isComment(line) || isSeparator(line) {
			if isSeparator(line) {
				stack.reset()
			}

			continue
		}

		lines[i] = applyLineLocalSubsteps(line, i+1, stack, log, opts)
	}

	lines = applyLookaheadSubsteps(lines, mask, log)

	lines = sweepListParentColons(lines, mask, log)
	lines = sweepParentWordColons(lines, mask, log)
	lines = sweepEnvListItemNaming(lines, mask, log)
	lines = sweepProbeDeduplication(lines, mask, log, opts)
	lines = sweepAggressiveParentColon(lines, mask, log, opts)
	lines = sweepAnnotationValues(lines, mask, log)
	lines = sweepNestedStructureWrapping(lines, mask, log, opts)

	return strings.Join(lines, "\n")
}

// applyLineLocalSubsteps runs sub-steps 1 through 8 against a single
// non-blank, non-comment, non-separator, unmasked line. The indent used to
// maintain the context stack is the line's indent as originally written;
// forced-indentation only affects the emitted text.
func applyLineLocalSubsteps(line string, lineNo int, stack *indentStack, log *changeLog, opts Options) string {
	original := line
	indent := indentOf(line)
	stack.popTo(indent)
	parent := stack.parent()

	p := parseLineShape(line)
	if !p.matched {
		return line
	}

	// Sub-step 1: top-level field rewrite.
	if indent == 0 {
		if canon, ok := topLevelRewrites[p.token]; ok && canon != p.token {
			before := p.rebuild()
			p.token = canon
			p.hasColon = true
			log.addf(lineNo, before, p.rebuild(), "rewrote top-level field name", CategorySyntax, SeverityWarning, confFuzzyTypo)
		}
	}

	// Sub-step 2: boolean-literal quoting.
	valueToken := strings.TrimSpace(p.rest)
	if boolLiteralRe.MatchString(valueToken) {
		quoted := " \"" + strings.ToLower(valueToken) + "\""
		log.addf(lineNo, p.rest, quoted, "quoted bare boolean literal to defeat YAML 1.1 coercion", CategorySyntax, SeverityInfo, confBoolQuote)
		p.rest = quoted
	}

	// Sub-step 3: forced indentation.
	if canonIndent, ok := forcedIndentKeys[p.token]; ok && indent != canonIndent {
		if !(canonIndent == 2 && indent == 0 && level1HoistExempt[p.token]) {
			before := p.rebuild()
			p.indent = strings.Repeat(" ", canonIndent)
			log.addf(lineNo, before, p.rebuild(), "forced canonical indentation for "+p.token, CategorySyntax, SeverityInfo, confSpacing)
		}
	}

	// Sub-step 4: unclosed-quote closure.
	p.rest = closeUnclosedQuote(p.rest, lineNo, log)

	// Sub-step 5: field-name fuzzy correction and missing-colon injection.
	p = fuzzyCorrectToken(p, parent, lineNo, log)

	rebuilt := p.rebuild()

	// Sub-step 6: word-number conversion, anywhere on the line.
	rebuilt = convertWordNumbers(rebuilt, lineNo, log)

	// Sub-step 7: tabs are normalized earlier in the pipeline; here we round
	// odd indentation and fix colon/dash spacing.
	if rounded := roundIndent(rebuilt, opts.IndentSize); rounded != rebuilt {
		log.addf(lineNo, rebuilt, rounded, "rounded odd indentation", CategorySyntax, SeverityInfo, confSpacing)
		rebuilt = rounded
	}

	rebuilt = fixColonSpacing(rebuilt, lineNo, log)
	rebuilt = fixDashSpacing(rebuilt, lineNo, log)

	// Sub-step 8: kind-value normalization.
	rebuilt = normalizeKindValue(rebuilt, lineNo, log)

	if p.hasColon && p.token != "" {
		stack.push(indent, p.token)
	}

	if rebuilt != original {
		return rebuilt
	}

	return original
}

// closeUnclosedQuote appends a matching closing quote if rest ends with an
// opening quote that was never closed.
func closeUnclosedQuote(rest string, lineNo int, log *changeLog) string {
	trimmed := strings.TrimRight(rest, " ")

	for _, q := range []byte{'"', '\''} {
		quote := string(q)

		if !strings.HasSuffix(trimmed, quote) && strings.Count(trimmed, quote)%2 == 1 {
			log.addf(lineNo, rest, rest+quote, "closed unbalanced "+quote+" quote", CategorySyntax, SeverityWarning, confUnclosedQuote)

			return rest + quote
		}
	}

	return rest
}

// fuzzyCorrectToken normalizes token by stripping non-letters and
// lowercasing, looks it up in the typo tables and the known-key fuzzy
// dictionary, and injects a missing colon where appropriate.
func fuzzyCorrectToken(p parsedLine, parent string, lineNo int, log *changeLog) parsedLine {
	if p.token == "" {
		return p
	}

	before := p.rebuild()
	norm := normalizeKey(p.token)

	if canon, ok := kb.FieldTypoMap[parent+"/"+norm]; ok {
		p.token = canon
		p.hasColon = true
		log.addf(lineNo, before, p.rebuild(), "corrected field typo within "+parent, CategorySyntax, SeverityWarning, confFuzzyTypo)

		return p
	}

	if canon, ok := kb.TypoCorrections[norm]; ok {
		if canon != p.token {
			p.token = canon
			p.hasColon = true
			log.addf(lineNo, before, p.rebuild(), "corrected known typo", CategorySyntax, SeverityWarning, confFuzzyTypo)
		} else if !p.hasColon {
			p.hasColon = true
			log.addf(lineNo, before, p.rebuild(), "inserted missing colon after canonical key", CategorySyntax, SeverityInfo, confKnownKeyColon)
		}

		return p
	}

	if canon, ok := knownKeyDict.match(p.token); ok {
		if canon != p.token {
			p.token = canon
			p.hasColon = true
			log.addf(lineNo, before, p.rebuild(), "fuzzy-corrected field name", CategorySyntax, SeverityWarning, confFuzzyTypo)
		} else if !p.hasColon {
			p.hasColon = true
			log.addf(lineNo, before, p.rebuild(), "inserted missing colon after canonical key", CategorySyntax, SeverityInfo, confKnownKeyColon)
		}

		return p
	}

	if !p.hasColon && colonHintParents[parent] {
		fields := strings.Fields(p.rest)
		if p.token != "" && len(fields) >= 1 {
			p.hasColon = true
			log.addf(lineNo, before, p.rebuild(), "inferred colon from parent context "+parent, CategorySyntax, SeverityWarning, confBareKey)
		}
	}

	return p
}

// convertWordNumbers replaces whole-word number phrases anywhere on the
// line, compound phrases first (longest match wins).
func convertWordNumbers(line string, lineNo int, log *changeLog) string {
	original := line

	for phrase, n := range kb.CompoundWordNumbers {
		line = replaceWholeWord(line, phrase, strconv.Itoa(n))
	}

	for word, n := range kb.WordToNumber {
		line = replaceWholeWord(line, word, strconv.Itoa(n))
	}

	if line != original {
		log.addf(lineNo, original, line, "converted word-form number to digits", CategorySyntax, SeverityInfo, confWordNumber)
	}

	return line
}

func replaceWholeWord(line, word, repl string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)

	return re.ReplaceAllString(line, repl)
}

// roundIndent rounds a line's leading-space count to the nearest multiple of
// indentSize.
func roundIndent(line string, indentSize int) string {
	if isBlank(line) {
		return line
	}

	n := indentOf(line)
	rounded := ((n + indentSize/2) / indentSize) * indentSize

	if rounded == n {
		return line
	}

	return withIndent(rounded, strings.TrimLeft(line, " "))
}

// fixColonSpacing inserts a space after a colon followed immediately by a
// non-space, non-hash character; a line that contains an http:// or https://
// URL is left unchanged.
func fixColonSpacing(line string, lineNo int, log *changeLog) string {
	if urlSchemeRe.MatchString(line) {
		return line
	}

	fixed := colonNoSpaceRe.ReplaceAllStringFunc(line, func(m string) string {
		ch := m[1]
		if ch == '#' {
			return m
		}

		return ": " + string(ch)
	})

	if fixed != line {
		log.addf(lineNo, line, fixed, "inserted space after colon", CategorySyntax, SeverityInfo, confSpacing)
	}

	return fixed
}

// fixDashSpacing inserts a space after a list-item dash immediately followed
// by a non-space, non-dash character.
func fixDashSpacing(line string, lineNo int, log *changeLog) string {
	m := dashNoSpaceRe.FindStringSubmatch(line)
	if m == nil {
		return line
	}

	fixed := m[1] + "- " + m[2]
	log.addf(lineNo, line, fixed, "inserted space after list-item dash", CategorySyntax, SeverityInfo, confSpacing)

	return fixed
}

// normalizeKindValue fuzzy-matches the right-hand side of a "kind:" line
// against the known Kind vocabulary.
func normalizeKindValue(line string, lineNo int, log *changeLog) string {
	p := parseLineShape(line)
	if !p.matched || !p.hasColon || normalizeKey(p.token) != "kind" {
		return line
	}

	value := strings.TrimSpace(p.rest)
	if value == "" {
		return line
	}

	canon, ok := knownKindDict.match(value)
	if !ok || canon == value {
		return line
	}

	fixed := p.indent + p.dash + "kind: " + canon
	log.addf(lineNo, line, fixed, "fuzzy-corrected kind value", CategorySyntax, SeverityWarning, confKindNormalize)

	return fixed
}

// applyLookaheadSubsteps runs sub-steps 9 and 10, which need to inspect the
// next non-blank line.
func applyLookaheadSubsteps(lines []string, mask *blockScalarMask, log *changeLog) []string {
	for i := range lines {
		if mask.at(i) {
			continue
		}

		line := lines[i]
		if isBlank(line) || isComment(line) || isSeparator(line) || isListItem(line) {
			continue
		}

		p := parseLineShape(line)
		if !p.matched || p.hasColon {
			continue
		}

		_, next, ok := nextNonBlank(lines, i+1, mask)
		if !ok {
			continue
		}

		curIndent := indentOf(line)
		nextIndent := indentOf(next)

		// Sub-step 9: bare parent key whose next line is deeper-indented.
		if nextIndent > curIndent && p.rest == "" {
			fixed := p.indent + p.token + ":"
			log.addf(i+1, line, fixed, "bare key precedes a deeper-indented block", CategoryStructure, SeverityWarning, confBareKey)
			lines[i] = fixed

			continue
		}

		// Sub-step 10: "key  value" with no colon, same mapping context.
		fields := strings.Fields(line)
		if len(fields) == 2 && nextIndent <= curIndent {
			fixed := withIndent(curIndent, fields[0]+": "+fields[1])
			log.addf(i+1, line, fixed, "inferred key/value split", CategorySyntax, SeverityWarning, confBareKey)
			lines[i] = fixed
		}
	}

	return lines
}

func nextNonBlank(lines []string, from int, mask *blockScalarMask) (int, string, bool) {
	for i := from; i < len(lines); i++ {
		if mask.at(i) {
			continue
		}

		if isBlank(lines[i]) || isComment(lines[i]) {
			continue
		}

		return i, lines[i], true
	}

	return -1, "", false
}
