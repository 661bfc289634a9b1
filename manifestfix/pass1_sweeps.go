package manifestfix

import (
	"strings"

	"go.kubefix.dev/manifestfix/kb"
)

// knownParentWords are the bare single words a full-buffer sweep treats as a
// parent missing its colon when a single-child or reference block follows:
// requests/limits themselves, well-known *Ref fields, and generic
// preference/backend blocks.
var knownParentWords = map[string]bool{
	"requests": true, "limits": true, "backend": true, "preference": true,
	"secretKeyRef": true, "configMapRef": true, "fieldRef": true,
	"resourceFieldRef": true, "secretRef": true,
}

// sweepListParentColons appends a colon to a bare "key" line whose very next
// line is a list item, implying "key:".
func sweepListParentColons(lines []string, mask *blockScalarMask, log *changeLog) []string {
	for i := range lines {
		if mask.at(i) || isBlank(lines[i]) || isComment(lines[i]) {
			continue
		}

		p := parseLineShape(lines[i])
		if !p.matched || p.hasColon || p.dash != "" || strings.TrimSpace(p.rest) != "" {
			continue
		}

		_, next, ok := nextNonBlank(lines, i+1, mask)
		if !ok || !isListItem(next) {
			continue
		}

		fixed := p.indent + p.token + ":"
		log.addf(i+1, lines[i], fixed, "key precedes a list, implying a colon", CategoryStructure, SeverityWarning, confBareKey)
		lines[i] = fixed
	}

	return lines
}

// sweepParentWordColons appends a colon to known single-child parent words
// (requests, limits, backend, preference, the *Ref fields, and
// "- metadata"/"- spec" under volumeClaimTemplates) when followed by a
// deeper-indented block.
func sweepParentWordColons(lines []string, mask *blockScalarMask, log *changeLog) []string {
	stack := &indentStack{}

	for i := range lines {
		if mask.at(i) {
			continue
		}

		if isSeparator(lines[i]) {
			stack.reset()

			continue
		}

		if isBlank(lines[i]) || isComment(lines[i]) {
			continue
		}

		indent := indentOf(lines[i])
		stack.popTo(indent)

		p := parseLineShape(lines[i])
		if !p.matched {
			continue
		}

		word := p.token
		if p.dash != "" && (word == "metadata" || word == "spec") && stack.parent() == "volumeClaimTemplates" {
			// fallthrough, still eligible below
		} else if !knownParentWords[word] {
			if p.hasColon && word != "" {
				stack.push(indent, word)
			}

			continue
		}

		if p.hasColon {
			stack.push(indent, word)

			continue
		}

		_, next, ok := nextNonBlank(lines, i+1, mask)
		if !ok || indentOf(next) <= indent {
			continue
		}

		fixed := p.indent + p.dash + word + ":"
		log.addf(i+1, lines[i], fixed, "known parent word missing its colon", CategoryStructure, SeverityWarning, confBareKey)
		lines[i] = fixed
		stack.push(indent, word)
	}

	return lines
}

// sweepEnvListItemNaming turns a bare UPPER_SNAKE list item inside an env:
// block into "- name: TOKEN" when the following line carries value: or
// valueFrom:.
func sweepEnvListItemNaming(lines []string, mask *blockScalarMask, log *changeLog) []string {
	stack := &indentStack{}

	for i := range lines {
		if mask.at(i) {
			continue
		}

		if isSeparator(lines[i]) {
			stack.reset()

			continue
		}

		if isBlank(lines[i]) || isComment(lines[i]) {
			continue
		}

		indent := indentOf(lines[i])
		stack.popTo(indent)

		p := parseLineShape(lines[i])
		if p.matched && p.hasColon && p.dash == "" {
			stack.push(indent, p.token)
		}

		if stack.parent() != "env" || p.dash == "" || p.hasColon {
			continue
		}

		token := strings.TrimSpace(p.token)
		if token == "" || !isUpperSnake(token) {
			continue
		}

		_, next, ok := nextNonBlank(lines, i+1, mask)
		if !ok {
			continue
		}

		nextShape := parseLineShape(strings.TrimLeft(next, " "))
		if nextShape.token != "value" && nextShape.token != "valueFrom" {
			continue
		}

		fixed := p.indent + "- name: " + token
		log.addf(i+1, lines[i], fixed, "named bare env list item", CategoryStructure, SeverityWarning, confBareKey)
		lines[i] = fixed
	}

	return lines
}

func isUpperSnake(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !(r == '_' || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}

	return true
}

// probePriority ranks probe branches when more than one is present: exec
// beats httpGet beats tcpSocket beats grpc.
var probePriority = map[string]int{
	"exec": 3, "httpGet": 2, "tcpSocket": 1, "grpc": 0,
}

// sweepProbeDeduplication keeps exactly one of {httpGet, tcpSocket, exec,
// grpc} under each *Probe block, ranking candidates by (has children, type
// priority, later index wins ties), and deletes the rest.
func sweepProbeDeduplication(lines []string, mask *blockScalarMask, log *changeLog, opts Options) []string {
	i := 0
	for i < len(lines) {
		if mask.at(i) || isBlank(lines[i]) || isComment(lines[i]) {
			i++

			continue
		}

		p := parseLineShape(lines[i])
		if !p.matched || !p.hasColon || !isProbeKey(p.token) {
			i++

			continue
		}

		probeIndent := indentOf(lines[i])
		candidates, blockEnd := collectProbeCandidates(lines, mask, i+1, probeIndent)

		if len(candidates) <= 1 {
			i = blockEnd

			continue
		}

		winner := 0
		for k := 1; k < len(candidates); k++ {
			if betterProbeCandidate(candidates[k], candidates[winner]) {
				winner = k
			}
		}

		var removedNames []string
		skip := make(map[int]bool)

		for k, c := range candidates {
			if k == winner {
				continue
			}

			removedNames = append(removedNames, c.kind)
			for l := c.line; l < c.end; l++ {
				skip[l] = true
			}
		}

		winIndent := candidates[winner].indent
		for l := candidates[winner].line + 1; l < candidates[winner].end; l++ {
			if mask.at(l) || isBlank(lines[l]) {
				continue
			}

			lines[l] = withIndent(winIndent+opts.IndentSize, strings.TrimLeft(lines[l], " "))
		}

		winnerShape := parseLineShape(lines[candidates[winner].line])
		winnerShape.hasColon = true
		lines[candidates[winner].line] = winnerShape.rebuild()

		log.addf(candidates[winner].line+1, strings.Join(removedNames, ", "), removedMarker,
			"kept "+candidates[winner].kind+" probe branch, removed conflicting "+strings.Join(removedNames, ", "),
			CategoryStructure, SeverityWarning, confAggressiveParent)

		newLines := make([]string, 0, len(lines))
		for l, line := range lines {
			if !skip[l] {
				newLines = append(newLines, line)
			}
		}

		lines = newLines
		mask = buildBlockScalarMask(lines)
		i++
	}

	return lines
}

type probeCandidate struct {
	line, end, indent int
	kind              string
	hasChildren       bool
}

// collectProbeCandidates scans the children of a *Probe block starting at
// from, returning every direct child matching a known probe-branch key and
// the index just past the whole probe block.
func collectProbeCandidates(lines []string, mask *blockScalarMask, from, probeIndent int) ([]probeCandidate, int) {
	var candidates []probeCandidate

	childIndent := -1
	j := from

	for j < len(lines) {
		if mask.at(j) || isBlank(lines[j]) || isComment(lines[j]) {
			j++

			continue
		}

		ind := indentOf(lines[j])
		if ind <= probeIndent {
			break
		}

		if childIndent == -1 {
			childIndent = ind
		}

		cp := parseLineShape(lines[j])
		if ind == childIndent && cp.matched && isProbeBranch(cp.token) {
			end := j + 1
			hasChildren := false

			for end < len(lines) {
				if mask.at(end) || isBlank(lines[end]) || isComment(lines[end]) {
					end++

					continue
				}

				if indentOf(lines[end]) <= childIndent {
					break
				}

				hasChildren = true
				end++
			}

			candidates = append(candidates, probeCandidate{line: j, end: end, indent: childIndent, kind: cp.token, hasChildren: hasChildren})
			j = end

			continue
		}

		j++
	}

	return candidates, j
}

func isProbeKey(token string) bool {
	return token == "livenessProbe" || token == "readinessProbe" || token == "startupProbe"
}

func isProbeBranch(token string) bool {
	_, ok := probePriority[token]

	return ok
}

func betterProbeCandidate(a, b probeCandidate) bool {
	if a.hasChildren != b.hasChildren {
		return a.hasChildren
	}

	if probePriority[a.kind] != probePriority[b.kind] {
		return probePriority[a.kind] > probePriority[b.kind]
	}

	return a.line > b.line
}

// sweepAggressiveParentColon appends a colon to any bare single-word line
// with a strictly deeper-indented successor, with higher confidence for
// kb.ParentKeywords. It runs one sweep, or up to three when opts.Aggressive
// is set, stopping early once a sweep changes nothing.
func sweepAggressiveParentColon(lines []string, mask *blockScalarMask, log *changeLog, opts Options) []string {
	rounds := 3
	if !opts.Aggressive {
		rounds = 1
	}

	for r := 0; r < rounds; r++ {
		changed := false

		for i := range lines {
			if mask.at(i) || isBlank(lines[i]) || isComment(lines[i]) || isSeparator(lines[i]) {
				continue
			}

			p := parseLineShape(lines[i])
			if !p.matched || p.hasColon || strings.TrimSpace(p.rest) != "" {
				continue
			}

			fields := strings.Fields(lines[i])
			if len(fields) != 1 {
				continue
			}

			_, next, ok := nextNonBlank(lines, i+1, mask)
			if !ok || indentOf(next) <= indentOf(lines[i]) {
				continue
			}

			confidence := confAggressiveParent
			if kb.ParentKeywords[p.token] {
				confidence = confKnownKeyColon
			}

			fixed := p.indent + p.dash + p.token + ":"
			log.addf(i+1, lines[i], fixed, "aggressive parent-colon inference", CategoryStructure, SeverityWarning, confidence)
			lines[i] = fixed
			changed = true
		}

		if !changed {
			break
		}
	}

	return lines
}

// sweepAnnotationValues turns "k8s.io/foo value" into "k8s.io/foo: value"
// inside a metadata.annotations block.
func sweepAnnotationValues(lines []string, mask *blockScalarMask, log *changeLog) []string {
	stack := &indentStack{}

	for i := range lines {
		if mask.at(i) {
			continue
		}

		if isSeparator(lines[i]) {
			stack.reset()

			continue
		}

		if isBlank(lines[i]) || isComment(lines[i]) {
			continue
		}

		indent := indentOf(lines[i])
		stack.popTo(indent)

		p := parseLineShape(lines[i])
		inAnnotations := stack.parent() == "annotations"

		if p.matched && p.hasColon && p.dash == "" {
			stack.push(indent, p.token)
		}

		if !inAnnotations || !p.matched || p.hasColon {
			continue
		}

		fields := strings.Fields(lines[i])
		if len(fields) < 2 || !strings.Contains(fields[0], "/") {
			continue
		}

		fixed := withIndent(indent, fields[0]+": "+strings.Join(fields[1:], " "))
		log.addf(i+1, lines[i], fixed, "inferred colon for domain-qualified annotation key", CategorySyntax, SeverityWarning, confBareKey)
		lines[i] = fixed
	}

	return lines
}

// sweepNestedStructureWrapping inserts a wrapper line (e.g. httpGet:) above
// misplaced direct children of a matching parent block and re-indents them
// underneath it, for every kb.NestedPatterns rule.
func sweepNestedStructureWrapping(lines []string, _ *blockScalarMask, log *changeLog, opts Options) []string {
	for _, pattern := range kb.NestedPatterns {
		lines = applyNestedPattern(lines, pattern, log, opts)
	}

	return lines
}

func applyNestedPattern(lines []string, pattern kb.NestedPattern, log *changeLog, opts Options) []string {
	mask := buildBlockScalarMask(lines)

	for i := 0; i < len(lines); i++ {
		if mask.at(i) || isBlank(lines[i]) || isComment(lines[i]) {
			continue
		}

		p := parseLineShape(lines[i])
		if !p.matched || !p.hasColon || !pattern.Parent.MatchString(p.token) {
			continue
		}

		parentIndent := indentOf(lines[i])
		childIndent := -1
		hasWrapper := false
		matchesChild := false
		end := i + 1

		for end < len(lines) {
			if mask.at(end) || isBlank(lines[end]) || isComment(lines[end]) {
				end++

				continue
			}

			ind := indentOf(lines[end])
			if ind <= parentIndent {
				break
			}

			if childIndent == -1 {
				childIndent = ind
			}

			if ind == childIndent {
				cp := parseLineShape(lines[end])
				if cp.matched {
					if cp.token == pattern.WrapperKey {
						hasWrapper = true
					}

					if pattern.Child.MatchString(cp.token) {
						matchesChild = true
					}
				}
			}

			end++
		}

		if !matchesChild || hasWrapper || childIndent == -1 {
			continue
		}

		wrapperLine := withIndent(parentIndent+opts.IndentSize, pattern.WrapperKey+":")

		var rewritten []string
		rewritten = append(rewritten, lines[:i+1]...)
		rewritten = append(rewritten, wrapperLine)

		var kept []string

		inMatched := false

		for k := i + 1; k < end; k++ {
			if !isBlank(lines[k]) && indentOf(lines[k]) == childIndent {
				cp := parseLineShape(lines[k])
				inMatched = cp.matched && pattern.Child.MatchString(cp.token)
			}

			switch {
			case !inMatched:
				kept = append(kept, lines[k])
			case isBlank(lines[k]):
				rewritten = append(rewritten, lines[k])
			default:
				rewritten = append(rewritten, withIndent(indentOf(lines[k])+opts.IndentSize, strings.TrimLeft(lines[k], " ")))
			}
		}

		rewritten = append(rewritten, kept...)
		rewritten = append(rewritten, lines[end:]...)

		log.addf(i+1, "", wrapperLine, "wrapped misplaced fields under "+pattern.WrapperKey, CategoryStructure, SeverityWarning, confAggressiveParent)

		lines = rewritten
		mask = buildBlockScalarMask(lines)
		i = end
	}

	return lines
}
