package manifestfix

import "strings"

// PassJunkStripper is the display name of the pre-cleaning stage. It is not
// one of the five numbered passes and so is not part of the pass-name
// contract in [PassBreakdown.Name] for the five ordered passes, but it shares
// the same reporting shape.
const PassJunkStripper = "Junk Stripper"

// stripJunk drops whole lines that cannot plausibly belong to a manifest,
// per the narrow definition: non-blank, non-comment, non-separator, with no
// colon, not a list item, and that does not "look like a key".
func stripJunk(text string, log *changeLog) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	for i, line := range lines {
		if isJunkLine(line) {
			log.addf(i+1, line, removedMarker, "line does not plausibly belong to a manifest", CategorySyntax, SeverityWarning, 1.0)

			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

func isJunkLine(line string) bool {
	if isBlank(line) || isComment(line) || isSeparator(line) {
		return false
	}

	if strings.Contains(line, ":") {
		return false
	}

	if isListItem(line) {
		return false
	}

	return !looksLikeManifestKey(line)
}

// looksLikeManifestKey reports whether a colon-less, non-list line should
// survive the junk stripper because it still plausibly carries manifest
// content: either its first token fuzzy-matches a known key, or the line is
// an indented two-token pair that pass one's nested colon inference can
// still repair into "key: value".
func looksLikeManifestKey(line string) bool {
	trimmed := strings.TrimSpace(line)
	fields := strings.Fields(trimmed)

	if len(fields) == 0 {
		return false
	}

	if looksLikeKey(fields[0]) {
		return true
	}

	return len(fields) == 2 && indentOf(line) > 0
}
