package manifestfix

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// normalizeKey strips every non-letter rune and lowercases what remains, the
// normalization fuzzy key matching compares under.
func normalizeKey(s string) string {
	var sb strings.Builder

	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			sb.WriteRune(r)
		}
	}

	return strings.ToLower(sb.String())
}

// normalizedDict holds the normalized form of a dictionary of canonical
// names, computed once when the dictionary is built, so repeated fuzzy
// lookups against the same knowledge-base table do not re-normalize it on
// every call.
type normalizedDict struct {
	// byNormalized maps a normalized key back to one canonical spelling.
	// Canonical names can collide once normalized (serviceName and
	// serviceName2 both become "servicename"); newNormalizedDict then keeps
	// the spelling whose lowercase form is the normalized key itself.
	byNormalized map[string]string
}

func newNormalizedDict(canonical map[string]bool) *normalizedDict {
	d := &normalizedDict{byNormalized: make(map[string]string, len(canonical))}
	for k := range canonical {
		n := normalizeKey(k)
		if prev, ok := d.byNormalized[n]; ok && strings.ToLower(prev) == n {
			continue
		}

		d.byNormalized[n] = k
	}

	return d
}

func newNormalizedDictSlice(canonical []string) *normalizedDict {
	d := &normalizedDict{byNormalized: make(map[string]string, len(canonical))}
	for _, k := range canonical {
		d.byNormalized[normalizeKey(k)] = k
	}

	return d
}

// fuzzyThreshold returns the maximum edit distance allowed for a candidate
// match against a known word of the given normalized length: distance <= 2
// by default, <= 3 when the candidate and known word agree on their first
// two letters, and <= 1 when the known word has fewer than five letters.
func fuzzyThreshold(candidate, known string) int {
	if len(known) < 5 {
		return 1
	}

	if len(candidate) >= 2 && len(known) >= 2 && candidate[:2] == known[:2] {
		return 3
	}

	return 2
}

// match returns the canonical spelling whose normalized form is closest to
// token by Levenshtein distance, within the threshold fuzzyThreshold allows
// for that candidate pair. ok is false if nothing in the dictionary is close
// enough.
func (d *normalizedDict) match(token string) (canonical string, ok bool) {
	normToken := normalizeKey(token)
	if normToken == "" {
		return "", false
	}

	if exact, found := d.byNormalized[normToken]; found {
		return exact, true
	}

	bestDist := -1
	bestCanonical := ""

	for normKnown, known := range d.byNormalized {
		dist := levenshtein.ComputeDistance(normToken, normKnown)
		if dist > fuzzyThreshold(normToken, normKnown) {
			continue
		}

		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			bestCanonical = known
		}
	}

	if bestDist == -1 {
		return "", false
	}

	return bestCanonical, true
}
