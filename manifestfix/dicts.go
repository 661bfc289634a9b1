package manifestfix

import "go.kubefix.dev/manifestfix/kb"

// Process-wide normalized dictionaries, built once at init per the
// knowledge base's read-only-after-init contract.
var (
	knownKeyDict  = newNormalizedDict(kb.KnownKeys)
	knownKindDict = newNormalizedDict(kb.KnownKinds)
)

// looksLikeKey reports whether token is plausibly a manifest key: it is a
// hard-coded typo correction, or it fuzzy-matches a known key.
func looksLikeKey(token string) bool {
	if _, ok := kb.TypoCorrections[normalizeKey(token)]; ok {
		return true
	}

	_, ok := knownKeyDict.match(token)

	return ok
}
