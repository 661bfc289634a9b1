package kb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.kubefix.dev/manifestfix/kb"
)

func TestTypoCorrections_TargetsAreKnownKeys(t *testing.T) {
	t.Parallel()

	for typo, canon := range kb.TypoCorrections {
		assert.True(t, kb.KnownKeys[canon], "typo %q maps to %q, which is not in KnownKeys", typo, canon)
	}
}

func TestFieldTypoMap_TargetsAreKnownKeys(t *testing.T) {
	t.Parallel()

	for ctx, canon := range kb.FieldTypoMap {
		assert.True(t, kb.KnownKeys[canon], "context typo %q maps to %q, which is not in KnownKeys", ctx, canon)
	}
}

func TestWordToNumber_CompoundWordNumbers_Disjoint(t *testing.T) {
	t.Parallel()

	for phrase := range kb.CompoundWordNumbers {
		_, collides := kb.WordToNumber[phrase]
		assert.False(t, collides, "phrase %q appears in both WordToNumber and CompoundWordNumbers", phrase)
	}
}

func TestDeprecatedAPIVersions_ReplacementsDiffer(t *testing.T) {
	t.Parallel()

	for pair, replacement := range kb.DeprecatedAPIVersions {
		assert.NotEqual(t, pair[1], replacement, "deprecated apiVersion %q for kind %q maps to itself", pair[1], pair[0])
	}
}

func TestDefaultAPIVersions_KindsAreKnown(t *testing.T) {
	t.Parallel()

	for kind := range kb.DefaultAPIVersions {
		assert.True(t, kb.KnownKinds[kind], "default apiVersion registered for unknown kind %q", kind)
	}
}

func TestBooleanStrings_CoverYAML11Tokens(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"yes", "no", "on", "off"} {
		_, ok := kb.BooleanStrings[tok]
		assert.True(t, ok, "expected BooleanStrings to cover %q", tok)
	}
}

func TestNumericPatterns_CompileAndMatchExpectedFields(t *testing.T) {
	t.Parallel()

	candidates := []string{"port", "containerPort", "replicas"}

	for _, field := range candidates {
		matched := false

		for _, re := range kb.NumericPatterns {
			if re.MatchString(field) {
				matched = true

				break
			}
		}

		assert.True(t, matched || kb.NumericFields[field], "field %q matched neither NumericFields nor NumericPatterns", field)
	}
}
