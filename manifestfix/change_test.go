package manifestfix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.kubefix.dev/manifestfix"
)

func TestChange_String(t *testing.T) {
	t.Parallel()

	c := manifestfix.Change{
		Line:       4,
		Original:   "met",
		Fixed:      "metadata:",
		Reason:     "corrected known typo",
		Category:   manifestfix.CategorySyntax,
		Severity:   manifestfix.SeverityWarning,
		Confidence: 0.95,
	}

	got := c.String()

	assert.Contains(t, got, "line 4")
	assert.Contains(t, got, string(manifestfix.CategorySyntax))
	assert.Contains(t, got, string(manifestfix.SeverityWarning))
	assert.Contains(t, got, "0.95")
	assert.Contains(t, got, "corrected known typo")
}
