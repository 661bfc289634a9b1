package manifestfix

import "fmt"

// Category classifies the kind of repair a [Change] represents.
type Category string

// The categorical vocabulary below is part of the package's contract:
// downstream tools group and filter on these exact strings.
const (
	CategorySyntax    Category = "syntax"
	CategoryStructure Category = "structure"
	CategorySemantic  Category = "semantic"
	CategoryType      Category = "type"
)

// Severity indicates how consequential a repair was.
type Severity string

const (
	// SeverityCritical is reserved for failures the pipeline itself cannot
	// recover from; the passes never produce it directly, but surrounding
	// surfaces may attach it to unexpected-failure reports.
	SeverityCritical Severity = "critical"
	// SeverityError marks a repair that fixed what would otherwise be a
	// parse failure or a required-field omission.
	SeverityError Severity = "error"
	// SeverityWarning marks a stylistic or best-practice rewrite applied to
	// text that was already (or still is) parseable.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks a whitespace-only normalization.
	SeverityInfo Severity = "info"
)

// Change is one structured repair record. Line refers to the 1-based line
// number in the text state that existed when the change was produced; Pass 2
// uses line 1 as a placeholder since it rewrites the whole document rather
// than individual lines.
type Change struct {
	Line       int      `json:"line"`
	Original   string   `json:"original"`
	Fixed      string   `json:"fixed"`
	Reason     string   `json:"reason"`
	Category   Category `json:"category"`
	Severity   Severity `json:"severity"`
	Confidence float64  `json:"confidence"`
}

// String renders a change as a single human-readable line, primarily for
// logging and CLI summaries.
func (c Change) String() string {
	return fmt.Sprintf("line %d [%s/%s, conf=%.2f]: %s", c.Line, c.Category, c.Severity, c.Confidence, c.Reason)
}

// removedMarker and missingMarkerPrefix are the literal fixed-text values
// used for deletions and object-model insertions, per the change-log
// contract.
const (
	removedMarker       = "(removed)"
	missingMarkerPrefix = "(missing "
)

func missingMarker(what string) string {
	return missingMarkerPrefix + what + ")"
}

// changeLog accumulates Change records in source order during a pass.
type changeLog struct {
	changes []Change
}

func (l *changeLog) add(c Change) {
	l.changes = append(l.changes, c)
}

func (l *changeLog) addf(line int, original, fixed, reason string, cat Category, sev Severity, confidence float64) {
	l.add(Change{
		Line:       line,
		Original:   original,
		Fixed:      fixed,
		Reason:     reason,
		Category:   cat,
		Severity:   sev,
		Confidence: confidence,
	})
}
