package manifestfix

import (
	"strings"
	"time"
)

// Run executes the repair pipeline against text and returns the structured
// [Result]: the repaired content, the full change log in application order,
// whether the result parses as YAML, any remaining parse errors, the
// aggregate confidence, and a per-stage breakdown. Run never returns an
// error for malformed input -- a pathological manifest produces a Result
// with IsValid false and Errors populated. Out-of-range Options fields are
// clamped rather than rejected; call [Options.Validate] first if strict
// rejection is wanted.
//
// Run is safe to call concurrently for independent inputs: the knowledge
// base it consults is read-only after package init, and each call owns its
// own text and change log.
func Run(text string, opts Options) Result {
	opts = opts.clamp()

	if !opts.AutoFix {
		return runReadOnly(text)
	}

	text = normalizeTabs(text)

	log := &changeLog{}

	var breakdown []PassBreakdown

	text, breakdown = runStage(breakdown, PassJunkStripper, text, log, func(t string, l *changeLog) string {
		return stripJunk(t, l)
	})

	text, breakdown = runStage(breakdown, PassSyntaxNormalization, text, log, func(t string, l *changeLog) string {
		return pass1SyntaxNormalization(t, l, opts)
	})

	text, breakdown = runStage(breakdown, PassASTReconstruction, text, log, func(t string, l *changeLog) string {
		return pass2ASTReconstruction(t, l, opts)
	})

	text, breakdown = runStage(breakdown, PassSemanticValidation, text, log, func(t string, l *changeLog) string {
		return pass3SemanticValidation(t, l, opts)
	})

	text, breakdown = runStage(breakdown, PassValidationIteration, text, log, func(t string, l *changeLog) string {
		return pass4ValidationIteration(t, l, opts)
	})

	var isValid bool

	var errs []string

	start := len(log.changes)
	stageStart := now()
	isValid, errs = pass5ConfidenceScoring(text, log, opts)
	breakdown = append(breakdown, PassBreakdown{
		Name:         PassConfidenceScoring,
		ChangesCount: len(log.changes) - start,
		Duration:     since(stageStart),
	})

	return Result{
		Content:       text,
		Changes:       log.changes,
		IsValid:       isValid,
		Errors:        errs,
		Confidence:    aggregateConfidence(log.changes),
		PassBreakdown: breakdown,
	}
}

// runStage applies one text-rewriting pass, timing it and recording how many
// changes it appended to log, then returns the rewritten text and the
// breakdown slice with this stage's entry appended.
func runStage(
	breakdown []PassBreakdown,
	name string,
	text string,
	log *changeLog,
	apply func(string, *changeLog) string,
) (string, []PassBreakdown) {
	before := len(log.changes)
	start := now()

	text = apply(text, log)

	breakdown = append(breakdown, PassBreakdown{
		Name:         name,
		ChangesCount: len(log.changes) - before,
		Duration:     since(start),
	})

	return text, breakdown
}

// runReadOnly implements Run for Options.AutoFix == false: no pass mutates
// the text, and the returned Result only reports whether it already parses.
func runReadOnly(text string) Result {
	var errs []string

	for _, seg := range splitDocuments(text) {
		if strings.TrimSpace(seg) == "" {
			continue
		}

		if err := parseSegment(seg); err != nil {
			errs = append(errs, err.Error())
		}
	}

	return Result{
		Content:    text,
		IsValid:    len(errs) == 0,
		Errors:     errs,
		Confidence: 1.0,
	}
}

// now and since wrap time.Now/time.Since behind package-level vars so tests
// can stub out wall-clock timing without touching pipeline logic.
var (
	now   = time.Now
	since = time.Since
)
