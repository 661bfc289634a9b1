package manifestfix

import "strings"

// PassConfidenceScoring is the contractual name of Pass 5.
const PassConfidenceScoring = "Confidence Scoring"

// pass5ConfidenceScoring re-parses the final text, downgrades the severity
// of every change below the confidence threshold to warning, and returns
// whether the text parses along with any remaining parse errors.
func pass5ConfidenceScoring(text string, log *changeLog, opts Options) (isValid bool, errs []string) {
	for i := range log.changes {
		if log.changes[i].Confidence < opts.ConfidenceThreshold {
			log.changes[i].Severity = SeverityWarning
		}
	}

	for _, seg := range splitDocuments(text) {
		if strings.TrimSpace(seg) == "" {
			continue
		}

		if err := parseSegment(seg); err != nil {
			errs = append(errs, err.Error())
		}
	}

	return len(errs) == 0, errs
}

// aggregateConfidence is the arithmetic mean of every recorded change's
// confidence; an empty change log has confidence 1.0 since nothing was
// altered.
func aggregateConfidence(changes []Change) float64 {
	if len(changes) == 0 {
		return 1.0
	}

	var sum float64
	for _, c := range changes {
		sum += c.Confidence
	}

	return sum / float64(len(changes))
}
