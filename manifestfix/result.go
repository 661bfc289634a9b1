package manifestfix

import "time"

// PassBreakdown records one pass's contribution to a [Result]: its
// contractual name, how many changes it appended, and how long it took.
type PassBreakdown struct {
	Name         string        `json:"name"`
	ChangesCount int           `json:"changesCount"`
	Duration     time.Duration `json:"duration"`
}

// Result is the structured outcome of [Run]: the repaired text, the full
// change log in application order, whether the result parses as YAML, any
// remaining parse errors as strings, the aggregate confidence, and a
// per-pass breakdown.
type Result struct {
	Content       string          `json:"content"`
	Changes       []Change        `json:"changes"`
	IsValid       bool            `json:"isValid"`
	Errors        []string        `json:"errors"`
	Confidence    float64         `json:"confidence"`
	PassBreakdown []PassBreakdown `json:"passBreakdown"`
}
