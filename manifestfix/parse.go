package manifestfix

import "github.com/goccy/go-yaml"

// parseSegment reports whether a single document segment parses as YAML.
// Pass 4, Pass 5, and the read-only path Run takes when Options.AutoFix is
// false all go through it, so they see the same parser configuration. Pass 2
// calls yaml.Unmarshal itself, the same way, because it needs the decoded
// value.
func parseSegment(seg string) error {
	var v interface{}

	return yaml.Unmarshal([]byte(seg), &v)
}
