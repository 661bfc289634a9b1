package manifestfix

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.kubefix.dev/manifestfix/kb"
)

// canonicalKeyOrder is the project-defined sort key Pass 2 re-serializes
// every mapping level with. The goccy/go-yaml encoder's confirmed surface
// has no hook for a caller-supplied key ordering, so the canonical emitter
// below is hand-written rather than delegated to the library, per the
// project's own allowance for an implementer lacking that feature.
var canonicalKeyOrder = []string{
	"apiVersion", "kind", "metadata", "name", "namespace", "labels",
	"annotations", "spec", "data", "status",
}

var canonicalKeyRank = func() map[string]int {
	r := make(map[string]int, len(canonicalKeyOrder))
	for i, k := range canonicalKeyOrder {
		r[k] = i
	}

	return r
}()

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		ri, iok := canonicalKeyRank[keys[i]]
		rj, jok := canonicalKeyRank[keys[j]]

		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	return keys
}

// encodeDocument renders a decoded document in canonical key order with a
// fixed 2-space indent and no line-width wrapping.
func encodeDocument(v interface{}) string {
	var sb strings.Builder
	encodeValue(&sb, v, 0, false)

	return strings.TrimRight(sb.String(), "\n")
}

func encodeValue(sb *strings.Builder, v interface{}, indent int, inline bool) {
	switch val := v.(type) {
	case map[string]interface{}:
		encodeMapping(sb, val, indent, inline)
	case []interface{}:
		encodeSequence(sb, val, indent)
	default:
		sb.WriteString(encodeScalar(v))
		sb.WriteString("\n")
	}
}

func encodeMapping(sb *strings.Builder, m map[string]interface{}, indent int, inline bool) {
	if len(m) == 0 {
		sb.WriteString("{}\n")

		return
	}

	keys := sortedKeys(m)

	for i, k := range keys {
		pad := strings.Repeat(" ", indent)
		if inline && i == 0 {
			pad = ""
		}

		value := m[k]

		switch val := value.(type) {
		case map[string]interface{}:
			if len(val) == 0 {
				sb.WriteString(pad + k + ": {}\n")

				continue
			}

			sb.WriteString(pad + k + ":\n")
			encodeMapping(sb, val, indent+2, false)
		case []interface{}:
			if len(val) == 0 {
				sb.WriteString(pad + k + ": []\n")

				continue
			}

			sb.WriteString(pad + k + ":\n")
			encodeSequence(sb, val, indent)
		default:
			sb.WriteString(pad + k + ": " + encodeScalar(value) + "\n")
		}
	}
}

func encodeSequence(sb *strings.Builder, items []interface{}, indent int) {
	pad := strings.Repeat(" ", indent)

	for _, item := range items {
		switch val := item.(type) {
		case map[string]interface{}:
			sb.WriteString(pad + "- ")
			encodeMapping(sb, val, indent+2, true)
		case []interface{}:
			sb.WriteString(pad + "-\n")
			encodeSequence(sb, val, indent+2)
		default:
			sb.WriteString(pad + "- " + encodeScalar(item) + "\n")
		}
	}
}

var plainScalarRe = regexp.MustCompile(`^[A-Za-z0-9_./-]+$`)

func encodeScalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return encodeStringScalar(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// encodeStringScalar quotes a string scalar when leaving it bare would
// change its parsed type or ambiguate it as a YAML 1.1 literal (the same
// vocabulary the rest of the pipeline treats specially).
func encodeStringScalar(s string) string {
	if s == "" {
		return `""`
	}

	lower := strings.ToLower(s)
	if _, ok := kb.BooleanStrings[lower]; ok || lower == "true" || lower == "false" || lower == "null" || lower == "~" {
		return strconv.Quote(s)
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.Quote(s)
	}

	if plainScalarRe.MatchString(s) {
		return s
	}

	return strconv.Quote(s)
}
