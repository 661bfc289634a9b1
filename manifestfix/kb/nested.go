package kb

import "regexp"

// NestedPattern describes a structural wrapping rule: when a block matching
// Parent has direct children matching Child and no existing child named
// WrapperKey, pass one inserts a WrapperKey: line and re-indents the
// matched children underneath it.
type NestedPattern struct {
	Parent     *regexp.Regexp
	Child      *regexp.Regexp
	WrapperKey string
}

// NestedPatterns lists the (parent, child, wrapper) triples the universal
// nested-structure wrapper in pass one applies. The prototypical case is a
// probe block whose author wrote path/port/scheme/host directly under
// livenessProbe instead of nesting them under httpGet.
var NestedPatterns = []NestedPattern{
	{
		Parent:     regexp.MustCompile(`^(liveness|readiness|startup)Probe$`),
		Child:      regexp.MustCompile(`^(path|port|host|scheme|httpHeaders)$`),
		WrapperKey: "httpGet",
	},
}
