// Package manifestfix repairs malformed Kubernetes YAML manifests on a
// best-effort basis. Given a string purporting to be a (possibly
// multi-document) manifest -- missing colons, misspelled keys, stray
// top-level fields, word-form numbers, wrong-case enums, deprecated API
// groups, conflicting probe types, duplicate keys, unbalanced quotes, tab
// indents -- [Run] returns a repaired string, a structured change log, and a
// confidence score.
//
// The package depends on [github.com/goccy/go-yaml] as its conformant YAML
// parser; it does not implement a YAML grammar itself. It does not validate
// manifests against the Kubernetes OpenAPI schema, simulate admission or Pod
// Security Standards, or dry-run against a live cluster -- those belong to
// callers built on top of this package.
//
// # Design Principles
//
//  1. Best-effort, not best-in-class: the goal is "parseable and
//     schema-plausible", not a semantically verified Kubernetes object.
//     Comments, anchors, and block scalars are passed through untouched
//     rather than preserved bit-identically beyond that.
//
//  2. Every mutation is logged: no repair happens silently. Each rewrite,
//     insertion, or deletion appends exactly one [Change] recording what
//     changed, why, and how confident the pipeline is that it preserved the
//     author's intent. The one rewrite not recorded is the expansion of
//     leading tabs to spaces, which Run does before the first stage.
//
//  3. Idempotence: running Run on its own output with the same [Options]
//     yields the same content and an empty change log. Every pass is
//     written so that a line it would have fixed is, after fixing, no
//     longer a candidate for that fix.
//
//  4. Fail open on ambiguity: when a repair cannot be made with reasonable
//     confidence, the pipeline leaves the text alone and lets pass five
//     report the remaining parse errors, rather than guessing destructively.
//
// # Repair Pipeline
//
// [Run] executes six stages in fixed order. Each stage consumes the text and
// change log the previous stage produced, and Run records a [PassBreakdown]
// entry for it:
//
//	Stage                    Kind                      Package file
//	Junk Stripper            line removal              pass0_junk.go
//	Syntax Normalization     line-local + block sweeps  pass1_syntax.go
//	AST Reconstruction       object-tree repair         pass2_ast.go
//	Semantic Validation      line-local, type-aware     pass3_semantic.go
//	Validation Iteration     parse-error-driven         pass4_iteration.go
//	Confidence Scoring       final pass, no mutation     pass5_confidence.go
//
// Junk Stripper drops lines that cannot plausibly belong to a manifest.
// Syntax Normalization repairs keys, colons, spacing, quotes, tabs, booleans,
// and indentation using an indentation-aware scanner and a fuzzy key
// matcher, then runs a series of full-buffer structural sweeps (probe-type
// deduplication, nested-structure wrapping, and so on). AST Reconstruction
// parses the result into a [github.com/goccy/go-yaml] document, infers
// missing kind/apiVersion, relocates misplaced subtrees, upgrades deprecated
// API versions, injects required placeholders, normalizes enum case, and
// re-serializes in canonical key order; it is a no-op if the text still does
// not parse. Semantic Validation coerces numeric and boolean field values and
// removes duplicate keys. Validation Iteration attempts to parse, and on
// failure applies one targeted fix per iteration driven by the parser's own
// error message, bounded by Options.MaxIterations. Confidence Scoring
// re-parses once more, downgrades the severity of low-confidence changes,
// and computes the aggregate confidence as the mean of every recorded
// change's confidence.
//
// # Knowledge Base
//
// The [go.kubefix.dev/manifestfix/kb] subpackage holds the static tables the
// pipeline consults: canonical key and kind names, typo correction maps,
// number-word and boolean-word vocabularies, numeric field-name patterns,
// and the nested-structure wrapping rules. Every table is read-only after
// package init, so the pipeline's exported entry points are safe to call
// concurrently across independent inputs; there is no shared mutable state
// between invocations.
//
// # Errors
//
// Run never returns an error for malformed input. A pathological manifest
// produces a [Result] with IsValid false and Errors populated with the
// parser's own messages. The sentinel errors in this package
// ([ErrInvalidOption]) are reserved for misconfiguration -- an out-of-range
// [Options] field -- not for anything found in the input text.
//
// # Basic Usage
//
//	result := manifestfix.Run(raw, manifestfix.DefaultOptions())
//	fmt.Println(result.Content)
//	for _, c := range result.Changes {
//	    fmt.Println(c)
//	}
package manifestfix
