// Package kb holds the static, process-wide knowledge base the manifestfix
// repair pipeline consults while scanning and reconstructing a manifest:
// canonical key and kind names, typo correction tables, number-word and
// boolean-word vocabularies, and the structural patterns used to relocate
// misplaced fields. Every table here is read-only after package init and
// safe for concurrent use by multiple [manifestfix.Run] calls.
package kb
