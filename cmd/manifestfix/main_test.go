package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.kubefix.dev/manifestfix"
)

func TestOptionsResolve_Defaults(t *testing.T) {
	t.Parallel()

	got := options{}.resolve()

	assert.Equal(t, manifestfix.DefaultOptions(), got)
}

func TestOptionsResolve_Overrides(t *testing.T) {
	t.Parallel()

	threshold := 0.5
	aggressive := true
	maxIter := 1
	indent := 4
	autoFix := false

	got := options{
		ConfidenceThreshold: &threshold,
		Aggressive:          &aggressive,
		MaxIterations:       &maxIter,
		IndentSize:          &indent,
		AutoFix:             &autoFix,
	}.resolve()

	require.NoError(t, got.Validate())
	assert.Equal(t, 0.5, got.ConfidenceThreshold)
	assert.True(t, got.Aggressive)
	assert.Equal(t, 1, got.MaxIterations)
	assert.Equal(t, 4, got.IndentSize)
	assert.False(t, got.AutoFix)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("no changes, valid", func(t *testing.T) {
		t.Parallel()

		got := summarize(manifestfix.Result{IsValid: true})

		assert.Equal(t, "no changes needed; manifest already parses", got)
	})

	t.Run("no changes, invalid", func(t *testing.T) {
		t.Parallel()

		got := summarize(manifestfix.Result{IsValid: false})

		assert.Equal(t, "no changes applied; manifest still does not parse", got)
	})

	t.Run("changes applied, now valid", func(t *testing.T) {
		t.Parallel()

		result := manifestfix.Run("apiVersion v1\nkind: Pod\nmetadata:\n  name: x\nspec:\n  containers:\n  - name: app\n    image: nginx\n",
			manifestfix.DefaultOptions())

		got := summarize(result)

		assert.Contains(t, got, "change(s)")
		assert.Contains(t, got, "pass(es)")
	})
}
