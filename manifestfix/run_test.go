package manifestfix_test

import (
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.kubefix.dev/manifestfix"
	"go.kubefix.dev/manifestfix/stringtest"
)

func decode(t *testing.T, text string) map[string]interface{} {
	t.Helper()

	var v interface{}
	require.NoError(t, yaml.Unmarshal([]byte(text), &v))

	m, ok := v.(map[string]interface{})
	require.True(t, ok, "decoded document is not a mapping: %#v", v)

	return m
}

func TestRun_MissingColonSimple(t *testing.T) {
	t.Parallel()

	in := stringtest.JoinLF(
		"apiVersion v1",
		"kind: Deployment",
		"met",
		"  name: broken-app",
	)
	want := stringtest.JoinLF(
		"apiVersion: v1",
		"kind: Deployment",
		"metadata:",
		"  name: broken-app",
	)

	r := manifestfix.Run(in, manifestfix.DefaultOptions())

	assert.Equal(t, want, r.Content)
	assert.True(t, r.IsValid)

	var syntaxChanges int
	for _, c := range r.Changes {
		if c.Category == manifestfix.CategorySyntax {
			syntaxChanges++
		}
	}
	assert.GreaterOrEqual(t, syntaxChanges, 2)
}

func TestRun_WordNumberAndQuotedYes(t *testing.T) {
	t.Parallel()

	in := "replicas: three\nhostNetwork: yes"

	r := manifestfix.Run(in, manifestfix.DefaultOptions())

	assert.True(t, r.IsValid)
	assert.Contains(t, r.Content, "replicas: 3")
	assert.Contains(t, r.Content, "hostNetwork: true")
}

func TestRun_EnvListItemShorthand(t *testing.T) {
	t.Parallel()

	in := "env:\n  - DEBUG\n    value: \"true\"\n"

	r := manifestfix.Run(in, manifestfix.DefaultOptions())

	assert.Contains(t, r.Content, "- name: DEBUG")
	assert.Contains(t, r.Content, "value:")
}

func TestRun_ProbeConflict(t *testing.T) {
	t.Parallel()

	in := "livenessProbe:\n  httpGet:\n    path: /\n    port: 8080\n  tcpSocket:\n    port: 8080\n"

	r := manifestfix.Run(in, manifestfix.DefaultOptions())

	assert.Contains(t, r.Content, "httpGet:")
	assert.NotContains(t, r.Content, "tcpSocket:")

	var found *manifestfix.Change
	for i := range r.Changes {
		if r.Changes[i].Category == manifestfix.CategoryStructure && strings.Contains(r.Changes[i].Reason, "tcpSocket") {
			found = &r.Changes[i]
		}
	}
	require.NotNil(t, found, "expected a structure change reporting the removed tcpSocket branch")
	assert.Equal(t, manifestfix.SeverityWarning, found.Severity)
}

func TestRun_IngressUpgrade(t *testing.T) {
	t.Parallel()

	in := "apiVersion: extensions/v1beta1\nkind: Ingress\nspec:\n  rules:\n  - http:\n      paths:\n      - backend:\n          serviceName: foo\n          servicePort: 80\n"

	r := manifestfix.Run(in, manifestfix.DefaultOptions())
	require.True(t, r.IsValid, r.Errors)

	doc := decode(t, r.Content)
	assert.Equal(t, "networking.k8s.io/v1", doc["apiVersion"])

	spec := doc["spec"].(map[string]interface{})
	rules := spec["rules"].([]interface{})
	rule := rules[0].(map[string]interface{})
	http := rule["http"].(map[string]interface{})
	paths := http["paths"].([]interface{})
	path := paths[0].(map[string]interface{})

	assert.Equal(t, "Prefix", path["pathType"])

	backend := path["backend"].(map[string]interface{})
	_, hasOldName := backend["serviceName"]
	assert.False(t, hasOldName)

	service := backend["service"].(map[string]interface{})
	assert.Equal(t, "foo", service["name"])

	port := service["port"].(map[string]interface{})
	assert.EqualValues(t, 80, port["number"])
}

func TestRun_StrayRootMetadata(t *testing.T) {
	t.Parallel()

	in := "name: foo\nkind: Pod\nmetadata:\n  name: changeme-name\n"

	r := manifestfix.Run(in, manifestfix.DefaultOptions())
	require.True(t, r.IsValid, r.Errors)

	doc := decode(t, r.Content)
	_, hasRootName := doc["name"]
	assert.False(t, hasRootName, "root-level name must be removed")

	metadata := doc["metadata"].(map[string]interface{})
	assert.Equal(t, "foo", metadata["name"])

	var promotions int
	for _, c := range r.Changes {
		if c.Category == manifestfix.CategoryStructure && c.Severity == manifestfix.SeverityError &&
			strings.Contains(c.Reason, "promoted stray root-level field") {
			promotions++
		}
	}
	assert.Equal(t, 1, promotions)
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"apiVersion v1\nkind: Deployment\nmet\n  name: broken-app",
		"replicas: three\nhostNetwork: yes",
		"env:\n  - DEBUG\n    value: \"true\"\n",
		"livenessProbe:\n  httpGet:\n    path: /\n    port: 8080\n  tcpSocket:\n    port: 8080\n",
		"apiVersion: extensions/v1beta1\nkind: Ingress\nspec:\n  rules:\n  - http:\n      paths:\n      - backend:\n          serviceName: foo\n          servicePort: 80\n",
		"name: foo\nkind: Pod\nmetadata:\n  name: changeme-name\n",
	}

	for _, in := range inputs {
		in := in
		t.Run("", func(t *testing.T) {
			t.Parallel()

			first := manifestfix.Run(in, manifestfix.DefaultOptions())
			second := manifestfix.Run(first.Content, manifestfix.DefaultOptions())

			assert.Equal(t, first.Content, second.Content)
			assert.Empty(t, second.Changes)
		})
	}
}

func TestRun_RoundTripNoOp(t *testing.T) {
	t.Parallel()

	in := "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: app-config\n  namespace: default\ndata:\n  key: value\n"

	r := manifestfix.Run(in, manifestfix.DefaultOptions())

	assert.Empty(t, r.Changes)
	assert.True(t, r.IsValid)
}

func TestRun_ConfidenceBound(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"well-formed":   "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: app-config\ndata:\n  key: value\n",
		"badly-formed":  "apiVersion v1\nkind: Deployment\nmet\n  name: broken-app",
		"empty":         "",
	}

	for name, in := range tcs {
		in := in
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := manifestfix.Run(in, manifestfix.DefaultOptions())
			assert.GreaterOrEqual(t, r.Confidence, 0.0)
			assert.LessOrEqual(t, r.Confidence, 1.0)

			if len(r.Changes) == 0 {
				assert.Equal(t, 1.0, r.Confidence)
			}
		})
	}
}

func TestRun_BoundaryBehaviors(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		r := manifestfix.Run("", manifestfix.DefaultOptions())
		assert.Equal(t, "", r.Content)
		assert.Empty(t, r.Changes)
		assert.True(t, r.IsValid)
	})

	t.Run("comments only", func(t *testing.T) {
		t.Parallel()

		in := "# just a comment\n# another one\n"
		r := manifestfix.Run(in, manifestfix.DefaultOptions())
		assert.Equal(t, in, r.Content)
		assert.Empty(t, r.Changes)
	})

	t.Run("separators only", func(t *testing.T) {
		t.Parallel()

		in := "---\n---\n"
		r := manifestfix.Run(in, manifestfix.DefaultOptions())
		assert.Empty(t, r.Changes)
	})

	t.Run("URL value never split at colon", func(t *testing.T) {
		t.Parallel()

		in := "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: app-config\ndata:\n  endpoint: http://example.com\n"
		r := manifestfix.Run(in, manifestfix.DefaultOptions())
		assert.Contains(t, r.Content, "http://example.com")
		assert.NotContains(t, r.Content, "http:// example.com")
	})
}

func TestRun_ChangeLinesAreOneBased(t *testing.T) {
	t.Parallel()

	in := "apiVersion v1\nkind: Deployment\nmet\n  name: broken-app"

	r := manifestfix.Run(in, manifestfix.DefaultOptions())
	require.NotEmpty(t, r.Changes)

	for _, c := range r.Changes {
		assert.GreaterOrEqual(t, c.Line, 1)
	}
}

func TestRun_PassBreakdownCoversEveryPass(t *testing.T) {
	t.Parallel()

	in := "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: app-config\ndata:\n  key: value\n"

	r := manifestfix.Run(in, manifestfix.DefaultOptions())

	names := make([]string, len(r.PassBreakdown))
	for i, b := range r.PassBreakdown {
		names[i] = b.Name
	}

	assert.Equal(t, []string{
		manifestfix.PassJunkStripper,
		manifestfix.PassSyntaxNormalization,
		manifestfix.PassASTReconstruction,
		manifestfix.PassSemanticValidation,
		manifestfix.PassValidationIteration,
		manifestfix.PassConfidenceScoring,
	}, names)
}

func TestRun_ReadOnlyModeNeverMutates(t *testing.T) {
	t.Parallel()

	in := "apiVersion v1\nkind: Deployment\nmet\n  name: broken-app"

	opts := manifestfix.DefaultOptions()
	opts.AutoFix = false

	r := manifestfix.Run(in, opts)

	assert.Equal(t, in, r.Content)
	assert.Empty(t, r.Changes)
	assert.False(t, r.IsValid)
	assert.NotEmpty(t, r.Errors)
}

func TestRun_BlockScalarSurvivesRoundTrip(t *testing.T) {
	t.Parallel()

	in := stringtest.JoinLF(
		"apiVersion: v1",
		"kind: ConfigMap",
		"metadata:",
		"  name: app-config",
		"data:",
		"  script: |",
		"    #!/bin/sh",
		"    echo hello world",
		"",
	)

	r := manifestfix.Run(in, manifestfix.DefaultOptions())
	require.True(t, r.IsValid, r.Errors)

	doc := decode(t, r.Content)
	data := doc["data"].(map[string]interface{})
	assert.Equal(t, "#!/bin/sh\necho hello world\n", data["script"])
}
