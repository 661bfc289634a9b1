package manifestfix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.kubefix.dev/manifestfix"
)

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts    manifestfix.Options
		wantErr bool
	}{
		"defaults": {
			opts: manifestfix.DefaultOptions(),
		},
		"confidence too low": {
			opts:    withConfidence(manifestfix.DefaultOptions(), -0.1),
			wantErr: true,
		},
		"confidence too high": {
			opts:    withConfidence(manifestfix.DefaultOptions(), 1.1),
			wantErr: true,
		},
		"negative max iterations": {
			opts:    withMaxIterations(manifestfix.DefaultOptions(), -1),
			wantErr: true,
		},
		"zero indent size": {
			opts:    withIndentSize(manifestfix.DefaultOptions(), 0),
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.opts.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, manifestfix.ErrInvalidOption)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRun_ClampsOutOfRangeOptions(t *testing.T) {
	t.Parallel()

	in := "apiVersion v1\nkind: Deployment\nmet\n  name: broken-app"

	opts := withIndentSize(withMaxIterations(withConfidence(manifestfix.DefaultOptions(), 5), -3), 0)

	assert.NotPanics(t, func() {
		r := manifestfix.Run(in, opts)
		assert.True(t, r.IsValid)
	})
}

func withConfidence(o manifestfix.Options, c float64) manifestfix.Options {
	o.ConfidenceThreshold = c

	return o
}

func withMaxIterations(o manifestfix.Options, n int) manifestfix.Options {
	o.MaxIterations = n

	return o
}

func withIndentSize(o manifestfix.Options, n int) manifestfix.Options {
	o.IndentSize = n

	return o
}
