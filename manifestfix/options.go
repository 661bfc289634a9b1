package manifestfix

// Options configures one [Run] invocation. The zero value is not valid;
// use [DefaultOptions] and override selectively.
type Options struct {
	// ConfidenceThreshold is the cutoff below which Pass 5 downgrades a
	// change's severity to warning. Must be in [0, 1].
	ConfidenceThreshold float64
	// Aggressive lets Pass 1's aggressive parent-colon sweep repeat up to
	// three times instead of running once. It has no other effect: it does
	// not lower ConfidenceThreshold and enables no further repairs.
	Aggressive bool
	// MaxIterations bounds Pass 4's parse-fix-reparse loop. Must be >= 0.
	MaxIterations int
	// IndentSize is the indentation unit re-indentation rounds to. Must be
	// > 0.
	IndentSize int
	// AutoFix gates whether Run mutates the text at all; when false, Run
	// only parses and reports, producing an empty change log.
	AutoFix bool
}

// DefaultOptions returns the documented defaults: confidence threshold 0.7,
// aggressive mode off, at most 3 validation iterations, 2-space indent,
// auto-fix on.
func DefaultOptions() Options {
	return Options{
		ConfidenceThreshold: 0.7,
		Aggressive:          false,
		MaxIterations:       3,
		IndentSize:          2,
		AutoFix:             true,
	}
}

// validate reports ErrInvalidOption if any field is out of its documented
// range.
func (o Options) validate() error {
	if o.ConfidenceThreshold < 0 || o.ConfidenceThreshold > 1 {
		return ErrInvalidOption
	}

	if o.MaxIterations < 0 {
		return ErrInvalidOption
	}

	if o.IndentSize <= 0 {
		return ErrInvalidOption
	}

	return nil
}

// Validate reports [ErrInvalidOption] if any field of o is out of its
// documented range. [Run] does not call Validate itself -- it clamps
// out-of-range fields to the nearest valid value, consistent with the
// pipeline's fail-open design -- callers that want strict rejection of a
// misconfigured Options should call Validate before invoking Run.
func (o Options) Validate() error {
	return o.validate()
}

// clamp returns o with every out-of-range field pulled back to the nearest
// documented-valid value, so Run can always proceed without erroring.
func (o Options) clamp() Options {
	if o.ConfidenceThreshold < 0 {
		o.ConfidenceThreshold = 0
	} else if o.ConfidenceThreshold > 1 {
		o.ConfidenceThreshold = 1
	}

	if o.MaxIterations < 0 {
		o.MaxIterations = 0
	}

	if o.IndentSize <= 0 {
		o.IndentSize = 2
	}

	return o
}
