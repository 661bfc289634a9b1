package manifestfix

import "errors"

// Sentinel errors returned by [Options.Validate]. Run itself never
// returns an error for a malformed manifest -- a pathological parse is
// reported through Result.IsValid and Result.Errors -- these are reserved
// for programmer errors in how the pipeline is configured or invoked.
var (
	// ErrInvalidOption is returned by [Options.Validate] when a field is out
	// of its documented range.
	ErrInvalidOption = errors.New("invalid option")
)
