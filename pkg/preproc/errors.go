package preproc

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for zero input bytes or zero decoded samples.
	ErrEmptyInput = errors.New("preproc: empty input")

	// ErrInvalidConfig is returned by New and Config.Validate.
	ErrInvalidConfig = errors.New("preproc: invalid config")
)

// step failures absorbed into an Outcome
var (
	errNotFinite  = errors.New("preproc: non-finite samples")
	errSilent     = errors.New("preproc: signal is silent")
	errTrimmedOut = errors.New("preproc: trim removed every sample")
	errNoVectors  = errors.New("preproc: nothing to pool")
)

// DecodeError wraps a decoder failure.
type DecodeError struct {
	// Container is the sniffed container, "unknown" when unrecognized.
	Container string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("preproc: decode %s audio: %v", e.Container, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
