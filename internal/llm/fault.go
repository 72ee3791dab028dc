package llm

import (
	"errors"
	"fmt"
)

// FaultKind classifies why a completion request produced no text.
type FaultKind string

const (
	FaultConfigurationMissing FaultKind = "configuration_missing"
	FaultNetwork              FaultKind = "network"
	FaultStatus               FaultKind = "status"
	FaultDecode               FaultKind = "decode"
)

// Fault is the only error type returned by the client. Callers convert it into
// a state update; it never escapes further than the engine.
type Fault struct {
	Kind       FaultKind
	StatusCode int
	Err        error
}

func (f *Fault) Error() string {
	switch {
	case f.StatusCode != 0:
		return fmt.Sprintf("llm %s fault (status %d): %v", f.Kind, f.StatusCode, f.Err)
	case f.Err != nil:
		return fmt.Sprintf("llm %s fault: %v", f.Kind, f.Err)
	default:
		return fmt.Sprintf("llm %s fault", f.Kind)
	}
}

func (f *Fault) Unwrap() error { return f.Err }

// ErrMissingCredentials is wrapped by configuration faults.
var ErrMissingCredentials = errors.New("api url or api key is not configured")

// IsConfigurationMissing reports whether err is a configuration fault.
func IsConfigurationMissing(err error) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == FaultConfigurationMissing
}
