package flux

import (
	"errors"
	"fmt"
)

// ErrNetworkUnavailable matches every FetchError via errors.Is.
var ErrNetworkUnavailable = errors.New("network unavailable")

// FailureKind says why a fetch fell back. All kinds produce the same
// fallback value; the kind only feeds logs and metrics.
type FailureKind string

const (
	KindNetwork      FailureKind = "network"
	KindTimeout      FailureKind = "timeout"
	KindStatus       FailureKind = "status"
	KindDecode       FailureKind = "decode"
	KindEmpty        FailureKind = "empty"
	KindMissingField FailureKind = "missing_field"
)

type FetchError struct {
	Kind FailureKind
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("flux fetch %s", e.Kind)
	}
	return fmt.Sprintf("flux fetch %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrNetworkUnavailable }

func fetchErr(kind FailureKind, err error) *FetchError {
	return &FetchError{Kind: kind, Err: err}
}

// KindOf returns the failure kind of err, or "" if err is not a FetchError.
func KindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
