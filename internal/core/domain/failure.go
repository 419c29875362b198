package domain

import (
	"errors"
	"fmt"
)

// FailureKind tags a failed server call. The set is closed.
type FailureKind int

const (
	FailureNetwork FailureKind = iota + 1
	FailureAuthExpired
	FailureValidation
	FailureServer
)

func (k FailureKind) String() string {
	switch k {
	case FailureNetwork:
		return "network"
	case FailureAuthExpired:
		return "auth-expired"
	case FailureValidation:
		return "validation"
	case FailureServer:
		return "server"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against a *Failure of the same kind.
var (
	ErrNetwork     = errors.New("network failure")
	ErrAuthExpired = errors.New("authentication expired")
	ErrValidation  = errors.New("request rejected")
	ErrServer      = errors.New("server error")
)

// Failure is the classified outcome of a failed server call.
//
// Redirect is only set for FailureAuthExpired: the session has already been
// cleared and the caller is expected to navigate there.
type Failure struct {
	Kind     FailureKind
	Status   int
	Message  string
	Redirect Route
	Err      error
}

func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", f.Kind, f.Message, f.Status)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

// Is lets callers write errors.Is(err, domain.ErrAuthExpired).
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return f.Kind == FailureNetwork
	case ErrAuthExpired:
		return f.Kind == FailureAuthExpired
	case ErrValidation:
		return f.Kind == FailureValidation
	case ErrServer:
		return f.Kind == FailureServer
	}
	return false
}

// AsFailure extracts a *Failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// NetworkFailure builds a network-tagged failure wrapping the transport error.
func NetworkFailure(err error) *Failure {
	return &Failure{
		Kind:    FailureNetwork,
		Message: "Unable to reach server. Please start the backend and try again.",
		Err:     err,
	}
}

// ServerFailure builds a server-tagged failure.
func ServerFailure(status int, msg string) *Failure {
	if msg == "" {
		msg = "unexpected server error"
	}
	return &Failure{Kind: FailureServer, Status: status, Message: msg}
}
