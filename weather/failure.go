package weather

import (
	"errors"
	"fmt"
)

type Reason int

const (
	EmptyInput Reason = iota + 1
	MissingCredential
	NetworkError
	MalformedResponse
	NotFound
	ServerError
)

func (r Reason) String() string {
	switch r {
	case EmptyInput:
		return "empty_input"
	case MissingCredential:
		return "missing_credential"
	case NetworkError:
		return "network_error"
	case MalformedResponse:
		return "malformed_response"
	case NotFound:
		return "not_found"
	case ServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Failure is the classified outcome of a query that did not produce a Result.
// Code is only set for ServerError.
type Failure struct {
	Reason Reason
	Code   int
	Err    error
}

func (f *Failure) Error() string {
	msg := f.Reason.String()
	if f.Reason == ServerError {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, f.Code)
	}
	if f.Err != nil {
		return msg + ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure extracts a *Failure from err. Errors that are not failures are
// reported as NetworkError.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Reason: NetworkError, Err: err}
}

func failWith(reason Reason, err error) *Failure {
	return &Failure{Reason: reason, Err: err}
}
