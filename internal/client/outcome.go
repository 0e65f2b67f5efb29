package client

import "fmt"

// Outcome is the result of one summarization attempt.
// It is always one of Success, ServerError or TransportFailure.
type Outcome interface {
	outcome()
}

// Success carries the summary text returned by the server.
type Success struct {
	Text string
}

// ServerError carries a message the server reported; it is meant to be shown verbatim.
type ServerError struct {
	Message string
}

// FailureReason gives a coarse diagnostic for a TransportFailure.
// It is for logs only; users see a single generic message.
type FailureReason string

const (
	ReasonTimeout       FailureReason = "timeout"
	ReasonUnreachable   FailureReason = "unreachable"
	ReasonBadStatus     FailureReason = "bad_status"
	ReasonMalformedBody FailureReason = "malformed_body"
)

// TransportFailure means no usable answer came back: network error, timeout,
// unparseable body or an error status without an error message.
type TransportFailure struct {
	Reason FailureReason
	Err    error
}

func (Success) outcome()          {}
func (ServerError) outcome()      {}
func (TransportFailure) outcome() {}

func (f TransportFailure) Error() string {
	if f.Err == nil {
		return string(f.Reason)
	}
	return fmt.Sprintf("%s: %v", f.Reason, f.Err)
}

func (f TransportFailure) Unwrap() error {
	return f.Err
}

// Match dispatches on the concrete outcome. Every variant must be handled.
func Match[T any](
	o Outcome,
	onSuccess func(Success) T,
	onServerError func(ServerError) T,
	onFailure func(TransportFailure) T,
) T {
	switch v := o.(type) {
	case Success:
		return onSuccess(v)
	case ServerError:
		return onServerError(v)
	case TransportFailure:
		return onFailure(v)
	default:
		return onFailure(TransportFailure{Reason: ReasonMalformedBody, Err: fmt.Errorf("unknown outcome %T", o)})
	}
}
