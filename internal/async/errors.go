package async

import (
	"errors"
	"fmt"
)

// ErrorKind categorises a failure delivered in a Result.
type ErrorKind string

const (
	// TransportError is a network or IO failure below the application protocol.
	TransportError ErrorKind = "TransportError"
	// EmptyBody means the call completed but produced no payload.
	EmptyBody ErrorKind = "EmptyBody"
	// StatusError is a single call whose payload reported a non-ok status.
	StatusError ErrorKind = "StatusError"
	// CombinedStatusError is a joined pair where at least one call reported a non-ok status.
	CombinedStatusError ErrorKind = "CombinedStatusError"
)

// Error is the failure side of a Result.
type Error struct {
	Kind    ErrorKind
	Message string
	// Status is set for StatusError.
	Status string
	// RealtimeStatus and ForecastStatus are set for CombinedStatusError.
	RealtimeStatus string
	ForecastStatus string
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewTransportError(err error) *Error {
	return &Error{
		Kind:    TransportError,
		Message: "transport failure",
		Err:     err,
	}
}

func NewEmptyBodyError() *Error {
	return &Error{
		Kind:    EmptyBody,
		Message: "response body is empty",
	}
}

func NewStatusError(status string) *Error {
	return &Error{
		Kind:    StatusError,
		Message: fmt.Sprintf("response status is %s", status),
		Status:  status,
	}
}

func NewCombinedStatusError(realtimeStatus, forecastStatus string) *Error {
	return &Error{
		Kind: CombinedStatusError,
		Message: fmt.Sprintf("realtime response status is %s, daily response status is %s",
			realtimeStatus, forecastStatus),
		RealtimeStatus: realtimeStatus,
		ForecastStatus: forecastStatus,
	}
}

// AsError returns the *Error found in err's chain, or wraps err as a TransportError.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewTransportError(err)
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
