package customerrors

import (
	"errors"
	"net/http"
)

var (
	ErrMissingCredentials   = errors.New("sign in to visualize this play")
	ErrUpstreamTimeout      = errors.New("the analysis service did not answer in time")
	ErrUpstreamFailure      = errors.New("the analysis service returned an error")
	ErrInvalidPlaySpec      = errors.New("the analysis service returned an invalid play")
	ErrMissingConfiguration = errors.New("visualization is not configured")
	ErrFilterNotFound       = errors.New("filter not found")
	ErrFilterCycle          = errors.New("a filter cannot be moved under itself or its descendants")
	ErrFilterTooDeep        = errors.New("move would place filters deeper than level 2")
)

var statusByKind = map[error]int{
	ErrMissingCredentials:   http.StatusUnauthorized,
	ErrUpstreamTimeout:      http.StatusGatewayTimeout,
	ErrUpstreamFailure:      http.StatusBadGateway,
	ErrInvalidPlaySpec:      http.StatusBadGateway,
	ErrMissingConfiguration: http.StatusInternalServerError,
	ErrFilterNotFound:       http.StatusNotFound,
	ErrFilterCycle:          http.StatusBadRequest,
	ErrFilterTooDeep:        http.StatusBadRequest,
}

// StatusError is a sentinel plus the HTTP status and any detail worth
// echoing to the caller (upstream status and body, validation issues).
type StatusError struct {
	Kind    error
	Status  int
	Message string
	Detail  any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

// New builds a StatusError for kind with the status registered for it.
func New(kind error, detail any) *StatusError {
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &StatusError{
		Kind:    kind,
		Status:  status,
		Message: kind.Error(),
		Detail:  detail,
	}
}

// StatusOf returns the HTTP status carried by err, 500 when none is known.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	for kind, status := range statusByKind {
		if errors.Is(err, kind) {
			return status
		}
	}
	return http.StatusInternalServerError
}
