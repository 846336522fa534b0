package api

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Kind classifies a failure so the caller can decide the next action
// (fix input, re-quote, resubmit, or abort) without inspecting transport
// detail.
type Kind string

const (
	KindInvalidParameters     Kind = "INVALID_PARAMETERS"
	KindUnsupportedProtocol   Kind = "UNSUPPORTED_PROTOCOL"
	KindNoRouteFound          Kind = "NO_ROUTE_FOUND"
	KindStaleQuote            Kind = "STALE_QUOTE"
	KindInvalidRecipient      Kind = "INVALID_RECIPIENT"
	KindMissingReferral       Kind = "MISSING_REFERRAL"
	KindIncompleteSponsorFlow Kind = "INCOMPLETE_SPONSOR_FLOW"
	KindSubmissionRejected    Kind = "SUBMISSION_REJECTED"
	KindUpstreamUnavailable   Kind = "UPSTREAM_UNAVAILABLE"
)

// Error is the structured error returned by every operation in this module.
type Error struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewFieldError creates an Error naming the offending field.
func NewFieldError(kind Kind, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind carried by err, or the empty string when err is
// not one of this module's errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Retryable reports whether retrying is a sensible next action. A stale
// quote is retryable by re-resolving; an unavailable upstream is retryable
// with the same input. All other kinds are caller input errors.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindStaleQuote, KindUpstreamUnavailable:
		return true
	}
	return false
}

// RemoteError is a rejection reported by the aggregation service itself.
// The transport layer returns it unclassified; each operation maps it to
// the Kind that fits its contract.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote rejected request (status %d, code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("remote rejected request (status %d): %s", e.Status, e.Message)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs validator tags over v and maps the first violation to
// an InvalidParameters error naming the field. Runs before any network call.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Error{Kind: KindInvalidParameters, Message: err.Error(), Err: err}
	}

	f := verrs[0]
	var message string
	switch f.ActualTag() {
	case "required":
		message = fmt.Sprintf("%s is required", f.Field())
	case "oneof":
		message = fmt.Sprintf("%s must be one of (%s), value received: %v", f.Field(), f.Param(), f.Value())
	case "gt":
		message = fmt.Sprintf("%s must be greater than %s, value received: %v", f.Field(), f.Param(), f.Value())
	case "gte":
		message = fmt.Sprintf("%s must be at least %s, value received: %v", f.Field(), f.Param(), f.Value())
	case "lte":
		message = fmt.Sprintf("%s must be at most %s, value received: %v", f.Field(), f.Param(), f.Value())
	case "nefield":
		message = fmt.Sprintf("%s must differ from %s", f.Field(), f.Param())
	default:
		message = fmt.Sprintf("validation failed on field %s, condition: %s", f.Field(), f.ActualTag())
	}

	return &Error{Kind: KindInvalidParameters, Field: f.Field(), Message: message, Err: err}
}
