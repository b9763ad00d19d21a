package gateway

import (
	"errors"
	"fmt"
	"sort"
)

// Kind classifies every failure the client can see. The taxonomy is closed:
// an Error is constructed once at the gateway boundary (or by pre-flight
// validation) and callers switch on Kind instead of re-inspecting transport
// state.
type Kind int

const (
	// KindValidation is a field-scoped input error, raised before any
	// network call or mapped from a 400 with details.
	KindValidation Kind = iota + 1
	// KindUnauthorized is a 401: fatal to the session on non-auth paths.
	KindUnauthorized
	// KindForbidden is a 403: local to the action, session untouched.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindUnreachable is a transport failure with no HTTP status.
	KindUnreachable
	// KindServer is any other non-2xx status.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindUnreachable:
		return "unreachable"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the single error shape handed back to service callers.
type Error struct {
	Kind    Kind
	Status  int // 0 when no HTTP status was received
	Message string
	Details map[string]string // field -> message, for validation errors
	// FromServer marks a Message taken from the response body rather than
	// the generic per-status fallback.
	FromServer bool
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidation builds a pre-flight validation error from field messages.
// The top-level message is the first field's message in field order.
func NewValidation(details map[string]string) *Error {
	msg := "Invalid input"
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	if len(fields) > 0 {
		msg = details[fields[0]]
	}
	return &Error{Kind: KindValidation, Message: msg, Details: details}
}

// AsError unwraps err into *Error, or nil when err is of another type.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

func isKind(err error, k Kind) bool {
	e := AsError(err)
	return e != nil && e.Kind == k
}

// IsValidation reports whether err is a field-scoped validation error.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsUnauthorized reports whether err is a 401.
func IsUnauthorized(err error) bool { return isKind(err, KindUnauthorized) }

// IsForbidden reports whether err is a 403.
func IsForbidden(err error) bool { return isKind(err, KindForbidden) }

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsUnreachable reports whether err is a transport failure without a status.
func IsUnreachable(err error) bool { return isKind(err, KindUnreachable) }

// fallbackMessage is the generic user-visible message for a status when the
// server supplied neither a message nor validation details.
func fallbackMessage(status int) string {
	switch status {
	case 0:
		return "Unable to connect to server. Please check your connection."
	case 400:
		return "Invalid request. Please check your input."
	case 401:
		return "Unauthorized. Please login again."
	case 403:
		return "You do not have permission to perform this action."
	case 404:
		return "Resource not found."
	default:
		return fmt.Sprintf("Server error: %d", status)
	}
}
