// Package validation collects field-keyed input errors.
package validation

import (
	"sort"
	"strings"

	"github.com/nskaik/order-payment-api/kit/db"
)

const message = "The given data was invalid."

// Errors maps a field path (e.g. "items.0.quantity") to its messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Merge copies other into e, prefixing each field with prefix when set.
func (e Errors) Merge(prefix string, other Errors) {
	for field, msgs := range other {
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		e[key] = append(e[key], msgs...)
	}
}

// Err returns nil when nothing was collected.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &Error{Fields: e}
}

// Error is a validation failure. It matches db.ErrInvalid and, when set,
// the more specific Cause.
type Error struct {
	Fields Errors
	Cause  error
}

// Field builds a single-field validation error.
func Field(field, msg string, cause error) *Error {
	return &Error{Fields: Errors{field: {msg}}, Cause: cause}
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return message + " (" + strings.Join(fields, ", ") + ")"
}

func (e *Error) Message() string { return message }

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{db.ErrInvalid, e.Cause}
	}
	return []error{db.ErrInvalid}
}
