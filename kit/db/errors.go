package db

import "errors"

var (
	ErrNotFound      = errors.New("db: not found")
	ErrForbidden     = errors.New("db: forbidden")
	ErrConflict      = errors.New("db: conflict")
	ErrInvalid       = errors.New("db: invalid")
	ErrUnprocessable = errors.New("db: unprocessable")
	ErrInternal      = errors.New("db: internal")
)

func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsForbidden(err error) bool     { return errors.Is(err, ErrForbidden) }
func IsConflict(err error) bool      { return errors.Is(err, ErrConflict) }
func IsInvalid(err error) bool       { return errors.Is(err, ErrInvalid) }
func IsUnprocessable(err error) bool { return errors.Is(err, ErrUnprocessable) }

// RuleError is a business-rule failure: a fixed message meant for the end
// user, classified by one or more sentinel kinds.
type RuleError struct {
	msg   string
	kinds []error
}

func NewRuleError(msg string, kinds ...error) *RuleError {
	return &RuleError{msg: msg, kinds: kinds}
}

func (e *RuleError) Error() string { return e.msg }

func (e *RuleError) Unwrap() []error { return e.kinds }
