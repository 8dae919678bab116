package errors

import (
	"github.com/cockroachdb/errors"
)

// New returns an error with the supplied message and a captured stack trace.
func New(msg string) error { return errors.New(msg) }

// Newf formats according to a format specifier and returns the string as an
// error with a captured stack trace.
func Newf(format string, args ...any) error { return errors.Newf(format, args...) }

// Wrap annotates err with msg. Returns nil if err is nil.
func Wrap(err error, msg string) error { return errors.Wrap(err, msg) }

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target, and if one is
// found, sets target to that error value and returns true.
func As(err error, target any) bool { return errors.As(err, target) }
