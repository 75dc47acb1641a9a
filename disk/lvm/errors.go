package lvm

import (
	"fmt"
	"github.com/pkg/errors"
	"strings"
)

var (
	// ErrMalformedNumber is returned when a size or count column is not an unsigned integer.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrTooFewFields is returned when a report line is missing a required column.
	ErrTooFewFields = errors.New("too few fields")

	// ErrDeviceTokenMissing is returned when an extent range piece has no device part.
	ErrDeviceTokenMissing = errors.New("device token missing")

	ErrLaunchFailed   = errors.New("launch failed")
	ErrCreationFailed = errors.New("creation failed")
	ErrReportFailed   = errors.New("report failed")
	ErrTimeout        = errors.New("timeout")

	// ErrNotImplemented is returned for percentage based sizing.
	ErrNotImplemented = errors.New("not implemented")

	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
)

// ReportError describes a report line that could not be turned into a record.
type ReportError struct {
	Report string
	Line   int
	Field  string
	Text   string
	Err    error
}

func (e *ReportError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: line %d: %v: %q", e.Report, e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("%s: line %d: field %s: %v: %q", e.Report, e.Line, e.Field, e.Err, e.Text)
}

func (e *ReportError) Unwrap() error { return e.Err }

func (e *ReportError) Cause() error { return e.Err }

// CommandError carries the outcome of an lvm invocation that ran but failed.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s: %v (exit %d)", e.Command, e.Err, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v (exit %d): %s", e.Command, e.Err, e.ExitCode, msg)
}

func (e *CommandError) Unwrap() error { return e.Err }

func (e *CommandError) Cause() error { return e.Err }

// Diagnostic returns the stderr of the failed command exactly as it was captured.
func Diagnostic(err error) (string, bool) {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Stderr, true
	}
	return "", false
}

func missingField(report string, line int, field, text string) error {
	return &ReportError{Report: report, Line: line, Field: field, Text: text, Err: ErrTooFewFields}
}

func badField(report string, line int, field, text string, err error) error {
	return &ReportError{Report: report, Line: line, Field: field, Text: text, Err: err}
}
