package entities

import (
	"errors"
	"fmt"
	"time"
)

// ErrCancelled marks a scenario aborted from outside (e.g. a global test timeout)
var ErrCancelled = errors.New("scenario cancelled")

// TimeoutError - a wait or poll exceeded its deadline
type TimeoutError struct {
	Condition    string
	Timeout      time.Duration
	LastObserved string
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timeout after %s waiting for %s", e.Timeout, e.Condition)
	if e.LastObserved != "" {
		msg += fmt.Sprintf(" (last observed: %s)", e.LastObserved)
	}
	return msg
}

// ActionErrorKind classifies why an element refused an action
type ActionErrorKind string

const (
	NotEditable  ActionErrorKind = "not editable"
	NotClickable ActionErrorKind = "not clickable"
)

// ActionError - element is not in the required state for an action
type ActionError struct {
	Kind     ActionErrorKind
	Selector Selector
	Reason   string
	Err      error
}

func (e *ActionError) Error() string {
	msg := fmt.Sprintf("element %q is %s", e.Selector, e.Kind)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ActionError) Unwrap() error { return e.Err }

// AssertionError - expected condition never became true
type AssertionError struct {
	Condition    string
	LastObserved string
	Elapsed      time.Duration
	Err          error
}

func (e *AssertionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assertion failed: %v", e.Err)
	}
	msg := fmt.Sprintf("assertion failed: expected %s", e.Condition)
	if e.LastObserved != "" {
		msg += fmt.Sprintf(", last observed %s", e.LastObserved)
	}
	return msg + fmt.Sprintf(" after %s", e.Elapsed.Round(time.Millisecond))
}

func (e *AssertionError) Unwrap() error { return e.Err }

// NavigationError - page failed to load
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s failed: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }
